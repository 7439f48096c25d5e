package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/veloura/boutique-service/internal/customer"
	"github.com/veloura/boutique-service/internal/model"
)

type mockRepository struct {
	customers map[string]*model.Customer
}

func newMockRepository() *mockRepository {
	return &mockRepository{customers: map[string]*model.Customer{}}
}

func (m *mockRepository) Create(_ context.Context, c *model.Customer) error {
	m.customers[c.ID] = c
	return nil
}

func (m *mockRepository) FindByID(_ context.Context, id string) (*model.Customer, error) {
	return m.customers[id], nil
}

func (m *mockRepository) FindByEmail(_ context.Context, email string) (*model.Customer, error) {
	for _, c := range m.customers {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, nil
}

func (m *mockRepository) FindAll(_ context.Context, _, _ int) ([]model.Customer, int, error) {
	var out []model.Customer
	for _, c := range m.customers {
		out = append(out, *c)
	}
	return out, len(out), nil
}

func (m *mockRepository) Update(_ context.Context, c *model.Customer) error {
	m.customers[c.ID] = c
	return nil
}

func (m *mockRepository) Delete(_ context.Context, id string) error {
	delete(m.customers, id)
	return nil
}

func TestRegisterCustomer(t *testing.T) {
	repo := newMockRepository()
	uc := NewCustomerUseCase(repo, zap.NewNop())

	c, err := uc.RegisterCustomer(context.Background(), &customer.UpsertInput{
		Email:     " Claire@Example.com ",
		FirstName: "Claire",
	})
	require.NoError(t, err)
	assert.Equal(t, "claire@example.com", c.Email)

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := uc.RegisterCustomer(context.Background(), &customer.UpsertInput{
			Email: "claire@example.com",
		})
		assert.ErrorIs(t, err, customer.ErrEmailExists)
	})
}

func TestOptInLaunchNotify(t *testing.T) {
	repo := newMockRepository()
	uc := NewCustomerUseCase(repo, zap.NewNop())

	t.Run("creates a bare record for an unknown email", func(t *testing.T) {
		c, err := uc.OptInLaunchNotify(context.Background(), "new@example.com")
		require.NoError(t, err)
		assert.True(t, c.NotifyLaunch)
		assert.Empty(t, c.FirstName)
	})

	t.Run("flags an existing customer", func(t *testing.T) {
		existing, err := uc.RegisterCustomer(context.Background(), &customer.UpsertInput{
			Email:     "claire@example.com",
			FirstName: "Claire",
		})
		require.NoError(t, err)
		require.False(t, existing.NotifyLaunch)

		c, err := uc.OptInLaunchNotify(context.Background(), "Claire@example.com")
		require.NoError(t, err)
		assert.Equal(t, existing.ID, c.ID)
		assert.True(t, c.NotifyLaunch)
		assert.Equal(t, "Claire", c.FirstName)
	})

	t.Run("idempotent", func(t *testing.T) {
		first, err := uc.OptInLaunchNotify(context.Background(), "new@example.com")
		require.NoError(t, err)
		again, err := uc.OptInLaunchNotify(context.Background(), "new@example.com")
		require.NoError(t, err)
		assert.Equal(t, first.ID, again.ID)
	})
}
