package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/veloura/boutique-service/internal/catalog/dto"
	"github.com/veloura/boutique-service/internal/mailer"
	"github.com/veloura/boutique-service/internal/model"
	"github.com/veloura/boutique-service/internal/order"
	orderdto "github.com/veloura/boutique-service/internal/order/dto"
)

type mockOrderRepository struct {
	orders map[string]*model.Order
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{orders: map[string]*model.Order{}}
}

func (m *mockOrderRepository) Create(_ context.Context, o *model.Order) error {
	m.orders[o.ID] = o
	return nil
}

func (m *mockOrderRepository) FindByID(_ context.Context, id string) (*model.Order, error) {
	return m.orders[id], nil
}

func (m *mockOrderRepository) FindBySessionID(_ context.Context, sessionID string) (*model.Order, error) {
	for _, o := range m.orders {
		if o.StripeSessionID != nil && *o.StripeSessionID == sessionID {
			return o, nil
		}
	}
	return nil, nil
}

func (m *mockOrderRepository) FindAll(_ context.Context, f *orderdto.OrderFilters) ([]model.Order, int, error) {
	var out []model.Order
	for _, o := range m.orders {
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		out = append(out, *o)
	}
	return out, len(out), nil
}

func (m *mockOrderRepository) UpdateStatus(_ context.Context, id, status string) error {
	m.orders[id].Status = status
	return nil
}

func (m *mockOrderRepository) AttachSession(_ context.Context, id, sessionID string) error {
	m.orders[id].StripeSessionID = &sessionID
	return nil
}

type mockProductRepository struct {
	products map[string]*model.Product
	rows     map[string][]model.VariantRow
}

func (m *mockProductRepository) Create(_ context.Context, p *model.Product) error { return nil }
func (m *mockProductRepository) FindByID(_ context.Context, id string) (*model.Product, error) {
	return m.products[id], nil
}
func (m *mockProductRepository) FindBySlug(_ context.Context, _ string) (*model.Product, error) {
	return nil, nil
}
func (m *mockProductRepository) FindAll(_ context.Context, _ *dto.ProductFilters) ([]model.Product, int, error) {
	return nil, 0, nil
}
func (m *mockProductRepository) Update(_ context.Context, _ *model.Product) error { return nil }
func (m *mockProductRepository) Delete(_ context.Context, _ string) error         { return nil }
func (m *mockProductRepository) IsSKUUnique(_ context.Context, _, _ string) (bool, error) {
	return true, nil
}
func (m *mockProductRepository) IsSlugUnique(_ context.Context, _, _ string) (bool, error) {
	return true, nil
}
func (m *mockProductRepository) VariantRows(_ context.Context, productID string) ([]model.VariantRow, error) {
	return m.rows[productID], nil
}

type capturedPublish struct {
	key   string
	value []byte
}

type mockPublisher struct {
	published []capturedPublish
}

func (m *mockPublisher) Publish(_ context.Context, key, value []byte) error {
	m.published = append(m.published, capturedPublish{key: string(key), value: value})
	return nil
}

type mockSender struct {
	sent []*mailer.Message
}

func (m *mockSender) Send(_ context.Context, msg *mailer.Message) error {
	m.sent = append(m.sent, msg)
	return nil
}

func variantRow(id, name, value string, stock int, modifier float64) model.VariantRow {
	return model.VariantRow{
		BaseModel:     model.BaseModel{ID: id},
		Name:          name,
		Value:         value,
		StockQuantity: stock,
		PriceModifier: modifier,
	}
}

func seedProducts() *mockProductRepository {
	return &mockProductRepository{
		products: map[string]*model.Product{
			"p1": {
				BaseModel: model.BaseModel{ID: "p1"},
				Name:      "Robe Midi",
				Price:     150,
				IsActive:  true,
			},
		},
		rows: map[string][]model.VariantRow{
			"p1": {
				variantRow("v-noir", "Couleur", "Noir", 5, 10),
				variantRow("v-blanc", "Couleur", "Blanc", 0, 0),
				variantRow("v-m", "Taille", "M", 5, 0),
				variantRow("v-s", "Taille", "S", 2, -5),
				// Inert axis sharing a color's value; it must never be
				// deducted as if it were the Noir row.
				variantRow("v-finition", "Finition", "Noir", 9, 0),
			},
		},
	}
}

func TestCreateOrder(t *testing.T) {
	repo := newMockOrderRepository()
	uc := NewOrderUseCase(repo, seedProducts(), nil, nil, "eur", zap.NewNop())

	t.Run("quotes lines server side", func(t *testing.T) {
		o, err := uc.CreateOrder(context.Background(), &orderdto.CreateOrderInput{
			Email: "claire@example.com",
			Lines: []orderdto.OrderLineInput{
				{ProductID: "p1", Color: "Noir", Size: "M", Quantity: 2},
				{ProductID: "p1", Color: "Noir", Size: "S", Quantity: 1},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, model.OrderStatusPending, o.Status)
		assert.Equal(t, "EUR", o.Currency)
		require.Len(t, o.Items, 2)
		assert.Equal(t, 160.0, o.Items[0].UnitPrice)
		assert.Equal(t, "p1:Noir:M", o.Items[0].VariantKey)
		assert.Equal(t, 155.0, o.Items[1].UnitPrice)
		assert.Equal(t, 475.0, o.Total)
		assert.Contains(t, repo.orders, o.ID)
	})

	t.Run("rejects exhausted combination", func(t *testing.T) {
		_, err := uc.CreateOrder(context.Background(), &orderdto.CreateOrderInput{
			Email: "claire@example.com",
			Lines: []orderdto.OrderLineInput{
				{ProductID: "p1", Color: "Blanc", Size: "M", Quantity: 1},
			},
		})
		assert.ErrorIs(t, err, order.ErrLineNotAvailable)
	})

	t.Run("rejects missing axis selection", func(t *testing.T) {
		_, err := uc.CreateOrder(context.Background(), &orderdto.CreateOrderInput{
			Email: "claire@example.com",
			Lines: []orderdto.OrderLineInput{
				{ProductID: "p1", Size: "M", Quantity: 1},
			},
		})
		assert.ErrorIs(t, err, order.ErrLineNotAvailable)
	})

	t.Run("rejects quantity beyond stock", func(t *testing.T) {
		_, err := uc.CreateOrder(context.Background(), &orderdto.CreateOrderInput{
			Email: "claire@example.com",
			Lines: []orderdto.OrderLineInput{
				{ProductID: "p1", Color: "Noir", Size: "S", Quantity: 3},
			},
		})
		assert.ErrorIs(t, err, order.ErrLineNotAvailable)
	})

	t.Run("rejects empty order", func(t *testing.T) {
		_, err := uc.CreateOrder(context.Background(), &orderdto.CreateOrderInput{Email: "claire@example.com"})
		assert.ErrorIs(t, err, order.ErrEmptyOrder)
	})
}

func TestUpdateStatus(t *testing.T) {
	repo := newMockOrderRepository()
	publisher := &mockPublisher{}
	sender := &mockSender{}
	uc := NewOrderUseCase(repo, seedProducts(), publisher, sender, "eur", zap.NewNop())

	o, err := uc.CreateOrder(context.Background(), &orderdto.CreateOrderInput{
		Email: "claire@example.com",
		Lines: []orderdto.OrderLineInput{
			{ProductID: "p1", Color: "Noir", Size: "M", Quantity: 2},
		},
	})
	require.NoError(t, err)

	t.Run("paid publishes deductions and emails", func(t *testing.T) {
		updated, err := uc.UpdateStatus(context.Background(), o.ID, model.OrderStatusPaid)
		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusPaid, updated.Status)

		require.Len(t, publisher.published, 1)
		assert.Equal(t, o.ID, publisher.published[0].key)

		var event struct {
			EventType string `json:"event_type"`
			Payload   struct {
				ID    string `json:"id"`
				Items []struct {
					VariantID string `json:"variant_id"`
					Quantity  int    `json:"quantity"`
				} `json:"items"`
			} `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(publisher.published[0].value, &event))
		assert.Equal(t, "OrderPaid", event.EventType)
		assert.Equal(t, o.ID, event.Payload.ID)

		// One deduction per row backing the Noir|M combination.
		require.Len(t, event.Payload.Items, 2)
		ids := []string{event.Payload.Items[0].VariantID, event.Payload.Items[1].VariantID}
		assert.ElementsMatch(t, []string{"v-noir", "v-m"}, ids)
		assert.Equal(t, 2, event.Payload.Items[0].Quantity)

		require.Len(t, sender.sent, 1)
		assert.Equal(t, "claire@example.com", sender.sent[0].ToEmail)
		assert.Contains(t, sender.sent[0].HTML, "Robe Midi")
	})

	t.Run("shipped follows paid", func(t *testing.T) {
		updated, err := uc.UpdateStatus(context.Background(), o.ID, model.OrderStatusShipped)
		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusShipped, updated.Status)
	})

	t.Run("invalid transition rejected", func(t *testing.T) {
		_, err := uc.UpdateStatus(context.Background(), o.ID, model.OrderStatusPending)
		assert.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("unknown order", func(t *testing.T) {
		_, err := uc.UpdateStatus(context.Background(), "missing", model.OrderStatusPaid)
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})
}

func TestMarkPaidBySession(t *testing.T) {
	repo := newMockOrderRepository()
	publisher := &mockPublisher{}
	uc := NewOrderUseCase(repo, seedProducts(), publisher, nil, "eur", zap.NewNop())

	o, err := uc.CreateOrder(context.Background(), &orderdto.CreateOrderInput{
		Email: "claire@example.com",
		Lines: []orderdto.OrderLineInput{
			{ProductID: "p1", Color: "Noir", Size: "M", Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.NoError(t, repo.AttachSession(context.Background(), o.ID, "cs_123"))

	paid, err := uc.MarkPaidBySession(context.Background(), "cs_123")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, paid.Status)
	assert.Len(t, publisher.published, 1)

	t.Run("retried callback does not deduct twice", func(t *testing.T) {
		again, err := uc.MarkPaidBySession(context.Background(), "cs_123")
		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusPaid, again.Status)
		assert.Len(t, publisher.published, 1)
	})

	t.Run("unknown session", func(t *testing.T) {
		_, err := uc.MarkPaidBySession(context.Background(), "cs_missing")
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})
}
