package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/veloura/boutique-service/internal/customer"
	"github.com/veloura/boutique-service/internal/model"
)

type customerUseCase struct {
	repo   customer.Repository
	logger *zap.Logger
}

func NewCustomerUseCase(repo customer.Repository, logger *zap.Logger) customer.UseCase {
	return &customerUseCase{
		repo:   repo,
		logger: logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (uc *customerUseCase) RegisterCustomer(ctx context.Context, input *customer.UpsertInput) (*model.Customer, error) {
	email := normalizeEmail(input.Email)

	existing, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, customer.ErrEmailExists
	}

	now := time.Now()
	c := &model.Customer{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:        email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		NotifyLaunch: input.NotifyLaunch,
	}

	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *customerUseCase) GetCustomer(ctx context.Context, id string) (*model.Customer, error) {
	c, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, customer.ErrCustomerNotFound
	}
	return c, nil
}

func (uc *customerUseCase) ListCustomers(ctx context.Context, page, pageSize int) ([]model.Customer, int, error) {
	if pageSize <= 0 {
		pageSize = 50
	}
	return uc.repo.FindAll(ctx, page, pageSize)
}

func (uc *customerUseCase) UpdateCustomer(ctx context.Context, id string, input *customer.UpsertInput) (*model.Customer, error) {
	c, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, customer.ErrCustomerNotFound
	}

	email := normalizeEmail(input.Email)
	if email != c.Email {
		existing, err := uc.repo.FindByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, customer.ErrEmailExists
		}
	}

	c.Email = email
	c.FirstName = input.FirstName
	c.LastName = input.LastName
	c.Phone = input.Phone
	c.NotifyLaunch = input.NotifyLaunch
	c.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *customerUseCase) DeleteCustomer(ctx context.Context, id string) error {
	c, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return customer.ErrCustomerNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *customerUseCase) OptInLaunchNotify(ctx context.Context, email string) (*model.Customer, error) {
	email = normalizeEmail(email)

	c, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if c == nil {
		now := time.Now()
		c = &model.Customer{
			BaseModel: model.BaseModel{
				ID:        uuid.New().String(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Email:        email,
			NotifyLaunch: true,
		}
		if err := uc.repo.Create(ctx, c); err != nil {
			return nil, err
		}
		return c, nil
	}

	if c.NotifyLaunch {
		return c, nil
	}
	c.NotifyLaunch = true
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
