package customer

import (
	"context"
	"errors"

	"github.com/veloura/boutique-service/internal/model"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrEmailExists      = errors.New("email already registered")
)

type Repository interface {
	Create(ctx context.Context, customer *model.Customer) error
	FindByID(ctx context.Context, id string) (*model.Customer, error)
	FindByEmail(ctx context.Context, email string) (*model.Customer, error)
	FindAll(ctx context.Context, page, pageSize int) ([]model.Customer, int, error)
	Update(ctx context.Context, customer *model.Customer) error
	Delete(ctx context.Context, id string) error
}

type UpsertInput struct {
	Email        string
	FirstName    string
	LastName     string
	Phone        *string
	NotifyLaunch bool
}

type UseCase interface {
	RegisterCustomer(ctx context.Context, input *UpsertInput) (*model.Customer, error)
	GetCustomer(ctx context.Context, id string) (*model.Customer, error)
	ListCustomers(ctx context.Context, page, pageSize int) ([]model.Customer, int, error)
	UpdateCustomer(ctx context.Context, id string, input *UpsertInput) (*model.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error

	// OptInLaunchNotify flags an email for the next launch announcement,
	// creating a bare customer record when none exists.
	OptInLaunchNotify(ctx context.Context, email string) (*model.Customer, error)
}
