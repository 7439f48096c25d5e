package order

import (
	"context"

	"github.com/veloura/boutique-service/internal/model"
	"github.com/veloura/boutique-service/internal/order/dto"
)

type Repository interface {
	// Create persists the order and its items in one transaction.
	Create(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, id string) (*model.Order, error)
	FindBySessionID(ctx context.Context, sessionID string) (*model.Order, error)
	FindAll(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error)
	UpdateStatus(ctx context.Context, id, status string) error
	AttachSession(ctx context.Context, id, sessionID string) error
}
