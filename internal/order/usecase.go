package order

import (
	"context"
	"errors"

	"github.com/veloura/boutique-service/internal/model"
	"github.com/veloura/boutique-service/internal/order/dto"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrEmptyOrder        = errors.New("order has no items")
	ErrLineNotAvailable  = errors.New("item is not available in the requested quantity")
	ErrInvalidTransition = errors.New("invalid status transition")
)

type UseCase interface {
	CreateOrder(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, error)
	GetOrder(ctx context.Context, id string) (*model.Order, error)
	ListOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error)

	// UpdateStatus moves an order along pending -> paid -> shipped, with
	// cancellation allowed from pending. Marking paid publishes the stock
	// deduction event and sends the confirmation email.
	UpdateStatus(ctx context.Context, id, status string) (*model.Order, error)

	// MarkPaidBySession is the payment-callback entry point: it finds the
	// pending order attached to the checkout session and marks it paid.
	MarkPaidBySession(ctx context.Context, sessionID string) (*model.Order, error)
}
