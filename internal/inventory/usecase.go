package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/veloura/boutique-service/internal/inventory/dto"
	"github.com/veloura/boutique-service/internal/model"
)

var (
	ErrReasonRequired  = errors.New("an adjustment reason is required")
	ErrZeroDelta       = errors.New("adjustment quantity must not be zero")
	ErrVariantNotFound = errors.New("variant not found")
	ErrBusy            = errors.New("stock is being adjusted elsewhere, please retry")

	// ErrAggregateStale means the ledger row was written but the aggregate
	// recompute failed afterwards: the ledger is correct, the product's
	// denormalized stock is stale until recompute is re-triggered.
	ErrAggregateStale = errors.New("stock movement recorded but aggregate recompute failed")
)

type UseCase interface {
	AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*dto.AdjustStockResult, error)
	CreateVariant(ctx context.Context, input *dto.CreateVariantInput) (*model.VariantRow, error)
	DeleteVariant(ctx context.Context, variantID string) error
	Recompute(ctx context.Context, productID string) (int, error)
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error)
}

// Locker guards a variant against concurrent admin adjustments. Satisfied
// by the redis client.
type Locker interface {
	AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key, value string) error
}
