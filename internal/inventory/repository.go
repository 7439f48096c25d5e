package inventory

import (
	"context"

	"github.com/veloura/boutique-service/internal/inventory/dto"
	"github.com/veloura/boutique-service/internal/model"
)

type Repository interface {
	FindRow(ctx context.Context, id string) (*model.VariantRow, error)
	RowsByProduct(ctx context.Context, productID string) ([]model.VariantRow, error)
	CreateRow(ctx context.Context, row *model.VariantRow) error
	DeleteRow(ctx context.Context, id string) error

	// InsertMovement persists the ledger row and applies its delta to the
	// variant row's stock in the same transaction.
	InsertMovement(ctx context.Context, m *model.StockMovement) error
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error)

	ProductStock(ctx context.Context, productID string) (int, error)
	UpdateProductStock(ctx context.Context, productID string, stock int) error
}
