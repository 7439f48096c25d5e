package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/veloura/boutique-service/internal/inventory"
	"github.com/veloura/boutique-service/internal/inventory/dto"
	"github.com/veloura/boutique-service/internal/model"
	"github.com/veloura/boutique-service/internal/variant"
)

type inventoryUseCase struct {
	repo   inventory.Repository
	locker inventory.Locker
	logger *zap.Logger
}

func NewInventoryUseCase(repo inventory.Repository, locker inventory.Locker, log *zap.Logger) inventory.UseCase {
	return &inventoryUseCase{
		repo:   repo,
		locker: locker,
		logger: log,
	}
}

// AdjustStock writes an immutable ledger row for the delta, then recomputes
// the product's denormalized stock from the full current row set. The two
// writes are sequential dependent operations, not one transaction: the
// recompute's idempotence is the safety net, and a recompute failure after
// a successful insert is reported distinctly so an operator can re-trigger
// it.
func (uc *inventoryUseCase) AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*dto.AdjustStockResult, error) {
	if strings.TrimSpace(input.Reason) == "" {
		return nil, inventory.ErrReasonRequired
	}
	if input.Delta == 0 {
		return nil, inventory.ErrZeroDelta
	}

	lockKey := "lock:stock:" + input.VariantID
	lockValue := uuid.New().String()
	acquired := false
	for i := 0; i < 3; i++ {
		ok, err := uc.locker.AcquireLock(ctx, lockKey, lockValue, 5*time.Second)
		if err != nil {
			uc.logger.Error("failed to acquire stock lock", zap.Error(err))
		}
		if ok {
			acquired = true
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if !acquired {
		return nil, inventory.ErrBusy
	}
	defer uc.locker.ReleaseLock(ctx, lockKey, lockValue)

	row, err := uc.repo.FindRow(ctx, input.VariantID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, inventory.ErrVariantNotFound
	}

	var createdBy *string
	if input.CreatedBy != "" {
		createdBy = &input.CreatedBy
	}

	productID := row.ProductID
	variantID := row.ID
	movement := &model.StockMovement{
		ID:        uuid.New().String(),
		ProductID: &productID,
		VariantID: &variantID,
		Delta:     input.Delta,
		Reason:    input.Reason,
		CreatedBy: createdBy,
		CreatedAt: time.Now(),
	}

	if err := uc.repo.InsertMovement(ctx, movement); err != nil {
		return nil, fmt.Errorf("insert stock movement: %w", err)
	}

	aggregate, err := uc.Recompute(ctx, row.ProductID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", inventory.ErrAggregateStale, err)
	}

	return &dto.AdjustStockResult{
		Movement:       movement,
		AggregateStock: aggregate,
	}, nil
}

func (uc *inventoryUseCase) CreateVariant(ctx context.Context, input *dto.CreateVariantInput) (*model.VariantRow, error) {
	now := time.Now()

	var sku *string
	if input.SKU != "" {
		sku = &input.SKU
	}

	row := &model.VariantRow{
		BaseModel:     model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		ProductID:     input.ProductID,
		Name:          input.Name,
		Value:         input.Value,
		SKU:           sku,
		StockQuantity: input.StockQuantity,
		PriceModifier: input.PriceModifier,
	}

	if err := uc.repo.CreateRow(ctx, row); err != nil {
		return nil, fmt.Errorf("create variant: %w", err)
	}

	if _, err := uc.Recompute(ctx, input.ProductID); err != nil {
		return row, fmt.Errorf("%w: %v", inventory.ErrAggregateStale, err)
	}
	return row, nil
}

// DeleteVariant removes the row from all future index computations and
// recomputes the aggregate. Historical movements are left untouched.
func (uc *inventoryUseCase) DeleteVariant(ctx context.Context, variantID string) error {
	row, err := uc.repo.FindRow(ctx, variantID)
	if err != nil {
		return err
	}
	if row == nil {
		return inventory.ErrVariantNotFound
	}

	if err := uc.repo.DeleteRow(ctx, variantID); err != nil {
		return fmt.Errorf("delete variant: %w", err)
	}

	if _, err := uc.Recompute(ctx, row.ProductID); err != nil {
		return fmt.Errorf("%w: %v", inventory.ErrAggregateStale, err)
	}
	return nil
}

// Recompute derives the product's aggregate stock from scratch as the sum
// of the parsed index's combination stocks. Recompute-from-scratch rather
// than incremental maintenance: running it twice yields the same result,
// and concurrent ledger writes converge because it always reads the full
// current row set.
func (uc *inventoryUseCase) Recompute(ctx context.Context, productID string) (int, error) {
	rows, err := uc.repo.RowsByProduct(ctx, productID)
	if err != nil {
		return 0, err
	}

	// A product with no variant rows keeps its own manually-set counter.
	if len(rows) == 0 {
		return uc.repo.ProductStock(ctx, productID)
	}

	idx := variant.Parse(rows)
	for _, w := range idx.Warnings {
		uc.logger.Warn("variant data inconsistency",
			zap.String("product_id", productID),
			zap.String("detail", w),
		)
	}

	aggregate := 0
	for _, stock := range idx.StockByCombo {
		aggregate += stock
	}
	if aggregate < 0 {
		// Negative derived stock is a data-quality signal for the admin,
		// not something to clamp silently.
		uc.logger.Warn("negative aggregate stock derived",
			zap.String("product_id", productID),
			zap.Int("aggregate", aggregate),
		)
	}

	if err := uc.repo.UpdateProductStock(ctx, productID, aggregate); err != nil {
		return 0, err
	}
	return aggregate, nil
}

func (uc *inventoryUseCase) ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error) {
	return uc.repo.ListMovements(ctx, filters)
}
