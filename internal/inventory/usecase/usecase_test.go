package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/veloura/boutique-service/internal/inventory"
	"github.com/veloura/boutique-service/internal/inventory/dto"
	"github.com/veloura/boutique-service/internal/model"
)

type mockRepository struct {
	rows         map[string]*model.VariantRow
	movements    []model.StockMovement
	productStock map[string]int

	failInsert    error
	failRecompute error
	recomputes    int
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		rows:         map[string]*model.VariantRow{},
		productStock: map[string]int{},
	}
}

func (m *mockRepository) FindRow(_ context.Context, id string) (*model.VariantRow, error) {
	return m.rows[id], nil
}

func (m *mockRepository) RowsByProduct(_ context.Context, productID string) ([]model.VariantRow, error) {
	var out []model.VariantRow
	for _, r := range m.rows {
		if r.ProductID == productID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockRepository) CreateRow(_ context.Context, row *model.VariantRow) error {
	cp := *row
	m.rows[row.ID] = &cp
	return nil
}

// DeleteRow mirrors the schema's ON DELETE SET NULL: ledger rows survive
// the variant, with their reference detached.
func (m *mockRepository) DeleteRow(_ context.Context, id string) error {
	delete(m.rows, id)
	for i := range m.movements {
		if m.movements[i].VariantID != nil && *m.movements[i].VariantID == id {
			m.movements[i].VariantID = nil
		}
	}
	return nil
}

func (m *mockRepository) InsertMovement(_ context.Context, mv *model.StockMovement) error {
	if m.failInsert != nil {
		return m.failInsert
	}
	m.movements = append(m.movements, *mv)
	if mv.VariantID != nil {
		if row, ok := m.rows[*mv.VariantID]; ok {
			row.StockQuantity += mv.Delta
		}
	}
	return nil
}

func (m *mockRepository) ListMovements(_ context.Context, _ *dto.MovementFilters) ([]model.StockMovement, int, error) {
	return m.movements, len(m.movements), nil
}

func (m *mockRepository) ProductStock(_ context.Context, productID string) (int, error) {
	return m.productStock[productID], nil
}

func (m *mockRepository) UpdateProductStock(_ context.Context, productID string, stock int) error {
	m.recomputes++
	if m.failRecompute != nil {
		return m.failRecompute
	}
	m.productStock[productID] = stock
	return nil
}

type stubLocker struct {
	denied bool
}

func (l *stubLocker) AcquireLock(context.Context, string, string, time.Duration) (bool, error) {
	return !l.denied, nil
}

func (l *stubLocker) ReleaseLock(context.Context, string, string) error {
	return nil
}

func setup(t *testing.T) (inventory.UseCase, *mockRepository) {
	t.Helper()
	repo := newMockRepository()
	uc := NewInventoryUseCase(repo, &stubLocker{}, zap.NewNop())
	return uc, repo
}

func seedVariant(repo *mockRepository, id, productID, name, value, sku string, stock int) {
	var skuPtr *string
	if sku != "" {
		skuPtr = &sku
	}
	repo.rows[id] = &model.VariantRow{
		BaseModel:     model.BaseModel{ID: id},
		ProductID:     productID,
		Name:          name,
		Value:         value,
		SKU:           skuPtr,
		StockQuantity: stock,
	}
}

func TestAdjustStock(t *testing.T) {
	uc, repo := setup(t)
	seedVariant(repo, "v1", "p1", "Couleur", "Noir", "A", 5)
	seedVariant(repo, "v2", "p1", "Taille", "M", "A", 5)

	result, err := uc.AdjustStock(context.Background(), &dto.AdjustStockInput{
		VariantID: "v1",
		Delta:     -2,
		Reason:    "damaged in shoot",
		CreatedBy: "claire",
	})

	require.NoError(t, err)
	require.Len(t, repo.movements, 1)
	assert.Equal(t, -2, repo.movements[0].Delta)
	assert.Equal(t, "damaged in shoot", repo.movements[0].Reason)
	require.NotNil(t, repo.movements[0].ProductID)
	assert.Equal(t, "p1", *repo.movements[0].ProductID)
	require.NotNil(t, repo.movements[0].CreatedBy)
	assert.Equal(t, "claire", *repo.movements[0].CreatedBy)

	// v1 dropped to 3, v2 stayed at 5; the SKU group max is 5.
	assert.Equal(t, 5, result.AggregateStock)
	assert.Equal(t, 5, repo.productStock["p1"])
}

func TestAdjustStockValidation(t *testing.T) {
	uc, repo := setup(t)
	seedVariant(repo, "v1", "p1", "Taille", "M", "", 5)

	_, err := uc.AdjustStock(context.Background(), &dto.AdjustStockInput{
		VariantID: "v1", Delta: 1, Reason: "  ",
	})
	assert.ErrorIs(t, err, inventory.ErrReasonRequired)

	_, err = uc.AdjustStock(context.Background(), &dto.AdjustStockInput{
		VariantID: "v1", Delta: 0, Reason: "count",
	})
	assert.ErrorIs(t, err, inventory.ErrZeroDelta)

	_, err = uc.AdjustStock(context.Background(), &dto.AdjustStockInput{
		VariantID: "missing", Delta: 1, Reason: "count",
	})
	assert.ErrorIs(t, err, inventory.ErrVariantNotFound)

	assert.Empty(t, repo.movements, "no ledger rows for rejected input")
}

func TestAdjustStockInsertFailureStopsRecompute(t *testing.T) {
	uc, repo := setup(t)
	seedVariant(repo, "v1", "p1", "Taille", "M", "", 5)
	repo.failInsert = errors.New("connection reset")

	_, err := uc.AdjustStock(context.Background(), &dto.AdjustStockInput{
		VariantID: "v1", Delta: 3, Reason: "restock",
	})

	require.Error(t, err)
	assert.NotErrorIs(t, err, inventory.ErrAggregateStale)
	assert.Zero(t, repo.recomputes, "recompute must not run against a failed insert")
}

func TestAdjustStockRecomputeFailureIsDistinct(t *testing.T) {
	uc, repo := setup(t)
	seedVariant(repo, "v1", "p1", "Taille", "M", "", 5)
	repo.failRecompute = errors.New("connection reset")

	_, err := uc.AdjustStock(context.Background(), &dto.AdjustStockInput{
		VariantID: "v1", Delta: 3, Reason: "restock",
	})

	assert.ErrorIs(t, err, inventory.ErrAggregateStale)
	assert.Len(t, repo.movements, 1, "the ledger row survives a recompute failure")
}

func TestAdjustStockLockDenied(t *testing.T) {
	repo := newMockRepository()
	seedVariant(repo, "v1", "p1", "Taille", "M", "", 5)
	uc := NewInventoryUseCase(repo, &stubLocker{denied: true}, zap.NewNop())

	_, err := uc.AdjustStock(context.Background(), &dto.AdjustStockInput{
		VariantID: "v1", Delta: 1, Reason: "count",
	})
	assert.ErrorIs(t, err, inventory.ErrBusy)
}

func TestRecomputeIdempotent(t *testing.T) {
	uc, repo := setup(t)
	seedVariant(repo, "v1", "p1", "Taille", "S", "", 2)
	seedVariant(repo, "v2", "p1", "Taille", "M", "", 4)

	first, err := uc.Recompute(context.Background(), "p1")
	require.NoError(t, err)
	second, err := uc.Recompute(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 6, first)
}

func TestRecomputeNoRowsKeepsCounter(t *testing.T) {
	uc, repo := setup(t)
	repo.productStock["p1"] = 12

	aggregate, err := uc.Recompute(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 12, aggregate)
}

func TestCreateVariantRecomputes(t *testing.T) {
	uc, repo := setup(t)

	row, err := uc.CreateVariant(context.Background(), &dto.CreateVariantInput{
		ProductID:     "p1",
		Name:          "Taille",
		Value:         "M",
		StockQuantity: 7,
	})

	require.NoError(t, err)
	require.NotEmpty(t, row.ID)
	assert.Equal(t, 7, repo.productStock["p1"])
}

func TestDeleteVariantLeavesNoTrace(t *testing.T) {
	uc, repo := setup(t)
	seedVariant(repo, "v1", "p1", "Taille", "S", "", 2)
	seedVariant(repo, "v2", "p1", "Taille", "M", "", 4)

	_, err := uc.Recompute(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 6, repo.productStock["p1"])

	require.NoError(t, uc.DeleteVariant(context.Background(), "v2"))
	assert.Equal(t, 2, repo.productStock["p1"], "no trace of the deleted row's stock remains")
}

func TestDeleteVariantKeepsMovementHistory(t *testing.T) {
	uc, repo := setup(t)
	seedVariant(repo, "v1", "p1", "Taille", "S", "", 2)
	seedVariant(repo, "v2", "p1", "Taille", "M", "", 4)

	_, err := uc.AdjustStock(context.Background(), &dto.AdjustStockInput{
		VariantID: "v2",
		Delta:     -1,
		Reason:    "damaged in shoot",
	})
	require.NoError(t, err)
	require.Len(t, repo.movements, 1)

	require.NoError(t, uc.DeleteVariant(context.Background(), "v2"))

	// The row is gone from the index but its audit trail remains, with
	// the variant reference detached.
	require.Len(t, repo.movements, 1)
	assert.Nil(t, repo.movements[0].VariantID)
	assert.Equal(t, -1, repo.movements[0].Delta)
	assert.Equal(t, "damaged in shoot", repo.movements[0].Reason)
}
