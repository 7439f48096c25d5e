package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloura/boutique-service/internal/inventory/dto"
)

func newMockDB(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPGRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestListMovements(t *testing.T) {
	repo, mock := newMockDB(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT count\(\*\) FROM stock_movements`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectPrepare(`SELECT \* FROM stock_movements ORDER BY created_at DESC`).
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "product_id", "variant_id", "delta", "reason", "created_by", "created_at"}).
			AddRow("m2", "p1", "v1", 3, "restock", nil, now).
			AddRow("m1", "p1", nil, -1, "damaged in shoot", "claire", now.Add(-time.Hour)))

	items, total, err := repo.ListMovements(context.Background(), &dto.MovementFilters{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, items, 2)
	assert.Equal(t, "m2", items[0].ID)
	require.NotNil(t, items[0].VariantID)
	assert.Equal(t, "v1", *items[0].VariantID)
	assert.Nil(t, items[1].VariantID, "detached ledger rows load with a nil reference")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListMovementsCountScanError(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM stock_movements`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow("not-a-number"))

	_, _, err := repo.ListMovements(context.Background(), &dto.MovementFilters{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scan movement count")
}
