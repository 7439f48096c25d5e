package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/veloura/boutique-service/internal/inventory/dto"
	"github.com/veloura/boutique-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindRow(ctx context.Context, id string) (*model.VariantRow, error) {
	var row model.VariantRow
	err := r.DB.GetContext(ctx, &row, `SELECT * FROM variant_rows WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find variant row")
	}
	return &row, nil
}

func (r *PGRepository) RowsByProduct(ctx context.Context, productID string) ([]model.VariantRow, error) {
	var rows []model.VariantRow
	err := r.DB.SelectContext(ctx, &rows,
		`SELECT * FROM variant_rows WHERE product_id = $1 ORDER BY created_at, id`, productID)
	if err != nil {
		return nil, errors.Wrap(err, "list variant rows")
	}
	return rows, nil
}

func (r *PGRepository) CreateRow(ctx context.Context, row *model.VariantRow) error {
	query := `
        INSERT INTO variant_rows (
            id, product_id, name, value, sku, stock_quantity, price_modifier,
            is_active, created_at, updated_at
        )
        VALUES (
            :id, :product_id, :name, :value, :sku, :stock_quantity, :price_modifier,
            :is_active, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, row)
	return errors.Wrap(err, "insert variant row")
}

func (r *PGRepository) DeleteRow(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM variant_rows WHERE id = $1`, id)
	return errors.Wrap(err, "delete variant row")
}

// InsertMovement writes the ledger row and applies its delta to the variant
// row in one transaction. No floor on the resulting row stock: negative
// stock is surfaced to the admin, not clamped.
func (r *PGRepository) InsertMovement(ctx context.Context, m *model.StockMovement) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin movement tx")
	}
	defer tx.Rollback()

	insertQuery := `
        INSERT INTO stock_movements (
            id, product_id, variant_id, delta, reason, created_by, created_at
        )
        VALUES (
            :id, :product_id, :variant_id, :delta, :reason, :created_by, :created_at
        )
    `
	if _, err := tx.NamedExecContext(ctx, insertQuery, m); err != nil {
		return errors.Wrap(err, "insert stock movement")
	}

	applyQuery := `
        UPDATE variant_rows
        SET stock_quantity = stock_quantity + $1, updated_at = NOW()
        WHERE id = $2
    `
	if _, err := tx.ExecContext(ctx, applyQuery, m.Delta, m.VariantID); err != nil {
		return errors.Wrap(err, "apply movement delta")
	}

	return errors.Wrap(tx.Commit(), "commit movement tx")
}

func (r *PGRepository) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.StockMovement, int, error) {
	var items []model.StockMovement
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.ProductID != "" {
		conditions = append(conditions, "product_id = :product_id")
		args["product_id"] = f.ProductID
	}
	if f.VariantID != "" {
		conditions = append(conditions, "variant_id = :variant_id")
		args["variant_id"] = f.VariantID
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM stock_movements" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, errors.Wrap(err, "count stock movements")
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return nil, 0, errors.Wrap(err, "scan movement count")
		}
	}

	query := "SELECT * FROM stock_movements" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, errors.Wrap(err, "prepare movement query")
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &items, args)
	return items, count, errors.Wrap(err, "list stock movements")
}

func (r *PGRepository) ProductStock(ctx context.Context, productID string) (int, error) {
	var stock int
	err := r.DB.GetContext(ctx, &stock,
		`SELECT stock_quantity FROM products WHERE id = $1`, productID)
	return stock, errors.Wrap(err, "read product stock")
}

func (r *PGRepository) UpdateProductStock(ctx context.Context, productID string, stock int) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE products SET stock_quantity = $1, updated_at = NOW() WHERE id = $2`, stock, productID)
	return errors.Wrap(err, "update product stock")
}
