package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/veloura/boutique-service/internal/model"
	"github.com/veloura/boutique-service/internal/order/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, o *model.Order) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin order tx")
	}
	defer tx.Rollback()

	_, err = tx.NamedExecContext(ctx, `
        INSERT INTO orders (
            id, customer_id, email, status, currency, total, stripe_session_id,
            created_at, updated_at
        )
        VALUES (
            :id, :customer_id, :email, :status, :currency, :total, :stripe_session_id,
            :created_at, :updated_at
        )
    `, o)
	if err != nil {
		return errors.Wrap(err, "insert order")
	}

	for i := range o.Items {
		o.Items[i].OrderID = o.ID
		_, err = tx.NamedExecContext(ctx, `
            INSERT INTO order_items (
                id, order_id, product_id, variant_key, product_name, color, size,
                quantity, unit_price
            )
            VALUES (
                :id, :order_id, :product_id, :variant_key, :product_name, :color, :size,
                :quantity, :unit_price
            )
        `, o.Items[i])
		if err != nil {
			return errors.Wrap(err, "insert order item")
		}
	}

	return errors.Wrap(tx.Commit(), "commit order tx")
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	return r.findOne(ctx, `SELECT * FROM orders WHERE id = $1 LIMIT 1`, id)
}

func (r *PGRepository) FindBySessionID(ctx context.Context, sessionID string) (*model.Order, error) {
	return r.findOne(ctx, `SELECT * FROM orders WHERE stripe_session_id = $1 LIMIT 1`, sessionID)
}

func (r *PGRepository) findOne(ctx context.Context, query string, arg interface{}) (*model.Order, error) {
	var order model.Order
	err := r.DB.GetContext(ctx, &order, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find order")
	}

	err = r.DB.SelectContext(ctx, &order.Items,
		`SELECT * FROM order_items WHERE order_id = $1 ORDER BY id`, order.ID)
	if err != nil {
		return nil, errors.Wrap(err, "load order items")
	}
	return &order, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.OrderFilters) ([]model.Order, int, error) {
	var orders []model.Order
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}
	if f.Email != "" {
		conditions = append(conditions, "email = :email")
		args["email"] = f.Email
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM orders" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, errors.Wrap(err, "count orders")
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return nil, 0, errors.Wrap(err, "scan order count")
		}
	}

	query := "SELECT * FROM orders" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, errors.Wrap(err, "prepare order query")
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &orders, args); err != nil {
		return nil, 0, errors.Wrap(err, "list orders")
	}

	return orders, count, nil
}

func (r *PGRepository) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = now() WHERE id = $2`, status, id)
	return errors.Wrap(err, "update order status")
}

func (r *PGRepository) AttachSession(ctx context.Context, id, sessionID string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE orders SET stripe_session_id = $1, updated_at = now() WHERE id = $2`, sessionID, id)
	return errors.Wrap(err, "attach checkout session")
}
