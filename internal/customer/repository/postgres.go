package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/veloura/boutique-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, c *model.Customer) error {
	query := `
        INSERT INTO customers (
            id, email, first_name, last_name, phone, notify_launch,
            created_at, updated_at
        )
        VALUES (
            :id, :email, :first_name, :last_name, :phone, :notify_launch,
            :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return errors.Wrap(err, "insert customer")
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Customer, error) {
	return r.findOne(ctx, `SELECT * FROM customers WHERE id = $1 LIMIT 1`, id)
}

func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*model.Customer, error) {
	return r.findOne(ctx, `SELECT * FROM customers WHERE email = $1 LIMIT 1`, email)
}

func (r *PGRepository) findOne(ctx context.Context, query string, arg interface{}) (*model.Customer, error) {
	var customer model.Customer
	err := r.DB.GetContext(ctx, &customer, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find customer")
	}
	return &customer, nil
}

func (r *PGRepository) FindAll(ctx context.Context, page, pageSize int) ([]model.Customer, int, error) {
	var customers []model.Customer
	var count int

	if err := r.DB.GetContext(ctx, &count, `SELECT count(*) FROM customers`); err != nil {
		return nil, 0, errors.Wrap(err, "count customers")
	}

	offset := 0
	if page > 1 {
		offset = (page - 1) * pageSize
	}
	err := r.DB.SelectContext(ctx, &customers,
		`SELECT * FROM customers ORDER BY created_at DESC LIMIT $1 OFFSET $2`, pageSize, offset)
	if err != nil {
		return nil, 0, errors.Wrap(err, "list customers")
	}

	return customers, count, nil
}

func (r *PGRepository) Update(ctx context.Context, c *model.Customer) error {
	query := `
        UPDATE customers
        SET email = :email,
            first_name = :first_name,
            last_name = :last_name,
            phone = :phone,
            notify_launch = :notify_launch,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return errors.Wrap(err, "update customer")
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	return errors.Wrap(err, "delete customer")
}
