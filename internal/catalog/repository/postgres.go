package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/veloura/boutique-service/internal/catalog/dto"
	"github.com/veloura/boutique-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (
            id, category_id, sku, slug, name, description, price, sale_price,
            stock_quantity, image_url, is_featured, is_active, created_at, updated_at
        )
        VALUES (
            :id, :category_id, :sku, :slug, :name, :description, :price, :sale_price,
            :stock_quantity, :image_url, :is_featured, :is_active, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return errors.Wrap(err, "insert product")
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	return r.findOne(ctx, `SELECT * FROM products WHERE id = $1 LIMIT 1`, id)
}

func (r *PGRepository) FindBySlug(ctx context.Context, slug string) (*model.Product, error) {
	return r.findOne(ctx, `SELECT * FROM products WHERE slug = $1 LIMIT 1`, slug)
}

func (r *PGRepository) findOne(ctx context.Context, query string, arg interface{}) (*model.Product, error) {
	var product model.Product
	err := r.DB.GetContext(ctx, &product, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find product")
	}
	return &product, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	var products []model.Product
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.CategoryID != "" {
		conditions = append(conditions, "category_id = :category_id")
		args["category_id"] = f.CategoryID
	}
	if f.IsActive != nil {
		conditions = append(conditions, "is_active = :is_active")
		args["is_active"] = *f.IsActive
	}
	if f.IsFeatured != nil {
		conditions = append(conditions, "is_featured = :is_featured")
		args["is_featured"] = *f.IsFeatured
	}
	if f.SearchQuery != "" {
		conditions = append(conditions, "(name ILIKE :search OR sku ILIKE :search)")
		args["search"] = "%" + f.SearchQuery + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM products" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, errors.Wrap(err, "count products")
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return nil, 0, errors.Wrap(err, "scan product count")
		}
	}

	orderBy := "created_at DESC"
	if f.SortBy != "" {
		// Whitelisted sort fields only.
		switch f.SortBy {
		case "name":
			orderBy = "name"
		case "price":
			orderBy = "price"
		case "created_at":
			orderBy = "created_at"
		}
		if strings.ToLower(f.SortOrder) == "asc" {
			orderBy += " ASC"
		} else {
			orderBy += " DESC"
		}
	}

	query := fmt.Sprintf("SELECT * FROM products%s ORDER BY %s", whereClause, orderBy)
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, errors.Wrap(err, "prepare product query")
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &products, args)
	if err != nil {
		return nil, 0, errors.Wrap(err, "list products")
	}

	return products, count, nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
        UPDATE products
        SET category_id = :category_id,
            sku = :sku,
            slug = :slug,
            name = :name,
            description = :description,
            price = :price,
            sale_price = :sale_price,
            image_url = :image_url,
            is_featured = :is_featured,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return errors.Wrap(err, "update product")
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	return errors.Wrap(err, "delete product")
}

func (r *PGRepository) IsSKUUnique(ctx context.Context, sku, excludeID string) (bool, error) {
	return r.isUnique(ctx, "sku", sku, excludeID)
}

func (r *PGRepository) IsSlugUnique(ctx context.Context, slug, excludeID string) (bool, error) {
	return r.isUnique(ctx, "slug", slug, excludeID)
}

func (r *PGRepository) isUnique(ctx context.Context, column, value, excludeID string) (bool, error) {
	var count int
	query := fmt.Sprintf(`SELECT count(*) FROM products WHERE %s = $1`, column)
	args := []interface{}{value}
	if excludeID != "" {
		query += ` AND id != $2`
		args = append(args, excludeID)
	}

	if err := r.DB.GetContext(ctx, &count, query, args...); err != nil {
		return false, errors.Wrap(err, "uniqueness check")
	}
	return count == 0, nil
}

func (r *PGRepository) VariantRows(ctx context.Context, productID string) ([]model.VariantRow, error) {
	var rows []model.VariantRow
	err := r.DB.SelectContext(ctx, &rows,
		`SELECT * FROM variant_rows WHERE product_id = $1 ORDER BY created_at, id`, productID)
	return rows, errors.Wrap(err, "list variant rows")
}
