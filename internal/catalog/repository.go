package catalog

import (
	"context"

	"github.com/veloura/boutique-service/internal/catalog/dto"
	"github.com/veloura/boutique-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindBySlug(ctx context.Context, slug string) (*model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id string) error

	IsSKUUnique(ctx context.Context, sku, excludeID string) (bool, error)
	IsSlugUnique(ctx context.Context, slug, excludeID string) (bool, error)

	// VariantRows loads a product's rows for index computation. The index
	// built from them is ephemeral and must be rebuilt per read.
	VariantRows(ctx context.Context, productID string) ([]model.VariantRow, error)
}
