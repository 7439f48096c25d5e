package catalog

import (
	"context"
	"errors"

	"github.com/veloura/boutique-service/internal/catalog/dto"
	"github.com/veloura/boutique-service/internal/model"
	"github.com/veloura/boutique-service/internal/variant"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrSKUExists       = errors.New("SKU already exists")
	ErrSlugExists      = errors.New("slug already exists")
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	ProductDetail(ctx context.Context, slug string, sel variant.Selection) (*dto.ProductDetail, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}
