package category

import (
	"context"
	"errors"

	"github.com/veloura/boutique-service/internal/category/dto"
	"github.com/veloura/boutique-service/internal/model"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrSlugExists       = errors.New("slug already exists")
	ErrCategoryInUse    = errors.New("category still has products")
)

type UseCase interface {
	CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error)
	GetCategory(ctx context.Context, id string) (*model.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*model.Category, error)
	ListCategories(ctx context.Context, activeOnly bool) ([]model.Category, error)
	UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}
