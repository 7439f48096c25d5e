package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/veloura/boutique-service/internal/category"
	"github.com/veloura/boutique-service/internal/category/dto"
	"github.com/veloura/boutique-service/internal/model"
)

type categoryUseCase struct {
	repo   category.Repository
	logger *zap.Logger
}

func NewCategoryUseCase(repo category.Repository, logger *zap.Logger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	unique, err := uc.repo.IsSlugUnique(ctx, input.Slug, "")
	if err != nil {
		return nil, err
	}
	if !unique {
		return nil, category.ErrSlugExists
	}

	now := time.Now()
	c := &model.Category{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ParentID:    input.ParentID,
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		SortOrder:   input.SortOrder,
		IsActive:    true,
	}

	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	c, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, category.ErrCategoryNotFound
	}
	return c, nil
}

func (uc *categoryUseCase) GetCategoryBySlug(ctx context.Context, slug string) (*model.Category, error) {
	c, err := uc.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, category.ErrCategoryNotFound
	}
	return c, nil
}

// ListCategories returns the flat list nested one level: top-level
// categories in sort order, each carrying its children.
func (uc *categoryUseCase) ListCategories(ctx context.Context, activeOnly bool) ([]model.Category, error) {
	flat, err := uc.repo.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	byParent := map[string][]model.Category{}
	var roots []model.Category
	for _, c := range flat {
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		byParent[*c.ParentID] = append(byParent[*c.ParentID], c)
	}
	for i := range roots {
		roots[i].Children = byParent[roots[i].ID]
	}
	return roots, nil
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error) {
	c, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, category.ErrCategoryNotFound
	}

	if input.Slug != c.Slug {
		unique, err := uc.repo.IsSlugUnique(ctx, input.Slug, input.ID)
		if err != nil {
			return nil, err
		}
		if !unique {
			return nil, category.ErrSlugExists
		}
	}

	c.ParentID = input.ParentID
	c.Name = input.Name
	c.Slug = input.Slug
	c.Description = input.Description
	c.ImageURL = input.ImageURL
	c.SortOrder = input.SortOrder
	c.IsActive = input.IsActive
	c.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id string) error {
	c, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return category.ErrCategoryNotFound
	}

	count, err := uc.repo.ProductCount(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return category.ErrCategoryInUse
	}

	return uc.repo.Delete(ctx, id)
}
