package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/veloura/boutique-service/internal/catalog"
	"github.com/veloura/boutique-service/internal/catalog/dto"
	"github.com/veloura/boutique-service/internal/model"
	"github.com/veloura/boutique-service/internal/platform/cache"
	"github.com/veloura/boutique-service/internal/platform/search"
	"github.com/veloura/boutique-service/internal/variant"
)

const (
	productListCacheTTL = 5 * time.Minute
	productIndexName    = "products"
)

type catalogUseCase struct {
	repo   catalog.Repository
	cache  *cache.RedisClient
	es     *search.Client
	logger *zap.Logger
}

// NewCatalogUseCase builds the product usecase. cache and es may be nil,
// in which case listing falls back to the database on every call.
func NewCatalogUseCase(repo catalog.Repository, cacheClient *cache.RedisClient, es *search.Client, logger *zap.Logger) catalog.UseCase {
	return &catalogUseCase{
		repo:   repo,
		cache:  cacheClient,
		es:     es,
		logger: logger,
	}
}

func (uc *catalogUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	unique, err := uc.repo.IsSKUUnique(ctx, input.SKU, "")
	if err != nil {
		return nil, err
	}
	if !unique {
		return nil, catalog.ErrSKUExists
	}

	unique, err = uc.repo.IsSlugUnique(ctx, input.Slug, "")
	if err != nil {
		return nil, err
	}
	if !unique {
		return nil, catalog.ErrSlugExists
	}

	now := time.Now()
	product := &model.Product{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CategoryID:  input.CategoryID,
		SKU:         input.SKU,
		Slug:        input.Slug,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		SalePrice:   input.SalePrice,
		ImageURL:    input.ImageURL,
		IsFeatured:  input.IsFeatured,
		IsActive:    true,
	}

	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	uc.afterWrite(product, false)
	return product, nil
}

func (uc *catalogUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	product, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, catalog.ErrProductNotFound
	}
	return product, nil
}

// ProductDetail resolves everything the product page needs: the parsed
// variant index, the auto-completed selection and its stock/price quote.
func (uc *catalogUseCase) ProductDetail(ctx context.Context, slug string, sel variant.Selection) (*dto.ProductDetail, error) {
	product, err := uc.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, catalog.ErrProductNotFound
	}

	rows, err := uc.repo.VariantRows(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	idx := variant.Parse(rows)
	for _, w := range idx.Warnings {
		uc.logger.Warn("variant data inconsistency",
			zap.String("productID", product.ID),
			zap.String("warning", w))
	}

	sel = idx.AutoSelect(sel)
	quote := variant.Resolve(idx, product.BasePrice(), product.StockQuantity, sel)

	return &dto.ProductDetail{
		Product:   product,
		Index:     idx,
		Selection: sel,
		Quote:     quote,
		CartKey:   variant.CartKey(product.ID, sel.Color, sel.Size),
	}, nil
}

func (uc *catalogUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	cacheKey := uc.listCacheKey(filters)

	if uc.cache != nil {
		if cached, err := uc.cache.Client.Get(ctx, cacheKey).Result(); err == nil {
			var payload cachedProductList
			if err := json.Unmarshal([]byte(cached), &payload); err == nil {
				return payload.Products, payload.Total, nil
			}
		}
	}

	if uc.es != nil && filters.SearchQuery != "" {
		products, total, err := uc.searchProducts(ctx, filters)
		if err == nil {
			return products, total, nil
		}
		uc.logger.Warn("search unavailable, falling back to database", zap.Error(err))
	}

	products, total, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	if uc.cache != nil {
		payload, err := json.Marshal(cachedProductList{Products: products, Total: total})
		if err == nil {
			uc.cache.Client.Set(ctx, cacheKey, payload, productListCacheTTL)
		}
	}

	return products, total, nil
}

func (uc *catalogUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	product, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, catalog.ErrProductNotFound
	}

	if input.SKU != product.SKU {
		unique, err := uc.repo.IsSKUUnique(ctx, input.SKU, input.ID)
		if err != nil {
			return nil, err
		}
		if !unique {
			return nil, catalog.ErrSKUExists
		}
	}
	if input.Slug != product.Slug {
		unique, err := uc.repo.IsSlugUnique(ctx, input.Slug, input.ID)
		if err != nil {
			return nil, err
		}
		if !unique {
			return nil, catalog.ErrSlugExists
		}
	}

	product.CategoryID = input.CategoryID
	product.SKU = input.SKU
	product.Slug = input.Slug
	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.SalePrice = input.SalePrice
	product.ImageURL = input.ImageURL
	product.IsFeatured = input.IsFeatured
	product.IsActive = input.IsActive
	product.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	uc.afterWrite(product, false)
	return product, nil
}

func (uc *catalogUseCase) DeleteProduct(ctx context.Context, id string) error {
	product, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return catalog.ErrProductNotFound
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.afterWrite(product, true)
	return nil
}

type cachedProductList struct {
	Products []model.Product `json:"products"`
	Total    int             `json:"total"`
}

func (uc *catalogUseCase) listCacheKey(filters *dto.ProductFilters) string {
	raw, _ := json.Marshal(filters)
	return fmt.Sprintf("products:list:%x", md5.Sum(raw))
}

// afterWrite invalidates the list cache and syncs the search index in the
// background so writes do not block on secondary stores.
func (uc *catalogUseCase) afterWrite(product *model.Product, deleted bool) {
	if uc.cache != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			iter := uc.cache.Client.Scan(ctx, 0, "products:list:*", 0).Iterator()
			for iter.Next(ctx) {
				uc.cache.Client.Del(ctx, iter.Val())
			}
			if err := iter.Err(); err != nil {
				uc.logger.Warn("cache invalidation failed", zap.Error(err))
			}
		}()
	}

	if uc.es != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			var err error
			if deleted {
				err = uc.es.Delete(ctx, productIndexName, product.ID)
			} else {
				err = uc.es.Index(ctx, productIndexName, product.ID, product)
			}
			if err != nil {
				uc.logger.Warn("search sync failed",
					zap.String("productID", product.ID),
					zap.Error(err))
			}
		}()
	}
}

func (uc *catalogUseCase) searchProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	must := []map[string]interface{}{
		{
			"multi_match": map[string]interface{}{
				"query":  filters.SearchQuery,
				"fields": []string{"name^2", "description", "sku"},
			},
		},
	}
	if filters.CategoryID != "" {
		must = append(must, map[string]interface{}{
			"term": map[string]interface{}{"category_id": filters.CategoryID},
		})
	}
	if filters.IsActive != nil {
		must = append(must, map[string]interface{}{
			"term": map[string]interface{}{"is_active": *filters.IsActive},
		})
	}

	size := filters.PageSize
	if size <= 0 {
		size = 20
	}
	from := 0
	if filters.Page > 1 {
		from = (filters.Page - 1) * size
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{"must": must},
		},
		"from": from,
		"size": size,
	}

	result, err := uc.es.Search(ctx, productIndexName, query)
	if err != nil {
		return nil, 0, err
	}

	products := make([]model.Product, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		var p model.Product
		if err := json.Unmarshal(hit.Source, &p); err != nil {
			continue
		}
		products = append(products, p)
	}

	return products, result.Hits.Total.Value, nil
}
