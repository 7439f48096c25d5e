package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/veloura/boutique-service/internal/catalog"
	"github.com/veloura/boutique-service/internal/catalog/dto"
	"github.com/veloura/boutique-service/internal/variant"
)

type CatalogHandler struct {
	uc       catalog.UseCase
	validate *validator.Validate
	logger   *zap.Logger
}

func NewCatalogHandler(uc catalog.UseCase, validate *validator.Validate, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		uc:       uc,
		validate: validate,
		logger:   log,
	}
}

// ListProducts handles GET /products. The storefront only ever sees active
// products; admins list through ListAllProducts.
func (h *CatalogHandler) ListProducts(c fiber.Ctx) error {
	active := true
	filters := &dto.ProductFilters{
		CategoryID:  c.Query("category_id"),
		IsActive:    &active,
		SearchQuery: c.Query("q"),
		SortBy:      c.Query("sort_by"),
		SortOrder:   c.Query("sort_order"),
		Page:        fiber.Query[int](c, "page", 1),
		PageSize:    fiber.Query[int](c, "page_size", 20),
	}
	if c.Query("featured") != "" {
		featured := fiber.Query[bool](c, "featured")
		filters.IsFeatured = &featured
	}

	products, total, err := h.uc.ListProducts(c.Context(), filters)
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load products"})
	}

	return c.JSON(fiber.Map{
		"products": products,
		"total":    total,
	})
}

// ProductDetail handles GET /products/:slug. An incomplete selection is
// auto-completed when an axis has a single option, so ?color=Noir alone can
// still yield a purchasable quote on a one-size product.
func (h *CatalogHandler) ProductDetail(c fiber.Ctx) error {
	detail, err := h.uc.ProductDetail(c.Context(), c.Params("slug"), variant.Selection{
		Color: c.Query("color"),
		Size:  c.Query("size"),
	})
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		h.logger.Error("failed to load product detail", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load product"})
	}

	return c.JSON(detail)
}

// ListAllProducts handles GET /admin/products, without the is_active filter
// the storefront listing forces.
func (h *CatalogHandler) ListAllProducts(c fiber.Ctx) error {
	filters := &dto.ProductFilters{
		CategoryID:  c.Query("category_id"),
		SearchQuery: c.Query("q"),
		SortBy:      c.Query("sort_by"),
		SortOrder:   c.Query("sort_order"),
		Page:        fiber.Query[int](c, "page", 1),
		PageSize:    fiber.Query[int](c, "page_size", 20),
	}

	products, total, err := h.uc.ListProducts(c.Context(), filters)
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load products"})
	}

	return c.JSON(fiber.Map{
		"products": products,
		"total":    total,
	})
}

// GetProduct handles GET /admin/products/:id.
func (h *CatalogHandler) GetProduct(c fiber.Ctx) error {
	product, err := h.uc.GetProduct(c.Context(), c.Params("id"))
	if err != nil {
		return h.writeError(c, err, "could not load product")
	}
	return c.JSON(product)
}

type productRequest struct {
	CategoryID  *string  `json:"category_id"`
	SKU         string   `json:"sku" validate:"required"`
	Slug        string   `json:"slug" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	Description *string  `json:"description"`
	Price       float64  `json:"price" validate:"gte=0"`
	SalePrice   *float64 `json:"sale_price" validate:"omitempty,gte=0"`
	ImageURL    *string  `json:"image_url"`
	IsFeatured  bool     `json:"is_featured"`
	IsActive    bool     `json:"is_active"`
}

// CreateProduct handles POST /admin/products.
func (h *CatalogHandler) CreateProduct(c fiber.Ctx) error {
	var req productRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	product, err := h.uc.CreateProduct(c.Context(), &dto.CreateProductInput{
		CategoryID:  req.CategoryID,
		SKU:         req.SKU,
		Slug:        req.Slug,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		SalePrice:   req.SalePrice,
		ImageURL:    req.ImageURL,
		IsFeatured:  req.IsFeatured,
	})
	if err != nil {
		return h.writeError(c, err, "could not create product")
	}

	return c.Status(fiber.StatusCreated).JSON(product)
}

// UpdateProduct handles PUT /admin/products/:id.
func (h *CatalogHandler) UpdateProduct(c fiber.Ctx) error {
	var req productRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	product, err := h.uc.UpdateProduct(c.Context(), &dto.UpdateProductInput{
		ID:          c.Params("id"),
		CategoryID:  req.CategoryID,
		SKU:         req.SKU,
		Slug:        req.Slug,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		SalePrice:   req.SalePrice,
		ImageURL:    req.ImageURL,
		IsFeatured:  req.IsFeatured,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return h.writeError(c, err, "could not update product")
	}

	return c.JSON(product)
}

// DeleteProduct handles DELETE /admin/products/:id.
func (h *CatalogHandler) DeleteProduct(c fiber.Ctx) error {
	if err := h.uc.DeleteProduct(c.Context(), c.Params("id")); err != nil {
		return h.writeError(c, err, "could not delete product")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CatalogHandler) writeError(c fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, catalog.ErrSKUExists),
		errors.Is(err, catalog.ErrSlugExists):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		h.logger.Error(fallback, zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fallback})
	}
}
