package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/veloura/boutique-service/internal/category"
	"github.com/veloura/boutique-service/internal/category/dto"
)

type CategoryHandler struct {
	uc       category.UseCase
	validate *validator.Validate
	logger   *zap.Logger
}

func NewCategoryHandler(uc category.UseCase, validate *validator.Validate, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		uc:       uc,
		validate: validate,
		logger:   log,
	}
}

// ListCategories handles GET /categories (storefront, active only) and
// GET /admin/categories when mounted there.
func (h *CategoryHandler) ListCategories(activeOnly bool) fiber.Handler {
	return func(c fiber.Ctx) error {
		categories, err := h.uc.ListCategories(c.Context(), activeOnly)
		if err != nil {
			h.logger.Error("failed to list categories", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load categories"})
		}
		return c.JSON(fiber.Map{"categories": categories})
	}
}

// GetCategoryBySlug handles GET /categories/:slug.
func (h *CategoryHandler) GetCategoryBySlug(c fiber.Ctx) error {
	cat, err := h.uc.GetCategoryBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return h.writeError(c, err, "could not load category")
	}
	return c.JSON(cat)
}

type categoryRequest struct {
	ParentID    *string `json:"parent_id"`
	Name        string  `json:"name" validate:"required"`
	Slug        string  `json:"slug" validate:"required"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	SortOrder   int     `json:"sort_order"`
	IsActive    bool    `json:"is_active"`
}

// CreateCategory handles POST /admin/categories.
func (h *CategoryHandler) CreateCategory(c fiber.Ctx) error {
	var req categoryRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	cat, err := h.uc.CreateCategory(c.Context(), &dto.CreateCategoryInput{
		ParentID:    req.ParentID,
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		return h.writeError(c, err, "could not create category")
	}

	return c.Status(fiber.StatusCreated).JSON(cat)
}

// UpdateCategory handles PUT /admin/categories/:id.
func (h *CategoryHandler) UpdateCategory(c fiber.Ctx) error {
	var req categoryRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	cat, err := h.uc.UpdateCategory(c.Context(), &dto.UpdateCategoryInput{
		ID:          c.Params("id"),
		ParentID:    req.ParentID,
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		SortOrder:   req.SortOrder,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return h.writeError(c, err, "could not update category")
	}

	return c.JSON(cat)
}

// DeleteCategory handles DELETE /admin/categories/:id.
func (h *CategoryHandler) DeleteCategory(c fiber.Ctx) error {
	if err := h.uc.DeleteCategory(c.Context(), c.Params("id")); err != nil {
		return h.writeError(c, err, "could not delete category")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CategoryHandler) writeError(c fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, category.ErrCategoryNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, category.ErrSlugExists),
		errors.Is(err, category.ErrCategoryInUse):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		h.logger.Error(fallback, zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fallback})
	}
}
