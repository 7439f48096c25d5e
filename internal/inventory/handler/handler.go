package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/veloura/boutique-service/internal/auth"
	"github.com/veloura/boutique-service/internal/inventory"
	"github.com/veloura/boutique-service/internal/inventory/dto"
)

type InventoryHandler struct {
	uc       inventory.UseCase
	validate *validator.Validate
	logger   *zap.Logger
}

func NewInventoryHandler(uc inventory.UseCase, validate *validator.Validate, log *zap.Logger) *InventoryHandler {
	return &InventoryHandler{
		uc:       uc,
		validate: validate,
		logger:   log,
	}
}

type adjustStockRequest struct {
	Delta  int    `json:"delta" validate:"required"`
	Reason string `json:"reason" validate:"required"`
}

// AdjustStock handles POST /admin/variants/:id/adjustments.
func (h *InventoryHandler) AdjustStock(c fiber.Ctx) error {
	var req adjustStockRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := h.uc.AdjustStock(c.Context(), &dto.AdjustStockInput{
		VariantID: c.Params("id"),
		Delta:     req.Delta,
		Reason:    req.Reason,
		CreatedBy: auth.AdminUser(c),
	})
	if err != nil {
		return h.adjustError(c, err)
	}

	return c.JSON(result)
}

// adjustError keeps the two persistence failure points distinguishable for
// the operator: a failed insert saved nothing, a failed recompute left a
// correct ledger with a stale aggregate.
func (h *InventoryHandler) adjustError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, inventory.ErrReasonRequired),
		errors.Is(err, inventory.ErrZeroDelta):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, inventory.ErrVariantNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, inventory.ErrBusy):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, inventory.ErrAggregateStale):
		h.logger.Error("aggregate stock is stale", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "the movement was recorded but the stock aggregate could not be recomputed; re-trigger the recompute",
		})
	default:
		h.logger.Error("failed to adjust stock", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not save the adjustment"})
	}
}

type createVariantRequest struct {
	Name          string  `json:"name" validate:"required"`
	Value         string  `json:"value" validate:"required"`
	SKU           string  `json:"sku"`
	StockQuantity int     `json:"stock_quantity" validate:"gte=0"`
	PriceModifier float64 `json:"price_modifier"`
}

// CreateVariant handles POST /admin/products/:id/variants.
func (h *InventoryHandler) CreateVariant(c fiber.Ctx) error {
	var req createVariantRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	row, err := h.uc.CreateVariant(c.Context(), &dto.CreateVariantInput{
		ProductID:     c.Params("id"),
		Name:          req.Name,
		Value:         req.Value,
		SKU:           req.SKU,
		StockQuantity: req.StockQuantity,
		PriceModifier: req.PriceModifier,
	})
	if err != nil {
		return h.adjustError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(row)
}

// DeleteVariant handles DELETE /admin/variants/:id.
func (h *InventoryHandler) DeleteVariant(c fiber.Ctx) error {
	if err := h.uc.DeleteVariant(c.Context(), c.Params("id")); err != nil {
		return h.adjustError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Recompute handles POST /admin/products/:id/stock/recompute, the manual
// re-trigger for a stale aggregate.
func (h *InventoryHandler) Recompute(c fiber.Ctx) error {
	aggregate, err := h.uc.Recompute(c.Context(), c.Params("id"))
	if err != nil {
		h.logger.Error("failed to recompute stock", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not recompute stock"})
	}
	return c.JSON(fiber.Map{"aggregate_stock": aggregate})
}

// ListMovements handles GET /admin/products/:id/movements.
func (h *InventoryHandler) ListMovements(c fiber.Ctx) error {
	movements, total, err := h.uc.ListMovements(c.Context(), &dto.MovementFilters{
		ProductID: c.Params("id"),
		VariantID: c.Query("variant_id"),
		Page:      fiber.Query[int](c, "page", 1),
		PageSize:  fiber.Query[int](c, "page_size", 50),
	})
	if err != nil {
		h.logger.Error("failed to list movements", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load movements"})
	}

	return c.JSON(fiber.Map{
		"movements": movements,
		"total":     total,
	})
}
