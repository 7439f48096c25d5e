package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/veloura/boutique-service/internal/order"
	"github.com/veloura/boutique-service/internal/order/dto"
)

type OrderHandler struct {
	uc       order.UseCase
	validate *validator.Validate
	logger   *zap.Logger
}

func NewOrderHandler(uc order.UseCase, validate *validator.Validate, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		uc:       uc,
		validate: validate,
		logger:   log,
	}
}

type orderLineRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type createOrderRequest struct {
	Email string             `json:"email" validate:"required,email"`
	Lines []orderLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// CreateOrder handles POST /orders.
func (h *OrderHandler) CreateOrder(c fiber.Ctx) error {
	var req createOrderRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	input := &dto.CreateOrderInput{Email: req.Email}
	for _, line := range req.Lines {
		input.Lines = append(input.Lines, dto.OrderLineInput{
			ProductID: line.ProductID,
			Color:     line.Color,
			Size:      line.Size,
			Quantity:  line.Quantity,
		})
	}

	o, err := h.uc.CreateOrder(c.Context(), input)
	if err != nil {
		return h.writeError(c, err, "could not create order")
	}

	return c.Status(fiber.StatusCreated).JSON(o)
}

// GetOrder handles GET /admin/orders/:id.
func (h *OrderHandler) GetOrder(c fiber.Ctx) error {
	o, err := h.uc.GetOrder(c.Context(), c.Params("id"))
	if err != nil {
		return h.writeError(c, err, "could not load order")
	}
	return c.JSON(o)
}

// ListOrders handles GET /admin/orders.
func (h *OrderHandler) ListOrders(c fiber.Ctx) error {
	orders, total, err := h.uc.ListOrders(c.Context(), &dto.OrderFilters{
		Status:   c.Query("status"),
		Email:    c.Query("email"),
		Page:     fiber.Query[int](c, "page", 1),
		PageSize: fiber.Query[int](c, "page_size", 50),
	})
	if err != nil {
		h.logger.Error("failed to list orders", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load orders"})
	}

	return c.JSON(fiber.Map{
		"orders": orders,
		"total":  total,
	})
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending paid shipped cancelled"`
}

// UpdateStatus handles PATCH /admin/orders/:id/status.
func (h *OrderHandler) UpdateStatus(c fiber.Ctx) error {
	var req updateStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	o, err := h.uc.UpdateStatus(c.Context(), c.Params("id"), req.Status)
	if err != nil {
		return h.writeError(c, err, "could not update order status")
	}
	return c.JSON(o)
}

func (h *OrderHandler) writeError(c fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, order.ErrEmptyOrder),
		errors.Is(err, order.ErrLineNotAvailable):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, order.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		h.logger.Error(fallback, zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fallback})
	}
}
