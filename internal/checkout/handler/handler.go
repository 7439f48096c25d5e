package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/veloura/boutique-service/internal/checkout"
	"github.com/veloura/boutique-service/internal/order"
	"github.com/veloura/boutique-service/internal/order/dto"
)

type CheckoutHandler struct {
	uc       checkout.UseCase
	validate *validator.Validate
	logger   *zap.Logger
}

func NewCheckoutHandler(uc checkout.UseCase, validate *validator.Validate, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		uc:       uc,
		validate: validate,
		logger:   log,
	}
}

type checkoutLineRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type startCheckoutRequest struct {
	Email string                `json:"email" validate:"required,email"`
	Lines []checkoutLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// StartCheckout handles POST /checkout/sessions.
func (h *CheckoutHandler) StartCheckout(c fiber.Ctx) error {
	var req startCheckoutRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	input := &checkout.StartCheckoutInput{Email: req.Email}
	for _, line := range req.Lines {
		input.Lines = append(input.Lines, dto.OrderLineInput{
			ProductID: line.ProductID,
			Color:     line.Color,
			Size:      line.Size,
			Quantity:  line.Quantity,
		})
	}

	result, err := h.uc.StartCheckout(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrEmptyOrder),
			errors.Is(err, order.ErrLineNotAvailable):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		default:
			h.logger.Error("failed to start checkout", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not start checkout"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// CompleteCheckout handles GET /checkout/complete?session_id=, the payment
// provider's success redirect.
func (h *CheckoutHandler) CompleteCheckout(c fiber.Ctx) error {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "session_id is required"})
	}

	o, err := h.uc.CompleteCheckout(c.Context(), sessionID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		h.logger.Error("failed to complete checkout", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not complete checkout"})
	}

	return c.JSON(o)
}

type notifyMeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// NotifyMe handles POST /notify-me.
func (h *CheckoutHandler) NotifyMe(c fiber.Ctx) error {
	var req notifyMeRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.uc.NotifyMe(c.Context(), req.Email); err != nil {
		h.logger.Error("failed to record notify-me opt-in", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not record opt-in"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"subscribed": true})
}
