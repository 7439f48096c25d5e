package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/veloura/boutique-service/internal/customer"
)

type CustomerHandler struct {
	uc       customer.UseCase
	validate *validator.Validate
	logger   *zap.Logger
}

func NewCustomerHandler(uc customer.UseCase, validate *validator.Validate, log *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		uc:       uc,
		validate: validate,
		logger:   log,
	}
}

type customerRequest struct {
	Email        string  `json:"email" validate:"required,email"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Phone        *string `json:"phone"`
	NotifyLaunch bool    `json:"notify_launch"`
}

// RegisterCustomer handles POST /customers.
func (h *CustomerHandler) RegisterCustomer(c fiber.Ctx) error {
	var req customerRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	created, err := h.uc.RegisterCustomer(c.Context(), &customer.UpsertInput{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		NotifyLaunch: req.NotifyLaunch,
	})
	if err != nil {
		return h.writeError(c, err, "could not register customer")
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetCustomer handles GET /admin/customers/:id.
func (h *CustomerHandler) GetCustomer(c fiber.Ctx) error {
	found, err := h.uc.GetCustomer(c.Context(), c.Params("id"))
	if err != nil {
		return h.writeError(c, err, "could not load customer")
	}
	return c.JSON(found)
}

// ListCustomers handles GET /admin/customers.
func (h *CustomerHandler) ListCustomers(c fiber.Ctx) error {
	customers, total, err := h.uc.ListCustomers(c.Context(),
		fiber.Query[int](c, "page", 1),
		fiber.Query[int](c, "page_size", 50),
	)
	if err != nil {
		h.logger.Error("failed to list customers", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load customers"})
	}

	return c.JSON(fiber.Map{
		"customers": customers,
		"total":     total,
	})
}

// UpdateCustomer handles PUT /admin/customers/:id.
func (h *CustomerHandler) UpdateCustomer(c fiber.Ctx) error {
	var req customerRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updated, err := h.uc.UpdateCustomer(c.Context(), c.Params("id"), &customer.UpsertInput{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		NotifyLaunch: req.NotifyLaunch,
	})
	if err != nil {
		return h.writeError(c, err, "could not update customer")
	}

	return c.JSON(updated)
}

// DeleteCustomer handles DELETE /admin/customers/:id.
func (h *CustomerHandler) DeleteCustomer(c fiber.Ctx) error {
	if err := h.uc.DeleteCustomer(c.Context(), c.Params("id")); err != nil {
		return h.writeError(c, err, "could not delete customer")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CustomerHandler) writeError(c fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, customer.ErrCustomerNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, customer.ErrEmailExists):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		h.logger.Error(fallback, zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fallback})
	}
}
