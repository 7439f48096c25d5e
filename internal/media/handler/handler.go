package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/veloura/boutique-service/internal/media"
)

type MediaHandler struct {
	svc      *media.Service
	validate *validator.Validate
	logger   *zap.Logger
}

func NewMediaHandler(svc *media.Service, validate *validator.Validate, log *zap.Logger) *MediaHandler {
	return &MediaHandler{
		svc:      svc,
		validate: validate,
		logger:   log,
	}
}

type uploadURLRequest struct {
	Filename    string `json:"filename" validate:"required"`
	ContentType string `json:"content_type" validate:"required,oneof=image/jpeg image/png image/webp"`
}

// SignedUploadURL handles POST /admin/products/:id/images/upload-url.
func (h *MediaHandler) SignedUploadURL(c fiber.Ctx) error {
	var req uploadURLRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ticket, err := h.svc.SignedUploadURL(c.Context(), c.Params("id"), req.Filename, req.ContentType)
	if err != nil {
		h.logger.Error("failed to sign upload url", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not create upload url"})
	}

	return c.Status(fiber.StatusCreated).JSON(ticket)
}
