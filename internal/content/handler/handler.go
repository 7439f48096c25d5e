package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/veloura/boutique-service/internal/content"
)

type ContentHandler struct {
	client *content.Client
	logger *zap.Logger
}

func NewContentHandler(client *content.Client, log *zap.Logger) *ContentHandler {
	return &ContentHandler{
		client: client,
		logger: log,
	}
}

// GetPage handles GET /pages/:slug.
func (h *ContentHandler) GetPage(c fiber.Ctx) error {
	page, err := h.client.GetPage(c.Context(), c.Params("slug"))
	if err != nil {
		if errors.Is(err, content.ErrPageNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		h.logger.Error("failed to load cms page", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "content is temporarily unavailable"})
	}
	return c.JSON(page)
}
