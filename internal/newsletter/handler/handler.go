package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/veloura/boutique-service/internal/newsletter"
)

type NewsletterHandler struct {
	uc       newsletter.UseCase
	validate *validator.Validate
	logger   *zap.Logger
}

func NewNewsletterHandler(uc newsletter.UseCase, validate *validator.Validate, log *zap.Logger) *NewsletterHandler {
	return &NewsletterHandler{
		uc:       uc,
		validate: validate,
		logger:   log,
	}
}

type subscribeRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Source string `json:"source" validate:"omitempty,oneof=footer notify_me checkout"`
}

// Subscribe handles POST /newsletter/subscribe.
func (h *NewsletterHandler) Subscribe(c fiber.Ctx) error {
	var req subscribeRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.Source == "" {
		req.Source = "footer"
	}

	s, err := h.uc.Subscribe(c.Context(), req.Email, req.Source)
	if err != nil {
		h.logger.Error("failed to subscribe", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not subscribe"})
	}

	return c.Status(fiber.StatusCreated).JSON(s)
}

// Unsubscribe handles GET /newsletter/unsubscribe?email=, the link target
// from campaign footers.
func (h *NewsletterHandler) Unsubscribe(c fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "email is required"})
	}

	if err := h.uc.Unsubscribe(c.Context(), email); err != nil {
		h.logger.Error("failed to unsubscribe", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not unsubscribe"})
	}

	return c.JSON(fiber.Map{"unsubscribed": true})
}

type campaignRequest struct {
	Subject     string  `json:"subject" validate:"required"`
	PreviewText *string `json:"preview_text"`
	BodyHTML    string  `json:"body_html" validate:"required"`
	UTMCampaign string  `json:"utm_campaign" validate:"required"`
}

// CreateCampaign handles POST /admin/newsletter/campaigns.
func (h *NewsletterHandler) CreateCampaign(c fiber.Ctx) error {
	var req campaignRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	campaign, err := h.uc.CreateCampaign(c.Context(), &newsletter.CreateCampaignInput{
		Subject:     req.Subject,
		PreviewText: req.PreviewText,
		BodyHTML:    req.BodyHTML,
		UTMCampaign: req.UTMCampaign,
	})
	if err != nil {
		h.logger.Error("failed to create campaign", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not create campaign"})
	}

	return c.Status(fiber.StatusCreated).JSON(campaign)
}

// ListCampaigns handles GET /admin/newsletter/campaigns.
func (h *NewsletterHandler) ListCampaigns(c fiber.Ctx) error {
	campaigns, err := h.uc.ListCampaigns(c.Context())
	if err != nil {
		h.logger.Error("failed to list campaigns", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load campaigns"})
	}
	return c.JSON(fiber.Map{"campaigns": campaigns})
}

// SendCampaign handles POST /admin/newsletter/campaigns/:id/send.
func (h *NewsletterHandler) SendCampaign(c fiber.Ctx) error {
	campaign, err := h.uc.SendCampaign(c.Context(), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, newsletter.ErrCampaignNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, newsletter.ErrAlreadySent):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		default:
			h.logger.Error("failed to send campaign", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not send campaign"})
		}
	}
	return c.JSON(campaign)
}
