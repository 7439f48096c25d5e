package handler

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/veloura/boutique-service/internal/social"
)

type SocialHandler struct {
	uc       social.UseCase
	validate *validator.Validate
	logger   *zap.Logger
}

func NewSocialHandler(uc social.UseCase, validate *validator.Validate, log *zap.Logger) *SocialHandler {
	return &SocialHandler{
		uc:       uc,
		validate: validate,
		logger:   log,
	}
}

type postRequest struct {
	Platform    string    `json:"platform" validate:"required,oneof=instagram tiktok pinterest"`
	URL         string    `json:"url" validate:"required,url"`
	Caption     *string   `json:"caption"`
	UTMCampaign string    `json:"utm_campaign" validate:"required"`
	Impressions int       `json:"impressions" validate:"gte=0"`
	Clicks      int       `json:"clicks" validate:"gte=0"`
	Orders      int       `json:"orders" validate:"gte=0"`
	Revenue     float64   `json:"revenue" validate:"gte=0"`
	PostedAt    time.Time `json:"posted_at" validate:"required"`
}

func (r *postRequest) toInput() *social.UpsertPostInput {
	return &social.UpsertPostInput{
		Platform:    r.Platform,
		URL:         r.URL,
		Caption:     r.Caption,
		UTMCampaign: r.UTMCampaign,
		Impressions: r.Impressions,
		Clicks:      r.Clicks,
		Orders:      r.Orders,
		Revenue:     r.Revenue,
		PostedAt:    r.PostedAt,
	}
}

// CreatePost handles POST /admin/social/posts.
func (h *SocialHandler) CreatePost(c fiber.Ctx) error {
	var req postRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	post, err := h.uc.CreatePost(c.Context(), req.toInput())
	if err != nil {
		h.logger.Error("failed to create social post", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not create post"})
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// ListPosts handles GET /admin/social/posts.
func (h *SocialHandler) ListPosts(c fiber.Ctx) error {
	posts, err := h.uc.ListPosts(c.Context(), c.Query("platform"))
	if err != nil {
		h.logger.Error("failed to list social posts", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load posts"})
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// UpdatePost handles PUT /admin/social/posts/:id.
func (h *SocialHandler) UpdatePost(c fiber.Ctx) error {
	var req postRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	post, err := h.uc.UpdatePost(c.Context(), c.Params("id"), req.toInput())
	if err != nil {
		if errors.Is(err, social.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		h.logger.Error("failed to update social post", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not update post"})
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /admin/social/posts/:id.
func (h *SocialHandler) DeletePost(c fiber.Ctx) error {
	if err := h.uc.DeletePost(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, social.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		h.logger.Error("failed to delete social post", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not delete post"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CampaignPerformance handles GET /admin/social/performance.
func (h *SocialHandler) CampaignPerformance(c fiber.Ctx) error {
	summaries, err := h.uc.CampaignPerformance(c.Context())
	if err != nil {
		h.logger.Error("failed to aggregate campaign performance", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load performance"})
	}
	return c.JSON(fiber.Map{"campaigns": summaries})
}
