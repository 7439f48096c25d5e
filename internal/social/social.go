package social

import (
	"context"
	"errors"
	"time"

	"github.com/veloura/boutique-service/internal/model"
)

var ErrPostNotFound = errors.New("social post not found")

type Repository interface {
	Create(ctx context.Context, post *model.SocialPost) error
	FindByID(ctx context.Context, id string) (*model.SocialPost, error)
	FindAll(ctx context.Context, platform string) ([]model.SocialPost, error)
	Update(ctx context.Context, post *model.SocialPost) error
	Delete(ctx context.Context, id string) error
}

type UpsertPostInput struct {
	Platform    string
	URL         string
	Caption     *string
	UTMCampaign string
	Impressions int
	Clicks      int
	Orders      int
	Revenue     float64
	PostedAt    time.Time
}

// PerformanceSummary aggregates post metrics per campaign for the
// dashboard.
type PerformanceSummary struct {
	UTMCampaign string  `json:"utm_campaign"`
	Posts       int     `json:"posts"`
	Impressions int     `json:"impressions"`
	Clicks      int     `json:"clicks"`
	Orders      int     `json:"orders"`
	Revenue     float64 `json:"revenue"`
}

type UseCase interface {
	CreatePost(ctx context.Context, input *UpsertPostInput) (*model.SocialPost, error)
	ListPosts(ctx context.Context, platform string) ([]model.SocialPost, error)
	UpdatePost(ctx context.Context, id string, input *UpsertPostInput) (*model.SocialPost, error)
	DeletePost(ctx context.Context, id string) error
	CampaignPerformance(ctx context.Context) ([]PerformanceSummary, error)
}
