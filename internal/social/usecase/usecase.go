package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/veloura/boutique-service/internal/model"
	"github.com/veloura/boutique-service/internal/social"
)

type socialUseCase struct {
	repo   social.Repository
	logger *zap.Logger
}

func NewSocialUseCase(repo social.Repository, logger *zap.Logger) social.UseCase {
	return &socialUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *socialUseCase) CreatePost(ctx context.Context, input *social.UpsertPostInput) (*model.SocialPost, error) {
	now := time.Now()
	post := &model.SocialPost{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Platform:    input.Platform,
		URL:         input.URL,
		Caption:     input.Caption,
		UTMCampaign: input.UTMCampaign,
		Impressions: input.Impressions,
		Clicks:      input.Clicks,
		Orders:      input.Orders,
		Revenue:     input.Revenue,
		PostedAt:    input.PostedAt,
	}
	if err := uc.repo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (uc *socialUseCase) ListPosts(ctx context.Context, platform string) ([]model.SocialPost, error) {
	return uc.repo.FindAll(ctx, platform)
}

func (uc *socialUseCase) UpdatePost(ctx context.Context, id string, input *social.UpsertPostInput) (*model.SocialPost, error) {
	post, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, social.ErrPostNotFound
	}

	post.Platform = input.Platform
	post.URL = input.URL
	post.Caption = input.Caption
	post.UTMCampaign = input.UTMCampaign
	post.Impressions = input.Impressions
	post.Clicks = input.Clicks
	post.Orders = input.Orders
	post.Revenue = input.Revenue
	post.PostedAt = input.PostedAt
	post.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (uc *socialUseCase) DeletePost(ctx context.Context, id string) error {
	post, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if post == nil {
		return social.ErrPostNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// CampaignPerformance rolls posts up per utm_campaign, most revenue first.
func (uc *socialUseCase) CampaignPerformance(ctx context.Context) ([]social.PerformanceSummary, error) {
	posts, err := uc.repo.FindAll(ctx, "")
	if err != nil {
		return nil, err
	}

	byCampaign := map[string]*social.PerformanceSummary{}
	var order []string
	for _, p := range posts {
		s, ok := byCampaign[p.UTMCampaign]
		if !ok {
			s = &social.PerformanceSummary{UTMCampaign: p.UTMCampaign}
			byCampaign[p.UTMCampaign] = s
			order = append(order, p.UTMCampaign)
		}
		s.Posts++
		s.Impressions += p.Impressions
		s.Clicks += p.Clicks
		s.Orders += p.Orders
		s.Revenue += p.Revenue
	}

	summaries := make([]social.PerformanceSummary, 0, len(order))
	for _, campaign := range order {
		summaries = append(summaries, *byCampaign[campaign])
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Revenue > summaries[j].Revenue
	})
	return summaries, nil
}
