package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/veloura/boutique-service/internal/mailer"
	"github.com/veloura/boutique-service/internal/model"
	"github.com/veloura/boutique-service/internal/newsletter"
)

type newsletterUseCase struct {
	repo           newsletter.Repository
	sender         mailer.Sender
	unsubscribeURL string
	logger         *zap.Logger
}

func NewNewsletterUseCase(repo newsletter.Repository, sender mailer.Sender, unsubscribeURL string, logger *zap.Logger) newsletter.UseCase {
	return &newsletterUseCase{
		repo:           repo,
		sender:         sender,
		unsubscribeURL: unsubscribeURL,
		logger:         logger,
	}
}

func (uc *newsletterUseCase) Subscribe(ctx context.Context, email, source string) (*model.Subscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	s := &model.Subscriber{
		ID:        uuid.New().String(),
		Email:     email,
		Source:    source,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.UpsertSubscriber(ctx, s); err != nil {
		return nil, err
	}

	// The upsert may have kept an older row; re-read for the real state.
	return uc.repo.FindSubscriber(ctx, email)
}

func (uc *newsletterUseCase) Unsubscribe(ctx context.Context, email string) error {
	return uc.repo.Unsubscribe(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (uc *newsletterUseCase) CreateCampaign(ctx context.Context, input *newsletter.CreateCampaignInput) (*model.Campaign, error) {
	now := time.Now()
	c := &model.Campaign{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Subject:     input.Subject,
		PreviewText: input.PreviewText,
		BodyHTML:    input.BodyHTML,
		UTMCampaign: input.UTMCampaign,
		Status:      model.CampaignStatusDraft,
	}
	if err := uc.repo.CreateCampaign(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *newsletterUseCase) ListCampaigns(ctx context.Context) ([]model.Campaign, error) {
	return uc.repo.ListCampaigns(ctx)
}

func (uc *newsletterUseCase) SendCampaign(ctx context.Context, id string) (*model.Campaign, error) {
	campaign, err := uc.repo.FindCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, newsletter.ErrCampaignNotFound
	}
	if campaign.Status == model.CampaignStatusSent {
		return nil, newsletter.ErrAlreadySent
	}

	subscribers, err := uc.repo.ActiveSubscribers(ctx)
	if err != nil {
		return nil, err
	}

	delivered := 0
	for _, s := range subscribers {
		html, err := mailer.RenderCampaign(campaign.BodyHTML, uc.subscriberUnsubscribeURL(s.Email, campaign.UTMCampaign))
		if err != nil {
			return nil, err
		}
		err = uc.sender.Send(ctx, &mailer.Message{
			ToEmail: s.Email,
			Subject: campaign.Subject,
			HTML:    html,
		})
		if err != nil {
			// One bounced address must not abort the whole send.
			uc.logger.Warn("campaign delivery failed",
				zap.String("campaignID", campaign.ID),
				zap.String("email", s.Email),
				zap.Error(err))
			continue
		}
		delivered++
	}

	now := time.Now()
	campaign.Status = model.CampaignStatusSent
	campaign.SentAt = &now
	campaign.RecipientCount = delivered
	campaign.UpdatedAt = now

	if err := uc.repo.MarkSent(ctx, campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

func (uc *newsletterUseCase) subscriberUnsubscribeURL(email, utmCampaign string) string {
	q := url.Values{}
	q.Set("email", email)
	if utmCampaign != "" {
		q.Set("utm_campaign", utmCampaign)
	}
	return fmt.Sprintf("%s?%s", uc.unsubscribeURL, q.Encode())
}
