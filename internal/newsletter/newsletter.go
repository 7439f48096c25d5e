package newsletter

import (
	"context"
	"errors"

	"github.com/veloura/boutique-service/internal/model"
)

var (
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrAlreadySent      = errors.New("campaign was already sent")
)

type Repository interface {
	// UpsertSubscriber inserts the email or, for a returning unsubscriber,
	// clears unsubscribed_at and refreshes the source.
	UpsertSubscriber(ctx context.Context, subscriber *model.Subscriber) error
	FindSubscriber(ctx context.Context, email string) (*model.Subscriber, error)
	Unsubscribe(ctx context.Context, email string) error
	ActiveSubscribers(ctx context.Context) ([]model.Subscriber, error)

	CreateCampaign(ctx context.Context, campaign *model.Campaign) error
	FindCampaign(ctx context.Context, id string) (*model.Campaign, error)
	ListCampaigns(ctx context.Context) ([]model.Campaign, error)
	MarkSent(ctx context.Context, campaign *model.Campaign) error
}

type CreateCampaignInput struct {
	Subject     string
	PreviewText *string
	BodyHTML    string
	UTMCampaign string
}

type UseCase interface {
	Subscribe(ctx context.Context, email, source string) (*model.Subscriber, error)
	Unsubscribe(ctx context.Context, email string) error

	CreateCampaign(ctx context.Context, input *CreateCampaignInput) (*model.Campaign, error)
	ListCampaigns(ctx context.Context) ([]model.Campaign, error)

	// SendCampaign fans the campaign out to every active subscriber and
	// marks it sent with the delivered count. A campaign sends at most once.
	SendCampaign(ctx context.Context, id string) (*model.Campaign, error)
}
