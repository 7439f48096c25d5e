package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/veloura/boutique-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) UpsertSubscriber(ctx context.Context, s *model.Subscriber) error {
	query := `
        INSERT INTO newsletter_subscribers (id, email, source, created_at)
        VALUES (:id, :email, :source, :created_at)
        ON CONFLICT (email)
        DO UPDATE SET source = EXCLUDED.source, unsubscribed_at = NULL
    `
	_, err := r.DB.NamedExecContext(ctx, query, s)
	return errors.Wrap(err, "upsert subscriber")
}

func (r *PGRepository) FindSubscriber(ctx context.Context, email string) (*model.Subscriber, error) {
	var subscriber model.Subscriber
	err := r.DB.GetContext(ctx, &subscriber,
		`SELECT * FROM newsletter_subscribers WHERE email = $1 LIMIT 1`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find subscriber")
	}
	return &subscriber, nil
}

func (r *PGRepository) Unsubscribe(ctx context.Context, email string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE newsletter_subscribers SET unsubscribed_at = now() WHERE email = $1 AND unsubscribed_at IS NULL`,
		email)
	return errors.Wrap(err, "unsubscribe")
}

func (r *PGRepository) ActiveSubscribers(ctx context.Context) ([]model.Subscriber, error) {
	var subscribers []model.Subscriber
	err := r.DB.SelectContext(ctx, &subscribers,
		`SELECT * FROM newsletter_subscribers WHERE unsubscribed_at IS NULL ORDER BY created_at`)
	return subscribers, errors.Wrap(err, "list active subscribers")
}

func (r *PGRepository) CreateCampaign(ctx context.Context, c *model.Campaign) error {
	query := `
        INSERT INTO newsletter_campaigns (
            id, subject, preview_text, body_html, utm_campaign, status,
            sent_at, recipient_count, created_at, updated_at
        )
        VALUES (
            :id, :subject, :preview_text, :body_html, :utm_campaign, :status,
            :sent_at, :recipient_count, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return errors.Wrap(err, "insert campaign")
}

func (r *PGRepository) FindCampaign(ctx context.Context, id string) (*model.Campaign, error) {
	var campaign model.Campaign
	err := r.DB.GetContext(ctx, &campaign,
		`SELECT * FROM newsletter_campaigns WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find campaign")
	}
	return &campaign, nil
}

func (r *PGRepository) ListCampaigns(ctx context.Context) ([]model.Campaign, error) {
	var campaigns []model.Campaign
	err := r.DB.SelectContext(ctx, &campaigns,
		`SELECT * FROM newsletter_campaigns ORDER BY created_at DESC`)
	return campaigns, errors.Wrap(err, "list campaigns")
}

func (r *PGRepository) MarkSent(ctx context.Context, c *model.Campaign) error {
	query := `
        UPDATE newsletter_campaigns
        SET status = :status,
            sent_at = :sent_at,
            recipient_count = :recipient_count,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return errors.Wrap(err, "mark campaign sent")
}
