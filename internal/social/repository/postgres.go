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

func (r *PGRepository) Create(ctx context.Context, p *model.SocialPost) error {
	query := `
        INSERT INTO social_posts (
            id, platform, url, caption, utm_campaign, impressions, clicks,
            orders, revenue, posted_at, created_at, updated_at
        )
        VALUES (
            :id, :platform, :url, :caption, :utm_campaign, :impressions, :clicks,
            :orders, :revenue, :posted_at, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return errors.Wrap(err, "insert social post")
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.SocialPost, error) {
	var post model.SocialPost
	err := r.DB.GetContext(ctx, &post,
		`SELECT * FROM social_posts WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find social post")
	}
	return &post, nil
}

func (r *PGRepository) FindAll(ctx context.Context, platform string) ([]model.SocialPost, error) {
	var posts []model.SocialPost
	var err error
	if platform != "" {
		err = r.DB.SelectContext(ctx, &posts,
			`SELECT * FROM social_posts WHERE platform = $1 ORDER BY posted_at DESC`, platform)
	} else {
		err = r.DB.SelectContext(ctx, &posts,
			`SELECT * FROM social_posts ORDER BY posted_at DESC`)
	}
	return posts, errors.Wrap(err, "list social posts")
}

func (r *PGRepository) Update(ctx context.Context, p *model.SocialPost) error {
	query := `
        UPDATE social_posts
        SET platform = :platform,
            url = :url,
            caption = :caption,
            utm_campaign = :utm_campaign,
            impressions = :impressions,
            clicks = :clicks,
            orders = :orders,
            revenue = :revenue,
            posted_at = :posted_at,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return errors.Wrap(err, "update social post")
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM social_posts WHERE id = $1`, id)
	return errors.Wrap(err, "delete social post")
}
