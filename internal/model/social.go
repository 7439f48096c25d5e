package model

import "time"

// SocialPost tracks the commercial performance of a single social-media
// post for the admin dashboard. Metrics are entered or synced manually.
type SocialPost struct {
	BaseModel
	Platform    string    `db:"platform" json:"platform"` // instagram, tiktok, pinterest
	URL         string    `db:"url" json:"url"`
	Caption     *string   `db:"caption" json:"caption"`
	UTMCampaign string    `db:"utm_campaign" json:"utm_campaign"`
	Impressions int       `db:"impressions" json:"impressions"`
	Clicks      int       `db:"clicks" json:"clicks"`
	Orders      int       `db:"orders" json:"orders"`
	Revenue     float64   `db:"revenue" json:"revenue"`
	PostedAt    time.Time `db:"posted_at" json:"posted_at"`
}
