package model

import "time"

type Subscriber struct {
	ID             string     `db:"id" json:"id"`
	Email          string     `db:"email" json:"email"`
	Source         string     `db:"source" json:"source"` // footer, notify_me, checkout
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UnsubscribedAt *time.Time `db:"unsubscribed_at" json:"unsubscribed_at"`
}

func (s *Subscriber) Active() bool {
	return s.UnsubscribedAt == nil
}

const (
	CampaignStatusDraft = "draft"
	CampaignStatusSent  = "sent"
)

type Campaign struct {
	BaseModel
	Subject        string     `db:"subject" json:"subject"`
	PreviewText    *string    `db:"preview_text" json:"preview_text"`
	BodyHTML       string     `db:"body_html" json:"body_html"`
	UTMCampaign    string     `db:"utm_campaign" json:"utm_campaign"`
	Status         string     `db:"status" json:"status"`
	SentAt         *time.Time `db:"sent_at" json:"sent_at"`
	RecipientCount int        `db:"recipient_count" json:"recipient_count"`
}
