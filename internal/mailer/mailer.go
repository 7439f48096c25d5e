package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Message is one outbound email. HTML is the rendered body; a plain-text
// alternative is derived by the provider.
type Message struct {
	ToEmail string
	ToName  string
	Subject string
	HTML    string
}

// Sender is the outbound email port. Usecases depend on this, never on the
// SendGrid client directly, so tests can capture sends.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

type Config struct {
	APIKey    string
	FromEmail string
	FromName  string
}

type SendGridSender struct {
	client *sendgrid.Client
	from   *mail.Email
}

func NewSendGridSender(cfg *Config) *SendGridSender {
	return &SendGridSender{
		client: sendgrid.NewSendClient(cfg.APIKey),
		from:   mail.NewEmail(cfg.FromName, cfg.FromEmail),
	}
}

func (s *SendGridSender) Send(ctx context.Context, msg *Message) error {
	to := mail.NewEmail(msg.ToName, msg.ToEmail)
	m := mail.NewSingleEmail(s.from, msg.Subject, to, "", msg.HTML)

	resp, err := s.client.SendWithContext(ctx, m)
	if err != nil {
		return fmt.Errorf("send email to %s: %w", msg.ToEmail, err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("send email to %s: sendgrid returned %d: %s", msg.ToEmail, resp.StatusCode, resp.Body)
	}
	return nil
}
