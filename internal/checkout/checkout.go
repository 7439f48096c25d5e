package checkout

import (
	"context"

	"github.com/veloura/boutique-service/internal/model"
	"github.com/veloura/boutique-service/internal/order/dto"
)

// Session is the hosted-payment handoff: the storefront redirects the
// browser to URL and the provider calls back with SessionID.
type Session struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// PaymentGateway creates hosted payment sessions. Satisfied by the Stripe
// gateway; tests substitute a fake.
type PaymentGateway interface {
	CreateSession(ctx context.Context, order *model.Order) (*Session, error)
}

type StartCheckoutInput struct {
	Email string
	Lines []dto.OrderLineInput
}

type StartCheckoutResult struct {
	OrderID     string `json:"order_id"`
	RedirectURL string `json:"redirect_url"`
}

type UseCase interface {
	// StartCheckout re-quotes the cart, persists a pending order and opens
	// a payment session for it.
	StartCheckout(ctx context.Context, input *StartCheckoutInput) (*StartCheckoutResult, error)

	// CompleteCheckout is the success-callback entry point.
	CompleteCheckout(ctx context.Context, sessionID string) (*model.Order, error)

	// NotifyMe records a launch-notification opt-in: the email lands on the
	// customer file and the newsletter list in one call.
	NotifyMe(ctx context.Context, email string) error
}
