package stripe

import (
	"context"
	"fmt"
	"strings"

	stripesdk "github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/checkout/session"

	"github.com/veloura/boutique-service/internal/checkout"
	"github.com/veloura/boutique-service/internal/model"
)

type Config struct {
	SecretKey  string
	SuccessURL string
	CancelURL  string
}

// Gateway opens Stripe Checkout sessions for pending orders. Amounts are
// converted to the smallest currency unit as Stripe requires.
type Gateway struct {
	cfg *Config
}

func NewGateway(cfg *Config) *Gateway {
	stripesdk.Key = cfg.SecretKey
	return &Gateway{cfg: cfg}
}

func (g *Gateway) CreateSession(ctx context.Context, o *model.Order) (*checkout.Session, error) {
	params := &stripesdk.CheckoutSessionParams{
		Mode:              stripesdk.String(string(stripesdk.CheckoutSessionModePayment)),
		CustomerEmail:     stripesdk.String(o.Email),
		ClientReferenceID: stripesdk.String(o.ID),
		SuccessURL:        stripesdk.String(g.cfg.SuccessURL + "?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:         stripesdk.String(g.cfg.CancelURL),
	}
	params.Context = ctx

	currency := strings.ToLower(o.Currency)
	for _, item := range o.Items {
		name := item.ProductName
		if item.Color != nil {
			name += " / " + *item.Color
		}
		if item.Size != nil {
			name += " / " + *item.Size
		}
		params.LineItems = append(params.LineItems, &stripesdk.CheckoutSessionLineItemParams{
			Quantity: stripesdk.Int64(int64(item.Quantity)),
			PriceData: &stripesdk.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripesdk.String(currency),
				UnitAmount: stripesdk.Int64(int64(item.UnitPrice * 100)),
				ProductData: &stripesdk.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripesdk.String(name),
				},
			},
		})
	}

	s, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session for order %s: %w", o.ID, err)
	}

	return &checkout.Session{
		SessionID: s.ID,
		URL:       s.URL,
	}, nil
}
