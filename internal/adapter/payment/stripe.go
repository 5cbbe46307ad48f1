package payment

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"

	"loanlink-backend/internal/domain/apperr"
	domain "loanlink-backend/internal/domain/payment"
)

var _ domain.Gateway = (*StripeGateway)(nil)

var ErrSessionNotFound = apperr.New(apperr.ErrNotFound, "checkout session not found")

// StripeGateway runs the application fee through Stripe Checkout.
type StripeGateway struct {
	api *client.API
}

// NewStripeGateway talks to the live Stripe API. backends may be nil.
func NewStripeGateway(secretKey string, backends *stripe.Backends) *StripeGateway {
	return &StripeGateway{api: client.New(secretKey, backends)}
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req domain.CheckoutRequest) (*domain.Session, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail: stripe.String(req.CustomerEmail),
		SuccessURL:    stripe.String(req.SuccessURL),
		CancelURL:     stripe.String(req.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(req.Currency),
					UnitAmount: stripe.Int64(req.AmountMinor),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.ProductName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	params.SetIdempotencyKey(uuid.NewString())
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	s, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, translate(err)
	}
	return toSession(s), nil
}

func (g *StripeGateway) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	s, err := g.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, translate(err)
	}
	return toSession(s), nil
}

func toSession(s *stripe.CheckoutSession) *domain.Session {
	out := &domain.Session{
		ID:            s.ID,
		URL:           s.URL,
		Paid:          s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		AmountMinor:   s.AmountTotal,
		Currency:      string(s.Currency),
		CustomerEmail: s.CustomerEmail,
		Metadata:      s.Metadata,
	}
	if s.PaymentIntent != nil {
		out.TransactionID = s.PaymentIntent.ID
	}
	if out.CustomerEmail == "" && s.CustomerDetails != nil {
		out.CustomerEmail = s.CustomerDetails.Email
	}
	if out.Metadata == nil {
		out.Metadata = map[string]string{}
	}
	return out
}

func translate(err error) error {
	var se *stripe.Error
	if errors.As(err, &se) && se.HTTPStatusCode == http.StatusNotFound {
		return ErrSessionNotFound
	}
	return apperr.Upstream("stripe", err)
}
