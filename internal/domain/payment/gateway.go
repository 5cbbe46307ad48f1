package payment

import (
	"context"

	"loanlink-backend/internal/domain/apperr"
)

// Metadata keys attached to every checkout session.
const (
	MetaApplicationID = "loanId"
	MetaEmail         = "email"
)

var (
	ErrNotCompleted    = apperr.New(apperr.ErrConflict, "checkout session is not paid")
	ErrMissingMetadata = apperr.New(apperr.ErrInvalidInput, "checkout session has no application reference")
	ErrPayerMismatch   = apperr.New(apperr.ErrForbidden, "checkout session belongs to another user")
)

type CheckoutRequest struct {
	AmountMinor   int64
	Currency      string
	ProductName   string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
}

type Session struct {
	ID            string
	URL           string
	Paid          bool
	TransactionID string
	AmountMinor   int64
	Currency      string
	CustomerEmail string
	Metadata      map[string]string
}

// Gateway is the hosted-checkout payment provider.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*Session, error)
	GetSession(ctx context.Context, sessionID string) (*Session, error)
}
