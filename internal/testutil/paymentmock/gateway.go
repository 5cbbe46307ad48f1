package paymentmock

import (
	"context"
	"errors"

	domain "loanlink-backend/internal/domain/payment"
)

var _ domain.Gateway = (*Gateway)(nil)

var errUnimplemented = errors.New("paymentmock: method not implemented")

type Gateway struct {
	CreateCheckoutSessionFn func(ctx context.Context, req domain.CheckoutRequest) (*domain.Session, error)
	GetSessionFn            func(ctx context.Context, sessionID string) (*domain.Session, error)
}

func (m *Gateway) CreateCheckoutSession(ctx context.Context, req domain.CheckoutRequest) (*domain.Session, error) {
	if m.CreateCheckoutSessionFn != nil {
		return m.CreateCheckoutSessionFn(ctx, req)
	}
	return nil, errUnimplemented
}

func (m *Gateway) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	if m.GetSessionFn != nil {
		return m.GetSessionFn(ctx, sessionID)
	}
	return nil, errUnimplemented
}
