package identity

import (
	"context"

	"loanlink-backend/internal/domain/apperr"
)

var (
	ErrMissingToken = apperr.New(apperr.ErrUnauthenticated, "missing bearer token")
	ErrInvalidToken = apperr.New(apperr.ErrUnauthenticated, "invalid bearer token")
)

// Verifier resolves a bearer credential to a verified email address.
type Verifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}
