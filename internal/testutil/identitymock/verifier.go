package identitymock

import (
	"context"

	"loanlink-backend/internal/domain/identity"
)

var _ identity.Verifier = Tokens(nil)

// Tokens is a static token -> email table; unknown tokens are invalid.
type Tokens map[string]string

func (t Tokens) VerifyToken(_ context.Context, token string) (string, error) {
	email, ok := t[token]
	if !ok {
		return "", identity.ErrInvalidToken
	}
	return email, nil
}
