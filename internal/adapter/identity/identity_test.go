package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loanlink-backend/internal/domain/apperr"
	domain "loanlink-backend/internal/domain/identity"
)

func TestJWTVerifier_RoundTrip(t *testing.T) {
	v, err := NewJWTVerifier("s3cret")
	require.NoError(t, err)

	tok, err := v.Issue("ann@example.com", time.Minute)
	require.NoError(t, err)

	email, err := v.VerifyToken(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", email)
}

func TestJWTVerifier_Rejects(t *testing.T) {
	v, err := NewJWTVerifier("s3cret")
	require.NoError(t, err)
	other, err := NewJWTVerifier("different")
	require.NoError(t, err)

	expired, err := v.Issue("ann@example.com", -time.Minute)
	require.NoError(t, err)
	forged, err := other.Issue("ann@example.com", time.Minute)
	require.NoError(t, err)
	noEmail, err := v.Issue("", time.Minute)
	require.NoError(t, err)
	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Email: "ann@example.com"}).SignedString([]byte("s3cret"))
	require.NoError(t, err)
	wrongAlg, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		Email:            "ann@example.com",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute))},
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"expired":   expired,
		"forged":    forged,
		"no email":  noEmail,
		"no exp":    noExp,
		"wrong alg": wrongAlg,
		"garbage":   "not.a.token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := v.VerifyToken(context.Background(), tok)
			assert.ErrorIs(t, err, domain.ErrInvalidToken)
			assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
		})
	}
}

func TestNewJWTVerifier_EmptySecret(t *testing.T) {
	_, err := NewJWTVerifier("")
	assert.ErrorIs(t, err, ErrEmptySecret)
}

type fakeFirebase func(ctx context.Context, token string) (*auth.Token, error)

func (f fakeFirebase) VerifyIDToken(ctx context.Context, token string) (*auth.Token, error) {
	return f(ctx, token)
}

func TestFirebaseVerifier(t *testing.T) {
	v := &FirebaseVerifier{client: fakeFirebase(func(_ context.Context, token string) (*auth.Token, error) {
		switch token {
		case "good":
			return &auth.Token{UID: "u1", Claims: map[string]interface{}{"email": "ann@example.com"}}, nil
		case "anonymous":
			return &auth.Token{UID: "u2", Claims: map[string]interface{}{}}, nil
		}
		return nil, errors.New("ID token has expired")
	})}

	email, err := v.VerifyToken(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", email)

	_, err = v.VerifyToken(context.Background(), "anonymous")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = v.VerifyToken(context.Background(), "stale")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
