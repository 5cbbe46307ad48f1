package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domain "loanlink-backend/internal/domain/identity"
	"loanlink-backend/internal/logger"
)

var _ domain.Verifier = (*JWTVerifier)(nil)

var ErrEmptySecret = errors.New("jwt secret is empty")

// Claims of the locally signed development token.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// JWTVerifier accepts HS256 tokens signed with a shared secret. Used for local
// development and tests in place of Firebase.
type JWTVerifier struct {
	secret []byte
	parser *jwt.Parser
}

func NewJWTVerifier(secret string) (*JWTVerifier, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &JWTVerifier{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}, nil
}

// Issue signs a token for email valid for ttl.
func (v *JWTVerifier) Issue(email string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return token.SignedString(v.secret)
}

func (v *JWTVerifier) VerifyToken(ctx context.Context, token string) (string, error) {
	claims := &Claims{}
	_, err := v.parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil {
		logger.Get().DebugContext(ctx, "jwt rejected", "error", err)
		return "", domain.ErrInvalidToken
	}
	email := strings.TrimSpace(claims.Email)
	if email == "" {
		return "", domain.ErrInvalidToken
	}
	return email, nil
}
