package identity

import (
	"context"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"loanlink-backend/internal/domain/apperr"
	domain "loanlink-backend/internal/domain/identity"
	"loanlink-backend/internal/logger"
)

var _ domain.Verifier = (*FirebaseVerifier)(nil)

type idTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseVerifier checks Firebase Auth ID tokens.
type FirebaseVerifier struct {
	client idTokenVerifier
}

// NewFirebaseVerifier uses the service account file when given, otherwise
// application default credentials.
func NewFirebaseVerifier(ctx context.Context, credentialsFile, projectID string) (*FirebaseVerifier, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	var conf *firebase.Config
	if projectID != "" {
		conf = &firebase.Config{ProjectID: projectID}
	}
	app, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		return nil, apperr.Upstream("firebase init", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, apperr.Upstream("firebase auth", err)
	}
	return &FirebaseVerifier{client: client}, nil
}

func (v *FirebaseVerifier) VerifyToken(ctx context.Context, token string) (string, error) {
	t, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		logger.Get().DebugContext(ctx, "firebase token rejected", "error", err)
		return "", domain.ErrInvalidToken
	}
	email, _ := t.Claims["email"].(string)
	email = strings.TrimSpace(email)
	if email == "" {
		return "", domain.ErrInvalidToken
	}
	return email, nil
}
