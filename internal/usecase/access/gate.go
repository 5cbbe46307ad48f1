// Package access is the single gate every protected operation passes
// through: bearer credential -> verified email -> role check.
package access

import (
	"context"
	"errors"
	"strings"

	"loanlink-backend/internal/domain/apperr"
	"loanlink-backend/internal/domain/identity"
	"loanlink-backend/internal/domain/user"
)

var (
	ErrSuspended    = apperr.New(apperr.ErrForbidden, "account suspended")
	ErrRoleRequired = apperr.New(apperr.ErrForbidden, "role not permitted")
)

type Requirement int

const (
	AnyAuthenticated Requirement = iota
	Manager
	Admin
	// Staff is manager or admin; used by loan offer management.
	Staff
)

func (r Requirement) String() string {
	switch r {
	case Manager:
		return "manager"
	case Admin:
		return "admin"
	case Staff:
		return "staff"
	default:
		return "authenticated"
	}
}

// Caller is the resolved identity of a request.
type Caller struct {
	Email string
	// Role is empty when the caller has never logged in.
	Role user.Role
}

func (c Caller) Is(roles ...user.Role) bool {
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}

// DeniedError carries the caller's role so the boundary can echo it back.
type DeniedError struct {
	Role   user.Role
	reason error
}

func (e *DeniedError) Error() string { return e.reason.Error() }
func (e *DeniedError) Unwrap() error { return e.reason }

func deny(role user.Role, reason error) error { return &DeniedError{Role: role, reason: reason} }

type Gate struct {
	verifier identity.Verifier
	users    user.Repository
}

func NewGate(v identity.Verifier, users user.Repository) *Gate {
	return &Gate{verifier: v, users: users}
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

// Authenticate verifies the bearer token and returns the caller's email.
func (g *Gate) Authenticate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", identity.ErrMissingToken
	}
	email, err := g.verifier.VerifyToken(ctx, token)
	if err != nil {
		if errors.Is(err, apperr.ErrUnauthenticated) {
			return "", err
		}
		return "", identity.ErrInvalidToken
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", identity.ErrInvalidToken
	}
	return email, nil
}

// Authorize loads the caller's current role (never cached) and checks it
// against req. Suspended callers fail every requirement.
func (g *Gate) Authorize(ctx context.Context, email string, req Requirement) (Caller, error) {
	c := Caller{Email: email}
	u, err := g.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		c.Role = u.Role
	case errors.Is(err, user.ErrNotFound):
	default:
		return c, err
	}

	if c.Role == user.RoleSuspended {
		return c, deny(c.Role, ErrSuspended)
	}
	if !allows(req, c.Role) {
		return c, deny(c.Role, ErrRoleRequired)
	}
	return c, nil
}

// Check is Authenticate followed by Authorize.
func (g *Gate) Check(ctx context.Context, token string, req Requirement) (Caller, error) {
	email, err := g.Authenticate(ctx, token)
	if err != nil {
		return Caller{}, err
	}
	return g.Authorize(ctx, email, req)
}

func allows(req Requirement, role user.Role) bool {
	switch req {
	case AnyAuthenticated:
		return true
	case Manager:
		return role == user.RoleManager
	case Admin:
		return role == user.RoleAdmin
	case Staff:
		return role == user.RoleManager || role == user.RoleAdmin
	}
	return false
}
