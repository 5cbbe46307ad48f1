package usermock

import (
	"context"
	"time"

	domain "loanlink-backend/internal/domain/user"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn      func(ctx context.Context, u *domain.User) error
	GetByEmailFn  func(ctx context.Context, email string) (*domain.User, error)
	ListFn        func(ctx context.Context, p domain.Page) ([]domain.User, error)
	CountByRoleFn func(ctx context.Context, role domain.Role) (int64, error)
	TouchLoginFn  func(ctx context.Context, email string, at time.Time) error
	UpdateRoleFn  func(ctx context.Context, email string, role domain.Role) error
	SuspendFn     func(ctx context.Context, email, reason, feedback string) error
}

// WithRoles returns a Repo whose GetByEmail serves the given email -> role map
// and answers ErrNotFound for anyone else.
func WithRoles(roles map[string]domain.Role) *Repo {
	return &Repo{
		GetByEmailFn: func(_ context.Context, email string) (*domain.User, error) {
			role, ok := roles[email]
			if !ok {
				return nil, domain.ErrNotFound
			}
			return &domain.User{Email: email, Role: role}, nil
		},
	}
}

func (m *Repo) Create(ctx context.Context, u *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}

func (m *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context, p domain.Page) ([]domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, p)
	}
	return nil, context.Canceled
}

func (m *Repo) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	if m.CountByRoleFn != nil {
		return m.CountByRoleFn(ctx, role)
	}
	return 0, context.Canceled
}

func (m *Repo) TouchLogin(ctx context.Context, email string, at time.Time) error {
	if m.TouchLoginFn != nil {
		return m.TouchLoginFn(ctx, email, at)
	}
	return nil
}

func (m *Repo) UpdateRole(ctx context.Context, email string, role domain.Role) error {
	if m.UpdateRoleFn != nil {
		return m.UpdateRoleFn(ctx, email, role)
	}
	return nil
}

func (m *Repo) Suspend(ctx context.Context, email, reason, feedback string) error {
	if m.SuspendFn != nil {
		return m.SuspendFn(ctx, email, reason, feedback)
	}
	return nil
}
