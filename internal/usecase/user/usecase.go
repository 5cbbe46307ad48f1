package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"loanlink-backend/internal/domain/apperr"
	domain "loanlink-backend/internal/domain/user"
	"loanlink-backend/internal/logger"
	"loanlink-backend/internal/usecase/access"
	"loanlink-backend/pkg/id"
)

var ErrReasonRequired = apperr.Invalid("suspend reason is required")

type Usecase struct {
	users domain.Repository
	now   func() time.Time
}

func NewUsecase(users domain.Repository) *Usecase {
	return &Usecase{users: users, now: func() time.Time { return time.Now().UTC() }}
}

// Login creates the user as a borrower on first sight and otherwise only
// refreshes last_logged_in. It never changes an existing role.
func (u *Usecase) Login(ctx context.Context, email string, in LoginInput) (*domain.User, error) {
	now := u.now()
	existing, err := u.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if err := u.users.TouchLogin(ctx, email, now); err != nil {
			return nil, err
		}
		existing.LastLoggedIn = now
		return existing, nil
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	nu := &domain.User{
		UserID:       id.NewID32(),
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		PhotoURL:     strings.TrimSpace(in.PhotoURL),
		Role:         domain.RoleBorrower,
		CreatedAt:    now,
		LastLoggedIn: now,
	}
	if err := u.users.Create(ctx, nu); err != nil {
		// lost a race with a parallel first login
		if errors.Is(err, domain.ErrAlreadyExists) {
			if err := u.users.TouchLogin(ctx, email, now); err != nil {
				return nil, err
			}
			return u.users.GetByEmail(ctx, email)
		}
		return nil, err
	}
	logger.InfoContext(ctx, "user registered", "email", email)
	return nu, nil
}

func (u *Usecase) GetRole(ctx context.Context, email string) (domain.Role, error) {
	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return usr.Role, nil
}

func (u *Usecase) List(ctx context.Context, p domain.Page) ([]domain.User, error) {
	list, err := u.users.List(ctx, p)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []domain.User{}
	}
	return list, nil
}

func (u *Usecase) UpdateRole(ctx context.Context, caller access.Caller, email string, role domain.Role) error {
	if !role.Valid() {
		return domain.ErrInvalidRole
	}
	email = normalize(email)
	if email == caller.Email {
		return domain.ErrSelfChange
	}
	if err := u.users.UpdateRole(ctx, email, role); err != nil {
		return err
	}
	logger.InfoContext(ctx, "user role changed", "email", email, "role", string(role), "by", caller.Email)
	return nil
}

func (u *Usecase) Suspend(ctx context.Context, caller access.Caller, email string, in SuspendInput) error {
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return ErrReasonRequired
	}
	email = normalize(email)
	if email == caller.Email {
		return domain.ErrSelfChange
	}
	if err := u.users.Suspend(ctx, email, reason, strings.TrimSpace(in.Feedback)); err != nil {
		return err
	}
	logger.InfoContext(ctx, "user suspended", "email", email, "by", caller.Email)
	return nil
}

// BootstrapAdmin makes email an admin when the store has none yet.
// It reports whether anything changed.
func (u *Usecase) BootstrapAdmin(ctx context.Context, email string) (bool, error) {
	email = normalize(email)
	if email == "" {
		return false, nil
	}
	n, err := u.users.CountByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	err = u.users.UpdateRole(ctx, email, domain.RoleAdmin)
	if errors.Is(err, domain.ErrNotFound) {
		now := u.now()
		err = u.users.Create(ctx, &domain.User{
			UserID:       id.NewID32(),
			Email:        email,
			Role:         domain.RoleAdmin,
			CreatedAt:    now,
			LastLoggedIn: now,
		})
	}
	if err != nil {
		return false, err
	}
	logger.InfoContext(ctx, "bootstrap admin assigned", "email", email)
	return true, nil
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
