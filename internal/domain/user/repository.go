package user

import (
	"context"
	"time"
)

type Page struct {
	Limit int
	Skip  int
}

type Repository interface {
	// Create fails with ErrAlreadyExists when the email is taken.
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, p Page) ([]User, error)
	CountByRole(ctx context.Context, role Role) (int64, error)

	TouchLogin(ctx context.Context, email string, at time.Time) error
	// UpdateRole clears any suspension note unless the new role is suspended.
	UpdateRole(ctx context.Context, email string, role Role) error
	Suspend(ctx context.Context, email, reason, feedback string) error
}
