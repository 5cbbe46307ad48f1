package application

import (
	"context"
	"time"
)

type Page struct {
	Limit int
	Skip  int
}

type Repository interface {
	Create(ctx context.Context, a *Application) error
	GetByApplicationID(ctx context.Context, applicationID string) (*Application, error)
	// GetByApplicationIDForUpdate locks the row; only meaningful inside a transaction.
	GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*Application, error)

	ListByOwner(ctx context.Context, email string) ([]Application, error)
	List(ctx context.Context, p Page) ([]Application, error)
	// ListByStatus orders Pending by created_at and Approved by approved_at, newest first.
	ListByStatus(ctx context.Context, status Status) ([]Application, error)

	SaveDetails(ctx context.Context, applicationID string, d Details) error
	// Decide moves a Pending application to `to`. It reports false when no
	// Pending row with that id exists, leaving the row untouched.
	Decide(ctx context.Context, applicationID string, to Status, at time.Time) (bool, error)
	// MarkPaid flips Unpaid -> Paid and stores the evidence. Reports false
	// when no Unpaid row with that id exists.
	MarkPaid(ctx context.Context, applicationID string, info PaymentInfo) (bool, error)
}
