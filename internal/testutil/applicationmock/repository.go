package applicationmock

import (
	"context"
	"time"

	domain "loanlink-backend/internal/domain/application"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset reads return context.Canceled; unset writes are no-ops.
type Repo struct {
	CreateFn                      func(ctx context.Context, a *domain.Application) error
	GetByApplicationIDFn          func(ctx context.Context, applicationID string) (*domain.Application, error)
	GetByApplicationIDForUpdateFn func(ctx context.Context, applicationID string) (*domain.Application, error)
	ListByOwnerFn                 func(ctx context.Context, email string) ([]domain.Application, error)
	ListFn                        func(ctx context.Context, p domain.Page) ([]domain.Application, error)
	ListByStatusFn                func(ctx context.Context, status domain.Status) ([]domain.Application, error)
	SaveDetailsFn                 func(ctx context.Context, applicationID string, d domain.Details) error
	DecideFn                      func(ctx context.Context, applicationID string, to domain.Status, at time.Time) (bool, error)
	MarkPaidFn                    func(ctx context.Context, applicationID string, info domain.PaymentInfo) (bool, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Application) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByApplicationID(ctx context.Context, applicationID string) (*domain.Application, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*domain.Application, error) {
	if m.GetByApplicationIDForUpdateFn != nil {
		return m.GetByApplicationIDForUpdateFn(ctx, applicationID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByOwner(ctx context.Context, email string) ([]domain.Application, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, email)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context, p domain.Page) ([]domain.Application, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, p)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Application, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, status)
	}
	return nil, context.Canceled
}

func (m *Repo) SaveDetails(ctx context.Context, applicationID string, d domain.Details) error {
	if m.SaveDetailsFn != nil {
		return m.SaveDetailsFn(ctx, applicationID, d)
	}
	return nil
}

func (m *Repo) Decide(ctx context.Context, applicationID string, to domain.Status, at time.Time) (bool, error) {
	if m.DecideFn != nil {
		return m.DecideFn(ctx, applicationID, to, at)
	}
	return false, context.Canceled
}

func (m *Repo) MarkPaid(ctx context.Context, applicationID string, info domain.PaymentInfo) (bool, error) {
	if m.MarkPaidFn != nil {
		return m.MarkPaidFn(ctx, applicationID, info)
	}
	return false, context.Canceled
}
