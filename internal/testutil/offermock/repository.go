package offermock

import (
	"context"

	domain "loanlink-backend/internal/domain/offer"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	CreateFn       func(ctx context.Context, o *domain.Offer) error
	GetByOfferIDFn func(ctx context.Context, offerID string) (*domain.Offer, error)
	ListFn         func(ctx context.Context, f domain.Filter) ([]domain.Offer, error)
	SaveFn         func(ctx context.Context, o *domain.Offer) error
	DeleteFn       func(ctx context.Context, offerID string) error
}

func (m *Repo) Create(ctx context.Context, o *domain.Offer) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, o)
	}
	return nil
}

func (m *Repo) GetByOfferID(ctx context.Context, offerID string) (*domain.Offer, error) {
	if m.GetByOfferIDFn != nil {
		return m.GetByOfferIDFn(ctx, offerID)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Offer, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, o *domain.Offer) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, o)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, offerID string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, offerID)
	}
	return nil
}
