package offer

import "context"

type Filter struct {
	HomeOnly bool
	Limit    int
	Skip     int
}

type Repository interface {
	Create(ctx context.Context, o *Offer) error
	GetByOfferID(ctx context.Context, offerID string) (*Offer, error)
	List(ctx context.Context, f Filter) ([]Offer, error)
	// Save persists every column of o; o must have been loaded first.
	Save(ctx context.Context, o *Offer) error
	Delete(ctx context.Context, offerID string) error
}
