package gormstore

import (
	"context"

	"gorm.io/gorm"

	offerDomain "loanlink-backend/internal/domain/offer"
)

type OfferRepository struct{ db *gorm.DB }

func NewOfferRepository(db *gorm.DB) *OfferRepository { return &OfferRepository{db: db} }

func (r *OfferRepository) Create(ctx context.Context, o *offerDomain.Offer) error {
	return translate(r.db.WithContext(ctx).Create(o).Error, nil)
}

func (r *OfferRepository) GetByOfferID(ctx context.Context, offerID string) (*offerDomain.Offer, error) {
	var out offerDomain.Offer
	res := r.db.WithContext(ctx).Where("offer_id = ?", offerID).First(&out)
	if res.Error != nil {
		return nil, translate(res.Error, offerDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *OfferRepository) List(ctx context.Context, f offerDomain.Filter) ([]offerDomain.Offer, error) {
	limit, skip := pageBounds(f.Limit, f.Skip)
	q := r.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if f.HomeOnly {
		q = q.Where("show_on_home = ?", true)
	}
	var out []offerDomain.Offer
	res := q.Limit(limit).Offset(skip).Find(&out)
	return out, translate(res.Error, nil)
}

func (r *OfferRepository) Save(ctx context.Context, o *offerDomain.Offer) error {
	return translate(r.db.WithContext(ctx).Save(o).Error, nil)
}

func (r *OfferRepository) Delete(ctx context.Context, offerID string) error {
	res := r.db.WithContext(ctx).Where("offer_id = ?", offerID).Delete(&offerDomain.Offer{})
	if res.Error != nil {
		return translate(res.Error, nil)
	}
	if res.RowsAffected == 0 {
		return offerDomain.ErrNotFound
	}
	return nil
}
