package offer

import (
	"context"
	"strings"
	"time"

	"loanlink-backend/internal/domain/apperr"
	domain "loanlink-backend/internal/domain/offer"
	"loanlink-backend/internal/logger"
	"loanlink-backend/internal/usecase/access"
	"loanlink-backend/pkg/id"
)

// Home page shows a short curated list.
const homeLimit = 6

var (
	ErrTitleRequired = apperr.Invalid("title is required")
	ErrNegativeValue = apperr.Invalid("interest rate and max loan limit must not be negative")
)

type Usecase struct {
	offers domain.Repository
	now    func() time.Time
}

func NewUsecase(offers domain.Repository) *Usecase {
	return &Usecase{offers: offers, now: func() time.Time { return time.Now().UTC() }}
}

func (u *Usecase) Create(ctx context.Context, caller access.Caller, in CreateInput) (*domain.Offer, error) {
	o := &domain.Offer{
		OfferID:           id.NewID32(),
		Title:             strings.TrimSpace(in.Title),
		Description:       in.Description,
		Category:          in.Category,
		InterestRate:      in.InterestRate,
		MaxLoanLimit:      in.MaxLoanLimit,
		RequiredDocuments: nonNil(in.RequiredDocuments),
		EMIPlans:          nonNil(in.EMIPlans),
		Images:            nonNil(in.Images),
		ShowOnHome:        in.ShowOnHome,
		CreatedBy:         caller.Email,
		CreatedAt:         u.now(),
	}
	if err := check(o); err != nil {
		return nil, err
	}
	if err := u.offers.Create(ctx, o); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "loan offer created", "loan_id", o.OfferID, "by", caller.Email)
	return o, nil
}

func (u *Usecase) Get(ctx context.Context, offerID string) (*domain.Offer, error) {
	return u.offers.GetByOfferID(ctx, offerID)
}

func (u *Usecase) List(ctx context.Context, limit, skip int) ([]domain.Offer, error) {
	return u.list(ctx, domain.Filter{Limit: limit, Skip: skip})
}

func (u *Usecase) ListHome(ctx context.Context) ([]domain.Offer, error) {
	return u.list(ctx, domain.Filter{HomeOnly: true, Limit: homeLimit})
}

func (u *Usecase) list(ctx context.Context, f domain.Filter) ([]domain.Offer, error) {
	list, err := u.offers.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []domain.Offer{}
	}
	return list, nil
}

func (u *Usecase) Update(ctx context.Context, offerID string, p domain.Patch) (*domain.Offer, error) {
	if p.Empty() {
		return nil, apperr.Invalid("nothing to update")
	}
	o, err := u.offers.GetByOfferID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	p.Apply(o)
	o.Title = strings.TrimSpace(o.Title)
	if err := check(o); err != nil {
		return nil, err
	}
	o.UpdatedAt = u.now()
	if err := u.offers.Save(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (u *Usecase) Delete(ctx context.Context, offerID string) error {
	if err := u.offers.Delete(ctx, offerID); err != nil {
		return err
	}
	logger.InfoContext(ctx, "loan offer deleted", "loan_id", offerID)
	return nil
}

func check(o *domain.Offer) error {
	if o.Title == "" {
		return ErrTitleRequired
	}
	if o.InterestRate.IsNegative() || o.MaxLoanLimit.IsNegative() {
		return ErrNegativeValue
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
