package gormstore

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	appDomain "loanlink-backend/internal/domain/application"
)

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *appDomain.Application) error {
	return translate(r.db.WithContext(ctx).Create(a).Error, nil)
}

func (r *ApplicationRepository) GetByApplicationID(ctx context.Context, applicationID string) (*appDomain.Application, error) {
	var out appDomain.Application
	res := r.db.WithContext(ctx).Where("application_id = ?", applicationID).First(&out)
	if res.Error != nil {
		return nil, translate(res.Error, appDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *ApplicationRepository) GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*appDomain.Application, error) {
	var out appDomain.Application
	q := r.db.WithContext(ctx)
	// sqlite has no row locks; its writer lock already serializes the tx
	if r.db.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	res := q.Where("application_id = ?", applicationID).First(&out)
	if res.Error != nil {
		return nil, translate(res.Error, appDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *ApplicationRepository) ListByOwner(ctx context.Context, email string) ([]appDomain.Application, error) {
	var out []appDomain.Application
	res := r.db.WithContext(ctx).
		Where("user_email = ?", email).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, translate(res.Error, nil)
}

func (r *ApplicationRepository) List(ctx context.Context, p appDomain.Page) ([]appDomain.Application, error) {
	limit, skip := pageBounds(p.Limit, p.Skip)
	var out []appDomain.Application
	res := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(skip).
		Find(&out)
	return out, translate(res.Error, nil)
}

func (r *ApplicationRepository) ListByStatus(ctx context.Context, status appDomain.Status) ([]appDomain.Application, error) {
	order := "created_at DESC, id DESC"
	switch status {
	case appDomain.StatusApproved:
		order = "approved_at DESC, id DESC"
	case appDomain.StatusRejected:
		order = "rejected_at DESC, id DESC"
	}
	var out []appDomain.Application
	res := r.db.WithContext(ctx).Where("status = ?", status).Order(order).Find(&out)
	return out, translate(res.Error, nil)
}

func (r *ApplicationRepository) SaveDetails(ctx context.Context, applicationID string, d appDomain.Details) error {
	res := r.db.WithContext(ctx).
		Model(&appDomain.Application{}).
		Where("application_id = ?", applicationID).
		Select("first_name", "last_name", "contact_number", "national_id", "income_source",
			"monthly_income", "loan_amount", "reason", "address", "extra_notes").
		Updates(&appDomain.Application{Details: d})
	return translate(res.Error, nil)
}

func (r *ApplicationRepository) Decide(ctx context.Context, applicationID string, to appDomain.Status, at time.Time) (bool, error) {
	fields := map[string]any{"status": to}
	switch to {
	case appDomain.StatusApproved:
		fields["approved_at"] = at.UTC()
	case appDomain.StatusRejected:
		fields["rejected_at"] = at.UTC()
	default:
		return false, appDomain.ErrInvalidTransition
	}
	res := r.db.WithContext(ctx).
		Model(&appDomain.Application{}).
		Where("application_id = ? AND status = ?", applicationID, appDomain.StatusPending).
		Updates(fields)
	if res.Error != nil {
		return false, translate(res.Error, nil)
	}
	return res.RowsAffected == 1, nil
}

func (r *ApplicationRepository) MarkPaid(ctx context.Context, applicationID string, info appDomain.PaymentInfo) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&appDomain.Application{}).
		Where("application_id = ? AND application_fee_status = ?", applicationID, appDomain.FeeUnpaid).
		Updates(&appDomain.Application{FeeStatus: appDomain.FeePaid, Payment: &info})
	if res.Error != nil {
		return false, translate(res.Error, nil)
	}
	return res.RowsAffected == 1, nil
}
