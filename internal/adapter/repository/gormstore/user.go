package gormstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	userDomain "loanlink-backend/internal/domain/user"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) Create(ctx context.Context, u *userDomain.User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return userDomain.ErrAlreadyExists
	}
	return translate(err, nil)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	var out userDomain.User
	res := r.db.WithContext(ctx).Where("email = ?", email).First(&out)
	if res.Error != nil {
		return nil, translate(res.Error, userDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *UserRepository) List(ctx context.Context, p userDomain.Page) ([]userDomain.User, error) {
	limit, skip := pageBounds(p.Limit, p.Skip)
	var out []userDomain.User
	res := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(skip).
		Find(&out)
	return out, translate(res.Error, nil)
}

func (r *UserRepository) CountByRole(ctx context.Context, role userDomain.Role) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&userDomain.User{}).Where("role = ?", role).Count(&n)
	return n, translate(res.Error, nil)
}

func (r *UserRepository) TouchLogin(ctx context.Context, email string, at time.Time) error {
	return r.updateByEmail(ctx, email, map[string]any{"last_logged_in": at.UTC()})
}

func (r *UserRepository) UpdateRole(ctx context.Context, email string, role userDomain.Role) error {
	fields := map[string]any{"role": role}
	if role != userDomain.RoleSuspended {
		fields["suspend_reason"] = ""
		fields["suspend_feedback"] = ""
	}
	return r.updateByEmail(ctx, email, fields)
}

func (r *UserRepository) Suspend(ctx context.Context, email, reason, feedback string) error {
	return r.updateByEmail(ctx, email, map[string]any{
		"role":             userDomain.RoleSuspended,
		"suspend_reason":   reason,
		"suspend_feedback": feedback,
	})
}

func (r *UserRepository) updateByEmail(ctx context.Context, email string, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&userDomain.User{}).Where("email = ?", email).Updates(fields)
	if res.Error != nil {
		return translate(res.Error, nil)
	}
	if res.RowsAffected == 0 {
		// Updates reports 0 rows when the values are unchanged on some drivers,
		// so confirm the row is really missing.
		if _, err := r.GetByEmail(ctx, email); err != nil {
			return err
		}
	}
	return nil
}
