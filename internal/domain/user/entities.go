package user

import (
	"time"

	"loanlink-backend/internal/domain/apperr"
)

var (
	ErrNotFound      = apperr.New(apperr.ErrNotFound, "user not found")
	ErrAlreadyExists = apperr.New(apperr.ErrConflict, "user already exists")
	ErrInvalidRole   = apperr.New(apperr.ErrInvalidInput, "invalid role")
	ErrSelfChange    = apperr.New(apperr.ErrConflict, "admins cannot change their own role")
)

type Role string

const (
	RoleBorrower  Role = "borrower"
	RoleManager   Role = "manager"
	RoleAdmin     Role = "admin"
	RoleSuspended Role = "suspended"
)

func (r Role) Valid() bool {
	switch r {
	case RoleBorrower, RoleManager, RoleAdmin, RoleSuspended:
		return true
	}
	return false
}

// Table: users
type User struct {
	ID              uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	UserID          string    `gorm:"column:user_id;size:32;not null;uniqueIndex:ux_users_user_id" json:"id"`
	Email           string    `gorm:"column:email;size:255;not null;uniqueIndex:ux_users_email" json:"email"`
	Name            string    `gorm:"column:name;size:255" json:"name,omitempty"`
	PhotoURL        string    `gorm:"column:photo_url;type:text" json:"photo_url,omitempty"`
	Role            Role      `gorm:"column:role;size:16;not null;default:borrower;index" json:"role"`
	SuspendReason   string    `gorm:"column:suspend_reason;type:text" json:"suspend_reason,omitempty"`
	SuspendFeedback string    `gorm:"column:suspend_feedback;type:text" json:"suspend_feedback,omitempty"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"created_at"`
	LastLoggedIn    time.Time `gorm:"column:last_logged_in" json:"last_logged_in"`
}

func (User) TableName() string { return "users" }
