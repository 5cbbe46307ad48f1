package application

import (
	"time"

	"github.com/shopspring/decimal"

	"loanlink-backend/internal/domain/apperr"
)

var (
	ErrNotFound          = apperr.New(apperr.ErrNotFound, "loan application not found")
	ErrNotOwner          = apperr.New(apperr.ErrForbidden, "application belongs to another borrower")
	ErrAlreadyDecided    = apperr.New(apperr.ErrConflict, "application already approved or rejected")
	ErrAlreadyPaid       = apperr.New(apperr.ErrConflict, "application fee already paid")
	ErrImmutableField    = apperr.New(apperr.ErrInvalidInput, "field cannot be changed")
	ErrEmptyPatch        = apperr.New(apperr.ErrInvalidInput, "nothing to update")
	ErrInvalidTransition = apperr.New(apperr.ErrConflict, "invalid status transition")
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// CanTransition reports whether the lifecycle allows from -> to.
// Approved and Rejected are terminal.
func CanTransition(from, to Status) bool {
	return from == StatusPending && (to == StatusApproved || to == StatusRejected)
}

type FeeStatus string

const (
	FeeUnpaid FeeStatus = "Unpaid"
	FeePaid   FeeStatus = "Paid"
)

// PaymentInfo is the evidence stored once the fee has been collected.
type PaymentInfo struct {
	TransactionID string    `json:"transaction_id"`
	PayerEmail    string    `json:"payer_email"`
	AmountMinor   int64     `json:"amount_minor"`
	Currency      string    `json:"currency"`
	PaidAt        time.Time `json:"paid_at"`
}

// Details are the borrower-supplied fields, the only ones an owner may patch.
type Details struct {
	FirstName     string          `gorm:"column:first_name;size:128" json:"first_name"`
	LastName      string          `gorm:"column:last_name;size:128" json:"last_name"`
	ContactNumber string          `gorm:"column:contact_number;size:32" json:"contact_number"`
	NationalID    string          `gorm:"column:national_id;size:64" json:"national_id"`
	IncomeSource  string          `gorm:"column:income_source;size:128" json:"income_source"`
	MonthlyIncome decimal.Decimal `gorm:"column:monthly_income;type:decimal(18,2)" json:"monthly_income"`
	LoanAmount    decimal.Decimal `gorm:"column:loan_amount;type:decimal(18,2)" json:"loan_amount"`
	Reason        string          `gorm:"column:reason;type:text" json:"reason"`
	Address       string          `gorm:"column:address;type:text" json:"address"`
	ExtraNotes    string          `gorm:"column:extra_notes;type:text" json:"extra_notes"`
}

// Table: loan_applications
type Application struct {
	ID            uint64       `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ApplicationID string       `gorm:"column:application_id;size:32;not null;uniqueIndex:ux_applications_application_id" json:"id"`
	LoanID        string       `gorm:"column:loan_id;size:32;not null;index" json:"loan_id"`
	LoanTitle     string       `gorm:"column:loan_title;size:255" json:"loan_title"`
	UserEmail     string       `gorm:"column:user_email;size:255;not null;index:idx_applications_owner" json:"user_email"`
	Details       Details      `gorm:"embedded" json:"details"`
	Status        Status       `gorm:"column:status;size:16;not null;default:Pending;index" json:"status"`
	FeeStatus     FeeStatus    `gorm:"column:application_fee_status;size:16;not null;default:Unpaid" json:"application_fee_status"`
	Payment       *PaymentInfo `gorm:"column:payment_info;serializer:json" json:"payment_info,omitempty"`
	CreatedAt     time.Time    `gorm:"column:created_at;index:idx_applications_owner" json:"created_at"`
	ApprovedAt    *time.Time   `gorm:"column:approved_at" json:"approved_at,omitempty"`
	RejectedAt    *time.Time   `gorm:"column:rejected_at" json:"rejected_at,omitempty"`
	UpdatedAt     time.Time    `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Application) TableName() string { return "loan_applications" }

// Patch is the allow-list of owner-editable fields. Nil means untouched.
type Patch struct {
	FirstName     *string
	LastName      *string
	ContactNumber *string
	NationalID    *string
	IncomeSource  *string
	MonthlyIncome *decimal.Decimal
	LoanAmount    *decimal.Decimal
	Reason        *string
	Address       *string
	ExtraNotes    *string
}

func (p Patch) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.ContactNumber == nil && p.NationalID == nil &&
		p.IncomeSource == nil && p.MonthlyIncome == nil && p.LoanAmount == nil && p.Reason == nil &&
		p.Address == nil && p.ExtraNotes == nil
}

// Apply copies the set fields onto d.
func (p Patch) Apply(d *Details) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&d.FirstName, p.FirstName)
	set(&d.LastName, p.LastName)
	set(&d.ContactNumber, p.ContactNumber)
	set(&d.NationalID, p.NationalID)
	set(&d.IncomeSource, p.IncomeSource)
	set(&d.Reason, p.Reason)
	set(&d.Address, p.Address)
	set(&d.ExtraNotes, p.ExtraNotes)
	if p.MonthlyIncome != nil {
		d.MonthlyIncome = *p.MonthlyIncome
	}
	if p.LoanAmount != nil {
		d.LoanAmount = *p.LoanAmount
	}
}
