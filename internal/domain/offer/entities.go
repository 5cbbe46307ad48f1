package offer

import (
	"time"

	"github.com/shopspring/decimal"

	"loanlink-backend/internal/domain/apperr"
)

var (
	ErrNotFound = apperr.New(apperr.ErrNotFound, "loan not found")
)

// Table: loans. One row per lendable product in the public catalog.
type Offer struct {
	ID                uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	OfferID           string          `gorm:"column:offer_id;size:32;not null;uniqueIndex:ux_loans_offer_id" json:"id"`
	Title             string          `gorm:"column:title;size:255;not null" json:"title"`
	Description       string          `gorm:"column:description;type:text" json:"description"`
	Category          string          `gorm:"column:category;size:64;index" json:"category"`
	InterestRate      decimal.Decimal `gorm:"column:interest_rate;type:decimal(6,2)" json:"interest_rate"`
	MaxLoanLimit      decimal.Decimal `gorm:"column:max_loan_limit;type:decimal(18,2)" json:"max_loan_limit"`
	RequiredDocuments []string        `gorm:"column:required_documents;serializer:json" json:"required_documents"`
	EMIPlans          []string        `gorm:"column:emi_plans;serializer:json" json:"emi_plans"`
	Images            []string        `gorm:"column:images;serializer:json" json:"images"`
	ShowOnHome        bool            `gorm:"column:show_on_home;not null;default:false;index" json:"show_on_home"`
	CreatedBy         string          `gorm:"column:created_by;size:255" json:"created_by"`
	CreatedAt         time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Offer) TableName() string { return "loans" }

// Patch lists the offer fields a manager may change. Nil means untouched.
type Patch struct {
	Title             *string
	Description       *string
	Category          *string
	InterestRate      *decimal.Decimal
	MaxLoanLimit      *decimal.Decimal
	RequiredDocuments []string
	EMIPlans          []string
	Images            []string
	ShowOnHome        *bool
}

func (p Patch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Category == nil &&
		p.InterestRate == nil && p.MaxLoanLimit == nil && p.RequiredDocuments == nil &&
		p.EMIPlans == nil && p.Images == nil && p.ShowOnHome == nil
}

// Apply copies the set fields of p onto o.
func (p Patch) Apply(o *Offer) {
	if p.Title != nil {
		o.Title = *p.Title
	}
	if p.Description != nil {
		o.Description = *p.Description
	}
	if p.Category != nil {
		o.Category = *p.Category
	}
	if p.InterestRate != nil {
		o.InterestRate = *p.InterestRate
	}
	if p.MaxLoanLimit != nil {
		o.MaxLoanLimit = *p.MaxLoanLimit
	}
	if p.RequiredDocuments != nil {
		o.RequiredDocuments = p.RequiredDocuments
	}
	if p.EMIPlans != nil {
		o.EMIPlans = p.EMIPlans
	}
	if p.Images != nil {
		o.Images = p.Images
	}
	if p.ShowOnHome != nil {
		o.ShowOnHome = *p.ShowOnHome
	}
}
