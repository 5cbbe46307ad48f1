package application

import (
	"time"

	"github.com/shopspring/decimal"

	domain "loanlink-backend/internal/domain/application"
)

type SubmitInput struct {
	LoanID  string
	Details domain.Details
}

// PaymentInput is the verified evidence handed over by the payment flow.
type PaymentInput struct {
	ApplicationID string
	TransactionID string
	PayerEmail    string
	AmountMinor   int64
	Currency      string
}

type PaymentDTO struct {
	TransactionID string    `json:"transaction_id"`
	PayerEmail    string    `json:"payer_email"`
	AmountMinor   int64     `json:"amount_minor"`
	Currency      string    `json:"currency"`
	PaidAt        time.Time `json:"paid_at"`
}

type ApplicationDTO struct {
	ApplicationID string          `json:"id"`
	LoanID        string          `json:"loan_id"`
	LoanTitle     string          `json:"loan_title"`
	UserEmail     string          `json:"user_email"`
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	ContactNumber string          `json:"contact_number"`
	NationalID    string          `json:"national_id"`
	IncomeSource  string          `json:"income_source"`
	MonthlyIncome decimal.Decimal `json:"monthly_income"`
	LoanAmount    decimal.Decimal `json:"loan_amount"`
	Reason        string          `json:"reason"`
	Address       string          `json:"address"`
	ExtraNotes    string          `json:"extra_notes,omitempty"`
	Status        string          `json:"status"`
	FeeStatus     string          `json:"application_fee_status"`
	Payment       *PaymentDTO     `json:"payment_info,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	ApprovedAt    *time.Time      `json:"approved_at,omitempty"`
	RejectedAt    *time.Time      `json:"rejected_at,omitempty"`
}

func toDTO(a *domain.Application) *ApplicationDTO {
	dto := &ApplicationDTO{
		ApplicationID: a.ApplicationID,
		LoanID:        a.LoanID,
		LoanTitle:     a.LoanTitle,
		UserEmail:     a.UserEmail,
		FirstName:     a.Details.FirstName,
		LastName:      a.Details.LastName,
		ContactNumber: a.Details.ContactNumber,
		NationalID:    a.Details.NationalID,
		IncomeSource:  a.Details.IncomeSource,
		MonthlyIncome: a.Details.MonthlyIncome,
		LoanAmount:    a.Details.LoanAmount,
		Reason:        a.Details.Reason,
		Address:       a.Details.Address,
		ExtraNotes:    a.Details.ExtraNotes,
		Status:        string(a.Status),
		FeeStatus:     string(a.FeeStatus),
		CreatedAt:     a.CreatedAt,
		ApprovedAt:    a.ApprovedAt,
		RejectedAt:    a.RejectedAt,
	}
	if p := a.Payment; p != nil {
		dto.Payment = &PaymentDTO{
			TransactionID: p.TransactionID,
			PayerEmail:    p.PayerEmail,
			AmountMinor:   p.AmountMinor,
			Currency:      p.Currency,
			PaidAt:        p.PaidAt,
		}
	}
	return dto
}

func toDTOs(list []domain.Application) []ApplicationDTO {
	out := make([]ApplicationDTO, 0, len(list))
	for i := range list {
		out = append(out, *toDTO(&list[i]))
	}
	return out
}
