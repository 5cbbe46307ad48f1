package offer

import "github.com/shopspring/decimal"

type CreateInput struct {
	Title             string
	Description       string
	Category          string
	InterestRate      decimal.Decimal
	MaxLoanLimit      decimal.Decimal
	RequiredDocuments []string
	EMIPlans          []string
	Images            []string
	ShowOnHome        bool
}
