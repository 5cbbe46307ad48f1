package payment

import appuc "loanlink-backend/internal/usecase/application"

// Config carries the fee and redirect settings for hosted checkout.
type Config struct {
	FeeAmountMinor int64
	FeeCurrency    string
	ClientDomain   string
}

type CheckoutDTO struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

type ConfirmationDTO struct {
	TransactionID string                `json:"transaction_id"`
	Application   *appuc.ApplicationDTO `json:"application"`
}
