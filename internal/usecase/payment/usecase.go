package payment

import (
	"context"
	"strings"

	"loanlink-backend/internal/domain/application"
	"loanlink-backend/internal/domain/apperr"
	domain "loanlink-backend/internal/domain/payment"
	"loanlink-backend/internal/logger"
	"loanlink-backend/internal/usecase/access"
	appuc "loanlink-backend/internal/usecase/application"
)

// FeeRecorder is the part of the lifecycle manager this flow needs.
type FeeRecorder interface {
	MarkPaid(ctx context.Context, in appuc.PaymentInput) (*appuc.ApplicationDTO, error)
}

type Usecase struct {
	apps    application.Repository
	fees    FeeRecorder
	gateway domain.Gateway
	cfg     Config
}

func NewUsecase(apps application.Repository, fees FeeRecorder, gw domain.Gateway, cfg Config) *Usecase {
	if cfg.FeeCurrency == "" {
		cfg.FeeCurrency = "usd"
	}
	cfg.ClientDomain = strings.TrimRight(cfg.ClientDomain, "/")
	return &Usecase{apps: apps, fees: fees, gateway: gw, cfg: cfg}
}

// CreateCheckout opens a hosted checkout for the caller's unpaid application fee.
func (u *Usecase) CreateCheckout(ctx context.Context, caller access.Caller, applicationID string) (*CheckoutDTO, error) {
	if strings.TrimSpace(applicationID) == "" {
		return nil, apperr.Invalid("application id is required")
	}
	a, err := u.apps.GetByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if a.UserEmail != caller.Email {
		return nil, application.ErrNotOwner
	}
	if a.FeeStatus == application.FeePaid {
		return nil, application.ErrAlreadyPaid
	}

	s, err := u.gateway.CreateCheckoutSession(ctx, domain.CheckoutRequest{
		AmountMinor:   u.cfg.FeeAmountMinor,
		Currency:      u.cfg.FeeCurrency,
		ProductName:   "Application fee: " + a.LoanTitle,
		CustomerEmail: caller.Email,
		SuccessURL:    u.cfg.ClientDomain + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     u.cfg.ClientDomain + "/dashboard/my-loans",
		Metadata: map[string]string{
			domain.MetaApplicationID: a.ApplicationID,
			domain.MetaEmail:         caller.Email,
		},
	})
	if err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "checkout session created", "application_id", a.ApplicationID, "session_id", s.ID)
	return &CheckoutDTO{SessionID: s.ID, URL: s.URL}, nil
}

// Confirm verifies a completed session with the provider and records the fee.
// The session must have been paid by the caller.
func (u *Usecase) Confirm(ctx context.Context, caller access.Caller, sessionID string) (*ConfirmationDTO, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, apperr.Invalid("session id is required")
	}
	s, err := u.gateway.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !s.Paid {
		return nil, domain.ErrNotCompleted
	}
	applicationID := s.Metadata[domain.MetaApplicationID]
	if applicationID == "" {
		return nil, domain.ErrMissingMetadata
	}

	payer := strings.ToLower(s.Metadata[domain.MetaEmail])
	if payer == "" {
		payer = strings.ToLower(s.CustomerEmail)
	}
	if payer != caller.Email {
		return nil, domain.ErrPayerMismatch
	}

	txID := s.TransactionID
	if txID == "" {
		txID = s.ID
	}
	dto, err := u.fees.MarkPaid(ctx, appuc.PaymentInput{
		ApplicationID: applicationID,
		TransactionID: txID,
		PayerEmail:    payer,
		AmountMinor:   s.AmountMinor,
		Currency:      s.Currency,
	})
	if err != nil {
		return nil, err
	}
	return &ConfirmationDTO{TransactionID: txID, Application: dto}, nil
}
