package application

import (
	"context"
	"errors"
	"strings"
	"time"

	domain "loanlink-backend/internal/domain/application"
	"loanlink-backend/internal/domain/apperr"
	"loanlink-backend/internal/domain/offer"
	"loanlink-backend/internal/domain/uow"
	"loanlink-backend/internal/domain/user"
	"loanlink-backend/internal/logger"
	"loanlink-backend/internal/usecase/access"
	"loanlink-backend/pkg/id"
)

var ErrLoanRequired = apperr.Invalid("loan id is required")

type Usecase struct {
	apps   domain.Repository
	offers offer.Repository
	uow    uow.UnitOfWork
	now    func() time.Time
}

func NewUsecase(apps domain.Repository, offers offer.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{
		apps:   apps,
		offers: offers,
		uow:    tx,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Submit records a new Pending/Unpaid application owned by the caller.
// Status, owner and timestamps are always set here.
func (u *Usecase) Submit(ctx context.Context, caller access.Caller, in SubmitInput) (*ApplicationDTO, error) {
	loanID := strings.TrimSpace(in.LoanID)
	if loanID == "" {
		return nil, ErrLoanRequired
	}
	o, err := u.offers.GetByOfferID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	a := &domain.Application{
		ApplicationID: id.NewID32(),
		LoanID:        o.OfferID,
		LoanTitle:     o.Title,
		UserEmail:     caller.Email,
		Details:       in.Details,
		Status:        domain.StatusPending,
		FeeStatus:     domain.FeeUnpaid,
		CreatedAt:     u.now(),
	}
	if err := u.apps.Create(ctx, a); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "loan application submitted",
		"application_id", a.ApplicationID, "loan_id", a.LoanID, "user", a.UserEmail)
	return toDTO(a), nil
}

// OwnerUpdate patches the borrower details of a Pending application.
func (u *Usecase) OwnerUpdate(ctx context.Context, caller access.Caller, applicationID string, patch domain.Patch) (*ApplicationDTO, error) {
	var out *ApplicationDTO
	err := u.uow.WithinApplicationTx(ctx, applicationID, func(r uow.Repos, a *domain.Application) error {
		if a.UserEmail != caller.Email {
			return domain.ErrNotOwner
		}
		if a.Status != domain.StatusPending {
			return domain.ErrAlreadyDecided
		}
		if patch.Empty() {
			return domain.ErrEmptyPatch
		}
		patch.Apply(&a.Details)
		if err := r.Applications.SaveDetails(ctx, a.ApplicationID, a.Details); err != nil {
			return err
		}
		out = toDTO(a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) Approve(ctx context.Context, applicationID string) (*ApplicationDTO, error) {
	return u.decide(ctx, applicationID, domain.StatusApproved)
}

func (u *Usecase) Reject(ctx context.Context, applicationID string) (*ApplicationDTO, error) {
	return u.decide(ctx, applicationID, domain.StatusRejected)
}

func (u *Usecase) decide(ctx context.Context, applicationID string, to domain.Status) (*ApplicationDTO, error) {
	if !domain.CanTransition(domain.StatusPending, to) {
		return nil, domain.ErrInvalidTransition
	}
	ok, err := u.apps.Decide(ctx, applicationID, to, u.now())
	if err != nil {
		return nil, err
	}
	// Re-read either way: on success for the response, on failure to tell
	// a missing row from one that was already decided.
	a, err := u.apps.GetByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrAlreadyDecided
	}
	logger.InfoContext(ctx, "loan application decided", "application_id", applicationID, "status", string(to))
	return toDTO(a), nil
}

// Get is open to the owner and to staff.
func (u *Usecase) Get(ctx context.Context, caller access.Caller, applicationID string) (*ApplicationDTO, error) {
	a, err := u.apps.GetByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if a.UserEmail != caller.Email && !caller.Is(user.RoleManager, user.RoleAdmin) {
		return nil, domain.ErrNotOwner
	}
	return toDTO(a), nil
}

// ListMine returns the caller's own applications, newest first.
func (u *Usecase) ListMine(ctx context.Context, caller access.Caller, email string) ([]ApplicationDTO, error) {
	if !strings.EqualFold(strings.TrimSpace(email), caller.Email) {
		return nil, domain.ErrNotOwner
	}
	list, err := u.apps.ListByOwner(ctx, caller.Email)
	if err != nil {
		return nil, err
	}
	return toDTOs(list), nil
}

func (u *Usecase) ListAll(ctx context.Context, p domain.Page) ([]ApplicationDTO, error) {
	list, err := u.apps.List(ctx, p)
	if err != nil {
		return nil, err
	}
	return toDTOs(list), nil
}

func (u *Usecase) ListPending(ctx context.Context) ([]ApplicationDTO, error) {
	return u.listByStatus(ctx, domain.StatusPending)
}

func (u *Usecase) ListApproved(ctx context.Context) ([]ApplicationDTO, error) {
	return u.listByStatus(ctx, domain.StatusApproved)
}

func (u *Usecase) listByStatus(ctx context.Context, s domain.Status) ([]ApplicationDTO, error) {
	list, err := u.apps.ListByStatus(ctx, s)
	if err != nil {
		return nil, err
	}
	return toDTOs(list), nil
}

// MarkPaid records the fee payment. Replaying the transaction that already
// paid the application succeeds without writing; any other one conflicts.
func (u *Usecase) MarkPaid(ctx context.Context, in PaymentInput) (*ApplicationDTO, error) {
	if strings.TrimSpace(in.TransactionID) == "" {
		return nil, apperr.Invalid("transaction id is required")
	}
	var out *ApplicationDTO
	err := u.uow.WithinApplicationTx(ctx, in.ApplicationID, func(r uow.Repos, a *domain.Application) error {
		if a.FeeStatus == domain.FeePaid {
			if a.Payment != nil && a.Payment.TransactionID == in.TransactionID {
				out = toDTO(a)
				return nil
			}
			return domain.ErrAlreadyPaid
		}

		info := domain.PaymentInfo{
			TransactionID: in.TransactionID,
			PayerEmail:    in.PayerEmail,
			AmountMinor:   in.AmountMinor,
			Currency:      strings.ToLower(in.Currency),
			PaidAt:        u.now(),
		}
		ok, err := r.Applications.MarkPaid(ctx, a.ApplicationID, info)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrAlreadyPaid
		}
		a.FeeStatus = domain.FeePaid
		a.Payment = &info
		out = toDTO(a)
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyPaid) {
			logger.WarnContext(ctx, "duplicate fee payment", "application_id", in.ApplicationID, "transaction_id", in.TransactionID)
		}
		return nil, err
	}
	logger.InfoContext(ctx, "application fee paid", "application_id", in.ApplicationID, "transaction_id", in.TransactionID)
	return out, nil
}
