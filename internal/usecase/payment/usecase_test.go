package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loanlink-backend/internal/domain/application"
	"loanlink-backend/internal/domain/apperr"
	domain "loanlink-backend/internal/domain/payment"
	"loanlink-backend/internal/domain/user"
	"loanlink-backend/internal/testutil/applicationmock"
	"loanlink-backend/internal/testutil/paymentmock"
	"loanlink-backend/internal/usecase/access"
	appuc "loanlink-backend/internal/usecase/application"
)

var (
	owner = access.Caller{Email: "ann@example.com", Role: user.RoleBorrower}
	other = access.Caller{Email: "eve@example.com", Role: user.RoleBorrower}
	cfg   = Config{FeeAmountMinor: 1000, ClientDomain: "https://app.example.com/"}
)

type feeFunc func(ctx context.Context, in appuc.PaymentInput) (*appuc.ApplicationDTO, error)

func (f feeFunc) MarkPaid(ctx context.Context, in appuc.PaymentInput) (*appuc.ApplicationDTO, error) {
	return f(ctx, in)
}

func appsWith(fee application.FeeStatus) *applicationmock.Repo {
	return &applicationmock.Repo{GetByApplicationIDFn: func(_ context.Context, id string) (*application.Application, error) {
		if id != "app-1" {
			return nil, application.ErrNotFound
		}
		return &application.Application{ApplicationID: id, UserEmail: owner.Email, LoanTitle: "Home", FeeStatus: fee}, nil
	}}
}

func TestUsecase_CreateCheckout(t *testing.T) {
	var req domain.CheckoutRequest
	gw := &paymentmock.Gateway{CreateCheckoutSessionFn: func(_ context.Context, r domain.CheckoutRequest) (*domain.Session, error) {
		req = r
		return &domain.Session{ID: "cs_1", URL: "https://pay.example/cs_1"}, nil
	}}
	uc := NewUsecase(appsWith(application.FeeUnpaid), nil, gw, cfg)

	out, err := uc.CreateCheckout(context.Background(), owner, "app-1")
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/cs_1", out.URL)
	assert.Equal(t, int64(1000), req.AmountMinor)
	assert.Equal(t, "usd", req.Currency)
	assert.Equal(t, "app-1", req.Metadata[domain.MetaApplicationID])
	assert.Equal(t, owner.Email, req.Metadata[domain.MetaEmail])
	assert.Equal(t, "https://app.example.com/payment-success?session_id={CHECKOUT_SESSION_ID}", req.SuccessURL)

	_, err = uc.CreateCheckout(context.Background(), other, "app-1")
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = uc.CreateCheckout(context.Background(), owner, "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	paid := NewUsecase(appsWith(application.FeePaid), nil, gw, cfg)
	_, err = paid.CreateCheckout(context.Background(), owner, "app-1")
	assert.ErrorIs(t, err, application.ErrAlreadyPaid)
}

func TestUsecase_CreateCheckout_UpstreamFailure(t *testing.T) {
	gw := &paymentmock.Gateway{CreateCheckoutSessionFn: func(context.Context, domain.CheckoutRequest) (*domain.Session, error) {
		return nil, apperr.Upstream("stripe", errors.New("timeout"))
	}}
	_, err := NewUsecase(appsWith(application.FeeUnpaid), nil, gw, cfg).CreateCheckout(context.Background(), owner, "app-1")
	assert.ErrorIs(t, err, apperr.ErrUpstream)
}

func TestUsecase_Confirm(t *testing.T) {
	session := func(paid bool, meta map[string]string) *paymentmock.Gateway {
		return &paymentmock.Gateway{GetSessionFn: func(_ context.Context, id string) (*domain.Session, error) {
			return &domain.Session{ID: id, Paid: paid, TransactionID: "pi_9", AmountMinor: 1000, Currency: "usd", Metadata: meta}, nil
		}}
	}
	meta := map[string]string{domain.MetaApplicationID: "app-1", domain.MetaEmail: owner.Email}

	t.Run("records fee", func(t *testing.T) {
		var got appuc.PaymentInput
		fees := feeFunc(func(_ context.Context, in appuc.PaymentInput) (*appuc.ApplicationDTO, error) {
			got = in
			return &appuc.ApplicationDTO{ApplicationID: in.ApplicationID, FeeStatus: "Paid"}, nil
		})
		out, err := NewUsecase(nil, fees, session(true, meta), cfg).Confirm(context.Background(), owner, "cs_1")
		require.NoError(t, err)
		assert.Equal(t, "pi_9", out.TransactionID)
		assert.Equal(t, appuc.PaymentInput{
			ApplicationID: "app-1", TransactionID: "pi_9", PayerEmail: owner.Email, AmountMinor: 1000, Currency: "usd",
		}, got)
	})

	noFees := feeFunc(func(context.Context, appuc.PaymentInput) (*appuc.ApplicationDTO, error) {
		t.Fatal("must not record")
		return nil, nil
	})
	cases := []struct {
		name   string
		gw     *paymentmock.Gateway
		caller access.Caller
		want   error
	}{
		{"unpaid session", session(false, meta), owner, domain.ErrNotCompleted},
		{"no metadata", session(true, map[string]string{}), owner, domain.ErrMissingMetadata},
		{"someone else's session", session(true, meta), other, apperr.ErrForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewUsecase(nil, noFees, tc.gw, cfg).Confirm(context.Background(), tc.caller, "cs_1")
			assert.ErrorIs(t, err, tc.want)
		})
	}

	t.Run("blank session id", func(t *testing.T) {
		_, err := NewUsecase(nil, noFees, &paymentmock.Gateway{}, cfg).Confirm(context.Background(), owner, " ")
		assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	})
}
