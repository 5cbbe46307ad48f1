package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domain "loanlink-backend/internal/domain/application"
	"loanlink-backend/internal/domain/apperr"
	"loanlink-backend/internal/domain/offer"
	"loanlink-backend/internal/domain/uow"
	"loanlink-backend/internal/domain/user"
	"loanlink-backend/internal/testutil/applicationmock"
	"loanlink-backend/internal/testutil/offermock"
	"loanlink-backend/internal/testutil/uowmock"
	"loanlink-backend/internal/usecase/access"
)

var (
	fixedNow = time.Date(2025, 11, 3, 9, 30, 0, 0, time.UTC)
	alice    = access.Caller{Email: "alice@example.com", Role: user.RoleBorrower}
	bob      = access.Caller{Email: "bob@example.com", Role: user.RoleBorrower}
	manager  = access.Caller{Email: "mgr@example.com", Role: user.RoleManager}
)

func newUC(apps domain.Repository, offers offer.Repository, tx uow.UnitOfWork) *Usecase {
	uc := NewUsecase(apps, offers, tx)
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func pendingApp() *domain.Application {
	return &domain.Application{
		ApplicationID: "app-1",
		LoanID:        "loan-1",
		UserEmail:     alice.Email,
		Details:       domain.Details{FirstName: "Alice", LoanAmount: decimal.NewFromInt(500)},
		Status:        domain.StatusPending,
		FeeStatus:     domain.FeeUnpaid,
		CreatedAt:     fixedNow.Add(-time.Hour),
	}
}

func TestUsecase_Submit(t *testing.T) {
	offers := &offermock.Repo{
		GetByOfferIDFn: func(_ context.Context, id string) (*offer.Offer, error) {
			if id != "loan-1" {
				return nil, offer.ErrNotFound
			}
			return &offer.Offer{OfferID: "loan-1", Title: "Small business"}, nil
		},
	}

	t.Run("server sets owner and lifecycle fields", func(t *testing.T) {
		var stored *domain.Application
		apps := &applicationmock.Repo{
			CreateFn: func(_ context.Context, a *domain.Application) error {
				stored = a
				return nil
			},
		}
		uc := newUC(apps, offers, nil)

		dto, err := uc.Submit(context.Background(), alice, SubmitInput{
			LoanID:  " loan-1 ",
			Details: domain.Details{FirstName: "Alice", LoanAmount: decimal.NewFromInt(900)},
		})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if stored == nil {
			t.Fatal("Create was not called")
		}
		if stored.UserEmail != alice.Email || stored.Status != domain.StatusPending || stored.FeeStatus != domain.FeeUnpaid {
			t.Fatalf("unexpected stored record: %+v", stored)
		}
		if !stored.CreatedAt.Equal(fixedNow) || stored.LoanTitle != "Small business" {
			t.Fatalf("created_at/title not set: %+v", stored)
		}
		if len(stored.ApplicationID) != 32 || dto.ApplicationID != stored.ApplicationID {
			t.Fatalf("bad application id: %q / %q", stored.ApplicationID, dto.ApplicationID)
		}
	})

	t.Run("unknown loan", func(t *testing.T) {
		uc := newUC(&applicationmock.Repo{}, offers, nil)
		_, err := uc.Submit(context.Background(), alice, SubmitInput{LoanID: "nope"})
		if !errors.Is(err, apperr.ErrNotFound) {
			t.Fatalf("want NotFound, got %v", err)
		}
	})

	t.Run("missing loan id", func(t *testing.T) {
		uc := newUC(&applicationmock.Repo{}, offers, nil)
		_, err := uc.Submit(context.Background(), alice, SubmitInput{})
		if !errors.Is(err, apperr.ErrInvalidInput) {
			t.Fatalf("want InvalidInput, got %v", err)
		}
	})
}

func TestUsecase_OwnerUpdate(t *testing.T) {
	name := "Alicia"
	tests := []struct {
		name    string
		caller  access.Caller
		app     func() *domain.Application
		patch   domain.Patch
		wantErr error
		saved   bool
	}{
		{name: "owner edits pending", caller: alice, app: pendingApp, patch: domain.Patch{FirstName: &name}, saved: true},
		{name: "someone else", caller: bob, app: pendingApp, patch: domain.Patch{FirstName: &name}, wantErr: apperr.ErrForbidden},
		{
			name:   "already approved",
			caller: alice,
			app: func() *domain.Application {
				a := pendingApp()
				a.Status = domain.StatusApproved
				return a
			},
			patch:   domain.Patch{FirstName: &name},
			wantErr: apperr.ErrConflict,
		},
		{name: "empty patch", caller: alice, app: pendingApp, wantErr: apperr.ErrInvalidInput},
		{name: "missing", caller: alice, app: func() *domain.Application { return nil }, patch: domain.Patch{FirstName: &name}, wantErr: apperr.ErrNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			saved := false
			apps := &applicationmock.Repo{
				GetByApplicationIDForUpdateFn: func(context.Context, string) (*domain.Application, error) {
					if a := tc.app(); a != nil {
						return a, nil
					}
					return nil, domain.ErrNotFound
				},
				SaveDetailsFn: func(_ context.Context, id string, d domain.Details) error {
					saved = true
					if id != "app-1" || d.FirstName != name || !d.LoanAmount.Equal(decimal.NewFromInt(500)) {
						t.Fatalf("unexpected save: %s %+v", id, d)
					}
					return nil
				},
			}
			uc := newUC(apps, nil, uowmock.Passthrough(uow.Repos{Applications: apps}))

			dto, err := uc.OwnerUpdate(context.Background(), tc.caller, "app-1", tc.patch)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("want %v, got %v", tc.wantErr, err)
				}
			} else if err != nil || dto.FirstName != name {
				t.Fatalf("unexpected result: %+v, %v", dto, err)
			}
			if saved != tc.saved {
				t.Fatalf("saved = %v, want %v", saved, tc.saved)
			}
		})
	}
}

func TestUsecase_Decide(t *testing.T) {
	t.Run("approve stamps status", func(t *testing.T) {
		apps := &applicationmock.Repo{
			DecideFn: func(_ context.Context, id string, to domain.Status, at time.Time) (bool, error) {
				if to != domain.StatusApproved || !at.Equal(fixedNow) {
					t.Fatalf("unexpected decide args: %s %v", to, at)
				}
				return true, nil
			},
			GetByApplicationIDFn: func(context.Context, string) (*domain.Application, error) {
				a := pendingApp()
				a.Status = domain.StatusApproved
				a.ApprovedAt = &fixedNow
				return a, nil
			},
		}
		dto, err := newUC(apps, nil, nil).Approve(context.Background(), "app-1")
		if err != nil || dto.Status != "Approved" || dto.ApprovedAt == nil {
			t.Fatalf("unexpected result: %+v, %v", dto, err)
		}
	})

	t.Run("second decision conflicts", func(t *testing.T) {
		apps := &applicationmock.Repo{
			DecideFn: func(context.Context, string, domain.Status, time.Time) (bool, error) { return false, nil },
			GetByApplicationIDFn: func(context.Context, string) (*domain.Application, error) {
				a := pendingApp()
				a.Status = domain.StatusApproved
				return a, nil
			},
		}
		_, err := newUC(apps, nil, nil).Reject(context.Background(), "app-1")
		if !errors.Is(err, domain.ErrAlreadyDecided) || !errors.Is(err, apperr.ErrConflict) {
			t.Fatalf("want Conflict, got %v", err)
		}
	})

	t.Run("missing application", func(t *testing.T) {
		apps := &applicationmock.Repo{
			DecideFn: func(context.Context, string, domain.Status, time.Time) (bool, error) { return false, nil },
			GetByApplicationIDFn: func(context.Context, string) (*domain.Application, error) {
				return nil, domain.ErrNotFound
			},
		}
		_, err := newUC(apps, nil, nil).Approve(context.Background(), "ghost")
		if !errors.Is(err, apperr.ErrNotFound) {
			t.Fatalf("want NotFound, got %v", err)
		}
	})

	t.Run("concurrent approve and reject", func(t *testing.T) {
		var mu sync.Mutex
		status := domain.StatusPending
		apps := &applicationmock.Repo{
			DecideFn: func(_ context.Context, _ string, to domain.Status, _ time.Time) (bool, error) {
				mu.Lock()
				defer mu.Unlock()
				if status != domain.StatusPending {
					return false, nil
				}
				status = to
				return true, nil
			},
			GetByApplicationIDFn: func(context.Context, string) (*domain.Application, error) {
				mu.Lock()
				defer mu.Unlock()
				a := pendingApp()
				a.Status = status
				return a, nil
			},
		}
		uc := newUC(apps, nil, nil)

		var wg sync.WaitGroup
		errs := make([]error, 2)
		wg.Add(2)
		go func() { defer wg.Done(); _, errs[0] = uc.Approve(context.Background(), "app-1") }()
		go func() { defer wg.Done(); _, errs[1] = uc.Reject(context.Background(), "app-1") }()
		wg.Wait()

		wins := 0
		for _, err := range errs {
			switch {
			case err == nil:
				wins++
			case !errors.Is(err, apperr.ErrConflict):
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if wins != 1 {
			t.Fatalf("want exactly one winner, got %d", wins)
		}
	})
}

func TestUsecase_GetAndListMine(t *testing.T) {
	apps := &applicationmock.Repo{
		GetByApplicationIDFn: func(context.Context, string) (*domain.Application, error) { return pendingApp(), nil },
		ListByOwnerFn: func(_ context.Context, email string) ([]domain.Application, error) {
			if email != alice.Email {
				t.Fatalf("listed for %s", email)
			}
			return []domain.Application{*pendingApp()}, nil
		},
	}
	uc := newUC(apps, nil, nil)
	ctx := context.Background()

	if _, err := uc.Get(ctx, alice, "app-1"); err != nil {
		t.Fatalf("owner get: %v", err)
	}
	if _, err := uc.Get(ctx, manager, "app-1"); err != nil {
		t.Fatalf("manager get: %v", err)
	}
	if _, err := uc.Get(ctx, bob, "app-1"); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("want Forbidden for bob, got %v", err)
	}

	list, err := uc.ListMine(ctx, alice, "Alice@Example.com")
	if err != nil || len(list) != 1 {
		t.Fatalf("ListMine: %v %v", list, err)
	}
	if _, err := uc.ListMine(ctx, bob, alice.Email); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("want Forbidden listing someone else's, got %v", err)
	}
}

func TestUsecase_ListQueues(t *testing.T) {
	var asked []domain.Status
	apps := &applicationmock.Repo{
		ListByStatusFn: func(_ context.Context, s domain.Status) ([]domain.Application, error) {
			asked = append(asked, s)
			return nil, nil
		},
		ListFn: func(_ context.Context, p domain.Page) ([]domain.Application, error) {
			if p.Limit != 10 || p.Skip != 20 {
				t.Fatalf("unexpected page %+v", p)
			}
			return []domain.Application{*pendingApp()}, nil
		},
	}
	uc := newUC(apps, nil, nil)
	ctx := context.Background()

	pending, err := uc.ListPending(ctx)
	if err != nil || pending == nil || len(pending) != 0 {
		t.Fatalf("pending: %v %v", pending, err)
	}
	if _, err := uc.ListApproved(ctx); err != nil {
		t.Fatal(err)
	}
	if len(asked) != 2 || asked[0] != domain.StatusPending || asked[1] != domain.StatusApproved {
		t.Fatalf("statuses asked: %v", asked)
	}
	all, err := uc.ListAll(ctx, domain.Page{Limit: 10, Skip: 20})
	if err != nil || len(all) != 1 {
		t.Fatalf("all: %v %v", all, err)
	}
}

func TestUsecase_MarkPaid(t *testing.T) {
	in := PaymentInput{
		ApplicationID: "app-1",
		TransactionID: "pi_123",
		PayerEmail:    alice.Email,
		AmountMinor:   1000,
		Currency:      "USD",
	}
	paid := func(tx string) func() *domain.Application {
		return func() *domain.Application {
			a := pendingApp()
			a.FeeStatus = domain.FeePaid
			a.Payment = &domain.PaymentInfo{TransactionID: tx}
			return a
		}
	}

	tests := []struct {
		name    string
		app     func() *domain.Application
		wantErr error
		writes  int
	}{
		{name: "first payment", app: pendingApp, writes: 1},
		{name: "replay of same transaction", app: paid("pi_123")},
		{name: "different transaction", app: paid("pi_999"), wantErr: apperr.ErrConflict},
		{name: "unknown application", app: func() *domain.Application { return nil }, wantErr: apperr.ErrNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			writes := 0
			apps := &applicationmock.Repo{
				GetByApplicationIDForUpdateFn: func(context.Context, string) (*domain.Application, error) {
					if a := tc.app(); a != nil {
						return a, nil
					}
					return nil, domain.ErrNotFound
				},
				MarkPaidFn: func(_ context.Context, _ string, info domain.PaymentInfo) (bool, error) {
					writes++
					if info.Currency != "usd" || info.AmountMinor != 1000 || !info.PaidAt.Equal(fixedNow) {
						t.Fatalf("unexpected info: %+v", info)
					}
					return true, nil
				},
			}
			uc := newUC(apps, nil, uowmock.Passthrough(uow.Repos{Applications: apps}))

			dto, err := uc.MarkPaid(context.Background(), in)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("want %v, got %v", tc.wantErr, err)
				}
			} else if err != nil || dto.FeeStatus != "Paid" || dto.Payment == nil {
				t.Fatalf("unexpected result: %+v, %v", dto, err)
			}
			if writes != tc.writes {
				t.Fatalf("writes = %d, want %d", writes, tc.writes)
			}
		})
	}

	t.Run("missing transaction id", func(t *testing.T) {
		_, err := newUC(&applicationmock.Repo{}, nil, &uowmock.UoW{}).MarkPaid(context.Background(), PaymentInput{ApplicationID: "app-1"})
		if !errors.Is(err, apperr.ErrInvalidInput) {
			t.Fatalf("want InvalidInput, got %v", err)
		}
	})
}
