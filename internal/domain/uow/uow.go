package uow

import (
	"context"

	"loanlink-backend/internal/domain/application"
	"loanlink-backend/internal/domain/user"
)

// Repos are bound to the surrounding transaction.
type Repos struct {
	Applications application.Repository
	Users        user.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// lock the application row first, then pass it in; application.ErrNotFound if absent
	WithinApplicationTx(ctx context.Context, applicationID string, fn func(r Repos, a *application.Application) error) error
}
