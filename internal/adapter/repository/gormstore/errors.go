package gormstore

import (
	"errors"

	"gorm.io/gorm"

	"loanlink-backend/internal/domain/apperr"
)

// translate maps gorm failures onto domain errors. notFound is returned
// for gorm.ErrRecordNotFound; everything else becomes a storage error.
func translate(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	default:
		return apperr.Storage(err)
	}
}

func pageBounds(limit, skip int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}
	return limit, skip
}
