package gormstore

import (
	"gorm.io/gorm"

	"loanlink-backend/internal/domain/application"
	"loanlink-backend/internal/domain/offer"
	"loanlink-backend/internal/domain/user"
)

// AutoMigrate creates or updates the three collections' tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&user.User{}, &offer.Offer{}, &application.Application{})
}
