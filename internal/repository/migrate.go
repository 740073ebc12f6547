package repository

import (
	"go-pos-backend/internal/model"

	"gorm.io/gorm"
)

// Migrate creates or updates every table. Used as the store's onOpen hook so
// it also runs against a freshly restored file.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Product{},
		&model.SaleRecord{},
		&model.StockEntry{},
		&model.User{},
		&model.ConfigEntry{},
	)
}
