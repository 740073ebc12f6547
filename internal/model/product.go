package model

import (
	"fmt"
	"strings"
)

// DefaultCategory is assigned to products created without a category.
const DefaultCategory = "General"

type Product struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Name     string  `gorm:"not null" json:"name" validate:"required,notblank"`
	Price    float64 `gorm:"not null" json:"price" validate:"gte=0"`
	Quantity int     `gorm:"not null" json:"quantity" validate:"gte=0"`
	Category string  `gorm:"default:General" json:"category"`
}

// NormalizeCategory trims c and falls back to DefaultCategory when nothing is left.
func NormalizeCategory(c string) string {
	c = strings.TrimSpace(c)
	if c == "" {
		return DefaultCategory
	}
	return c
}

// MissingProductName is shown in history rows whose product has been removed.
func MissingProductName(id uint) string {
	return fmt.Sprintf("(deleted product #%d)", id)
}
