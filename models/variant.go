package models

import (
	"github.com/shopspring/decimal"
)

// Variant is a concrete variation of a product (e.g. a size or packaging).
// A zero price means the variant inherits the product price.
type Variant struct {
	ID        uint            `gorm:"primaryKey"`
	ProductID string          `gorm:"size:140;not null;index"`
	Name      string          `gorm:"not null"`
	SKU       string          `gorm:"uniqueIndex"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2)"`
}

func (v *Variant) TableName() string {
	return "variants"
}
