package models

import (
	"github.com/shopspring/decimal"
)

// Product is a catalog entry offered by a supplier.
//
// The primary key is a human-readable slug of the form
// "<supplier_id>::<slugified_name>", suffixed with "_<n>" when the plain form
// is already taken. It is assigned once, at creation, and never recomputed.
type Product struct {
	ID   string `gorm:"primaryKey;size:140"`
	Name string `gorm:"not null"`

	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Discount decimal.Decimal `gorm:"type:decimal(5,2)"`

	// Transport is a per-unit delivery surcharge, zero when none applies.
	Transport decimal.Decimal `gorm:"type:decimal(10,2)"`

	// MaxAvailable caps the bookable quantity per order. Zero means
	// availability is not tracked for this product; a zero return from the
	// availability calculator must not be read as remaining stock.
	MaxAvailable decimal.Decimal `gorm:"type:decimal(10,2)"`

	// PortionQuantity converts between raw measure units and sellable pieces.
	// Zero means the product is sold in raw measure units, nonzero means it
	// is sold in discrete portions of this size.
	PortionQuantity decimal.Decimal `gorm:"type:decimal(10,3)"`

	MinQuantity decimal.Decimal `gorm:"type:decimal(10,2)"`
	MaxQuantity decimal.Decimal `gorm:"type:decimal(10,2)"`
	Multiple    decimal.Decimal `gorm:"type:decimal(10,2)"`

	// Variable marks products whose final price may fluctuate, e.g. weighed
	// goods priced at delivery.
	Variable bool

	CategoryID uint      `gorm:"not null"`
	Category   Category  `gorm:"foreignKey:CategoryID"`
	MeasureID  uint
	Measure    Measure   `gorm:"foreignKey:MeasureID"`
	SupplierID string    `gorm:"size:100;not null;index"`
	Supplier   Supplier  `gorm:"foreignKey:SupplierID"`
	Variants   []Variant `gorm:"foreignKey:ProductID"`
}

func (p *Product) TableName() string {
	return "products"
}
