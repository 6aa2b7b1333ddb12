package models

import (
	"github.com/shopspring/decimal"
)

// Booking is one member's reservation within an order.
type Booking struct {
	ID       uint            `gorm:"primaryKey"`
	OrderID  uint            `gorm:"not null;index"`
	Products []BookedProduct `gorm:"foreignKey:BookingID"`
}

func (b *Booking) TableName() string {
	return "bookings"
}

// BookedProduct is a booking line item: a product and the quantity reserved.
// Quantity counts portions when the product is portioned, raw measure units
// otherwise.
type BookedProduct struct {
	ID        uint            `gorm:"primaryKey"`
	BookingID uint            `gorm:"not null;index"`
	ProductID string          `gorm:"size:140;not null;index"`
	Quantity  decimal.Decimal `gorm:"type:decimal(10,3);not null"`
}

func (bp *BookedProduct) TableName() string {
	return "booked_products"
}
