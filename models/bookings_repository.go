package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BookingsRepository struct {
	db *gorm.DB
}

func NewBookingsRepository(db *gorm.DB) *BookingsRepository {
	return &BookingsRepository{
		db: db,
	}
}

// BookedQuantity sums the quantity of every line item for the product across
// the bookings of the given order. The sum is in line-item units: portions
// for portioned products, raw measure units otherwise.
func (r *BookingsRepository) BookedQuantity(productID string, orderID uint) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.Model(&BookedProduct{}).
		Select("SUM(booked_products.quantity)").
		Joins("JOIN bookings ON bookings.id = booked_products.booking_id").
		Where("booked_products.product_id = ?", productID).
		Where("bookings.order_id = ?", orderID).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		// No line items for this product in the order.
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// BookingsInOrder returns the bookings of the given order that contain the
// product, line items included.
func (r *BookingsRepository) BookingsInOrder(productID string, orderID uint) ([]Booking, error) {
	var bookings []Booking
	err := r.db.
		Joins("JOIN booked_products ON booked_products.booking_id = bookings.id").
		Where("bookings.order_id = ?", orderID).
		Where("booked_products.product_id = ?", productID).
		Preload("Products").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
