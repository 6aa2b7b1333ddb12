package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/grocoop/gasorders/models"
)

// BookingSource is the slice of the bookings repository the availability
// calculator needs.
type BookingSource interface {
	BookedQuantity(productID string, orderID uint) (decimal.Decimal, error)
	BookingsInOrder(productID string, orderID uint) ([]models.Booking, error)
}

// Availability computes remaining bookable quantities against the datastore.
type Availability struct {
	bookings BookingSource
}

func NewAvailability(bookings BookingSource) *Availability {
	return &Availability{
		bookings: bookings,
	}
}

// StillAvailable returns how much of the product can still be booked within
// the order: the configured cap minus what the order's bookings already hold,
// with portion counts normalized into raw measure units.
//
// Products without a cap (MaxAvailable zero) always yield zero. The result is
// not clamped: a negative value means the order is overbooked, and callers
// are expected to surface that rather than have it hidden here.
func (a *Availability) StillAvailable(p *models.Product, order *models.Order) (decimal.Decimal, error) {
	if p.MaxAvailable.IsZero() {
		return decimal.Zero, nil
	}

	quantity, err := a.bookings.BookedQuantity(p.ID, order.ID)
	if err != nil {
		return decimal.Zero, err
	}

	if !p.PortionQuantity.IsZero() {
		quantity = quantity.Mul(p.PortionQuantity)
	}

	return p.MaxAvailable.Sub(quantity), nil
}

// BookingsInOrder returns the order's bookings that contain the product.
func (a *Availability) BookingsInOrder(p *models.Product, order *models.Order) ([]models.Booking, error) {
	return a.bookings.BookingsInOrder(p.ID, order.ID)
}
