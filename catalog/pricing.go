// Package catalog implements the pricing, availability and presentation rules
// for products booked into orders.
package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/grocoop/gasorders/models"
)

var hundred = decimal.NewFromInt(100)

// ApplyPercentage discounts base by percent. A zero percent leaves the base
// unchanged. Percentages outside [0, 100] are a caller error.
func ApplyPercentage(base, percent decimal.Decimal) decimal.Decimal {
	if percent.IsZero() {
		return base
	}
	return base.Sub(base.Mul(percent).Div(hundred))
}

// DiscountPrice is the product price with only its own discount applied.
// It ignores any order context; see ContextualPrice for that.
func DiscountPrice(p *models.Product) decimal.Decimal {
	return ApplyPercentage(p.Price, p.Discount)
}

// ContextualPrice resolves the price of a product within an order.
//
// The product's own discount applies only when the order carries the product
// with its discount enabled on the pivot. The order discount applies on top
// in every case. With rectify, portioned products get the total price per
// portion rather than per raw measure unit; callers that handle portion
// normalization themselves pass rectify=false.
//
// The caller's product is never written to: order context is read through
// Order.PivotFor, which hands out pivot rows by value.
func ContextualPrice(p *models.Product, order *models.Order, rectify bool) decimal.Decimal {
	price := p.Price
	if pivot, ok := order.PivotFor(p.ID); ok && pivot.DiscountEnabled {
		price = ApplyPercentage(price, p.Discount)
	}

	price = ApplyPercentage(price, order.Discount)

	if rectify && !p.PortionQuantity.IsZero() {
		price = price.Mul(p.PortionQuantity)
	}

	return price
}
