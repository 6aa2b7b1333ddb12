package models

import (
	"github.com/shopspring/decimal"
)

// Order groups the products a supplier opens for booking in a given period.
// Discount is an order-wide percentage, applied on top of any product-level
// discount when prices are resolved in the context of the order.
type Order struct {
	ID       uint            `gorm:"primaryKey"`
	Discount decimal.Decimal `gorm:"type:decimal(5,2)"`
	Products []OrderProduct  `gorm:"foreignKey:OrderID"`
}

func (o *Order) TableName() string {
	return "orders"
}

// OrderProduct is the pivot row attaching a product to an order.
// DiscountEnabled tells whether the product's own discount applies within
// this order.
type OrderProduct struct {
	OrderID         uint   `gorm:"primaryKey;autoIncrement:false"`
	ProductID       string `gorm:"primaryKey;size:140"`
	DiscountEnabled bool
}

func (op *OrderProduct) TableName() string {
	return "order_products"
}

// PivotFor returns the pivot row for the given product, by value. Callers get
// their own copy: looking up order context never writes through to shared
// product state. The boolean reports whether the product is in the order at
// all.
func (o *Order) PivotFor(productID string) (OrderProduct, bool) {
	for _, op := range o.Products {
		if op.ProductID == productID {
			return op, true
		}
	}
	return OrderProduct{}, false
}
