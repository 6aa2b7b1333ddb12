package models

import (
	"errors"

	"gorm.io/gorm"
)

type OrdersRepository struct {
	db *gorm.DB
}

// ErrOrderNotFound is returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		db: db,
	}
}

// GetByID loads an order with its product pivot rows, so price resolution can
// consult the per-order discount flags without further queries.
func (r *OrdersRepository) GetByID(id uint) (*Order, error) {
	var order Order
	if err := r.db.
		Preload("Products").
		First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}
