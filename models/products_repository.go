package models

import (
	"errors"

	"gorm.io/gorm"
)

type ProductsRepository struct {
	db *gorm.DB
}

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

type ProductFilters struct {
	CategoryCode  string
	SupplierID    string
	PriceLessThan *float64
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

func (r *ProductsRepository) GetFilteredProducts(offset, limit int, filters ProductFilters) ([]Product, int64, error) {
	var products []Product
	var total int64

	query := r.db.Model(&Product{}).
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Preload("Category").
		Preload("Measure")

	// Filter
	if filters.CategoryCode != "" {
		query = query.Where("categories.code = ?", filters.CategoryCode)
	}
	if filters.SupplierID != "" {
		query = query.Where("products.supplier_id = ?", filters.SupplierID)
	}
	if filters.PriceLessThan != nil {
		query = query.Where("products.price < ?", *filters.PriceLessThan)
	}

	// Count total after filtering
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Apply pagination
	if err := query.Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *ProductsRepository) GetByID(id string) (*Product, error) {
	var product Product
	if err := r.db.
		Preload("Variants").
		Preload("Category").
		Preload("Measure").
		Preload("Supplier").
		Where("id = ?", id).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err // Other DB error
	}
	return &product, nil
}

// Exists reports whether a product with the given identifier is persisted.
// The slug generator uses this as its collision probe.
func (r *ProductsRepository) Exists(id string) (bool, error) {
	var count int64
	if err := r.db.Model(&Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ProductsRepository) Create(product *Product) error {
	return r.db.Create(product).Error
}
