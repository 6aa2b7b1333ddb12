package catalog

import (
	"errors"
	"fmt"

	"github.com/gosimple/slug"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/grocoop/gasorders/models"
)

// ProductStore is the slice of the products repository needed to assign
// identifiers and persist new products.
type ProductStore interface {
	Exists(id string) (bool, error)
	Create(product *models.Product) error
}

// ErrSlugExhausted is returned when a fresh identifier could not be persisted
// within the retry budget.
var ErrSlugExhausted = errors.New("could not allocate a unique product identifier")

// createRetries bounds the unique-violation retry loop in CreateProduct.
const createRetries = 3

// SlugGenerator derives product identifiers of the form
// "<supplier_id>::<slugified name>", appending "_1", "_2", ... while the
// candidate is already taken.
type SlugGenerator struct {
	products ProductStore
}

func NewSlugGenerator(products ProductStore) *SlugGenerator {
	return &SlugGenerator{
		products: products,
	}
}

// GetSlugID returns the first identifier not currently persisted for the
// supplier and product name. The check is a best-effort probe: two concurrent
// creations can still race to the same identifier, and the unique constraint
// on products.id is the backstop (see CreateProduct).
func (g *SlugGenerator) GetSlugID(supplierID, name string) (string, error) {
	base := fmt.Sprintf("%s::%s", supplierID, slug.Make(name))

	candidate := base
	for index := 1; ; index++ {
		taken, err := g.products.Exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s_%d", base, index)
	}
}

// CreateProduct assigns the product its identifier and persists it. This runs
// once per product, at creation; identifiers are never recomputed afterwards.
//
// When two creations race to the same identifier, the loser gets a unique
// violation from the store and retries with a freshly probed candidate, a
// bounded number of times.
func (g *SlugGenerator) CreateProduct(product *models.Product) error {
	for attempt := 0; attempt < createRetries; attempt++ {
		id, err := g.GetSlugID(product.SupplierID, product.Name)
		if err != nil {
			return err
		}
		product.ID = id

		err = g.products.Create(product)
		if err == nil {
			return nil
		}
		if !isUniqueViolation(err) {
			return err
		}
	}
	return ErrSlugExhausted
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return false
}
