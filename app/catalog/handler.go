package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/grocoop/gasorders/catalog"
	"github.com/grocoop/gasorders/models"
)

type Response struct {
	Total    int       `json:"total"`
	Products []Product `json:"products"`
}

type Category struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	DiscountPrice float64  `json:"discount_price"`
	Measure       string   `json:"measure"`
	Category      Category `json:"category"`
}

type Variant struct {
	Name  string  `json:"name"`
	SKU   string  `json:"sku"`
	Price float64 `json:"price"`
}

type ProductProvider interface {
	GetFilteredProducts(offset, limit int, filters models.ProductFilters) ([]models.Product, int64, error)
	GetByID(id string) (*models.Product, error)
}

type OrderProvider interface {
	GetByID(id uint) (*models.Order, error)
}

type AvailabilityCalculator interface {
	StillAvailable(p *models.Product, order *models.Order) (decimal.Decimal, error)
}

type ProductCreator interface {
	CreateProduct(product *models.Product) error
}

type CatalogHandler struct {
	repo         ProductProvider
	orders       OrderProvider
	availability AvailabilityCalculator
	creator      ProductCreator
	formatter    *catalog.Formatter
}

func NewCatalogHandler(
	repo ProductProvider,
	orders OrderProvider,
	availability AvailabilityCalculator,
	creator ProductCreator,
	formatter *catalog.Formatter,
) *CatalogHandler {
	return &CatalogHandler{
		repo:         repo,
		orders:       orders,
		availability: availability,
		creator:      creator,
		formatter:    formatter,
	}
}

func jsonError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	// Parse pagination query params
	offset := 0
	limit := 10

	if oStr := r.URL.Query().Get("offset"); oStr != "" {
		if o, err := strconv.Atoi(oStr); err == nil && o >= 0 {
			offset = o
		}
	}

	if lStr := r.URL.Query().Get("limit"); lStr != "" {
		if l, err := strconv.Atoi(lStr); err == nil {
			if l < 1 {
				limit = 1
			} else if l > 100 {
				limit = 100
			} else {
				limit = l
			}
		}
	}

	// Parse filters
	categoryCode := r.URL.Query().Get("category")
	supplierID := r.URL.Query().Get("supplier")

	var priceFilter *float64
	if priceStr := r.URL.Query().Get("price_lt"); priceStr != "" {
		if val, err := strconv.ParseFloat(priceStr, 64); err == nil {
			priceFilter = &val
		}
	}

	filters := models.ProductFilters{
		CategoryCode:  categoryCode,
		SupplierID:    supplierID,
		PriceLessThan: priceFilter,
	}

	res, total, err := h.repo.GetFilteredProducts(offset, limit, filters)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "Failed to retrieve products")
		return
	}

	products := make([]Product, len(res))
	for i, p := range res {
		products[i] = Product{
			ID:            p.ID,
			Name:          p.Name,
			Price:         p.Price.InexactFloat64(),
			DiscountPrice: catalog.DiscountPrice(&p).InexactFloat64(),
			Measure:       p.Measure.Name,
			Category: Category{
				Code: p.Category.Code,
				Name: p.Category.Name,
			},
		}
	}

	w.Header().Set("Content-Type", "application/json")
	response := Response{
		Total:    int(total),
		Products: products,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		jsonError(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	product, err := h.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			jsonError(w, http.StatusNotFound, "Product not found")
			return
		}
		jsonError(w, http.StatusInternalServerError, "Failed to retrieve product")
		return
	}

	// Map response
	variants := make([]Variant, len(product.Variants))
	for i, v := range product.Variants {
		price := v.Price
		if price.IsZero() {
			price = product.Price
		}
		variants[i] = Variant{
			Name:  v.Name,
			SKU:   v.SKU,
			Price: price.InexactFloat64(),
		}
	}

	response := struct {
		ID            string    `json:"id"`
		Name          string    `json:"name"`
		Price         float64   `json:"price"`
		DiscountPrice float64   `json:"discount_price"`
		Measure       string    `json:"measure"`
		Supplier      string    `json:"supplier"`
		Category      Category  `json:"category"`
		Variants      []Variant `json:"variants"`
	}{
		ID:            product.ID,
		Name:          product.Name,
		Price:         product.Price.InexactFloat64(),
		DiscountPrice: catalog.DiscountPrice(product).InexactFloat64(),
		Measure:       product.Measure.Name,
		Supplier:      product.Supplier.Name,
		Category: Category{
			Code: product.Category.Code,
			Name: product.Category.Name,
		},
		Variants: variants,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		jsonError(w, http.StatusInternalServerError, err.Error())
	}
}

// HandleGetOrderProduct resolves a product in the context of an order: the
// contextual price, the remaining bookable quantity and the printable strings
// a booking UI shows.
func (h *CatalogHandler) HandleGetOrderProduct(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseUint(r.PathValue("order"), 10, 32)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	product, err := h.repo.GetByID(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			jsonError(w, http.StatusNotFound, "Product not found")
			return
		}
		jsonError(w, http.StatusInternalServerError, "Failed to retrieve product")
		return
	}

	order, err := h.orders.GetByID(uint(orderID))
	if err != nil {
		if errors.Is(err, models.ErrOrderNotFound) {
			jsonError(w, http.StatusNotFound, "Order not found")
			return
		}
		jsonError(w, http.StatusInternalServerError, "Failed to retrieve order")
		return
	}

	available, err := h.availability.StillAvailable(product, order)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "Failed to compute availability")
		return
	}

	response := struct {
		ID               string  `json:"id"`
		Name             string  `json:"name"`
		ContextualPrice  float64 `json:"contextual_price"`
		UnitPrice        float64 `json:"unit_price"`
		DiscountPrice    float64 `json:"discount_price"`
		StillAvailable   float64 `json:"still_available"`
		PrintablePrice   string  `json:"printable_price"`
		PrintableMeasure string  `json:"printable_measure"`
		PrintableDetails string  `json:"printable_details"`
	}{
		ID:               product.ID,
		Name:             product.Name,
		ContextualPrice:  catalog.ContextualPrice(product, order, true).InexactFloat64(),
		UnitPrice:        catalog.ContextualPrice(product, order, false).InexactFloat64(),
		DiscountPrice:    catalog.DiscountPrice(product).InexactFloat64(),
		StillAvailable:   available.InexactFloat64(),
		PrintablePrice:   h.formatter.PrintablePrice(product, order),
		PrintableMeasure: h.formatter.PrintableMeasure(product, false),
		PrintableDetails: h.formatter.PrintableDetails(product, available),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		jsonError(w, http.StatusInternalServerError, err.Error())
	}
}

// HandleCreate persists a new product. The identifier is derived from the
// supplier and name by the slug generator; clients never choose it.
func (h *CatalogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name            string  `json:"name"`
		SupplierID      string  `json:"supplier_id"`
		CategoryID      uint    `json:"category_id"`
		MeasureID       uint    `json:"measure_id"`
		Price           float64 `json:"price"`
		Discount        float64 `json:"discount"`
		Transport       float64 `json:"transport"`
		MaxAvailable    float64 `json:"max_available"`
		PortionQuantity float64 `json:"portion_quantity"`
		MinQuantity     float64 `json:"min_quantity"`
		MaxQuantity     float64 `json:"max_quantity"`
		Multiple        float64 `json:"multiple"`
		Variable        bool    `json:"variable"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if input.Name == "" || input.SupplierID == "" {
		jsonError(w, http.StatusBadRequest, "Missing name or supplier_id")
		return
	}
	if input.Price < 0 {
		jsonError(w, http.StatusBadRequest, "Price must not be negative")
		return
	}

	product := &models.Product{
		Name:            input.Name,
		SupplierID:      input.SupplierID,
		CategoryID:      input.CategoryID,
		MeasureID:       input.MeasureID,
		Price:           decimal.NewFromFloat(input.Price),
		Discount:        decimal.NewFromFloat(input.Discount),
		Transport:       decimal.NewFromFloat(input.Transport),
		MaxAvailable:    decimal.NewFromFloat(input.MaxAvailable),
		PortionQuantity: decimal.NewFromFloat(input.PortionQuantity),
		MinQuantity:     decimal.NewFromFloat(input.MinQuantity),
		MaxQuantity:     decimal.NewFromFloat(input.MaxQuantity),
		Multiple:        decimal.NewFromFloat(input.Multiple),
		Variable:        input.Variable,
	}

	if err := h.creator.CreateProduct(product); err != nil {
		if errors.Is(err, catalog.ErrSlugExhausted) {
			jsonError(w, http.StatusConflict, "Could not allocate a product identifier")
			return
		}
		jsonError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]string{"id": product.ID})
}
