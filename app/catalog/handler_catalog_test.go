package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/grocoop/gasorders/models"
)

// --- Mock Repo ---

type MockProductRepo struct {
	SourceProducts []models.Product
	Err            error

	// Fields to capture call arguments
	lastCalledOffset  int
	lastCalledLimit   int
	lastCalledFilters models.ProductFilters
	lastCalledID      string
}

func (m *MockProductRepo) GetFilteredProducts(offset, limit int, filters models.ProductFilters) ([]models.Product, int64, error) {
	m.lastCalledOffset = offset
	m.lastCalledLimit = limit
	m.lastCalledFilters = filters

	if m.Err != nil {
		return nil, 0, m.Err
	}

	// Simulate filtering
	var filteredProducts []models.Product
	for _, p := range m.SourceProducts {
		match := true
		if filters.CategoryCode != "" && p.Category.Code != filters.CategoryCode {
			match = false
		}
		if filters.SupplierID != "" && p.SupplierID != filters.SupplierID {
			match = false
		}
		if filters.PriceLessThan != nil && p.Price.InexactFloat64() >= *filters.PriceLessThan {
			match = false
		}

		if match {
			filteredProducts = append(filteredProducts, p)
		}
	}

	total := int64(len(filteredProducts))

	// Simulate pagination
	start := offset
	if start > len(filteredProducts) {
		start = len(filteredProducts)
	}
	end := offset + limit
	if end > len(filteredProducts) {
		end = len(filteredProducts)
	}

	return filteredProducts[start:end], total, nil
}

func (m *MockProductRepo) GetByID(id string) (*models.Product, error) {
	m.lastCalledID = id

	if m.Err != nil {
		return nil, m.Err
	}

	for _, p := range m.SourceProducts {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, models.ErrProductNotFound
}

// --- Helpers ---

func newTestProduct(id, supplierID, categoryCode, categoryName string, price float64) models.Product {
	return models.Product{
		ID:         id,
		Name:       id,
		SupplierID: supplierID,
		Price:      decimal.NewFromFloat(price),
		Category: models.Category{
			Code: categoryCode,
			Name: categoryName,
		},
	}
}

// --- Tests ---

func TestHandleGet(t *testing.T) {
	allMockProducts := []models.Product{
		newTestProduct("farm::apples", "farm", "fruit", "Fruit", 2.50),
		newTestProduct("farm::cheese", "farm", "dairy", "Dairy", 12.00),
		newTestProduct("mill::flour", "mill", "pantry", "Pantry", 1.80),
		newTestProduct("mill::bread", "mill", "pantry", "Pantry", 4.20),
	}

	testCases := []struct {
		name               string
		url                string
		mockRepoSetup      func() *MockProductRepo
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
		checkRepoCalls     func(t *testing.T, repo *MockProductRepo)
	}{
		{
			name: "Success with default pagination",
			url:  "/catalog",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp Response
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, 4, resp.Total)
				assert.Len(t, resp.Products, 4)
				assert.Equal(t, "farm::apples", resp.Products[0].ID)
			},
			checkRepoCalls: func(t *testing.T, repo *MockProductRepo) {
				assert.Equal(t, 0, repo.lastCalledOffset, "Expected default offset 0")
				assert.Equal(t, 10, repo.lastCalledLimit, "Expected default limit 10")
				assert.Empty(t, repo.lastCalledFilters.CategoryCode)
				assert.Nil(t, repo.lastCalledFilters.PriceLessThan)
			},
		},
		{
			name: "Success with custom pagination",
			url:  "/catalog?offset=1&limit=2",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp Response
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, 4, resp.Total)
				assert.Len(t, resp.Products, 2)
				assert.Equal(t, "farm::cheese", resp.Products[0].ID)
			},
			checkRepoCalls: func(t *testing.T, repo *MockProductRepo) {
				assert.Equal(t, 1, repo.lastCalledOffset)
				assert.Equal(t, 2, repo.lastCalledLimit)
			},
		},
		{
			name: "Pagination with out-of-bounds values",
			url:  "/catalog?offset=-10&limit=200",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkRepoCalls: func(t *testing.T, repo *MockProductRepo) {
				assert.Equal(t, 0, repo.lastCalledOffset, "Offset should be clamped to 0")
				assert.Equal(t, 100, repo.lastCalledLimit, "Limit should be clamped to 100")
			},
		},
		{
			name: "Pagination with lower bound limit",
			url:  "/catalog?limit=0",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkRepoCalls: func(t *testing.T, repo *MockProductRepo) {
				assert.Equal(t, 1, repo.lastCalledLimit, "Limit should be clamped to 1")
			},
		},
		{
			name: "Category filter is forwarded",
			url:  "/catalog?category=pantry",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp Response
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, 2, resp.Total)
			},
			checkRepoCalls: func(t *testing.T, repo *MockProductRepo) {
				assert.Equal(t, "pantry", repo.lastCalledFilters.CategoryCode)
			},
		},
		{
			name: "Supplier and price filters are forwarded",
			url:  "/catalog?supplier=mill&price_lt=3",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp Response
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, 1, resp.Total)
				assert.Equal(t, "mill::flour", resp.Products[0].ID)
			},
			checkRepoCalls: func(t *testing.T, repo *MockProductRepo) {
				assert.Equal(t, "mill", repo.lastCalledFilters.SupplierID)
				if assert.NotNil(t, repo.lastCalledFilters.PriceLessThan) {
					assert.Equal(t, 3.0, *repo.lastCalledFilters.PriceLessThan)
				}
			},
		},
		{
			name: "Discount price included in listing",
			url:  "/catalog",
			mockRepoSetup: func() *MockProductRepo {
				discounted := newTestProduct("farm::plums", "farm", "fruit", "Fruit", 10.00)
				discounted.Discount = decimal.NewFromInt(20)
				return &MockProductRepo{SourceProducts: []models.Product{discounted}}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp Response
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Len(t, resp.Products, 1)
				assert.Equal(t, 10.00, resp.Products[0].Price)
				assert.Equal(t, 8.00, resp.Products[0].DiscountPrice)
			},
		},
		{
			name: "Repository error",
			url:  "/catalog",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{Err: errors.New("db connection lost")}
			},
			expectedStatusCode: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, "Failed to retrieve products", errResp["error"])
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mockRepo := tc.mockRepoSetup()
			handler := newTestHandler(mockRepo)
			req := httptest.NewRequest("GET", tc.url, nil)
			rec := httptest.NewRecorder()

			// Act
			handler.HandleGet(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)

			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}

			if tc.checkRepoCalls != nil {
				tc.checkRepoCalls(t, mockRepo)
			}
		})
	}
}
