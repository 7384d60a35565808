package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Sididaher/achat-app/models"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock ---

type mockProductStore struct {
	products []models.Product

	created   *models.Product
	updated   *models.Product
	deletedID uint
	err       error
}

func (m *mockProductStore) GetAll() ([]models.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.products, nil
}

func (m *mockProductStore) GetByID(id uint) (*models.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.products {
		if m.products[i].ID == id {
			return &m.products[i], nil
		}
	}
	return nil, models.ErrProductNotFound
}

func (m *mockProductStore) Create(product *models.Product) error {
	if m.err != nil {
		return m.err
	}
	product.ID = 1
	m.created = product
	return nil
}

func (m *mockProductStore) Update(product *models.Product) error {
	if m.err != nil {
		return m.err
	}
	m.updated = product
	return nil
}

func (m *mockProductStore) Delete(id uint) error {
	if m.err != nil {
		return m.err
	}
	m.deletedID = id
	return nil
}

func newProductApp(store ProductStore) *fiber.App {
	app := fiber.New()
	handler := NewProductHandler(store, nil)
	app.Get("/products", handler.List)
	app.Get("/products/:id", handler.Get)
	app.Post("/products", handler.Create)
	app.Put("/products/:id", handler.Update)
	app.Delete("/products/:id", handler.Delete)
	return app
}

// --- Tests ---

func TestListProducts(t *testing.T) {
	categoryID := uint(3)
	store := &mockProductStore{
		products: []models.Product{
			{
				ID:            1,
				Name:          "Widget",
				PurchasePrice: decimal.NewFromInt(10),
				Stock:         5,
				CategoryID:    &categoryID,
				Category:      &models.Category{ID: 3, Name: "Outillage"},
				Supplier:      &models.Supplier{ID: 1, Name: "Acme"},
			},
			{
				ID:            2,
				Name:          "Câble HDMI",
				PurchasePrice: decimal.RequireFromString("45.50"),
				Stock:         30,
				// category and supplier deleted since
			},
		},
	}
	app := newProductApp(store)

	t.Run("Full list renders orphans as dash", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/products", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var list []ProductResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
		require.Len(t, list, 2)

		assert.Equal(t, "Outillage", list[0].CategoryName)
		assert.Equal(t, "Acme", list[0].SupplierName)
		assert.Equal(t, "10.00 DH", list[0].PriceDisplay)
		assert.Equal(t, "-", list[0].Description)

		assert.Equal(t, "-", list[1].CategoryName)
		assert.Equal(t, "-", list[1].SupplierName)
		assert.Equal(t, "45.50 DH", list[1].PriceDisplay)
	})

	t.Run("Filter on name", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/products?q=hdmi", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)

		var list []ProductResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
		require.Len(t, list, 1)
		assert.Equal(t, "Câble HDMI", list[0].Name)
	})

	t.Run("Filter with no match returns empty list", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/products?q=nonexistent", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)

		var list []ProductResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
		assert.Len(t, list, 0)
	})
}

func TestCreateProduct(t *testing.T) {
	testCases := []struct {
		name               string
		body               map[string]any
		expectedStatusCode int
		expectedError      string
	}{
		{
			name:               "Valid product",
			body:               map[string]any{"name": "Widget", "purchase_price": 10.00, "stock": 5},
			expectedStatusCode: http.StatusCreated,
		},
		{
			name:               "Zero price is allowed",
			body:               map[string]any{"name": "Sample", "purchase_price": 0},
			expectedStatusCode: http.StatusCreated,
		},
		{
			name:               "Missing name",
			body:               map[string]any{"purchase_price": 10.00},
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "name and purchase_price are required",
		},
		{
			name:               "Missing price",
			body:               map[string]any{"name": "Widget"},
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "name and purchase_price are required",
		},
		{
			name:               "Negative price",
			body:               map[string]any{"name": "Widget", "purchase_price": -1},
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "purchase_price must not be negative",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := &mockProductStore{}
			app := newProductApp(store)

			resp := postJSON(t, app, "/products", tc.body)
			assert.Equal(t, tc.expectedStatusCode, resp.StatusCode)

			if tc.expectedError != "" {
				var errResp map[string]string
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
				assert.Equal(t, tc.expectedError, errResp["error"])
			}
		})
	}
}

func TestGetProduct(t *testing.T) {
	store := &mockProductStore{
		products: []models.Product{
			{ID: 1, Name: "Widget", PurchasePrice: decimal.NewFromInt(10), Stock: 5},
		},
	}
	app := newProductApp(store)

	t.Run("Found", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/products/1", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var product ProductResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&product))
		assert.Equal(t, "Widget", product.Name)
		assert.Equal(t, 5, product.Stock)
	})

	t.Run("Not found", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/products/999", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Invalid id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/products/abc", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestUpdateProduct(t *testing.T) {
	store := &mockProductStore{
		products: []models.Product{
			{ID: 1, Name: "Widget", PurchasePrice: decimal.NewFromInt(10), Stock: 5},
		},
	}
	app := newProductApp(store)

	payload, err := json.Marshal(map[string]any{
		"name":           "Widget v2",
		"purchase_price": 12.50,
		"stock":          8,
	})
	require.NoError(t, err)

	req := httptest.NewRequest("PUT", "/products/1", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, store.updated)
	assert.Equal(t, "Widget v2", store.updated.Name)
	assert.Equal(t, 8, store.updated.Stock)
	assert.True(t, store.updated.PurchasePrice.Equal(decimal.RequireFromString("12.5")))
}

func TestDeleteProduct(t *testing.T) {
	store := &mockProductStore{}
	app := newProductApp(store)

	req := httptest.NewRequest("DELETE", "/products/4", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, uint(4), store.deletedID)
}
