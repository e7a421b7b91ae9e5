package controllers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/rmoraes/phone-repair-api/config"
	"github.com/rmoraes/phone-repair-api/models"
	"github.com/stretchr/testify/assert"
)

func TestCreateStockItem(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	router := setupTestRouter()
	router.POST("/stock", CreateStockItem)

	db.Create(&models.StockItem{Name: "USB-C Cable", Quantity: 10, Price: 9.99, Category: models.StockCategoryCable, SKU: "CAB-1234"})

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		expectedStatus int
		expectedError  string
		checkResponse  func(t *testing.T, response map[string]interface{})
	}{
		{
			name: "Successfully create item with generated SKU",
			requestBody: map[string]interface{}{
				"name":     "Clear Phone Case",
				"quantity": 5,
				"price":    14.99,
				"category": models.StockCategoryPhoneCase,
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				data := response["data"].(map[string]interface{})
				sku := data["sku"].(string)
				assert.True(t, strings.HasPrefix(sku, "PHO-"), "sku %q should carry the category prefix", sku)
				assert.Len(t, sku, 8)
			},
		},
		{
			name: "Successfully create item with supplied SKU",
			requestBody: map[string]interface{}{
				"name":  "Wall Charger",
				"price": 19.99,
				"sku":   "CHA-0001",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				data := response["data"].(map[string]interface{})
				assert.Equal(t, "CHA-0001", data["sku"])
				assert.Equal(t, float64(0), data["quantity"])
				assert.Equal(t, models.StockCategoryOther, data["category"])
			},
		},
		{
			name: "Fail with duplicate SKU",
			requestBody: map[string]interface{}{
				"name":  "Another Cable",
				"price": 5,
				"sku":   "CAB-1234",
			},
			expectedStatus: http.StatusConflict,
			expectedError:  "SKU_EXISTS",
		},
		{
			name: "Fail with missing price",
			requestBody: map[string]interface{}{
				"name": "Mystery Item",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name: "Fail with negative quantity",
			requestBody: map[string]interface{}{
				"name":     "Mystery Item",
				"price":    5,
				"quantity": -1,
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name: "Fail with unknown category",
			requestBody: map[string]interface{}{
				"name":     "Mystery Item",
				"price":    5,
				"category": "snacks",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, response := performJSON(t, router, http.MethodPost, "/stock", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, errorCode(t, response))
			}
			if tt.checkResponse != nil {
				tt.checkResponse(t, response)
			}
		})
	}
}

func TestListStockItems(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	router := setupTestRouter()
	router.GET("/stock", ListStockItems)

	db.Create(&models.StockItem{Name: "Clear Phone Case", Quantity: 5, Price: 14.99, Category: models.StockCategoryPhoneCase, SKU: "PHO-1000"})
	db.Create(&models.StockItem{Name: "USB-C Cable", Quantity: 0, Price: 9.99, Category: models.StockCategoryCable, SKU: "CAB-1000"})
	db.Create(&models.StockItem{Name: "Wall Charger", Quantity: 3, Price: 24.99, Category: models.StockCategoryCharger, SKU: "CHA-1000"})

	t.Run("List all ordered by name", func(t *testing.T) {
		w, response := performJSON(t, router, http.MethodGet, "/stock", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		data := response["data"].([]interface{})
		assert.Len(t, data, 3)
		first := data[0].(map[string]interface{})
		assert.Equal(t, "Clear Phone Case", first["name"])
	})

	t.Run("Filter by category", func(t *testing.T) {
		_, response := performJSON(t, router, http.MethodGet, "/stock?category=cable", nil)

		assert.Len(t, response["data"].([]interface{}), 1)
	})

	t.Run("Filter by price range", func(t *testing.T) {
		_, response := performJSON(t, router, http.MethodGet, "/stock?minPrice=10&maxPrice=20", nil)

		data := response["data"].([]interface{})
		assert.Len(t, data, 1)
		first := data[0].(map[string]interface{})
		assert.Equal(t, "Clear Phone Case", first["name"])
	})

	t.Run("inStock=true excludes items with zero quantity", func(t *testing.T) {
		_, response := performJSON(t, router, http.MethodGet, "/stock?inStock=true", nil)

		assert.Len(t, response["data"].([]interface{}), 2)
	})

	t.Run("inStock=false returns only depleted items", func(t *testing.T) {
		_, response := performJSON(t, router, http.MethodGet, "/stock?inStock=false", nil)

		data := response["data"].([]interface{})
		assert.Len(t, data, 1)
		first := data[0].(map[string]interface{})
		assert.Equal(t, "USB-C Cable", first["name"])
	})

	t.Run("Search matches SKU", func(t *testing.T) {
		_, response := performJSON(t, router, http.MethodGet, "/stock?search=cha-1000", nil)

		data := response["data"].([]interface{})
		assert.Len(t, data, 1)
		first := data[0].(map[string]interface{})
		assert.Equal(t, "Wall Charger", first["name"])
	})
}

func TestAdjustStockQuantity(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	router := setupTestRouter()
	router.PATCH("/stock/:id/quantity", AdjustStockQuantity)

	db.Create(&models.StockItem{Name: "Clear Phone Case", Quantity: 3, Price: 14.99, Category: models.StockCategoryPhoneCase, SKU: "PHO-1000"})

	t.Run("Successfully add stock", func(t *testing.T) {
		w, response := performJSON(t, router, http.MethodPatch, "/stock/1/quantity", map[string]interface{}{
			"quantity":  2,
			"operation": "add",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		data := response["data"].(map[string]interface{})
		assert.Equal(t, float64(5), data["quantity"])
	})

	t.Run("Successfully remove stock", func(t *testing.T) {
		w, response := performJSON(t, router, http.MethodPatch, "/stock/1/quantity", map[string]interface{}{
			"quantity":  2,
			"operation": "remove",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		data := response["data"].(map[string]interface{})
		assert.Equal(t, float64(3), data["quantity"])
	})

	t.Run("Removing more than available fails and leaves quantity unchanged", func(t *testing.T) {
		w, response := performJSON(t, router, http.MethodPatch, "/stock/1/quantity", map[string]interface{}{
			"quantity":  5,
			"operation": "remove",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INSUFFICIENT_STOCK", errorCode(t, response))

		var item models.StockItem
		db.First(&item, 1)
		assert.Equal(t, 3, item.Quantity)
	})

	t.Run("Fail with zero quantity", func(t *testing.T) {
		w, response := performJSON(t, router, http.MethodPatch, "/stock/1/quantity", map[string]interface{}{
			"quantity":  0,
			"operation": "add",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, response))
	})

	t.Run("Fail with unknown operation", func(t *testing.T) {
		w, response := performJSON(t, router, http.MethodPatch, "/stock/1/quantity", map[string]interface{}{
			"quantity":  1,
			"operation": "multiply",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, response))
	})

	t.Run("Fail for unknown item", func(t *testing.T) {
		w, response := performJSON(t, router, http.MethodPatch, "/stock/999/quantity", map[string]interface{}{
			"quantity":  1,
			"operation": "add",
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", errorCode(t, response))
	})
}

func TestDeleteStockItem(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	router := setupTestRouter()
	router.DELETE("/stock/:id", DeleteStockItem)

	db.Create(&models.StockItem{Name: "Clear Phone Case", Quantity: 3, Price: 14.99, Category: models.StockCategoryPhoneCase, SKU: "PHO-1000"})

	w, response := performJSON(t, router, http.MethodDelete, "/stock/1", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, response["success"].(bool))

	var count int64
	db.Model(&models.StockItem{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
