package controllers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rmoraes/phone-repair-api/config"
	"github.com/rmoraes/phone-repair-api/models"
	"github.com/rmoraes/phone-repair-api/services"
	"github.com/stretchr/testify/assert"
)

func TestCreateCustomCase(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	router := setupTestRouter()
	router.POST("/custom-cases", CreateCustomCase)

	t.Run("Successfully create case with backing order", func(t *testing.T) {
		w, response := performJSON(t, router, http.MethodPost, "/custom-cases", map[string]interface{}{
			"customer_name":      "Ana Costa",
			"phone":              "555-0201",
			"device_model":       "iPhone 13",
			"design_description": "Galaxy print with initials",
			"price":              45.0,
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		data := response["data"].(map[string]interface{})
		assert.Equal(t, models.CaseStatusDesignPending, data["status"])
		assert.Equal(t, float64(45), data["price"])

		// The backing order comes back preloaded and mirrors the case
		order := data["order"].(map[string]interface{})
		assert.Equal(t, "Custom Case Design", order["issue"])
		assert.Equal(t, "custom_case", order["service_type"])
		assert.Equal(t, float64(45), order["estimated_price"])
		assert.Equal(t, models.OrderStatusPending, order["status"])
		assert.Equal(t, "Ana Costa", order["customer_name"])

		var orderCount int64
		db.Model(&models.Order{}).Count(&orderCount)
		assert.Equal(t, int64(1), orderCount)
	})

	t.Run("Price defaults to zero", func(t *testing.T) {
		w, response := performJSON(t, router, http.MethodPost, "/custom-cases", map[string]interface{}{
			"customer_name":      "Bruno Lima",
			"phone":              "555-0202",
			"device_model":       "Galaxy S22",
			"design_description": "Matte black",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		data := response["data"].(map[string]interface{})
		assert.Equal(t, float64(0), data["price"])
	})

	t.Run("Fail with negative price", func(t *testing.T) {
		w, response := performJSON(t, router, http.MethodPost, "/custom-cases", map[string]interface{}{
			"customer_name":      "Bruno Lima",
			"phone":              "555-0202",
			"device_model":       "Galaxy S22",
			"design_description": "Matte black",
			"price":              -1,
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, response))
	})

	t.Run("Fail with missing design description", func(t *testing.T) {
		w, response := performJSON(t, router, http.MethodPost, "/custom-cases", map[string]interface{}{
			"customer_name": "Bruno Lima",
			"phone":         "555-0202",
			"device_model":  "Galaxy S22",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, response))
	})
}

func TestUpdateCustomCasePricePropagation(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	router := setupTestRouter()
	router.POST("/custom-cases", CreateCustomCase)
	router.PATCH("/custom-cases/:id", UpdateCustomCase)

	_, created := performJSON(t, router, http.MethodPost, "/custom-cases", map[string]interface{}{
		"customer_name":      "Ana Costa",
		"phone":              "555-0201",
		"device_model":       "iPhone 13",
		"design_description": "Galaxy print",
		"price":              45.0,
	})
	caseID := created["data"].(map[string]interface{})["id"].(float64)
	orderID := created["data"].(map[string]interface{})["order_id"].(float64)

	w, response := performJSON(t, router, http.MethodPatch, "/custom-cases/1", map[string]interface{}{
		"price": 60.0,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, caseID, data["id"])
	assert.Equal(t, float64(60), data["price"])

	var order models.Order
	db.First(&order, uint(orderID))
	assert.Equal(t, float64(60), order.EstimatedPrice)
}

func TestUpdateCustomCaseStatus(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	router := setupTestRouter()
	router.POST("/custom-cases", CreateCustomCase)
	router.PATCH("/custom-cases/:id/status", UpdateCustomCaseStatus)

	performJSON(t, router, http.MethodPost, "/custom-cases", map[string]interface{}{
		"customer_name":      "Ana Costa",
		"phone":              "555-0201",
		"device_model":       "iPhone 13",
		"design_description": "Galaxy print",
		"price":              45.0,
	})

	t.Run("Approving the design stamps design_approved_at", func(t *testing.T) {
		w, response := performJSON(t, router, http.MethodPatch, "/custom-cases/1/status", map[string]interface{}{
			"status": models.CaseStatusDesignApproved,
		})

		assert.Equal(t, http.StatusOK, w.Code)
		data := response["data"].(map[string]interface{})
		assert.Equal(t, models.CaseStatusDesignApproved, data["status"])
		assert.NotNil(t, data["design_approved_at"])
		assert.Nil(t, data["completed_at"])
	})

	t.Run("Moving backwards is rejected", func(t *testing.T) {
		w, response := performJSON(t, router, http.MethodPatch, "/custom-cases/1/status", map[string]interface{}{
			"status": models.CaseStatusDesignPending,
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_TRANSITION", errorCode(t, response))
	})

	t.Run("Unknown status is rejected", func(t *testing.T) {
		w, response := performJSON(t, router, http.MethodPatch, "/custom-cases/1/status", map[string]interface{}{
			"status": "lost_in_mail",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, response))
	})

	t.Run("completed is accepted as an alias for delivered", func(t *testing.T) {
		w, response := performJSON(t, router, http.MethodPatch, "/custom-cases/1/status", map[string]interface{}{
			"status": "completed",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		data := response["data"].(map[string]interface{})
		assert.Equal(t, models.CaseStatusDelivered, data["status"])
		assert.NotNil(t, data["completed_at"])

		// Delivery completes the backing order
		order := data["order"].(map[string]interface{})
		assert.Equal(t, models.OrderStatusCompleted, order["status"])
		assert.NotNil(t, order["completed_at"])
	})

	t.Run("Fail for unknown case", func(t *testing.T) {
		w, response := performJSON(t, router, http.MethodPatch, "/custom-cases/999/status", map[string]interface{}{
			"status": models.CaseStatusInProduction,
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", errorCode(t, response))
	})
}

func TestDeleteCustomCase(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	router := setupTestRouter()
	router.POST("/custom-cases", CreateCustomCase)
	router.DELETE("/custom-cases/:id", DeleteCustomCase)

	performJSON(t, router, http.MethodPost, "/custom-cases", map[string]interface{}{
		"customer_name":      "Ana Costa",
		"phone":              "555-0201",
		"device_model":       "iPhone 13",
		"design_description": "Galaxy print",
	})

	w, _ := performJSON(t, router, http.MethodDelete, "/custom-cases/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var caseCount, orderCount int64
	db.Model(&models.CustomCase{}).Count(&caseCount)
	db.Model(&models.Order{}).Count(&orderCount)
	assert.Equal(t, int64(0), caseCount)
	assert.Equal(t, int64(0), orderCount)

	w, response := performJSON(t, router, http.MethodDelete, "/custom-cases/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, response))
}

// performMultipart uploads a single file field against the router
func performMultipart(t *testing.T, router http.Handler, path, field, filename string, content []byte) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("Failed to write form file: %v", err)
	}
	writer.Close()

	req, err := http.NewRequest(http.MethodPost, path, &buf)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
		}
	}
	return w, response
}

func TestUploadDesign(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	router := setupTestRouter()
	router.POST("/custom-cases", CreateCustomCase)
	router.POST("/custom-cases/:id/upload-design", UploadDesign)

	performJSON(t, router, http.MethodPost, "/custom-cases", map[string]interface{}{
		"customer_name":      "Ana Costa",
		"phone":              "555-0201",
		"device_model":       "iPhone 13",
		"design_description": "Galaxy print",
	})

	mock := services.NewMockImageService()
	services.SetImageService(mock)
	defer services.SetImageService(nil)

	t.Run("Successfully upload a design file", func(t *testing.T) {
		w, response := performMultipart(t, router, "/custom-cases/1/upload-design", "design", "galaxy.png", []byte("png-bytes"))

		assert.Equal(t, http.StatusOK, w.Code)
		data := response["data"].(map[string]interface{})
		designImage := data["design_image"].(string)
		assert.NotEmpty(t, designImage)
		assert.Contains(t, mock.Uploaded, designImage)
	})

	t.Run("Reject non-png files", func(t *testing.T) {
		w, response := performMultipart(t, router, "/custom-cases/1/upload-design", "design", "galaxy.gif", []byte("gif-bytes"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_FILE_FORMAT", errorCode(t, response))
	})

	t.Run("Accept an externally hosted image URL", func(t *testing.T) {
		w, response := performJSON(t, router, http.MethodPost, "/custom-cases/1/upload-design", map[string]interface{}{
			"image_url": "https://cdn.example.com/designs/galaxy.png",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		data := response["data"].(map[string]interface{})
		assert.Equal(t, "https://cdn.example.com/designs/galaxy.png", data["design_image"])
	})

	t.Run("Fail with neither file nor URL", func(t *testing.T) {
		w, response := performJSON(t, router, http.MethodPost, "/custom-cases/1/upload-design", map[string]interface{}{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, response))
	})
}

func TestListCustomCases(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	router := setupTestRouter()
	router.POST("/custom-cases", CreateCustomCase)
	router.GET("/custom-cases", ListCustomCases)

	performJSON(t, router, http.MethodPost, "/custom-cases", map[string]interface{}{
		"customer_name":      "Ana Costa",
		"phone":              "555-0201",
		"device_model":       "iPhone 13",
		"design_description": "Galaxy print",
	})
	performJSON(t, router, http.MethodPost, "/custom-cases", map[string]interface{}{
		"customer_name":      "Bruno Lima",
		"phone":              "555-0202",
		"device_model":       "Galaxy S22",
		"design_description": "Matte black",
	})

	t.Run("List all cases", func(t *testing.T) {
		w, response := performJSON(t, router, http.MethodGet, "/custom-cases", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, response["data"].([]interface{}), 2)
	})

	t.Run("Filter by status", func(t *testing.T) {
		_, response := performJSON(t, router, http.MethodGet, "/custom-cases?status=design_pending", nil)

		assert.Len(t, response["data"].([]interface{}), 2)
	})

	t.Run("Search matches customer name", func(t *testing.T) {
		_, response := performJSON(t, router, http.MethodGet, "/custom-cases?search=bruno", nil)

		data := response["data"].([]interface{})
		assert.Len(t, data, 1)
		first := data[0].(map[string]interface{})
		assert.Equal(t, "Bruno Lima", first["customer_name"])
	})
}
