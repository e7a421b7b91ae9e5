package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rmoraes/phone-repair-api/config"
	"github.com/rmoraes/phone-repair-api/models"
)

// CreateOrderRequest represents the request body for creating a repair order
type CreateOrderRequest struct {
	CustomerName   string   `json:"customer_name" binding:"required"`
	Phone          string   `json:"phone" binding:"required"`
	DeviceModel    string   `json:"device_model" binding:"required"`
	Issue          string   `json:"issue" binding:"required"`
	ServiceType    string   `json:"service_type" binding:"required"`
	EstimatedPrice *float64 `json:"estimated_price" binding:"required"`
	Status         string   `json:"status"`
	Notes          string   `json:"notes"`
}

// UpdateOrderRequest represents the request body for PATCH /orders/:id
type UpdateOrderRequest struct {
	CustomerName   *string  `json:"customer_name"`
	Phone          *string  `json:"phone"`
	DeviceModel    *string  `json:"device_model"`
	Issue          *string  `json:"issue"`
	ServiceType    *string  `json:"service_type"`
	EstimatedPrice *float64 `json:"estimated_price"`
	Status         *string  `json:"status"`
	Notes          *string  `json:"notes"`
}

// UpdateStatusRequest represents the request body for PATCH /orders/:id/status
// and PATCH /custom-cases/:id/status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// parseDateRange reads startDate/endDate query parameters as calendar dates.
// The end date's time-of-day is pushed to 23:59:59.999 so a date-only
// boundary includes the whole day.
func parseDateRange(c *gin.Context) (start, end *time.Time, ok bool) {
	ok = true
	if v := c.Query("startDate"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			return nil, nil, false
		}
		start = &t
	}
	if v := c.Query("endDate"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			return nil, nil, false
		}
		t = t.Add(24*time.Hour - time.Millisecond)
		end = &t
	}
	return start, end, ok
}

// ListOrders handles GET /api/orders
func ListOrders(c *gin.Context) {
	db := config.GetDB()
	query := db.Model(&models.Order{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	start, end, ok := parseDateRange(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Dates must use the YYYY-MM-DD format",
			},
		})
		return
	}
	if start != nil {
		query = query.Where("created_at >= ?", *start)
	}
	if end != nil {
		query = query.Where("created_at <= ?", *end)
	}

	var orders []models.Order
	if err := query.Preload("CustomCase").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// GetOrder handles GET /api/orders/:id
func GetOrder(c *gin.Context) {
	db := config.GetDB()

	var order models.Order
	if err := db.Preload("CustomCase").First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// CreateOrder handles POST /api/orders
func CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	status := req.Status
	if status == "" {
		status = models.OrderStatusPending
	}
	if !models.ValidOrderStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid order status",
			},
		})
		return
	}

	order := models.Order{
		CustomerName:   req.CustomerName,
		Phone:          req.Phone,
		DeviceModel:    req.DeviceModel,
		Issue:          req.Issue,
		ServiceType:    req.ServiceType,
		EstimatedPrice: *req.EstimatedPrice,
		Status:         status,
		Notes:          req.Notes,
	}

	db := config.GetDB()
	if err := db.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create order",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdateOrder handles PATCH /api/orders/:id - partial update
func UpdateOrder(c *gin.Context) {
	db := config.GetDB()

	var order models.Order
	if err := db.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	if req.Status != nil && !models.ValidOrderStatus(*req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid order status",
			},
		})
		return
	}

	updates := make(map[string]interface{})
	if req.CustomerName != nil {
		updates["customer_name"] = *req.CustomerName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.DeviceModel != nil {
		updates["device_model"] = *req.DeviceModel
	}
	if req.Issue != nil {
		updates["issue"] = *req.Issue
	}
	if req.ServiceType != nil {
		updates["service_type"] = *req.ServiceType
	}
	if req.EstimatedPrice != nil {
		updates["estimated_price"] = *req.EstimatedPrice
	}
	if req.Status != nil {
		updates["status"] = *req.Status
		if *req.Status == models.OrderStatusCompleted && order.CompletedAt == nil {
			updates["completed_at"] = time.Now()
		}
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if len(updates) > 0 {
		if err := db.Model(&order).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update order",
				},
			})
			return
		}
	}

	if err := db.Preload("CustomCase").First(&order, order.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load order",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// DeleteOrder handles DELETE /api/orders/:id - hard delete
func DeleteOrder(c *gin.Context) {
	db := config.GetDB()

	var order models.Order
	if err := db.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	if err := db.Delete(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete order",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"message": "Order deleted"},
	})
}

// UpdateOrderStatus handles PATCH /api/orders/:id/status.
// Completing an order stamps completed_at; the timestamp is kept as an
// audit trail even if the status later regresses.
func UpdateOrderStatus(c *gin.Context) {
	db := config.GetDB()

	var order models.Order
	if err := db.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Status is required",
				"details": err.Error(),
			},
		})
		return
	}

	if !models.ValidOrderStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid order status",
			},
		})
		return
	}

	updates := map[string]interface{}{"status": req.Status}
	if req.Status == models.OrderStatusCompleted {
		updates["completed_at"] = time.Now()
	}

	if err := db.Model(&order).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update order status",
			},
		})
		return
	}

	if err := db.Preload("CustomCase").First(&order, order.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load order",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}
