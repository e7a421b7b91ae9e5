package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rmoraes/phone-repair-api/config"
	"github.com/rmoraes/phone-repair-api/models"
)

// CreateServiceRequest represents the request body for creating a catalog service
type CreateServiceRequest struct {
	Name           string   `json:"name" binding:"required"`
	Description    string   `json:"description"`
	BasePrice      *float64 `json:"base_price" binding:"required"`
	EstimatedTime  *int     `json:"estimated_time"`
	Category       string   `json:"category"`
	IsActive       *bool    `json:"is_active"`
	RequiresDevice *bool    `json:"requires_device"`
}

// UpdateServiceRequest represents the request body for updating a catalog service
type UpdateServiceRequest struct {
	Name           *string  `json:"name"`
	Description    *string  `json:"description"`
	BasePrice      *float64 `json:"base_price"`
	EstimatedTime  *int     `json:"estimated_time"`
	Category       *string  `json:"category"`
	IsActive       *bool    `json:"is_active"`
	RequiresDevice *bool    `json:"requires_device"`
}

// UpdateServicePriceRequest represents the request body for PATCH /services/:id/price
type UpdateServicePriceRequest struct {
	BasePrice *float64 `json:"base_price" binding:"required"`
}

// ListServices handles GET /api/services.
// Listings are active-only by default; pass active=all to include deactivated services.
func ListServices(c *gin.Context) {
	db := config.GetDB()
	query := db.Model(&models.Service{})

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	switch c.DefaultQuery("active", "true") {
	case "true":
		query = query.Where("is_active = ?", true)
	case "false":
		query = query.Where("is_active = ?", false)
	case "all":
		// no filter
	}

	var serviceList []models.Service
	if err := query.Order("name ASC").Find(&serviceList).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch services",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    serviceList,
	})
}

// GetService handles GET /api/services/:id
func GetService(c *gin.Context) {
	db := config.GetDB()

	var service models.Service
	if err := db.First(&service, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Service not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    service,
	})
}

// CreateService handles POST /api/services
func CreateService(c *gin.Context) {
	var req CreateServiceRequest
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

	if *req.BasePrice < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Base price cannot be negative",
			},
		})
		return
	}

	category := req.Category
	if category == "" {
		category = models.ServiceCategoryRepair
	}
	if !models.ValidServiceCategory(category) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid service category",
			},
		})
		return
	}

	service := models.Service{
		Name:           req.Name,
		Description:    req.Description,
		BasePrice:      *req.BasePrice,
		EstimatedTime:  60,
		Category:       category,
		IsActive:       true,
		RequiresDevice: true,
	}
	if req.EstimatedTime != nil {
		service.EstimatedTime = *req.EstimatedTime
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}
	if req.RequiresDevice != nil {
		service.RequiresDevice = *req.RequiresDevice
	}

	db := config.GetDB()
	if err := db.Create(&service).Error; err != nil {
		errMsg := strings.ToLower(err.Error())
		if strings.Contains(errMsg, "duplicate") ||
			strings.Contains(errMsg, "unique constraint") ||
			strings.Contains(errMsg, "unique") {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SERVICE_EXISTS",
					"message": "A service with this name already exists",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create service",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    service,
	})
}

// UpdateService handles PUT /api/services/:id - partial update
func UpdateService(c *gin.Context) {
	db := config.GetDB()

	var service models.Service
	if err := db.First(&service, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Service not found",
			},
		})
		return
	}

	var req UpdateServiceRequest
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

	if req.BasePrice != nil && *req.BasePrice < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Base price cannot be negative",
			},
		})
		return
	}
	if req.Category != nil && !models.ValidServiceCategory(*req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid service category",
			},
		})
		return
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.BasePrice != nil {
		updates["base_price"] = *req.BasePrice
	}
	if req.EstimatedTime != nil {
		updates["estimated_time"] = *req.EstimatedTime
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.RequiresDevice != nil {
		updates["requires_device"] = *req.RequiresDevice
	}

	if len(updates) > 0 {
		if err := db.Model(&service).Updates(updates).Error; err != nil {
			errMsg := strings.ToLower(err.Error())
			if strings.Contains(errMsg, "duplicate") ||
				strings.Contains(errMsg, "unique constraint") ||
				strings.Contains(errMsg, "unique") {
				c.JSON(http.StatusConflict, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "SERVICE_EXISTS",
						"message": "A service with this name already exists",
					},
				})
				return
			}

			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update service",
				},
			})
			return
		}
	}

	if err := db.First(&service, service.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load service",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    service,
	})
}

// DeactivateService handles DELETE /api/services/:id - soft delete
func DeactivateService(c *gin.Context) {
	db := config.GetDB()

	var service models.Service
	if err := db.First(&service, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Service not found",
			},
		})
		return
	}

	if err := db.Model(&service).Update("is_active", false).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to deactivate service",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    service,
	})
}

// UpdateServicePrice handles PATCH /api/services/:id/price
func UpdateServicePrice(c *gin.Context) {
	db := config.GetDB()

	var service models.Service
	if err := db.First(&service, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Service not found",
			},
		})
		return
	}

	var req UpdateServicePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Base price is required",
				"details": err.Error(),
			},
		})
		return
	}

	if *req.BasePrice < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Base price cannot be negative",
			},
		})
		return
	}

	if err := db.Model(&service).Update("base_price", *req.BasePrice).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update service price",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    service,
	})
}

// ToggleServiceActive handles PATCH /api/services/:id/toggle-active
func ToggleServiceActive(c *gin.Context) {
	db := config.GetDB()

	var service models.Service
	if err := db.First(&service, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Service not found",
			},
		})
		return
	}

	newStatus := !service.IsActive
	if err := db.Model(&service).Update("is_active", newStatus).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to toggle service status",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    service,
	})
}
