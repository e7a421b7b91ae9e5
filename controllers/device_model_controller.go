package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rmoraes/phone-repair-api/config"
	"github.com/rmoraes/phone-repair-api/models"
)

// CreateDeviceModelRequest represents the request body for creating a device model
type CreateDeviceModelRequest struct {
	Brand       string   `json:"brand" binding:"required"`
	Model       string   `json:"model" binding:"required"`
	ReleaseYear *int     `json:"release_year"`
	ScreenSize  *float64 `json:"screen_size"`
	IsActive    *bool    `json:"is_active"`
}

// UpdateDeviceModelRequest represents the request body for updating a device model
type UpdateDeviceModelRequest struct {
	Brand       *string  `json:"brand"`
	Model       *string  `json:"model"`
	ReleaseYear *int     `json:"release_year"`
	ScreenSize  *float64 `json:"screen_size"`
	IsActive    *bool    `json:"is_active"`
}

// AddIssueRequest represents the request body for adding a common issue to a model
type AddIssueRequest struct {
	Issue             string   `json:"issue" binding:"required"`
	AverageRepairCost *float64 `json:"average_repair_cost"`
}

// validateDeviceModelFields checks the optional numeric fields shared by
// create and update. Returns a message suitable for a VALIDATION_ERROR.
func validateDeviceModelFields(releaseYear *int, screenSize *float64) string {
	if releaseYear != nil {
		maxYear := time.Now().Year() + 2
		if *releaseYear < 1900 || *releaseYear > maxYear {
			return "Release year must be between 1900 and " + time.Now().AddDate(2, 0, 0).Format("2006")
		}
	}
	if screenSize != nil && *screenSize <= 0 {
		return "Screen size must be greater than 0"
	}
	return ""
}

// ListDeviceModels handles GET /api/models - lists device models with optional filters.
// Listings are active-only by default; pass active=all to include deactivated models.
func ListDeviceModels(c *gin.Context) {
	db := config.GetDB()
	query := db.Model(&models.DeviceModel{})

	if brand := c.Query("brand"); brand != "" {
		query = query.Where("LOWER(brand) LIKE ?", "%"+strings.ToLower(brand)+"%")
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(brand) LIKE ? OR LOWER(model) LIKE ?", pattern, pattern)
	}
	switch c.DefaultQuery("active", "true") {
	case "true":
		query = query.Where("is_active = ?", true)
	case "false":
		query = query.Where("is_active = ?", false)
	case "all":
		// no filter
	}

	var deviceModels []models.DeviceModel
	if err := query.Preload("CommonIssues").
		Order("brand ASC, model ASC").
		Find(&deviceModels).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch device models",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    deviceModels,
	})
}

// GetDeviceModel handles GET /api/models/:id
func GetDeviceModel(c *gin.Context) {
	db := config.GetDB()

	var deviceModel models.DeviceModel
	if err := db.Preload("CommonIssues").First(&deviceModel, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Device model not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    deviceModel,
	})
}

// CreateDeviceModel handles POST /api/models
func CreateDeviceModel(c *gin.Context) {
	var req CreateDeviceModelRequest
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

	if msg := validateDeviceModelFields(req.ReleaseYear, req.ScreenSize); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": msg,
			},
		})
		return
	}

	deviceModel := models.DeviceModel{
		Brand:       req.Brand,
		Model:       req.Model,
		ReleaseYear: req.ReleaseYear,
		ScreenSize:  req.ScreenSize,
		IsActive:    true,
	}
	if req.IsActive != nil {
		deviceModel.IsActive = *req.IsActive
	}

	db := config.GetDB()
	if err := db.Create(&deviceModel).Error; err != nil {
		// Check for duplicate (brand, model) pair (works with both PostgreSQL and SQLite)
		errMsg := strings.ToLower(err.Error())
		if strings.Contains(errMsg, "duplicate") ||
			strings.Contains(errMsg, "unique constraint") ||
			strings.Contains(errMsg, "unique") {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "MODEL_EXISTS",
					"message": "A device model with this brand and model already exists",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create device model",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    deviceModel,
	})
}

// UpdateDeviceModel handles PUT /api/models/:id - partial update
func UpdateDeviceModel(c *gin.Context) {
	db := config.GetDB()

	var deviceModel models.DeviceModel
	if err := db.First(&deviceModel, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Device model not found",
			},
		})
		return
	}

	var req UpdateDeviceModelRequest
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

	if msg := validateDeviceModelFields(req.ReleaseYear, req.ScreenSize); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": msg,
			},
		})
		return
	}

	updates := make(map[string]interface{})
	if req.Brand != nil {
		updates["brand"] = *req.Brand
	}
	if req.Model != nil {
		updates["model"] = *req.Model
	}
	if req.ReleaseYear != nil {
		updates["release_year"] = *req.ReleaseYear
	}
	if req.ScreenSize != nil {
		updates["screen_size"] = *req.ScreenSize
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := db.Model(&deviceModel).Updates(updates).Error; err != nil {
			errMsg := strings.ToLower(err.Error())
			if strings.Contains(errMsg, "duplicate") ||
				strings.Contains(errMsg, "unique constraint") ||
				strings.Contains(errMsg, "unique") {
				c.JSON(http.StatusConflict, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "MODEL_EXISTS",
						"message": "A device model with this brand and model already exists",
					},
				})
				return
			}

			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update device model",
				},
			})
			return
		}
	}

	if err := db.Preload("CommonIssues").First(&deviceModel, deviceModel.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load device model",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    deviceModel,
	})
}

// DeactivateDeviceModel handles DELETE /api/models/:id - soft delete.
// The model stays queryable by id but drops out of active-only listings.
func DeactivateDeviceModel(c *gin.Context) {
	db := config.GetDB()

	var deviceModel models.DeviceModel
	if err := db.First(&deviceModel, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Device model not found",
			},
		})
		return
	}

	if err := db.Model(&deviceModel).Update("is_active", false).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to deactivate device model",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    deviceModel,
	})
}

// AddDeviceModelIssue handles POST /api/models/:id/issues
func AddDeviceModelIssue(c *gin.Context) {
	db := config.GetDB()

	var deviceModel models.DeviceModel
	if err := db.First(&deviceModel, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Device model not found",
			},
		})
		return
	}

	var req AddIssueRequest
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

	cost := 0.0
	if req.AverageRepairCost != nil {
		cost = *req.AverageRepairCost
	}
	if cost < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Average repair cost cannot be negative",
			},
		})
		return
	}

	issue := models.CommonIssue{
		Issue:             req.Issue,
		AverageRepairCost: cost,
		DeviceModelID:     deviceModel.ID,
	}
	if err := db.Create(&issue).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create common issue",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    issue,
	})
}

// RemoveDeviceModelIssue handles DELETE /api/models/:id/issues/:issueId
func RemoveDeviceModelIssue(c *gin.Context) {
	db := config.GetDB()

	var deviceModel models.DeviceModel
	if err := db.First(&deviceModel, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Device model not found",
			},
		})
		return
	}

	result := db.Where("id = ? AND device_model_id = ?", c.Param("issueId"), deviceModel.ID).
		Delete(&models.CommonIssue{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete common issue",
			},
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Common issue not found for this device model",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"message": "Common issue removed"},
	})
}
