package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rmoraes/phone-repair-api/config"
	"github.com/rmoraes/phone-repair-api/models"
)

// CreateCommonIssueRequest represents the request body for creating a common issue
type CreateCommonIssueRequest struct {
	Issue             string   `json:"issue" binding:"required"`
	AverageRepairCost *float64 `json:"average_repair_cost"`
	DeviceModelID     uint     `json:"device_model_id" binding:"required"`
}

// UpdateCommonIssueRequest represents the request body for updating a common issue
type UpdateCommonIssueRequest struct {
	Issue             *string  `json:"issue"`
	AverageRepairCost *float64 `json:"average_repair_cost"`
	DeviceModelID     *uint    `json:"device_model_id"`
}

// ListCommonIssues handles GET /api/common-issues
func ListCommonIssues(c *gin.Context) {
	db := config.GetDB()
	query := db.Model(&models.CommonIssue{})

	if deviceModelID := c.Query("device_model_id"); deviceModelID != "" {
		query = query.Where("device_model_id = ?", deviceModelID)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("LOWER(issue) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var issues []models.CommonIssue
	if err := query.Preload("DeviceModel").
		Order("created_at DESC").
		Find(&issues).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch common issues",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    issues,
	})
}

// GetCommonIssue handles GET /api/common-issues/:id
func GetCommonIssue(c *gin.Context) {
	db := config.GetDB()

	var issue models.CommonIssue
	if err := db.Preload("DeviceModel").First(&issue, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Common issue not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    issue,
	})
}

// CreateCommonIssue handles POST /api/common-issues.
// The referenced device model must exist; a dangling id is a 400, not a 404,
// since the missing record is in the request body rather than the URL.
func CreateCommonIssue(c *gin.Context) {
	var req CreateCommonIssueRequest
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

	db := config.GetDB()
	var deviceModel models.DeviceModel
	if err := db.First(&deviceModel, req.DeviceModelID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "REFERENCE_ERROR",
				"message": "Device model not found",
			},
		})
		return
	}

	issue := models.CommonIssue{
		Issue:             req.Issue,
		AverageRepairCost: cost,
		DeviceModelID:     req.DeviceModelID,
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

	if err := db.Preload("DeviceModel").First(&issue, issue.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load common issue",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    issue,
	})
}

// UpdateCommonIssue handles PUT /api/common-issues/:id.
// The device model reference is re-validated only when it changes.
func UpdateCommonIssue(c *gin.Context) {
	db := config.GetDB()

	var issue models.CommonIssue
	if err := db.First(&issue, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Common issue not found",
			},
		})
		return
	}

	var req UpdateCommonIssueRequest
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

	if req.AverageRepairCost != nil && *req.AverageRepairCost < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Average repair cost cannot be negative",
			},
		})
		return
	}
	if req.Issue != nil && *req.Issue == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Issue description cannot be empty",
			},
		})
		return
	}

	if req.DeviceModelID != nil && *req.DeviceModelID != issue.DeviceModelID {
		var deviceModel models.DeviceModel
		if err := db.First(&deviceModel, *req.DeviceModelID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "REFERENCE_ERROR",
					"message": "Device model not found",
				},
			})
			return
		}
	}

	updates := make(map[string]interface{})
	if req.Issue != nil {
		updates["issue"] = *req.Issue
	}
	if req.AverageRepairCost != nil {
		updates["average_repair_cost"] = *req.AverageRepairCost
	}
	if req.DeviceModelID != nil {
		updates["device_model_id"] = *req.DeviceModelID
	}

	if len(updates) > 0 {
		if err := db.Model(&issue).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update common issue",
				},
			})
			return
		}
	}

	if err := db.Preload("DeviceModel").First(&issue, issue.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load common issue",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    issue,
	})
}

// DeleteCommonIssue handles DELETE /api/common-issues/:id - hard delete
func DeleteCommonIssue(c *gin.Context) {
	db := config.GetDB()

	var issue models.CommonIssue
	if err := db.First(&issue, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Common issue not found",
			},
		})
		return
	}

	if err := db.Delete(&issue).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete common issue",
			},
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// ListIssuesByDeviceModel handles GET /api/common-issues/device-model/:deviceModelId
func ListIssuesByDeviceModel(c *gin.Context) {
	db := config.GetDB()

	var issues []models.CommonIssue
	if err := db.Where("device_model_id = ?", c.Param("deviceModelId")).
		Preload("DeviceModel").
		Order("issue ASC").
		Find(&issues).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch common issues",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    issues,
	})
}
