package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rmoraes/phone-repair-api/config"
	"github.com/rmoraes/phone-repair-api/models"
	"github.com/rmoraes/phone-repair-api/services"
	"github.com/rmoraes/phone-repair-api/utils"
)

// CreateCustomCaseRequest represents the request body for commissioning a custom case
type CreateCustomCaseRequest struct {
	CustomerName        string     `json:"customer_name" binding:"required"`
	Phone               string     `json:"phone" binding:"required"`
	DeviceModel         string     `json:"device_model" binding:"required"`
	DesignDescription   string     `json:"design_description" binding:"required"`
	DesignImage         string     `json:"design_image"`
	Price               *float64   `json:"price"`
	Notes               string     `json:"notes"`
	EstimatedCompletion *time.Time `json:"estimated_completion"`
}

// UpdateCustomCaseRequest represents the request body for PATCH /custom-cases/:id
type UpdateCustomCaseRequest struct {
	DesignDescription   *string    `json:"design_description"`
	DesignImage         *string    `json:"design_image"`
	Price               *float64   `json:"price"`
	Notes               *string    `json:"notes"`
	Status              *string    `json:"status"`
	EstimatedCompletion *time.Time `json:"estimated_completion"`
}

// UploadDesignRequest represents the JSON fallback body for POST /custom-cases/:id/upload-design
type UploadDesignRequest struct {
	ImageURL string `json:"image_url"`
}

// caseIDParam parses the :id URL parameter
func caseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Custom case not found",
			},
		})
		return 0, false
	}
	return uint(id), true
}

// respondCaseError maps service-layer errors onto the response envelope
func respondCaseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Custom case not found",
			},
		})
	case errors.Is(err, services.ErrUnknownStatus):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid custom case status",
			},
		})
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_TRANSITION",
				"message": "Custom case status cannot move backwards",
			},
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to process custom case",
			},
		})
	}
}

// ListCustomCases handles GET /api/custom-cases
func ListCustomCases(c *gin.Context) {
	db := config.GetDB()
	query := db.Model(&models.CustomCase{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(customer_name) LIKE ? OR LOWER(phone) LIKE ? OR LOWER(device_model) LIKE ?",
			pattern, pattern, pattern,
		)
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

	var cases []models.CustomCase
	if err := query.Preload("Order").
		Order("created_at DESC").
		Find(&cases).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch custom cases",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cases,
	})
}

// GetCustomCase handles GET /api/custom-cases/:id
func GetCustomCase(c *gin.Context) {
	db := config.GetDB()

	var customCase models.CustomCase
	if err := db.Preload("Order").First(&customCase, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Custom case not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    customCase,
	})
}

// CreateCustomCase handles POST /api/custom-cases.
// The backing order and the case are created together; if either fails
// nothing is persisted.
func CreateCustomCase(c *gin.Context) {
	var req CreateCustomCaseRequest
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

	price := 0.0
	if req.Price != nil {
		price = *req.Price
	}
	if price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Price cannot be negative",
			},
		})
		return
	}

	caseOrderService := services.NewCaseOrderService(config.GetDB())
	customCase, err := caseOrderService.CreateCase(services.CreateCaseInput{
		CustomerName:        req.CustomerName,
		Phone:               req.Phone,
		DeviceModel:         req.DeviceModel,
		DesignDescription:   req.DesignDescription,
		DesignImage:         req.DesignImage,
		Price:               price,
		Notes:               req.Notes,
		EstimatedCompletion: req.EstimatedCompletion,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create custom case",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    customCase,
	})
}

// UpdateCustomCase handles PATCH /api/custom-cases/:id.
// A price change propagates to the backing order's estimated price.
func UpdateCustomCase(c *gin.Context) {
	id, ok := caseIDParam(c)
	if !ok {
		return
	}

	var req UpdateCustomCaseRequest
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

	if req.Price != nil && *req.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Price cannot be negative",
			},
		})
		return
	}

	caseOrderService := services.NewCaseOrderService(config.GetDB())
	customCase, err := caseOrderService.UpdateCase(id, services.UpdateCaseInput{
		DesignDescription:   req.DesignDescription,
		DesignImage:         req.DesignImage,
		Price:               req.Price,
		Notes:               req.Notes,
		Status:              req.Status,
		EstimatedCompletion: req.EstimatedCompletion,
	})
	if err != nil {
		respondCaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    customCase,
	})
}

// DeleteCustomCase handles DELETE /api/custom-cases/:id.
// The backing order is deleted in the same transaction.
func DeleteCustomCase(c *gin.Context) {
	id, ok := caseIDParam(c)
	if !ok {
		return
	}

	caseOrderService := services.NewCaseOrderService(config.GetDB())
	if err := caseOrderService.DeleteCase(id); err != nil {
		respondCaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"message": "Custom case and associated order deleted"},
	})
}

// UpdateCustomCaseStatus handles PATCH /api/custom-cases/:id/status.
// Entering delivered (or its legacy alias "completed") stamps the
// completion timestamp and completes the backing order.
func UpdateCustomCaseStatus(c *gin.Context) {
	id, ok := caseIDParam(c)
	if !ok {
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

	caseOrderService := services.NewCaseOrderService(config.GetDB())
	customCase, err := caseOrderService.UpdateStatus(id, req.Status)
	if err != nil {
		respondCaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    customCase,
	})
}

// UploadDesign handles POST /api/custom-cases/:id/upload-design.
// A multipart "design" file is validated and stored through the image
// service; a JSON body with image_url is accepted as a fallback for
// externally hosted designs.
func UploadDesign(c *gin.Context) {
	id, ok := caseIDParam(c)
	if !ok {
		return
	}

	var imageRef string

	fileHeader, fileErr := c.FormFile("design")
	if fileErr == nil {
		imageService := services.GetImageService()
		if imageService == nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UPLOAD_UNAVAILABLE",
					"message": "Design image storage is not configured",
				},
			})
			return
		}

		key, err := imageService.UploadImage(fileHeader)
		if err != nil {
			var uploadErr *utils.FileUploadError
			if errors.As(err, &uploadErr) {
				c.JSON(http.StatusBadRequest, gin.H{
					"success": false,
					"error": gin.H{
						"code":    uploadErr.Code,
						"message": uploadErr.Message,
					},
				})
				return
			}

			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UPLOAD_ERROR",
					"message": "Failed to store design image",
				},
			})
			return
		}
		imageRef = key
	} else {
		var req UploadDesignRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.ImageURL == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "A design file or image URL is required",
				},
			})
			return
		}
		imageRef = req.ImageURL
	}

	caseOrderService := services.NewCaseOrderService(config.GetDB())
	customCase, err := caseOrderService.UpdateCase(id, services.UpdateCaseInput{
		DesignImage: &imageRef,
	})
	if err != nil {
		respondCaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    customCase,
	})
}
