package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rmoraes/phone-repair-api/config"
	"github.com/rmoraes/phone-repair-api/models"
	"github.com/rmoraes/phone-repair-api/services"
)

// CreateStockItemRequest represents the request body for creating a stock item
type CreateStockItemRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Quantity    *int     `json:"quantity"`
	Price       *float64 `json:"price" binding:"required"`
	Category    string   `json:"category"`
	SKU         string   `json:"sku"`
}

// UpdateStockItemRequest represents the request body for updating a stock item
type UpdateStockItemRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Quantity    *int     `json:"quantity"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	SKU         *string  `json:"sku"`
}

// AdjustQuantityRequest represents the request body for PATCH /stock/:id/quantity
type AdjustQuantityRequest struct {
	Quantity  *int   `json:"quantity" binding:"required"`
	Operation string `json:"operation" binding:"required"`
}

// ListStockItems handles GET /api/stock
func ListStockItems(c *gin.Context) {
	db := config.GetDB()
	query := db.Model(&models.StockItem{})

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if minPrice := c.Query("minPrice"); minPrice != "" {
		if v, err := strconv.ParseFloat(minPrice, 64); err == nil {
			query = query.Where("price >= ?", v)
		}
	}
	if maxPrice := c.Query("maxPrice"); maxPrice != "" {
		if v, err := strconv.ParseFloat(maxPrice, 64); err == nil {
			query = query.Where("price <= ?", v)
		}
	}
	switch c.Query("inStock") {
	case "true":
		query = query.Where("quantity > 0")
	case "false":
		query = query.Where("quantity = 0")
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(sku) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var items []models.StockItem
	if err := query.Order("name ASC").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch stock items",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
	})
}

// GetStockItem handles GET /api/stock/:id
func GetStockItem(c *gin.Context) {
	db := config.GetDB()

	var item models.StockItem
	if err := db.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Stock item not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    item,
	})
}

// CreateStockItem handles POST /api/stock.
// When no SKU is supplied, one is generated; generation retries on
// collisions against the unique index before giving up.
func CreateStockItem(c *gin.Context) {
	var req CreateStockItemRequest
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

	if *req.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Price cannot be negative",
			},
		})
		return
	}
	quantity := 0
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Quantity cannot be negative",
			},
		})
		return
	}

	category := req.Category
	if category == "" {
		category = models.StockCategoryOther
	}
	if !models.ValidStockCategory(category) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid stock category",
			},
		})
		return
	}

	item := models.StockItem{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    quantity,
		Price:       *req.Price,
		Category:    category,
		SKU:         req.SKU,
	}

	stockService := services.NewStockService(config.GetDB())
	if err := stockService.Create(&item); err != nil {
		if errors.Is(err, services.ErrSKUConflict) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SKU_CONFLICT",
					"message": "Could not generate a unique SKU, please retry or supply one",
				},
			})
			return
		}
		if services.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SKU_EXISTS",
					"message": "A stock item with this SKU already exists",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create stock item",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    item,
	})
}

// UpdateStockItem handles PUT /api/stock/:id - partial update
func UpdateStockItem(c *gin.Context) {
	db := config.GetDB()

	var item models.StockItem
	if err := db.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Stock item not found",
			},
		})
		return
	}

	var req UpdateStockItemRequest
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
	if req.Quantity != nil && *req.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Quantity cannot be negative",
			},
		})
		return
	}
	if req.Category != nil && !models.ValidStockCategory(*req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid stock category",
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
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.SKU != nil {
		updates["sku"] = *req.SKU
	}

	if len(updates) > 0 {
		if err := db.Model(&item).Updates(updates).Error; err != nil {
			if services.IsUniqueViolation(err) {
				c.JSON(http.StatusConflict, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "SKU_EXISTS",
						"message": "A stock item with this SKU already exists",
					},
				})
				return
			}

			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update stock item",
				},
			})
			return
		}
	}

	if err := db.First(&item, item.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load stock item",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    item,
	})
}

// DeleteStockItem handles DELETE /api/stock/:id - hard delete
func DeleteStockItem(c *gin.Context) {
	db := config.GetDB()

	var item models.StockItem
	if err := db.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Stock item not found",
			},
		})
		return
	}

	if err := db.Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete stock item",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"message": "Stock item deleted"},
	})
}

// AdjustStockQuantity handles PATCH /api/stock/:id/quantity.
// Removing more units than are in stock fails and leaves the quantity unchanged.
func AdjustStockQuantity(c *gin.Context) {
	var req AdjustQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Quantity and operation are required",
				"details": err.Error(),
			},
		})
		return
	}

	if *req.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Quantity must be greater than 0",
			},
		})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Stock item not found",
			},
		})
		return
	}

	stockService := services.NewStockService(config.GetDB())
	item, err := stockService.AdjustQuantity(uint(id), *req.Quantity, req.Operation)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Stock item not found",
				},
			})
		case errors.Is(err, services.ErrInsufficientStock):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INSUFFICIENT_STOCK",
					"message": "Not enough stock for this operation",
				},
			})
		case errors.Is(err, services.ErrInvalidOperation):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Invalid operation. Use \"add\" or \"remove\"",
				},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to adjust stock quantity",
				},
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    item,
	})
}
