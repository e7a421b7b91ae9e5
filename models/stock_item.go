package models

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Stock item categories
const (
	StockCategoryPhoneCase       = "phone_case"
	StockCategoryScreenProtector = "screen_protector"
	StockCategoryCharger         = "charger"
	StockCategoryCable           = "cable"
	StockCategoryAdapter         = "adapter"
	StockCategoryOther           = "other"
)

// ValidStockCategory reports whether category is one of the known stock categories
func ValidStockCategory(category string) bool {
	switch category {
	case StockCategoryPhoneCase, StockCategoryScreenProtector, StockCategoryCharger,
		StockCategoryCable, StockCategoryAdapter, StockCategoryOther:
		return true
	}
	return false
}

// StockItem represents a sellable item in the shop's inventory
type StockItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Quantity    int       `gorm:"not null;default:0;check:quantity >= 0" json:"quantity"`
	Price       float64   `gorm:"not null;check:price >= 0" json:"price"`
	Category    string    `gorm:"not null;default:'other'" json:"category"`
	SKU         string    `gorm:"column:sku;uniqueIndex" json:"sku"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for the StockItem model
func (StockItem) TableName() string {
	return "stock_items"
}

// BeforeCreate generates a SKU when none was supplied.
// Uniqueness is enforced by the index; collisions are retried by the stock service.
func (s *StockItem) BeforeCreate(tx *gorm.DB) error {
	if s.SKU == "" {
		s.SKU = GenerateSKU(s.Category)
	}
	return nil
}

// GenerateSKU builds a SKU from the category prefix and a random 4-digit suffix.
// The prefix is the first 3 letters of the category uppercased, "ITM" when absent.
func GenerateSKU(category string) string {
	prefix := "ITM"
	if category != "" {
		prefix = strings.ToUpper(category)
		if len(prefix) > 3 {
			prefix = prefix[:3]
		}
	}
	return fmt.Sprintf("%s-%d", prefix, 1000+rand.Intn(9000))
}
