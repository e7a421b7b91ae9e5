package models

import (
	"time"
)

// Service categories
const (
	ServiceCategoryRepair        = "repair"
	ServiceCategoryMaintenance   = "maintenance"
	ServiceCategoryDiagnostic    = "diagnostic"
	ServiceCategoryCustomization = "customization"
	ServiceCategoryOther         = "other"
)

// ValidServiceCategory reports whether category is one of the known service categories
func ValidServiceCategory(category string) bool {
	switch category {
	case ServiceCategoryRepair, ServiceCategoryMaintenance, ServiceCategoryDiagnostic,
		ServiceCategoryCustomization, ServiceCategoryOther:
		return true
	}
	return false
}

// Service represents an offering from the shop's service catalog
type Service struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"uniqueIndex;not null" json:"name"`
	Description    string    `gorm:"type:text" json:"description"`
	BasePrice      float64   `gorm:"not null;check:base_price >= 0" json:"base_price"`
	EstimatedTime  int       `gorm:"not null;default:60" json:"estimated_time"` // minutes
	Category       string    `gorm:"not null;default:'repair'" json:"category"`
	IsActive       bool      `gorm:"not null;default:true" json:"is_active"`
	RequiresDevice bool      `gorm:"not null;default:true" json:"requires_device"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Service model
func (Service) TableName() string {
	return "services"
}
