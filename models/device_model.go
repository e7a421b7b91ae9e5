package models

import (
	"time"
)

// DeviceModel represents a phone model the shop repairs
type DeviceModel struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	Brand        string        `gorm:"not null;uniqueIndex:idx_brand_model" json:"brand"`
	Model        string        `gorm:"not null;uniqueIndex:idx_brand_model" json:"model"`
	ReleaseYear  *int          `json:"release_year"`                    // nullable, validated against [1900, currentYear+2]
	ScreenSize   *float64      `json:"screen_size"`                     // nullable, inches, must be > 0
	IsActive     bool          `gorm:"not null;default:true" json:"is_active"`
	CommonIssues []CommonIssue `gorm:"foreignKey:DeviceModelID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"common_issues,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// TableName specifies the table name for the DeviceModel model
func (DeviceModel) TableName() string {
	return "device_models"
}

// FullName returns the display name "Brand Model"
func (d *DeviceModel) FullName() string {
	return d.Brand + " " + d.Model
}
