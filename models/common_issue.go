package models

import (
	"time"
)

// CommonIssue represents a known defect for a specific device model,
// used to estimate repair cost up front
type CommonIssue struct {
	ID                uint         `gorm:"primaryKey" json:"id"`
	Issue             string       `gorm:"not null" json:"issue"`
	AverageRepairCost float64      `gorm:"not null;default:0;check:average_repair_cost >= 0" json:"average_repair_cost"`
	DeviceModelID     uint         `gorm:"not null;index" json:"device_model_id"` // foreign key to device_models
	DeviceModel       *DeviceModel `gorm:"foreignKey:DeviceModelID" json:"device_model,omitempty"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// TableName specifies the table name for the CommonIssue model
func (CommonIssue) TableName() string {
	return "common_issues"
}
