package models

import (
	"time"
)

// Order statuses
const (
	OrderStatusPending    = "pending"
	OrderStatusInProgress = "in_progress"
	OrderStatusCompleted  = "completed"
	OrderStatusDelivered  = "delivered"
)

// ValidOrderStatus reports whether status is one of the known order statuses
func ValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusCompleted, OrderStatusDelivered:
		return true
	}
	return false
}

// Order represents a repair order placed at the counter
type Order struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	CustomerName   string      `gorm:"not null" json:"customer_name"`
	Phone          string      `gorm:"not null" json:"phone"`
	DeviceModel    string      `gorm:"not null" json:"device_model"` // free text, not a device_models FK
	Issue          string      `gorm:"type:text;not null" json:"issue"`
	ServiceType    string      `gorm:"not null" json:"service_type"`
	EstimatedPrice float64     `gorm:"not null" json:"estimated_price"`
	Status         string      `gorm:"not null;default:'pending'" json:"status"`
	Notes          string      `gorm:"type:text" json:"notes"`
	CompletedAt    *time.Time  `json:"completed_at"` // stamped when status becomes completed, never cleared
	CustomCase     *CustomCase `gorm:"foreignKey:OrderID" json:"custom_case,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}
