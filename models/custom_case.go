package models

import (
	"time"
)

// Custom case statuses, in lifecycle order
const (
	CaseStatusDesignPending  = "design_pending"
	CaseStatusDesignApproved = "design_approved"
	CaseStatusInProduction   = "in_production"
	CaseStatusReadyForPickup = "ready_for_pickup"
	CaseStatusDelivered      = "delivered"
)

// caseStatusRank orders statuses so transitions can be checked for regressions
var caseStatusRank = map[string]int{
	CaseStatusDesignPending:  0,
	CaseStatusDesignApproved: 1,
	CaseStatusInProduction:   2,
	CaseStatusReadyForPickup: 3,
	CaseStatusDelivered:      4,
}

// ValidCaseStatus reports whether status is one of the known case statuses
func ValidCaseStatus(status string) bool {
	_, ok := caseStatusRank[status]
	return ok
}

// CaseStatusRank returns the lifecycle position of status and whether it is known
func CaseStatusRank(status string) (int, bool) {
	rank, ok := caseStatusRank[status]
	return rank, ok
}

// CustomCase represents a customer-commissioned phone case design.
// Every case is backed by exactly one Order (service_type "custom_case").
type CustomCase struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	OrderID             uint       `gorm:"not null;index" json:"order_id"` // foreign key to orders
	Order               *Order     `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"order,omitempty"`
	CustomerName        string     `gorm:"not null" json:"customer_name"`
	Phone               string     `gorm:"not null" json:"phone"`
	DeviceModel         string     `gorm:"not null" json:"device_model"`
	DesignDescription   string     `gorm:"type:text;not null" json:"design_description"`
	DesignImage         string     `gorm:"not null" json:"design_image"` // storage key or URL of the design image
	Price               float64    `gorm:"not null;check:price >= 0" json:"price"`
	Notes               string     `gorm:"type:text" json:"notes"`
	Status              string     `gorm:"not null;default:'design_pending';index" json:"status"`
	EstimatedCompletion *time.Time `json:"estimated_completion"`
	DesignApprovedAt    *time.Time `json:"design_approved_at"` // stamped when status enters design_approved
	CompletedAt         *time.Time `json:"completed_at"`       // stamped when status enters delivered
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// TableName specifies the table name for the CustomCase model
func (CustomCase) TableName() string {
	return "custom_cases"
}
