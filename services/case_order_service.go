package services

import (
	"errors"
	"time"

	"github.com/rmoraes/phone-repair-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CaseOrderService owns the consistency rules between custom cases and
// their backing orders: every case is created together with an order,
// price and status changes propagate to the order, and deletes remove
// both records. All multi-entity writes run in a single transaction.
type CaseOrderService struct {
	db *gorm.DB
}

// NewCaseOrderService creates a CaseOrderService bound to the given database handle
func NewCaseOrderService(db *gorm.DB) *CaseOrderService {
	return &CaseOrderService{db: db}
}

// CreateCaseInput carries the fields accepted when commissioning a custom case
type CreateCaseInput struct {
	CustomerName        string
	Phone               string
	DeviceModel         string
	DesignDescription   string
	DesignImage         string
	Price               float64
	Notes               string
	EstimatedCompletion *time.Time
}

// UpdateCaseInput carries the fields accepted on a partial case update.
// Nil pointers mean "leave unchanged".
type UpdateCaseInput struct {
	DesignDescription   *string
	DesignImage         *string
	Price               *float64
	Notes               *string
	Status              *string
	EstimatedCompletion *time.Time
}

// CreateCase creates the backing order and the custom case in one
// transaction. If either insert fails nothing is persisted.
func (s *CaseOrderService) CreateCase(in CreateCaseInput) (*models.CustomCase, error) {
	var customCase models.CustomCase

	err := s.db.Transaction(func(tx *gorm.DB) error {
		order := models.Order{
			CustomerName:   in.CustomerName,
			Phone:          in.Phone,
			DeviceModel:    in.DeviceModel,
			Issue:          "Custom Case Design",
			ServiceType:    "custom_case",
			EstimatedPrice: in.Price,
			Status:         models.OrderStatusPending,
			Notes:          "Custom case design order",
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		customCase = models.CustomCase{
			OrderID:             order.ID,
			CustomerName:        in.CustomerName,
			Phone:               in.Phone,
			DeviceModel:         in.DeviceModel,
			DesignDescription:   in.DesignDescription,
			DesignImage:         in.DesignImage,
			Price:               in.Price,
			Notes:               in.Notes,
			Status:              models.CaseStatusDesignPending,
			EstimatedCompletion: in.EstimatedCompletion,
		}
		return tx.Create(&customCase).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Order").First(&customCase, customCase.ID).Error; err != nil {
		return nil, err
	}
	return &customCase, nil
}

// UpdateCase applies a partial update. A price change also updates the
// backing order's estimated price; a status change goes through the same
// transition rules as UpdateStatus. Everything runs in one transaction.
func (s *CaseOrderService) UpdateCase(id uint, in UpdateCaseInput) (*models.CustomCase, error) {
	customCase, err := s.getCase(id)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if in.DesignDescription != nil {
			customCase.DesignDescription = *in.DesignDescription
		}
		if in.DesignImage != nil {
			customCase.DesignImage = *in.DesignImage
		}
		if in.Notes != nil {
			customCase.Notes = *in.Notes
		}
		if in.EstimatedCompletion != nil {
			customCase.EstimatedCompletion = in.EstimatedCompletion
		}
		if in.Price != nil {
			customCase.Price = *in.Price
			if err := tx.Model(&models.Order{}).
				Where("id = ?", customCase.OrderID).
				Update("estimated_price", *in.Price).Error; err != nil {
				return err
			}
		}
		if in.Status != nil {
			if err := applyCaseTransition(tx, customCase, *in.Status); err != nil {
				return err
			}
		}
		return tx.Omit(clause.Associations).Save(customCase).Error
	})
	if err != nil {
		return nil, err
	}

	return s.getCase(id)
}

// UpdateStatus moves the case to a new lifecycle status. Transitions are
// forward-only; "completed" is accepted as an alias for delivered.
// Entering delivered also completes the backing order.
func (s *CaseOrderService) UpdateStatus(id uint, status string) (*models.CustomCase, error) {
	customCase, err := s.getCase(id)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := applyCaseTransition(tx, customCase, status); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(customCase).Error
	})
	if err != nil {
		return nil, err
	}

	return s.getCase(id)
}

// DeleteCase removes the case and its backing order together. If the
// order delete fails the case survives untouched.
func (s *CaseOrderService) DeleteCase(id uint) error {
	customCase, err := s.getCase(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Order{}, customCase.OrderID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.CustomCase{}, customCase.ID).Error
	})
}

// applyCaseTransition validates the status change and applies its side
// effects: stamping approval/completion timestamps and, on delivery,
// completing the backing order inside the same transaction.
func applyCaseTransition(tx *gorm.DB, customCase *models.CustomCase, status string) error {
	// "completed" survives from an earlier generation of the API; the
	// canonical stored terminal status is delivered.
	if status == "completed" {
		status = models.CaseStatusDelivered
	}

	newRank, ok := models.CaseStatusRank(status)
	if !ok {
		return ErrUnknownStatus
	}
	currentRank, _ := models.CaseStatusRank(customCase.Status)
	if newRank < currentRank {
		return ErrInvalidTransition
	}
	if status == customCase.Status {
		return nil
	}

	now := time.Now()
	customCase.Status = status

	switch status {
	case models.CaseStatusDesignApproved:
		customCase.DesignApprovedAt = &now
	case models.CaseStatusDelivered:
		customCase.CompletedAt = &now
		if err := tx.Model(&models.Order{}).
			Where("id = ?", customCase.OrderID).
			Updates(map[string]interface{}{
				"status":       models.OrderStatusCompleted,
				"completed_at": now,
			}).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *CaseOrderService) getCase(id uint) (*models.CustomCase, error) {
	var customCase models.CustomCase
	if err := s.db.Preload("Order").First(&customCase, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &customCase, nil
}
