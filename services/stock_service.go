package services

import (
	"errors"

	"github.com/rmoraes/phone-repair-api/models"
	"gorm.io/gorm"
)

// Quantity adjustment operations
const (
	StockOpAdd    = "add"
	StockOpRemove = "remove"
)

// skuMaxAttempts bounds SKU regeneration when the random suffix collides
const skuMaxAttempts = 5

// StockService owns stock-item business rules: SKU generation with
// collision retry and atomic quantity adjustments.
type StockService struct {
	db *gorm.DB
}

// NewStockService creates a StockService bound to the given database handle
func NewStockService(db *gorm.DB) *StockService {
	return &StockService{db: db}
}

// Create inserts a stock item. When no SKU was supplied one is generated
// from the category prefix; generation is retried on unique-index
// collisions up to skuMaxAttempts before giving up with ErrSKUConflict.
func (s *StockService) Create(item *models.StockItem) error {
	if item.SKU != "" {
		return s.db.Create(item).Error
	}

	for attempt := 0; attempt < skuMaxAttempts; attempt++ {
		item.ID = 0
		item.SKU = models.GenerateSKU(item.Category)
		err := s.db.Create(item).Error
		if err == nil {
			return nil
		}
		if !IsUniqueViolation(err) {
			return err
		}
	}
	return ErrSKUConflict
}

// AdjustQuantity adds or removes amount units from the item's stock.
// Removing more than the current quantity fails with ErrInsufficientStock
// and leaves the row unchanged. The update is guarded at the database so
// the quantity can never go negative.
func (s *StockService) AdjustQuantity(id uint, amount int, operation string) (*models.StockItem, error) {
	var item models.StockItem
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	switch operation {
	case StockOpAdd:
		if err := s.db.Model(&item).
			Update("quantity", gorm.Expr("quantity + ?", amount)).Error; err != nil {
			return nil, err
		}
	case StockOpRemove:
		result := s.db.Model(&models.StockItem{}).
			Where("id = ? AND quantity >= ?", id, amount).
			Update("quantity", gorm.Expr("quantity - ?", amount))
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, ErrInsufficientStock
		}
	default:
		return nil, ErrInvalidOperation
	}

	if err := s.db.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}
