package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mecanica/backend/internal/domain/inventory"
	"github.com/mecanica/backend/internal/domain/shared"
)

// GormStockMovementRepository implements inventory.StockMovementRepository
// using GORM. Movements are append-only.
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// Save persists a movement record
func (r *GormStockMovementRepository) Save(ctx context.Context, movement *inventory.StockMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

// FindByStockItem finds movements for a stock item
func (r *GormStockMovementRepository) FindByStockItem(ctx context.Context, stockItemID uuid.UUID, filter shared.Filter) ([]inventory.StockMovement, error) {
	var movements []inventory.StockMovement
	query := applyFilter(r.db.WithContext(ctx).Where("stock_item_id = ?", stockItemID), filter)
	if err := query.Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// FindByPeriod finds movements within a date range
func (r *GormStockMovementRepository) FindByPeriod(ctx context.Context, from, to time.Time, filter shared.Filter) ([]inventory.StockMovement, error) {
	var movements []inventory.StockMovement
	query := applyFilter(
		r.db.WithContext(ctx).Where("movement_date >= ? AND movement_date <= ?", from, to),
		filter,
	)
	if err := query.Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// Ensure GormStockMovementRepository implements inventory.StockMovementRepository
var _ inventory.StockMovementRepository = (*GormStockMovementRepository)(nil)
