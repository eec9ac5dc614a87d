package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mecanica/backend/internal/domain/shared"
	"github.com/mecanica/backend/internal/domain/workorder"
)

// GormServiceOrderRepository implements workorder.Repository using GORM
type GormServiceOrderRepository struct {
	db *gorm.DB
}

// NewGormServiceOrderRepository creates a new GormServiceOrderRepository
func NewGormServiceOrderRepository(db *gorm.DB) *GormServiceOrderRepository {
	return &GormServiceOrderRepository{db: db}
}

// FindByID finds a service order by ID
func (r *GormServiceOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*workorder.ServiceOrder, error) {
	var order workorder.ServiceOrder
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByClient finds service orders for a client
func (r *GormServiceOrderRepository) FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]workorder.ServiceOrder, error) {
	var orders []workorder.ServiceOrder
	query := applyFilter(r.db.WithContext(ctx).Where("client_id = ?", clientID), filter)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByStatus finds service orders by status
func (r *GormServiceOrderRepository) FindByStatus(ctx context.Context, status workorder.OrderStatus, filter shared.Filter) ([]workorder.ServiceOrder, error) {
	var orders []workorder.ServiceOrder
	query := applyFilter(r.db.WithContext(ctx).Where("status = ?", status), filter)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates a service order
func (r *GormServiceOrderRepository) Save(ctx context.Context, order *workorder.ServiceOrder) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(order).Error
}

// Delete removes a service order
func (r *GormServiceOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&workorder.ServiceOrder{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormServiceOrderRepository implements workorder.Repository
var _ workorder.Repository = (*GormServiceOrderRepository)(nil)
