package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mecanica/backend/internal/domain/execution"
	"github.com/mecanica/backend/internal/domain/shared"
)

// GormServiceExecutionRepository implements execution.Repository using GORM
type GormServiceExecutionRepository struct {
	db *gorm.DB
}

// NewGormServiceExecutionRepository creates a new GormServiceExecutionRepository
func NewGormServiceExecutionRepository(db *gorm.DB) *GormServiceExecutionRepository {
	return &GormServiceExecutionRepository{db: db}
}

// FindByID finds an execution by ID
func (r *GormServiceExecutionRepository) FindByID(ctx context.Context, id uuid.UUID) (*execution.ServiceExecution, error) {
	var e execution.ServiceExecution
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// FindByServiceOrderID finds the execution for a service order
func (r *GormServiceExecutionRepository) FindByServiceOrderID(ctx context.Context, serviceOrderID uuid.UUID) (*execution.ServiceExecution, error) {
	var e execution.ServiceExecution
	if err := r.db.WithContext(ctx).First(&e, "service_order_id = ?", serviceOrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// FindByMechanic finds executions assigned to a mechanic
func (r *GormServiceExecutionRepository) FindByMechanic(ctx context.Context, mechanicID uuid.UUID, filter shared.Filter) ([]execution.ServiceExecution, error) {
	var executions []execution.ServiceExecution
	query := applyFilter(r.db.WithContext(ctx).Where("mechanic_id = ?", mechanicID), filter)
	if err := query.Find(&executions).Error; err != nil {
		return nil, err
	}
	return executions, nil
}

// Save creates or updates an execution
func (r *GormServiceExecutionRepository) Save(ctx context.Context, e *execution.ServiceExecution) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(e).Error
}

// Ensure GormServiceExecutionRepository implements execution.Repository
var _ execution.Repository = (*GormServiceExecutionRepository)(nil)
