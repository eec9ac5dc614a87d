package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mecanica/backend/internal/domain/budget"
	"github.com/mecanica/backend/internal/domain/shared"
)

// GormBudgetRepository implements budget.Repository using GORM
type GormBudgetRepository struct {
	db *gorm.DB
}

// NewGormBudgetRepository creates a new GormBudgetRepository
func NewGormBudgetRepository(db *gorm.DB) *GormBudgetRepository {
	return &GormBudgetRepository{db: db}
}

// FindByID finds a budget by ID without loading line items
func (r *GormBudgetRepository) FindByID(ctx context.Context, id uuid.UUID) (*budget.Budget, error) {
	var b budget.Budget
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// FindByIDWithItems finds a budget by ID with its line items loaded
func (r *GormBudgetRepository) FindByIDWithItems(ctx context.Context, id uuid.UUID) (*budget.Budget, error) {
	var b budget.Budget
	if err := r.db.WithContext(ctx).Preload("Items").First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// FindByServiceOrderID finds the budget linked to a service order
func (r *GormBudgetRepository) FindByServiceOrderID(ctx context.Context, serviceOrderID uuid.UUID) (*budget.Budget, error) {
	var b budget.Budget
	if err := r.db.WithContext(ctx).Preload("Items").
		First(&b, "service_order_id = ?", serviceOrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// FindByStatus finds budgets by status
func (r *GormBudgetRepository) FindByStatus(ctx context.Context, status budget.Status, filter shared.Filter) ([]budget.Budget, error) {
	var budgets []budget.Budget
	query := applyFilter(r.db.WithContext(ctx).Where("status = ?", status), filter)
	if err := query.Find(&budgets).Error; err != nil {
		return nil, err
	}
	return budgets, nil
}

// FindExpiredCandidates finds non-terminal budgets whose validity period has
// elapsed. The interval arithmetic runs in the database so the sweep works on
// arbitrarily large backlogs.
func (r *GormBudgetRepository) FindExpiredCandidates(ctx context.Context, limit int) ([]budget.Budget, error) {
	var budgets []budget.Budget
	err := r.db.WithContext(ctx).
		Where("status <> ?", budget.StatusExpired).
		Where("generation_date + make_interval(days => validity_period_days) < NOW()").
		Limit(limit).
		Find(&budgets).Error
	if err != nil {
		return nil, err
	}
	return budgets, nil
}

// Save creates or updates a budget and its items
func (r *GormBudgetRepository) Save(ctx context.Context, b *budget.Budget) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(b).Error; err != nil {
			return err
		}

		// Line items only change while the budget is GENERATED, so a full
		// replace keeps removed lines from lingering
		if err := tx.Where("budget_id = ?", b.ID).Delete(&budget.Item{}).Error; err != nil {
			return err
		}
		if len(b.Items) == 0 {
			return nil
		}
		return tx.Create(&b.Items).Error
	})
}

// Delete removes a budget and its items
func (r *GormBudgetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("budget_id = ?", id).Delete(&budget.Item{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&budget.Budget{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Ensure GormBudgetRepository implements budget.Repository
var _ budget.Repository = (*GormBudgetRepository)(nil)
