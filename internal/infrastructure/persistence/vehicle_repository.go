package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mecanica/backend/internal/domain/partner"
	"github.com/mecanica/backend/internal/domain/shared"
)

// GormVehicleRepository implements partner.VehicleRepository using GORM
type GormVehicleRepository struct {
	db *gorm.DB
}

// NewGormVehicleRepository creates a new GormVehicleRepository
func NewGormVehicleRepository(db *gorm.DB) *GormVehicleRepository {
	return &GormVehicleRepository{db: db}
}

// FindByID finds a vehicle by ID
func (r *GormVehicleRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Vehicle, error) {
	var vehicle partner.Vehicle
	if err := r.db.WithContext(ctx).First(&vehicle, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

// FindByPlate finds a vehicle by license plate
func (r *GormVehicleRepository) FindByPlate(ctx context.Context, plate string) (*partner.Vehicle, error) {
	var vehicle partner.Vehicle
	if err := r.db.WithContext(ctx).First(&vehicle, "plate = ?", strings.ToUpper(plate)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

// FindByClient finds a client's vehicles
func (r *GormVehicleRepository) FindByClient(ctx context.Context, clientID uuid.UUID) ([]partner.Vehicle, error) {
	var vehicles []partner.Vehicle
	if err := r.db.WithContext(ctx).Where("client_id = ?", clientID).
		Order("created_at DESC").Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

// Save creates or updates a vehicle
func (r *GormVehicleRepository) Save(ctx context.Context, vehicle *partner.Vehicle) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(vehicle).Error
}

// Ensure GormVehicleRepository implements partner.VehicleRepository
var _ partner.VehicleRepository = (*GormVehicleRepository)(nil)
