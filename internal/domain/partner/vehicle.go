package partner

import (
	"strings"

	"github.com/google/uuid"

	"github.com/mecanica/backend/internal/domain/shared"
)

// Vehicle represents a client's vehicle
type Vehicle struct {
	shared.BaseAggregateRoot
	ClientID uuid.UUID `gorm:"type:uuid;not null;index"`
	Plate    string    `gorm:"type:varchar(10);not null;uniqueIndex"`
	Brand    string    `gorm:"type:varchar(50);not null"`
	Model    string    `gorm:"type:varchar(50);not null"`
	Year     int       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Vehicle) TableName() string {
	return "vehicles"
}

// NewVehicle creates a new vehicle for a client
func NewVehicle(clientID uuid.UUID, plate, brand, model string, year int) (*Vehicle, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	plate = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(plate), " ", ""))
	if plate == "" {
		return nil, shared.NewDomainError("INVALID_PLATE", "Vehicle plate cannot be empty")
	}
	if brand == "" || model == "" {
		return nil, shared.NewDomainError("INVALID_VEHICLE", "Vehicle brand and model are required")
	}
	if year < 1900 {
		return nil, shared.NewDomainError("INVALID_YEAR", "Vehicle year is invalid")
	}

	return &Vehicle{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ClientID:          clientID,
		Plate:             plate,
		Brand:             brand,
		Model:             model,
		Year:              year,
	}, nil
}
