package partner

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mecanica/backend/internal/domain/partner"
	"github.com/mecanica/backend/internal/domain/shared"
)

// VehicleService handles vehicle registration and lookups
type VehicleService struct {
	vehicleRepo partner.VehicleRepository
}

// NewVehicleService creates a new VehicleService
func NewVehicleService(vehicleRepo partner.VehicleRepository) *VehicleService {
	return &VehicleService{vehicleRepo: vehicleRepo}
}

// Create registers a new vehicle
func (s *VehicleService) Create(ctx context.Context, req CreateVehicleRequest) (*VehicleResponse, error) {
	vehicle, err := partner.NewVehicle(req.ClientID, req.Plate, req.Brand, req.Model, req.Year)
	if err != nil {
		return nil, err
	}

	if err := s.vehicleRepo.Save(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("saving vehicle: %w", err)
	}

	resp := ToVehicleResponse(vehicle)
	return &resp, nil
}

// GetByID finds a vehicle by ID
func (s *VehicleService) GetByID(ctx context.Context, id uuid.UUID) (*VehicleResponse, error) {
	vehicle, err := s.vehicleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, &shared.NotFoundError{Kind: "vehicle", ID: id}
		}
		return nil, fmt.Errorf("looking up vehicle %s: %w", id, err)
	}

	resp := ToVehicleResponse(vehicle)
	return &resp, nil
}

// ListByClient returns a client's vehicles
func (s *VehicleService) ListByClient(ctx context.Context, clientID uuid.UUID) ([]VehicleResponse, error) {
	vehicles, err := s.vehicleRepo.FindByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	responses := make([]VehicleResponse, len(vehicles))
	for i := range vehicles {
		responses[i] = ToVehicleResponse(&vehicles[i])
	}
	return responses, nil
}
