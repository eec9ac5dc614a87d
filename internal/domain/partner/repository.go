package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/mecanica/backend/internal/domain/shared"
)

// ClientRepository defines the interface for client persistence
type ClientRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)
	FindByDocument(ctx context.Context, document string) (*Client, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Client, error)
	Save(ctx context.Context, client *Client) error
}

// EmployeeRepository defines the interface for employee persistence
type EmployeeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Employee, error)
	Save(ctx context.Context, employee *Employee) error
}

// VehicleRepository defines the interface for vehicle persistence
type VehicleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Vehicle, error)
	FindByPlate(ctx context.Context, plate string) (*Vehicle, error)
	FindByClient(ctx context.Context, clientID uuid.UUID) ([]Vehicle, error)
	Save(ctx context.Context, vehicle *Vehicle) error
}
