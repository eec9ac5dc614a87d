package workorder

import (
	"context"

	"github.com/google/uuid"

	"github.com/mecanica/backend/internal/domain/shared"
)

// Repository defines the interface for service order persistence
type Repository interface {
	// FindByID finds a service order by ID
	FindByID(ctx context.Context, id uuid.UUID) (*ServiceOrder, error)

	// FindByClient finds service orders for a client
	FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]ServiceOrder, error)

	// FindByStatus finds service orders by status
	FindByStatus(ctx context.Context, status OrderStatus, filter shared.Filter) ([]ServiceOrder, error)

	// Save creates or updates a service order
	Save(ctx context.Context, order *ServiceOrder) error

	// Delete removes a service order
	Delete(ctx context.Context, id uuid.UUID) error
}
