package execution

import (
	"context"

	"github.com/google/uuid"

	"github.com/mecanica/backend/internal/domain/shared"
)

// Repository defines the interface for service execution persistence
type Repository interface {
	// FindByID finds an execution by ID
	FindByID(ctx context.Context, id uuid.UUID) (*ServiceExecution, error)

	// FindByServiceOrderID finds the execution for a service order
	FindByServiceOrderID(ctx context.Context, serviceOrderID uuid.UUID) (*ServiceExecution, error)

	// FindByMechanic finds executions assigned to a mechanic
	FindByMechanic(ctx context.Context, mechanicID uuid.UUID, filter shared.Filter) ([]ServiceExecution, error)

	// Save creates or updates an execution
	Save(ctx context.Context, e *ServiceExecution) error
}
