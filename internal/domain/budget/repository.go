package budget

import (
	"context"

	"github.com/google/uuid"

	"github.com/mecanica/backend/internal/domain/shared"
)

// Repository defines the interface for budget persistence
type Repository interface {
	// FindByID finds a budget by ID without loading line items
	FindByID(ctx context.Context, id uuid.UUID) (*Budget, error)

	// FindByIDWithItems finds a budget by ID with its line items loaded
	FindByIDWithItems(ctx context.Context, id uuid.UUID) (*Budget, error)

	// FindByServiceOrderID finds the budget linked to a service order,
	// with its line items loaded
	FindByServiceOrderID(ctx context.Context, serviceOrderID uuid.UUID) (*Budget, error)

	// FindByStatus finds budgets by status
	FindByStatus(ctx context.Context, status Status, filter shared.Filter) ([]Budget, error)

	// FindExpiredCandidates finds non-terminal budgets whose validity period
	// has elapsed and that have not yet been marked EXPIRED
	FindExpiredCandidates(ctx context.Context, limit int) ([]Budget, error)

	// Save creates or updates a budget and its items
	Save(ctx context.Context, b *Budget) error

	// Delete removes a budget
	Delete(ctx context.Context, id uuid.UUID) error
}
