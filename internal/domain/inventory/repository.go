package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mecanica/backend/internal/domain/shared"
)

// StockItemRepository defines the interface for stock item persistence
type StockItemRepository interface {
	// FindByID finds a stock item by ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockItem, error)

	// FindByPartCode finds a stock item by part code
	FindByPartCode(ctx context.Context, partCode string) (*StockItem, error)

	// FindBelowMinimum finds stock items under their alert threshold
	FindBelowMinimum(ctx context.Context, filter shared.Filter) ([]StockItem, error)

	// FindAll finds stock items with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]StockItem, error)

	// Save creates or updates a stock item
	Save(ctx context.Context, item *StockItem) error
}

// StockMovementRepository defines the interface for movement audit persistence.
// Movements are append-only; there is no update or delete.
type StockMovementRepository interface {
	// Save persists a movement record
	Save(ctx context.Context, movement *StockMovement) error

	// FindByStockItem finds movements for a stock item
	FindByStockItem(ctx context.Context, stockItemID uuid.UUID, filter shared.Filter) ([]StockMovement, error)

	// FindByPeriod finds movements within a date range
	FindByPeriod(ctx context.Context, from, to time.Time, filter shared.Filter) ([]StockMovement, error)
}
