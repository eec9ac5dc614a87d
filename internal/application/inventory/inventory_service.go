package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mecanica/backend/internal/domain/inventory"
	"github.com/mecanica/backend/internal/domain/shared"
	"github.com/mecanica/backend/internal/domain/shared/valueobject"
)

// InventoryService handles stock operations. Every quantity change goes
// through the aggregate's guarded operation and leaves a movement record.
type InventoryService struct {
	itemRepo       inventory.StockItemRepository
	movementRepo   inventory.StockMovementRepository
	eventPublisher shared.EventPublisher
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(itemRepo inventory.StockItemRepository, movementRepo inventory.StockMovementRepository) *InventoryService {
	return &InventoryService{
		itemRepo:     itemRepo,
		movementRepo: movementRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *InventoryService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateStockItem registers a new stock item
func (s *InventoryService) CreateStockItem(ctx context.Context, req CreateStockItemRequest) (*StockItemResponse, error) {
	item, err := inventory.NewStockItem(req.PartCode, req.Name, req.MinimumQuantity, valueobject.NewMoneyBRL(req.UnitCostCents))
	if err != nil {
		return nil, err
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("saving stock item: %w", err)
	}

	resp := ToStockItemResponse(item)
	return &resp, nil
}

// GetByID finds a stock item by ID
func (s *InventoryService) GetByID(ctx context.Context, id uuid.UUID) (*StockItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, &shared.NotFoundError{Kind: "stock item", ID: id}
		}
		return nil, err
	}

	resp := ToStockItemResponse(item)
	return &resp, nil
}

// DecreaseStock removes quantity from stock, recording an OUT movement.
// The status write and the movement write are separate calls; the storage
// layer's per-row atomicity is the only isolation here.
func (s *InventoryService) DecreaseStock(ctx context.Context, req DecreaseStockRequest) (*StockMovementResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, req.StockItemID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, &shared.NotFoundError{Kind: "stock item", ID: req.StockItemID}
		}
		return nil, err
	}

	movement, err := item.Decrease(req.Quantity, movementDateOrNow(req.MovementDate), req.Reason, req.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("saving stock item: %w", err)
	}
	if err := s.movementRepo.Save(ctx, movement); err != nil {
		return nil, fmt.Errorf("saving stock movement: %w", err)
	}

	if err := s.publishEvents(ctx, item); err != nil {
		return nil, err
	}

	resp := ToStockMovementResponse(movement)
	return &resp, nil
}

// IncreaseStock adds quantity to stock, recording an IN movement
func (s *InventoryService) IncreaseStock(ctx context.Context, req IncreaseStockRequest) (*StockMovementResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, req.StockItemID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, &shared.NotFoundError{Kind: "stock item", ID: req.StockItemID}
		}
		return nil, err
	}

	movement, err := item.Increase(req.Quantity, movementDateOrNow(req.MovementDate), req.Reason, req.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("saving stock item: %w", err)
	}
	if err := s.movementRepo.Save(ctx, movement); err != nil {
		return nil, fmt.Errorf("saving stock movement: %w", err)
	}

	if err := s.publishEvents(ctx, item); err != nil {
		return nil, err
	}

	resp := ToStockMovementResponse(movement)
	return &resp, nil
}

// AdjustStock corrects the stock to a counted quantity, recording an
// ADJUSTMENT movement with the signed delta
func (s *InventoryService) AdjustStock(ctx context.Context, req AdjustStockRequest) (*StockMovementResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, req.StockItemID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, &shared.NotFoundError{Kind: "stock item", ID: req.StockItemID}
		}
		return nil, err
	}

	movement, err := item.AdjustTo(req.TargetQuantity, movementDateOrNow(req.MovementDate), req.Reason, req.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("saving stock item: %w", err)
	}
	if err := s.movementRepo.Save(ctx, movement); err != nil {
		return nil, fmt.Errorf("saving stock movement: %w", err)
	}

	if err := s.publishEvents(ctx, item); err != nil {
		return nil, err
	}

	resp := ToStockMovementResponse(movement)
	return &resp, nil
}

// List returns stock items with filtering
func (s *InventoryService) List(ctx context.Context, filter shared.Filter) ([]StockItemResponse, error) {
	items, err := s.itemRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]StockItemResponse, len(items))
	for i := range items {
		responses[i] = ToStockItemResponse(&items[i])
	}
	return responses, nil
}

// ListBelowMinimum returns stock items under their alert threshold
func (s *InventoryService) ListBelowMinimum(ctx context.Context, filter shared.Filter) ([]StockItemResponse, error) {
	items, err := s.itemRepo.FindBelowMinimum(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]StockItemResponse, len(items))
	for i := range items {
		responses[i] = ToStockItemResponse(&items[i])
	}
	return responses, nil
}

// ListMovements returns the movement history of a stock item
func (s *InventoryService) ListMovements(ctx context.Context, stockItemID uuid.UUID, filter shared.Filter) ([]StockMovementResponse, error) {
	movements, err := s.movementRepo.FindByStockItem(ctx, stockItemID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]StockMovementResponse, len(movements))
	for i := range movements {
		responses[i] = ToStockMovementResponse(&movements[i])
	}
	return responses, nil
}

func (s *InventoryService) publishEvents(ctx context.Context, item *inventory.StockItem) error {
	if s.eventPublisher == nil {
		return nil
	}
	events := item.GetDomainEvents()
	item.ClearDomainEvents()
	if len(events) == 0 {
		return nil
	}
	return s.eventPublisher.Publish(ctx, events...)
}

func movementDateOrNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}
