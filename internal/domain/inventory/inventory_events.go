package inventory

import (
	"github.com/google/uuid"

	"github.com/mecanica/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeStockItem = "StockItem"

// Event type constants
const (
	EventTypeStockIncreased    = "StockIncreased"
	EventTypeStockDecreased    = "StockDecreased"
	EventTypeStockAdjusted     = "StockAdjusted"
	EventTypeStockBelowMinimum = "StockBelowMinimum"
)

// StockIncreasedEvent is raised when stock is added
type StockIncreasedEvent struct {
	shared.BaseDomainEvent
	StockItemID uuid.UUID `json:"stock_item_id"`
	PartCode    string    `json:"part_code"`
	Quantity    int       `json:"quantity"`
	NewQuantity int       `json:"new_quantity"`
	Reason      string    `json:"reason,omitempty"`
}

// NewStockIncreasedEvent creates a new StockIncreasedEvent
func NewStockIncreasedEvent(i *StockItem, quantity int, reason string) *StockIncreasedEvent {
	return &StockIncreasedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockIncreased, AggregateTypeStockItem, i.ID),
		StockItemID:     i.ID,
		PartCode:        i.PartCode,
		Quantity:        quantity,
		NewQuantity:     i.CurrentQuantity,
		Reason:          reason,
	}
}

// EventType returns the event type name
func (e *StockIncreasedEvent) EventType() string {
	return EventTypeStockIncreased
}

// StockDecreasedEvent is raised when stock is consumed
type StockDecreasedEvent struct {
	shared.BaseDomainEvent
	StockItemID uuid.UUID `json:"stock_item_id"`
	PartCode    string    `json:"part_code"`
	Quantity    int       `json:"quantity"`
	NewQuantity int       `json:"new_quantity"`
	Reason      string    `json:"reason,omitempty"`
}

// NewStockDecreasedEvent creates a new StockDecreasedEvent
func NewStockDecreasedEvent(i *StockItem, quantity int, reason string) *StockDecreasedEvent {
	return &StockDecreasedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockDecreased, AggregateTypeStockItem, i.ID),
		StockItemID:     i.ID,
		PartCode:        i.PartCode,
		Quantity:        quantity,
		NewQuantity:     i.CurrentQuantity,
		Reason:          reason,
	}
}

// EventType returns the event type name
func (e *StockDecreasedEvent) EventType() string {
	return EventTypeStockDecreased
}

// StockAdjustedEvent is raised when stock is corrected to a counted quantity
type StockAdjustedEvent struct {
	shared.BaseDomainEvent
	StockItemID uuid.UUID `json:"stock_item_id"`
	PartCode    string    `json:"part_code"`
	Delta       int       `json:"delta"`
	NewQuantity int       `json:"new_quantity"`
	Reason      string    `json:"reason,omitempty"`
}

// NewStockAdjustedEvent creates a new StockAdjustedEvent
func NewStockAdjustedEvent(i *StockItem, delta int, reason string) *StockAdjustedEvent {
	return &StockAdjustedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockAdjusted, AggregateTypeStockItem, i.ID),
		StockItemID:     i.ID,
		PartCode:        i.PartCode,
		Delta:           delta,
		NewQuantity:     i.CurrentQuantity,
		Reason:          reason,
	}
}

// EventType returns the event type name
func (e *StockAdjustedEvent) EventType() string {
	return EventTypeStockAdjusted
}

// StockBelowMinimumEvent is raised when a movement takes the quantity under
// the item's alert threshold
type StockBelowMinimumEvent struct {
	shared.BaseDomainEvent
	StockItemID     uuid.UUID `json:"stock_item_id"`
	PartCode        string    `json:"part_code"`
	Name            string    `json:"name"`
	CurrentQuantity int       `json:"current_quantity"`
	MinimumQuantity int       `json:"minimum_quantity"`
}

// NewStockBelowMinimumEvent creates a new StockBelowMinimumEvent
func NewStockBelowMinimumEvent(i *StockItem) *StockBelowMinimumEvent {
	return &StockBelowMinimumEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockBelowMinimum, AggregateTypeStockItem, i.ID),
		StockItemID:     i.ID,
		PartCode:        i.PartCode,
		Name:            i.Name,
		CurrentQuantity: i.CurrentQuantity,
		MinimumQuantity: i.MinimumQuantity,
	}
}

// EventType returns the event type name
func (e *StockBelowMinimumEvent) EventType() string {
	return EventTypeStockBelowMinimum
}
