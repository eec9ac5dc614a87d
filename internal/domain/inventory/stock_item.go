package inventory

import (
	"strings"
	"time"

	"github.com/mecanica/backend/internal/domain/shared"
	"github.com/mecanica/backend/internal/domain/shared/valueobject"
)

// StockItem represents a part held in the shop's inventory.
// It is the aggregate root for stock operations; every quantity change goes
// through a guarded operation that produces an immutable StockMovement.
type StockItem struct {
	shared.BaseAggregateRoot
	PartCode        string            `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name            string            `gorm:"type:varchar(200);not null"`
	CurrentQuantity int               `gorm:"not null;default:0"`
	MinimumQuantity int               `gorm:"not null;default:0"`
	UnitCost        valueobject.Money `gorm:"type:bigint;not null"`
}

// TableName returns the table name for GORM
func (StockItem) TableName() string {
	return "stock_items"
}

// NewStockItem creates a new stock item with zero quantity
func NewStockItem(partCode, name string, minimumQuantity int, unitCost valueobject.Money) (*StockItem, error) {
	partCode = strings.ToUpper(strings.TrimSpace(partCode))
	if partCode == "" {
		return nil, shared.NewDomainError("INVALID_PART_CODE", "Part code cannot be empty")
	}
	if len(partCode) > 50 {
		return nil, shared.NewDomainError("INVALID_PART_CODE", "Part code cannot exceed 50 characters")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if minimumQuantity < 0 {
		return nil, shared.NewDomainError("INVALID_MINIMUM", "Minimum quantity cannot be negative")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	return &StockItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PartCode:          partCode,
		Name:              name,
		CurrentQuantity:   0,
		MinimumQuantity:   minimumQuantity,
		UnitCost:          unitCost,
	}, nil
}

// IsBelowMinimum reports whether the current quantity is under the alert threshold
func (i *StockItem) IsBelowMinimum() bool {
	return i.CurrentQuantity < i.MinimumQuantity
}

// Increase adds quantity to stock and records an IN movement
func (i *StockItem) Increase(quantity int, movementDate time.Time, reason, notes string) (*StockMovement, error) {
	movement, err := NewStockMovement(i.ID, MovementTypeIn, quantity, movementDate, reason, notes)
	if err != nil {
		return nil, err
	}

	i.CurrentQuantity += quantity
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	i.AddDomainEvent(NewStockIncreasedEvent(i, quantity, reason))
	return movement, nil
}

// Decrease removes quantity from stock and records an OUT movement.
// Fails with InsufficientStockError when the requested quantity exceeds the
// current stock. Legality is checked at creation time only.
func (i *StockItem) Decrease(quantity int, movementDate time.Time, reason, notes string) (*StockMovement, error) {
	movement, err := NewStockMovement(i.ID, MovementTypeOut, quantity, movementDate, reason, notes)
	if err != nil {
		return nil, err
	}
	if quantity > i.CurrentQuantity {
		return nil, &shared.InsufficientStockError{
			StockItemID: i.ID,
			Requested:   quantity,
			Available:   i.CurrentQuantity,
		}
	}

	wasBelowMinimum := i.IsBelowMinimum()
	i.CurrentQuantity -= quantity
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	i.AddDomainEvent(NewStockDecreasedEvent(i, quantity, reason))
	if !wasBelowMinimum && i.IsBelowMinimum() {
		i.AddDomainEvent(NewStockBelowMinimumEvent(i))
	}
	return movement, nil
}

// AdjustTo sets the stock to a target quantity and records an ADJUSTMENT
// movement carrying the signed delta. A target below zero fails with
// InvalidAdjustmentError; adjusting down to exactly zero is accepted.
func (i *StockItem) AdjustTo(targetQuantity int, movementDate time.Time, reason, notes string) (*StockMovement, error) {
	delta := targetQuantity - i.CurrentQuantity
	resulting := i.CurrentQuantity + delta
	if resulting < 0 {
		return nil, &shared.InvalidAdjustmentError{
			StockItemID:    i.ID,
			ResultingStock: resulting,
		}
	}

	movement, err := newAdjustmentMovement(i.ID, delta, movementDate, reason, notes)
	if err != nil {
		return nil, err
	}

	wasBelowMinimum := i.IsBelowMinimum()
	i.CurrentQuantity = resulting
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	i.AddDomainEvent(NewStockAdjustedEvent(i, delta, reason))
	if !wasBelowMinimum && i.IsBelowMinimum() {
		i.AddDomainEvent(NewStockBelowMinimumEvent(i))
	}
	return movement, nil
}

// SetMinimumQuantity updates the alert threshold
func (i *StockItem) SetMinimumQuantity(minimum int) error {
	if minimum < 0 {
		return shared.NewDomainError("INVALID_MINIMUM", "Minimum quantity cannot be negative")
	}
	i.MinimumQuantity = minimum
	i.UpdatedAt = time.Now()
	return nil
}
