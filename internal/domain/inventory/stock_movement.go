package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/mecanica/backend/internal/domain/shared"
)

// MovementType classifies a stock movement
type MovementType string

const (
	MovementTypeIn         MovementType = "IN"
	MovementTypeOut        MovementType = "OUT"
	MovementTypeAdjustment MovementType = "ADJUSTMENT"
)

// IsValid checks if the type is a valid MovementType
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeAdjustment:
		return true
	}
	return false
}

const (
	maxReasonLength = 200
	maxNotesLength  = 500
)

// StockMovement is an immutable audit record of an inventory quantity change.
// Legality is checked against the stock item at creation time and never
// re-validated afterwards. Quantity is positive for IN/OUT; for ADJUSTMENT it
// holds the signed delta derived from the target quantity.
type StockMovement struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey"`
	StockItemID  uuid.UUID    `gorm:"type:uuid;not null;index"`
	Type         MovementType `gorm:"type:varchar(20);not null"`
	Quantity     int          `gorm:"not null"`
	MovementDate time.Time    `gorm:"not null;index"`
	Reason       string       `gorm:"type:varchar(200)"`
	Notes        string       `gorm:"type:varchar(500)"`
	CreatedAt    time.Time
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement creates an IN or OUT movement. ADJUSTMENT movements are
// created through StockItem.AdjustTo, which derives the signed delta.
func NewStockMovement(stockItemID uuid.UUID, movementType MovementType, quantity int, movementDate time.Time, reason, notes string) (*StockMovement, error) {
	if stockItemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STOCK_ITEM", "Stock item ID cannot be empty")
	}
	if movementType != MovementTypeIn && movementType != MovementTypeOut {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Movement type must be IN or OUT")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be a positive integer for IN/OUT movements")
	}
	if err := validateMovementFields(movementDate, reason, notes); err != nil {
		return nil, err
	}

	return &StockMovement{
		ID:           uuid.New(),
		StockItemID:  stockItemID,
		Type:         movementType,
		Quantity:     quantity,
		MovementDate: movementDate,
		Reason:       reason,
		Notes:        notes,
		CreatedAt:    time.Now(),
	}, nil
}

func newAdjustmentMovement(stockItemID uuid.UUID, delta int, movementDate time.Time, reason, notes string) (*StockMovement, error) {
	if stockItemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STOCK_ITEM", "Stock item ID cannot be empty")
	}
	if err := validateMovementFields(movementDate, reason, notes); err != nil {
		return nil, err
	}

	return &StockMovement{
		ID:           uuid.New(),
		StockItemID:  stockItemID,
		Type:         MovementTypeAdjustment,
		Quantity:     delta,
		MovementDate: movementDate,
		Reason:       reason,
		Notes:        notes,
		CreatedAt:    time.Now(),
	}, nil
}

// validateMovementFields enforces the creation-time legality rules shared by
// all movement types: date within [now - 1 year, now + 1 day] and bounded
// free-text fields.
func validateMovementFields(movementDate time.Time, reason, notes string) error {
	now := time.Now()
	if movementDate.Before(now.AddDate(-1, 0, 0)) {
		return shared.NewDomainError("INVALID_MOVEMENT_DATE", "Movement date cannot be more than one year in the past")
	}
	if movementDate.After(now.AddDate(0, 0, 1)) {
		return shared.NewDomainError("INVALID_MOVEMENT_DATE", "Movement date cannot be more than one day in the future")
	}
	if len(reason) > maxReasonLength {
		return shared.NewDomainError("INVALID_REASON", "Reason cannot exceed 200 characters")
	}
	if len(notes) > maxNotesLength {
		return shared.NewDomainError("INVALID_NOTES", "Notes cannot exceed 500 characters")
	}
	return nil
}
