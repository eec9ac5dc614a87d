package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/mecanica/backend/internal/domain/inventory"
)

// StockItemResponse is the outward representation of a stock item
type StockItemResponse struct {
	ID              uuid.UUID `json:"id"`
	PartCode        string    `json:"part_code"`
	Name            string    `json:"name"`
	CurrentQuantity int       `json:"current_quantity"`
	MinimumQuantity int       `json:"minimum_quantity"`
	UnitCostCents   int64     `json:"unit_cost_cents"`
	BelowMinimum    bool      `json:"below_minimum"`
}

// ToStockItemResponse converts a stock item aggregate to its response
func ToStockItemResponse(i *inventory.StockItem) StockItemResponse {
	return StockItemResponse{
		ID:              i.ID,
		PartCode:        i.PartCode,
		Name:            i.Name,
		CurrentQuantity: i.CurrentQuantity,
		MinimumQuantity: i.MinimumQuantity,
		UnitCostCents:   i.UnitCost.Cents(),
		BelowMinimum:    i.IsBelowMinimum(),
	}
}

// StockMovementResponse is the outward representation of a movement record
type StockMovementResponse struct {
	ID           uuid.UUID              `json:"id"`
	StockItemID  uuid.UUID              `json:"stock_item_id"`
	Type         inventory.MovementType `json:"type"`
	Quantity     int                    `json:"quantity"`
	MovementDate time.Time              `json:"movement_date"`
	Reason       string                 `json:"reason,omitempty"`
	Notes        string                 `json:"notes,omitempty"`
}

// ToStockMovementResponse converts a movement record to its response
func ToStockMovementResponse(m *inventory.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		ID:           m.ID,
		StockItemID:  m.StockItemID,
		Type:         m.Type,
		Quantity:     m.Quantity,
		MovementDate: m.MovementDate,
		Reason:       m.Reason,
		Notes:        m.Notes,
	}
}

// CreateStockItemRequest is the input for registering a stock item
type CreateStockItemRequest struct {
	PartCode        string `json:"part_code" binding:"required,max=50"`
	Name            string `json:"name" binding:"required,max=200"`
	MinimumQuantity int    `json:"minimum_quantity" binding:"min=0"`
	UnitCostCents   int64  `json:"unit_cost_cents" binding:"min=0"`
}

// DecreaseStockRequest is the input for an outbound movement
type DecreaseStockRequest struct {
	StockItemID  uuid.UUID `json:"stock_item_id" binding:"required"`
	Quantity     int       `json:"quantity" binding:"required,gt=0"`
	MovementDate time.Time `json:"movement_date"`
	Reason       string    `json:"reason" binding:"omitempty,max=200"`
	Notes        string    `json:"notes" binding:"omitempty,max=500"`
}

// IncreaseStockRequest is the input for an inbound movement
type IncreaseStockRequest struct {
	StockItemID  uuid.UUID `json:"stock_item_id" binding:"required"`
	Quantity     int       `json:"quantity" binding:"required,gt=0"`
	MovementDate time.Time `json:"movement_date"`
	Reason       string    `json:"reason" binding:"omitempty,max=200"`
	Notes        string    `json:"notes" binding:"omitempty,max=500"`
}

// AdjustStockRequest is the input for a counted-quantity correction
type AdjustStockRequest struct {
	StockItemID    uuid.UUID `json:"stock_item_id" binding:"required"`
	TargetQuantity int       `json:"target_quantity" binding:"min=0"`
	MovementDate   time.Time `json:"movement_date"`
	Reason         string    `json:"reason" binding:"omitempty,max=200"`
	Notes          string    `json:"notes" binding:"omitempty,max=500"`
}
