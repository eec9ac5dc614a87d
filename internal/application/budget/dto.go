package budget

import (
	"time"

	"github.com/google/uuid"

	"github.com/mecanica/backend/internal/domain/budget"
)

// BudgetResponse is the outward representation of a budget
type BudgetResponse struct {
	ID                 uuid.UUID             `json:"id"`
	Status             budget.Status         `json:"status"`
	TotalAmountCents   int64                 `json:"total_amount_cents"`
	ValidityPeriodDays int                   `json:"validity_period_days"`
	GenerationDate     time.Time             `json:"generation_date"`
	ExpiresAt          time.Time             `json:"expires_at"`
	SentDate           *time.Time            `json:"sent_date,omitempty"`
	ApprovalDate       *time.Time            `json:"approval_date,omitempty"`
	RejectionDate      *time.Time            `json:"rejection_date,omitempty"`
	DeliveryMethod     budget.DeliveryMethod `json:"delivery_method"`
	Notes              string                `json:"notes,omitempty"`
	ServiceOrderID     uuid.UUID             `json:"service_order_id"`
	ClientID           uuid.UUID             `json:"client_id"`
	Items              []BudgetItemResponse  `json:"items,omitempty"`
}

// BudgetItemResponse is the outward representation of a budget line item
type BudgetItemResponse struct {
	ID             uuid.UUID       `json:"id"`
	Kind           budget.ItemKind `json:"kind"`
	StockItemID    *uuid.UUID      `json:"stock_item_id,omitempty"`
	Description    string          `json:"description"`
	Quantity       int             `json:"quantity"`
	UnitPriceCents int64           `json:"unit_price_cents"`
	AmountCents    int64           `json:"amount_cents"`
}

// ToBudgetResponse converts a budget aggregate to its response
func ToBudgetResponse(b *budget.Budget) BudgetResponse {
	items := make([]BudgetItemResponse, len(b.Items))
	for i := range b.Items {
		items[i] = ToBudgetItemResponse(&b.Items[i])
	}
	return BudgetResponse{
		ID:                 b.ID,
		Status:             b.Status,
		TotalAmountCents:   b.TotalAmount.Cents(),
		ValidityPeriodDays: b.ValidityPeriodDays,
		GenerationDate:     b.GenerationDate,
		ExpiresAt:          b.ExpiresAt(),
		SentDate:           b.SentDate,
		ApprovalDate:       b.ApprovalDate,
		RejectionDate:      b.RejectionDate,
		DeliveryMethod:     b.DeliveryMethod,
		Notes:              b.Notes,
		ServiceOrderID:     b.ServiceOrderID,
		ClientID:           b.ClientID,
		Items:              items,
	}
}

// ToBudgetItemResponse converts a budget line item to its response
func ToBudgetItemResponse(i *budget.Item) BudgetItemResponse {
	return BudgetItemResponse{
		ID:             i.ID,
		Kind:           i.Kind,
		StockItemID:    i.StockItemID,
		Description:    i.Description,
		Quantity:       i.Quantity,
		UnitPriceCents: i.UnitPrice.Cents(),
		AmountCents:    i.Amount.Cents(),
	}
}

// GenerateBudgetRequest is the input for generating a budget
type GenerateBudgetRequest struct {
	ServiceOrderID     uuid.UUID             `json:"service_order_id" binding:"required"`
	ValidityPeriodDays int                   `json:"validity_period_days" binding:"required,gt=0"`
	DeliveryMethod     budget.DeliveryMethod `json:"delivery_method"`
	Notes              string                `json:"notes" binding:"omitempty,max=500"`
	Items              []BudgetItemRequest   `json:"items" binding:"required,min=1,dive"`
}

// BudgetItemRequest is one line item in a budget generation request
type BudgetItemRequest struct {
	Kind           budget.ItemKind `json:"kind" binding:"required,oneof=STOCK_ITEM LABOR"`
	StockItemID    *uuid.UUID      `json:"stock_item_id,omitempty"`
	Description    string          `json:"description" binding:"required,max=200"`
	Quantity       int             `json:"quantity" binding:"required,gt=0"`
	UnitPriceCents int64           `json:"unit_price_cents" binding:"min=0"`
}

// ApproveBudgetRequest is the input for approving a budget
type ApproveBudgetRequest struct {
	ApprovedBy uuid.UUID `json:"approved_by" binding:"required"`
}

// RejectBudgetRequest is the input for rejecting a budget
type RejectBudgetRequest struct {
	RejectedBy uuid.UUID `json:"rejected_by" binding:"required"`
	Reason     string    `json:"reason" binding:"omitempty,max=500"`
}
