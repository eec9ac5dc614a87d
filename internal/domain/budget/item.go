package budget

import (
	"time"

	"github.com/google/uuid"

	"github.com/mecanica/backend/internal/domain/shared"
	"github.com/mecanica/backend/internal/domain/shared/valueobject"
)

// ItemKind distinguishes stock-consuming lines from labor lines
type ItemKind string

const (
	ItemKindStockItem ItemKind = "STOCK_ITEM"
	ItemKindLabor     ItemKind = "LABOR"
)

// IsValid checks if the kind is a valid ItemKind
func (k ItemKind) IsValid() bool {
	return k == ItemKindStockItem || k == ItemKindLabor
}

// Item represents a line item in a budget
type Item struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	BudgetID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind        ItemKind  `gorm:"type:varchar(20);not null"`
	StockItemID *uuid.UUID
	Description string            `gorm:"type:varchar(200);not null"`
	Quantity    int               `gorm:"not null"`
	UnitPrice   valueobject.Money `gorm:"type:bigint;not null"`
	Amount      valueobject.Money `gorm:"type:bigint;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "budget_items"
}

// NewItem creates a new budget line item.
// STOCK_ITEM lines must reference a stock item; LABOR lines must not.
func NewItem(budgetID uuid.UUID, kind ItemKind, stockItemID *uuid.UUID, description string, quantity int, unitPrice valueobject.Money) (*Item, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_ITEM_KIND", "Item kind must be STOCK_ITEM or LABOR")
	}
	if kind == ItemKindStockItem && (stockItemID == nil || *stockItemID == uuid.Nil) {
		return nil, shared.NewDomainError("INVALID_STOCK_ITEM", "Stock item ID is required for STOCK_ITEM lines")
	}
	if kind == ItemKindLabor && stockItemID != nil {
		return nil, shared.NewDomainError("INVALID_STOCK_ITEM", "Labor lines cannot reference a stock item")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if len(description) > 200 {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 200 characters")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	return &Item{
		ID:          uuid.New(),
		BudgetID:    budgetID,
		Kind:        kind,
		StockItemID: stockItemID,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Amount:      unitPrice.MulInt(int64(quantity)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
