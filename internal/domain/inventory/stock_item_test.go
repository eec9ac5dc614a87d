package inventory

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mecanica/backend/internal/domain/shared"
	"github.com/mecanica/backend/internal/domain/shared/valueobject"
)

func createTestItem(t *testing.T, minimum int) *StockItem {
	item, err := NewStockItem("flt-001", "Oil filter", minimum, valueobject.NewMoneyBRL(2500))
	require.NoError(t, err)
	return item
}

func stockedItem(t *testing.T, quantity, minimum int) *StockItem {
	item := createTestItem(t, minimum)
	_, err := item.Increase(quantity, time.Now(), "initial stock", "")
	require.NoError(t, err)
	item.ClearDomainEvents()
	return item
}

// ============================================
// Stock Item Tests
// ============================================

func TestNewStockItem(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		item, err := NewStockItem("  flt-001 ", "Oil filter", 5, valueobject.NewMoneyBRL(2500))
		require.NoError(t, err)

		assert.Equal(t, "FLT-001", item.PartCode)
		assert.Equal(t, "Oil filter", item.Name)
		assert.Equal(t, 0, item.CurrentQuantity)
		assert.Equal(t, 5, item.MinimumQuantity)
	})

	t.Run("empty part code", func(t *testing.T) {
		_, err := NewStockItem("   ", "Oil filter", 0, valueobject.NewMoneyBRL(2500))
		assert.Error(t, err)
	})

	t.Run("part code too long", func(t *testing.T) {
		_, err := NewStockItem(strings.Repeat("A", 51), "Oil filter", 0, valueobject.NewMoneyBRL(2500))
		assert.Error(t, err)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := NewStockItem("FLT-001", "", 0, valueobject.NewMoneyBRL(2500))
		assert.Error(t, err)
	})

	t.Run("negative minimum", func(t *testing.T) {
		_, err := NewStockItem("FLT-001", "Oil filter", -1, valueobject.NewMoneyBRL(2500))
		assert.Error(t, err)
	})

	t.Run("negative cost", func(t *testing.T) {
		_, err := NewStockItem("FLT-001", "Oil filter", 0, valueobject.NewMoneyBRL(-1))
		assert.Error(t, err)
	})
}

func TestStockItem_Increase(t *testing.T) {
	item := createTestItem(t, 5)

	movement, err := item.Increase(10, time.Now(), "purchase", "supplier X")
	require.NoError(t, err)

	assert.Equal(t, 10, item.CurrentQuantity)
	assert.Equal(t, MovementTypeIn, movement.Type)
	assert.Equal(t, 10, movement.Quantity)
	assert.Equal(t, item.ID, movement.StockItemID)

	events := item.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeStockIncreased, events[0].EventType())
}

func TestStockItem_Decrease(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		item := stockedItem(t, 10, 2)

		movement, err := item.Decrease(4, time.Now(), "service order", "")
		require.NoError(t, err)

		assert.Equal(t, 6, item.CurrentQuantity)
		assert.Equal(t, MovementTypeOut, movement.Type)
		assert.Equal(t, 4, movement.Quantity)

		events := item.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeStockDecreased, events[0].EventType())
	})

	t.Run("insufficient stock", func(t *testing.T) {
		item := stockedItem(t, 3, 0)

		_, err := item.Decrease(5, time.Now(), "service order", "")
		var insufficient *shared.InsufficientStockError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, 5, insufficient.Requested)
		assert.Equal(t, 3, insufficient.Available)
		assert.Equal(t, 3, item.CurrentQuantity)
	})

	t.Run("to exactly zero", func(t *testing.T) {
		item := stockedItem(t, 3, 0)
		_, err := item.Decrease(3, time.Now(), "service order", "")
		require.NoError(t, err)
		assert.Equal(t, 0, item.CurrentQuantity)
	})

	t.Run("below minimum emits alert", func(t *testing.T) {
		item := stockedItem(t, 10, 5)

		_, err := item.Decrease(6, time.Now(), "service order", "")
		require.NoError(t, err)

		events := item.GetDomainEvents()
		require.Len(t, events, 2)
		assert.Equal(t, EventTypeStockDecreased, events[0].EventType())
		assert.Equal(t, EventTypeStockBelowMinimum, events[1].EventType())
	})

	t.Run("alert only on crossing", func(t *testing.T) {
		item := stockedItem(t, 4, 5) // already below minimum

		_, err := item.Decrease(1, time.Now(), "service order", "")
		require.NoError(t, err)

		events := item.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeStockDecreased, events[0].EventType())
	})

	t.Run("at minimum is not below", func(t *testing.T) {
		item := stockedItem(t, 10, 5)

		_, err := item.Decrease(5, time.Now(), "service order", "")
		require.NoError(t, err)
		assert.False(t, item.IsBelowMinimum())
		assert.Len(t, item.GetDomainEvents(), 1)
	})
}

func TestStockItem_AdjustTo(t *testing.T) {
	t.Run("upwards", func(t *testing.T) {
		item := stockedItem(t, 5, 0)

		movement, err := item.AdjustTo(12, time.Now(), "inventory count", "")
		require.NoError(t, err)

		assert.Equal(t, 12, item.CurrentQuantity)
		assert.Equal(t, MovementTypeAdjustment, movement.Type)
		assert.Equal(t, 7, movement.Quantity)
	})

	t.Run("downwards", func(t *testing.T) {
		item := stockedItem(t, 10, 0)

		movement, err := item.AdjustTo(4, time.Now(), "inventory count", "")
		require.NoError(t, err)

		assert.Equal(t, 4, item.CurrentQuantity)
		assert.Equal(t, -6, movement.Quantity)
	})

	t.Run("to zero", func(t *testing.T) {
		item := stockedItem(t, 10, 0)
		_, err := item.AdjustTo(0, time.Now(), "write-off", "")
		require.NoError(t, err)
		assert.Equal(t, 0, item.CurrentQuantity)
	})

	t.Run("below zero", func(t *testing.T) {
		item := stockedItem(t, 3, 0)

		_, err := item.AdjustTo(-1, time.Now(), "count", "")
		var invalid *shared.InvalidAdjustmentError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, -1, invalid.ResultingStock)
		assert.Equal(t, 3, item.CurrentQuantity)
	})

	t.Run("below minimum emits alert", func(t *testing.T) {
		item := stockedItem(t, 10, 5)

		_, err := item.AdjustTo(2, time.Now(), "inventory count", "")
		require.NoError(t, err)

		events := item.GetDomainEvents()
		require.Len(t, events, 2)
		assert.Equal(t, EventTypeStockAdjusted, events[0].EventType())
		assert.Equal(t, EventTypeStockBelowMinimum, events[1].EventType())
	})
}

func TestStockItem_SetMinimumQuantity(t *testing.T) {
	item := createTestItem(t, 5)
	require.NoError(t, item.SetMinimumQuantity(8))
	assert.Equal(t, 8, item.MinimumQuantity)
	assert.Error(t, item.SetMinimumQuantity(-1))
}

// ============================================
// Stock Movement Tests
// ============================================

func TestNewStockMovement(t *testing.T) {
	stockItemID := uuid.New()

	t.Run("success", func(t *testing.T) {
		m, err := NewStockMovement(stockItemID, MovementTypeIn, 5, time.Now(), "purchase", "notes")
		require.NoError(t, err)
		assert.Equal(t, MovementTypeIn, m.Type)
		assert.Equal(t, 5, m.Quantity)
	})

	t.Run("requires stock item", func(t *testing.T) {
		_, err := NewStockMovement(uuid.Nil, MovementTypeIn, 5, time.Now(), "", "")
		assert.Error(t, err)
	})

	t.Run("adjustment type not allowed", func(t *testing.T) {
		_, err := NewStockMovement(stockItemID, MovementTypeAdjustment, 5, time.Now(), "", "")
		assert.Error(t, err)
	})

	t.Run("quantity must be positive", func(t *testing.T) {
		_, err := NewStockMovement(stockItemID, MovementTypeOut, 0, time.Now(), "", "")
		assert.Error(t, err)

		_, err = NewStockMovement(stockItemID, MovementTypeOut, -3, time.Now(), "", "")
		assert.Error(t, err)
	})

	t.Run("date window", func(t *testing.T) {
		_, err := NewStockMovement(stockItemID, MovementTypeIn, 1, time.Now().AddDate(-1, 0, -1), "", "")
		assert.Error(t, err)

		_, err = NewStockMovement(stockItemID, MovementTypeIn, 1, time.Now().AddDate(0, 0, 2), "", "")
		assert.Error(t, err)

		_, err = NewStockMovement(stockItemID, MovementTypeIn, 1, time.Now().AddDate(0, -6, 0), "", "")
		assert.NoError(t, err)
	})

	t.Run("reason too long", func(t *testing.T) {
		_, err := NewStockMovement(stockItemID, MovementTypeIn, 1, time.Now(), strings.Repeat("a", 201), "")
		assert.Error(t, err)
	})

	t.Run("notes too long", func(t *testing.T) {
		_, err := NewStockMovement(stockItemID, MovementTypeIn, 1, time.Now(), "", strings.Repeat("a", 501))
		assert.Error(t, err)
	})
}

func TestMovementType_IsValid(t *testing.T) {
	assert.True(t, MovementTypeIn.IsValid())
	assert.True(t, MovementTypeOut.IsValid())
	assert.True(t, MovementTypeAdjustment.IsValid())
	assert.False(t, MovementType("TRANSFER").IsValid())
}
