package inventory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mecanica/backend/internal/domain/inventory"
	"github.com/mecanica/backend/internal/domain/shared"
	"github.com/mecanica/backend/internal/domain/shared/valueobject"
)

type MockStockItemRepository struct {
	mock.Mock
}

func (m *MockStockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockItem), args.Error(1)
}

func (m *MockStockItemRepository) FindByPartCode(ctx context.Context, partCode string) (*inventory.StockItem, error) {
	args := m.Called(ctx, partCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockItem), args.Error(1)
}

func (m *MockStockItemRepository) FindBelowMinimum(ctx context.Context, filter shared.Filter) ([]inventory.StockItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockItem), args.Error(1)
}

func (m *MockStockItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockItem), args.Error(1)
}

func (m *MockStockItemRepository) Save(ctx context.Context, item *inventory.StockItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

type MockStockMovementRepository struct {
	mock.Mock
}

func (m *MockStockMovementRepository) Save(ctx context.Context, movement *inventory.StockMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockStockMovementRepository) FindByStockItem(ctx context.Context, stockItemID uuid.UUID, filter shared.Filter) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, stockItemID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

func (m *MockStockMovementRepository) FindByPeriod(ctx context.Context, from, to time.Time, filter shared.Filter) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, from, to, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func newTestService() (*InventoryService, *MockStockItemRepository, *MockStockMovementRepository, *MockEventPublisher) {
	itemRepo := new(MockStockItemRepository)
	movementRepo := new(MockStockMovementRepository)
	publisher := new(MockEventPublisher)

	svc := NewInventoryService(itemRepo, movementRepo)
	svc.SetEventPublisher(publisher)
	return svc, itemRepo, movementRepo, publisher
}

func stockedItem(t *testing.T, quantity, minimum int) *inventory.StockItem {
	t.Helper()
	item, err := inventory.NewStockItem("FLT-001", "Oil filter", minimum, valueobject.NewMoneyBRL(2500))
	require.NoError(t, err)
	if quantity > 0 {
		_, err = item.Increase(quantity, time.Now(), "initial load", "")
		require.NoError(t, err)
	}
	item.ClearDomainEvents()
	return item
}

func TestInventoryService_CreateStockItem(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, itemRepo, _, _ := newTestService()

		itemRepo.On("Save", ctx, mock.AnythingOfType("*inventory.StockItem")).Return(nil)

		resp, err := svc.CreateStockItem(ctx, CreateStockItemRequest{
			PartCode:        "brk-020",
			Name:            "Brake pad set",
			MinimumQuantity: 4,
			UnitCostCents:   12900,
		})

		require.NoError(t, err)
		assert.Equal(t, "BRK-020", resp.PartCode)
		assert.Equal(t, "Brake pad set", resp.Name)
		assert.Equal(t, 0, resp.CurrentQuantity)
		assert.Equal(t, 4, resp.MinimumQuantity)
		assert.Equal(t, int64(12900), resp.UnitCostCents)
		itemRepo.AssertExpectations(t)
	})

	t.Run("invalid part code", func(t *testing.T) {
		svc, itemRepo, _, _ := newTestService()

		resp, err := svc.CreateStockItem(ctx, CreateStockItemRequest{
			PartCode: "   ",
			Name:     "Brake pad set",
		})

		require.Error(t, err)
		assert.Nil(t, resp)
		itemRepo.AssertNotCalled(t, "Save")
	})

	t.Run("save failure", func(t *testing.T) {
		svc, itemRepo, _, _ := newTestService()

		itemRepo.On("Save", ctx, mock.Anything).Return(errors.New("db down"))

		_, err := svc.CreateStockItem(ctx, CreateStockItemRequest{
			PartCode: "BRK-020",
			Name:     "Brake pad set",
		})

		require.ErrorContains(t, err, "saving stock item")
	})
}

func TestInventoryService_DecreaseStock(t *testing.T) {
	ctx := context.Background()

	t.Run("success saves item and movement", func(t *testing.T) {
		svc, itemRepo, movementRepo, publisher := newTestService()
		item := stockedItem(t, 10, 2)

		itemRepo.On("FindByID", ctx, item.ID).Return(item, nil)
		itemRepo.On("Save", ctx, item).Return(nil)
		movementRepo.On("Save", ctx, mock.AnythingOfType("*inventory.StockMovement")).Return(nil)
		publisher.On("Publish", ctx, mock.MatchedBy(func(events []shared.DomainEvent) bool {
			if len(events) != 1 {
				return false
			}
			decreased, ok := events[0].(*inventory.StockDecreasedEvent)
			return ok && decreased.NewQuantity == 7
		})).Return(nil)

		resp, err := svc.DecreaseStock(ctx, DecreaseStockRequest{
			StockItemID: item.ID,
			Quantity:    3,
			Reason:      "work order consumption",
		})

		require.NoError(t, err)
		assert.Equal(t, inventory.MovementTypeOut, resp.Type)
		assert.Equal(t, 3, resp.Quantity)
		assert.Equal(t, item.ID, resp.StockItemID)
		assert.Equal(t, 7, item.CurrentQuantity)
		itemRepo.AssertExpectations(t)
		movementRepo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("defaults movement date to now", func(t *testing.T) {
		svc, itemRepo, movementRepo, publisher := newTestService()
		item := stockedItem(t, 10, 2)

		itemRepo.On("FindByID", ctx, item.ID).Return(item, nil)
		itemRepo.On("Save", ctx, item).Return(nil)
		movementRepo.On("Save", ctx, mock.Anything).Return(nil)
		publisher.On("Publish", ctx, mock.Anything).Return(nil)

		resp, err := svc.DecreaseStock(ctx, DecreaseStockRequest{
			StockItemID: item.ID,
			Quantity:    1,
		})

		require.NoError(t, err)
		assert.WithinDuration(t, time.Now(), resp.MovementDate, time.Minute)
	})

	t.Run("insufficient stock", func(t *testing.T) {
		svc, itemRepo, movementRepo, publisher := newTestService()
		item := stockedItem(t, 2, 0)

		itemRepo.On("FindByID", ctx, item.ID).Return(item, nil)

		_, err := svc.DecreaseStock(ctx, DecreaseStockRequest{
			StockItemID: item.ID,
			Quantity:    5,
		})

		var insufficientErr *shared.InsufficientStockError
		require.ErrorAs(t, err, &insufficientErr)
		assert.Equal(t, 5, insufficientErr.Requested)
		assert.Equal(t, 2, insufficientErr.Available)
		itemRepo.AssertNotCalled(t, "Save")
		movementRepo.AssertNotCalled(t, "Save")
		publisher.AssertNotCalled(t, "Publish")
	})

	t.Run("below minimum publishes alert", func(t *testing.T) {
		svc, itemRepo, movementRepo, publisher := newTestService()
		item := stockedItem(t, 10, 5)

		itemRepo.On("FindByID", ctx, item.ID).Return(item, nil)
		itemRepo.On("Save", ctx, item).Return(nil)
		movementRepo.On("Save", ctx, mock.Anything).Return(nil)
		publisher.On("Publish", ctx, mock.MatchedBy(func(events []shared.DomainEvent) bool {
			if len(events) != 2 {
				return false
			}
			_, decreased := events[0].(*inventory.StockDecreasedEvent)
			low, isLow := events[1].(*inventory.StockBelowMinimumEvent)
			return decreased && isLow && low.CurrentQuantity == 4
		})).Return(nil)

		_, err := svc.DecreaseStock(ctx, DecreaseStockRequest{
			StockItemID: item.ID,
			Quantity:    6,
		})

		require.NoError(t, err)
		publisher.AssertExpectations(t)
	})

	t.Run("item not found", func(t *testing.T) {
		svc, itemRepo, _, _ := newTestService()
		itemID := uuid.New()

		itemRepo.On("FindByID", ctx, itemID).Return(nil, shared.ErrNotFound)

		_, err := svc.DecreaseStock(ctx, DecreaseStockRequest{StockItemID: itemID, Quantity: 1})

		var notFoundErr *shared.NotFoundError
		require.ErrorAs(t, err, &notFoundErr)
		assert.Equal(t, "stock item", notFoundErr.Kind)
	})

	t.Run("movement save failure", func(t *testing.T) {
		svc, itemRepo, movementRepo, publisher := newTestService()
		item := stockedItem(t, 10, 2)

		itemRepo.On("FindByID", ctx, item.ID).Return(item, nil)
		itemRepo.On("Save", ctx, item).Return(nil)
		movementRepo.On("Save", ctx, mock.Anything).Return(errors.New("db down"))

		_, err := svc.DecreaseStock(ctx, DecreaseStockRequest{StockItemID: item.ID, Quantity: 1})

		require.ErrorContains(t, err, "saving stock movement")
		publisher.AssertNotCalled(t, "Publish")
	})
}

func TestInventoryService_IncreaseStock(t *testing.T) {
	ctx := context.Background()
	svc, itemRepo, movementRepo, publisher := newTestService()
	item := stockedItem(t, 3, 5)

	itemRepo.On("FindByID", ctx, item.ID).Return(item, nil)
	itemRepo.On("Save", ctx, item).Return(nil)
	movementRepo.On("Save", ctx, mock.AnythingOfType("*inventory.StockMovement")).Return(nil)
	publisher.On("Publish", ctx, mock.MatchedBy(func(events []shared.DomainEvent) bool {
		if len(events) != 1 {
			return false
		}
		increased, ok := events[0].(*inventory.StockIncreasedEvent)
		return ok && increased.NewQuantity == 13
	})).Return(nil)

	resp, err := svc.IncreaseStock(ctx, IncreaseStockRequest{
		StockItemID: item.ID,
		Quantity:    10,
		Reason:      "supplier delivery",
	})

	require.NoError(t, err)
	assert.Equal(t, inventory.MovementTypeIn, resp.Type)
	assert.Equal(t, 10, resp.Quantity)
	assert.Equal(t, 13, item.CurrentQuantity)
	publisher.AssertExpectations(t)
}

func TestInventoryService_AdjustStock(t *testing.T) {
	ctx := context.Background()

	t.Run("adjust down", func(t *testing.T) {
		svc, itemRepo, movementRepo, publisher := newTestService()
		item := stockedItem(t, 12, 2)

		itemRepo.On("FindByID", ctx, item.ID).Return(item, nil)
		itemRepo.On("Save", ctx, item).Return(nil)
		movementRepo.On("Save", ctx, mock.Anything).Return(nil)
		publisher.On("Publish", ctx, mock.MatchedBy(func(events []shared.DomainEvent) bool {
			if len(events) != 1 {
				return false
			}
			adjusted, ok := events[0].(*inventory.StockAdjustedEvent)
			return ok && adjusted.NewQuantity == 9
		})).Return(nil)

		resp, err := svc.AdjustStock(ctx, AdjustStockRequest{
			StockItemID:    item.ID,
			TargetQuantity: 9,
			Reason:         "physical count",
		})

		require.NoError(t, err)
		assert.Equal(t, inventory.MovementTypeAdjustment, resp.Type)
		assert.Equal(t, 9, item.CurrentQuantity)
		publisher.AssertExpectations(t)
	})

	t.Run("below zero rejected", func(t *testing.T) {
		svc, itemRepo, movementRepo, _ := newTestService()
		item := stockedItem(t, 3, 2)

		itemRepo.On("FindByID", ctx, item.ID).Return(item, nil)

		_, err := svc.AdjustStock(ctx, AdjustStockRequest{
			StockItemID:    item.ID,
			TargetQuantity: -1,
		})

		var adjustErr *shared.InvalidAdjustmentError
		require.ErrorAs(t, err, &adjustErr)
		itemRepo.AssertNotCalled(t, "Save")
		movementRepo.AssertNotCalled(t, "Save")
	})
}

func TestInventoryService_List(t *testing.T) {
	ctx := context.Background()
	svc, itemRepo, _, _ := newTestService()
	filter := shared.DefaultFilter()

	first := stockedItem(t, 10, 2)
	second := stockedItem(t, 1, 5)
	itemRepo.On("FindAll", ctx, filter).Return([]inventory.StockItem{*first, *second}, nil)

	responses, err := svc.List(ctx, filter)

	require.NoError(t, err)
	require.Len(t, responses, 2)
	assert.False(t, responses[0].BelowMinimum)
	assert.True(t, responses[1].BelowMinimum)
}

func TestInventoryService_ListBelowMinimum(t *testing.T) {
	ctx := context.Background()
	svc, itemRepo, _, _ := newTestService()
	filter := shared.DefaultFilter()

	low := stockedItem(t, 1, 5)
	itemRepo.On("FindBelowMinimum", ctx, filter).Return([]inventory.StockItem{*low}, nil)

	responses, err := svc.ListBelowMinimum(ctx, filter)

	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, low.ID, responses[0].ID)
	assert.True(t, responses[0].BelowMinimum)
}

func TestInventoryService_ListMovements(t *testing.T) {
	ctx := context.Background()
	svc, _, movementRepo, _ := newTestService()
	filter := shared.DefaultFilter()

	item := stockedItem(t, 0, 0)
	movement, err := inventory.NewStockMovement(item.ID, inventory.MovementTypeIn, 5, time.Now(), "supplier delivery", "")
	require.NoError(t, err)

	movementRepo.On("FindByStockItem", ctx, item.ID, filter).
		Return([]inventory.StockMovement{*movement}, nil)

	responses, err := svc.ListMovements(ctx, item.ID, filter)

	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, inventory.MovementTypeIn, responses[0].Type)
	assert.Equal(t, 5, responses[0].Quantity)
}
