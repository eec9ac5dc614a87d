package workorder

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appexecution "github.com/mecanica/backend/internal/application/execution"
	appinventory "github.com/mecanica/backend/internal/application/inventory"
	"github.com/mecanica/backend/internal/domain/budget"
	"github.com/mecanica/backend/internal/domain/partner"
	"github.com/mecanica/backend/internal/domain/shared"
	"github.com/mecanica/backend/internal/domain/shared/valueobject"
	"github.com/mecanica/backend/internal/domain/workorder"
)

// MockBudgetRepository is a mock implementation of budget.Repository
type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) FindByID(ctx context.Context, id uuid.UUID) (*budget.Budget, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*budget.Budget), args.Error(1)
}

func (m *MockBudgetRepository) FindByIDWithItems(ctx context.Context, id uuid.UUID) (*budget.Budget, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*budget.Budget), args.Error(1)
}

func (m *MockBudgetRepository) FindByServiceOrderID(ctx context.Context, serviceOrderID uuid.UUID) (*budget.Budget, error) {
	args := m.Called(ctx, serviceOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*budget.Budget), args.Error(1)
}

func (m *MockBudgetRepository) FindByStatus(ctx context.Context, status budget.Status, filter shared.Filter) ([]budget.Budget, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]budget.Budget), args.Error(1)
}

func (m *MockBudgetRepository) FindExpiredCandidates(ctx context.Context, limit int) ([]budget.Budget, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]budget.Budget), args.Error(1)
}

func (m *MockBudgetRepository) Save(ctx context.Context, b *budget.Budget) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBudgetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEmployeeRepository is a mock implementation of partner.EmployeeRepository
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindByEmail(ctx context.Context, email string) (*partner.Employee, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Employee, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) Save(ctx context.Context, employee *partner.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

// MockExecutionCreator is a mock implementation of ExecutionCreator
type MockExecutionCreator struct {
	mock.Mock
}

func (m *MockExecutionCreator) CreateForOrder(ctx context.Context, req appexecution.CreateExecutionRequest) (*appexecution.ServiceExecutionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appexecution.ServiceExecutionResponse), args.Error(1)
}

// MockStockDecreaser is a mock implementation of StockDecreaser
type MockStockDecreaser struct {
	mock.Mock
}

func (m *MockStockDecreaser) DecreaseStock(ctx context.Context, req appinventory.DecreaseStockRequest) (*appinventory.StockMovementResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appinventory.StockMovementResponse), args.Error(1)
}

func newApprovedHandler() (*ServiceOrderApprovedHandler, *MockBudgetRepository, *MockEmployeeRepository, *MockExecutionCreator, *MockStockDecreaser) {
	budgetRepo := new(MockBudgetRepository)
	employeeRepo := new(MockEmployeeRepository)
	creator := new(MockExecutionCreator)
	decreaser := new(MockStockDecreaser)
	h := NewServiceOrderApprovedHandler(zap.NewNop(), budgetRepo, employeeRepo, creator, decreaser)
	return h, budgetRepo, employeeRepo, creator, decreaser
}

func approvedEvent(t *testing.T) *workorder.ServiceOrderApprovedEvent {
	order, err := workorder.NewServiceOrder(uuid.New(), uuid.New(), "Brake noise")
	require.NoError(t, err)
	return workorder.NewServiceOrderApprovedEvent(order, uuid.New())
}

func budgetWithStockLines(t *testing.T, orderID uuid.UUID, lines int) *budget.Budget {
	b, err := budget.NewBudget(orderID, uuid.New(), 7, budget.DeliveryEmail)
	require.NoError(t, err)
	for i := 0; i < lines; i++ {
		stockItemID := uuid.New()
		_, err := b.AddItem(budget.ItemKindStockItem, &stockItemID, "Part", 2, valueobject.NewMoneyBRL(1000))
		require.NoError(t, err)
	}
	_, err = b.AddItem(budget.ItemKindLabor, nil, "Labor", 1, valueobject.NewMoneyBRL(5000))
	require.NoError(t, err)
	return b
}

func TestServiceOrderApprovedHandler_EventTypes(t *testing.T) {
	h, _, _, _, _ := newApprovedHandler()
	assert.Equal(t, []string{workorder.EventTypeServiceOrderApproved}, h.EventTypes())
}

func TestServiceOrderApprovedHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("mechanic approver gets the execution", func(t *testing.T) {
		h, budgetRepo, employeeRepo, creator, decreaser := newApprovedHandler()
		evt := approvedEvent(t)
		b := budgetWithStockLines(t, evt.OrderID, 2)
		mechanic, err := partner.NewEmployee("João", "joao@shop.com", partner.EmployeeRoleMechanic)
		require.NoError(t, err)

		employeeRepo.On("FindByID", ctx, evt.ApprovedBy).Return(mechanic, nil)
		creator.On("CreateForOrder", ctx, mock.MatchedBy(func(req appexecution.CreateExecutionRequest) bool {
			return req.ServiceOrderID == evt.OrderID &&
				req.MechanicID != nil && *req.MechanicID == mechanic.ID
		})).Return(&appexecution.ServiceExecutionResponse{}, nil).Once()
		budgetRepo.On("FindByServiceOrderID", ctx, evt.OrderID).Return(b, nil)
		decreaser.On("DecreaseStock", ctx, mock.AnythingOfType("inventory.DecreaseStockRequest")).
			Return(&appinventory.StockMovementResponse{}, nil).Twice()

		require.NoError(t, h.Handle(ctx, evt))
		creator.AssertExpectations(t)
		decreaser.AssertExpectations(t)
	})

	t.Run("attendant approver gets the execution too", func(t *testing.T) {
		h, budgetRepo, employeeRepo, creator, _ := newApprovedHandler()
		evt := approvedEvent(t)
		attendant, err := partner.NewEmployee("Ana", "ana@shop.com", partner.EmployeeRoleAttendant)
		require.NoError(t, err)

		employeeRepo.On("FindByID", ctx, evt.ApprovedBy).Return(attendant, nil)
		creator.On("CreateForOrder", ctx, mock.MatchedBy(func(req appexecution.CreateExecutionRequest) bool {
			return req.MechanicID != nil && *req.MechanicID == attendant.ID
		})).Return(&appexecution.ServiceExecutionResponse{}, nil).Once()
		budgetRepo.On("FindByServiceOrderID", ctx, evt.OrderID).Return(nil, shared.ErrNotFound)

		require.NoError(t, h.Handle(ctx, evt))
		creator.AssertExpectations(t)
	})

	t.Run("client approver creates no execution but stock still depletes", func(t *testing.T) {
		h, budgetRepo, employeeRepo, creator, decreaser := newApprovedHandler()
		evt := approvedEvent(t)
		b := budgetWithStockLines(t, evt.OrderID, 2)

		employeeRepo.On("FindByID", ctx, evt.ApprovedBy).Return(nil, shared.ErrNotFound)
		budgetRepo.On("FindByServiceOrderID", ctx, evt.OrderID).Return(b, nil)
		decreaser.On("DecreaseStock", ctx, mock.Anything).
			Return(&appinventory.StockMovementResponse{}, nil).Twice()

		require.NoError(t, h.Handle(ctx, evt))
		creator.AssertNotCalled(t, "CreateForOrder", mock.Anything, mock.Anything)
		decreaser.AssertExpectations(t)
	})

	t.Run("approver lookup failure is treated as a client approval", func(t *testing.T) {
		h, budgetRepo, employeeRepo, creator, decreaser := newApprovedHandler()
		evt := approvedEvent(t)
		b := budgetWithStockLines(t, evt.OrderID, 1)

		employeeRepo.On("FindByID", ctx, evt.ApprovedBy).Return(nil, errors.New("db down"))
		budgetRepo.On("FindByServiceOrderID", ctx, evt.OrderID).Return(b, nil)
		decreaser.On("DecreaseStock", ctx, mock.Anything).
			Return(&appinventory.StockMovementResponse{}, nil).Once()

		require.NoError(t, h.Handle(ctx, evt))
		creator.AssertNotCalled(t, "CreateForOrder", mock.Anything, mock.Anything)
		decreaser.AssertExpectations(t)
	})

	t.Run("execution failure does not abort stock depletion", func(t *testing.T) {
		h, budgetRepo, employeeRepo, creator, decreaser := newApprovedHandler()
		evt := approvedEvent(t)
		b := budgetWithStockLines(t, evt.OrderID, 1)
		mechanic, err := partner.NewEmployee("João", "joao@shop.com", partner.EmployeeRoleMechanic)
		require.NoError(t, err)

		employeeRepo.On("FindByID", ctx, evt.ApprovedBy).Return(mechanic, nil)
		creator.On("CreateForOrder", ctx, mock.Anything).Return(nil, errors.New("db down"))
		budgetRepo.On("FindByServiceOrderID", ctx, evt.OrderID).Return(b, nil)
		decreaser.On("DecreaseStock", ctx, mock.Anything).Return(&appinventory.StockMovementResponse{}, nil).Once()

		require.NoError(t, h.Handle(ctx, evt))
		decreaser.AssertExpectations(t)
	})

	t.Run("missing budget skips depletion", func(t *testing.T) {
		h, budgetRepo, employeeRepo, _, decreaser := newApprovedHandler()
		evt := approvedEvent(t)

		employeeRepo.On("FindByID", ctx, evt.ApprovedBy).Return(nil, shared.ErrNotFound)
		budgetRepo.On("FindByServiceOrderID", ctx, evt.OrderID).Return(nil, shared.ErrNotFound)

		require.NoError(t, h.Handle(ctx, evt))
		decreaser.AssertNotCalled(t, "DecreaseStock", mock.Anything, mock.Anything)
	})

	t.Run("one depletion failure does not stop the rest", func(t *testing.T) {
		h, budgetRepo, employeeRepo, _, decreaser := newApprovedHandler()
		evt := approvedEvent(t)
		b := budgetWithStockLines(t, evt.OrderID, 3)

		employeeRepo.On("FindByID", ctx, evt.ApprovedBy).Return(nil, shared.ErrNotFound)
		budgetRepo.On("FindByServiceOrderID", ctx, evt.OrderID).Return(b, nil)

		failing := *b.StockLines()[1].StockItemID
		decreaser.On("DecreaseStock", ctx, mock.MatchedBy(func(req appinventory.DecreaseStockRequest) bool {
			return req.StockItemID == failing
		})).Return(nil, &shared.InsufficientStockError{StockItemID: failing, Requested: 2, Available: 0})
		decreaser.On("DecreaseStock", ctx, mock.MatchedBy(func(req appinventory.DecreaseStockRequest) bool {
			return req.StockItemID != failing
		})).Return(&appinventory.StockMovementResponse{}, nil).Twice()

		err := h.Handle(ctx, evt)
		assert.Error(t, err)
		decreaser.AssertExpectations(t)
	})

	t.Run("unexpected event type", func(t *testing.T) {
		h, _, _, _, _ := newApprovedHandler()
		order, err := workorder.NewServiceOrder(uuid.New(), uuid.New(), "noise")
		require.NoError(t, err)

		assert.Error(t, h.Handle(ctx, workorder.NewServiceOrderCreatedEvent(order)))
	})
}
