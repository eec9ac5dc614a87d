package workorder

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mecanica/backend/internal/domain/partner"
	"github.com/mecanica/backend/internal/domain/shared"
	"github.com/mecanica/backend/internal/domain/workorder"
)

// MockOrderRepository is a mock implementation of workorder.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*workorder.ServiceOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workorder.ServiceOrder), args.Error(1)
}

func (m *MockOrderRepository) FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]workorder.ServiceOrder, error) {
	args := m.Called(ctx, clientID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]workorder.ServiceOrder), args.Error(1)
}

func (m *MockOrderRepository) FindByStatus(ctx context.Context, status workorder.OrderStatus, filter shared.Filter) ([]workorder.ServiceOrder, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]workorder.ServiceOrder), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *workorder.ServiceOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockClientRepository is a mock implementation of partner.ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindByDocument(ctx context.Context, document string) (*partner.Client, error) {
	args := m.Called(ctx, document)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Client, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Client), args.Error(1)
}

func (m *MockClientRepository) Save(ctx context.Context, client *partner.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

// MockVehicleRepository is a mock implementation of partner.VehicleRepository
type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) FindByPlate(ctx context.Context, plate string) (*partner.Vehicle, error) {
	args := m.Called(ctx, plate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) FindByClient(ctx context.Context, clientID uuid.UUID) ([]partner.Vehicle, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) Save(ctx context.Context, vehicle *partner.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func newTestService() (*ServiceOrderService, *MockOrderRepository, *MockClientRepository, *MockVehicleRepository, *MockEventPublisher) {
	orderRepo := new(MockOrderRepository)
	clientRepo := new(MockClientRepository)
	vehicleRepo := new(MockVehicleRepository)
	publisher := new(MockEventPublisher)
	svc := NewServiceOrderService(orderRepo, clientRepo, vehicleRepo)
	svc.SetEventPublisher(publisher)
	return svc, orderRepo, clientRepo, vehicleRepo, publisher
}

func testClient(t *testing.T) *partner.Client {
	c, err := partner.NewClient("Maria Silva", "maria@example.com", "", "")
	require.NoError(t, err)
	return c
}

func testVehicle(t *testing.T, clientID uuid.UUID) *partner.Vehicle {
	v, err := partner.NewVehicle(clientID, "ABC1D23", "Fiat", "Uno", 2015)
	require.NoError(t, err)
	return v
}

func testOrder(t *testing.T, status workorder.OrderStatus) *workorder.ServiceOrder {
	o, err := workorder.NewServiceOrder(uuid.New(), uuid.New(), "Brake noise")
	require.NoError(t, err)
	o.Status = status
	o.ClearDomainEvents()
	return o
}

func TestServiceOrderService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, orderRepo, clientRepo, vehicleRepo, publisher := newTestService()
		client := testClient(t)
		vehicle := testVehicle(t, client.ID)

		clientRepo.On("FindByID", ctx, client.ID).Return(client, nil)
		vehicleRepo.On("FindByID", ctx, vehicle.ID).Return(vehicle, nil)
		orderRepo.On("Save", ctx, mock.AnythingOfType("*workorder.ServiceOrder")).Return(nil)
		publisher.On("Publish", ctx, mock.MatchedBy(func(events []shared.DomainEvent) bool {
			return len(events) == 1 && events[0].EventType() == workorder.EventTypeServiceOrderCreated
		})).Return(nil)

		resp, err := svc.Create(ctx, CreateServiceOrderRequest{
			ClientID:    client.ID,
			VehicleID:   vehicle.ID,
			Description: "Brake noise",
		})
		require.NoError(t, err)
		assert.Equal(t, workorder.OrderStatusRequested, resp.Status)
		publisher.AssertExpectations(t)
	})

	t.Run("client not found", func(t *testing.T) {
		svc, _, clientRepo, _, _ := newTestService()
		clientID := uuid.New()
		clientRepo.On("FindByID", ctx, clientID).Return(nil, shared.ErrNotFound)

		_, err := svc.Create(ctx, CreateServiceOrderRequest{ClientID: clientID, VehicleID: uuid.New()})
		var notFound *shared.NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("vehicle not found", func(t *testing.T) {
		svc, _, clientRepo, vehicleRepo, _ := newTestService()
		client := testClient(t)
		vehicleID := uuid.New()

		clientRepo.On("FindByID", ctx, client.ID).Return(client, nil)
		vehicleRepo.On("FindByID", ctx, vehicleID).Return(nil, shared.ErrNotFound)

		_, err := svc.Create(ctx, CreateServiceOrderRequest{ClientID: client.ID, VehicleID: vehicleID})
		var notFound *shared.NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("vehicle belongs to another client", func(t *testing.T) {
		svc, orderRepo, clientRepo, vehicleRepo, _ := newTestService()
		client := testClient(t)
		vehicle := testVehicle(t, uuid.New())

		clientRepo.On("FindByID", ctx, client.ID).Return(client, nil)
		vehicleRepo.On("FindByID", ctx, vehicle.ID).Return(vehicle, nil)

		_, err := svc.Create(ctx, CreateServiceOrderRequest{ClientID: client.ID, VehicleID: vehicle.ID})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VEHICLE_OWNERSHIP", domainErr.Code)
		orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestServiceOrderService_Transitions(t *testing.T) {
	ctx := context.Background()

	type transition struct {
		name string
		from workorder.OrderStatus
		to   workorder.OrderStatus
		call func(svc *ServiceOrderService, id uuid.UUID) (*ServiceOrderResponse, error)
	}

	transitions := []transition{
		{"receive", workorder.OrderStatusRequested, workorder.OrderStatusReceived,
			func(svc *ServiceOrderService, id uuid.UUID) (*ServiceOrderResponse, error) {
				return svc.Receive(ctx, id)
			}},
		{"start diagnosis", workorder.OrderStatusReceived, workorder.OrderStatusInDiagnosis,
			func(svc *ServiceOrderService, id uuid.UUID) (*ServiceOrderResponse, error) {
				return svc.StartDiagnosis(ctx, id)
			}},
		{"submit for approval", workorder.OrderStatusInDiagnosis, workorder.OrderStatusAwaitingApproval,
			func(svc *ServiceOrderService, id uuid.UUID) (*ServiceOrderResponse, error) {
				return svc.SubmitForApproval(ctx, id)
			}},
		{"schedule", workorder.OrderStatusApproved, workorder.OrderStatusScheduled,
			func(svc *ServiceOrderService, id uuid.UUID) (*ServiceOrderResponse, error) {
				return svc.Schedule(ctx, id)
			}},
		{"start execution", workorder.OrderStatusScheduled, workorder.OrderStatusInExecution,
			func(svc *ServiceOrderService, id uuid.UUID) (*ServiceOrderResponse, error) {
				return svc.StartExecution(ctx, id)
			}},
		{"finish", workorder.OrderStatusInExecution, workorder.OrderStatusFinished,
			func(svc *ServiceOrderService, id uuid.UUID) (*ServiceOrderResponse, error) {
				return svc.Finish(ctx, id)
			}},
		{"deliver", workorder.OrderStatusFinished, workorder.OrderStatusDelivered,
			func(svc *ServiceOrderService, id uuid.UUID) (*ServiceOrderResponse, error) {
				return svc.Deliver(ctx, id)
			}},
	}

	for _, tt := range transitions {
		t.Run(tt.name, func(t *testing.T) {
			svc, orderRepo, _, _, publisher := newTestService()
			order := testOrder(t, tt.from)

			orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
			orderRepo.On("Save", ctx, order).Return(nil)
			publisher.On("Publish", ctx, mock.Anything).Return(nil)

			resp, err := tt.call(svc, order.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.to, resp.Status)
			orderRepo.AssertExpectations(t)
		})
	}
}

func TestServiceOrderService_TransitionRejected(t *testing.T) {
	ctx := context.Background()
	svc, orderRepo, _, _, _ := newTestService()
	order := testOrder(t, workorder.OrderStatusRequested)

	orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

	_, err := svc.Finish(ctx, order.ID)
	var transitionErr *shared.InvalidStateTransitionError
	assert.ErrorAs(t, err, &transitionErr)
	orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestServiceOrderService_ApproveReject(t *testing.T) {
	ctx := context.Background()

	t.Run("client approves own order", func(t *testing.T) {
		svc, orderRepo, _, _, publisher := newTestService()
		order := testOrder(t, workorder.OrderStatusAwaitingApproval)

		orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		orderRepo.On("Save", ctx, order).Return(nil)
		publisher.On("Publish", ctx, mock.MatchedBy(func(events []shared.DomainEvent) bool {
			return len(events) == 2 && events[1].EventType() == workorder.EventTypeServiceOrderApproved
		})).Return(nil)

		resp, err := svc.Approve(ctx, order.ID, ApprovalDecisionRequest{ActorID: order.ClientID, Role: workorder.RoleClient})
		require.NoError(t, err)
		assert.Equal(t, workorder.OrderStatusApproved, resp.Status)
		publisher.AssertExpectations(t)
	})

	t.Run("foreign client is forbidden", func(t *testing.T) {
		svc, orderRepo, _, _, _ := newTestService()
		order := testOrder(t, workorder.OrderStatusAwaitingApproval)

		orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

		_, err := svc.Approve(ctx, order.ID, ApprovalDecisionRequest{ActorID: uuid.New(), Role: workorder.RoleClient})
		var roleErr *shared.RoleNotAuthorizedError
		assert.ErrorAs(t, err, &roleErr)
		orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("employee rejects", func(t *testing.T) {
		svc, orderRepo, _, _, publisher := newTestService()
		order := testOrder(t, workorder.OrderStatusAwaitingApproval)

		orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		orderRepo.On("Save", ctx, order).Return(nil)
		publisher.On("Publish", ctx, mock.Anything).Return(nil)

		resp, err := svc.Reject(ctx, order.ID, ApprovalDecisionRequest{ActorID: uuid.New(), Role: workorder.RoleEmployee})
		require.NoError(t, err)
		assert.Equal(t, workorder.OrderStatusRejected, resp.Status)
	})
}

func TestServiceOrderService_Cancel(t *testing.T) {
	ctx := context.Background()
	svc, orderRepo, _, _, publisher := newTestService()
	order := testOrder(t, workorder.OrderStatusScheduled)

	orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
	orderRepo.On("Save", ctx, order).Return(nil)
	publisher.On("Publish", ctx, mock.MatchedBy(func(events []shared.DomainEvent) bool {
		return len(events) == 2 && events[1].EventType() == workorder.EventTypeServiceOrderCancelled
	})).Return(nil)

	resp, err := svc.Cancel(ctx, order.ID, CancelServiceOrderRequest{Reason: "Client gave up"})
	require.NoError(t, err)
	assert.Equal(t, workorder.OrderStatusCancelled, resp.Status)
	assert.Equal(t, "Client gave up", resp.CancellationReason)
}

func TestServiceOrderService_GetByID(t *testing.T) {
	ctx := context.Background()
	svc, orderRepo, _, _, _ := newTestService()
	id := uuid.New()
	orderRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

	_, err := svc.GetByID(ctx, id)
	var notFound *shared.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestServiceOrderService_ListByStatus(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _, _ := newTestService()

	_, err := svc.ListByStatus(ctx, workorder.OrderStatus("BOGUS"), shared.DefaultFilter())
	assert.Error(t, err)
}
