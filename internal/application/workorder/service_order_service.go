package workorder

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mecanica/backend/internal/domain/partner"
	"github.com/mecanica/backend/internal/domain/shared"
	"github.com/mecanica/backend/internal/domain/workorder"
)

// ServiceOrderService drives the work-order lifecycle. Every mutation loads
// the aggregate, applies a guarded transition, saves, and only then publishes
// the resulting domain events.
type ServiceOrderService struct {
	orderRepo      workorder.Repository
	clientRepo     partner.ClientRepository
	vehicleRepo    partner.VehicleRepository
	eventPublisher shared.EventPublisher
}

// NewServiceOrderService creates a new ServiceOrderService
func NewServiceOrderService(orderRepo workorder.Repository, clientRepo partner.ClientRepository, vehicleRepo partner.VehicleRepository) *ServiceOrderService {
	return &ServiceOrderService{
		orderRepo:   orderRepo,
		clientRepo:  clientRepo,
		vehicleRepo: vehicleRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *ServiceOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create opens a new service order for a client's vehicle
func (s *ServiceOrderService) Create(ctx context.Context, req CreateServiceOrderRequest) (*ServiceOrderResponse, error) {
	if _, err := s.clientRepo.FindByID(ctx, req.ClientID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, &shared.NotFoundError{Kind: "client", ID: req.ClientID}
		}
		return nil, err
	}
	vehicle, err := s.vehicleRepo.FindByID(ctx, req.VehicleID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, &shared.NotFoundError{Kind: "vehicle", ID: req.VehicleID}
		}
		return nil, err
	}
	if vehicle.ClientID != req.ClientID {
		return nil, shared.NewDomainError("VEHICLE_OWNERSHIP", "Vehicle does not belong to the client")
	}

	order, err := workorder.NewServiceOrder(req.ClientID, req.VehicleID, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("saving service order: %w", err)
	}

	if err := s.publishEvents(ctx, order); err != nil {
		return nil, err
	}

	resp := ToServiceOrderResponse(order)
	return &resp, nil
}

// Receive acknowledges that the vehicle arrived at the shop
func (s *ServiceOrderService) Receive(ctx context.Context, orderID uuid.UUID) (*ServiceOrderResponse, error) {
	return s.applyTransition(ctx, orderID, (*workorder.ServiceOrder).Receive)
}

// StartDiagnosis moves the order into diagnosis
func (s *ServiceOrderService) StartDiagnosis(ctx context.Context, orderID uuid.UUID) (*ServiceOrderResponse, error) {
	return s.applyTransition(ctx, orderID, (*workorder.ServiceOrder).StartDiagnosis)
}

// SubmitForApproval moves the order to AWAITING_APPROVAL
func (s *ServiceOrderService) SubmitForApproval(ctx context.Context, orderID uuid.UUID) (*ServiceOrderResponse, error) {
	return s.applyTransition(ctx, orderID, (*workorder.ServiceOrder).SubmitForApproval)
}

// Approve approves the order on behalf of the given actor. Clients may only
// approve their own orders; employees may approve any.
func (s *ServiceOrderService) Approve(ctx context.Context, orderID uuid.UUID, req ApprovalDecisionRequest) (*ServiceOrderResponse, error) {
	return s.applyTransition(ctx, orderID, func(o *workorder.ServiceOrder) error {
		return o.Approve(req.ActorID, req.Role)
	})
}

// Reject rejects the order on behalf of the given actor
func (s *ServiceOrderService) Reject(ctx context.Context, orderID uuid.UUID, req ApprovalDecisionRequest) (*ServiceOrderResponse, error) {
	return s.applyTransition(ctx, orderID, func(o *workorder.ServiceOrder) error {
		return o.Reject(req.ActorID, req.Role)
	})
}

// Schedule queues an approved order for execution
func (s *ServiceOrderService) Schedule(ctx context.Context, orderID uuid.UUID) (*ServiceOrderResponse, error) {
	return s.applyTransition(ctx, orderID, (*workorder.ServiceOrder).Schedule)
}

// StartExecution marks the order as being worked on
func (s *ServiceOrderService) StartExecution(ctx context.Context, orderID uuid.UUID) (*ServiceOrderResponse, error) {
	return s.applyTransition(ctx, orderID, (*workorder.ServiceOrder).StartExecution)
}

// Finish marks the repair work as done
func (s *ServiceOrderService) Finish(ctx context.Context, orderID uuid.UUID) (*ServiceOrderResponse, error) {
	return s.applyTransition(ctx, orderID, (*workorder.ServiceOrder).Finish)
}

// Deliver hands the vehicle back to the client and stamps the delivery date
func (s *ServiceOrderService) Deliver(ctx context.Context, orderID uuid.UUID) (*ServiceOrderResponse, error) {
	return s.applyTransition(ctx, orderID, (*workorder.ServiceOrder).Deliver)
}

// Cancel cancels the order with a reason
func (s *ServiceOrderService) Cancel(ctx context.Context, orderID uuid.UUID, req CancelServiceOrderRequest) (*ServiceOrderResponse, error) {
	return s.applyTransition(ctx, orderID, func(o *workorder.ServiceOrder) error {
		return o.Cancel(req.Reason)
	})
}

// GetByID finds a service order by ID
func (s *ServiceOrderService) GetByID(ctx context.Context, id uuid.UUID) (*ServiceOrderResponse, error) {
	order, err := s.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToServiceOrderResponse(order)
	return &resp, nil
}

// ListByClient returns a client's service orders
func (s *ServiceOrderService) ListByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]ServiceOrderResponse, error) {
	orders, err := s.orderRepo.FindByClient(ctx, clientID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ServiceOrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToServiceOrderResponse(&orders[i])
	}
	return responses, nil
}

// ListByStatus returns service orders in a given status
func (s *ServiceOrderService) ListByStatus(ctx context.Context, status workorder.OrderStatus, filter shared.Filter) ([]ServiceOrderResponse, error) {
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status: %s", status))
	}
	orders, err := s.orderRepo.FindByStatus(ctx, status, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ServiceOrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToServiceOrderResponse(&orders[i])
	}
	return responses, nil
}

// applyTransition loads the order, runs the domain operation, saves, and
// publishes the recorded events
func (s *ServiceOrderService) applyTransition(ctx context.Context, orderID uuid.UUID, op func(*workorder.ServiceOrder) error) (*ServiceOrderResponse, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := op(order); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("saving service order: %w", err)
	}

	if err := s.publishEvents(ctx, order); err != nil {
		return nil, err
	}

	resp := ToServiceOrderResponse(order)
	return &resp, nil
}

func (s *ServiceOrderService) findOrder(ctx context.Context, id uuid.UUID) (*workorder.ServiceOrder, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, &shared.NotFoundError{Kind: "service order", ID: id}
		}
		return nil, err
	}
	return order, nil
}

func (s *ServiceOrderService) publishEvents(ctx context.Context, order *workorder.ServiceOrder) error {
	if s.eventPublisher == nil {
		return nil
	}
	events := order.GetDomainEvents()
	order.ClearDomainEvents()
	if len(events) == 0 {
		return nil
	}
	return s.eventPublisher.Publish(ctx, events...)
}
