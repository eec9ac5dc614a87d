package execution

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mecanica/backend/internal/domain/execution"
	"github.com/mecanica/backend/internal/domain/partner"
	"github.com/mecanica/backend/internal/domain/shared"
)

// ServiceExecutionService handles the mechanic-facing execution lifecycle.
// Status changes are published after the execution is persisted, so the
// order-synchronization saga only ever sees saved state.
type ServiceExecutionService struct {
	executionRepo  execution.Repository
	employeeRepo   partner.EmployeeRepository
	eventPublisher shared.EventPublisher
}

// NewServiceExecutionService creates a new ServiceExecutionService
func NewServiceExecutionService(executionRepo execution.Repository, employeeRepo partner.EmployeeRepository) *ServiceExecutionService {
	return &ServiceExecutionService{
		executionRepo: executionRepo,
		employeeRepo:  employeeRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *ServiceExecutionService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateForOrder creates an execution record for a service order.
// The mechanic is optional at creation time and is not role-checked here:
// the approval saga passes through whichever employee approved the order.
// Explicit reassignment via AssignMechanic does verify the role, and the
// execution cannot start without a mechanic either way.
func (s *ServiceExecutionService) CreateForOrder(ctx context.Context, req CreateExecutionRequest) (*ServiceExecutionResponse, error) {
	exec, err := execution.NewServiceExecution(req.ServiceOrderID, req.MechanicID)
	if err != nil {
		return nil, err
	}

	if err := s.executionRepo.Save(ctx, exec); err != nil {
		return nil, fmt.Errorf("saving service execution: %w", err)
	}

	if err := s.publishEvents(ctx, exec); err != nil {
		return nil, err
	}

	resp := ToServiceExecutionResponse(exec)
	return &resp, nil
}

// AssignMechanic assigns or reassigns the mechanic on an execution that has
// not started yet
func (s *ServiceExecutionService) AssignMechanic(ctx context.Context, executionID uuid.UUID, req AssignMechanicRequest) (*ServiceExecutionResponse, error) {
	if err := s.checkMechanic(ctx, req.MechanicID); err != nil {
		return nil, err
	}

	exec, err := s.findExecution(ctx, executionID)
	if err != nil {
		return nil, err
	}

	if err := exec.AssignMechanic(req.MechanicID); err != nil {
		return nil, err
	}

	if err := s.executionRepo.Save(ctx, exec); err != nil {
		return nil, fmt.Errorf("saving service execution: %w", err)
	}

	resp := ToServiceExecutionResponse(exec)
	return &resp, nil
}

// Start moves the execution to IN_PROGRESS and stamps the start time
func (s *ServiceExecutionService) Start(ctx context.Context, executionID, changedBy uuid.UUID) (*ServiceExecutionResponse, error) {
	exec, err := s.findExecution(ctx, executionID)
	if err != nil {
		return nil, err
	}

	if err := exec.Start(changedBy); err != nil {
		return nil, err
	}

	if err := s.executionRepo.Save(ctx, exec); err != nil {
		return nil, fmt.Errorf("saving service execution: %w", err)
	}

	if err := s.publishEvents(ctx, exec); err != nil {
		return nil, err
	}

	resp := ToServiceExecutionResponse(exec)
	return &resp, nil
}

// Complete moves the execution to COMPLETED and stamps the end time
func (s *ServiceExecutionService) Complete(ctx context.Context, executionID, changedBy uuid.UUID) (*ServiceExecutionResponse, error) {
	exec, err := s.findExecution(ctx, executionID)
	if err != nil {
		return nil, err
	}

	if err := exec.Complete(changedBy); err != nil {
		return nil, err
	}

	if err := s.executionRepo.Save(ctx, exec); err != nil {
		return nil, fmt.Errorf("saving service execution: %w", err)
	}

	if err := s.publishEvents(ctx, exec); err != nil {
		return nil, err
	}

	resp := ToServiceExecutionResponse(exec)
	return &resp, nil
}

// GetByID finds an execution by ID
func (s *ServiceExecutionService) GetByID(ctx context.Context, id uuid.UUID) (*ServiceExecutionResponse, error) {
	exec, err := s.findExecution(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToServiceExecutionResponse(exec)
	return &resp, nil
}

// GetByServiceOrderID finds the execution tracking a service order
func (s *ServiceExecutionService) GetByServiceOrderID(ctx context.Context, serviceOrderID uuid.UUID) (*ServiceExecutionResponse, error) {
	exec, err := s.executionRepo.FindByServiceOrderID(ctx, serviceOrderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, &shared.NotFoundError{Kind: "service execution", ID: serviceOrderID}
		}
		return nil, err
	}

	resp := ToServiceExecutionResponse(exec)
	return &resp, nil
}

// ListByMechanic returns executions assigned to a mechanic
func (s *ServiceExecutionService) ListByMechanic(ctx context.Context, mechanicID uuid.UUID, filter shared.Filter) ([]ServiceExecutionResponse, error) {
	executions, err := s.executionRepo.FindByMechanic(ctx, mechanicID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ServiceExecutionResponse, len(executions))
	for i := range executions {
		responses[i] = ToServiceExecutionResponse(&executions[i])
	}
	return responses, nil
}

func (s *ServiceExecutionService) findExecution(ctx context.Context, id uuid.UUID) (*execution.ServiceExecution, error) {
	exec, err := s.executionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, &shared.NotFoundError{Kind: "service execution", ID: id}
		}
		return nil, err
	}
	return exec, nil
}

// checkMechanic verifies the employee exists and holds the mechanic role
func (s *ServiceExecutionService) checkMechanic(ctx context.Context, mechanicID uuid.UUID) error {
	employee, err := s.employeeRepo.FindByID(ctx, mechanicID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return &shared.NotFoundError{Kind: "employee", ID: mechanicID}
		}
		return err
	}
	if !employee.IsMechanic() {
		return shared.NewDomainError("NOT_A_MECHANIC", fmt.Sprintf("Employee %s does not hold the mechanic role", mechanicID))
	}
	return nil
}

func (s *ServiceExecutionService) publishEvents(ctx context.Context, exec *execution.ServiceExecution) error {
	if s.eventPublisher == nil {
		return nil
	}
	events := exec.GetDomainEvents()
	exec.ClearDomainEvents()
	if len(events) == 0 {
		return nil
	}
	return s.eventPublisher.Publish(ctx, events...)
}
