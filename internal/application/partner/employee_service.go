package partner

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mecanica/backend/internal/domain/partner"
	"github.com/mecanica/backend/internal/domain/shared"
)

// EmployeeService handles employee lookups and registration.
// The approval saga uses GetByID to decide whether an approver is shop staff;
// a NotFoundError there means "not an employee", any other error is an
// infrastructure failure.
type EmployeeService struct {
	employeeRepo partner.EmployeeRepository
}

// NewEmployeeService creates a new EmployeeService
func NewEmployeeService(employeeRepo partner.EmployeeRepository) *EmployeeService {
	return &EmployeeService{employeeRepo: employeeRepo}
}

// Create registers a new employee
func (s *EmployeeService) Create(ctx context.Context, req CreateEmployeeRequest) (*EmployeeResponse, error) {
	employee, err := partner.NewEmployee(req.Name, req.Email, req.Role)
	if err != nil {
		return nil, err
	}

	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, fmt.Errorf("saving employee: %w", err)
	}

	resp := ToEmployeeResponse(employee)
	return &resp, nil
}

// GetByID finds an employee by ID
func (s *EmployeeService) GetByID(ctx context.Context, id uuid.UUID) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, &shared.NotFoundError{Kind: "employee", ID: id}
		}
		return nil, fmt.Errorf("looking up employee %s: %w", id, err)
	}

	resp := ToEmployeeResponse(employee)
	return &resp, nil
}

// List returns employees with filtering
func (s *EmployeeService) List(ctx context.Context, filter shared.Filter) ([]EmployeeResponse, error) {
	employees, err := s.employeeRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]EmployeeResponse, len(employees))
	for i := range employees {
		responses[i] = ToEmployeeResponse(&employees[i])
	}
	return responses, nil
}
