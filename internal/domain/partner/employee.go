package partner

import (
	"strings"
	"time"

	"github.com/mecanica/backend/internal/domain/shared"
)

// EmployeeRole classifies shop staff
type EmployeeRole string

const (
	EmployeeRoleMechanic  EmployeeRole = "MECHANIC"
	EmployeeRoleAttendant EmployeeRole = "ATTENDANT"
	EmployeeRoleManager   EmployeeRole = "MANAGER"
)

// IsValid checks if the role is a valid EmployeeRole
func (r EmployeeRole) IsValid() bool {
	switch r {
	case EmployeeRoleMechanic, EmployeeRoleAttendant, EmployeeRoleManager:
		return true
	}
	return false
}

// Employee represents a member of the shop staff
type Employee struct {
	shared.BaseAggregateRoot
	Name   string       `gorm:"type:varchar(200);not null"`
	Email  string       `gorm:"type:varchar(254);not null;uniqueIndex"`
	Role   EmployeeRole `gorm:"type:varchar(20);not null"`
	Active bool         `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Employee) TableName() string {
	return "employees"
}

// NewEmployee creates a new active employee
func NewEmployee(name, email string, role EmployeeRole) (*Employee, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Employee name cannot be empty")
	}
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Employee email is invalid")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Employee role is invalid")
	}

	return &Employee{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             email,
		Role:              role,
		Active:            true,
	}, nil
}

// IsMechanic reports whether the employee can be assigned to executions
func (e *Employee) IsMechanic() bool {
	return e.Role == EmployeeRoleMechanic
}

// Deactivate marks the employee as no longer active
func (e *Employee) Deactivate() {
	e.Active = false
	e.UpdatedAt = time.Now()
}
