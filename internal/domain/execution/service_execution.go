package execution

import (
	"time"

	"github.com/google/uuid"

	"github.com/mecanica/backend/internal/domain/shared"
)

// ExecutionStatus represents the status of a service execution
type ExecutionStatus string

const (
	ExecutionStatusAssigned   ExecutionStatus = "ASSIGNED"
	ExecutionStatusInProgress ExecutionStatus = "IN_PROGRESS"
	ExecutionStatusCompleted  ExecutionStatus = "COMPLETED"
)

// IsValid checks if the status is a valid ExecutionStatus
func (s ExecutionStatus) IsValid() bool {
	switch s {
	case ExecutionStatusAssigned, ExecutionStatusInProgress, ExecutionStatusCompleted:
		return true
	}
	return false
}

// String returns the string representation of ExecutionStatus
func (s ExecutionStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// The machine is strictly linear: ASSIGNED -> IN_PROGRESS -> COMPLETED.
func (s ExecutionStatus) CanTransitionTo(target ExecutionStatus) bool {
	switch s {
	case ExecutionStatusAssigned:
		return target == ExecutionStatusInProgress
	case ExecutionStatusInProgress:
		return target == ExecutionStatusCompleted
	case ExecutionStatusCompleted:
		return false // Terminal state
	}
	return false
}

// ValidateTransition checks whether from may move to target, returning a typed
// error that carries the offending edge
func ValidateTransition(from, to ExecutionStatus, id uuid.UUID) error {
	if !from.CanTransitionTo(to) {
		return &shared.InvalidStateTransitionError{AggregateID: id, From: from.String(), To: to.String()}
	}
	return nil
}

// ServiceExecution represents the tracked work performed by a mechanic
// against an approved service order
type ServiceExecution struct {
	shared.BaseAggregateRoot
	ServiceOrderID uuid.UUID `gorm:"type:uuid;not null;index"`
	MechanicID     *uuid.UUID
	Status         ExecutionStatus `gorm:"type:varchar(20);not null;index"`
	StartTime      *time.Time
	EndTime        *time.Time
}

// TableName returns the table name for GORM
func (ServiceExecution) TableName() string {
	return "service_executions"
}

// NewServiceExecution creates a new execution in ASSIGNED status.
// The mechanic may be assigned later, but the execution cannot start without one.
func NewServiceExecution(serviceOrderID uuid.UUID, mechanicID *uuid.UUID) (*ServiceExecution, error) {
	if serviceOrderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SERVICE_ORDER", "Service order ID cannot be empty")
	}
	if mechanicID != nil && *mechanicID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MECHANIC", "Mechanic ID cannot be the nil UUID")
	}

	e := &ServiceExecution{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ServiceOrderID:    serviceOrderID,
		MechanicID:        mechanicID,
		Status:            ExecutionStatusAssigned,
	}
	e.AddDomainEvent(NewServiceExecutionCreatedEvent(e))
	return e, nil
}

// AssignMechanic assigns or reassigns the mechanic.
// Only allowed before the execution starts.
func (e *ServiceExecution) AssignMechanic(mechanicID uuid.UUID) error {
	if mechanicID == uuid.Nil {
		return shared.NewDomainError("INVALID_MECHANIC", "Mechanic ID cannot be empty")
	}
	if e.Status != ExecutionStatusAssigned {
		return shared.NewDomainError("INVALID_STATE", "Cannot reassign mechanic after execution has started")
	}
	e.MechanicID = &mechanicID
	e.UpdatedAt = time.Now()
	return nil
}

// Start begins the execution. A mechanic must be assigned first; that failure
// is reported as NoMechanicAssignedError, not as a transition error.
func (e *ServiceExecution) Start(changedBy uuid.UUID) error {
	if e.MechanicID == nil || *e.MechanicID == uuid.Nil {
		return &shared.NoMechanicAssignedError{AggregateID: e.ID}
	}
	if err := ValidateTransition(e.Status, ExecutionStatusInProgress, e.ID); err != nil {
		return err
	}

	now := time.Now()
	previous := e.Status
	e.Status = ExecutionStatusInProgress
	e.StartTime = &now
	e.UpdatedAt = now
	e.IncrementVersion()

	e.AddDomainEvent(NewServiceExecutionStatusChangedEvent(e, previous, changedBy))
	return nil
}

// Complete finishes the execution. Requires current status IN_PROGRESS.
func (e *ServiceExecution) Complete(changedBy uuid.UUID) error {
	if err := ValidateTransition(e.Status, ExecutionStatusCompleted, e.ID); err != nil {
		return err
	}

	now := time.Now()
	previous := e.Status
	e.Status = ExecutionStatusCompleted
	e.EndTime = &now
	e.UpdatedAt = now
	e.IncrementVersion()

	e.AddDomainEvent(NewServiceExecutionStatusChangedEvent(e, previous, changedBy))
	return nil
}

// DurationMinutes returns the elapsed work time in whole minutes, or nil if
// either endpoint is missing
func (e *ServiceExecution) DurationMinutes() *int {
	if e.StartTime == nil || e.EndTime == nil {
		return nil
	}
	minutes := int(e.EndTime.Sub(*e.StartTime).Minutes())
	return &minutes
}
