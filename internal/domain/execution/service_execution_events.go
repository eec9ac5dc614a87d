package execution

import (
	"github.com/google/uuid"

	"github.com/mecanica/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeServiceExecution = "ServiceExecution"

// Event type constants
const (
	EventTypeServiceExecutionCreated       = "ServiceExecutionCreated"
	EventTypeServiceExecutionStatusChanged = "ServiceExecutionStatusChanged"
)

// ServiceExecutionCreatedEvent is raised when an execution is created
type ServiceExecutionCreatedEvent struct {
	shared.BaseDomainEvent
	ExecutionID    uuid.UUID  `json:"execution_id"`
	ServiceOrderID uuid.UUID  `json:"service_order_id"`
	MechanicID     *uuid.UUID `json:"mechanic_id,omitempty"`
}

// NewServiceExecutionCreatedEvent creates a new ServiceExecutionCreatedEvent
func NewServiceExecutionCreatedEvent(e *ServiceExecution) *ServiceExecutionCreatedEvent {
	return &ServiceExecutionCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeServiceExecutionCreated, AggregateTypeServiceExecution, e.ID),
		ExecutionID:     e.ID,
		ServiceOrderID:  e.ServiceOrderID,
		MechanicID:      e.MechanicID,
	}
}

// EventType returns the event type name
func (e *ServiceExecutionCreatedEvent) EventType() string {
	return EventTypeServiceExecutionCreated
}

// ServiceExecutionStatusChangedEvent is raised on every execution status
// change. It drives the service order status in the execution saga.
type ServiceExecutionStatusChangedEvent struct {
	shared.BaseDomainEvent
	ExecutionID    uuid.UUID       `json:"execution_id"`
	ServiceOrderID uuid.UUID       `json:"service_order_id"`
	PreviousStatus ExecutionStatus `json:"previous_status"`
	NewStatus      ExecutionStatus `json:"new_status"`
	ChangedBy      uuid.UUID       `json:"changed_by"`
}

// NewServiceExecutionStatusChangedEvent creates a new ServiceExecutionStatusChangedEvent
func NewServiceExecutionStatusChangedEvent(e *ServiceExecution, previous ExecutionStatus, changedBy uuid.UUID) *ServiceExecutionStatusChangedEvent {
	return &ServiceExecutionStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeServiceExecutionStatusChanged, AggregateTypeServiceExecution, e.ID),
		ExecutionID:     e.ID,
		ServiceOrderID:  e.ServiceOrderID,
		PreviousStatus:  previous,
		NewStatus:       e.Status,
		ChangedBy:       changedBy,
	}
}

// EventType returns the event type name
func (e *ServiceExecutionStatusChangedEvent) EventType() string {
	return EventTypeServiceExecutionStatusChanged
}
