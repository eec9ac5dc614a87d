package workorder

import (
	"github.com/google/uuid"

	"github.com/mecanica/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeServiceOrder = "ServiceOrder"

// Event type constants
const (
	EventTypeServiceOrderCreated       = "ServiceOrderCreated"
	EventTypeServiceOrderStatusChanged = "ServiceOrderStatusChanged"
	EventTypeServiceOrderApproved      = "ServiceOrderApproved"
	EventTypeServiceOrderCancelled     = "ServiceOrderCancelled"
)

// ServiceOrderCreatedEvent is raised when a new service order is created
type ServiceOrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID   uuid.UUID `json:"order_id"`
	ClientID  uuid.UUID `json:"client_id"`
	VehicleID uuid.UUID `json:"vehicle_id"`
}

// NewServiceOrderCreatedEvent creates a new ServiceOrderCreatedEvent
func NewServiceOrderCreatedEvent(o *ServiceOrder) *ServiceOrderCreatedEvent {
	return &ServiceOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeServiceOrderCreated, AggregateTypeServiceOrder, o.ID),
		OrderID:         o.ID,
		ClientID:        o.ClientID,
		VehicleID:       o.VehicleID,
	}
}

// EventType returns the event type name
func (e *ServiceOrderCreatedEvent) EventType() string {
	return EventTypeServiceOrderCreated
}

// ServiceOrderStatusChangedEvent is raised on every status change
type ServiceOrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID        uuid.UUID   `json:"order_id"`
	PreviousStatus OrderStatus `json:"previous_status"`
	NewStatus      OrderStatus `json:"new_status"`
}

// NewServiceOrderStatusChangedEvent creates a new ServiceOrderStatusChangedEvent
func NewServiceOrderStatusChangedEvent(o *ServiceOrder, previous OrderStatus) *ServiceOrderStatusChangedEvent {
	return &ServiceOrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeServiceOrderStatusChanged, AggregateTypeServiceOrder, o.ID),
		OrderID:         o.ID,
		PreviousStatus:  previous,
		NewStatus:       o.Status,
	}
}

// EventType returns the event type name
func (e *ServiceOrderStatusChangedEvent) EventType() string {
	return EventTypeServiceOrderStatusChanged
}

// ServiceOrderApprovedEvent is raised when a service order is approved.
// This event triggers execution creation and stock depletion in the
// approval saga.
type ServiceOrderApprovedEvent struct {
	shared.BaseDomainEvent
	OrderID    uuid.UUID `json:"order_id"`
	ApprovedBy uuid.UUID `json:"approved_by"`
	ClientID   uuid.UUID `json:"client_id"`
	VehicleID  uuid.UUID `json:"vehicle_id"`
}

// NewServiceOrderApprovedEvent creates a new ServiceOrderApprovedEvent
func NewServiceOrderApprovedEvent(o *ServiceOrder, approvedBy uuid.UUID) *ServiceOrderApprovedEvent {
	return &ServiceOrderApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeServiceOrderApproved, AggregateTypeServiceOrder, o.ID),
		OrderID:         o.ID,
		ApprovedBy:      approvedBy,
		ClientID:        o.ClientID,
		VehicleID:       o.VehicleID,
	}
}

// EventType returns the event type name
func (e *ServiceOrderApprovedEvent) EventType() string {
	return EventTypeServiceOrderApproved
}

// ServiceOrderCancelledEvent is raised when a service order is cancelled
type ServiceOrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderID uuid.UUID `json:"order_id"`
	Reason  string    `json:"reason"`
}

// NewServiceOrderCancelledEvent creates a new ServiceOrderCancelledEvent
func NewServiceOrderCancelledEvent(o *ServiceOrder, reason string) *ServiceOrderCancelledEvent {
	return &ServiceOrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeServiceOrderCancelled, AggregateTypeServiceOrder, o.ID),
		OrderID:         o.ID,
		Reason:          reason,
	}
}

// EventType returns the event type name
func (e *ServiceOrderCancelledEvent) EventType() string {
	return EventTypeServiceOrderCancelled
}
