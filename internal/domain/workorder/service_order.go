package workorder

import (
	"time"

	"github.com/google/uuid"

	"github.com/mecanica/backend/internal/domain/shared"
)

// OrderStatus represents the status of a service order
type OrderStatus string

const (
	OrderStatusRequested        OrderStatus = "REQUESTED"
	OrderStatusReceived         OrderStatus = "RECEIVED"
	OrderStatusInDiagnosis      OrderStatus = "IN_DIAGNOSIS"
	OrderStatusAwaitingApproval OrderStatus = "AWAITING_APPROVAL"
	OrderStatusApproved         OrderStatus = "APPROVED"
	OrderStatusRejected         OrderStatus = "REJECTED"
	OrderStatusScheduled        OrderStatus = "SCHEDULED"
	OrderStatusInExecution      OrderStatus = "IN_EXECUTION"
	OrderStatusFinished         OrderStatus = "FINISHED"
	OrderStatusDelivered        OrderStatus = "DELIVERED"
	OrderStatusCancelled        OrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusRequested, OrderStatusReceived, OrderStatusInDiagnosis,
		OrderStatusAwaitingApproval, OrderStatusApproved, OrderStatusRejected,
		OrderStatusScheduled, OrderStatusInExecution, OrderStatusFinished,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the status admits no further transitions
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status.
// The happy path is linear; CANCELLED is reachable from any non-terminal state.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if target == OrderStatusCancelled {
		return !s.IsTerminal()
	}
	switch s {
	case OrderStatusRequested:
		return target == OrderStatusReceived
	case OrderStatusReceived:
		return target == OrderStatusInDiagnosis
	case OrderStatusInDiagnosis:
		return target == OrderStatusAwaitingApproval
	case OrderStatusAwaitingApproval:
		return target == OrderStatusApproved || target == OrderStatusRejected
	case OrderStatusApproved:
		return target == OrderStatusScheduled
	case OrderStatusScheduled:
		return target == OrderStatusInExecution
	case OrderStatusInExecution:
		return target == OrderStatusFinished
	case OrderStatusFinished:
		return target == OrderStatusDelivered
	}
	return false
}

// ValidateTransition checks whether from may move to target, returning a typed
// error that carries the offending edge
func ValidateTransition(from, to OrderStatus, id uuid.UUID) error {
	if !from.CanTransitionTo(to) {
		return &shared.InvalidStateTransitionError{AggregateID: id, From: from.String(), To: to.String()}
	}
	return nil
}

// ActorRole identifies who is acting on a service order
type ActorRole string

const (
	RoleClient   ActorRole = "CLIENT"
	RoleEmployee ActorRole = "EMPLOYEE"
)

// ServiceOrder represents the overarching repair job linking a client, a
// vehicle, and its budget and execution. It is the aggregate root for the
// work-order lifecycle.
type ServiceOrder struct {
	shared.BaseAggregateRoot
	Status             OrderStatus `gorm:"type:varchar(20);not null;index"`
	RequestDate        time.Time   `gorm:"not null"`
	DeliveryDate       *time.Time
	CancellationReason string    `gorm:"type:varchar(500)"`
	ClientID           uuid.UUID `gorm:"type:uuid;not null;index"`
	VehicleID          uuid.UUID `gorm:"type:uuid;not null;index"`
	Description        string    `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (ServiceOrder) TableName() string {
	return "service_orders"
}

// NewServiceOrder creates a new service order in REQUESTED status
func NewServiceOrder(clientID, vehicleID uuid.UUID, description string) (*ServiceOrder, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if vehicleID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VEHICLE", "Vehicle ID cannot be empty")
	}
	if len(description) > 500 {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 500 characters")
	}

	o := &ServiceOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Status:            OrderStatusRequested,
		RequestDate:       time.Now(),
		ClientID:          clientID,
		VehicleID:         vehicleID,
		Description:       description,
	}
	o.AddDomainEvent(NewServiceOrderCreatedEvent(o))
	return o, nil
}

// transitionTo performs a guarded status change and records the generic
// status-changed event
func (o *ServiceOrder) transitionTo(target OrderStatus) error {
	if err := ValidateTransition(o.Status, target, o.ID); err != nil {
		return err
	}
	previous := o.Status
	o.Status = target
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	o.AddDomainEvent(NewServiceOrderStatusChangedEvent(o, previous))
	return nil
}

// Receive acknowledges that the vehicle arrived at the shop
func (o *ServiceOrder) Receive() error {
	return o.transitionTo(OrderStatusReceived)
}

// StartDiagnosis moves the order into diagnosis
func (o *ServiceOrder) StartDiagnosis() error {
	return o.transitionTo(OrderStatusInDiagnosis)
}

// SubmitForApproval moves the order to AWAITING_APPROVAL, typically when the
// budget is sent to the client
func (o *ServiceOrder) SubmitForApproval() error {
	return o.transitionTo(OrderStatusAwaitingApproval)
}

// Approve moves the order to APPROVED. The authorization guard runs before the
// transition-legality guard so the two failures stay distinguishable: an
// employee may always approve, a client may only approve their own order.
func (o *ServiceOrder) Approve(approvedBy uuid.UUID, role ActorRole) error {
	if role != RoleEmployee && !(role == RoleClient && approvedBy == o.ClientID) {
		return &shared.RoleNotAuthorizedError{AggregateID: o.ID, Role: string(role)}
	}
	if err := ValidateTransition(o.Status, OrderStatusApproved, o.ID); err != nil {
		return err
	}

	previous := o.Status
	o.Status = OrderStatusApproved
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewServiceOrderStatusChangedEvent(o, previous))
	o.AddDomainEvent(NewServiceOrderApprovedEvent(o, approvedBy))
	return nil
}

// Reject moves the order to REJECTED under the same authorization rule as Approve
func (o *ServiceOrder) Reject(rejectedBy uuid.UUID, role ActorRole) error {
	if role != RoleEmployee && !(role == RoleClient && rejectedBy == o.ClientID) {
		return &shared.RoleNotAuthorizedError{AggregateID: o.ID, Role: string(role)}
	}
	return o.transitionTo(OrderStatusRejected)
}

// Schedule moves an approved order into the execution queue
func (o *ServiceOrder) Schedule() error {
	return o.transitionTo(OrderStatusScheduled)
}

// StartExecution marks the order as being worked on
func (o *ServiceOrder) StartExecution() error {
	return o.transitionTo(OrderStatusInExecution)
}

// Finish marks the repair work as done
func (o *ServiceOrder) Finish() error {
	return o.transitionTo(OrderStatusFinished)
}

// Deliver hands the vehicle back to the client
func (o *ServiceOrder) Deliver() error {
	if err := o.transitionTo(OrderStatusDelivered); err != nil {
		return err
	}
	now := time.Now()
	o.DeliveryDate = &now
	return nil
}

// Cancel cancels the order with a reason. Allowed from any non-terminal state.
func (o *ServiceOrder) Cancel(reason string) error {
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancellation reason cannot be empty")
	}
	if len(reason) > 500 {
		return shared.NewDomainError("INVALID_REASON", "Cancellation reason cannot exceed 500 characters")
	}
	if err := ValidateTransition(o.Status, OrderStatusCancelled, o.ID); err != nil {
		return err
	}

	previous := o.Status
	o.Status = OrderStatusCancelled
	o.CancellationReason = reason
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewServiceOrderStatusChangedEvent(o, previous))
	o.AddDomainEvent(NewServiceOrderCancelledEvent(o, reason))
	return nil
}
