package budget

import (
	"github.com/google/uuid"

	"github.com/mecanica/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeBudget = "Budget"

// Event type constants
const (
	EventTypeBudgetGenerated = "BudgetGenerated"
	EventTypeBudgetSent      = "BudgetSent"
	EventTypeBudgetApproved  = "BudgetApproved"
	EventTypeBudgetRejected  = "BudgetRejected"
	EventTypeBudgetExpired   = "BudgetExpired"
)

// BudgetGeneratedEvent is raised when a new budget is created
type BudgetGeneratedEvent struct {
	shared.BaseDomainEvent
	BudgetID       uuid.UUID `json:"budget_id"`
	ServiceOrderID uuid.UUID `json:"service_order_id"`
	ClientID       uuid.UUID `json:"client_id"`
}

// NewBudgetGeneratedEvent creates a new BudgetGeneratedEvent
func NewBudgetGeneratedEvent(b *Budget) *BudgetGeneratedEvent {
	return &BudgetGeneratedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBudgetGenerated, AggregateTypeBudget, b.ID),
		BudgetID:        b.ID,
		ServiceOrderID:  b.ServiceOrderID,
		ClientID:        b.ClientID,
	}
}

// EventType returns the event type name
func (e *BudgetGeneratedEvent) EventType() string {
	return EventTypeBudgetGenerated
}

// BudgetSentEvent is raised when a budget is sent to the client.
// This event moves the linked service order to AWAITING_APPROVAL and triggers
// the client notification.
type BudgetSentEvent struct {
	shared.BaseDomainEvent
	BudgetID           uuid.UUID      `json:"budget_id"`
	ServiceOrderID     uuid.UUID      `json:"service_order_id"`
	ClientID           uuid.UUID      `json:"client_id"`
	TotalAmountCents   int64          `json:"total_amount_cents"`
	ValidityPeriodDays int            `json:"validity_period_days"`
	DeliveryMethod     DeliveryMethod `json:"delivery_method"`
}

// NewBudgetSentEvent creates a new BudgetSentEvent
func NewBudgetSentEvent(b *Budget) *BudgetSentEvent {
	return &BudgetSentEvent{
		BaseDomainEvent:    shared.NewBaseDomainEvent(EventTypeBudgetSent, AggregateTypeBudget, b.ID),
		BudgetID:           b.ID,
		ServiceOrderID:     b.ServiceOrderID,
		ClientID:           b.ClientID,
		TotalAmountCents:   b.TotalAmount.Cents(),
		ValidityPeriodDays: b.ValidityPeriodDays,
		DeliveryMethod:     b.DeliveryMethod,
	}
}

// EventType returns the event type name
func (e *BudgetSentEvent) EventType() string {
	return EventTypeBudgetSent
}

// BudgetApprovedEvent is raised when a budget is approved.
// This event moves the linked service order to APPROVED.
type BudgetApprovedEvent struct {
	shared.BaseDomainEvent
	BudgetID       uuid.UUID `json:"budget_id"`
	ServiceOrderID uuid.UUID `json:"service_order_id"`
	ClientID       uuid.UUID `json:"client_id"`
	ApprovedBy     uuid.UUID `json:"approved_by"`
}

// NewBudgetApprovedEvent creates a new BudgetApprovedEvent
func NewBudgetApprovedEvent(b *Budget, approvedBy uuid.UUID) *BudgetApprovedEvent {
	return &BudgetApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBudgetApproved, AggregateTypeBudget, b.ID),
		BudgetID:        b.ID,
		ServiceOrderID:  b.ServiceOrderID,
		ClientID:        b.ClientID,
		ApprovedBy:      approvedBy,
	}
}

// EventType returns the event type name
func (e *BudgetApprovedEvent) EventType() string {
	return EventTypeBudgetApproved
}

// BudgetRejectedEvent is raised when a budget is rejected.
// This event moves the linked service order to REJECTED.
type BudgetRejectedEvent struct {
	shared.BaseDomainEvent
	BudgetID       uuid.UUID `json:"budget_id"`
	ServiceOrderID uuid.UUID `json:"service_order_id"`
	ClientID       uuid.UUID `json:"client_id"`
	RejectedBy     uuid.UUID `json:"rejected_by"`
	Reason         string    `json:"reason,omitempty"`
}

// NewBudgetRejectedEvent creates a new BudgetRejectedEvent
func NewBudgetRejectedEvent(b *Budget, rejectedBy uuid.UUID, reason string) *BudgetRejectedEvent {
	return &BudgetRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBudgetRejected, AggregateTypeBudget, b.ID),
		BudgetID:        b.ID,
		ServiceOrderID:  b.ServiceOrderID,
		ClientID:        b.ClientID,
		RejectedBy:      rejectedBy,
		Reason:          reason,
	}
}

// EventType returns the event type name
func (e *BudgetRejectedEvent) EventType() string {
	return EventTypeBudgetRejected
}

// BudgetExpiredEvent is raised when a budget passes its validity period
type BudgetExpiredEvent struct {
	shared.BaseDomainEvent
	BudgetID       uuid.UUID `json:"budget_id"`
	ServiceOrderID uuid.UUID `json:"service_order_id"`
}

// NewBudgetExpiredEvent creates a new BudgetExpiredEvent
func NewBudgetExpiredEvent(b *Budget) *BudgetExpiredEvent {
	return &BudgetExpiredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBudgetExpired, AggregateTypeBudget, b.ID),
		BudgetID:        b.ID,
		ServiceOrderID:  b.ServiceOrderID,
	}
}

// EventType returns the event type name
func (e *BudgetExpiredEvent) EventType() string {
	return EventTypeBudgetExpired
}
