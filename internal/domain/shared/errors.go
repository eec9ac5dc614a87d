package shared

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)

// InvalidStateTransitionError is returned when a status change is not present
// in the aggregate's allowed-transition table.
type InvalidStateTransitionError struct {
	AggregateID uuid.UUID
	From        string
	To          string
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("invalid state transition from %s to %s for aggregate %s", e.From, e.To, e.AggregateID)
}

// AlreadyApprovedError is returned when approving an aggregate that is
// already in APPROVED status.
type AlreadyApprovedError struct {
	AggregateID uuid.UUID
}

func (e *AlreadyApprovedError) Error() string {
	return fmt.Sprintf("aggregate %s is already approved", e.AggregateID)
}

// AlreadyRejectedError is returned when rejecting an aggregate that is
// already in REJECTED status.
type AlreadyRejectedError struct {
	AggregateID uuid.UUID
}

func (e *AlreadyRejectedError) Error() string {
	return fmt.Sprintf("aggregate %s is already rejected", e.AggregateID)
}

// ExpiredError is returned when operating on an aggregate past its validity period.
type ExpiredError struct {
	AggregateID    uuid.UUID
	ExpirationDate time.Time
}

func (e *ExpiredError) Error() string {
	return fmt.Sprintf("aggregate %s expired at %s", e.AggregateID, e.ExpirationDate.Format(time.RFC3339))
}

// RoleNotAuthorizedError is returned when the acting role may not perform a
// transition even though the transition itself is legal. It is deliberately
// distinct from InvalidStateTransitionError.
type RoleNotAuthorizedError struct {
	AggregateID uuid.UUID
	Role        string
}

func (e *RoleNotAuthorizedError) Error() string {
	return fmt.Sprintf("role %s is not authorized to perform this transition on aggregate %s", e.Role, e.AggregateID)
}

// NoMechanicAssignedError is returned when starting a service execution that
// has no mechanic assigned.
type NoMechanicAssignedError struct {
	AggregateID uuid.UUID
}

func (e *NoMechanicAssignedError) Error() string {
	return fmt.Sprintf("service execution %s has no mechanic assigned", e.AggregateID)
}

// InsufficientStockError is returned when an outbound movement requests more
// than the current stock quantity.
type InsufficientStockError struct {
	StockItemID uuid.UUID
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for item %s: requested %d, available %d", e.StockItemID, e.Requested, e.Available)
}

// InvalidAdjustmentError is returned when a stock adjustment would result in a
// negative quantity.
type InvalidAdjustmentError struct {
	StockItemID    uuid.UUID
	ResultingStock int
}

func (e *InvalidAdjustmentError) Error() string {
	return fmt.Sprintf("invalid adjustment for item %s: resulting stock would be %d", e.StockItemID, e.ResultingStock)
}

// NotFoundError carries the kind and identifier of a missing aggregate so
// callers can map it to a precise outward response.
type NotFoundError struct {
	Kind string
	ID   uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}
