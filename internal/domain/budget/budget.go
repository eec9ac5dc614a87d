package budget

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mecanica/backend/internal/domain/shared"
	"github.com/mecanica/backend/internal/domain/shared/valueobject"
)

// Status represents the status of a budget
type Status string

const (
	StatusGenerated Status = "GENERATED"
	StatusSent      Status = "SENT"
	StatusReceived  Status = "RECEIVED"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusExpired   Status = "EXPIRED"
)

// IsValid checks if the status is a valid budget Status
func (s Status) IsValid() bool {
	switch s {
	case StatusGenerated, StatusSent, StatusReceived, StatusApproved, StatusRejected, StatusExpired:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusGenerated:
		return target == StatusSent || target == StatusExpired
	case StatusSent:
		return target == StatusReceived || target == StatusApproved ||
			target == StatusRejected || target == StatusExpired
	case StatusReceived:
		return target == StatusApproved || target == StatusRejected || target == StatusExpired
	case StatusApproved, StatusRejected:
		return target == StatusExpired
	case StatusExpired:
		return false // Terminal state
	}
	return false
}

// ValidateTransition checks whether from may move to target, returning a typed
// error that carries the offending edge
func ValidateTransition(from, to Status, id uuid.UUID) error {
	if !from.CanTransitionTo(to) {
		return &shared.InvalidStateTransitionError{AggregateID: id, From: from.String(), To: to.String()}
	}
	return nil
}

// DeliveryMethod represents how a budget is delivered to the client
type DeliveryMethod string

const (
	DeliveryEmail    DeliveryMethod = "EMAIL"
	DeliveryWhatsApp DeliveryMethod = "WHATSAPP"
	DeliveryPhone    DeliveryMethod = "PHONE"
)

// Budget represents a quote for repair work with its own approval lifecycle.
// It is the aggregate root for quote operations.
type Budget struct {
	shared.BaseAggregateRoot
	Status             Status            `gorm:"type:varchar(20);not null;index"`
	TotalAmount        valueobject.Money `gorm:"type:bigint;not null"`
	ValidityPeriodDays int               `gorm:"not null;default:7"`
	GenerationDate     time.Time         `gorm:"not null"`
	SentDate           *time.Time
	ApprovalDate       *time.Time
	RejectionDate      *time.Time
	DeliveryMethod     DeliveryMethod `gorm:"type:varchar(20);not null"`
	Notes              string         `gorm:"type:varchar(500)"`
	ServiceOrderID     uuid.UUID      `gorm:"type:uuid;not null;index"`
	ClientID           uuid.UUID      `gorm:"type:uuid;not null;index"`

	Items []Item `gorm:"foreignKey:BudgetID;references:ID"`
}

// TableName returns the table name for GORM
func (Budget) TableName() string {
	return "budgets"
}

// NewBudget creates a new budget in GENERATED status
func NewBudget(serviceOrderID, clientID uuid.UUID, validityPeriodDays int, deliveryMethod DeliveryMethod) (*Budget, error) {
	if serviceOrderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SERVICE_ORDER", "Service order ID cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if validityPeriodDays <= 0 {
		return nil, shared.NewDomainError("INVALID_VALIDITY", "Validity period must be positive")
	}
	if deliveryMethod == "" {
		deliveryMethod = DeliveryEmail
	}

	b := &Budget{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		Status:             StatusGenerated,
		TotalAmount:        valueobject.NewMoneyBRL(0),
		ValidityPeriodDays: validityPeriodDays,
		GenerationDate:     time.Now(),
		DeliveryMethod:     deliveryMethod,
		ServiceOrderID:     serviceOrderID,
		ClientID:           clientID,
		Items:              make([]Item, 0),
	}
	b.AddDomainEvent(NewBudgetGeneratedEvent(b))
	return b, nil
}

// ExpiresAt returns the instant after which the budget is expired
func (b *Budget) ExpiresAt() time.Time {
	return b.GenerationDate.AddDate(0, 0, b.ValidityPeriodDays)
}

// IsExpired reports whether the budget validity period has elapsed.
// The budget is still valid exactly at the boundary instant.
func (b *Budget) IsExpired() bool {
	return b.IsExpiredAt(time.Now())
}

// IsExpiredAt reports whether the budget is expired at the given instant
func (b *Budget) IsExpiredAt(now time.Time) bool {
	return now.After(b.ExpiresAt())
}

// AddItem adds a line item to the budget and recalculates the total.
// Only allowed in GENERATED status.
func (b *Budget) AddItem(kind ItemKind, stockItemID *uuid.UUID, description string, quantity int, unitPrice valueobject.Money) (*Item, error) {
	if b.Status != StatusGenerated {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot add items to budget in %s status", b.Status))
	}

	item, err := NewItem(b.ID, kind, stockItemID, description, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	b.Items = append(b.Items, *item)
	if err := b.recalculateTotal(); err != nil {
		return nil, err
	}
	b.UpdatedAt = time.Now()
	return item, nil
}

// RemoveItem removes a line item by ID and recalculates the total.
// Only allowed in GENERATED status.
func (b *Budget) RemoveItem(itemID uuid.UUID) error {
	if b.Status != StatusGenerated {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot remove items from budget in %s status", b.Status))
	}

	for i, item := range b.Items {
		if item.ID == itemID {
			b.Items = append(b.Items[:i], b.Items[i+1:]...)
			if err := b.recalculateTotal(); err != nil {
				return err
			}
			b.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.ErrNotFound
}

func (b *Budget) recalculateTotal() error {
	total := valueobject.NewMoneyBRL(0)
	for _, item := range b.Items {
		sum, err := total.Add(item.Amount)
		if err != nil {
			return err
		}
		total = sum
	}
	b.TotalAmount = total
	return nil
}

// ValidateCanSend checks whether the budget may be sent to the client.
// Only GENERATED budgets may be sent.
func (b *Budget) ValidateCanSend() error {
	return ValidateTransition(b.Status, StatusSent, b.ID)
}

// Send marks the budget as sent to the client
func (b *Budget) Send() error {
	if err := b.ValidateCanSend(); err != nil {
		return err
	}

	now := time.Now()
	b.Status = StatusSent
	b.SentDate = &now
	b.UpdatedAt = now
	b.IncrementVersion()

	b.AddDomainEvent(NewBudgetSentEvent(b))
	return nil
}

// ValidateCanMarkAsReceived checks whether the budget may be marked as
// received by the client. Only SENT budgets qualify.
func (b *Budget) ValidateCanMarkAsReceived() error {
	return ValidateTransition(b.Status, StatusReceived, b.ID)
}

// MarkAsReceived records that the client confirmed receipt of the budget
func (b *Budget) MarkAsReceived() error {
	if err := b.ValidateCanMarkAsReceived(); err != nil {
		return err
	}

	b.Status = StatusReceived
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// ValidateApproval checks whether the budget may be approved.
// An already approved budget fails with AlreadyApprovedError before any other
// check; an expired budget fails with ExpiredError regardless of status.
func (b *Budget) ValidateApproval() error {
	if b.Status == StatusApproved {
		return &shared.AlreadyApprovedError{AggregateID: b.ID}
	}
	if b.IsExpired() {
		return &shared.ExpiredError{AggregateID: b.ID, ExpirationDate: b.ExpiresAt()}
	}
	return ValidateTransition(b.Status, StatusApproved, b.ID)
}

// Approve marks the budget as approved by the given actor
func (b *Budget) Approve(approvedBy uuid.UUID) error {
	if err := b.ValidateApproval(); err != nil {
		return err
	}

	now := time.Now()
	b.Status = StatusApproved
	b.ApprovalDate = &now
	b.UpdatedAt = now
	b.IncrementVersion()

	b.AddDomainEvent(NewBudgetApprovedEvent(b, approvedBy))
	return nil
}

// ValidateRejection checks whether the budget may be rejected, mirroring the
// approval guard
func (b *Budget) ValidateRejection() error {
	if b.Status == StatusRejected {
		return &shared.AlreadyRejectedError{AggregateID: b.ID}
	}
	if b.IsExpired() {
		return &shared.ExpiredError{AggregateID: b.ID, ExpirationDate: b.ExpiresAt()}
	}
	return ValidateTransition(b.Status, StatusRejected, b.ID)
}

// Reject marks the budget as rejected by the given actor
func (b *Budget) Reject(rejectedBy uuid.UUID, reason string) error {
	if err := b.ValidateRejection(); err != nil {
		return err
	}

	now := time.Now()
	b.Status = StatusRejected
	b.RejectionDate = &now
	if reason != "" {
		b.Notes = reason
	}
	b.UpdatedAt = now
	b.IncrementVersion()

	b.AddDomainEvent(NewBudgetRejectedEvent(b, rejectedBy, reason))
	return nil
}

// Expire marks the budget as expired
func (b *Budget) Expire() error {
	if err := ValidateTransition(b.Status, StatusExpired, b.ID); err != nil {
		return err
	}

	b.Status = StatusExpired
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	b.AddDomainEvent(NewBudgetExpiredEvent(b))
	return nil
}

// SetNotes sets free-form notes on the budget
func (b *Budget) SetNotes(notes string) error {
	if len(notes) > 500 {
		return shared.NewDomainError("INVALID_NOTES", "Notes cannot exceed 500 characters")
	}
	b.Notes = notes
	b.UpdatedAt = time.Now()
	return nil
}

// StockLines returns the budget items that reference a stock item
func (b *Budget) StockLines() []Item {
	lines := make([]Item, 0, len(b.Items))
	for _, item := range b.Items {
		if item.Kind == ItemKindStockItem {
			lines = append(lines, item)
		}
	}
	return lines
}
