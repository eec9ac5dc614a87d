package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mecanica/backend/internal/application/notification"
	appworkorder "github.com/mecanica/backend/internal/application/workorder"
	"github.com/mecanica/backend/internal/domain/budget"
	"github.com/mecanica/backend/internal/domain/partner"
	"github.com/mecanica/backend/internal/domain/shared"
	"github.com/mecanica/backend/internal/domain/shared/valueobject"
	"github.com/mecanica/backend/internal/domain/workorder"
)

// OrderDecider propagates the budget lifecycle onto the linked service order
type OrderDecider interface {
	SubmitForApproval(ctx context.Context, orderID uuid.UUID) (*appworkorder.ServiceOrderResponse, error)
	Approve(ctx context.Context, orderID uuid.UUID, req appworkorder.ApprovalDecisionRequest) (*appworkorder.ServiceOrderResponse, error)
	Reject(ctx context.Context, orderID uuid.UUID, req appworkorder.ApprovalDecisionRequest) (*appworkorder.ServiceOrderResponse, error)
}

// BudgetEventHandler mirrors budget decisions onto the service order: a sent
// budget puts the order in AWAITING_APPROVAL, an approved budget approves the
// order, a rejected budget rejects it. Every branch also notifies the client.
type BudgetEventHandler struct {
	logger     *zap.Logger
	orders     OrderDecider
	budgetRepo budget.Repository
	clientRepo partner.ClientRepository
	notifier   notification.Notifier
}

// NewBudgetEventHandler creates a new handler for budget lifecycle events
func NewBudgetEventHandler(logger *zap.Logger, orders OrderDecider, budgetRepo budget.Repository, clientRepo partner.ClientRepository) *BudgetEventHandler {
	return &BudgetEventHandler{
		logger:     logger,
		orders:     orders,
		budgetRepo: budgetRepo,
		clientRepo: clientRepo,
	}
}

// WithNotifier sets the notifier used for the client notices
func (h *BudgetEventHandler) WithNotifier(notifier notification.Notifier) *BudgetEventHandler {
	h.notifier = notifier
	return h
}

// EventTypes returns the event types this handler is interested in
func (h *BudgetEventHandler) EventTypes() []string {
	return []string{
		budget.EventTypeBudgetSent,
		budget.EventTypeBudgetApproved,
		budget.EventTypeBudgetRejected,
	}
}

// Handle dispatches on the concrete budget event. An event type outside the
// subscription is logged and ignored rather than failing the publish.
func (h *BudgetEventHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *budget.BudgetSentEvent:
		return h.handleSent(ctx, e)
	case *budget.BudgetApprovedEvent:
		return h.handleApproved(ctx, e)
	case *budget.BudgetRejectedEvent:
		return h.handleRejected(ctx, e)
	default:
		h.logger.Warn("ignoring unexpected event",
			zap.String("event_type", event.EventType()),
		)
		return nil
	}
}

// handleSent moves the order to AWAITING_APPROVAL and notifies the client
func (h *BudgetEventHandler) handleSent(ctx context.Context, e *budget.BudgetSentEvent) error {
	if _, err := h.orders.SubmitForApproval(ctx, e.ServiceOrderID); err != nil {
		var notFound *shared.NotFoundError
		if errors.As(err, &notFound) {
			h.logger.Warn("service order not found for sent budget",
				zap.String("budget_id", e.BudgetID.String()),
				zap.String("order_id", e.ServiceOrderID.String()),
			)
			return nil
		}
		h.logger.Error("failed to move order to AWAITING_APPROVAL",
			zap.String("budget_id", e.BudgetID.String()),
			zap.String("order_id", e.ServiceOrderID.String()),
			zap.Error(err),
		)
		return err
	}

	h.notifySent(ctx, e)
	return nil
}

// handleApproved approves the linked order on the client's behalf and
// confirms the decision to the client
func (h *BudgetEventHandler) handleApproved(ctx context.Context, e *budget.BudgetApprovedEvent) error {
	if err := h.decideOrder(ctx, e.BudgetID, e.ServiceOrderID, e.ClientID, e.ApprovedBy, h.orders.Approve); err != nil {
		return err
	}
	h.notifyDecision(ctx, e.BudgetID, e.ClientID, true, "")
	return nil
}

// handleRejected rejects the linked order on the client's behalf and
// confirms the decision to the client
func (h *BudgetEventHandler) handleRejected(ctx context.Context, e *budget.BudgetRejectedEvent) error {
	if err := h.decideOrder(ctx, e.BudgetID, e.ServiceOrderID, e.ClientID, e.RejectedBy, h.orders.Reject); err != nil {
		return err
	}
	h.notifyDecision(ctx, e.BudgetID, e.ClientID, false, e.Reason)
	return nil
}

// decideOrder applies an approval decision to the order. The actor role is
// inferred from the event: the budget's own client acts as CLIENT, anyone
// else as EMPLOYEE.
func (h *BudgetEventHandler) decideOrder(
	ctx context.Context,
	budgetID, orderID, clientID, actorID uuid.UUID,
	decide func(context.Context, uuid.UUID, appworkorder.ApprovalDecisionRequest) (*appworkorder.ServiceOrderResponse, error),
) error {
	role := workorder.RoleEmployee
	if actorID == clientID {
		role = workorder.RoleClient
	}

	if _, err := decide(ctx, orderID, appworkorder.ApprovalDecisionRequest{ActorID: actorID, Role: role}); err != nil {
		var notFound *shared.NotFoundError
		if errors.As(err, &notFound) {
			h.logger.Warn("service order not found for decided budget",
				zap.String("budget_id", budgetID.String()),
				zap.String("order_id", orderID.String()),
			)
			return nil
		}
		h.logger.Error("failed to propagate budget decision to order",
			zap.String("budget_id", budgetID.String()),
			zap.String("order_id", orderID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// notifySent emails the budget to the client. Best-effort: a failed client
// lookup falls back to placeholder contact data so the attempt is still
// logged, and a failed send never fails the saga.
func (h *BudgetEventHandler) notifySent(ctx context.Context, e *budget.BudgetSentEvent) {
	if h.notifier == nil {
		return
	}

	name, email := "Unknown", "unknown@example.com"
	client, err := h.clientRepo.FindByID(ctx, e.ClientID)
	if err != nil {
		h.logger.Warn("client lookup failed for budget notification",
			zap.String("budget_id", e.BudgetID.String()),
			zap.String("client_id", e.ClientID.String()),
			zap.Error(err),
		)
	} else {
		name, email = client.Name, client.Email
	}

	total := valueobject.NewMoneyBRL(e.TotalAmountCents)
	msg := notification.Message{
		To:      email,
		ToName:  name,
		Subject: fmt.Sprintf("Budget for your service order %s", e.ServiceOrderID),
		Body: fmt.Sprintf(
			"Hello %s,\n\nThe budget for your service order is ready.\n\n"+
				"Total: %s\nValid for: %d days\n\n"+
				"Please approve or reject it so we can proceed.\n",
			name, total, e.ValidityPeriodDays,
		),
	}
	if err := h.notifier.Send(ctx, msg); err != nil {
		h.logger.Error("failed to send budget notification",
			zap.String("budget_id", e.BudgetID.String()),
			zap.String("client_email", email),
			zap.Error(err),
		)
	}
}

// notifyDecision confirms an approval decision to the client. The budget is
// fetched for the notice details: when it cannot be resolved the notice is
// dropped with a warning, and a failed client lookup skips the email. Neither
// case undoes the order update already performed.
func (h *BudgetEventHandler) notifyDecision(ctx context.Context, budgetID, clientID uuid.UUID, approved bool, reason string) {
	if h.notifier == nil {
		return
	}

	b, err := h.budgetRepo.FindByID(ctx, budgetID)
	if err != nil {
		h.logger.Warn("budget not resolvable for decision notification",
			zap.String("budget_id", budgetID.String()),
			zap.Error(err),
		)
		return
	}

	client, err := h.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		h.logger.Warn("client lookup failed, skipping decision notification",
			zap.String("budget_id", budgetID.String()),
			zap.String("client_id", clientID.String()),
			zap.Error(err),
		)
		return
	}

	var msg notification.Message
	if approved {
		msg = notification.Message{
			To:      client.Email,
			ToName:  client.Name,
			Subject: fmt.Sprintf("Budget approved for service order %s", b.ServiceOrderID),
			Body: fmt.Sprintf(
				"Hello %s,\n\nYour budget of %s was approved. We will start working on your vehicle shortly.\n",
				client.Name, b.TotalAmount,
			),
		}
	} else {
		body := fmt.Sprintf(
			"Hello %s,\n\nYour budget of %s was rejected.",
			client.Name, b.TotalAmount,
		)
		if reason != "" {
			body += fmt.Sprintf(" Reason: %s.", reason)
		}
		body += "\n\nPlease contact us if you would like a new estimate.\n"
		msg = notification.Message{
			To:      client.Email,
			ToName:  client.Name,
			Subject: fmt.Sprintf("Budget rejected for service order %s", b.ServiceOrderID),
			Body:    body,
		}
	}

	if err := h.notifier.Send(ctx, msg); err != nil {
		h.logger.Error("failed to send decision notification",
			zap.String("budget_id", budgetID.String()),
			zap.String("client_email", client.Email),
			zap.Error(err),
		)
	}
}

// Ensure BudgetEventHandler implements shared.EventHandler
var _ shared.EventHandler = (*BudgetEventHandler)(nil)

var _ OrderDecider = (*appworkorder.ServiceOrderService)(nil)
