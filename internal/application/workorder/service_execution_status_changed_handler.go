package workorder

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mecanica/backend/internal/application/notification"
	"github.com/mecanica/backend/internal/domain/execution"
	"github.com/mecanica/backend/internal/domain/partner"
	"github.com/mecanica/backend/internal/domain/shared"
)

// OrderProgressor advances a service order as its execution progresses
type OrderProgressor interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ServiceOrderResponse, error)
	StartExecution(ctx context.Context, orderID uuid.UUID) (*ServiceOrderResponse, error)
	Finish(ctx context.Context, orderID uuid.UUID) (*ServiceOrderResponse, error)
}

// ServiceExecutionStatusChangedHandler keeps the service order status in sync
// with its execution: when the mechanic starts working the order moves to
// IN_EXECUTION, and when the work completes the order moves to FINISHED.
type ServiceExecutionStatusChangedHandler struct {
	logger     *zap.Logger
	orders     OrderProgressor
	clientRepo partner.ClientRepository
	notifier   notification.Notifier
}

// NewServiceExecutionStatusChangedHandler creates a new handler for execution
// status changes
func NewServiceExecutionStatusChangedHandler(
	logger *zap.Logger,
	orders OrderProgressor,
	clientRepo partner.ClientRepository,
) *ServiceExecutionStatusChangedHandler {
	return &ServiceExecutionStatusChangedHandler{
		logger:     logger,
		orders:     orders,
		clientRepo: clientRepo,
	}
}

// WithNotifier sets the notifier used for the completion notice
func (h *ServiceExecutionStatusChangedHandler) WithNotifier(notifier notification.Notifier) *ServiceExecutionStatusChangedHandler {
	h.notifier = notifier
	return h
}

// EventTypes returns the event types this handler is interested in
func (h *ServiceExecutionStatusChangedHandler) EventTypes() []string {
	return []string{execution.EventTypeServiceExecutionStatusChanged}
}

// Handle processes a ServiceExecutionStatusChangedEvent. Only the two edges
// that drive the order matter; every other change is a no-op here.
func (h *ServiceExecutionStatusChangedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	statusEvent, ok := event.(*execution.ServiceExecutionStatusChangedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", execution.EventTypeServiceExecutionStatusChanged),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			execution.EventTypeServiceExecutionStatusChanged, event.EventType())
	}

	h.logCurrentOrderStatus(ctx, statusEvent.ServiceOrderID)

	switch {
	case statusEvent.PreviousStatus == execution.ExecutionStatusAssigned &&
		statusEvent.NewStatus == execution.ExecutionStatusInProgress:
		if _, err := h.orders.StartExecution(ctx, statusEvent.ServiceOrderID); err != nil {
			h.logger.Error("failed to move order to IN_EXECUTION",
				zap.String("order_id", statusEvent.ServiceOrderID.String()),
				zap.String("execution_id", statusEvent.ExecutionID.String()),
				zap.Error(err),
			)
			return err
		}

	case statusEvent.PreviousStatus == execution.ExecutionStatusInProgress &&
		statusEvent.NewStatus == execution.ExecutionStatusCompleted:
		order, err := h.orders.Finish(ctx, statusEvent.ServiceOrderID)
		if err != nil {
			h.logger.Error("failed to move order to FINISHED",
				zap.String("order_id", statusEvent.ServiceOrderID.String()),
				zap.String("execution_id", statusEvent.ExecutionID.String()),
				zap.Error(err),
			)
			return err
		}
		h.notifyCompletion(ctx, order)

	default:
		h.logger.Debug("execution status change does not drive the order",
			zap.String("execution_id", statusEvent.ExecutionID.String()),
			zap.String("previous_status", statusEvent.PreviousStatus.String()),
			zap.String("new_status", statusEvent.NewStatus.String()),
		)
	}
	return nil
}

// logCurrentOrderStatus records the order status before the sync for
// traceability; a failed read never blocks the sync itself
func (h *ServiceExecutionStatusChangedHandler) logCurrentOrderStatus(ctx context.Context, orderID uuid.UUID) {
	order, err := h.orders.GetByID(ctx, orderID)
	if err != nil {
		h.logger.Warn("could not read order status before sync",
			zap.String("order_id", orderID.String()),
			zap.Error(err),
		)
		return
	}
	h.logger.Info("syncing order with execution",
		zap.String("order_id", orderID.String()),
		zap.String("order_status", order.Status.String()),
	)
}

// notifyCompletion tells the client the vehicle is ready. Best-effort: a
// failed lookup or send is logged and the sync still counts as done.
func (h *ServiceExecutionStatusChangedHandler) notifyCompletion(ctx context.Context, order *ServiceOrderResponse) {
	if h.notifier == nil {
		return
	}

	client, err := h.clientRepo.FindByID(ctx, order.ClientID)
	if err != nil {
		h.logger.Warn("client lookup failed, skipping completion notice",
			zap.String("order_id", order.ID.String()),
			zap.String("client_id", order.ClientID.String()),
			zap.Error(err),
		)
		return
	}

	msg := notification.Message{
		To:      client.Email,
		ToName:  client.Name,
		Subject: fmt.Sprintf("Your vehicle is ready - service order %s", order.ID),
		Body: fmt.Sprintf(
			"Hello %s,\n\nThe work on your vehicle has been completed. "+
				"You can pick it up at the shop.\n\nService order: %s\n",
			client.Name, order.ID,
		),
	}
	if err := h.notifier.Send(ctx, msg); err != nil {
		h.logger.Error("failed to send completion notice",
			zap.String("order_id", order.ID.String()),
			zap.String("client_email", client.Email),
			zap.Error(err),
		)
	}
}

// Ensure ServiceExecutionStatusChangedHandler implements shared.EventHandler
var _ shared.EventHandler = (*ServiceExecutionStatusChangedHandler)(nil)

var _ OrderProgressor = (*ServiceOrderService)(nil)
