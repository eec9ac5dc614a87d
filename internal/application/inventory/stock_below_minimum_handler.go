package inventory

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mecanica/backend/internal/domain/inventory"
	"github.com/mecanica/backend/internal/domain/shared"
)

// StockAlertNotifier is the interface for surfacing low-stock alerts.
// Implementations can support different channels (log, email, chat).
type StockAlertNotifier interface {
	SendAlert(ctx context.Context, alert StockAlert) error
}

// StockAlert describes a stock level that fell under its threshold
type StockAlert struct {
	StockItemID     string `json:"stock_item_id"`
	PartCode        string `json:"part_code"`
	Name            string `json:"name"`
	CurrentQuantity int    `json:"current_quantity"`
	MinimumQuantity int    `json:"minimum_quantity"`
	OutOfStock      bool   `json:"out_of_stock"`
}

// StockBelowMinimumHandler reacts to StockBelowMinimum events raised when a
// movement takes an item under its alert threshold
type StockBelowMinimumHandler struct {
	logger   *zap.Logger
	notifier StockAlertNotifier
}

// NewStockBelowMinimumHandler creates a new handler for low-stock events
func NewStockBelowMinimumHandler(logger *zap.Logger) *StockBelowMinimumHandler {
	return &StockBelowMinimumHandler{logger: logger}
}

// WithNotifier sets the notifier for sending alerts
func (h *StockBelowMinimumHandler) WithNotifier(notifier StockAlertNotifier) *StockBelowMinimumHandler {
	h.notifier = notifier
	return h
}

// EventTypes returns the event types this handler is interested in
func (h *StockBelowMinimumHandler) EventTypes() []string {
	return []string{inventory.EventTypeStockBelowMinimum}
}

// Handle processes a StockBelowMinimumEvent
func (h *StockBelowMinimumHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	lowEvent, ok := event.(*inventory.StockBelowMinimumEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", inventory.EventTypeStockBelowMinimum),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			inventory.EventTypeStockBelowMinimum, event.EventType())
	}

	h.logger.Warn("stock below minimum",
		zap.String("stock_item_id", lowEvent.StockItemID.String()),
		zap.String("part_code", lowEvent.PartCode),
		zap.Int("current_quantity", lowEvent.CurrentQuantity),
		zap.Int("minimum_quantity", lowEvent.MinimumQuantity),
	)

	if h.notifier == nil {
		return nil
	}

	alert := StockAlert{
		StockItemID:     lowEvent.StockItemID.String(),
		PartCode:        lowEvent.PartCode,
		Name:            lowEvent.Name,
		CurrentQuantity: lowEvent.CurrentQuantity,
		MinimumQuantity: lowEvent.MinimumQuantity,
		OutOfStock:      lowEvent.CurrentQuantity == 0,
	}
	if err := h.notifier.SendAlert(ctx, alert); err != nil {
		// Alerting is best-effort; a failed alert must not fail the movement
		h.logger.Error("failed to send stock alert",
			zap.String("part_code", lowEvent.PartCode),
			zap.Error(err),
		)
	}
	return nil
}

// Ensure StockBelowMinimumHandler implements shared.EventHandler
var _ shared.EventHandler = (*StockBelowMinimumHandler)(nil)
