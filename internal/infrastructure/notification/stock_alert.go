package notification

import (
	"context"
	"fmt"

	appinventory "github.com/mecanica/backend/internal/application/inventory"
	"github.com/mecanica/backend/internal/application/notification"
)

// StockAlertMailer sends low-stock alerts to the shop's purchasing contact
type StockAlertMailer struct {
	notifier notification.Notifier
	to       string
	toName   string
}

// NewStockAlertMailer creates a new StockAlertMailer
func NewStockAlertMailer(notifier notification.Notifier, to, toName string) *StockAlertMailer {
	return &StockAlertMailer{notifier: notifier, to: to, toName: toName}
}

// SendAlert delivers a low-stock alert through the configured channel
func (m *StockAlertMailer) SendAlert(ctx context.Context, alert appinventory.StockAlert) error {
	subject := fmt.Sprintf("Low stock: %s (%s)", alert.Name, alert.PartCode)
	if alert.OutOfStock {
		subject = fmt.Sprintf("OUT OF STOCK: %s (%s)", alert.Name, alert.PartCode)
	}

	return m.notifier.Send(ctx, notification.Message{
		To:      m.to,
		ToName:  m.toName,
		Subject: subject,
		Body: fmt.Sprintf(
			"Part %s (%s) is below its minimum stock level.\n\n"+
				"Current quantity: %d\nMinimum quantity: %d\n",
			alert.Name, alert.PartCode, alert.CurrentQuantity, alert.MinimumQuantity,
		),
	})
}

// Ensure StockAlertMailer implements the inventory alert interface
var _ appinventory.StockAlertNotifier = (*StockAlertMailer)(nil)
