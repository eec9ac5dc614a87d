package notification

import (
	"context"

	"go.uber.org/zap"

	"github.com/mecanica/backend/internal/application/notification"
)

// LogNotifier writes notifications to the log instead of delivering them.
// Used in development and when outbound mail is disabled.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a new LogNotifier
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.Named("notification")}
}

// Send logs the message
func (n *LogNotifier) Send(ctx context.Context, msg notification.Message) error {
	n.logger.Info("notification",
		zap.String("to", msg.To),
		zap.String("to_name", msg.ToName),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body),
	)
	return nil
}

// Ensure LogNotifier implements notification.Notifier
var _ notification.Notifier = (*LogNotifier)(nil)
