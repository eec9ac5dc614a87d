package notification

import "context"

// Message is an outbound client notification.
// Delivery is email today; the interface keeps other channels possible.
type Message struct {
	To      string
	ToName  string
	Subject string
	Body    string
}

// Notifier sends client notifications. Implementations must be safe for
// concurrent use. Callers treat delivery as fire-and-forget: failures are
// logged, not propagated.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}
