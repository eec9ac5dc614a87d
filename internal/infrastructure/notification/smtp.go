package notification

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/mecanica/backend/internal/application/notification"
	"github.com/mecanica/backend/internal/infrastructure/config"
)

// SMTPNotifier delivers notifications over SMTP
type SMTPNotifier struct {
	cfg config.NotificationConfig
}

// NewSMTPNotifier creates a new SMTPNotifier
func NewSMTPNotifier(cfg config.NotificationConfig) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg}
}

// Send delivers the message as a plain-text email
func (n *SMTPNotifier) Send(ctx context.Context, msg notification.Message) error {
	if msg.To == "" {
		return fmt.Errorf("notification recipient is empty")
	}

	addr := fmt.Sprintf("%s:%d", n.cfg.SMTPHost, n.cfg.SMTPPort)
	var auth smtp.Auth
	if n.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", n.cfg.SMTPUser, n.cfg.SMTPPass, n.cfg.SMTPHost)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", n.cfg.FromName, n.cfg.FromAddress)
	fmt.Fprintf(&b, "To: %s <%s>\r\n", msg.ToName, msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)

	if err := smtp.SendMail(addr, auth, n.cfg.FromAddress, []string{msg.To}, []byte(b.String())); err != nil {
		return fmt.Errorf("sending mail to %s: %w", msg.To, err)
	}
	return nil
}

// Ensure SMTPNotifier implements notification.Notifier
var _ notification.Notifier = (*SMTPNotifier)(nil)
