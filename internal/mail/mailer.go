package mail

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/dukasmart/partspos/internal/config"
	"github.com/dukasmart/partspos/internal/model"
)

// Mailer delivers notification mail. Callers never await delivery
// confirmation; a failed send is the caller's to log and swallow.
type Mailer interface {
	SendLowStockAlert(ctx context.Context, products []model.Product) error
}

// New returns an SMTP-backed mailer, or a logging no-op when SMTP is not
// configured so dev environments need no mail setup.
func New(cfg config.SMTP, logger *slog.Logger) Mailer {
	if cfg.Host == "" || cfg.User == "" {
		return &noopMailer{logger: logger}
	}

	return &smtpMailer{cfg: cfg, dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)}
}

type smtpMailer struct {
	cfg    config.SMTP
	dialer *gomail.Dialer
}

func (m *smtpMailer) SendLowStockAlert(_ context.Context, products []model.Product) error {
	recipient := m.cfg.AlertRecipient
	if recipient == "" {
		recipient = m.cfg.User
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", "Low Stock Alert")
	msg.SetBody("text/html", lowStockBody(products))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send low stock alert: %w", err)
	}

	return nil
}

func lowStockBody(products []model.Product) string {
	var b strings.Builder
	b.WriteString("<h2>Low Stock Alert</h2>")
	b.WriteString("<p>The following products are running low on stock:</p><ul>")
	for _, p := range products {
		b.WriteString("<li><strong>")
		b.WriteString(p.ProductName)
		b.WriteString("</strong> (")
		b.WriteString(p.Category)
		if p.Type != nil && *p.Type != "" {
			b.WriteString(" &bull; ")
			b.WriteString(*p.Type)
		}
		fmt.Fprintf(&b, "): %d remaining (minimum: %d)</li>", p.Quantity, p.MinimumStock)
	}
	b.WriteString("</ul><p>Please restock these items as soon as possible.</p>")

	return b.String()
}

type noopMailer struct {
	logger *slog.Logger
}

func (m *noopMailer) SendLowStockAlert(ctx context.Context, products []model.Product) error {
	names := make([]string, 0, len(products))
	for _, p := range products {
		names = append(names, p.ProductName)
	}

	m.logger.InfoContext(ctx, "smtp not configured, skipping low stock alert",
		slog.Any("products", names))
	return nil
}
