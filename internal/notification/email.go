package notification

import (
	"context"
	"crypto/tls"
	"fmt"
	"html"

	"github.com/wneessen/go-mail"

	"github.com/ritmodivulga/promo-engine/internal/domain"
)

// SMTPConfig describes the outgoing mail server.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// EmailNotifier mails notifications to recipients that have an address
// configured. Recipients without one are skipped.
type EmailNotifier struct {
	cfg        SMTPConfig
	recipients map[string]string
}

func NewEmailNotifier(cfg SMTPConfig, recipients map[string]string) *EmailNotifier {
	return &EmailNotifier{cfg: cfg, recipients: recipients}
}

func (e *EmailNotifier) Notify(ctx context.Context, n domain.Notification) error {
	to, ok := e.recipients[n.Recipient]
	if !ok {
		return nil
	}

	m, err := e.message(to, n)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(e.cfg.Host,
		mail.WithPort(e.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(e.cfg.User),
		mail.WithPassword(e.cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTLSConfig(&tls.Config{ServerName: e.cfg.Host}),
	)
	if err != nil {
		return fmt.Errorf("create smtp client (host=%s port=%d): %w", e.cfg.Host, e.cfg.Port, err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("send notification to %s: %w", n.Recipient, err)
	}
	return nil
}

func (e *EmailNotifier) message(to string, n domain.Notification) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(e.cfg.From); err != nil {
		return nil, fmt.Errorf("set sender: %w", err)
	}
	if err := m.To(to); err != nil {
		return nil, fmt.Errorf("set recipient: %w", err)
	}
	m.Subject(n.Title)
	m.SetBodyString(mail.TypeTextPlain, n.Message)
	m.AddAlternativeString(mail.TypeTextHTML, fmt.Sprintf(
		`<p><strong>%s</strong></p><p>%s</p>`,
		html.EscapeString(n.Title), html.EscapeString(n.Message),
	))
	return m, nil
}
