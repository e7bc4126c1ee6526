package notify

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"AIUpdatesMonitor/internal/config"
	"AIUpdatesMonitor/internal/domain"
	"AIUpdatesMonitor/internal/ports"
)

// EmailChannel delivers digests over SMTP.
type EmailChannel struct {
	cfg config.EmailConfig
}

var _ ports.NotificationChannel = (*EmailChannel)(nil)

// NewEmailChannel validates the SMTP settings.
func NewEmailChannel(cfg config.EmailConfig) (*EmailChannel, error) {
	if cfg.SMTPServer == "" || cfg.Username == "" || cfg.Password == "" || cfg.To == "" {
		return nil, fmt.Errorf("email notifications enabled but smtp settings are incomplete")
	}
	return &EmailChannel{cfg: cfg}, nil
}

// Name identifies the channel in logs and the audit history.
func (c *EmailChannel) Name() string { return "email" }

// Send delivers one digest email for the batch. Port 465 uses implicit TLS,
// any other port negotiates STARTTLS.
func (c *EmailChannel) Send(ctx context.Context, items []domain.SeenItem) error {
	html, err := htmlDigest(items)
	if err != nil {
		return err
	}

	msg := mail.NewMsg()
	if err := msg.From(c.cfg.Username); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(c.cfg.To); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(fmt.Sprintf("AI Updates Monitor: %d new update(s)", len(items)))
	msg.SetBodyString(mail.TypeTextPlain, textDigest(items))
	msg.AddAlternativeString(mail.TypeTextHTML, html)

	opts := []mail.Option{
		mail.WithPort(c.cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(c.cfg.Username),
		mail.WithPassword(c.cfg.Password),
	}
	if c.cfg.SMTPPort == 465 {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}

	client, err := mail.NewClient(c.cfg.SMTPServer, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send digest: %w", err)
	}
	return nil
}
