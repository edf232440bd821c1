package notification

import (
	"context"
	"errors"
	"fmt"

	"resonance/config"

	"github.com/wneessen/go-mail"
)

// Sender delivers composed messages over SMTP.
type Sender interface {
	DialAndSendWithContext(ctx context.Context, msgs ...*mail.Msg) error
}

// MailNotifier sends each message as a plain-text email.
type MailNotifier struct {
	Sender Sender
	From   string
}

// NewMailNotifier dials the configured SMTP relay. STARTTLS is required.
func NewMailNotifier(cfg config.Config) (*MailNotifier, error) {
	if cfg.SMTPHost == "" {
		return nil, errors.New("SMTP_HOST is not set")
	}
	opts := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
	}
	if cfg.SMTPUsername != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.SMTPUsername),
			mail.WithPassword(cfg.SMTPPassword),
		)
	}
	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}
	return &MailNotifier{Sender: client, From: cfg.MailFrom}, nil
}

func (n *MailNotifier) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return nil
	}
	m, err := n.compose(msg)
	if err != nil {
		return err
	}
	if err := n.Sender.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("failed to send %s email: %w", msg.Kind, err)
	}
	return nil
}

func (n *MailNotifier) compose(msg Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(n.From); err != nil {
		return nil, fmt.Errorf("invalid sender address %q: %w", n.From, err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient address %q: %w", msg.To, err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Body)
	return m, nil
}
