package notify

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/beyondslim/checkout-api/internal/config"
)

// SMTPMailer is the primary notification channel.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

// NewSMTPMailer creates the SMTP delivery strategy.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Name() string { return "smtp" }

func (m *SMTPMailer) Deliver(_ context.Context, msg Message) error {
	if m.cfg.Address == "" || m.cfg.From == "" {
		return fmt.Errorf("smtp is not configured")
	}

	message := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/plain; charset=\"UTF-8\";\r\n\r\n%s",
		m.cfg.From,
		msg.Recipient,
		msg.Subject,
		msg.Body,
	)

	auth := smtp.PlainAuth("", m.cfg.From, m.cfg.Password, m.cfg.Host)
	if err := smtp.SendMail(m.cfg.Address, auth, m.cfg.From, []string{msg.Recipient}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
