package notify

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"

	"DEVLINK_BACK-END/internal/config"
)

// SMTPMailer sends plain text email through an SMTP relay (e.g. Gmail)
type SMTPMailer struct {
	config   *config.EmailConfig
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPMailer creates a new SMTP mailer
func NewSMTPMailer(cfg *config.EmailConfig) *SMTPMailer {
	return &SMTPMailer{
		config:   cfg,
		sendMail: smtp.SendMail,
	}
}

// Send sends msg using SMTP
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	// Check if credentials are set
	if m.config.SMTPUsername == "" || m.config.SMTPPassword == "" {
		return errors.New("email credentials not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	auth := smtp.PlainAuth("", m.config.SMTPUsername, m.config.SMTPPassword, m.config.SMTPHost)

	fromEmail := m.config.FromEmail
	if fromEmail == "" {
		fromEmail = m.config.SMTPUsername
	}

	body := []byte(fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"Content-Type: text/plain; charset=UTF-8\r\n"+
			"\r\n"+
			"%s\r\n",
		m.config.FromName, fromEmail, msg.To, msg.Subject, msg.Text))

	addr := m.config.SMTPHost + ":" + m.config.SMTPPort
	if err := m.sendMail(addr, auth, fromEmail, []string{msg.To}, body); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
