// Package notify delivers best-effort email notifications.
//
// Mailers do the actual delivery. Dispatcher runs them off the request path:
// failures are logged and dropped, never returned to the caller.
package notify

import (
	"context"
	"fmt"
	"html"

	"DEVLINK_BACK-END/internal/config"
	"DEVLINK_BACK-END/internal/models"
)

// Message is a single outgoing email
type Message struct {
	To      string
	ToName  string
	Subject string
	Text    string
	HTML    string
}

// Mailer sends a message through some transport
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// NopMailer drops every message. Used when no provider is configured.
type NopMailer struct{}

func (NopMailer) Send(context.Context, Message) error { return nil }

// NewMailer picks the mailer for the configured provider.
func NewMailer(cfg *config.EmailConfig) Mailer {
	switch cfg.Provider {
	case config.EmailProviderSMTP:
		return NewSMTPMailer(cfg)
	case config.EmailProviderSendGrid:
		return NewSendGridMailer(cfg)
	default:
		return NopMailer{}
	}
}

// ConnectionRequestMessage tells the recipient that sender sent them a
// request in the given status.
func ConnectionRequestMessage(sender, recipient *models.User, status models.Status) Message {
	return Message{
		To:      recipient.Email,
		ToName:  recipient.FirstName,
		Subject: "New Connection Request",
		Text:    fmt.Sprintf("%s has sent you a connection request. Status: %s", sender.FirstName, status),
		HTML: fmt.Sprintf("<p><strong>%s</strong> has sent you a connection request.</p><p>Status: <strong>%s</strong></p>",
			html.EscapeString(sender.FirstName), html.EscapeString(string(status))),
	}
}
