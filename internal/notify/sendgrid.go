package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"DEVLINK_BACK-END/internal/config"
)

const sendGridEndpoint = "/v3/mail/send"

// SendGridMailer sends email through the SendGrid v3 API
type SendGridMailer struct {
	apiKey   string
	host     string // empty means the public SendGrid API
	from     string
	fromName string
}

func NewSendGridMailer(cfg *config.EmailConfig) *SendGridMailer {
	return &SendGridMailer{
		apiKey:   cfg.SendGridAPIKey,
		from:     cfg.FromEmail,
		fromName: cfg.FromName,
	}
}

func (s *SendGridMailer) Send(ctx context.Context, msg Message) error {
	if s.apiKey == "" {
		return errors.New("sendgrid api key not configured")
	}

	from := mail.NewEmail(s.fromName, s.from)
	to := mail.NewEmail(msg.ToName, msg.To)
	message := mail.NewSingleEmail(from, msg.Subject, to, msg.Text, msg.HTML)

	request := sendgrid.GetRequest(s.apiKey, sendGridEndpoint, s.host)
	request.Method = http.MethodPost
	request.Body = mail.GetRequestBody(message)

	response, err := sendgrid.MakeRequestWithContext(ctx, request)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned error status: %d", response.StatusCode)
	}
	return nil
}
