package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"DEVLINK_BACK-END/internal/config"
	"DEVLINK_BACK-END/internal/models"
)

func TestConnectionRequestMessage(t *testing.T) {
	sender := &models.User{FirstName: "<Alice>"}
	recipient := &models.User{FirstName: "Bobby", Email: "bob@example.com"}

	msg := ConnectionRequestMessage(sender, recipient, models.StatusInterested)

	assert.Equal(t, "bob@example.com", msg.To)
	assert.Equal(t, "Bobby", msg.ToName)
	assert.Equal(t, "New Connection Request", msg.Subject)
	assert.Equal(t, "<Alice> has sent you a connection request. Status: interested", msg.Text)
	assert.Contains(t, msg.HTML, "&lt;Alice&gt;")
}

func TestNewMailer(t *testing.T) {
	assert.IsType(t, NopMailer{}, NewMailer(&config.EmailConfig{Provider: config.EmailProviderNone}))
	assert.IsType(t, &SMTPMailer{}, NewMailer(&config.EmailConfig{Provider: config.EmailProviderSMTP}))
	assert.IsType(t, &SendGridMailer{}, NewMailer(&config.EmailConfig{Provider: config.EmailProviderSendGrid}))
}

func TestSMTPMailer_Send(t *testing.T) {
	cfg := &config.EmailConfig{
		SMTPHost:     "smtp.example.com",
		SMTPPort:     "587",
		SMTPUsername: "bot@example.com",
		SMTPPassword: "secret",
		FromName:     "DevLink",
	}

	t.Run("composes and sends", func(t *testing.T) {
		m := NewSMTPMailer(cfg)
		var gotAddr, gotFrom string
		var gotTo []string
		var gotBody []byte
		m.sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr, gotFrom, gotTo, gotBody = addr, from, to, msg
			return nil
		}

		err := m.Send(context.Background(), Message{To: "bob@example.com", Subject: "Hi", Text: "hello"})
		require.NoError(t, err)
		assert.Equal(t, "smtp.example.com:587", gotAddr)
		assert.Equal(t, "bot@example.com", gotFrom)
		assert.Equal(t, []string{"bob@example.com"}, gotTo)
		assert.Contains(t, string(gotBody), "From: DevLink <bot@example.com>\r\n")
		assert.Contains(t, string(gotBody), "Subject: Hi\r\n")
		assert.Contains(t, string(gotBody), "\r\n\r\nhello\r\n")
	})

	t.Run("transport error", func(t *testing.T) {
		m := NewSMTPMailer(cfg)
		m.sendMail = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("connection refused") }

		err := m.Send(context.Background(), Message{To: "bob@example.com"})
		assert.ErrorContains(t, err, "failed to send email: connection refused")
	})

	t.Run("missing credentials", func(t *testing.T) {
		m := NewSMTPMailer(&config.EmailConfig{SMTPHost: "smtp.example.com"})
		err := m.Send(context.Background(), Message{To: "bob@example.com"})
		assert.ErrorContains(t, err, "credentials not configured")
	})
}

func TestSendGridMailer_Send(t *testing.T) {
	var payload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, sendGridEndpoint, r.URL.Path)
		assert.Equal(t, "Bearer sg-key", r.Header.Get("Authorization"))
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &payload)
		if payload["subject"] == "fail" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	m := NewSendGridMailer(&config.EmailConfig{SendGridAPIKey: "sg-key", FromEmail: "bot@example.com", FromName: "DevLink"})
	m.host = srv.URL

	err := m.Send(context.Background(), Message{To: "bob@example.com", Subject: "Hi", Text: "hello", HTML: "<p>hello</p>"})
	require.NoError(t, err)
	assert.Equal(t, "Hi", payload["subject"])

	err = m.Send(context.Background(), Message{To: "bob@example.com", Subject: "fail", Text: "x", HTML: "x"})
	assert.ErrorContains(t, err, "status: 400")

	m.apiKey = ""
	assert.Error(t, m.Send(context.Background(), Message{}))
}

type mailerFunc func(ctx context.Context, msg Message) error

func (f mailerFunc) Send(ctx context.Context, msg Message) error { return f(ctx, msg) }

func TestDispatcher_FailureIsLoggedNotReturned(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	var calls atomic.Int32
	d := NewDispatcher(mailerFunc(func(context.Context, Message) error {
		calls.Add(1)
		return errors.New("smtp down")
	}), zap.New(core), time.Second)

	d.Dispatch(context.Background(), Message{To: "bob@example.com", Subject: "New Connection Request"})
	d.Close()

	assert.Equal(t, int32(1), calls.Load())
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "notification not delivered", entry.Message)
	assert.Equal(t, "smtp down", entry.ContextMap()["error"])
}

func TestDispatcher_OutlivesCallerContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	release := make(chan struct{})
	var sendErr atomic.Value
	d := NewDispatcher(mailerFunc(func(ctx context.Context, _ Message) error {
		<-release
		if err := ctx.Err(); err != nil {
			sendErr.Store(err)
		}
		return nil
	}), zap.NewNop(), time.Second)

	d.Dispatch(ctx, Message{})
	cancel()
	close(release)
	d.Close()

	assert.Nil(t, sendErr.Load())
}

func TestDispatcher_RecoversPanics(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	d := NewDispatcher(mailerFunc(func(context.Context, Message) error {
		panic("boom")
	}), zap.New(core), time.Second)

	d.Dispatch(context.Background(), Message{Subject: "x"})
	d.Close()

	assert.Equal(t, 1, logs.FilterMessage("notification panicked").Len())
}

func TestDispatcher_DropsAfterClose(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	var calls atomic.Int32
	d := NewDispatcher(mailerFunc(func(context.Context, Message) error {
		calls.Add(1)
		return nil
	}), zap.New(core), time.Second)

	d.Dispatch(context.Background(), Message{Subject: "before"})
	d.Close()
	d.Dispatch(context.Background(), Message{To: "bob@example.com", Subject: "after"})
	d.Close()

	assert.Equal(t, int32(1), calls.Load())
	dropped := logs.FilterMessage("notification dropped after shutdown").All()
	require.Len(t, dropped, 1)
	assert.Equal(t, "after", dropped[0].ContextMap()["subject"])
}
