package notifications

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/you/blogsvc/domain"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSMTPMailer_Message(t *testing.T) {
	mailer := NewSMTPMailer(SMTPConfig{Host: "localhost", From: "Blog <noreply@example.com>"}, zap.NewNop())

	msg, err := mailer.message("alice@example.com", "Verify your email", "plain", "<p>html</p>")
	require.NoError(t, err)
	recipients, err := msg.GetRecipients()
	require.NoError(t, err)
	assert.Equal(t, []string{"alice@example.com"}, recipients)

	_, err = mailer.message("not an address", "s", "p", "")
	assert.Error(t, err)
}

func TestSMTPMailer_Defaults(t *testing.T) {
	mailer := NewSMTPMailer(SMTPConfig{Host: "localhost"}, zap.NewNop())
	assert.Equal(t, 587, mailer.config.Port)
	assert.Equal(t, 15*time.Second, mailer.config.Timeout)
}

func TestSMTPMailer_SendFailureIsGeneric(t *testing.T) {
	// grab a free port and release it so nothing is listening
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	core, logs := observer.New(zap.ErrorLevel)
	mailer := NewSMTPMailer(SMTPConfig{Host: "127.0.0.1", Port: port, From: "noreply@example.com", Timeout: time.Second}, zap.New(core))

	res := mailer.Send(context.Background(), "alice@example.com", "subject", "plain", "")
	assert.False(t, res.Status)
	assert.Equal(t, domain.MsgGeneric, res.Message)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "mail delivery failed", logs.All()[0].Message)
}

func TestLogMailer(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	mailer := NewLogMailer(zap.New(core))

	res := mailer.Send(context.Background(), "alice@example.com", "hello", "body", "<p>body</p>")
	assert.True(t, res.Status)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "alice@example.com", logs.All()[0].ContextMap()["to"])
}
