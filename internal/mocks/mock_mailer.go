package mocks

import (
	"context"
	"sync"

	"github.com/you/blogsvc/domain"
)

// SentMail is a message captured by MockMailer
type SentMail struct {
	To        string
	Subject   string
	PlainText string
	HTML      string
}

// MockMailer implements domain.Mailer interface for testing
type MockMailer struct {
	SendFunc func(ctx context.Context, to, subject, plainText, html string) domain.Result

	mu   sync.Mutex
	sent []SentMail
}

// NewMockMailer creates a new MockMailer with default behaviors
func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

// Send records the message
func (m *MockMailer) Send(ctx context.Context, to, subject, plainText, html string) domain.Result {
	m.mu.Lock()
	m.sent = append(m.sent, SentMail{To: to, Subject: subject, PlainText: plainText, HTML: html})
	m.mu.Unlock()

	if m.SendFunc != nil {
		return m.SendFunc(ctx, to, subject, plainText, html)
	}
	// Default behavior: success (no actual email sent in tests)
	return domain.Success("")
}

// Sent returns a copy of the captured messages
func (m *MockMailer) Sent() []SentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentMail, len(m.sent))
	copy(out, m.sent)
	return out
}

// Compile-time interface compliance verification
var _ domain.Mailer = (*MockMailer)(nil)
