package mocks

import (
	"context"
	"time"

	"github.com/you/blogsvc/domain"
)

// MockResendLimiter implements domain.ResendLimiter interface for testing
type MockResendLimiter struct {
	AllowFunc func(ctx context.Context, purpose, email string) (bool, time.Duration)
}

// NewMockResendLimiter creates a limiter that never throttles
func NewMockResendLimiter() *MockResendLimiter {
	return &MockResendLimiter{}
}

// Allow reports whether a mail may be sent
func (m *MockResendLimiter) Allow(ctx context.Context, purpose, email string) (bool, time.Duration) {
	if m.AllowFunc != nil {
		return m.AllowFunc(ctx, purpose, email)
	}
	return true, 0
}

// Compile-time interface compliance verification
var _ domain.ResendLimiter = (*MockResendLimiter)(nil)
