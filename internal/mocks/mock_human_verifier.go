package mocks

import (
	"context"

	"github.com/you/blogsvc/domain"
)

// MockHumanVerifier implements domain.HumanVerifier interface for testing
type MockHumanVerifier struct {
	VerifyFunc func(ctx context.Context, proofToken string) domain.Result
	Calls      int
}

// NewMockHumanVerifier creates a new MockHumanVerifier that accepts everything
func NewMockHumanVerifier() *MockHumanVerifier {
	return &MockHumanVerifier{}
}

// Verify checks a proof token
func (m *MockHumanVerifier) Verify(ctx context.Context, proofToken string) domain.Result {
	m.Calls++
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, proofToken)
	}
	return domain.Success("")
}

// Compile-time interface compliance verification
var _ domain.HumanVerifier = (*MockHumanVerifier)(nil)
