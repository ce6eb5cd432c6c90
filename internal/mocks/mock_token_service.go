package mocks

import (
	"fmt"
	"strings"
	"time"

	"github.com/you/blogsvc/domain"
)

// MockTokenService implements domain.TokenService interface for testing.
// By default tokens are readable strings "<type>:<user id>:<role>".
type MockTokenService struct {
	GenerateFunc func(payload domain.TokenPayload, ttl time.Duration) (string, error)
	VerifyFunc   func(token string) domain.DataResult[*domain.TokenPayload]

	// Issued records every payload passed to Generate
	Issued []domain.TokenPayload
	// TTLs records the ttl passed to Generate
	TTLs []time.Duration
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// Generate signs a payload
func (m *MockTokenService) Generate(payload domain.TokenPayload, ttl time.Duration) (string, error) {
	m.Issued = append(m.Issued, payload)
	m.TTLs = append(m.TTLs, ttl)
	if m.GenerateFunc != nil {
		return m.GenerateFunc(payload, ttl)
	}
	return fmt.Sprintf("%s:%s:%s", payload.Type, payload.UserID, payload.Role), nil
}

// Verify decodes a token
func (m *MockTokenService) Verify(token string) domain.DataResult[*domain.TokenPayload] {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(token)
	}
	// Default behavior: accept tokens built by Generate
	parts := strings.SplitN(token, ":", 3)
	if len(parts) != 3 || parts[1] == "" {
		return domain.FailureData[*domain.TokenPayload](domain.MsgNotAuthorized)
	}
	return domain.SuccessData(&domain.TokenPayload{
		UserID: parts[1],
		Role:   domain.Role(parts[2]),
		Type:   domain.TokenType(parts[0]),
		Status: domain.StatusActive,
	})
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
