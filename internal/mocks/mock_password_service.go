package mocks

import "github.com/you/blogsvc/domain"

// MockPasswordService implements domain.PasswordService interface for testing
type MockPasswordService struct {
	HashFunc    func(secret string) (string, error)
	CompareFunc func(candidate, hashed string) bool
}

// NewMockPasswordService creates a new MockPasswordService with default behaviors
func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

// Hash generates a hash for the given secret
func (m *MockPasswordService) Hash(secret string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(secret)
	}
	// Default behavior: return simple hash (for testing only)
	return "hashed_" + secret, nil
}

// Compare checks a candidate against its hash
func (m *MockPasswordService) Compare(candidate, hashed string) bool {
	if m.CompareFunc != nil {
		return m.CompareFunc(candidate, hashed)
	}
	// Default behavior: simple check for testing
	return hashed == "hashed_"+candidate
}

// Compile-time interface compliance verification
var _ domain.PasswordService = (*MockPasswordService)(nil)
