package mocks

import (
	"context"

	"github.com/you/blogsvc/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	LoginFunc             func(ctx context.Context, username, password, captcha string) domain.DataResult[*domain.LoginResult]
	SignUpFunc            func(ctx context.Context, username, email, password, captcha string) domain.Result
	SendVerificationFunc  func(ctx context.Context, email string) domain.Result
	VerifyFunc            func(ctx context.Context, token string) domain.Result
	SendPasswordResetFunc func(ctx context.Context, email string) domain.Result
	ResetPasswordFunc     func(ctx context.Context, token, newPassword string) domain.Result
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Login authenticates a user
func (m *MockAuthService) Login(ctx context.Context, username, password, captcha string) domain.DataResult[*domain.LoginResult] {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, username, password, captcha)
	}
	// Default behavior: return a mock token
	return domain.SuccessData(&domain.LoginResult{Token: "mock_token"})
}

// SignUp registers a new user
func (m *MockAuthService) SignUp(ctx context.Context, username, email, password, captcha string) domain.Result {
	if m.SignUpFunc != nil {
		return m.SignUpFunc(ctx, username, email, password, captcha)
	}
	return domain.Success(domain.MsgAccountCreated)
}

// SendVerification emails a verification link
func (m *MockAuthService) SendVerification(ctx context.Context, email string) domain.Result {
	if m.SendVerificationFunc != nil {
		return m.SendVerificationFunc(ctx, email)
	}
	return domain.Success(domain.MsgVerificationSent)
}

// Verify activates the account named by a VERIFY token
func (m *MockAuthService) Verify(ctx context.Context, token string) domain.Result {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, token)
	}
	return domain.Success(domain.MsgAccountVerified)
}

// SendPasswordReset emails a reset link
func (m *MockAuthService) SendPasswordReset(ctx context.Context, email string) domain.Result {
	if m.SendPasswordResetFunc != nil {
		return m.SendPasswordResetFunc(ctx, email)
	}
	return domain.Success(domain.MsgResetSent)
}

// ResetPassword sets a new password using a RESET token
func (m *MockAuthService) ResetPassword(ctx context.Context, token, newPassword string) domain.Result {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, token, newPassword)
	}
	return domain.Success(domain.MsgPasswordUpdated)
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
