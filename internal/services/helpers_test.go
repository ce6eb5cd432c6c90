package services

import (
	"context"
	"testing"
	"time"

	"github.com/you/blogsvc/domain"
	"github.com/you/blogsvc/internal/mocks"
	"go.uber.org/zap"
)

// authDeps bundles the collaborators of an AuthServiceImpl under test
type authDeps struct {
	users    *mocks.MockUserService
	password *mocks.MockPasswordService
	tokens   *mocks.MockTokenService
	captcha  *mocks.MockHumanVerifier
	mailer   *mocks.MockMailer
	limiter  *mocks.MockResendLimiter
	audit    *mocks.MockAuditLogger
}

func newAuthDeps() *authDeps {
	return &authDeps{
		users:    mocks.NewMockUserService(),
		password: mocks.NewMockPasswordService(),
		tokens:   mocks.NewMockTokenService(),
		captcha:  mocks.NewMockHumanVerifier(),
		mailer:   mocks.NewMockMailer(),
		limiter:  mocks.NewMockResendLimiter(),
		audit:    mocks.NewMockAuditLogger(),
	}
}

// createAuthServiceForTest wires an AuthServiceImpl whose emails are sent inline
func createAuthServiceForTest(t *testing.T, d *authDeps) *AuthServiceImpl {
	t.Helper()

	svc := NewAuthService(d.users, d.password, d.tokens, d.captcha, d.mailer, d.limiter, d.audit, zap.NewNop(), AuthConfig{
		BaseURL:     "https://blog.example.com",
		AuthTTL:     time.Hour,
		VerifyTTL:   24 * time.Hour,
		ResetTTL:    15 * time.Minute,
		MailTimeout: time.Second,
	})
	svc.detach = func(f func()) { f() }
	return svc
}

// createAccount builds an account with a password hash matching "correct"
func createAccount(t *testing.T, status domain.AccountStatus) *domain.Account {
	t.Helper()

	return &domain.Account{
		ID:           "u1",
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hashed_correct",
		Status:       status,
		Role:         domain.RoleUser,
		CreatedAt:    time.Now().Add(-24 * time.Hour),
	}
}

// returnAccount makes every lookup on users find account
func returnAccount(users *mocks.MockUserService, account *domain.Account) {
	found := func() domain.DataResult[*domain.Account] { return domain.SuccessData(account) }
	users.GetByUsernameFunc = func(context.Context, string) domain.DataResult[*domain.Account] { return found() }
	users.GetByEmailFunc = func(context.Context, string) domain.DataResult[*domain.Account] { return found() }
	users.GetByIDFunc = func(context.Context, string) domain.DataResult[*domain.Account] { return found() }
}

func failCaptcha(captcha *mocks.MockHumanVerifier, message string) {
	captcha.VerifyFunc = func(context.Context, string) domain.Result { return domain.Failure(message) }
}
