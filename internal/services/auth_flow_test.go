package services

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/you/blogsvc/domain"
	"github.com/you/blogsvc/internal/infrastructure/auth"
	"github.com/you/blogsvc/internal/infrastructure/repositories"
	"github.com/you/blogsvc/internal/mocks"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// tokenFromMail pulls the token query parameter out of the link in a mail body
func tokenFromMail(t *testing.T, mail mocks.SentMail) string {
	t.Helper()
	for _, field := range strings.Fields(mail.PlainText) {
		if !strings.HasPrefix(field, "http") {
			continue
		}
		link, err := url.Parse(field)
		require.NoError(t, err)
		return link.Query().Get("token")
	}
	t.Fatalf("no link in mail %q", mail.Subject)
	return ""
}

// TestAuthFlow runs the account lifecycle against the real codec, hasher and
// a sqlite store.
func TestAuthFlow(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	passwords := auth.NewPasswordService(bcrypt.MinCost)
	users := NewUserService(repositories.NewGormAccountStore(setupTestDB(t)), passwords, nil, logger)
	tokens := auth.NewJWTService("flow-secret", "blogsvc-test", time.Hour)
	mailer := mocks.NewMockMailer()

	svc := NewAuthService(users, passwords, tokens, mocks.NewMockHumanVerifier(), mailer, mocks.NewMockResendLimiter(), nil, logger, AuthConfig{
		BaseURL:   "http://localhost:8080",
		VerifyTTL: time.Hour,
		ResetTTL:  time.Hour,
	})
	svc.detach = func(f func()) { f() }

	// sign up
	res := svc.SignUp(ctx, "alice", "alice@example.com", "correct", "captcha")
	require.True(t, res.Status, res.Message)

	dup := svc.SignUp(ctx, "alice", "other@example.com", "correct", "captcha")
	assert.False(t, dup.Status)
	assert.Equal(t, domain.MsgUsernameTaken, dup.Message)

	long := svc.SignUp(ctx, "bob", "bob@example.com", strings.Repeat("x", 80), "captcha")
	assert.False(t, long.Status)
	assert.Equal(t, domain.MsgPasswordTooLong, long.Message)
	require.Len(t, mailer.Sent(), 1)

	login := svc.Login(ctx, "alice", "correct", "captcha")
	assert.Equal(t, domain.MsgUserNotVerified, login.Message)

	// verify
	require.Len(t, mailer.Sent(), 1)
	verifyToken := tokenFromMail(t, mailer.Sent()[0])
	require.NotEmpty(t, verifyToken)

	res = svc.Verify(ctx, verifyToken)
	require.True(t, res.Status, res.Message)
	assert.Equal(t, domain.MsgAccountVerified, res.Message)

	again := svc.SendVerification(ctx, "alice@example.com")
	assert.False(t, again.Status)
	assert.Equal(t, domain.MsgUserAlreadyActive, again.Message)

	// log in
	login = svc.Login(ctx, "alice", "correct", "captcha")
	require.True(t, login.Status, login.Message)
	decoded := tokens.Verify(login.Data.Token)
	require.True(t, decoded.Status)
	assert.Equal(t, domain.TokenAuth, decoded.Data.Type)
	assert.Equal(t, domain.StatusActive, decoded.Data.Status)

	wrong := svc.Login(ctx, "alice", "wrong", "captcha")
	assert.False(t, wrong.Status)
	assert.Equal(t, domain.MsgLoginFailed, wrong.Message)
	assert.Nil(t, wrong.Data)

	// reset password
	res = svc.SendPasswordReset(ctx, "alice@example.com")
	require.True(t, res.Status, res.Message)
	require.Len(t, mailer.Sent(), 2)
	resetToken := tokenFromMail(t, mailer.Sent()[1])

	misuse := svc.ResetPassword(ctx, verifyToken, "hijacked")
	assert.False(t, misuse.Status)
	assert.Equal(t, domain.MsgInvalidToken, misuse.Message)
	assert.True(t, svc.Login(ctx, "alice", "correct", "captcha").Status, "password unchanged")

	tooLong := svc.ResetPassword(ctx, resetToken, strings.Repeat("x", 80))
	assert.False(t, tooLong.Status)
	assert.Equal(t, domain.MsgPasswordTooLong, tooLong.Message)

	res = svc.ResetPassword(ctx, resetToken, "brand-new")
	require.True(t, res.Status, res.Message)

	assert.False(t, svc.Login(ctx, "alice", "correct", "captcha").Status)
	assert.True(t, svc.Login(ctx, "alice", "brand-new", "captcha").Status)
}
