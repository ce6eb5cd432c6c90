package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/you/blogsvc/domain"
	"github.com/you/blogsvc/internal/metrics"
	"go.uber.org/zap"
)

// Operation names used in metrics and logs
const (
	opLogin             = "login"
	opSignUp            = "sign_up"
	opSendVerification  = "send_verification"
	opVerify            = "verify"
	opSendPasswordReset = "send_password_reset"
	opResetPassword     = "reset_password"
)

// AuthConfig holds token lifetimes and mail settings for the orchestrator
type AuthConfig struct {
	BaseURL     string
	AuthTTL     time.Duration
	VerifyTTL   time.Duration
	ResetTTL    time.Duration
	MailTimeout time.Duration
}

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	users       domain.UserService
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	captcha     domain.HumanVerifier
	mailer      domain.Mailer
	limiter     domain.ResendLimiter
	audit       domain.AuditLogger
	logger      *zap.Logger
	config      AuthConfig

	// detach runs f without waiting for it
	detach func(f func())
}

// NewAuthService creates a new auth service
func NewAuthService(
	users domain.UserService,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	captcha domain.HumanVerifier,
	mailer domain.Mailer,
	limiter domain.ResendLimiter,
	audit domain.AuditLogger,
	logger *zap.Logger,
	config AuthConfig,
) *AuthServiceImpl {
	if config.MailTimeout <= 0 {
		config.MailTimeout = 30 * time.Second
	}
	return &AuthServiceImpl{
		users:       users,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		captcha:     captcha,
		mailer:      mailer,
		limiter:     limiter,
		audit:       audit,
		logger:      logger.Named("auth"),
		config:      config,
		detach:      func(f func()) { go f() },
	}
}

// Login implements domain.AuthService
func (s *AuthServiceImpl) Login(ctx context.Context, username, password, captcha string) (res domain.DataResult[*domain.LoginResult]) {
	defer func() { metrics.ObserveAuth(opLogin, res.Status) }()

	if gate := s.captcha.Verify(ctx, captcha); gate.Failed() {
		return domain.FailWith[*domain.LoginResult](gate)
	}

	found := s.users.GetByUsername(ctx, username)
	if found.Failed() && found.Message != domain.MsgUserNotExists {
		return domain.FailWith[*domain.LoginResult](found.Result)
	}
	if found.Failed() || !s.passwordSvc.Compare(password, found.Data.PasswordHash) {
		s.loginFailed(ctx, username, domain.MsgLoginFailed)
		return domain.FailureData[*domain.LoginResult](domain.MsgLoginFailed)
	}

	account := found.Data
	switch account.Status {
	case domain.StatusPassive:
		s.loginFailed(ctx, username, domain.MsgUserNotVerified)
		return domain.FailureData[*domain.LoginResult](domain.MsgUserNotVerified)
	case domain.StatusSuspended:
		s.loginFailed(ctx, username, domain.MsgUserSuspended)
		return domain.FailureData[*domain.LoginResult](domain.MsgUserSuspended)
	}

	token, err := s.tokenSvc.Generate(domain.NewTokenPayload(account, domain.TokenAuth), s.config.AuthTTL)
	if err != nil {
		s.logger.Error("failed to issue auth token", zap.String("user_id", account.ID), zap.Error(err))
		return domain.FailureData[*domain.LoginResult](domain.MsgGeneric)
	}

	recordEvent(ctx, s.audit, s.logger, domain.NewAuditEvent(domain.UserLoginEvent).WithAccount(account))
	return domain.SuccessData(&domain.LoginResult{Token: token})
}

func (s *AuthServiceImpl) loginFailed(ctx context.Context, username, reason string) {
	recordEvent(ctx, s.audit, s.logger, domain.NewAuditEvent(domain.UserLoginFailureEvent).
		WithUsername(username).
		WithFailure(reason))
}

// SignUp implements domain.AuthService
func (s *AuthServiceImpl) SignUp(ctx context.Context, username, email, password, captcha string) (res domain.Result) {
	defer func() { metrics.ObserveAuth(opSignUp, res.Status) }()

	if gate := s.captcha.Verify(ctx, captcha); gate.Failed() {
		return gate
	}

	created := s.users.Add(ctx, domain.AccountDraft{Username: username, Email: email, Password: password})
	if created.Failed() {
		return created.Result
	}
	account := created.Data
	recordEvent(ctx, s.audit, s.logger, domain.NewAuditEvent(domain.UserRegistrationEvent).WithAccount(account))

	// the account is committed; the email outcome never changes the result
	s.background(func() {
		token, err := s.tokenSvc.Generate(domain.NewTokenPayload(account, domain.TokenVerify), s.config.VerifyTTL)
		if err != nil {
			s.logger.Error("failed to issue verify token", zap.String("user_id", account.ID), zap.Error(err))
			return
		}
		s.deliver(PurposeVerify, account, verificationMail(s.config.BaseURL, account.Username, token))
	})

	return domain.Success(domain.MsgAccountCreated)
}

// SendVerification implements domain.AuthService
func (s *AuthServiceImpl) SendVerification(ctx context.Context, email string) (res domain.Result) {
	defer func() { metrics.ObserveAuth(opSendVerification, res.Status) }()

	found := s.users.GetByEmail(ctx, email)
	if found.Failed() {
		return found.Result
	}
	account := found.Data
	switch account.Status {
	case domain.StatusSuspended:
		return domain.Failure(domain.MsgUserSuspended)
	case domain.StatusActive:
		return domain.Failure(domain.MsgUserAlreadyActive)
	}
	if throttled := s.throttle(ctx, PurposeVerify, account.Email); throttled.Failed() {
		return throttled
	}

	token, err := s.tokenSvc.Generate(domain.NewTokenPayload(account, domain.TokenVerify), s.config.VerifyTTL)
	if err != nil {
		s.logger.Error("failed to issue verify token", zap.String("user_id", account.ID), zap.Error(err))
		return domain.Failure(domain.MsgGeneric)
	}
	content := verificationMail(s.config.BaseURL, account.Username, token)
	s.background(func() { s.deliver(PurposeVerify, account, content) })

	recordEvent(ctx, s.audit, s.logger, domain.NewAuditEvent(domain.VerificationRequestEvent).WithAccount(account))
	return domain.Success(domain.MsgVerificationSent)
}

// Verify implements domain.AuthService
func (s *AuthServiceImpl) Verify(ctx context.Context, token string) (res domain.Result) {
	defer func() { metrics.ObserveAuth(opVerify, res.Status) }()

	found := s.accountFromToken(ctx, token, domain.TokenVerify)
	if found.Failed() {
		return found.Result
	}
	account := found.Data
	switch account.Status {
	case domain.StatusSuspended:
		return domain.Failure(domain.MsgUserSuspended)
	case domain.StatusActive:
		return domain.Failure(domain.MsgAccountActive)
	}

	if activated := s.users.Activate(ctx, account.ID); activated.Failed() {
		s.logger.Error("failed to activate account", zap.String("user_id", account.ID), zap.String("reason", activated.Message))
		return domain.Failure(domain.MsgGeneric)
	}

	recordEvent(ctx, s.audit, s.logger, domain.NewAuditEvent(domain.AccountVerifiedEvent).WithAccount(account))
	return domain.Success(domain.MsgAccountVerified)
}

// SendPasswordReset implements domain.AuthService
func (s *AuthServiceImpl) SendPasswordReset(ctx context.Context, email string) (res domain.Result) {
	defer func() { metrics.ObserveAuth(opSendPasswordReset, res.Status) }()

	found := s.users.GetByEmail(ctx, email)
	if found.Failed() {
		return found.Result
	}
	account := found.Data
	switch account.Status {
	case domain.StatusSuspended:
		return domain.Failure(domain.MsgUserSuspended)
	case domain.StatusPassive:
		return domain.Failure(domain.MsgUserNotVerified)
	}
	if throttled := s.throttle(ctx, PurposeReset, account.Email); throttled.Failed() {
		return throttled
	}

	token, err := s.tokenSvc.Generate(domain.NewTokenPayload(account, domain.TokenReset), s.config.ResetTTL)
	if err != nil {
		s.logger.Error("failed to issue reset token", zap.String("user_id", account.ID), zap.Error(err))
		return domain.Failure(domain.MsgGeneric)
	}
	content := passwordResetMail(s.config.BaseURL, account.Username, token)
	s.background(func() { s.deliver(PurposeReset, account, content) })

	recordEvent(ctx, s.audit, s.logger, domain.NewAuditEvent(domain.PasswordResetRequestEvent).WithAccount(account))
	return domain.Success(domain.MsgResetSent)
}

// ResetPassword implements domain.AuthService
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, token, newPassword string) (res domain.Result) {
	defer func() { metrics.ObserveAuth(opResetPassword, res.Status) }()

	found := s.accountFromToken(ctx, token, domain.TokenReset)
	if found.Failed() {
		return found.Result
	}
	account := found.Data
	switch {
	case account.Status == domain.StatusSuspended:
		return domain.Failure(domain.MsgUserSuspended)
	case account.Status != domain.StatusActive:
		return domain.Failure(domain.MsgUserNotActive)
	case len(newPassword) > domain.MaxPasswordBytes:
		return domain.Failure(domain.MsgPasswordTooLong)
	}

	if updated := s.users.Update(ctx, account.ID, domain.AccountPatch{Password: &newPassword}); updated.Failed() {
		s.logger.Error("failed to update password", zap.String("user_id", account.ID), zap.String("reason", updated.Message))
		return domain.Failure(domain.MsgGeneric)
	}

	recordEvent(ctx, s.audit, s.logger, domain.NewAuditEvent(domain.PasswordResetEvent).WithAccount(account))
	return domain.Success(domain.MsgPasswordUpdated)
}

// accountFromToken verifies token, checks its type and loads the account it names
func (s *AuthServiceImpl) accountFromToken(ctx context.Context, token string, want domain.TokenType) domain.DataResult[*domain.Account] {
	verified := s.tokenSvc.Verify(token)
	if verified.Failed() {
		return domain.FailWith[*domain.Account](verified.Result)
	}
	if verified.Data.Type != want {
		return domain.FailureData[*domain.Account](domain.MsgInvalidToken)
	}
	return s.users.GetByID(ctx, verified.Data.UserID)
}

// throttle consults the resend limiter
func (s *AuthServiceImpl) throttle(ctx context.Context, purpose, email string) domain.Result {
	if s.limiter == nil {
		return domain.Success("")
	}
	ok, wait := s.limiter.Allow(ctx, purpose, email)
	if ok {
		return domain.Success("")
	}
	return domain.Failure(fmt.Sprintf(domain.MsgResendWaitPattern, int(math.Ceil(wait.Seconds()))))
}

// background hands f to detach and logs a panic raised by it
func (s *AuthServiceImpl) background(f func()) {
	s.detach(func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("background task panicked", zap.Any("panic", r), zap.Stack("stack"))
			}
		}()
		f()
	})
}

// deliver sends one email on its own deadline. Failures are only logged:
// the account stays resumable through SendVerification/SendPasswordReset.
func (s *AuthServiceImpl) deliver(purpose string, account *domain.Account, content mailContent) {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.MailTimeout)
	defer cancel()

	res := s.mailer.Send(ctx, account.Email, content.Subject, content.PlainText, content.HTML)
	metrics.ObserveMail(purpose, res.Status)
	if res.Failed() {
		s.logger.Warn("email not delivered",
			zap.String("purpose", purpose),
			zap.String("user_id", account.ID),
			zap.String("reason", res.Message),
		)
	}
}

var _ domain.AuthService = (*AuthServiceImpl)(nil)
