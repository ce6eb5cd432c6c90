package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/you/blogsvc/domain"
	"github.com/you/blogsvc/internal/config"
	httpx "github.com/you/blogsvc/internal/http"
	"github.com/you/blogsvc/internal/http/handlers"
	"github.com/you/blogsvc/internal/http/middleware"
	"github.com/you/blogsvc/internal/infrastructure/auth"
	"github.com/you/blogsvc/internal/infrastructure/captcha"
	"github.com/you/blogsvc/internal/infrastructure/events"
	"github.com/you/blogsvc/internal/infrastructure/notifications"
	"github.com/you/blogsvc/internal/services"
)

// DefaultPolicies are seeded when the configuration names none
var DefaultPolicies = [][]string{
	{"role_ADMIN", "/admin/*", "(GET|POST|PATCH|DELETE)"},
}

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config
	Logger *zap.Logger

	// Infrastructure
	RedisClient *redis.Client
	stores      *stores

	// Services
	PasswordSvc domain.PasswordService
	TokenSvc    domain.TokenService
	Captcha     domain.HumanVerifier
	Mailer      domain.Mailer
	Audit       domain.AuditLogger
	Limiter     domain.ResendLimiter
	UserSvc     domain.UserService
	AuthSvc     domain.AuthService
	PostSvc     domain.PostService
	PolicySvc   domain.PolicyService

	closers []func() error
}

// Option overrides a collaborator before the container wires the rest
type Option func(*Container)

// WithMailer replaces the configured mail transport
func WithMailer(m domain.Mailer) Option {
	return func(c *Container) { c.Mailer = m }
}

// WithHumanVerifier replaces the configured captcha check
func WithHumanVerifier(v domain.HumanVerifier) Option {
	return func(c *Container) { c.Captcha = v }
}

// NewContainer creates and initializes all dependencies
func NewContainer(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts ...Option) (*Container, error) {
	container := &Container{Config: cfg, Logger: logger}
	for _, opt := range opts {
		opt(container)
	}

	// Initialize infrastructure
	if err := container.initStorage(ctx); err != nil {
		container.Close()
		return nil, err
	}
	container.initDelivery()

	// Initialize services
	if err := container.initServices(); err != nil {
		container.Close()
		return nil, err
	}
	return container, nil
}

func (c *Container) initStorage(ctx context.Context) error {
	s, err := openStores(ctx, c.Config, c.Logger)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	c.stores = s
	c.closers = append(c.closers, s.close)

	rdb, err := openRedis(ctx, c.Config, c.Logger)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	if rdb != nil {
		c.RedisClient = rdb
		c.closers = append(c.closers, rdb.Close)
	}
	return nil
}

// initDelivery picks the mail, audit and captcha backends
func (c *Container) initDelivery() {
	cfg := c.Config

	if c.Mailer == nil {
		if cfg.SMTPHost != "" {
			c.Mailer = notifications.NewSMTPMailer(notifications.SMTPConfig{
				Host:     cfg.SMTPHost,
				Port:     cfg.SMTPPort,
				Username: cfg.SMTPUsername,
				Password: cfg.SMTPPassword,
				From:     cfg.MailFrom,
				TLS:      cfg.SMTPTLS,
				Timeout:  cfg.MailTimeout,
			}, c.Logger)
		} else {
			c.Logger.Warn("mail.host not set, emails are logged instead of sent")
			c.Mailer = notifications.NewLogMailer(c.Logger)
		}
	}

	if len(cfg.KafkaBrokers) > 0 {
		kafkaAudit := events.NewKafkaAuditLogger(cfg.KafkaBrokers, cfg.KafkaTopic, c.Logger)
		c.Audit = kafkaAudit
		c.closers = append(c.closers, kafkaAudit.Close)
	} else {
		c.Audit = events.NewLogAuditLogger(c.Logger)
	}

	if c.Captcha == nil {
		if cfg.CaptchaEnabled {
			c.Captcha = captcha.NewRecaptchaService(cfg.CaptchaSecret, cfg.CaptchaURL, cfg.CaptchaThreshold, cfg.CaptchaTimeout, c.Logger)
		} else {
			c.Logger.Warn("captcha disabled")
			c.Captcha = captcha.Disabled{}
		}
	}
}

func (c *Container) initServices() error {
	cfg := c.Config

	// Initialize basic services
	c.PasswordSvc = auth.NewPasswordService(cfg.BcryptCost)
	c.TokenSvc = auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AuthTTL)
	c.Limiter = services.NewResendLimiter(c.RedisClient, cfg.ResendWindow, c.Logger)

	// Initialize policy service
	modelText, err := cfg.PolicyModel()
	if err != nil {
		return err
	}
	policies := cfg.Policies
	if len(policies) == 0 {
		policies = DefaultPolicies
		c.Logger.Info("casbin: seeded default policies")
	}
	cas, err := auth.NewCasbinService(modelText, policies)
	if err != nil {
		return err
	}
	c.PolicySvc = services.NewPolicyService(cas.E)

	users := services.NewUserService(c.stores.accounts, c.PasswordSvc, c.Audit, c.Logger)
	c.UserSvc = users
	c.PostSvc = services.NewPostService(c.stores.posts, users, c.Logger)

	// auth service depends on all other services
	c.AuthSvc = services.NewAuthService(
		users,
		c.PasswordSvc,
		c.TokenSvc,
		c.Captcha,
		c.Mailer,
		c.Limiter,
		c.Audit,
		c.Logger,
		services.AuthConfig{
			BaseURL:     cfg.BaseURL,
			AuthTTL:     cfg.AuthTTL,
			VerifyTTL:   cfg.VerifyTTL,
			ResetTTL:    cfg.ResetTTL,
			MailTimeout: cfg.MailTimeout,
		},
	)
	return nil
}

// Router builds the HTTP surface over the container's services
func (c *Container) Router() *gin.Engine {
	return httpx.BuildRouter(
		httpx.Handlers{
			Auth:     handlers.NewAuthHandlers(c.AuthSvc, c.UserSvc),
			Users:    handlers.NewUserHandlers(c.UserSvc),
			Posts:    handlers.NewPostHandlers(c.PostSvc),
			Policies: handlers.NewPolicyHandlers(c.PolicySvc, c.Logger),
		},
		middleware.NewAuthMW(c.TokenSvc, c.UserSvc),
		middleware.NewPolicyMW(c.PolicySvc, c.Logger),
		c.Logger,
	)
}

// Close releases connections in reverse order of creation
func (c *Container) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}
