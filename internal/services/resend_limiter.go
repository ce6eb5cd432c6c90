package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/you/blogsvc/domain"
	"go.uber.org/zap"
)

// Mail purposes used as resend limiter keys
const (
	PurposeVerify = "verify"
	PurposeReset  = "reset"
)

// ResendLimiter throttles repeated emails with a redis key per purpose and
// address that lives for the resend window.
type ResendLimiter struct {
	redisClient *redis.Client
	window      time.Duration
	logger      *zap.Logger
}

// NewResendLimiter creates a limiter. A nil client or a non-positive window
// disables throttling.
func NewResendLimiter(redisClient *redis.Client, window time.Duration, logger *zap.Logger) *ResendLimiter {
	return &ResendLimiter{redisClient: redisClient, window: window, logger: logger.Named("resend")}
}

func resendKey(purpose, email string) string {
	return fmt.Sprintf("mail:resend:%s:%s", purpose, strings.ToLower(email))
}

// Allow implements domain.ResendLimiter. Redis errors fail open.
func (l *ResendLimiter) Allow(ctx context.Context, purpose, email string) (bool, time.Duration) {
	if l.redisClient == nil || l.window <= 0 {
		return true, 0
	}

	key := resendKey(purpose, email)
	set, err := l.redisClient.SetNX(ctx, key, 1, l.window).Result()
	if err != nil {
		l.logger.Warn("resend throttle unavailable", zap.String("purpose", purpose), zap.Error(err))
		return true, 0
	}
	if set {
		return true, 0
	}

	ttl, err := l.redisClient.TTL(ctx, key).Result()
	if err != nil || ttl <= 0 {
		ttl = l.window
	}
	return false, ttl
}

var _ domain.ResendLimiter = (*ResendLimiter)(nil)
