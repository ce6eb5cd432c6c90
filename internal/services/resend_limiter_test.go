package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestResendLimiter_Window(t *testing.T) {
	ctx := context.Background()
	mr, client := setupRedis(t)
	limiter := NewResendLimiter(client, time.Minute, zap.NewNop())

	ok, wait := limiter.Allow(ctx, PurposeVerify, "Alice@Example.com")
	assert.True(t, ok)
	assert.Zero(t, wait)
	assert.True(t, mr.Exists("mail:resend:verify:alice@example.com"))

	ok, wait = limiter.Allow(ctx, PurposeVerify, "alice@example.com")
	assert.False(t, ok)
	assert.Equal(t, time.Minute, wait)

	// purposes are throttled independently
	ok, _ = limiter.Allow(ctx, PurposeReset, "alice@example.com")
	assert.True(t, ok)

	mr.FastForward(45 * time.Second)
	ok, wait = limiter.Allow(ctx, PurposeVerify, "alice@example.com")
	assert.False(t, ok)
	assert.Equal(t, 15*time.Second, wait)

	mr.FastForward(16 * time.Second)
	ok, _ = limiter.Allow(ctx, PurposeVerify, "alice@example.com")
	assert.True(t, ok)
}

func TestResendLimiter_Disabled(t *testing.T) {
	limiter := NewResendLimiter(nil, time.Minute, zap.NewNop())
	for i := 0; i < 3; i++ {
		ok, _ := limiter.Allow(context.Background(), PurposeVerify, "a@example.com")
		assert.True(t, ok)
	}
}

func TestResendLimiter_FailsOpen(t *testing.T) {
	mr, client := setupRedis(t)
	mr.Close()

	limiter := NewResendLimiter(client, time.Minute, zap.NewNop())
	ok, wait := limiter.Allow(context.Background(), PurposeReset, "a@example.com")
	assert.True(t, ok)
	assert.Zero(t, wait)
}
