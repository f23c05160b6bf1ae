package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/labakery/backend/internal/infrastructure/auth"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTokenBlacklist_AddToBlacklist(t *testing.T) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	require.NoError(t, blacklist.AddToBlacklist(ctx, "jti-1", time.Hour))

	revoked, err := blacklist.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = blacklist.IsBlacklisted(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestInMemoryTokenBlacklist_ExpirationCleanup(t *testing.T) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	require.NoError(t, blacklist.AddToBlacklist(ctx, "jti-expire", time.Millisecond))
	time.Sleep(10 * time.Millisecond)

	revoked, err := blacklist.IsBlacklisted(ctx, "jti-expire")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestInMemoryTokenBlacklist_IgnoresExpiredTokens(t *testing.T) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	require.NoError(t, blacklist.AddToBlacklist(ctx, "jti-old", 0))

	revoked, err := blacklist.IsBlacklisted(ctx, "jti-old")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedisTokenBlacklist_ConnectionError(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	})
	t.Cleanup(func() { _ = client.Close() })
	blacklist := auth.NewRedisTokenBlacklist(client)
	ctx := context.Background()

	err := blacklist.AddToBlacklist(ctx, "jti", time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to add token to blacklist")

	_, err = blacklist.IsBlacklisted(ctx, "jti")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to check token blacklist")

	assert.NoError(t, blacklist.AddToBlacklist(ctx, "jti", 0))
}
