package httpx

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisLimiter(t *testing.T) {
	ctx := context.Background()
	config := RateLimitConfig{RequestsPerWindow: 2, Window: time.Minute, Burst: 2}

	t.Run("admits RequestsPerWindow then blocks", func(t *testing.T) {
		_, client := newTestRedis(t)
		l := NewRedisLimiter(client, "test", config)
		at := time.Date(2025, 1, 1, 12, 0, 10, 0, time.UTC)
		l.now = func() time.Time { return at }

		for range 2 {
			d, err := l.Allow(ctx, "10.0.0.1")
			require.NoError(t, err)
			require.True(t, d.Allowed)
		}

		d, err := l.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		require.False(t, d.Allowed)
		require.Equal(t, 50*time.Second, d.RetryAfter)

		// Other keys are counted separately
		d, err = l.Allow(ctx, "10.0.0.2")
		require.NoError(t, err)
		require.True(t, d.Allowed)
	})

	t.Run("next window starts fresh", func(t *testing.T) {
		_, client := newTestRedis(t)
		l := NewRedisLimiter(client, "test", config)
		at := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
		l.now = func() time.Time { return at }

		for range 3 {
			_, err := l.Allow(ctx, "k")
			require.NoError(t, err)
		}

		at = at.Add(time.Minute)
		d, err := l.Allow(ctx, "k")
		require.NoError(t, err)
		require.True(t, d.Allowed)
	})

	t.Run("counters expire with the window", func(t *testing.T) {
		mr, client := newTestRedis(t)
		l := NewRedisLimiter(client, "login", config)

		_, err := l.Allow(ctx, "k")
		require.NoError(t, err)

		keys := mr.Keys()
		require.Len(t, keys, 1)
		require.Contains(t, keys[0], "ratelimit:login:k:")
		require.Equal(t, time.Minute, mr.TTL(keys[0]))
	})

	t.Run("surfaces backend errors", func(t *testing.T) {
		mr, client := newTestRedis(t)
		l := NewRedisLimiter(client, "test", config)
		mr.Close()

		_, err := l.Allow(ctx, "k")
		require.Error(t, err)
	})
}
