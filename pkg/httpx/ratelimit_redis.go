package httpx

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a fixed window counter shared by every replica that talks
// to the same Redis. Burst is not modelled; a window admits exactly
// RequestsPerWindow requests.
type RedisLimiter struct {
	client redis.Cmdable
	prefix string
	config RateLimitConfig
	now    func() time.Time
}

// NewRedisLimiter keys its counters under "ratelimit:{name}:".
func NewRedisLimiter(client redis.Cmdable, name string, config RateLimitConfig) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		prefix: "ratelimit:" + name + ":",
		config: config,
		now:    time.Now,
	}
}

// RedisLimiters returns a LimiterFactory backed by client.
func RedisLimiters(client redis.Cmdable) LimiterFactory {
	return func(name string, config RateLimitConfig) Limiter {
		return NewRedisLimiter(client, name, config)
	}
}

// Allow implements Limiter.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	now := l.now()
	window := l.config.Window.Milliseconds()
	slot := now.UnixMilli() / window
	k := fmt.Sprintf("%s%s:%d", l.prefix, key, slot)

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		pipe.PExpire(ctx, k, l.config.Window)
		return nil
	})
	if err != nil {
		return Decision{}, fmt.Errorf("redis limiter: %w", err)
	}

	if incr.Val() <= int64(l.config.RequestsPerWindow) {
		return Decision{Allowed: true}, nil
	}

	windowEnd := time.UnixMilli((slot + 1) * window)
	return Decision{Allowed: false, RetryAfter: windowEnd.Sub(now)}, nil
}
