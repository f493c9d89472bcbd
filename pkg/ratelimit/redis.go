package ratelimit

import (
	"context"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// RedisLimiter is a fixed-window counter shared by every instance that
// points at the same redis.
type RedisLimiter struct {
	client *redis.Client
	cfg    Config
	prefix string
}

// NewRedisLimiter creates a limiter storing counters under prefix.
func NewRedisLimiter(client *redis.Client, prefix string, cfg Config) *RedisLimiter {
	return &RedisLimiter{client: client, cfg: cfg.normalized(), prefix: prefix}
}

// Consume increments the key's counter for the current window.
func (l *RedisLimiter) Consume(ctx context.Context, key string) (Result, error) {
	redisKey := fmt.Sprintf("%s:%s", l.prefix, key)

	// The window starts with the first request; NX keeps later requests from
	// pushing the expiry out.
	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, redisKey, 0, l.cfg.Window)
		incr = pipe.Incr(ctx, redisKey)
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("ratelimit: incr %s: %w", redisKey, err)
	}
	count := incr.Val()

	res := Result{Limit: l.cfg.Requests}
	if count <= int64(l.cfg.Requests) {
		res.Allowed = true
		res.Remaining = l.cfg.Requests - int(count)
		return res, nil
	}

	ttl, err := l.client.PTTL(ctx, redisKey).Result()
	if err != nil || ttl < 0 {
		ttl = l.cfg.Window
	}
	res.RetryAfter = ttl
	return res, nil
}

// Ensure both stores satisfy the interface.
var (
	_ Limiter = (*MemoryLimiter)(nil)
	_ Limiter = (*RedisLimiter)(nil)
)

// WindowFromSeconds is a helper for configuration values expressed in seconds.
func WindowFromSeconds(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}
