// Package ratelimit provides request budgets keyed by an arbitrary string
// (client IP, user id). Call sites depend on Limiter only, so the in-memory
// store can be swapped for the redis one in multi-instance deployments.
package ratelimit

import (
	"context"
	"time"
)

// Result is the outcome of consuming one unit of a key's budget.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter consumes budget for a key.
type Limiter interface {
	Consume(ctx context.Context, key string) (Result, error)
}

// Config is a fixed request budget per window.
type Config struct {
	Requests int
	Window   time.Duration
}

func (c Config) normalized() Config {
	if c.Requests < 1 {
		c.Requests = 1
	}
	if c.Window <= 0 {
		c.Window = time.Minute
	}
	return c
}
