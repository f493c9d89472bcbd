package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type memoryEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter keeps one token bucket per key in process memory. A bucket
// holds the full budget and regains one request per window, so a key gets at
// most Requests calls in any window plus one at the window edge. State is
// lost on restart and is not shared between instances.
type MemoryLimiter struct {
	cfg      Config
	mu       sync.Mutex
	entries  map[string]*memoryEntry
	entryTTL time.Duration
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

// NewMemoryLimiter creates a limiter and starts its sweep loop. Idle keys are
// evicted once a full window has passed since their last request.
func NewMemoryLimiter(cfg Config, sweepInterval time.Duration) *MemoryLimiter {
	cfg = cfg.normalized()
	l := &MemoryLimiter{
		cfg:      cfg,
		entries:  make(map[string]*memoryEntry),
		entryTTL: cfg.Window,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	if sweepInterval > 0 {
		go l.sweepLoop(sweepInterval)
	}
	return l
}

// Consume spends one request of the key's budget.
func (l *MemoryLimiter) Consume(_ context.Context, key string) (Result, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[key]
	if !ok {
		entry = &memoryEntry{limiter: rate.NewLimiter(rate.Every(l.cfg.Window), l.cfg.Requests)}
		l.entries[key] = entry
	}
	entry.lastSeen = now

	res := Result{Limit: l.cfg.Requests}
	reservation := entry.limiter.ReserveN(now, 1)
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		res.RetryAfter = delay
		return res, nil
	}

	res.Allowed = true
	res.Remaining = int(entry.limiter.TokensAt(now))
	if res.Remaining < 0 {
		res.Remaining = 0
	}
	return res, nil
}

func (l *MemoryLimiter) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.Sweep()
		case <-l.stop:
			return
		}
	}
}

// Sweep removes keys that have been idle for longer than a window.
func (l *MemoryLimiter) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.entryTTL)
	for key, entry := range l.entries {
		if entry.lastSeen.Before(cutoff) {
			delete(l.entries, key)
		}
	}
}

// Len returns the number of tracked keys.
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Close stops the sweep loop.
func (l *MemoryLimiter) Close() error {
	l.stopOnce.Do(func() { close(l.stop) })
	return nil
}
