// Package ratelimiter throttles repeated operations per key, such as login
// attempts per client IP.
package ratelimiter

import (
	"sync"
	"time"
)

// Limiter counts operations per key over a fixed window.
// The window resets fully once it elapses.
type Limiter struct {
	limit    int           // attempts allowed per window
	interval time.Duration // window size

	mu      sync.Mutex
	windows map[string]*window
}

type window struct {
	count     int
	lastReset time.Time
}

// NewLimiter creates a Limiter allowing limit attempts per interval per key.
func NewLimiter(limit int, interval time.Duration) *Limiter {
	return &Limiter{
		limit:    limit,
		interval: interval,
		windows:  make(map[string]*window),
	}
}

// Allow reports whether another attempt for key fits in the current window,
// and records it if so.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, ok := l.windows[key]
	if !ok || now.Sub(w.lastReset) >= l.interval {
		l.evictStale(now)
		l.windows[key] = &window{count: 1, lastReset: now}
		return true
	}

	if w.count >= l.limit {
		return false
	}
	w.count++
	return true
}

// evictStale drops windows that elapsed, keeping the map bounded.
// Called with the mutex held.
func (l *Limiter) evictStale(now time.Time) {
	for key, w := range l.windows {
		if now.Sub(w.lastReset) >= l.interval {
			delete(l.windows, key)
		}
	}
}
