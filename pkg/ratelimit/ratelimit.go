// Package ratelimit provides a per-key fixed-window request gate: the
// only state in the orchestration core shared across concurrent requests.
package ratelimit

import (
	"sync"
	"time"
)

// window tracks one key's count within its current window. Each window
// has its own lock so independent keys proceed fully in parallel; the
// check-then-increment on a single key is serialized.
type window struct {
	mu    sync.Mutex
	count int
	start time.Time
}

// Limiter gates request volume per key over sliding fixed windows. The
// window resets strictly after its duration has elapsed since the first
// request in it, not on a calendar boundary.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

// New creates an empty Limiter.
func New() *Limiter {
	return &Limiter{
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

// Allow records one request against key and reports whether it fits
// within max requests per windowDur. remaining is how many further
// requests the current window still admits.
func (l *Limiter) Allow(key string, max int, windowDur time.Duration) (allowed bool, remaining int) {
	l.mu.Lock()
	w, ok := l.windows[key]
	if !ok {
		w = &window{}
		l.windows[key] = w
	}
	l.mu.Unlock()

	w.mu.Lock()
	defer w.mu.Unlock()

	now := l.now()
	if w.start.IsZero() || now.Sub(w.start) > windowDur {
		w.count = 0
		w.start = now
	}

	if w.count >= max {
		return false, 0
	}
	w.count++
	return true, max - w.count
}
