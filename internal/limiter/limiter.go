// Package limiter holds the fixed-window request counters of the sync server.
package limiter

import (
	"math"
	"sync"
	"time"
)

type window struct {
	count   int
	resetAt time.Time
}

// FixedWindow counts requests per key in fixed windows. It is safe for
// concurrent use; expired windows are dropped by Evict.
type FixedWindow struct {
	mu      sync.Mutex
	windows map[string]*window
	length  time.Duration
	max     int
	now     func() time.Time
}

// NewFixedWindow allows max requests per key within every window of length.
func NewFixedWindow(length time.Duration, max int) *FixedWindow {
	return &FixedWindow{
		windows: make(map[string]*window),
		length:  length,
		max:     max,
		now:     time.Now,
	}
}

// Allow registers a request for key. When the key has used up its window it
// returns false and the time left until the window resets.
func (l *FixedWindow) Allow(key string) (bool, time.Duration) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || !now.Before(w.resetAt) {
		l.windows[key] = &window{count: 1, resetAt: now.Add(l.length)}
		return true, 0
	}

	if w.count >= l.max {
		return false, w.resetAt.Sub(now)
	}

	w.count++
	return true, 0
}

// Evict removes windows that have already reset and returns how many were
// dropped.
func (l *FixedWindow) Evict() int {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	evicted := 0
	for key, w := range l.windows {
		if !now.Before(w.resetAt) {
			delete(l.windows, key)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of tracked keys.
func (l *FixedWindow) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}

// RetryAfterSeconds rounds d up to whole seconds, never below one.
func RetryAfterSeconds(d time.Duration) int {
	s := int(math.Ceil(d.Seconds()))
	if s < 1 {
		return 1
	}
	return s
}
