package ratelimit

import (
	"sync"
	"time"
)

type attemptWindow struct {
	count       int
	windowStart time.Time
}

// LoginLimiter throttles failed login attempts per client key (usually the
// remote IP). Attempts inside the window count toward the limit; once the
// window expires the counter resets. A successful login clears the key.
type LoginLimiter struct {
	mu          sync.Mutex
	attempts    map[string]attemptWindow
	maxAttempts int
	window      time.Duration
	now         func() time.Time
}

func NewLoginLimiter(maxAttempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{
		attempts:    make(map[string]attemptWindow),
		maxAttempts: maxAttempts,
		window:      window,
		now:         time.Now,
	}
}

// Allow reports whether the key is still under the failure limit.
func (l *LoginLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.attempts[key]
	if !ok {
		return true
	}

	if l.now().Sub(w.windowStart) > l.window {
		delete(l.attempts, key)
		return true
	}

	return w.count < l.maxAttempts
}

// RecordFailure counts one failed attempt against the key.
func (l *LoginLimiter) RecordFailure(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	w, ok := l.attempts[key]
	if !ok || now.Sub(w.windowStart) > l.window {
		l.attempts[key] = attemptWindow{count: 1, windowStart: now}
		return
	}

	w.count++
	l.attempts[key] = w
}

// Reset clears the key after a successful login.
func (l *LoginLimiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.attempts, key)
}
