package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoginLimiter(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	newLimiter := func(maxAttempts int, window time.Duration) (*LoginLimiter, *time.Time) {
		current := now
		l := NewLoginLimiter(maxAttempts, window)
		l.now = func() time.Time { return current }
		return l, &current
	}

	t.Run("fresh key is allowed", func(t *testing.T) {
		l, _ := newLimiter(3, time.Minute)

		assert.True(t, l.Allow("10.0.0.1"))
	})

	t.Run("blocks after the limit inside the window", func(t *testing.T) {
		l, _ := newLimiter(3, time.Minute)

		for i := 0; i < 3; i++ {
			assert.True(t, l.Allow("10.0.0.1"))
			l.RecordFailure("10.0.0.1")
		}

		assert.False(t, l.Allow("10.0.0.1"))
		assert.True(t, l.Allow("10.0.0.2"), "other keys are unaffected")
	})

	t.Run("window expiry clears the counter", func(t *testing.T) {
		l, current := newLimiter(3, time.Minute)

		for i := 0; i < 3; i++ {
			l.RecordFailure("10.0.0.1")
		}
		assert.False(t, l.Allow("10.0.0.1"))

		*current = current.Add(61 * time.Second)

		assert.True(t, l.Allow("10.0.0.1"))
	})

	t.Run("reset clears the key immediately", func(t *testing.T) {
		l, _ := newLimiter(3, time.Minute)

		for i := 0; i < 3; i++ {
			l.RecordFailure("10.0.0.1")
		}
		assert.False(t, l.Allow("10.0.0.1"))

		l.Reset("10.0.0.1")

		assert.True(t, l.Allow("10.0.0.1"))
	})

	t.Run("failure after expiry starts a new window", func(t *testing.T) {
		l, current := newLimiter(2, time.Minute)

		l.RecordFailure("10.0.0.1")
		l.RecordFailure("10.0.0.1")
		assert.False(t, l.Allow("10.0.0.1"))

		*current = current.Add(2 * time.Minute)
		l.RecordFailure("10.0.0.1")

		assert.True(t, l.Allow("10.0.0.1"), "one failure in the new window is under the limit")
	})
}
