package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPerClient_SixthAttemptDenied(t *testing.T) {
	t.Parallel()

	limiter := NewPerClient(5, 15*time.Minute)

	for i := 0; i < 5; i++ {
		assert.True(t, limiter.Allow("1.2.3.4"), "attempt %d should pass", i+1)
	}
	assert.False(t, limiter.Allow("1.2.3.4"), "sixth attempt should be rejected")
}

func TestPerClient_SpacedAttemptsStayDenied(t *testing.T) {
	t.Parallel()

	limiter := NewPerClient(5, 15*time.Minute)

	start := time.Now()
	now := start
	limiter.now = func() time.Time { return now }

	for j := 0; j < 5; j++ {
		assert.True(t, limiter.Allow("1.2.3.4"))
	}

	// The budget does not trickle back mid-window: a 6th attempt is
	// rejected no matter where in the window it lands.
	for _, offset := range []time.Duration{
		3 * time.Minute,
		10 * time.Minute,
		15*time.Minute - time.Second,
	} {
		now = start.Add(offset)
		assert.False(t, limiter.Allow("1.2.3.4"), "attempt at +%v should be rejected", offset)
	}

	// Once the window has elapsed the count resets.
	now = start.Add(15 * time.Minute)
	assert.True(t, limiter.Allow("1.2.3.4"))
}

func TestPerClient_ClientsAreIndependent(t *testing.T) {
	t.Parallel()

	limiter := NewPerClient(1, 15*time.Minute)

	assert.True(t, limiter.Allow("1.2.3.4"))
	assert.False(t, limiter.Allow("1.2.3.4"))

	assert.True(t, limiter.Allow("5.6.7.8"))
}

func TestPerClient_PrunesElapsedWindows(t *testing.T) {
	t.Parallel()

	limiter := NewPerClient(1, time.Minute)

	start := time.Now()
	now := start
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.Allow("1.2.3.4"))
	assert.True(t, limiter.Allow("5.6.7.8"))

	limiter.mu.Lock()
	assert.Len(t, limiter.clients, 2)
	limiter.mu.Unlock()

	// Any event after the window drops the elapsed entries.
	now = start.Add(time.Minute)
	assert.True(t, limiter.Allow("9.9.9.9"))

	limiter.mu.Lock()
	assert.Len(t, limiter.clients, 1)
	limiter.mu.Unlock()
}
