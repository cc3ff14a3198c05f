package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowWindowing(t *testing.T) {
	now := time.Unix(1700000000, 0)
	l := New()
	l.now = func() time.Time { return now }

	const max = 2
	window := time.Second

	allowed, remaining := l.Allow("ip-1", max, window)
	assert.True(t, allowed)
	assert.Equal(t, 1, remaining)

	allowed, remaining = l.Allow("ip-1", max, window)
	assert.True(t, allowed)
	assert.Equal(t, 0, remaining)

	allowed, remaining = l.Allow("ip-1", max, window)
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)

	// Still inside the window: no reset on a calendar boundary.
	now = now.Add(999 * time.Millisecond)
	allowed, _ = l.Allow("ip-1", max, window)
	assert.False(t, allowed)

	// Strictly after windowMs has elapsed since windowStart.
	now = now.Add(2 * time.Millisecond)
	allowed, remaining = l.Allow("ip-1", max, window)
	assert.True(t, allowed)
	assert.Equal(t, 1, remaining)
}

func TestAllowIndependentKeys(t *testing.T) {
	l := New()

	allowed, _ := l.Allow("a", 1, time.Minute)
	require.True(t, allowed)
	allowed, _ = l.Allow("a", 1, time.Minute)
	require.False(t, allowed)

	// A different key has its own window.
	allowed, _ = l.Allow("b", 1, time.Minute)
	assert.True(t, allowed)
}

func TestAllowConcurrentSameKey(t *testing.T) {
	l := New()
	const max = 50
	const attempts = 200

	var wg sync.WaitGroup
	granted := make(chan struct{}, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("shared", max, time.Minute); ok {
				granted <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(granted)

	assert.Equal(t, max, len(granted), "count must never exceed max within the window")
}
