package throttle

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiter_WindowBudget(t *testing.T) {
	l := New(10*time.Minute, 5)
	defer l.Stop()

	current := time.Now()
	l.now = func() time.Time { return current }

	for i := 0; i < 5; i++ {
		assert.True(t, l.Allow("203.0.113.7"), "submission %d should pass", i+1)
	}

	assert.False(t, l.Allow("203.0.113.7"), "sixth submission within the window should fail")

	t.Run("OtherKeyUnaffected", func(t *testing.T) {
		assert.True(t, l.Allow("198.51.100.9"))
	})

	t.Run("WindowElapses", func(t *testing.T) {
		current = current.Add(10*time.Minute + time.Second)
		assert.True(t, l.Allow("203.0.113.7"))
	})
}

func TestLimiter_Sweep(t *testing.T) {
	l := New(time.Minute, 3)
	defer l.Stop()

	current := time.Now()
	l.now = func() time.Time { return current }

	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("b"))

	current = current.Add(2 * time.Minute)
	l.sweep()

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Empty(t, l.entries)
}

func TestLimiter_Concurrent(t *testing.T) {
	l := New(time.Minute, 5)
	defer l.Stop()

	var wg sync.WaitGroup
	allowed := make(chan bool, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed <- l.Allow("same-key")
		}()
	}
	wg.Wait()
	close(allowed)

	count := 0
	for ok := range allowed {
		if ok {
			count++
		}
	}
	assert.Equal(t, 5, count, "exactly max submissions may pass concurrently")
}
