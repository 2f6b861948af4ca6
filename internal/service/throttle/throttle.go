// Package throttle bounds the anonymous comment-submission rate with a
// per-client sliding window. State is process-local; the limiter is injected
// into the comment service so a shared implementation can replace it without
// touching call sites.
package throttle

import (
	"sync"
	"time"
)

type Limiter struct {
	mu      sync.Mutex
	window  time.Duration
	max     int
	entries map[string][]time.Time

	now  func() time.Time
	stop chan struct{}
}

func New(window time.Duration, max int) *Limiter {
	l := &Limiter{
		window:  window,
		max:     max,
		entries: make(map[string][]time.Time),
		now:     time.Now,
		stop:    make(chan struct{}),
	}

	go l.sweepLoop()

	return l
}

// Allow records an attempt for key and reports whether it is within the
// window budget. The check-and-append sequence is serialized so that two
// near-simultaneous requests cannot both observe "under limit".
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	recent := l.entries[key][:0]
	for _, t := range l.entries[key] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= l.max {
		l.entries[key] = recent
		return false
	}

	l.entries[key] = append(recent, now)
	return true
}

func (l *Limiter) Stop() {
	close(l.stop)
}

// sweepLoop drops keys whose window has fully drained, so address churn does
// not grow the table without bound.
func (l *Limiter) sweepLoop() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.sweep()
		case <-l.stop:
			return
		}
	}
}

func (l *Limiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	for key, stamps := range l.entries {
		live := false
		for _, t := range stamps {
			if t.After(cutoff) {
				live = true
				break
			}
		}
		if !live {
			delete(l.entries, key)
		}
	}
}
