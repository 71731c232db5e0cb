// Package ratelimit implements an exact sliding-window admission
// limiter keyed by an opaque client identifier.
package ratelimit

import (
	"sync"
	"time"
)

// Sweep cadence for dropping buckets whose every timestamp has aged out
// of the window. Eviction happens inline on every sweepEvery-th Admit
// call; there is no background goroutine.
const sweepEvery = 512

// Limiter admits at most Quota events per client within any trailing
// Window-length interval, computed from exact event timestamps. The
// zero value is not usable; construct with New.
type Limiter struct {
	window time.Duration
	quota  int

	// Clock returns the current time. Overridable in tests.
	Clock func() time.Time

	mu      sync.Mutex
	buckets map[string][]time.Time
	admits  int
}

// New returns a limiter enforcing quota events per window per client.
func New(window time.Duration, quota int) *Limiter {
	return &Limiter{
		window:  window,
		quota:   quota,
		Clock:   time.Now,
		buckets: make(map[string][]time.Time),
	}
}

// Admit decides whether a request from clientID is allowed now. The
// lookup, prune, check, and append happen under one lock so concurrent
// callers for the same client serialize. Rejected requests do not
// consume quota.
func (l *Limiter) Admit(clientID string) bool {
	now := l.Clock()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.admits++
	if l.admits%sweepEvery == 0 {
		l.sweepLocked(now)
	}

	stamps := l.prune(l.buckets[clientID], now)
	if len(stamps) >= l.quota {
		l.buckets[clientID] = stamps
		return false
	}

	l.buckets[clientID] = append(stamps, now)
	return true
}

// prune drops timestamps strictly older than now minus the window.
// Timestamps are appended in order, so the survivors are a suffix.
func (l *Limiter) prune(stamps []time.Time, now time.Time) []time.Time {
	cutoff := now.Add(-l.window)
	i := 0
	for i < len(stamps) && stamps[i].Before(cutoff) {
		i++
	}
	return stamps[i:]
}

// sweepLocked removes buckets whose newest timestamp has aged past the
// window, bounding table growth from clients that never return. Caller
// holds l.mu.
func (l *Limiter) sweepLocked(now time.Time) {
	cutoff := now.Add(-l.window)
	for id, stamps := range l.buckets {
		if len(stamps) == 0 || stamps[len(stamps)-1].Before(cutoff) {
			delete(l.buckets, id)
		}
	}
}

// Size returns the number of tracked client buckets.
func (l *Limiter) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
