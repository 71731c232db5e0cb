package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests advance time explicitly.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestLimiter(window time.Duration, quota int) (*Limiter, *fakeClock) {
	clock := newFakeClock()
	l := New(window, quota)
	l.Clock = clock.Now
	return l, clock
}

func TestAdmitUpToQuota(t *testing.T) {
	l, _ := newTestLimiter(10*time.Minute, 5)

	for i := 0; i < 5; i++ {
		require.True(t, l.Admit("1.2.3.4"), "request %d should be admitted", i+1)
	}
	assert.False(t, l.Admit("1.2.3.4"), "6th request within window must be rejected")
}

func TestRejectionDoesNotConsumeQuota(t *testing.T) {
	l, clock := newTestLimiter(10*time.Minute, 5)

	for i := 0; i < 5; i++ {
		require.True(t, l.Admit("ip"))
	}
	for i := 0; i < 10; i++ {
		require.False(t, l.Admit("ip"))
	}

	// The rejections above appended nothing, so once the original 5
	// age out a new request is admitted.
	clock.Advance(10*time.Minute + time.Second)
	assert.True(t, l.Admit("ip"))
}

func TestWindowSlides(t *testing.T) {
	l, clock := newTestLimiter(10*time.Minute, 5)

	for i := 0; i < 5; i++ {
		require.True(t, l.Admit("ip"))
		clock.Advance(time.Minute)
	}
	// 5 admissions at t=0..4m; now t=5m, all still inside the window.
	require.False(t, l.Admit("ip"))

	// At t=10m1s the t=0 stamp has aged out; exactly one slot opens.
	clock.Advance(5*time.Minute + time.Second)
	assert.True(t, l.Admit("ip"))
	assert.False(t, l.Admit("ip"))
}

func TestSlidingNotFixedBucket(t *testing.T) {
	l, clock := newTestLimiter(10*time.Minute, 5)

	// Burst of 3, then another burst of 3 nine minutes later. Their
	// union lies inside one 10-minute interval, so the second burst
	// must not fully succeed.
	for i := 0; i < 3; i++ {
		require.True(t, l.Admit("ip"))
	}
	clock.Advance(9 * time.Minute)

	admitted := 0
	for i := 0; i < 3; i++ {
		if l.Admit("ip") {
			admitted++
		}
	}
	assert.Equal(t, 2, admitted)
}

func TestClientsAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(10*time.Minute, 1)

	require.True(t, l.Admit("a"))
	require.False(t, l.Admit("a"))
	assert.True(t, l.Admit("b"))
}

func TestSweepEvictsIdleBuckets(t *testing.T) {
	l, clock := newTestLimiter(10*time.Minute, 5)

	for i := 0; i < 100; i++ {
		require.True(t, l.Admit(fmt.Sprintf("client-%d", i)))
	}
	require.Equal(t, 100, l.Size())

	// Every bucket is stale once the window passes. The sweep runs on
	// the 512th Admit call, so drive the counter past it.
	clock.Advance(11 * time.Minute)
	for i := 0; i < sweepEvery; i++ {
		l.Admit("active")
	}

	assert.LessOrEqual(t, l.Size(), 2, "idle buckets should have been evicted")
}

func TestAdmitConcurrentSameClient(t *testing.T) {
	l := New(10*time.Minute, 5)

	const goroutines = 50
	var wg sync.WaitGroup
	results := make(chan bool, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- l.Admit("shared")
		}()
	}
	wg.Wait()
	close(results)

	admitted := 0
	for ok := range results {
		if ok {
			admitted++
		}
	}
	assert.Equal(t, 5, admitted, "exactly quota admissions under contention")
}
