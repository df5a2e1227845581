package circuit

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock drives cooldowns without sleeping.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestBreaker(clock *fakeClock, opts ...Option) *Breaker {
	opts = append([]Option{
		WithFailureThreshold(2),
		WithSuccessThreshold(2),
		WithCooldown(time.Minute),
		WithClock(clock.Now),
	}, opts...)
	return New("ffn", opts...)
}

// step is one call outcome fed to the breaker: true records a success.
type step bool

const (
	ok   step = true
	fail step = false
)

func record(b *Breaker, s step) StateChange {
	if s == ok {
		_, change := b.RecordSuccess()
		return change
	}
	_, change := b.RecordFailure()
	return change
}

func TestBreaker_NewIsClosed(t *testing.T) {
	b := New("ffn")
	assert.Equal(t, "ffn", b.Name())
	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, "closed", b.State().String())
	assert.True(t, b.Allow())
}

func TestBreaker_Transitions(t *testing.T) {
	tests := []struct {
		name   string
		steps  []step
		want   State
		opened int
		closed int
	}{
		{"single failure stays closed", []step{fail}, StateClosed, 0, 0},
		{"consecutive failures open", []step{fail, fail}, StateOpen, 1, 0},
		{"success between failures resets the run", []step{fail, ok, fail}, StateClosed, 0, 0},
		{"further failures while open report no change", []step{fail, fail, fail, fail}, StateOpen, 1, 0},
		{"one success is not enough to close", []step{fail, fail, ok}, StateOpen, 1, 0},
		{"success threshold closes", []step{fail, fail, ok, ok}, StateClosed, 1, 1},
		{"failure while open restarts the success run", []step{fail, fail, ok, fail, ok}, StateOpen, 1, 0},
		{"reopens after closing", []step{fail, fail, ok, ok, fail, fail}, StateOpen, 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBreaker(newFakeClock())

			var opened, closed int
			for _, s := range tt.steps {
				change := record(b, s)
				if change.Opened {
					opened++
				}
				if change.Closed {
					closed++
				}
			}
			assert.Equal(t, tt.want, b.State())
			assert.Equal(t, tt.opened, opened, "opened transitions")
			assert.Equal(t, tt.closed, closed, "closed transitions")
		})
	}
}

func TestBreaker_RecordResultsTellCallerWhichPathToUse(t *testing.T) {
	b := newTestBreaker(newFakeClock())

	useFallback, _ := b.RecordFailure()
	assert.False(t, useFallback, "below threshold the primary path is still used")
	useFallback, _ = b.RecordFailure()
	assert.True(t, useFallback)

	usePrimary, _ := b.RecordSuccess()
	assert.False(t, usePrimary, "open until the success threshold is met")
	usePrimary, _ = b.RecordSuccess()
	assert.True(t, usePrimary)
}

func TestBreaker_CooldownGatesTrials(t *testing.T) {
	clock := newFakeClock()
	b := newTestBreaker(clock)
	record(b, fail)
	record(b, fail)
	require.True(t, b.IsOpen())

	assert.False(t, b.Allow())
	clock.Advance(59 * time.Second)
	assert.False(t, b.Allow())

	clock.Advance(time.Second)
	assert.True(t, b.Allow(), "trial once the cooldown has elapsed")

	// A failed trial restarts the cooldown.
	record(b, fail)
	assert.False(t, b.Allow())
	clock.Advance(time.Minute)
	assert.True(t, b.Allow())
}

func TestBreaker_SuccessfulTrialsCloseAfterThreshold(t *testing.T) {
	clock := newFakeClock()
	b := newTestBreaker(clock)
	record(b, fail)
	record(b, fail)
	clock.Advance(time.Minute)

	require.True(t, b.Allow())
	assert.False(t, record(b, ok).Closed)

	// The next trial is let through without waiting again.
	require.True(t, b.Allow())
	assert.True(t, record(b, ok).Closed)
	assert.Equal(t, StateClosed, b.State())
	assert.True(t, b.Allow())
}

func TestBreaker_OneTrialAtATime(t *testing.T) {
	clock := newFakeClock()
	b := newTestBreaker(clock)
	record(b, fail)
	record(b, fail)
	clock.Advance(time.Minute)

	var allowed atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if b.Allow() {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), allowed.Load())
}

func TestBreaker_AbandonedTrialExpires(t *testing.T) {
	clock := newFakeClock()
	b := newTestBreaker(clock)
	record(b, fail)
	record(b, fail)
	clock.Advance(time.Minute)

	require.True(t, b.Allow())
	assert.False(t, b.Allow(), "trial still in flight")

	clock.Advance(time.Minute)
	assert.True(t, b.Allow(), "unrecorded trial given up after another cooldown")
}

func TestBreaker_ZeroCooldownAlwaysAllows(t *testing.T) {
	b := newTestBreaker(newFakeClock(), WithCooldown(0))
	record(b, fail)
	record(b, fail)
	require.True(t, b.IsOpen())

	assert.True(t, b.Allow())
	assert.True(t, b.Allow())
}

func TestBreaker_InvalidOptionsKeepDefaults(t *testing.T) {
	b := New("ffn", WithFailureThreshold(0), WithSuccessThreshold(-1), WithCooldown(-time.Second), WithClock(nil))

	for i := 0; i < defaultFailureThreshold-1; i++ {
		record(b, fail)
	}
	assert.False(t, b.IsOpen())
	record(b, fail)
	assert.True(t, b.IsOpen())
	assert.Equal(t, "open", b.State().String())
	assert.False(t, b.Allow(), "default cooldown applies")
}
