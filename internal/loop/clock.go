package loop

import (
	"sync"
	"time"
)

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock only moves when told to.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock creates a clock stopped at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// StepClock advances by a fixed amount every time it is read. Paired with a
// Loop of the same Step it yields exactly one update per frame, which makes
// headless runs independent of wall time.
type StepClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// NewStepClock creates a clock that starts at start and moves by step per
// read.
func NewStepClock(start time.Time, step time.Duration) *StepClock {
	return &StepClock{now: start, step: step}
}

// Now returns the current time, then advances.
func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// Scheduler runs fn once after d, unless the returned cancel is called first.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) (cancel func())
}

// TickerScheduler schedules on real timers.
type TickerScheduler struct{}

// Schedule runs fn on its own goroutine after d.
func (TickerScheduler) Schedule(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// ImmediateScheduler ignores the delay and runs fn as soon as possible on a
// new goroutine. Headless runs use it with a StepClock.
type ImmediateScheduler struct{}

// Schedule runs fn right away unless cancelled first.
func (ImmediateScheduler) Schedule(_ time.Duration, fn func()) func() {
	var (
		mu        sync.Mutex
		cancelled bool
	)
	go func() {
		mu.Lock()
		c := cancelled
		mu.Unlock()
		if !c {
			fn()
		}
	}()
	return func() {
		mu.Lock()
		cancelled = true
		mu.Unlock()
	}
}
