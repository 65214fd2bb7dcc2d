// Package loop provides the fixed-timestep driver shared by every front end.
// A Loop accumulates wall time and turns it into whole simulation steps; the
// caller decides how frames are triggered (Bubble Tea ticks, ebiten's Update,
// or Run with a Scheduler).
package loop

import (
	"context"
	"sync"
	"time"
)

// Default timing.
const (
	DefaultTickRate = 60
	DefaultMaxFrame = 100 * time.Millisecond
)

// Loop runs update at a fixed rate and render once per frame.
type Loop struct {
	Step     time.Duration
	MaxFrame time.Duration

	update func(dt float64)
	render func()
	clock  Clock
	sched  Scheduler

	mu      sync.Mutex
	running bool
	last    time.Time
	acc     time.Duration
	cancel  func()
	stopped chan struct{}
}

// Option configures a Loop.
type Option func(*Loop)

// WithClock replaces the wall clock used by Run.
func WithClock(c Clock) Option {
	return func(l *Loop) { l.clock = c }
}

// WithScheduler replaces the scheduler used by Run.
func WithScheduler(s Scheduler) Option {
	return func(l *Loop) { l.sched = s }
}

// New creates a stopped loop. A non-positive tickRate or maxFrame takes the
// default. render may be nil.
func New(tickRate int, maxFrame time.Duration, update func(dt float64), render func(), opts ...Option) *Loop {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	if maxFrame <= 0 {
		maxFrame = DefaultMaxFrame
	}
	l := &Loop{
		Step:     time.Second / time.Duration(tickRate),
		MaxFrame: maxFrame,
		update:   update,
		render:   render,
		clock:    SystemClock{},
		sched:    TickerScheduler{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Start begins accumulating time from now. Starting a running loop does
// nothing.
func (l *Loop) Start(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return
	}
	l.running = true
	l.last = now
	l.acc = 0
	l.stopped = make(chan struct{})
}

// Stop halts the loop and cancels any pending scheduled frame. Stopping a
// stopped loop does nothing.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.running {
		return
	}
	l.running = false
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	close(l.stopped)
}

// Running reports whether the loop is started.
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

// Frame advances the loop to now: the elapsed time, clamped to MaxFrame, is
// added to the accumulator and update runs once per whole step in it. render
// runs once afterwards. Frame returns the number of steps run; on a stopped
// loop it does nothing and returns 0.
func (l *Loop) Frame(now time.Time) int {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return 0
	}
	elapsed := now.Sub(l.last)
	l.last = now
	elapsed = max(0, min(elapsed, l.MaxFrame))
	l.acc += elapsed
	n := int(l.acc / l.Step)
	l.acc -= time.Duration(n) * l.Step
	l.mu.Unlock()

	dt := l.Step.Seconds()
	for i := 0; i < n; i++ {
		l.update(dt)
	}
	if l.render != nil {
		l.render()
	}
	return n
}

// Alpha returns the leftover fraction of a step in the accumulator, for
// renderers that interpolate.
func (l *Loop) Alpha() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return float64(l.acc) / float64(l.Step)
}

// Run starts the loop and drives frames through the scheduler, one Step
// apart, until ctx is done or Stop is called. It returns ctx.Err() when the
// context ended the loop and nil after Stop.
func (l *Loop) Run(ctx context.Context) error {
	l.Start(l.clock.Now())

	l.mu.Lock()
	stopped := l.stopped
	l.mu.Unlock()

	ticks := make(chan struct{}, 1)
	fire := func() {
		select {
		case ticks <- struct{}{}:
		default:
		}
	}
	arm := func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.running {
			l.cancel = l.sched.Schedule(l.Step, fire)
		}
	}

	arm()
	for {
		select {
		case <-ctx.Done():
			l.Stop()
			return ctx.Err()
		case <-stopped:
			return nil
		case <-ticks:
			l.Frame(l.clock.Now())
			arm()
		}
	}
}
