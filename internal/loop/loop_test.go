package loop

import (
	"context"
	"errors"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFrameRunsWholeSteps(t *testing.T) {
	var updates, renders int
	l := New(60, 0, func(float64) { updates++ }, func() { renders++ })
	l.Start(epoch)

	tests := []struct {
		elapsed time.Duration
		want    int
	}{
		{0, 0},
		{l.Step - 1, 0},
		{1, 1},
		{3 * l.Step, 3},
		{l.Step / 2, 0},
		{l.Step / 2, 1},
	}
	now := epoch
	for i, tt := range tests {
		now = now.Add(tt.elapsed)
		if got := l.Frame(now); got != tt.want {
			t.Errorf("frame %d: ran %d steps, want %d", i, got, tt.want)
		}
	}
	if renders != len(tests) {
		t.Errorf("render ran %d times, want once per frame (%d)", renders, len(tests))
	}
	if updates != 5 {
		t.Errorf("update ran %d times, want 5", updates)
	}
}

func TestFrameClampsLongFrames(t *testing.T) {
	l := New(60, 100*time.Millisecond, func(float64) {}, nil)
	l.Start(epoch)

	if got := l.Frame(epoch.Add(5 * time.Second)); got != 6 {
		t.Errorf("a long frame ran %d steps, want 6", got)
	}
	if got := l.Frame(epoch.Add(4 * time.Second)); got != 0 {
		t.Errorf("time going backwards ran %d steps, want 0", got)
	}
}

func TestStepCountMatchesElapsedTime(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 20; trial++ {
		var steps int
		l := New(60, 100*time.Millisecond, func(float64) { steps++ }, nil)
		l.Start(epoch)

		now := epoch
		var total time.Duration
		for i := 0; i < 500; i++ {
			d := time.Duration(rng.Int63n(int64(l.MaxFrame) + 1))
			total += d
			now = now.Add(d)
			l.Frame(now)
		}
		if want := int(total / l.Step); steps != want {
			t.Errorf("trial %d: %d steps for %v, want %d", trial, steps, total, want)
		}
	}
}

func TestUpdateReceivesFixedDT(t *testing.T) {
	var got []float64
	l := New(50, 0, func(dt float64) { got = append(got, dt) }, nil)
	l.Start(epoch)
	l.Frame(epoch.Add(60 * time.Millisecond))

	if len(got) != 3 {
		t.Fatalf("ran %d steps, want 3", len(got))
	}
	for _, dt := range got {
		if dt != 0.02 {
			t.Errorf("dt = %v, want 0.02", dt)
		}
	}
	if a := l.Alpha(); a != 0 {
		t.Errorf("alpha = %v, want 0", a)
	}
}

func TestStartStopIdempotent(t *testing.T) {
	var updates int
	l := New(60, 0, func(float64) { updates++ }, nil)

	if l.Frame(epoch.Add(time.Second)) != 0 || updates != 0 {
		t.Error("Frame on a stopped loop must be a no-op")
	}

	l.Start(epoch)
	l.Start(epoch.Add(50 * time.Millisecond))
	if got := l.Frame(epoch.Add(50 * time.Millisecond)); got != 3 {
		t.Errorf("second Start reset the clock: %d steps, want 3", got)
	}

	l.Stop()
	l.Stop()
	if l.Running() {
		t.Error("expected stopped")
	}
	if l.Frame(epoch.Add(time.Second)) != 0 {
		t.Error("Frame after Stop must be a no-op")
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var steps atomic.Int64
	l := New(60, 0, func(float64) {
		if steps.Add(1) == 30 {
			cancel()
		}
	}, nil,
		WithClock(NewStepClock(epoch, time.Second/60)),
		WithScheduler(ImmediateScheduler{}),
	)

	err := l.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run returned %v, want context.Canceled", err)
	}
	if got := steps.Load(); got < 30 {
		t.Errorf("ran %d steps before cancel, want at least 30", got)
	}
	if l.Running() {
		t.Error("loop should be stopped after Run returns")
	}
}

func TestRunReturnsNilAfterStop(t *testing.T) {
	var l *Loop
	var steps int
	l = New(60, 0, func(float64) {
		steps++
		if steps == 10 {
			l.Stop()
		}
	}, nil,
		WithClock(NewStepClock(epoch, time.Second/60)),
		WithScheduler(ImmediateScheduler{}),
	)

	done := make(chan error, 1)
	go func() { done <- l.Run(context.Background()) }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
	if steps != 10 {
		t.Errorf("ran %d steps, want exactly 10", steps)
	}
}

func TestTickerScheduler(t *testing.T) {
	fired := make(chan struct{})
	TickerScheduler{}.Schedule(time.Millisecond, func() { close(fired) })
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("scheduled func never ran")
	}

	var ran atomic.Bool
	cancel := TickerScheduler{}.Schedule(50*time.Millisecond, func() { ran.Store(true) })
	cancel()
	time.Sleep(100 * time.Millisecond)
	if ran.Load() {
		t.Error("cancelled func ran")
	}
}

func TestManualClock(t *testing.T) {
	c := NewManualClock(epoch)
	c.Advance(time.Second)
	if !c.Now().Equal(epoch.Add(time.Second)) {
		t.Errorf("Now = %v", c.Now())
	}
}
