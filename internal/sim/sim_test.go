package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/tui-brawler/internal/config"
	"github.com/vovakirdan/tui-brawler/internal/core"
	"github.com/vovakirdan/tui-brawler/internal/games/brawler"
)

func newGame() *brawler.Game {
	return brawler.NewWithOptions(brawler.WithConfig(config.DefaultConfig()))
}

func runtimeConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
}

func TestParseTape(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		entries int
		frames  int
		wantErr bool
	}{
		{"empty", "", 0, 0, false},
		{"single", "confirm", 1, 1, false},
		{"counts", "confirm, wait*30, right*90", 3, 121, false},
		{"combo", "right+jump*20", 1, 20, false},
		{"case and spaces", " Right + JUMP * 2 ", 1, 2, false},
		{"unknown action", "fly*3", 0, 0, true},
		{"bad count", "right*x", 0, 0, true},
		{"zero count", "right*0", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tape, err := ParseTape(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrBadTape) {
					t.Fatalf("err = %v, want ErrBadTape", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if len(tape) != tt.entries || tape.Frames() != tt.frames {
				t.Errorf("got %d entries / %d frames, want %d / %d",
					len(tape), tape.Frames(), tt.entries, tt.frames)
			}
		})
	}
}

func TestPlayerEdges(t *testing.T) {
	tape, err := ParseTape("right*2, wait, right, jump")
	if err != nil {
		t.Fatal(err)
	}
	p := NewPlayer(tape)

	f := p.Next()
	if !f.Down(core.ActionRight) || !f.WasPressed(core.ActionRight) {
		t.Fatal("step 1: right should be pressed")
	}
	f = p.Next()
	if !f.Down(core.ActionRight) || f.WasPressed(core.ActionRight) {
		t.Error("step 2: right should be held without an edge")
	}
	f = p.Next()
	if f.Down(core.ActionRight) || !f.WasReleased(core.ActionRight) {
		t.Error("step 3: wait should release right")
	}
	f = p.Next()
	if !f.WasPressed(core.ActionRight) {
		t.Error("step 4: right should be pressed again after a wait")
	}
	f = p.Next()
	if !f.WasPressed(core.ActionJump) || f.Down(core.ActionRight) {
		t.Error("step 5: jump replaces right")
	}
	f = p.Next()
	if f.Down(core.ActionJump) || f.Down(core.ActionRight) {
		t.Error("after the tape every action is released")
	}
}

func TestRunStepsExactly(t *testing.T) {
	res, err := Run(context.Background(), newGame(), runtimeConfig(1), nil, 120)
	if err != nil {
		t.Fatal(err)
	}
	if res.Steps != 120 || res.Snapshot.Tick != 120 {
		t.Errorf("steps = %d, tick = %d, want 120", res.Steps, res.Snapshot.Tick)
	}
	if res.Elapsed.Seconds() < 1.99 || res.Elapsed.Seconds() > 2.01 {
		t.Errorf("elapsed = %v, want 2s", res.Elapsed)
	}
	if res.State.Screen != "title" {
		t.Errorf("screen = %q, want title without input", res.State.Screen)
	}
}

func TestRunReachesPlaying(t *testing.T) {
	tape, err := ParseTape("confirm, wait*30, confirm, right*60")
	if err != nil {
		t.Fatal(err)
	}
	res, err := Run(context.Background(), newGame(), runtimeConfig(7), tape, tape.Frames())
	if err != nil {
		t.Fatal(err)
	}
	if res.State.Screen != "playing" {
		t.Fatalf("screen = %q, want playing", res.State.Screen)
	}
	if res.Snapshot.PlayerState == "" {
		t.Error("snapshot has no player")
	}
}

func TestRunIsDeterministic(t *testing.T) {
	tape, err := ParseTape("confirm, wait*30, confirm, right*120, right+jump*10, punch, wait*5, kick, right*200")
	if err != nil {
		t.Fatal(err)
	}
	a, err := Run(context.Background(), newGame(), runtimeConfig(99), tape, 600)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Run(context.Background(), newGame(), runtimeConfig(99), tape, 600)
	if err != nil {
		t.Fatal(err)
	}
	if a.Hash != b.Hash {
		t.Errorf("same seed and tape gave hashes %d and %d", a.Hash, b.Hash)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := Run(ctx, newGame(), runtimeConfig(1), nil, 1_000_000)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if res.Steps >= 1_000_000 {
		t.Error("a cancelled run should stop early")
	}
}

func TestRunZeroSteps(t *testing.T) {
	res, err := Run(context.Background(), newGame(), runtimeConfig(1), nil, 0)
	if err != nil || res.Steps != 0 {
		t.Errorf("Run(0) = %d steps, %v", res.Steps, err)
	}
}
