// Package sim runs the game headless: a scripted input tape drives the
// fixed-timestep loop on a stepped clock, so a seed and a tape always give
// the same run.
package sim

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vovakirdan/tui-brawler/internal/core"
	"github.com/vovakirdan/tui-brawler/internal/games/brawler"
	"github.com/vovakirdan/tui-brawler/internal/loop"
)

// ErrBadTape is returned for a tape that cannot be parsed.
var ErrBadTape = errors.New("sim: bad tape")

var actionNames = map[string]core.Action{
	"left":    core.ActionLeft,
	"right":   core.ActionRight,
	"jump":    core.ActionJump,
	"punch":   core.ActionPrimary,
	"kick":    core.ActionSecondary,
	"pause":   core.ActionPause,
	"confirm": core.ActionConfirm,
	"back":    core.ActionBack,
}

// Entry holds Actions down for Frames steps.
type Entry struct {
	Actions []core.Action
	Frames  int
}

// Tape is a sequence of entries, played in order.
type Tape []Entry

// ParseTape parses a comma separated tape such as
//
//	confirm, wait*40, confirm, right*90, right+jump*20
//
// Each entry is actions joined by '+' with an optional "*frames" count
// (default 1). "wait" and "idle" hold nothing. An action held by two
// consecutive entries stays down; put a wait between them to press again.
func ParseTape(s string) (Tape, error) {
	var tape Tape
	for _, raw := range strings.Split(s, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		names, count, hasCount := strings.Cut(raw, "*")
		e := Entry{Frames: 1}
		if hasCount {
			n, err := strconv.Atoi(strings.TrimSpace(count))
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("%w: frame count in %q", ErrBadTape, raw)
			}
			e.Frames = n
		}
		for _, name := range strings.Split(names, "+") {
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "wait" || name == "idle" {
				continue
			}
			a, ok := actionNames[name]
			if !ok {
				return nil, fmt.Errorf("%w: unknown action %q", ErrBadTape, name)
			}
			e.Actions = append(e.Actions, a)
		}
		tape = append(tape, e)
	}
	return tape, nil
}

// Frames returns the tape length in steps.
func (t Tape) Frames() int {
	n := 0
	for _, e := range t {
		n += e.Frames
	}
	return n
}

// Player turns a tape into one input frame per step. Once the tape ends
// every action is released.
type Player struct {
	tape  Tape
	entry int
	used  int
	state *core.InputState
}

// NewPlayer creates a player at the start of tape.
func NewPlayer(tape Tape) *Player {
	return &Player{tape: tape, state: core.NewInputState()}
}

// Next returns the input for the next step.
func (p *Player) Next() core.InputFrame {
	want := map[core.Action]bool{}
	if p.entry < len(p.tape) {
		for _, a := range p.tape[p.entry].Actions {
			want[a] = true
		}
		p.used++
		if p.used >= p.tape[p.entry].Frames {
			p.entry++
			p.used = 0
		}
	}

	for _, action := range actionNames {
		switch {
		case want[action] && !p.state.IsDown(action):
			p.state.Press(action)
		case !want[action] && p.state.IsDown(action):
			p.state.Release(action)
		}
	}

	f := p.state.Frame()
	p.state.EndStep()
	return f
}

// Result is the outcome of a headless run.
type Result struct {
	Steps    int
	State    core.GameState
	Snapshot brawler.Snapshot
	Hash     uint64
	Elapsed  time.Duration // simulated time
}

// Run resets game with cfg and plays steps fixed steps of tape through the
// loop. It returns early with ctx.Err() when ctx is done.
func Run(ctx context.Context, game *brawler.Game, cfg core.RuntimeConfig, tape Tape, steps int) (Result, error) {
	if cfg.TickRate <= 0 {
		cfg.TickRate = loop.DefaultTickRate
	}
	game.Reset(cfg)

	var res Result
	if steps <= 0 {
		return finish(game, res), nil
	}

	input := NewPlayer(tape)
	var l *loop.Loop
	update := func(float64) {
		if res.Steps >= steps {
			return
		}
		game.Step(input.Next())
		res.Steps++
		if res.Steps == steps {
			l.Stop()
		}
	}

	step := time.Second / time.Duration(cfg.TickRate)
	clock := loop.NewStepClock(time.Unix(0, 0), step)
	l = loop.New(cfg.TickRate, 0, update, nil,
		loop.WithClock(clock),
		loop.WithScheduler(loop.ImmediateScheduler{}),
	)

	err := l.Run(ctx)
	res.Elapsed = time.Duration(res.Steps) * step
	return finish(game, res), err
}

func finish(game *brawler.Game, res Result) Result {
	res.State = game.State()
	res.Snapshot = game.Snapshot()
	res.Hash = res.Snapshot.Hash()
	return res
}
