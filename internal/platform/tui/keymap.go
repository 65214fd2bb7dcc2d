package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-brawler/internal/core"
)

// Terminals only report key presses (plus autorepeat), so a held key is
// emulated: it stays down until no repeat arrived for a while.
const (
	DefaultHoldInitial = 500 * time.Millisecond // covers the autorepeat delay
	DefaultHoldRepeat  = 120 * time.Millisecond
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "a", "left", "h":
		return core.ActionLeft, false
	case "d", "right", "l":
		return core.ActionRight, false
	case " ", "w", "up", "k":
		return core.ActionJump, false
	case "x", "z", "j":
		return core.ActionPrimary, false
	case "c", "v":
		return core.ActionSecondary, false
	case "p":
		return core.ActionPause, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	}
	return core.ActionNone, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}

// HoldTracker turns a stream of key presses into held/released actions on
// top of a core.InputState.
type HoldTracker struct {
	state   *core.InputState
	expires map[core.Action]time.Time
	initial time.Duration
	repeat  time.Duration
}

// NewHoldTracker creates a tracker that feeds state. Non-positive durations
// take the defaults.
func NewHoldTracker(state *core.InputState, initial, repeat time.Duration) *HoldTracker {
	if initial <= 0 {
		initial = DefaultHoldInitial
	}
	if repeat <= 0 {
		repeat = DefaultHoldRepeat
	}
	return &HoldTracker{
		state:   state,
		expires: make(map[core.Action]time.Time),
		initial: initial,
		repeat:  repeat,
	}
}

// Key records a press of a at now. A first press holds for the initial
// window, repeats extend the hold by the repeat window. Pressing one
// direction releases the other. Every key event for a tap action yields a
// new pressed edge, so quick double taps are not swallowed by the hold.
func (h *HoldTracker) Key(a core.Action, now time.Time) {
	if a == core.ActionNone {
		return
	}
	switch a {
	case core.ActionLeft:
		h.release(core.ActionRight)
	case core.ActionRight:
		h.release(core.ActionLeft)
	}

	window := h.initial
	if h.state.IsDown(a) {
		window = h.repeat
	}
	if tapAction(a) {
		h.state.Retrigger(a)
	} else {
		h.state.Press(a)
	}
	if exp := now.Add(window); exp.After(h.expires[a]) {
		h.expires[a] = exp
	}
}

// tapAction reports whether a fires on its pressed edge rather than while held.
func tapAction(a core.Action) bool {
	switch a {
	case core.ActionJump, core.ActionPrimary, core.ActionSecondary, core.ActionConfirm:
		return true
	}
	return false
}

// Expire releases every action whose hold window ended before now.
func (h *HoldTracker) Expire(now time.Time) {
	for a, exp := range h.expires {
		if now.After(exp) {
			h.release(a)
		}
	}
}

// ReleaseAll drops every held action.
func (h *HoldTracker) ReleaseAll() {
	for a := range h.expires {
		h.release(a)
	}
}

func (h *HoldTracker) release(a core.Action) {
	delete(h.expires, a)
	h.state.Release(a)
}
