// Package tui is the Bubble Tea front end: the game model, the mode menu,
// the high score table and the Wish SSH server. It maps keys to actions and
// drives the shared fixed-timestep loop from Bubble Tea ticks.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a loop frame. Session identifies the game
// model that scheduled it; ticks left over from a closed game are dropped.
type TickMsg struct {
	Time    time.Time
	Session uint64
}

var sessionIDs atomic.Uint64

func nextSessionID() uint64 {
	return sessionIDs.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, session uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Session: session}
	})
}
