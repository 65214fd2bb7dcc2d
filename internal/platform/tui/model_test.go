package tui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-brawler/internal/config"
	"github.com/vovakirdan/tui-brawler/internal/core"
	"github.com/vovakirdan/tui-brawler/internal/leaderboard"
	"github.com/vovakirdan/tui-brawler/internal/levels"
	"github.com/vovakirdan/tui-brawler/internal/loop"
)

var epoch = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

// stubGame ends its run after overAt steps with a fixed score.
type stubGame struct {
	steps    int
	overAt   int
	score    int
	resets   int
	last     core.InputFrame
	resized  [2]int
	reloaded int
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.steps = 0
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.last = in
	return core.StepResult{State: g.State()}
}

func (g *stubGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "STUB") }

func (g *stubGame) State() core.GameState {
	over := g.overAt > 0 && g.steps >= g.overAt
	return core.GameState{Score: g.score, GameOver: over}
}

func (g *stubGame) Resize(w, h int) { g.resized = [2]int{w, h} }

func (g *stubGame) ReloadLevels(levels.Provider) { g.reloaded++ }

func newTestModel(t *testing.T, g *stubGame, opts GameOptions) (GameModel, *loop.ManualClock) {
	t.Helper()
	clock := loop.NewManualClock(epoch)
	opts.Clock = clock
	m := NewGameModel(g, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1}, opts)
	m.Init()
	return m, clock
}

func send(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm, cmd
}

func tickAt(m GameModel, clock *loop.ManualClock, d time.Duration) TickMsg {
	clock.Advance(d)
	return TickMsg{Time: clock.Now(), Session: m.sess.id}
}

func TestTickRunsWholeSteps(t *testing.T) {
	g := &stubGame{}
	m, clock := newTestModel(t, g, GameOptions{})

	if g.resets != 1 {
		t.Fatalf("Init reset the game %d times, want 1", g.resets)
	}
	m, _ = send(t, m, tickAt(m, clock, 50*time.Millisecond))
	if g.steps != 3 {
		t.Errorf("steps after 50ms = %d, want 3", g.steps)
	}
}

func TestStaleTicksAreDropped(t *testing.T) {
	g := &stubGame{}
	m, clock := newTestModel(t, g, GameOptions{})

	clock.Advance(50 * time.Millisecond)
	m, cmd := send(t, m, TickMsg{Time: clock.Now(), Session: m.sess.id + 1000})
	if g.steps != 0 || cmd != nil {
		t.Errorf("a tick from another session ran %d steps", g.steps)
	}
}

func TestHeldKeyReachesGame(t *testing.T) {
	g := &stubGame{}
	m, clock := newTestModel(t, g, GameOptions{})

	m, _ = send(t, m, runeKey('d'))
	m, _ = send(t, m, tickAt(m, clock, 17*time.Millisecond))
	if !g.last.Down(core.ActionRight) || !g.last.WasPressed(core.ActionRight) {
		t.Fatal("first step should see right pressed and held")
	}

	m, _ = send(t, m, tickAt(m, clock, 17*time.Millisecond))
	if !g.last.Down(core.ActionRight) || g.last.WasPressed(core.ActionRight) {
		t.Error("second step should see right held without a new edge")
	}

	send(t, m, tickAt(m, clock, time.Second))
	if g.last.Down(core.ActionRight) {
		t.Error("right still held after the hold window")
	}
}

func TestNameEntryAndScores(t *testing.T) {
	board := leaderboard.New(nil, config.LeaderboardConfig{
		TopN:      5,
		CachePath: filepath.Join(t.TempDir(), "lb.yaml"),
	})
	g := &stubGame{overAt: 2, score: 500}
	m, clock := newTestModel(t, g, GameOptions{Board: board})

	m, _ = send(t, m, tickAt(m, clock, 34*time.Millisecond))
	if m.phase != phaseNameEntry {
		t.Fatalf("phase = %v, want name entry after game over", m.phase)
	}
	if !strings.Contains(m.View(), "Enter your name") {
		t.Error("name prompt not shown")
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("BOB")})
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should submit")
	}
	m, _ = send(t, m, cmd())
	if m.phase != phaseScores {
		t.Fatalf("phase = %v, want scores", m.phase)
	}
	if len(m.scores) != 1 || m.scores[0].Name != "BOB" || m.scores[0].Score != 500 {
		t.Errorf("scores = %+v", m.scores)
	}
	if !strings.Contains(m.View(), "BOB") {
		t.Error("scores table does not show the new entry")
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.phase != phasePlay {
		t.Fatalf("phase = %v, want play", m.phase)
	}
	m, _ = send(t, m, tickAt(m, clock, 17*time.Millisecond))
	if m.phase != phasePlay {
		t.Error("the same game over prompted twice")
	}
}

func TestNameLengthFollowsBoardConfig(t *testing.T) {
	board := leaderboard.New(nil, config.LeaderboardConfig{
		TopN:       5,
		CachePath:  filepath.Join(t.TempDir(), "lb.yaml"),
		MaxNameLen: 4,
	})
	g := &stubGame{overAt: 2, score: 300}
	m, clock := newTestModel(t, g, GameOptions{Board: board})
	if m.nameInput.CharLimit != 4 {
		t.Errorf("CharLimit = %d, want 4", m.nameInput.CharLimit)
	}

	m, _ = send(t, m, tickAt(m, clock, 34*time.Millisecond))
	m.nameInput.CharLimit = 0
	m.nameInput.SetValue("  ALEXANDER")
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should submit")
	}
	m, _ = send(t, m, cmd())
	if m.lastName != "ALEX" {
		t.Errorf("lastName = %q, want %q", m.lastName, "ALEX")
	}
	if len(m.scores) != 1 || m.scores[0].Name != "ALEX" {
		t.Errorf("scores = %+v", m.scores)
	}
}

func TestNoPromptWithoutBoard(t *testing.T) {
	g := &stubGame{overAt: 1, score: 500}
	m, clock := newTestModel(t, g, GameOptions{})

	m, _ = send(t, m, tickAt(m, clock, 17*time.Millisecond))
	if m.phase != phasePlay {
		t.Errorf("phase = %v, want play without a leaderboard", m.phase)
	}
}

func TestBackToMenu(t *testing.T) {
	g := &stubGame{overAt: 2}
	m, clock := newTestModel(t, g, GameOptions{Menu: true})

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("back during play should not leave the game")
	}

	m, _ = send(t, m, tickAt(m, clock, 34*time.Millisecond))
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("back on the game over screen should return to the menu")
	}
	if m.sess.loop.Running() {
		t.Error("loop still running after leaving the game")
	}
}

func TestQuitStopsLoop(t *testing.T) {
	m, _ := newTestModel(t, &stubGame{}, GameOptions{})
	m, cmd := send(t, m, runeKey('q'))
	if !m.IsQuitting() || cmd == nil {
		t.Fatal("q should quit")
	}
	if m.sess.loop.Running() {
		t.Error("loop still running after quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quit")
	}
}

func TestScreenshot(t *testing.T) {
	dir := t.TempDir()
	m, _ := newTestModel(t, &stubGame{}, GameOptions{ScreenshotDir: dir})

	send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	files, err := os.ReadDir(dir)
	if err != nil || len(files) != 1 {
		t.Fatalf("screenshot files = %v, %v", files, err)
	}
	data, _ := os.ReadFile(filepath.Join(dir, files[0].Name()))
	if !strings.HasPrefix(string(data), "STUB") {
		t.Errorf("screenshot content = %q", data)
	}
	if !strings.HasPrefix(files[0].Name(), "stub_20260101_120000") {
		t.Errorf("screenshot name = %s", files[0].Name())
	}
}

func TestClipboardText(t *testing.T) {
	g := &stubGame{overAt: 1, score: 1234}
	m, clock := newTestModel(t, g, GameOptions{})

	if !strings.HasPrefix(m.ClipboardText(), "STUB") {
		t.Error("during play the clipboard text is the frame")
	}
	m, _ = send(t, m, tickAt(m, clock, 17*time.Millisecond))
	if got := m.ClipboardText(); !strings.Contains(got, "1234 points") {
		t.Errorf("clipboard text after the run = %q", got)
	}
}

func TestResizeKeepsGame(t *testing.T) {
	g := &stubGame{}
	m, _ := newTestModel(t, g, GameOptions{})

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if g.resized != [2]int{100, 30} {
		t.Errorf("resized = %v", g.resized)
	}
	if g.resets != 1 {
		t.Error("a game that can resize should not be reset")
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d", m.screen.Width(), m.screen.Height())
	}
}

func TestLevelsChangedReloads(t *testing.T) {
	dir := t.TempDir()
	level := `name: Tiny
spawn: {x: 1, y: 1}
rows:
  - "...."
  - "####"
`
	if err := os.WriteFile(filepath.Join(dir, "01_tiny.yaml"), []byte(level), 0o644); err != nil {
		t.Fatal(err)
	}

	g := &stubGame{}
	m, _ := newTestModel(t, g, GameOptions{LevelsDir: dir})
	m.opts.Watcher = &levels.Watcher{Events: make(chan string)}

	m, cmd := send(t, m, levelsChangedMsg{path: filepath.Join(dir, "01_tiny.yaml")})
	if g.reloaded != 1 {
		t.Errorf("reloaded = %d, want 1", g.reloaded)
	}
	if cmd == nil {
		t.Error("should keep waiting for level changes")
	}
	if !strings.Contains(m.status, "reloaded 1 levels") {
		t.Errorf("status = %q", m.status)
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawTextColored(0, 0, "HELLO", core.ColorGold)
	s.DrawText(0, 1, "WORLD")
	out := RenderScreen(s)
	if !strings.Contains(out, "HELLO") || !strings.Contains(out, "WORLD") {
		t.Errorf("RenderScreen lost text: %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("want one line break, got %q", out)
	}
}

func TestPainterFollowsRendererProfile(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColored(0, 0, "$", core.ColorGold)
	s.DrawTextColored(1, 0, "##", core.ColorBrown)
	s.DrawText(0, 1, "HP")

	// A renderer on a plain buffer has no color support.
	p := NewPainter(lipgloss.NewRenderer(&bytes.Buffer{}))
	out := p.Render(s)
	if strings.Contains(out, "\x1b[") {
		t.Errorf("escape codes for a colorless client: %q", out)
	}
	if want := "$##   \nHP    "; out != want {
		t.Errorf("Render = %q, want %q", out, want)
	}
}

func TestRemoteSessionOptions(t *testing.T) {
	r := lipgloss.NewRenderer(&bytes.Buffer{})
	m := NewSessionModel(nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10}, "guest", nil, r)
	if m.gameOpts.Clipboard {
		t.Error("remote sessions must not use the clipboard")
	}
	if m.gameOpts.Renderer != r || !m.gameOpts.Menu {
		t.Errorf("session options = %+v", m.gameOpts)
	}
}
