package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-brawler/internal/core"
	"github.com/vovakirdan/tui-brawler/internal/leaderboard"
	"github.com/vovakirdan/tui-brawler/internal/levels"
	"github.com/vovakirdan/tui-brawler/internal/loop"
	"github.com/vovakirdan/tui-brawler/internal/registry"
)

const (
	statusDuration = 2 * time.Second
	submitTimeout  = 5 * time.Second
)

// GameOptions configures a GameModel. The zero value plays without a
// leaderboard, hot reload or clipboard.
type GameOptions struct {
	Board         *leaderboard.Board
	Logger        *log.Logger
	Watcher       *levels.Watcher
	LevelsDir     string // reloaded on Watcher events; defaults to the changed file's directory
	Clipboard     bool   // ctrl+y copies to the local clipboard
	ScreenshotDir string // defaults to ~/.brawler/screenshots
	Menu          bool   // b/esc on the pause and game over screens returns to the menu
	Clock         loop.Clock
	MaxFrame      time.Duration
	HoldInitial   time.Duration
	HoldRepeat    time.Duration
	Renderer      *lipgloss.Renderer // per-client renderer for SSH sessions
}

// resizer is implemented by games that keep their state across terminal
// resizes.
type resizer interface {
	Resize(w, h int)
}

// levelReloader is implemented by games that accept a new level set.
type levelReloader interface {
	ReloadLevels(levels.Provider)
}

type phase int

const (
	phasePlay phase = iota
	phaseNameEntry
	phaseScores
)

// session is the state shared by every copy of a GameModel value. The loop
// calls back into it, so it has to live behind a pointer.
type session struct {
	id    uint64
	game  registry.Game
	input *core.InputState
	holds *HoldTracker
	loop  *loop.Loop
	state core.GameState
	steps uint64
}

func (s *session) update(float64) {
	res := s.game.Step(s.input.Frame())
	s.input.EndStep()
	s.state = res.State
	s.steps++
}

type levelsChangedMsg struct{ path string }

type scoresMsg struct {
	entries []leaderboard.Entry
	name    string
	score   int
}

// GameModel runs one game mode inside Bubble Tea.
type GameModel struct {
	sess      *session
	screen    *core.Screen
	painter   *Painter
	config    core.RuntimeConfig
	opts      GameOptions
	keyMapper *KeyMapper

	phase      phase
	nameInput  textinput.Model
	submitting bool
	prompted   bool
	scores     []leaderboard.Entry
	lastName   string
	lastScore  int

	status      string
	statusUntil time.Time

	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for game. A zero seed is replaced with the
// current time.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = loop.DefaultTickRate
	}
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		def := core.DefaultConfig()
		cfg.ScreenW, cfg.ScreenH = def.ScreenW, def.ScreenH
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Clock == nil {
		opts.Clock = loop.SystemClock{}
	}

	input := core.NewInputState()
	sess := &session{
		id:    nextSessionID(),
		game:  game,
		input: input,
		holds: NewHoldTracker(input, opts.HoldInitial, opts.HoldRepeat),
	}
	sess.loop = loop.New(cfg.TickRate, opts.MaxFrame, sess.update, nil)

	ti := textinput.New()
	ti.Placeholder = leaderboard.AnonymousName
	ti.CharLimit = 12
	if opts.Board != nil {
		ti.CharLimit = opts.Board.MaxNameLen()
	}
	ti.Width = 14
	ti.Prompt = "> "

	return GameModel{
		sess:      sess,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		painter:   NewPainter(opts.Renderer),
		config:    cfg,
		opts:      opts,
		keyMapper: NewKeyMapper(),
		nameInput: ti,
	}
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.sess.game.Reset(m.config)
	m.sess.state = m.sess.game.State()
	m.sess.loop.Start(m.opts.Clock.Now())

	cmds := []tea.Cmd{m.tick()}
	if m.opts.Watcher != nil {
		cmds = append(cmds, waitForLevelChange(m.opts.Watcher))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Session != m.sess.id {
			return m, nil
		}
		return m.handleTick(msg.Time)

	case levelsChangedMsg:
		return m.handleLevelsChanged(msg)

	case scoresMsg:
		m.submitting = false
		m.scores = msg.entries
		m.lastName = msg.name
		m.lastScore = msg.score
		m.phase = phaseScores
		return m, nil
	}

	if m.phase == phaseNameEntry {
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "ctrl+y":
		m.copyToClipboard()
		return m, nil
	}

	switch m.phase {
	case phaseNameEntry:
		switch msg.Type {
		case tea.KeyEnter:
			if m.submitting {
				return m, nil
			}
			m.submitting = true
			m.nameInput.Blur()
			return m, m.submitScore(m.nameInput.Value(), m.sess.state.Score)
		case tea.KeyEsc:
			m.nameInput.Blur()
			m.phase = phasePlay
			return m, nil
		}
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd

	case phaseScores:
		switch msg.String() {
		case "enter", "esc", " ", "b":
			m.phase = phasePlay
		case "q":
			return m.quit()
		}
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		return m.quit()
	}
	st := m.sess.state
	if action == core.ActionBack && m.opts.Menu && (st.GameOver || st.Paused) {
		m.backToMenu = true
		m.sess.loop.Stop()
		return m, tea.Quit
	}
	m.sess.holds.Key(action, m.opts.Clock.Now())
	return m, nil
}

func (m GameModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.sess.loop.Stop()
	return m, tea.Quit
}

// handleTick runs one loop frame and opens the name prompt when a run ends.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.sess.holds.Expire(now)
	m.sess.loop.Frame(now)

	st := m.sess.state
	if !st.GameOver {
		m.prompted = false
	}
	if st.GameOver && !m.prompted && m.phase == phasePlay {
		m.prompted = true
		if m.opts.Board != nil && st.Score > 0 {
			m.phase = phaseNameEntry
			m.sess.holds.ReleaseAll()
			m.nameInput.SetValue(m.lastName)
			m.nameInput.CursorEnd()
			focus := m.nameInput.Focus()
			return m, tea.Batch(m.tick(), focus)
		}
	}
	return m, m.tick()
}

func (m GameModel) tick() tea.Cmd {
	return tickCmd(m.config.TickRate, m.sess.id)
}

func (m GameModel) submitScore(name string, score int) tea.Cmd {
	board := m.opts.Board
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		entries, _ := board.Submit(ctx, name, score)
		return scoresMsg{
			entries: entries,
			name:    board.Normalize(name),
			score:   score,
		}
	}
}

func waitForLevelChange(w *levels.Watcher) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-w.Events
		if !ok {
			return nil
		}
		return levelsChangedMsg{path: p}
	}
}

// handleLevelsChanged reloads the level directory and hands the new set to
// the game.
func (m GameModel) handleLevelsChanged(msg levelsChangedMsg) (tea.Model, tea.Cmd) {
	dir := m.opts.LevelsDir
	if dir == "" {
		dir = filepath.Dir(msg.path)
	}

	set, err := levels.NewLoader(dir).LoadAll()
	switch {
	case err != nil:
		m.opts.Logger.Warn("level reload failed", "dir", dir, "err", err)
		m.setStatus("level reload failed")
	case len(set) == 0:
		m.opts.Logger.Warn("level reload found no levels", "dir", dir)
	default:
		if r, ok := m.sess.game.(levelReloader); ok {
			r.ReloadLevels(set)
			m.opts.Logger.Info("levels reloaded", "dir", dir, "changed", msg.path, "count", len(set))
			m.setStatus(fmt.Sprintf("reloaded %d levels", len(set)))
		}
	}
	return m, waitForLevelChange(m.opts.Watcher)
}

// resize processes window resize events.
func (m *GameModel) resize(w, h int) {
	m.config.ScreenW = w
	m.config.ScreenH = h
	m.screen.Resize(w, h)

	if r, ok := m.sess.game.(resizer); ok {
		r.Resize(w, h)
		return
	}
	if !m.sess.state.GameOver {
		m.sess.game.Reset(m.config)
	}
}

func (m *GameModel) setStatus(s string) {
	m.status = s
	m.statusUntil = m.opts.Clock.Now().Add(statusDuration)
}

// saveScreenshot saves the current screen to a text file.
func (m *GameModel) saveScreenshot() {
	m.sess.game.Render(m.screen)

	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.opts.Logger.Warn("screenshot: no home directory", "err", err)
			return
		}
		dir = filepath.Join(home, ".brawler", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("screenshot: cannot create directory", "dir", dir, "err", err)
		return
	}

	timestamp := m.opts.Clock.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.sess.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("screenshot: write failed", "path", path, "err", err)
		m.setStatus("screenshot failed")
		return
	}
	m.setStatus("saved " + filepath.Base(path))
}

// copyToClipboard copies the score line after a run, the current frame
// otherwise.
func (m *GameModel) copyToClipboard() {
	if !m.opts.Clipboard {
		return
	}
	text := m.ClipboardText()
	if err := clipboard.WriteAll(text); err != nil {
		m.opts.Logger.Warn("clipboard unavailable", "err", err)
		m.setStatus("clipboard unavailable")
		return
	}
	m.setStatus("copied to clipboard")
}

// ClipboardText is what ctrl+y copies.
func (m GameModel) ClipboardText() string {
	st := m.sess.state
	if st.GameOver {
		outcome := "game over"
		if st.Won {
			outcome = "victory"
		}
		return fmt.Sprintf("%s: %d points (%s, level %d)", m.sess.game.Title(), st.Score, outcome, st.Level+1)
	}
	m.sess.game.Render(m.screen)
	return m.screen.String()
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.screen.Clear()
	m.sess.game.Render(m.screen)
	if m.status != "" && m.opts.Clock.Now().Before(m.statusUntil) {
		m.screen.DrawTextColored(1, m.screen.Height()-1, " "+m.status+" ", core.ColorBrightYellow)
	}

	switch m.phase {
	case phaseNameEntry:
		return m.overlay(m.nameEntryView())
	case phaseScores:
		return m.overlay(m.scoresView())
	}
	return m.painter.Render(m.screen)
}

func (m GameModel) overlay(panel string) string {
	return lipgloss.Place(m.screen.Width(), m.screen.Height(), lipgloss.Center, lipgloss.Center, panel)
}

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("220")).
			Padding(1, 3)
	panelTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	panelHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (m GameModel) nameEntryView() string {
	title := "GAME OVER"
	if m.sess.state.Won {
		title = "VICTORY!"
	}
	body := lipgloss.JoinVertical(lipgloss.Center,
		panelTitleStyle.Render(title),
		"",
		fmt.Sprintf("Score: %d", m.sess.state.Score),
		"",
		"Enter your name:",
		m.nameInput.View(),
		"",
		panelHintStyle.Render("enter: submit  esc: skip"),
	)
	return panelStyle.Render(body)
}

func (m GameModel) scoresView() string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		panelTitleStyle.Render("HIGH SCORES"),
		"",
		renderEntries(m.scores, m.lastName, m.lastScore),
		"",
		panelHintStyle.Render("enter: continue"),
	)
	return panelStyle.Render(body)
}

// State returns the last game state seen by the model.
func (m GameModel) State() core.GameState {
	return m.sess.state
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// GameResult is how a RunGame session ended.
type GameResult struct {
	BackToMenu bool
	State      core.GameState
}

// RunGame starts a Bubble Tea program for game.
func RunGame(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) (GameResult, error) {
	model := NewGameModel(game, cfg, opts)

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return GameResult{}, err
	}

	m, ok := final.(GameModel)
	if !ok {
		return GameResult{}, nil
	}
	return GameResult{BackToMenu: m.BackToMenu(), State: m.State()}, nil
}
