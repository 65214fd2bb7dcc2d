// Package brawler implements Gym Rush, a side-scrolling action platformer.
//
// The package is a pure simulation: it consumes an input snapshot per fixed
// step and draws into a core.Screen. It knows nothing about Bubble Tea,
// ebiten or SSH.
package brawler

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-brawler/internal/config"
	"github.com/vovakirdan/tui-brawler/internal/core"
	"github.com/vovakirdan/tui-brawler/internal/levels"
	"github.com/vovakirdan/tui-brawler/internal/registry"
)

// Screen is the top-level game state.
type Screen int

const (
	ScreenTitle Screen = iota
	ScreenLevelIntro
	ScreenBossIntro
	ScreenPlaying
	ScreenPaused
	ScreenLevelComplete
	ScreenGameOver
	ScreenVictory
)

// String returns the state name reported in core.GameState.
func (s Screen) String() string {
	switch s {
	case ScreenTitle:
		return "title"
	case ScreenLevelIntro:
		return "level_intro"
	case ScreenBossIntro:
		return "boss_intro"
	case ScreenPlaying:
		return "playing"
	case ScreenPaused:
		return "paused"
	case ScreenLevelComplete:
		return "level_complete"
	case ScreenGameOver:
		return "game_over"
	case ScreenVictory:
		return "victory"
	}
	return "unknown"
}

// Mode selects where a run starts.
type Mode int

const (
	ModeCampaign Mode = iota // every level in order
	ModeBoss                 // straight to the boss level
)

// Terminal cell size in world pixels.
const (
	CellW = 8
	CellH = 16
)

// hudRows is the number of screen rows the HUD takes.
const hudRows = 2

const (
	bossType         = "costi"
	graveY           = -200
	hitBurst         = 5
	enemyDeathBurst  = 10
	playerDeathBurst = 12
	pickupBurst      = 8
	bossDeathBursts  = 5
	bossDeathBurst   = 8
	shockwaveBurst   = 2
	shockwaveLift    = 4
	colorWhite       = "#FFFFFF"
	colorGold        = "#FFD700"
)

// Package-level settings applied by the CLI before games are created through
// the registry.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	levelProvider    levels.Provider
	startLevel       int
	defaultLogger    *log.Logger
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names fall back to
// normal.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = config.DifficultyNormal
	}
	difficultyPreset = p
}

// SetLevels replaces the embedded campaign for games created afterwards.
func SetLevels(p levels.Provider) {
	levelProvider = p
}

// SetStartLevel sets the campaign start index for games created afterwards.
func SetStartLevel(i int) {
	startLevel = i
}

// SetLogger sets the logger for games created afterwards.
func SetLogger(l *log.Logger) {
	defaultLogger = l
}

// FloatingText is a short rising label, shown when a power-up is picked up.
type FloatingText struct {
	Text  string
	X, Y  float64
	Timer int
	Color string
}

// Grave is the pause between a death and its resolution.
type Grave struct {
	X, Y  float64
	Timer int
}

// Option configures a Game.
type Option func(*Game)

// WithConfig uses cfg instead of loading configuration from disk.
func WithConfig(cfg config.GameConfig) Option {
	return func(g *Game) {
		g.cfg = cfg
		g.cfgSet = true
	}
}

// WithLevels sets the level provider.
func WithLevels(p levels.Provider) Option {
	return func(g *Game) { g.provider = p }
}

// WithLogger sets the logger used for skipped spawns and level loads.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// WithStartLevel sets the level index a run starts at.
func WithStartLevel(i int) Option {
	return func(g *Game) { g.startLevel = i }
}

// WithMode sets the game mode.
func WithMode(m Mode) Option {
	return func(g *Game) { g.mode = m }
}

// WithViewport fixes the camera viewport in world pixels. Without it the
// viewport follows the screen size.
func WithViewport(w, h float64) Option {
	return func(g *Game) { g.viewW, g.viewH = w, h }
}

// Game is the top-level state machine. It implements registry.Game.
type Game struct {
	mode       Mode
	startLevel int
	provider   levels.Provider
	logger     *log.Logger
	viewW      float64
	viewH      float64

	cfg     config.GameConfig
	cfgSet  bool
	physics Physics
	enemies EnemyTable
	items   ItemTable
	runtime core.RuntimeConfig
	rng     *rand.Rand
	ids     idAllocator

	screen      Screen
	screenTimer int
	tick        uint64

	level      *Level
	levelIndex int
	player     *Player
	camera     *Camera

	enemyList      []*Enemy
	boss           *Boss
	bossIntroShown bool
	projectiles    []*Projectile
	particles      []Particle
	collectibles   []*Collectible
	texts          []FloatingText
	grave          *Grave

	removalTicks int
	tileBuf      []Tile
}

// New creates a campaign game from the package-level settings.
func New() *Game {
	return NewWithOptions()
}

// NewBossRush creates a game that starts at the boss level.
func NewBossRush() *Game {
	return NewWithOptions(WithMode(ModeBoss))
}

// NewWithOptions creates a game. Options override the package-level
// settings.
func NewWithOptions(opts ...Option) *Game {
	g := &Game{
		provider:   levelProvider,
		startLevel: startLevel,
		logger:     defaultLogger,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	return g
}

func init() {
	registry.Register("brawler", func() registry.Game { return New() })
	registry.Register("brawler_boss", func() registry.Game { return NewBossRush() })
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeBoss {
		return "brawler_boss"
	}
	return "brawler"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeBoss {
		return "Gym Rush (Boss Rush)"
	}
	return "Gym Rush"
}

// Reset loads configuration and levels and returns to the title screen.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if !g.cfgSet {
		cfg, err := config.Load(configPath)
		if err != nil {
			g.logger.Warn("using default config", "err", err)
			cfg = config.DefaultConfig()
		}
		preset := difficultyPreset
		if preset == "" {
			preset = cfg.Difficulty.Preset
		}
		config.ApplyPreset(&cfg, preset)
		g.cfg = cfg
	}

	if g.provider == nil {
		set, err := levels.Embedded()
		if err != nil {
			g.logger.Error("loading embedded levels", "err", err)
		}
		g.provider = set
	}

	g.physics = PhysicsFromConfig(g.cfg.Physics)
	g.enemies = EnemyTable(g.cfg.Enemies)
	g.items = ItemTable(g.cfg.Items)
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.ids = idAllocator{}
	g.removalTicks = removalTicks(g.cfg.Rules.CollectRemovalMS, g.cfg.Loop.TickRate)

	g.player = NewPlayer(g.ids.Next(), 0, 0, g.cfg.Player, g.physics, NewPowerUpManager(g.cfg.PowerUps))
	vw, vh := g.viewport()
	g.camera = NewCamera(vw, vh, g.cfg.Camera.Smoothing)
	g.camera.Follow(g.player)

	g.tick = 0
	g.level = nil
	g.clearWorld()
	g.setScreen(ScreenTitle)
}

// Resize adapts the viewport to a new screen size.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW, g.runtime.ScreenH = w, h
	if g.camera != nil {
		g.camera.SetViewport(g.viewport())
	}
}

func (g *Game) viewport() (float64, float64) {
	if g.viewW > 0 && g.viewH > 0 {
		return g.viewW, g.viewH
	}
	if g.runtime.ScreenW > 0 && g.runtime.ScreenH > hudRows {
		return float64(g.runtime.ScreenW * CellW), float64((g.runtime.ScreenH - hudRows) * CellH)
	}
	return g.cfg.Camera.ViewportW, g.cfg.Camera.ViewportH
}

func (g *Game) setScreen(s Screen) {
	g.screen = s
	g.screenTimer = 0
}

func (g *Game) clearWorld() {
	g.enemyList = nil
	g.boss = nil
	g.bossIntroShown = false
	g.projectiles = nil
	g.particles = nil
	g.collectibles = nil
	g.texts = nil
	g.grave = nil
}

// firstLevel returns the index a run starts at for the current mode.
// A start level outside the campaign is clamped into it.
func (g *Game) firstLevel() int {
	if g.mode != ModeBoss {
		return max(0, min(g.startLevel, g.provider.Count()-1))
	}
	for i := g.provider.Count() - 1; i >= 0; i-- {
		d, err := g.provider.Level(i)
		if err == nil && d.Boss != nil {
			return i
		}
	}
	return max(0, g.provider.Count()-1)
}

// LoadLevel replaces the world with level index and shows its intro.
// It reports false, leaving the world untouched, if the level cannot be
// loaded.
func (g *Game) LoadLevel(index int) bool {
	d, err := g.provider.Level(index)
	if err != nil {
		g.logger.Error("loading level", "index", index, "err", err)
		return false
	}

	g.levelIndex = index
	g.level = NewLevel(index, d)

	g.player.PlaceAt(g.level.SpawnX, g.level.SpawnY)
	g.camera.SetLevelBounds(g.level.WidthPx(), g.level.HeightPx())
	g.camera.Follow(g.player)
	g.camera.SnapTo(g.player)

	g.clearWorld()

	for _, s := range d.Enemies {
		x, y := float64(s.X*TileSize), float64(s.Y*TileSize)
		e, err := SpawnEnemy(g.enemies, s.Type, x, y, g.ids.Next(), g.physics)
		if err != nil {
			g.logger.Warn("skipping spawn", "level", d.Name, "type", s.Type, "err", err)
			continue
		}
		g.enemyList = append(g.enemyList, e)
	}

	if d.Boss != nil {
		if d.Boss.Type == bossType {
			x, y := float64(d.Boss.X*TileSize), float64(d.Boss.Y*TileSize)
			g.boss = NewBoss(g.ids.Next(), x, y, g.cfg.Boss, g.physics, g.rng)
		} else {
			g.logger.Warn("skipping boss", "level", d.Name, "type", d.Boss.Type)
		}
	}

	for _, s := range d.Items {
		x, y := g.level.ItemPosition(s.X, s.Y)
		c, err := SpawnCollectible(g.items, s.Item, x, y, g.ids.Next(), g.cfg.PowerUps)
		if err != nil {
			g.logger.Warn("skipping item", "level", d.Name, "item", s.Item, "err", err)
			continue
		}
		g.collectibles = append(g.collectibles, c)
	}

	g.logger.Debug("level loaded", "index", index, "name", d.Name,
		"enemies", len(g.enemyList), "items", len(g.collectibles), "boss", g.boss != nil)
	g.setScreen(ScreenLevelIntro)
	return true
}

// ReloadLevels swaps the level provider and restarts the current level at
// its intro. It is used for hot reload.
func (g *Game) ReloadLevels(p levels.Provider) {
	g.provider = p
	if g.level == nil {
		return
	}
	index := min(g.levelIndex, p.Count()-1)
	if index < 0 {
		g.level = nil
		g.clearWorld()
		g.setScreen(ScreenTitle)
		return
	}
	g.LoadLevel(index)
}

func (g *Game) nextLevel() {
	next := g.levelIndex + 1
	if next >= g.provider.Count() {
		g.setScreen(ScreenVictory)
		return
	}
	g.LoadLevel(next)
}

func (g *Game) restart() {
	g.player.ResetRun()
	g.LoadLevel(g.firstLevel())
}

func confirmed(in core.InputFrame) bool {
	return in.WasPressed(core.ActionConfirm) || in.WasPressed(core.ActionJump)
}

// Step advances the simulation by one fixed tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	switch g.screen {
	case ScreenTitle:
		if confirmed(in) {
			g.LoadLevel(g.firstLevel())
		}

	case ScreenLevelIntro:
		g.screenTimer++
		if g.screenTimer > g.cfg.Rules.IntroConfirmDelay && confirmed(in) {
			g.setScreen(ScreenPlaying)
		}

	case ScreenBossIntro:
		g.screenTimer++
		if g.screenTimer > g.cfg.Rules.IntroConfirmDelay && confirmed(in) {
			if g.boss != nil {
				g.boss.Activate()
			}
			g.setScreen(ScreenPlaying)
		}

	case ScreenLevelComplete, ScreenGameOver, ScreenVictory:
		g.screenTimer++
		if g.screenTimer > g.cfg.Rules.OverlayConfirmDelay && confirmed(in) {
			if g.screen == ScreenLevelComplete {
				g.nextLevel()
			} else {
				g.restart()
			}
		}

	case ScreenPaused:
		if in.WasPressed(core.ActionPause) {
			g.screen = ScreenPlaying
		}

	case ScreenPlaying:
		if in.WasPressed(core.ActionPause) && g.grave == nil {
			g.screen = ScreenPaused
			break
		}
		g.updatePlaying(in)
	}

	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	var score int
	if g.player != nil {
		score = g.player.Score
	}
	return core.GameState{
		Score:    score,
		Level:    g.levelIndex,
		Screen:   g.screen.String(),
		GameOver: g.screen == ScreenGameOver || g.screen == ScreenVictory,
		Won:      g.screen == ScreenVictory,
		Paused:   g.screen == ScreenPaused,
	}
}

// Screen returns the top-level state.
func (g *Game) Screen() Screen { return g.screen }

// Player returns the player.
func (g *Game) Player() *Player { return g.player }

// Level returns the loaded level, or nil on the title screen.
func (g *Game) Level() *Level { return g.level }

// Enemies returns the live enemy list.
func (g *Game) Enemies() []*Enemy { return g.enemyList }

// Boss returns the level's boss, or nil.
func (g *Game) Boss() *Boss { return g.boss }

// Projectiles returns the live projectiles.
func (g *Game) Projectiles() []*Projectile { return g.projectiles }

// Particles returns the live particles.
func (g *Game) Particles() []Particle { return g.particles }

// Collectibles returns the collectibles not yet removed.
func (g *Game) Collectibles() []*Collectible { return g.collectibles }

// FloatingTexts returns the active floating labels.
func (g *Game) FloatingTexts() []FloatingText { return g.texts }

// Grave returns the pending death, or nil.
func (g *Game) Grave() *Grave { return g.grave }

// Camera returns the camera.
func (g *Game) Camera() *Camera { return g.camera }

// Config returns the effective configuration.
func (g *Game) Config() config.GameConfig { return g.cfg }

// LevelCount returns the number of levels available.
func (g *Game) LevelCount() int {
	if g.provider == nil {
		return 0
	}
	return g.provider.Count()
}

// Tick returns the number of steps taken since Reset.
func (g *Game) Tick() uint64 { return g.tick }
