// Package window is the desktop front end. It draws the world in pixels with
// ebiten and feeds the game real key down and up events, so holds need no
// emulation.
package window

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/tui-brawler/internal/core"
	"github.com/vovakirdan/tui-brawler/internal/games/brawler"
	"github.com/vovakirdan/tui-brawler/internal/loop"
)

// bindings maps every action to the keys that hold it.
var bindings = map[core.Action][]ebiten.Key{
	core.ActionLeft:      {ebiten.KeyArrowLeft, ebiten.KeyA},
	core.ActionRight:     {ebiten.KeyArrowRight, ebiten.KeyD},
	core.ActionJump:      {ebiten.KeySpace, ebiten.KeyArrowUp, ebiten.KeyW},
	core.ActionPrimary:   {ebiten.KeyX, ebiten.KeyZ, ebiten.KeyJ},
	core.ActionSecondary: {ebiten.KeyC, ebiten.KeyK},
	core.ActionPause:     {ebiten.KeyP},
	core.ActionConfirm:   {ebiten.KeyEnter},
	core.ActionBack:      {ebiten.KeyBackspace},
	core.ActionQuit:      {ebiten.KeyEscape},
}

var tileColors = map[brawler.TileID]color.RGBA{
	brawler.TileGround:    {R: 139, G: 90, B: 43, A: 255},
	brawler.TileGroundTop: {R: 76, G: 175, B: 80, A: 255},
	brawler.TilePlatform:  {R: 222, G: 184, B: 135, A: 255},
	brawler.TileBrick:     {R: 178, G: 34, B: 34, A: 255},
	brawler.TileStone:     {R: 128, G: 128, B: 128, A: 255},
	brawler.TileSpike:     {R: 230, G: 230, B: 230, A: 255},
	brawler.TileBreakable: {R: 205, G: 133, B: 63, A: 255},
}

var themeSky = map[string]color.RGBA{
	"kitchen":  {R: 255, G: 248, B: 231, A: 255},
	"fastfood": {R: 255, G: 224, B: 178, A: 255},
	"factory":  {R: 252, G: 228, B: 236, A: 255},
	"gym":      {R: 207, G: 216, B: 220, A: 255},
}

var (
	defaultSky   = color.RGBA{R: 135, G: 206, B: 235, A: 255}
	white        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	gold         = color.RGBA{R: 255, G: 215, B: 0, A: 255}
	red          = color.RGBA{R: 255, G: 68, B: 68, A: 255}
	green        = color.RGBA{R: 68, G: 255, B: 68, A: 255}
	gray         = color.RGBA{R: 138, G: 138, B: 138, A: 255}
	playerColor  = color.RGBA{R: 33, G: 150, B: 243, A: 255}
	stunColor    = color.RGBA{R: 123, G: 79, B: 191, A: 255}
	hudBack      = color.RGBA{R: 0, G: 0, B: 0, A: 160}
	overlayBack  = color.RGBA{R: 0, G: 0, B: 0, A: 200}
	attackColor  = color.RGBA{R: 255, G: 255, B: 255, A: 120}
	lineHeight   = 16.0
	hudHeight    = 40.0
	overlayWidth = 420.0
)

// Options configures a Window.
type Options struct {
	Scale  int
	Logger *log.Logger
	Clock  loop.Clock
}

// Window adapts a brawler.Game to ebiten.Game.
type Window struct {
	game   *brawler.Game
	input  *core.InputState
	loop   *loop.Loop
	clock  loop.Clock
	logger *log.Logger
	face   text.Face
	width  int
	height int
	scale  int
}

// New creates a window for game. The game is reset with cfg.
func New(game *brawler.Game, cfg core.RuntimeConfig, opts Options) *Window {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Clock == nil {
		opts.Clock = loop.SystemClock{}
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = loop.DefaultTickRate
	}

	w := &Window{
		game:   game,
		input:  core.NewInputState(),
		clock:  opts.Clock,
		logger: opts.Logger,
		face:   text.NewGoXFace(basicfont.Face7x13),
		scale:  opts.Scale,
	}
	game.Reset(cfg)
	camCfg := game.Config().Camera
	w.width, w.height = int(camCfg.ViewportW), int(camCfg.ViewportH)

	w.loop = loop.New(cfg.TickRate, loop.DefaultMaxFrame, w.step, func() {}, loop.WithClock(opts.Clock))
	w.loop.Start(opts.Clock.Now())
	return w
}

func (w *Window) step(float64) {
	w.game.Step(w.input.Frame())
	w.input.EndStep()
}

// Size returns the window size in screen pixels.
func (w *Window) Size() (int, int) {
	return w.width * w.scale, w.height * w.scale
}

// Update polls the keyboard and runs every fixed step that is due.
func (w *Window) Update() error {
	syncInput(w.input, ebiten.IsKeyPressed)
	if w.input.IsDown(core.ActionQuit) {
		w.loop.Stop()
		return ebiten.Termination
	}
	w.loop.Frame(w.clock.Now())
	return nil
}

// syncInput presses every action with a bound key down and releases the
// rest.
func syncInput(state *core.InputState, pressed func(ebiten.Key) bool) {
	for action, keys := range bindings {
		down := false
		for _, k := range keys {
			if pressed(k) {
				down = true
				break
			}
		}
		switch {
		case down && !state.IsDown(action):
			state.Press(action)
		case !down && state.IsDown(action):
			state.Release(action)
		}
	}
}

// Layout keeps the logical screen at the camera viewport.
func (w *Window) Layout(int, int) (int, int) {
	return w.width, w.height
}

// Draw renders the current frame.
func (w *Window) Draw(screen *ebiten.Image) {
	g := w.game
	lvl := g.Level()
	if g.Screen() == brawler.ScreenTitle || lvl == nil {
		screen.Fill(color.Black)
		w.drawTitle(screen)
		return
	}

	sky, ok := themeSky[lvl.Theme]
	if !ok {
		sky = defaultSky
	}
	screen.Fill(sky)

	w.drawWorld(screen)
	w.drawHUD(screen)
	w.drawScreenOverlay(screen)
}

func (w *Window) drawTitle(screen *ebiten.Image) {
	cy := float64(w.height)/2 - 3*lineHeight
	w.centered(screen, "G Y M   R U S H", cy, gold)
	w.centered(screen, "Fight your way through junk food to the gym", cy+2*lineHeight, white)
	w.centered(screen, "Press SPACE or ENTER to start", cy+4*lineHeight, white)
	w.centered(screen, "Arrows move  SPACE jump  X punch  C kick  P pause  ESC quit", cy+6*lineHeight, gray)
}

func (w *Window) drawWorld(screen *ebiten.Image) {
	g := w.game
	cam := g.Camera()
	ox, oy := cam.Offset()
	tm := g.Level().Tiles

	c0 := int(math.Floor(ox / brawler.TileSize))
	r0 := int(math.Floor(oy / brawler.TileSize))
	c1 := int(math.Ceil((ox + float64(w.width)) / brawler.TileSize))
	r1 := int(math.Ceil((oy + float64(w.height)) / brawler.TileSize))
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			t, ok := tm.TileAt(col, row)
			if !ok || t.ID == brawler.TileAir {
				continue
			}
			w.fill(screen, t.Rect(), tileColors[t.ID])
		}
	}

	for _, cp := range g.Level().Checkpoints {
		c := gray
		if cp.Activated {
			c = gold
		}
		w.fill(screen, core.Rect{X: cp.X + 14, Y: cp.Y - 32, W: 4, H: 64}, c)
		w.fill(screen, core.Rect{X: cp.X + 18, Y: cp.Y - 32, W: 14, H: 10}, c)
	}
	if ex := g.Level().Exit; ex != nil {
		r := core.Rect{X: ex.X, Y: ex.Y - 48, W: brawler.TileSize, H: 80}
		w.fill(screen, r, green)
		w.label(screen, "EXIT", r.X, r.Y-lineHeight, green)
	}

	for _, c := range g.Collectibles() {
		if c.Collected || !cam.IsVisible(c.Bounds(), 0) {
			continue
		}
		r := c.Bounds()
		r.Y += c.BobOffset()
		w.fill(screen, r, hexColor(c.Color))
	}

	for _, e := range g.Enemies() {
		if e.Dead || !cam.IsVisible(e.Bounds(), 0) || blinking(e.FlashTimer) {
			continue
		}
		r := e.Bounds()
		r.X += e.Shake
		w.fill(screen, r, hexColor(e.Color()))
		if e.WindupTimer > 0 {
			w.label(screen, "!", e.CenterX(), e.Y-lineHeight, red)
		}
	}

	if b := g.Boss(); b != nil && !blinking(b.FlashTimer) {
		c := gold
		if b.Phase == 3 {
			c = red
		}
		w.fill(screen, b.Bounds(), c)
		if b.DialogueTimer > 0 && b.Dialogue != "" {
			w.label(screen, b.Dialogue, b.CenterX()-w.measure(b.Dialogue)/2, b.Y-lineHeight, white)
		}
	}

	for _, pr := range g.Projectiles() {
		w.fill(screen, pr.Bounds(), hexColor(pr.Color))
	}

	if gr := g.Grave(); gr != nil {
		w.fill(screen, core.Rect{X: gr.X - 2, Y: gr.Y - 24, W: 4, H: 24}, gray)
		w.fill(screen, core.Rect{X: gr.X - 8, Y: gr.Y - 18, W: 16, H: 4}, gray)
	} else if p := g.Player(); !blinking(p.InvincibilityTimer) {
		c := playerColor
		switch {
		case p.StunTimer > 0:
			c = stunColor
		case p.State == brawler.PlayerHurt:
			c = red
		case p.PowerUps.Has(brawler.FeatureInvincible):
			c = gold
		}
		w.fill(screen, p.Bounds(), c)
		if hb, ok := p.AttackHitbox(); ok {
			w.fill(screen, hb, attackColor)
		}
	}

	for _, pa := range g.Particles() {
		c := hexColor(pa.Color)
		fade := color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(255 * core.ClampF(pa.Alpha(), 0, 1))}
		w.fill(screen, pa.Bounds(), fade)
	}

	for _, t := range g.FloatingTexts() {
		w.label(screen, t.Text, t.X-w.measure(t.Text)/2, t.Y, hexColor(t.Color))
	}
}

func (w *Window) drawHUD(screen *ebiten.Image) {
	h := w.game.HUD()
	vector.FillRect(screen, 0, 0, float32(w.width), float32(hudHeight), hudBack, false)

	const barW, barH = 160.0, 12.0
	frac := 0.0
	if h.MaxHealth > 0 {
		frac = core.ClampF(h.Health/h.MaxHealth, 0, 1)
	}
	hc := green
	if frac <= 0.3 {
		hc = red
	}
	vector.FillRect(screen, 8, 6, barW, barH, gray, false)
	vector.FillRect(screen, 8, 6, float32(barW*frac), barH, hc, false)
	w.text(screen, fmt.Sprintf("x%d", h.Lives), 8+barW+8, 4, red)

	score := fmt.Sprintf("SCORE %06d", h.Score)
	w.text(screen, score, float64(w.width)-w.measure(score)-8, 4, gold)
	w.text(screen, h.Level, (float64(w.width)-w.measure(h.Level))/2, 4, white)

	x := 8.0
	for _, pu := range h.PowerUps {
		s := fmt.Sprintf("%s %.0fs", pu.Name, math.Ceil(pu.Remaining))
		w.text(screen, s, x, 22, hexColor(pu.Color))
		x += w.measure(s) + 12
	}

	if b := h.Boss; b != nil {
		const bw = 200.0
		bx := float64(w.width) - bw - 8
		frac := 0.0
		if b.MaxHP > 0 {
			frac = core.ClampF(b.HP/b.MaxHP, 0, 1)
		}
		vector.FillRect(screen, float32(bx), 24, bw, 10, gray, false)
		vector.FillRect(screen, float32(bx), 24, float32(bw*frac), 10, red, false)
		label := fmt.Sprintf("COSTI P%d", b.Phase)
		w.text(screen, label, bx-w.measure(label)-8, 22, red)
	}
}

func (w *Window) drawScreenOverlay(screen *ebiten.Image) {
	g := w.game
	score := g.HUD().Score
	switch g.Screen() {
	case brawler.ScreenLevelIntro:
		lvl := g.Level()
		w.overlay(screen, fmt.Sprintf("LEVEL %d", lvl.Index+1), lvl.Title, "", "Press SPACE or ENTER")
	case brawler.ScreenBossIntro:
		w.overlay(screen, "WARNING: BOSS APPROACHING", "COSTI THE GYM OWNER",
			fmt.Sprintf("%q", g.Config().Boss.Taunts.Intro), "", "Press SPACE or ENTER to fight")
	case brawler.ScreenPaused:
		w.overlay(screen, "PAUSED", "Press P to resume")
	case brawler.ScreenLevelComplete:
		w.overlay(screen, "LEVEL COMPLETE!", fmt.Sprintf("Score: %d", score), "", "Press SPACE or ENTER")
	case brawler.ScreenGameOver:
		w.overlay(screen, "GAME OVER", fmt.Sprintf("Final score: %d", score), "", "Press SPACE or ENTER to retry")
	case brawler.ScreenVictory:
		w.overlay(screen, "VICTORY!", "Costi has been defeated!", fmt.Sprintf("Final score: %d", score),
			"", "Press SPACE or ENTER to play again")
	}
}

func (w *Window) overlay(screen *ebiten.Image, lines ...string) {
	boxH := float64(len(lines)+2) * lineHeight
	bx := (float64(w.width) - overlayWidth) / 2
	by := (float64(w.height) - boxH) / 2
	vector.FillRect(screen, float32(bx), float32(by), overlayWidth, float32(boxH), overlayBack, false)
	vector.StrokeRect(screen, float32(bx), float32(by), overlayWidth, float32(boxH), 2, white, false)
	for i, l := range lines {
		w.centered(screen, l, by+float64(i+1)*lineHeight, white)
	}
}

// fill draws a world-space rectangle.
func (w *Window) fill(screen *ebiten.Image, r core.Rect, c color.Color) {
	x, y := w.game.Camera().WorldToView(r.X, r.Y)
	vector.FillRect(screen, float32(x), float32(y), float32(r.W), float32(r.H), c, false)
}

// label draws world-space text.
func (w *Window) label(screen *ebiten.Image, s string, x, y float64, c color.Color) {
	vx, vy := w.game.Camera().WorldToView(x, y)
	w.text(screen, s, vx, vy, c)
}

func (w *Window) text(screen *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, w.face, op)
}

func (w *Window) centered(screen *ebiten.Image, s string, y float64, c color.Color) {
	w.text(screen, s, (float64(w.width)-w.measure(s))/2, y, c)
}

func (w *Window) measure(s string) float64 {
	width, _ := text.Measure(s, w.face, 0)
	return width
}

func blinking(timer int) bool {
	return timer > 0 && (timer/4)%2 == 0
}

func hexColor(hex string) color.RGBA {
	r, g, b, ok := core.ParseHex(hex)
	if !ok {
		return white
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Run opens the window and blocks until it is closed.
func Run(game *brawler.Game, cfg core.RuntimeConfig, opts Options) error {
	w := New(game, cfg, opts)
	ww, wh := w.Size()
	ebiten.SetWindowSize(ww, wh)
	ebiten.SetWindowTitle(game.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	start := time.Now()
	err := ebiten.RunGame(w)
	w.logger.Info("window closed", "score", game.HUD().Score, "ticks", game.Tick(),
		"duration", time.Since(start).Round(time.Second))
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
