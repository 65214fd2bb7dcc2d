package brawler

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-brawler/internal/core"
)

// Tile glyphs.
var tileGlyphs = map[TileID]struct {
	r rune
	c core.Color
}{
	TileGround:    {'█', core.ColorBrown},
	TileGroundTop: {'▀', core.ColorGreen},
	TilePlatform:  {'═', core.ColorTan},
	TileBrick:     {'▓', core.ColorRed},
	TileStone:     {'▒', core.ColorGray},
	TileSpike:     {'^', core.ColorWhite},
	TileBreakable: {'%', core.ColorTan},
}

const (
	playerGlyph     = '@'
	attackGlyph     = '*'
	bossGlyph       = 'B'
	projectileGlyph = 'o'
	particleGlyph   = '·'
	graveGlyph      = '✝'
	checkpointGlyph = '⚑'
	exitGlyph       = '▌'
)

// Render draws the current game state into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	if g.screen == ScreenTitle || g.level == nil {
		g.renderTitle(dst)
		return
	}

	g.renderWorld(dst)
	g.renderHUD(dst)

	switch g.screen {
	case ScreenLevelIntro:
		g.drawOverlay(dst,
			fmt.Sprintf("LEVEL %d", g.levelIndex+1),
			g.level.Title,
			"",
			"Press SPACE or ENTER")
	case ScreenBossIntro:
		g.drawOverlay(dst,
			"WARNING: BOSS APPROACHING",
			"COSTI THE GYM OWNER",
			fmt.Sprintf("%q", g.cfg.Boss.Taunts.Intro),
			"",
			"Press SPACE or ENTER to fight")
	case ScreenPaused:
		g.drawOverlay(dst, "PAUSED", "Press P to resume")
	case ScreenLevelComplete:
		g.drawOverlay(dst,
			"LEVEL COMPLETE!",
			fmt.Sprintf("Score: %d", g.player.Score),
			"",
			"Press SPACE or ENTER")
	case ScreenGameOver:
		g.drawOverlay(dst,
			"GAME OVER",
			fmt.Sprintf("Final score: %d", g.player.Score),
			"",
			"Press SPACE or ENTER to retry")
	case ScreenVictory:
		g.drawOverlay(dst,
			"VICTORY!",
			"Costi has been defeated!",
			fmt.Sprintf("Final score: %d", g.player.Score),
			"",
			"Press SPACE or ENTER to play again")
	}
}

func (g *Game) renderTitle(dst *core.Screen) {
	cy := dst.Height()/2 - 4
	dst.DrawTextCenteredColored(cy, "G Y M   R U S H", core.ColorGold)
	dst.DrawTextCenteredColored(cy+1, strings.Repeat("═", 15), core.ColorGold)
	dst.DrawTextCentered(cy+3, "Fight your way through junk food to the gym")
	dst.DrawTextCenteredColored(cy+5, "Press SPACE or ENTER to start", core.ColorBrightWhite)
	dst.DrawTextCenteredColored(cy+7, "←/→ move  SPACE jump  X/Z punch  C kick  P pause", core.ColorGray)
}

// toCells maps a world rectangle to the screen cells it covers.
func (g *Game) toCells(r core.Rect) core.CellRect {
	ox, oy := g.camera.Offset()
	x0 := int(math.Floor((r.X - ox) / CellW))
	y0 := int(math.Floor((r.Y - oy) / CellH))
	x1 := int(math.Ceil((r.X + r.W - ox) / CellW))
	y1 := int(math.Ceil((r.Y + r.H - oy) / CellH))
	return core.CellRect{X: x0, Y: y0 + hudRows, W: max(1, x1-x0), H: max(1, y1-y0)}
}

func (g *Game) toCell(x, y float64) (int, int) {
	vx, vy := g.camera.WorldToView(x, y)
	return int(math.Floor(vx / CellW)), int(math.Floor(vy/CellH)) + hudRows
}

func (g *Game) renderWorld(dst *core.Screen) {
	ox, oy := g.camera.Offset()
	tm := g.level.Tiles

	for row := hudRows; row < dst.Height(); row++ {
		wy := oy + float64((row-hudRows)*CellH) + CellH/2
		for col := 0; col < dst.Width(); col++ {
			wx := ox + float64(col*CellW) + CellW/2
			t, ok := tm.TileAtPixel(wx, wy)
			if !ok || t.ID == TileAir {
				continue
			}
			if glyph, ok := tileGlyphs[t.ID]; ok {
				dst.SetColored(col, row, glyph.r, glyph.c)
			}
		}
	}

	for _, cp := range g.level.Checkpoints {
		c := core.ColorGray
		if cp.Activated {
			c = core.ColorGold
		}
		x, y := g.toCell(cp.X+CellW, cp.Y)
		dst.SetColored(x, y, checkpointGlyph, c)
	}
	if ex := g.level.Exit; ex != nil {
		r := g.toCells(core.Rect{X: ex.X, Y: ex.Y - 48, W: TileSize, H: 80})
		dst.DrawRect(r, exitGlyph, core.ColorBrightGreen)
		dst.DrawTextColored(r.X, r.Y-1, "EXIT", core.ColorBrightGreen)
	}

	for _, c := range g.collectibles {
		if c.Collected || !g.camera.IsVisible(c.Bounds(), 0) {
			continue
		}
		x, y := g.toCell(c.CenterX(), c.CenterY()+c.BobOffset())
		dst.SetColored(x, y, collectibleGlyph(c), core.NearestColor(c.Color))
	}

	for _, e := range g.enemyList {
		if e.Dead || !g.camera.IsVisible(e.Bounds(), 0) || blinking(e.FlashTimer) {
			continue
		}
		r := e.Bounds()
		r.X += e.Shake
		label := 'E'
		if e.Config.Label != "" {
			label = []rune(e.Config.Label)[0]
		}
		dst.DrawRect(g.toCells(r), label, core.NearestColor(e.Color()))
		if e.WindupTimer > 0 {
			x, y := g.toCell(e.CenterX(), e.Y-CellH)
			dst.SetColored(x, y, '!', core.ColorBrightRed)
		}
	}

	if b := g.boss; b != nil && !blinking(b.FlashTimer) {
		c := core.ColorGold
		if b.Phase == 3 {
			c = core.ColorBrightRed
		}
		dst.DrawRect(g.toCells(b.Bounds()), bossGlyph, c)
		if b.DialogueTimer > 0 && b.Dialogue != "" {
			x, y := g.toCell(b.CenterX(), b.Y-CellH)
			dst.DrawTextColored(x-len(b.Dialogue)/2, y, b.Dialogue, core.ColorBrightWhite)
		}
	}

	for _, pr := range g.projectiles {
		x, y := g.toCell(pr.CenterX(), pr.CenterY())
		dst.SetColored(x, y, projectileGlyph, core.NearestColor(pr.Color))
	}

	if gr := g.grave; gr != nil {
		x, y := g.toCell(gr.X, gr.Y-CellH)
		dst.SetColored(x, y, graveGlyph, core.ColorGray)
	} else if p := g.player; !blinking(p.InvincibilityTimer) {
		c := core.ColorBrightCyan
		switch {
		case p.StunTimer > 0:
			c = core.ColorPurple
		case p.State == PlayerHurt:
			c = core.ColorBrightRed
		case p.PowerUps.Has(FeatureInvincible):
			c = core.ColorBrightYellow
		}
		dst.DrawRect(g.toCells(p.Bounds()), playerGlyph, c)
		if hb, ok := p.AttackHitbox(); ok {
			dst.DrawRect(g.toCells(hb), attackGlyph, core.ColorBrightWhite)
		}
	}

	for _, pa := range g.particles {
		x, y := g.toCell(pa.X, pa.Y)
		dst.SetColored(x, y, particleGlyph, core.NearestColor(pa.Color))
	}

	for _, t := range g.texts {
		x, y := g.toCell(t.X, t.Y)
		dst.DrawTextColored(x-len(t.Text)/2, y, t.Text, core.NearestColor(t.Color))
	}
}

func blinking(timer int) bool {
	return timer > 0 && (timer/4)%2 == 0
}

func collectibleGlyph(c *Collectible) rune {
	switch c.Config.Type {
	case ItemCoin:
		return '$'
	case ItemHealth:
		return '+'
	}
	return '!'
}

func (g *Game) renderHUD(dst *core.Screen) {
	h := g.HUD()
	w := dst.Width()

	const barW = 10
	filled := 0
	if h.MaxHealth > 0 {
		filled = int(math.Ceil(h.Health / h.MaxHealth * barW))
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barW-filled)
	healthColor := core.ColorBrightGreen
	if h.Health <= h.MaxHealth*0.3 {
		healthColor = core.ColorBrightRed
	}

	dst.DrawTextColored(0, 0, "HP ", core.ColorWhite)
	dst.DrawTextColored(3, 0, bar, healthColor)
	lives := fmt.Sprintf(" x%d", h.Lives)
	dst.DrawTextColored(3+barW, 0, lives, core.ColorBrightRed)

	score := fmt.Sprintf("SCORE %06d", h.Score)
	dst.DrawTextColored(w-len(score), 0, score, core.ColorGold)
	dst.DrawTextCenteredColored(0, h.Level, core.ColorWhite)

	x := 0
	for _, pu := range h.PowerUps {
		label := fmt.Sprintf("[%s %.0fs] ", pu.Icon, math.Ceil(pu.Remaining))
		dst.DrawTextColored(x, 1, label, core.NearestColor(pu.Color))
		x += len(label)
	}

	if b := h.Boss; b != nil {
		const bossBarW = 20
		n := 0
		if b.MaxHP > 0 {
			n = int(math.Ceil(b.HP / b.MaxHP * bossBarW))
		}
		text := fmt.Sprintf("COSTI P%d %s%s", b.Phase,
			strings.Repeat("█", n), strings.Repeat("░", bossBarW-n))
		dst.DrawTextColored(w-len([]rune(text)), 1, text, core.ColorBrightRed)
	}
}

// drawOverlay draws a centered box with the given lines.
func (g *Game) drawOverlay(dst *core.Screen, lines ...string) {
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len([]rune(l)))
	}
	boxW := min(maxLen+4, dst.Width())
	boxH := len(lines) + 2
	bx := (dst.Width() - boxW) / 2
	by := (dst.Height() - boxH) / 2

	box := core.CellRect{X: bx, Y: by, W: boxW, H: boxH}
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)
	for i, l := range lines {
		dst.DrawTextCentered(by+1+i, l)
	}
}
