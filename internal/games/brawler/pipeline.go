package brawler

import (
	"math"

	"github.com/vovakirdan/tui-brawler/internal/core"
)

// updatePlaying runs one PLAYING step. The order of the stages is fixed:
// later stages read state the earlier ones produced.
func (g *Game) updatePlaying(in core.InputFrame) {
	if g.grave != nil {
		g.updateGrave()
		return
	}

	p := g.player
	tm := g.level.Tiles
	rules := g.cfg.Rules

	p.HandleInput(in)
	p.Grounded = false
	p.Update()
	g.tileBuf = resolveTileCollision(&p.Body, tm, g.tileBuf)

	if p.X < 0 {
		p.X, p.VX = 0, 0
	}
	if right := g.level.WidthPx() - p.W; p.X > right {
		p.X, p.VX = right, 0
	}

	for i := range g.level.Checkpoints {
		cp := &g.level.Checkpoints[i]
		if !cp.Activated && g.near(cp.X, cp.Y) {
			cp.Activated = true
			g.logger.Debug("checkpoint", "level", g.level.Name, "x", cp.X, "y", cp.Y)
		}
	}

	if ex := g.level.Exit; ex != nil && g.near(ex.X, ex.Y) {
		g.setScreen(ScreenLevelComplete)
	}

	if p.Y > g.level.HeightPx()+rules.PitMargin {
		g.playerDeath()
	}
	if p.State == PlayerDead && g.grave == nil {
		g.playerDeath()
	}

	p.PostCollisionUpdate()

	g.updateEnemies()
	g.updateBoss()
	g.updateProjectiles()
	g.checkPlayerAttack()
	g.checkPlayerAttackBoss()
	g.checkBossDeath()
	g.checkEnemyContact()
	g.checkBossContact()
	g.checkProjectileHits()
	g.updateParticles()
	g.updateCollectibles()
	g.checkCollection()
	g.updateFloatingTexts()

	p.PowerUps.Update(g.cfg.DT())
	g.camera.Update()
}

// near is the checkpoint and exit proximity test against the player center.
func (g *Game) near(x, y float64) bool {
	r := g.cfg.Rules
	return math.Abs(g.player.CenterX()-x-r.CheckpointOffsetX) < r.ProximityX &&
		math.Abs(g.player.CenterY()-y) < r.ProximityY
}

func (g *Game) burst(x, y float64, color string, n int) {
	g.particles = append(g.particles, SpawnParticleBurst(g.rng, x, y, color, n)...)
}

// playerDeath starts the grave sequence.
func (g *Game) playerDeath() {
	p := g.player
	g.burst(p.CenterX(), p.CenterY(), colorWhite, playerDeathBurst)
	g.grave = &Grave{X: p.CenterX(), Y: p.Y + p.H, Timer: g.cfg.Rules.GraveFrames}

	p.Die()
	p.VX, p.VY = 0, 0
	p.Y = graveY
	g.logger.Debug("player died", "lives", p.Lives, "level", g.level.Name)
}

// updateGrave runs while the player is dead: only particles and the camera
// move. When the timer runs out the player respawns or the run ends.
func (g *Game) updateGrave() {
	g.grave.Timer--
	g.updateParticles()
	g.camera.Update()

	if g.grave.Timer > 0 {
		return
	}
	g.grave = nil

	p := g.player
	if p.Lives <= 0 {
		g.setScreen(ScreenGameOver)
		return
	}
	x, y := g.level.SpawnX, g.level.SpawnY
	if cp, ok := g.level.LastCheckpoint(); ok {
		x, y = cp.X, cp.Y
	}
	p.Respawn(x, y, g.cfg.Rules.RespawnInvincibility)
}

func (g *Game) updateEnemies() {
	n := len(g.enemyList)
	for i := 0; i < n; i++ {
		e := g.enemyList[i]

		if !e.Activated && g.camera.IsVisible(e.Bounds(), g.cfg.Camera.ActivationMargin) {
			e.Activate()
		}

		if e.Activated {
			e.Update(&g.player.Body, g.level.Tiles)
			g.applyEvents(e.DrainEvents())
		}

		if e.Reap() {
			g.burst(e.CenterX(), e.CenterY(), e.Color(), enemyDeathBurst)
			g.player.Score += e.Score
		}
	}

	kept := g.enemyList[:0]
	for _, e := range g.enemyList {
		if !e.reaped {
			kept = append(kept, e)
		}
	}
	clear(g.enemyList[len(kept):])
	g.enemyList = kept
}

// applyEvents applies entity requests to the world.
func (g *Game) applyEvents(events []WorldEvent) {
	for _, ev := range events {
		switch ev := ev.(type) {
		case SpawnProjectile:
			g.projectiles = append(g.projectiles, ev.Projectile)
		case SpawnMinion:
			m, err := SpawnEnemy(g.enemies, ev.Type, ev.X, ev.Y, g.ids.Next(), g.physics)
			if err != nil {
				g.logger.Warn("skipping minion", "type", ev.Type, "err", err)
				continue
			}
			m.Activate()
			g.enemyList = append(g.enemyList, m)
		case Shockwave:
			g.applyShockwave(ev)
		}
	}
}

func (g *Game) applyShockwave(sw Shockwave) {
	p := g.player
	if math.Hypot(p.CenterX()-sw.X, p.CenterY()-sw.Y) < sw.Radius {
		p.TakeDamage(sw.Damage, sw.X)
	}
	step := g.cfg.Rules.ShockwaveSpacing
	if step <= 0 {
		step = 20
	}
	for dx := -sw.Radius; dx < sw.Radius; dx += step {
		g.burst(sw.X+dx, sw.Y-shockwaveLift, colorGold, shockwaveBurst)
	}
}

func (g *Game) updateBoss() {
	b := g.boss
	if b == nil || b.Dead {
		return
	}

	if !b.Activated {
		if !g.bossIntroShown && math.Abs(g.player.CenterX()-b.CenterX()) < g.cfg.Rules.BossIntroDistance {
			g.bossIntroShown = true
			g.setScreen(ScreenBossIntro)
		}
		return
	}

	b.Update(&g.player.Body, g.level.Tiles)
	g.applyEvents(b.DrainEvents())
}

func (g *Game) updateProjectiles() {
	kept := g.projectiles[:0]
	for _, pr := range g.projectiles {
		pr.Update()
		pr.CheckTileCollision(g.level.Tiles)
		if !pr.Dead {
			kept = append(kept, pr)
		}
	}
	clear(g.projectiles[len(kept):])
	g.projectiles = kept
}

func (g *Game) checkPlayerAttack() {
	p := g.player
	hitbox, ok := p.AttackHitbox()
	if !ok {
		return
	}
	for _, e := range g.enemyList {
		if e.Dead || !e.Activated || p.HasHit(e.ID) {
			continue
		}
		if hitbox.Overlaps(e.Bounds()) {
			e.TakeDamage(p.AttackDamage(), p.CenterX())
			p.MarkHit(e.ID)
			g.burst(e.CenterX(), e.CenterY(), colorWhite, hitBurst)
		}
	}
}

func (g *Game) checkPlayerAttackBoss() {
	p, b := g.player, g.boss
	if b == nil || b.Dead || !b.Activated {
		return
	}
	hitbox, ok := p.AttackHitbox()
	if !ok || p.HasHit(b.ID) {
		return
	}
	if hitbox.Overlaps(b.Bounds()) {
		b.TakeDamage(p.AttackDamage(), p.CenterX())
		p.MarkHit(b.ID)
		g.burst(b.CenterX(), b.CenterY(), colorWhite, hitBurst)
	}
}

// checkBossDeath awards the boss kill. The VICTORY screen guards against
// awarding it twice.
func (g *Game) checkBossDeath() {
	b := g.boss
	if b == nil || !b.Dead || g.screen == ScreenVictory {
		return
	}
	g.player.Score += b.Score
	for range bossDeathBursts {
		ox := (g.rng.Float64() - 0.5) * 60
		oy := (g.rng.Float64() - 0.5) * 80
		g.burst(b.CenterX()+ox, b.CenterY()+oy, colorGold, bossDeathBurst)
	}
	g.setScreen(ScreenVictory)
	g.logger.Info("boss defeated", "score", g.player.Score)
}

// checkEnemyContact applies contact damage from the first overlapping live
// enemy only.
func (g *Game) checkEnemyContact() {
	p := g.player
	if p.InvincibilityTimer > 0 || p.State == PlayerDead {
		return
	}
	pb := p.Bounds()
	for _, e := range g.enemyList {
		if e.Dead || !e.Activated {
			continue
		}
		if pb.Overlaps(e.Bounds()) {
			p.TakeDamage(e.Damage, e.CenterX())
			break
		}
	}
}

func (g *Game) checkBossContact() {
	p, b := g.player, g.boss
	if b == nil || b.Dead || !b.Activated {
		return
	}
	if p.InvincibilityTimer > 0 || p.State == PlayerDead {
		return
	}
	if p.Bounds().Overlaps(b.Bounds()) {
		p.TakeDamage(b.Damage, b.CenterX())
	}
}

// checkProjectileHits resolves enemy projectiles against the player. Stun is
// applied even when the damage is absorbed by invincibility.
func (g *Game) checkProjectileHits() {
	p := g.player
	pb := p.Bounds()
	kept := g.projectiles[:0]
	for _, pr := range g.projectiles {
		if !pr.Dead && !pr.FromPlayer && pb.Overlaps(pr.Bounds()) {
			p.TakeDamage(pr.Damage, pr.CenterX())
			if pr.Stun > 0 {
				p.Stun(pr.Stun)
			}
			pr.Dead = true
		}
		if !pr.Dead {
			kept = append(kept, pr)
		}
	}
	clear(g.projectiles[len(kept):])
	g.projectiles = kept
}

func (g *Game) updateParticles() {
	kept := g.particles[:0]
	for i := range g.particles {
		g.particles[i].Update()
		if !g.particles[i].Dead {
			kept = append(kept, g.particles[i])
		}
	}
	g.particles = kept
}

// updateCollectibles animates pickups and removes collected ones whose
// removal countdown has run out.
func (g *Game) updateCollectibles() {
	kept := g.collectibles[:0]
	for _, c := range g.collectibles {
		c.Update()
		if !c.Dead {
			kept = append(kept, c)
		}
	}
	clear(g.collectibles[len(kept):])
	g.collectibles = kept
}

func (g *Game) checkCollection() {
	p := g.player
	pad := g.cfg.Rules.PickupPadding * p.PowerUps.Scale()
	for _, c := range g.collectibles {
		if !c.TryCollect(p, pad) {
			continue
		}
		c.ScheduleRemoval(g.removalTicks)
		g.burst(c.CenterX(), c.CenterY(), c.Color, pickupBurst)
		g.applyPickup(c)
	}
}

func (g *Game) applyPickup(c *Collectible) {
	p := g.player
	cfg := c.Config
	switch cfg.Type {
	case ItemCoin:
		p.Score += cfg.Score
	case ItemHealth:
		p.Health = math.Min(p.MaxHealth, p.Health+float64(cfg.Value))
		p.Score += cfg.Score
	case ItemPowerUp:
		pu := p.PowerUps.Add(cfg.PowerUp, cfg.Duration)
		p.Score += cfg.Score
		name := cfg.DisplayName
		if name == "" {
			name = pu.DisplayName()
		}
		g.texts = append(g.texts, FloatingText{
			Text:  name,
			X:     c.CenterX(),
			Y:     c.CenterY(),
			Timer: g.cfg.Rules.FloatingTextFrames,
			Color: pu.Color(),
		})
	}
}

func (g *Game) updateFloatingTexts() {
	kept := g.texts[:0]
	for _, t := range g.texts {
		t.Timer--
		t.Y--
		if t.Timer > 0 {
			kept = append(kept, t)
		}
	}
	g.texts = kept
}
