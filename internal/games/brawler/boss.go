package brawler

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-brawler/internal/config"
	"github.com/vovakirdan/tui-brawler/internal/core"
)

// BossAction is the boss's current sub-state.
type BossAction int

const (
	BossIdle BossAction = iota
	BossCharging
	BossSlamming
	BossJumping
	BossDead
)

// String returns the action name.
func (a BossAction) String() string {
	switch a {
	case BossIdle:
		return "idle"
	case BossCharging:
		return "charge"
	case BossSlamming:
		return "slam"
	case BossJumping:
		return "jump"
	case BossDead:
		return "dead"
	}
	return "unknown"
}

// Boss tuning that is not exposed in config.
const (
	bossGravityLimit   = 20
	bossApproachSpeed  = 1.5
	bossApproachRange  = 80
	bossKnockbackX     = 2
	bossFlashFrames    = 12
	bossHurtTauntRoll  = 0.3
	bossChargeFrames   = 45
	bossChargeSpeed    = 5
	bossEnragedSpeed   = 7
	bossSlamVelocity   = -14
	bossSlamTimeout    = 60
	bossSlamRadius     = 120
	bossSlamRadiusStep = 40
	bossJumpFrames     = 80
	bossJumpVelocity   = -16
	bossJumpSteer      = 0.05
	bossJumpMaxVX      = 6
	bossJumpLandAfter  = 60

	introTauntFrames = 120
	phaseTauntFrames = 90
	deathTauntFrames = 180
	tauntFrames      = 30
	longTauntFrames  = 40
)

var (
	dumbbellSpec = ProjectileSpec{W: 24, H: 12, Damage: 20, Life: 120, Gravity: 0.15, Color: "#808080", Kind: ProjectileDumbbell}
	proteinSpec  = ProjectileSpec{W: 12, H: 16, Damage: 15, Life: 150, Color: "#00FF88", Kind: ProjectileProtein}
	oilSpec      = ProjectileSpec{W: 14, H: 14, Damage: 10, Life: 140, Stun: 12, Color: "#7B4FBF", Kind: ProjectileOil}
)

const (
	proteinSpeed = 5
	oilSpeed     = 4.5
	dumbbellLift = -3
	throwRaise   = 10
)

// Boss is the three-phase final enemy. It stays dormant until Activate.
type Boss struct {
	Body
	eventQueue

	ID     EntityID
	HP     float64
	MaxHP  float64
	Damage float64
	Score  int
	Facing float64
	Phase  int
	Action BossAction

	Activated bool

	ActionTimer     int
	ActionCooldown  int
	FlashTimer      int
	InvincibleTimer int
	ChargeTimer     int
	SlamTimer       int
	JumpTimer       int
	slamJumped      bool

	Dialogue      string
	DialogueTimer int

	cfg     config.BossConfig
	physics Physics
	rng     *rand.Rand
}

// NewBoss creates a dormant boss at (x, y). rng drives action selection and
// taunts; a nil rng gets a fixed seed.
func NewBoss(id EntityID, x, y float64, cfg config.BossConfig, phys Physics, rng *rand.Rand) *Boss {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Boss{
		Body:           Body{X: x, Y: y, W: cfg.Width, H: cfg.Height},
		ID:             id,
		HP:             float64(cfg.HP),
		MaxHP:          float64(cfg.HP),
		Damage:         float64(cfg.Damage),
		Score:          cfg.Score,
		Facing:         -1,
		Phase:          1,
		ActionCooldown: cfg.ActionCooldown,
		cfg:            cfg,
		physics:        phys,
		rng:            rng,
	}
}

// Activate wakes the boss with its intro line.
func (b *Boss) Activate() {
	if b.Activated {
		return
	}
	b.Activated = true
	b.say(b.cfg.Taunts.Intro, introTauntFrames)
}

func (b *Boss) say(line string, frames int) {
	b.Dialogue = line
	b.DialogueTimer = frames
}

func (b *Boss) taunt(pool []string, frames int) {
	if len(pool) == 0 {
		return
	}
	b.say(pool[b.rng.Intn(len(pool))], frames)
}

// TakeDamage applies a hit and reports whether it landed. Hits during the
// per-hit invincibility window are ignored. Phase only ever increases.
func (b *Boss) TakeDamage(amount, sourceX float64) bool {
	if b.Dead || b.InvincibleTimer > 0 {
		return false
	}

	b.HP -= amount
	b.FlashTimer = bossFlashFrames
	b.InvincibleTimer = b.cfg.HitInvincibility
	b.VX = b.facingAway(sourceX) * bossKnockbackX

	if b.DialogueTimer <= 0 || b.rng.Float64() < bossHurtTauntRoll {
		b.taunt(b.cfg.Taunts.Hurt, longTauntFrames)
	}

	pct := b.HP / b.MaxHP
	switch {
	case pct <= b.cfg.Phase3Threshold && b.Phase < 3:
		b.enterPhase(3, b.cfg.Taunts.Phase3, b.cfg.Phase3Cooldown)
	case pct <= b.cfg.Phase2Threshold && b.Phase < 2:
		b.enterPhase(2, b.cfg.Taunts.Phase2, b.cfg.Phase2Cooldown)
	}

	if b.HP <= 0 {
		b.HP = 0
		b.Die()
	}
	return true
}

func (b *Boss) enterPhase(phase int, line string, cooldown int) {
	b.Phase = phase
	b.say(line, phaseTauntFrames)
	b.ActionCooldown = cooldown
	b.InvincibleTimer = b.cfg.PhaseInvincibility
}

// Die ends the fight.
func (b *Boss) Die() {
	b.Dead = true
	b.Action = BossDead
	b.say(b.cfg.Taunts.Death, deathTauntFrames)
}

// Update advances the boss one tick against the target and tile map.
func (b *Boss) Update(target *Body, tm *TileMap) {
	if !b.Activated || b.Dead {
		return
	}

	if b.FlashTimer > 0 {
		b.FlashTimer--
	}
	if b.InvincibleTimer > 0 {
		b.InvincibleTimer--
	}
	if b.DialogueTimer > 0 {
		b.DialogueTimer--
	}

	if b.Action != BossCharging && b.Action != BossSlamming {
		b.Facing = 1
		if target.CenterX() <= b.CenterX() {
			b.Facing = -1
		}
	}

	b.runAI(target)

	b.applyGravity(b.physics.Gravity, bossGravityLimit)
	b.Grounded = false
	ResolveTileCollision(&b.Body, tm)
}

func (b *Boss) runAI(target *Body) {
	switch b.Action {
	case BossCharging:
		b.doCharge()
		return
	case BossSlamming:
		b.doSlam()
		return
	case BossJumping:
		b.doJump()
		return
	}

	b.ActionTimer++
	if b.ActionTimer < b.ActionCooldown {
		dx := target.CenterX() - b.CenterX()
		if math.Abs(dx) > bossApproachRange {
			b.VX = core.Sign(dx) * bossApproachSpeed
		} else {
			b.VX = 0
		}
		return
	}

	b.ActionTimer = 0
	b.chooseAction(b.rng.Float64(), target)
}

// chooseAction picks the next move from a uniform roll in [0, 1).
func (b *Boss) chooseAction(roll float64, target *Body) {
	switch b.Phase {
	case 1:
		switch {
		case roll < 0.4:
			b.startCharge()
		case roll < 0.75:
			b.throwDumbbell(target)
		default:
			b.throwOil(target)
		}
	case 2:
		switch {
		case roll < 0.2:
			b.startCharge()
		case roll < 0.4:
			b.startSlam()
		case roll < 0.6:
			b.throwProtein(target)
		case roll < 0.8:
			b.throwOil(target)
		default:
			b.throwDumbbell(target)
		}
	default:
		switch {
		case roll < 0.2:
			b.startCharge()
		case roll < 0.35:
			b.startSlam()
		case roll < 0.5:
			b.startJump(target)
		case roll < 0.7:
			b.throwOil(target)
		default:
			b.throwDumbbell(target)
		}
	}
}

func (b *Boss) startCharge() {
	b.Action = BossCharging
	b.ChargeTimer = bossChargeFrames
	b.taunt(b.cfg.Taunts.Charge, tauntFrames)
}

func (b *Boss) doCharge() {
	speed := float64(bossChargeSpeed)
	if b.Phase >= 3 {
		speed = bossEnragedSpeed
	}
	b.VX = b.Facing * speed
	b.ChargeTimer--
	if b.ChargeTimer <= 0 {
		b.Action = BossIdle
		b.VX = 0
	}
}

func (b *Boss) startSlam() {
	b.Action = BossSlamming
	b.SlamTimer = bossSlamTimeout
	b.slamJumped = false
	b.taunt(b.cfg.Taunts.Slam, tauntFrames)
}

func (b *Boss) doSlam() {
	if !b.slamJumped {
		b.VY = bossSlamVelocity
		b.VX = 0
		b.slamJumped = true
		b.SlamTimer = bossSlamTimeout
		return
	}

	if b.Grounded {
		b.emit(Shockwave{
			X:      b.CenterX(),
			Y:      b.Y + b.H,
			Radius: float64(bossSlamRadius + (b.Phase-1)*bossSlamRadiusStep),
			Damage: float64(b.cfg.ShockwaveDamage),
		})
		b.Action = BossIdle
		b.VX = 0
	}

	b.SlamTimer--
	if b.SlamTimer <= 0 && b.Action == BossSlamming {
		b.Action = BossIdle
	}
}

func (b *Boss) startJump(target *Body) {
	b.Action = BossJumping
	b.JumpTimer = bossJumpFrames
	b.VY = bossJumpVelocity
	dx := target.CenterX() - b.CenterX()
	b.VX = core.ClampF(dx*bossJumpSteer, -bossJumpMaxVX, bossJumpMaxVX)
	b.taunt(b.cfg.Taunts.Jump, tauntFrames)
}

func (b *Boss) doJump() {
	b.JumpTimer--
	if b.Grounded && b.JumpTimer < bossJumpLandAfter {
		b.Action = BossIdle
		b.VX = 0
	}
	if b.JumpTimer <= 0 {
		b.Action = BossIdle
	}
}

func (b *Boss) throwDumbbell(target *Body) {
	dx := target.CenterX() - b.CenterX()
	speed := float64(4 + b.Phase)
	b.emit(SpawnProjectile{Projectile: NewProjectile(
		b.CenterX(), b.CenterY()-throwRaise,
		core.Sign(dx)*speed, dumbbellLift,
		dumbbellSpec,
	)})
	b.taunt(b.cfg.Taunts.Throw, tauntFrames)
}

func (b *Boss) throwProtein(target *Body) {
	vx, vy := b.aimAt(target, proteinSpeed)
	b.emit(SpawnProjectile{Projectile: NewProjectile(b.CenterX(), b.CenterY(), vx, vy, proteinSpec)})
	b.say(b.cfg.Taunts.Protein, tauntFrames)
}

func (b *Boss) throwOil(target *Body) {
	vx, vy := b.aimAt(target, oilSpeed)
	b.emit(SpawnProjectile{Projectile: NewProjectile(b.CenterX(), b.CenterY()-throwRaise, vx, vy, oilSpec)})
	b.taunt(b.cfg.Taunts.Oil, longTauntFrames)
}

// aimAt returns a velocity of the given speed toward the target's center.
func (b *Boss) aimAt(target *Body, speed float64) (float64, float64) {
	dx := target.CenterX() - b.CenterX()
	dy := target.CenterY() - b.CenterY()
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		dist = 1
	}
	return dx / dist * speed, dy / dist * speed
}

// HPFraction returns hp/maxHP for HUD bars.
func (b *Boss) HPFraction() float64 {
	if b.MaxHP <= 0 {
		return 0
	}
	return b.HP / b.MaxHP
}
