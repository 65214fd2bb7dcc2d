package brawler

import (
	"math"

	"github.com/vovakirdan/tui-brawler/internal/config"
	"github.com/vovakirdan/tui-brawler/internal/core"
)

// PlayerState is the player's displayed state. Exactly one is active.
type PlayerState int

const (
	PlayerIdle PlayerState = iota
	PlayerRunning
	PlayerJumping
	PlayerFalling
	PlayerAttacking
	PlayerHurt
	PlayerDead
)

// String returns the state name.
func (s PlayerState) String() string {
	switch s {
	case PlayerIdle:
		return "idle"
	case PlayerRunning:
		return "running"
	case PlayerJumping:
		return "jumping"
	case PlayerFalling:
		return "falling"
	case PlayerAttacking:
		return "attacking"
	case PlayerHurt:
		return "hurt"
	case PlayerDead:
		return "dead"
	}
	return "unknown"
}

// AttackKind names an attack variant.
type AttackKind string

const (
	AttackPunch    AttackKind = "punch"
	AttackKick     AttackKind = "kick"
	AttackJumpKick AttackKind = "jumpkick"
)

// Input is the polled input snapshot the player reads each step.
// core.InputFrame satisfies it.
type Input interface {
	Down(a core.Action) bool
	WasPressed(a core.Action) bool
	WasReleased(a core.Action) bool
}

// Player is the controllable character.
type Player struct {
	Body
	ID     EntityID
	Facing float64
	State  PlayerState

	Health    float64
	MaxHealth float64
	Lives     int
	Score     int

	AttackType     AttackKind
	AttackTimer    int
	AttackCooldown int
	attackDamage   float64
	hitSet         map[EntityID]struct{}

	CoyoteTimer        int
	JumpBufferTimer    int
	InvincibilityTimer int
	HurtTimer          int
	StunTimer          int
	jumpHeld           bool

	PowerUps *PowerUpManager

	cfg     config.PlayerConfig
	physics Physics
}

// NewPlayer creates a player at (x, y).
func NewPlayer(id EntityID, x, y float64, cfg config.PlayerConfig, phys Physics, pu *PowerUpManager) *Player {
	if pu == nil {
		pu = NewPowerUpManager(nil)
	}
	return &Player{
		Body:       Body{X: x, Y: y, W: cfg.Width, H: cfg.Height},
		ID:         id,
		Facing:     1,
		State:      PlayerIdle,
		Health:     float64(cfg.MaxHealth),
		MaxHealth:  float64(cfg.MaxHealth),
		Lives:      cfg.Lives,
		AttackType: AttackPunch,
		hitSet:     make(map[EntityID]struct{}),
		PowerUps:   pu,
		cfg:        cfg,
		physics:    phys,
	}
}

// HandleInput applies one step of input. It is ignored while hurt, dead or
// stunned.
func (p *Player) HandleInput(in Input) {
	if p.State == PlayerHurt || p.State == PlayerDead || p.StunTimer > 0 {
		return
	}

	speed := p.cfg.MaxSpeed
	if p.State == PlayerAttacking {
		speed *= p.cfg.AttackSpeedFactor
	}
	speed *= p.PowerUps.Modifier(StatSpeed)

	switch {
	case in.Down(core.ActionLeft):
		p.VX = -speed
		p.Facing = -1
	case in.Down(core.ActionRight):
		p.VX = speed
		p.Facing = 1
	default:
		p.VX = 0
	}

	if in.WasPressed(core.ActionJump) {
		p.JumpBufferTimer = p.physics.JumpBufferFrames
	}
	p.jumpHeld = in.Down(core.ActionJump)

	if p.JumpBufferTimer > 0 && (p.Grounded || p.CoyoteTimer > 0) {
		p.VY = p.physics.JumpForce * p.PowerUps.Modifier(StatJump)
		p.Grounded = false
		p.CoyoteTimer = 0
		p.JumpBufferTimer = 0
	}

	// Variable jump height.
	if !p.jumpHeld && p.VY < p.physics.JumpCutVelocity {
		p.VY = p.physics.JumpCutVelocity
	}

	if p.AttackCooldown > 0 || p.AttackTimer > 0 {
		return
	}
	switch {
	case in.WasPressed(core.ActionPrimary):
		if p.Grounded {
			p.StartAttack(AttackPunch)
		} else {
			p.StartAttack(AttackJumpKick)
		}
	case in.WasPressed(core.ActionSecondary):
		if p.Grounded {
			p.StartAttack(AttackKick)
		} else {
			p.StartAttack(AttackJumpKick)
		}
	}
}

// StartAttack begins a swing of the given kind.
func (p *Player) StartAttack(kind AttackKind) {
	if _, ok := p.cfg.Attacks[string(kind)]; !ok {
		kind = AttackPunch
	}
	p.AttackType = kind
	p.AttackTimer = p.cfg.AttackDuration
	p.AttackCooldown = p.cfg.AttackCooldown
	p.attackDamage = float64(p.cfg.Attacks[string(kind)].Damage)
	clear(p.hitSet)
	p.State = PlayerAttacking
}

// AttackHitbox returns the current swing's hitbox, or false between swings.
// The box mirrors with facing and grows with the power-up scale.
func (p *Player) AttackHitbox() (core.Rect, bool) {
	if p.AttackTimer <= 0 {
		return core.Rect{}, false
	}
	a := p.cfg.Attacks[string(p.AttackType)]
	scale := p.PowerUps.Scale()
	w := math.Round(a.Width * scale)
	h := math.Round(a.Height * scale)

	x := p.X + p.W + a.OffsetX
	if p.Facing < 0 {
		x = p.X - w - a.OffsetX
	}
	return core.Rect{X: x, Y: p.Y + a.OffsetY, W: w, H: h}, true
}

// AttackDamage returns the swing's damage with the current damage modifier.
func (p *Player) AttackDamage() float64 {
	return p.attackDamage * p.PowerUps.Modifier(StatDamage)
}

// HasHit reports whether id was already damaged by the current swing.
func (p *Player) HasHit(id EntityID) bool {
	_, ok := p.hitSet[id]
	return ok
}

// MarkHit records that id was damaged by the current swing.
func (p *Player) MarkHit(id EntityID) {
	p.hitSet[id] = struct{}{}
}

// TakeDamage applies damage from a source at sourceX and reports whether it
// landed. Damage is ignored while invincible or dead.
func (p *Player) TakeDamage(amount, sourceX float64) bool {
	if p.InvincibilityTimer > 0 || p.State == PlayerDead || p.PowerUps.Has(FeatureInvincible) {
		return false
	}

	p.Health -= amount
	p.HurtTimer = p.cfg.HurtFrames
	p.InvincibilityTimer = p.cfg.InvincibilityFrames
	p.State = PlayerHurt
	p.AttackTimer = 0

	dir := p.facingAway(sourceX)
	p.VX = dir * p.cfg.KnockbackX
	p.VY = p.cfg.KnockbackY

	if p.Health <= 0 {
		p.Health = 0
		p.Die()
	}
	return true
}

// Die marks the player dead and costs a life. Grave and respawn sequencing
// belong to the caller.
func (p *Player) Die() {
	if p.State == PlayerDead {
		return
	}
	p.State = PlayerDead
	p.Lives--
}

// Stun freezes input for the given number of frames.
func (p *Player) Stun(frames int) {
	p.StunTimer = frames
}

// Update advances timers and applies gravity. Call before tile collision.
func (p *Player) Update() {
	if p.AttackCooldown > 0 {
		p.AttackCooldown--
	}
	if p.AttackTimer > 0 {
		p.AttackTimer--
		if p.AttackTimer <= 0 {
			clear(p.hitSet)
		}
	}
	if p.InvincibilityTimer > 0 {
		p.InvincibilityTimer--
	}
	if p.HurtTimer > 0 {
		p.HurtTimer--
		if p.HurtTimer <= 0 && p.State == PlayerHurt {
			p.State = PlayerIdle
		}
	}
	if p.StunTimer > 0 {
		p.StunTimer--
		p.VX = 0
	}

	p.applyGravity(p.physics.Gravity, p.physics.TerminalVelocity)
	limit := p.cfg.MaxSpeed * p.PowerUps.Modifier(StatSpeed)
	p.VX = core.ClampF(p.VX, -limit, limit)

	if p.JumpBufferTimer > 0 {
		p.JumpBufferTimer--
	}
}

// PostCollisionUpdate refreshes coyote time from the resolved ground flag and
// recomputes the displayed state.
func (p *Player) PostCollisionUpdate() {
	if p.Grounded {
		p.CoyoteTimer = p.physics.CoyoteFrames
	} else if p.CoyoteTimer > 0 {
		p.CoyoteTimer--
	}
	p.updateState()
}

func (p *Player) updateState() {
	switch {
	case p.State == PlayerDead, p.State == PlayerHurt:
		return
	case p.AttackTimer > 0:
		p.State = PlayerAttacking
	case !p.Grounded && p.VY < 0:
		p.State = PlayerJumping
	case !p.Grounded:
		p.State = PlayerFalling
	case math.Abs(p.VX) > p.cfg.RunThreshold:
		p.State = PlayerRunning
	default:
		p.State = PlayerIdle
	}
}

// Respawn rebuilds the player at (x, y) with full health and a grace period.
func (p *Player) Respawn(x, y float64, invincibility int) {
	p.X, p.Y = x, y
	p.VX, p.VY = 0, 0
	p.Health = p.MaxHealth
	p.State = PlayerIdle
	p.InvincibilityTimer = invincibility
	p.HurtTimer = 0
	p.StunTimer = 0
	p.AttackTimer = 0
	clear(p.hitSet)
}

// PlaceAt moves the player to a level spawn with full health.
func (p *Player) PlaceAt(x, y float64) {
	p.X, p.Y = x, y
	p.VX, p.VY = 0, 0
	p.Health = p.MaxHealth
}

// ResetRun restores lives, health and score for a new run.
func (p *Player) ResetRun() {
	p.Lives = p.cfg.Lives
	p.Health = p.MaxHealth
	p.Score = 0
	p.State = PlayerIdle
	p.PowerUps.Clear()
}
