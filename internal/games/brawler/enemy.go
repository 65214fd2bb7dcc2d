package brawler

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/tui-brawler/internal/config"
)

// ErrUnknownEnemy is returned when a spawn names a type missing from the
// enemy table.
var ErrUnknownEnemy = errors.New("brawler: unknown enemy type")

// EnemyState is an enemy's current behavior state.
type EnemyState int

const (
	EnemyPatrol EnemyState = iota
	EnemyChase
	EnemyAttack
	EnemyHurt
	EnemyDead
)

// String returns the state name.
func (s EnemyState) String() string {
	switch s {
	case EnemyPatrol:
		return "patrol"
	case EnemyChase:
		return "chase"
	case EnemyAttack:
		return "attack"
	case EnemyHurt:
		return "hurt"
	case EnemyDead:
		return "dead"
	}
	return "unknown"
}

// EnemyKind selects the AI an enemy runs.
type EnemyKind int

const (
	KindPatrol EnemyKind = iota // candy: patrol and hop
	KindRanged                  // chips: patrol and shoot
	KindCharge                  // soda: windup then charge
	KindTank                    // cake: patrol, spawns minions once
)

// ParseEnemyKind maps a behavior tag from config to an EnemyKind.
func ParseEnemyKind(behavior string) EnemyKind {
	switch behavior {
	case "ranged":
		return KindRanged
	case "charge":
		return KindCharge
	case "tank":
		return KindTank
	}
	return KindPatrol
}

// EnemyTable is the immutable enemy config lookup, keyed by type name.
type EnemyTable map[string]config.EnemyConfig

const (
	enemyHurtFrames = 12
	enemyKnockbackX = 4
	enemyKnockbackY = -3
	hurtSlideFactor = 0.8
	probeAhead      = 2
	probeBelow      = 4
)

// Enemy is one non-boss enemy. Behavior-specific fields are only used by the
// matching Kind.
type Enemy struct {
	Body
	eventQueue

	ID     EntityID
	Type   string
	Kind   EnemyKind
	Config config.EnemyConfig

	HP        float64
	MaxHP     float64
	Damage    float64
	Score     int
	State     EnemyState
	Facing    float64
	PatrolDir float64
	Activated bool

	HurtTimer  int
	FlashTimer int
	FireTimer  int

	// candy
	bounceTimer int
	// soda
	Charging    bool
	ChargeTimer int
	WindupTimer int
	Shake       float64
	// cake
	minionsSpawned bool

	reaped  bool
	physics Physics
}

// SpawnEnemy creates an inactive enemy of the given type at (x, y).
func SpawnEnemy(table EnemyTable, typ string, x, y float64, id EntityID, phys Physics) (*Enemy, error) {
	cfg, ok := table[typ]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEnemy, typ)
	}
	e := &Enemy{
		Body:      Body{X: x, Y: y, W: cfg.Width, H: cfg.Height},
		ID:        id,
		Type:      typ,
		Kind:      ParseEnemyKind(cfg.Behavior),
		Config:    cfg,
		HP:        float64(cfg.HP),
		MaxHP:     float64(cfg.HP),
		Damage:    float64(cfg.Damage),
		Score:     cfg.Score,
		State:     EnemyPatrol,
		Facing:    -1,
		PatrolDir: -1,
		physics:   phys,
	}
	if e.Kind == KindRanged {
		e.FireTimer = cfg.FireRate
	}
	return e, nil
}

// Activate starts simulating the enemy. Calling it again has no effect.
func (e *Enemy) Activate() {
	e.Activated = true
}

// TakeDamage applies damage from a source at sourceX. Inactive and dead
// enemies ignore it.
func (e *Enemy) TakeDamage(amount, sourceX float64) bool {
	if !e.Activated || e.State == EnemyDead {
		return false
	}
	e.HP -= amount
	e.HurtTimer = enemyHurtFrames
	e.FlashTimer = enemyHurtFrames
	e.State = EnemyHurt

	dir := e.facingAway(sourceX)
	e.VX = dir * enemyKnockbackX
	e.VY = enemyKnockbackY

	if e.HP <= 0 {
		e.HP = 0
		e.Die()
	}
	return true
}

// Die marks the enemy dead.
func (e *Enemy) Die() {
	e.State = EnemyDead
	e.Dead = true
}

// Reap reports true the first time it is called on a dead enemy, and false
// otherwise. The world uses it to award a kill exactly once.
func (e *Enemy) Reap() bool {
	if !e.Dead || e.reaped {
		return false
	}
	e.reaped = true
	return true
}

// Update advances the enemy one tick against the target (the player) and the
// tile map. Inactive and dead enemies do nothing.
func (e *Enemy) Update(target *Body, tm *TileMap) {
	if !e.Activated || e.State == EnemyDead {
		return
	}

	if e.HurtTimer > 0 {
		e.HurtTimer--
		if e.HurtTimer <= 0 {
			e.State = EnemyPatrol
		}
	}
	if e.FlashTimer > 0 {
		e.FlashTimer--
	}

	if e.State != EnemyHurt {
		e.runAI(target, tm)
	}

	e.applyGravity(e.physics.Gravity, e.physics.TerminalVelocity)
	e.Grounded = false
	ResolveTileCollision(&e.Body, tm)

	if e.Grounded && e.State == EnemyHurt {
		e.VX *= hurtSlideFactor
	}

	if e.FireTimer > 0 {
		e.FireTimer--
	}
}

func (e *Enemy) runAI(target *Body, tm *TileMap) {
	switch e.Kind {
	case KindRanged:
		e.rangedAI(target, tm)
	case KindCharge:
		e.chargeAI(target, tm)
	case KindTank:
		e.tankAI(tm)
	default:
		e.hopAI(tm)
	}
}

// patrol walks in PatrolDir and turns at walls and cliff edges.
func (e *Enemy) patrol(tm *TileMap) {
	e.VX = e.PatrolDir * e.Config.Speed
	e.Facing = e.PatrolDir

	aheadX := e.X - probeAhead
	if e.PatrolDir > 0 {
		aheadX = e.X + e.W + probeAhead
	}
	belowY := e.Y + e.H + probeBelow

	wall := tm.IsSolidAt(aheadX, e.CenterY())
	cliff := e.Grounded && !tm.IsSolidAt(aheadX, belowY)
	if wall || cliff {
		e.PatrolDir = -e.PatrolDir
		e.VX = e.PatrolDir * e.Config.Speed
		e.Facing = e.PatrolDir
	}
}

// wallAhead probes one pixel column just past the leading edge.
func (e *Enemy) wallAhead(tm *TileMap) bool {
	aheadX := e.X - probeAhead
	if e.Facing > 0 {
		aheadX = e.X + e.W + probeAhead
	}
	return tm.IsSolidAt(aheadX, e.CenterY())
}

// DistanceTo returns the center-to-center distance to b.
func (e *Enemy) DistanceTo(b *Body) float64 {
	return math.Hypot(e.CenterX()-b.CenterX(), e.CenterY()-b.CenterY())
}

// Color returns the enemy's configured color.
func (e *Enemy) Color() string {
	return e.Config.Color
}
