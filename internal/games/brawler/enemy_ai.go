package brawler

import "math"

const (
	chipProjectileSize    = 8
	chipProjectileLife    = 120
	chipProjectileGravity = 0.05
	chipProjectileColor   = "#ffa500"

	minionOffsetLeft  = 40
	minionOffsetRight = 10

	windupShake = 2
)

// hopAI patrols and hops on a fixed cadence while grounded.
func (e *Enemy) hopAI(tm *TileMap) {
	e.patrol(tm)

	e.bounceTimer++
	if e.Grounded && e.bounceTimer > e.Config.HopInterval {
		e.VY = e.Config.HopVelocity
		e.bounceTimer = 0
	}
}

// rangedAI patrols and lobs a projectile at the target when in range.
func (e *Enemy) rangedAI(target *Body, tm *TileMap) {
	e.patrol(tm)

	if e.FireTimer > 0 || e.DistanceTo(target) >= e.Config.DetectionRange {
		return
	}
	e.FireTimer = e.Config.FireRate

	dx := target.CenterX() - e.CenterX()
	dy := target.CenterY() - e.CenterY()
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		dx, dist = e.Facing, 1
	}
	speed := e.Config.ProjectileSpeed
	e.emit(SpawnProjectile{Projectile: NewProjectile(
		e.CenterX()-chipProjectileSize/2,
		e.CenterY()-chipProjectileSize/2,
		dx/dist*speed, dy/dist*speed,
		ProjectileSpec{
			W:       chipProjectileSize,
			H:       chipProjectileSize,
			Damage:  float64(e.Config.ProjectileDamage),
			Life:    chipProjectileLife,
			Gravity: chipProjectileGravity,
			Color:   chipProjectileColor,
			Kind:    ProjectileChip,
		},
	)})
}

// chargeAI winds up when the target is close, then dashes until the charge
// timer runs out or a wall is ahead.
func (e *Enemy) chargeAI(target *Body, tm *TileMap) {
	switch {
	case e.Charging:
		e.State = EnemyAttack
		e.VX = e.Facing * e.Config.ChargeSpeed
		e.ChargeTimer--
		if e.ChargeTimer <= 0 || e.wallAhead(tm) {
			e.Charging = false
			e.WindupTimer = 0
			e.VX = 0
			e.State = EnemyPatrol
		}
	case e.WindupTimer > 0:
		e.VX = 0
		e.WindupTimer--
		e.Shake = windupShake
		if e.WindupTimer%2 == 0 {
			e.Shake = -windupShake
		}
		if e.WindupTimer <= 0 {
			e.Charging = true
			e.ChargeTimer = e.Config.ChargeFrames
			e.Shake = 0
		}
	case e.DistanceTo(target) < e.Config.DetectionRange:
		e.State = EnemyChase
		e.Facing = 1
		if target.CenterX() <= e.CenterX() {
			e.Facing = -1
		}
		e.WindupTimer = e.Config.WindupFrames
	default:
		e.State = EnemyPatrol
		e.patrol(tm)
	}
}

// tankAI patrols and, once below the minion threshold, requests two minions
// flanking it. The request is latched per instance.
func (e *Enemy) tankAI(tm *TileMap) {
	e.patrol(tm)

	if e.minionsSpawned || e.HP > e.MaxHP*e.Config.MinionThreshold {
		return
	}
	e.minionsSpawned = true
	kind := e.Config.MinionType
	if kind == "" {
		kind = "candy"
	}
	e.emit(SpawnMinion{Type: kind, X: e.X - minionOffsetLeft, Y: e.Y})
	e.emit(SpawnMinion{Type: kind, X: e.X + e.W + minionOffsetRight, Y: e.Y})
}

// MinionsSpawned reports whether a tank enemy has already split.
func (e *Enemy) MinionsSpawned() bool {
	return e.minionsSpawned
}
