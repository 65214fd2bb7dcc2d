package brawler

// WorldEvent is a request an entity makes of the world. Entities never touch
// world collections directly; the orchestrator drains their events once per
// step and applies them.
type WorldEvent interface {
	worldEvent()
}

// SpawnProjectile asks the world to add a projectile.
type SpawnProjectile struct {
	Projectile *Projectile
}

// SpawnMinion asks the world to add an already-active enemy of Type.
type SpawnMinion struct {
	Type string
	X, Y float64
}

// Shockwave asks the world to hit-test a ground slam around (X, Y).
type Shockwave struct {
	X, Y   float64
	Radius float64
	Damage float64
}

func (SpawnProjectile) worldEvent() {}
func (SpawnMinion) worldEvent()     {}
func (Shockwave) worldEvent()       {}

// eventQueue is the outbound channel embedded by entities that emit events.
type eventQueue struct {
	pending []WorldEvent
}

func (q *eventQueue) emit(e WorldEvent) {
	q.pending = append(q.pending, e)
}

// Events returns the pending events without clearing them.
func (q *eventQueue) Events() []WorldEvent {
	return q.pending
}

// DrainEvents returns the pending events and clears the queue.
func (q *eventQueue) DrainEvents() []WorldEvent {
	out := q.pending
	q.pending = nil
	return out
}
