package brawler

import "math"

// Snapshot is a flat summary of the simulation, used by the headless runner
// and by determinism tests. Uses primitive types only for stable output.
type Snapshot struct {
	Tick        uint64
	Screen      string
	Level       int
	Score       int
	Lives       int
	Health      float64
	PlayerX     float64
	PlayerY     float64
	PlayerState string
	PowerUps    int

	// Each enemy is 3 floats: X, Y, HP
	EnemyCount int
	EnemyData  []float64

	BossHP    float64
	BossPhase int

	Projectiles  int
	Collectibles int
	Particles    int
	Checkpoints  int // activated
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:   g.tick,
		Screen: g.screen.String(),
		Level:  g.levelIndex,
	}
	if p := g.player; p != nil {
		s.Score = p.Score
		s.Lives = p.Lives
		s.Health = p.Health
		s.PlayerX = p.X
		s.PlayerY = p.Y
		s.PlayerState = p.State.String()
		s.PowerUps = len(p.PowerUps.Active())
	}

	s.EnemyCount = len(g.enemyList)
	s.EnemyData = make([]float64, 0, len(g.enemyList)*3)
	for _, e := range g.enemyList {
		s.EnemyData = append(s.EnemyData, e.X, e.Y, e.HP)
	}

	if g.boss != nil {
		s.BossHP = g.boss.HP
		s.BossPhase = g.boss.Phase
	}
	s.Projectiles = len(g.projectiles)
	s.Collectibles = len(g.collectibles)
	s.Particles = len(g.particles)
	if g.level != nil {
		for _, cp := range g.level.Checkpoints {
			if cp.Activated {
				s.Checkpoints++
			}
		}
	}
	return s
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (s *Snapshot) Hash() uint64 {
	h := s.Tick
	mix := func(v uint64) { h = h*31 + v }

	for _, r := range s.Screen {
		mix(uint64(r))
	}
	mix(uint64(s.Level))
	mix(uint64(s.Score))
	mix(uint64(s.Lives))
	mix(math.Float64bits(s.Health))
	mix(math.Float64bits(s.PlayerX))
	mix(math.Float64bits(s.PlayerY))
	for _, r := range s.PlayerState {
		mix(uint64(r))
	}
	mix(uint64(s.PowerUps))
	mix(uint64(s.EnemyCount))
	for _, v := range s.EnemyData {
		mix(math.Float64bits(v))
	}
	mix(math.Float64bits(s.BossHP))
	mix(uint64(s.BossPhase))
	mix(uint64(s.Projectiles))
	mix(uint64(s.Collectibles))
	mix(uint64(s.Particles))
	mix(uint64(s.Checkpoints))
	return h
}
