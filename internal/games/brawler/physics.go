package brawler

import "github.com/vovakirdan/tui-brawler/internal/config"

// Physics holds the shared, read-only movement constants.
// Velocities are pixels per tick.
type Physics struct {
	Gravity          float64
	TerminalVelocity float64
	JumpForce        float64
	JumpCutVelocity  float64
	CoyoteFrames     int
	JumpBufferFrames int
}

// PhysicsFromConfig extracts the physics constants from the game config.
func PhysicsFromConfig(c config.PhysicsConfig) Physics {
	return Physics{
		Gravity:          c.Gravity,
		TerminalVelocity: c.TerminalVelocity,
		JumpForce:        c.JumpForce,
		JumpCutVelocity:  c.JumpCutVelocity,
		CoyoteFrames:     c.CoyoteFrames,
		JumpBufferFrames: c.JumpBufferFrames,
	}
}

// DefaultPhysics returns the stock tuning.
func DefaultPhysics() Physics {
	return PhysicsFromConfig(config.DefaultConfig().Physics)
}
