package brawler

import (
	"math"

	"github.com/vovakirdan/tui-brawler/internal/config"
)

// Stat names a modifiable player stat.
type Stat int

const (
	StatDamage Stat = iota
	StatSpeed
	StatJump
)

// Feature names a boolean power-up effect.
type Feature int

const (
	FeatureInvincible Feature = iota
)

// maxScale caps the combined size modifier.
const maxScale = 1.5

// PowerUp is one active, timed modifier.
type PowerUp struct {
	Type      string
	Duration  float64 // seconds
	Remaining float64 // seconds
	info      config.PowerUpConfig
}

// DisplayName returns the HUD label.
func (p *PowerUp) DisplayName() string {
	if p.info.DisplayName == "" {
		return p.Type
	}
	return p.info.DisplayName
}

// Color returns the HUD color as a hex string.
func (p *PowerUp) Color() string {
	if p.info.Color == "" {
		return "#FFFFFF"
	}
	return p.info.Color
}

// Icon returns the short HUD icon text.
func (p *PowerUp) Icon() string {
	if p.info.Icon == "" {
		return "?"
	}
	return p.info.Icon
}

// Fraction returns the remaining time as a fraction of the duration.
func (p *PowerUp) Fraction() float64 {
	if p.Duration <= 0 {
		return 0
	}
	return p.Remaining / p.Duration
}

func (p *PowerUp) modifier(s Stat) float64 {
	var v float64
	switch s {
	case StatDamage:
		v = p.info.Damage
	case StatSpeed:
		v = p.info.Speed
	case StatJump:
		v = p.info.Jump
	}
	if v == 0 {
		return 1
	}
	return v
}

func (p *PowerUp) scale() float64 {
	if p.info.Scale == 0 {
		return 1
	}
	return p.info.Scale
}

// PowerUpManager tracks the set of active power-ups. At most one instance of
// each type is active; adding a type again replaces its timer.
type PowerUpManager struct {
	table  map[string]config.PowerUpConfig
	active []*PowerUp
}

// NewPowerUpManager creates a manager over the given power-up table.
func NewPowerUpManager(table map[string]config.PowerUpConfig) *PowerUpManager {
	return &PowerUpManager{table: table}
}

// Add activates a power-up for the given number of seconds.
func (m *PowerUpManager) Add(kind string, seconds float64) *PowerUp {
	m.remove(kind)
	p := &PowerUp{Type: kind, Duration: seconds, Remaining: seconds, info: m.table[kind]}
	m.active = append(m.active, p)
	return p
}

func (m *PowerUpManager) remove(kind string) {
	kept := m.active[:0]
	for _, p := range m.active {
		if p.Type != kind {
			kept = append(kept, p)
		}
	}
	m.active = kept
}

// Update counts every timer down by dt seconds and drops expired power-ups.
func (m *PowerUpManager) Update(dt float64) {
	kept := m.active[:0]
	for _, p := range m.active {
		p.Remaining -= dt
		if p.Remaining > 0 {
			kept = append(kept, p)
		}
	}
	m.active = kept
}

// Clear removes all power-ups.
func (m *PowerUpManager) Clear() {
	m.active = nil
}

// Modifier returns the product of every active power-up's modifier for s.
func (m *PowerUpManager) Modifier(s Stat) float64 {
	v := 1.0
	for _, p := range m.active {
		v *= p.modifier(s)
	}
	return v
}

// Scale returns the combined size modifier, capped at 1.5.
func (m *PowerUpManager) Scale() float64 {
	v := 1.0
	for _, p := range m.active {
		v *= p.scale()
	}
	return math.Min(v, maxScale)
}

// Has reports whether any active power-up grants f.
func (m *PowerUpManager) Has(f Feature) bool {
	for _, p := range m.active {
		if f == FeatureInvincible && p.info.Invincible {
			return true
		}
	}
	return false
}

// Active returns the active power-ups in activation order.
func (m *PowerUpManager) Active() []*PowerUp {
	return m.active
}

// Info returns the table entry for a power-up type.
func (m *PowerUpManager) Info(kind string) (config.PowerUpConfig, bool) {
	info, ok := m.table[kind]
	return info, ok
}
