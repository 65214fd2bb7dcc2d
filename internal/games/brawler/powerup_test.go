package brawler

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-brawler/internal/config"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPowerUpReplaceSameType(t *testing.T) {
	m := NewPowerUpManager(config.DefaultConfig().PowerUps)

	m.Add("creatine", 12)
	m.Update(5)
	m.Add("creatine", 12)

	active := m.Active()
	if len(active) != 1 {
		t.Fatalf("expected one creatine instance, got %d", len(active))
	}
	if active[0].Remaining != 12 {
		t.Errorf("timer not reset: remaining %v", active[0].Remaining)
	}
	if m.Modifier(StatDamage) != 2 {
		t.Errorf("damage modifier = %v, want 2 (not stacked)", m.Modifier(StatDamage))
	}
}

func TestPowerUpModifiersMultiply(t *testing.T) {
	m := NewPowerUpManager(config.DefaultConfig().PowerUps)
	m.Add("creatine", 12)
	m.Add("protein_shake", 10)

	if got := m.Modifier(StatSpeed); got != 1.5 {
		t.Errorf("speed = %v, want 1.5", got)
	}
	if got := m.Modifier(StatJump); got != 1.3 {
		t.Errorf("jump = %v, want 1.3", got)
	}
	if got := m.Scale(); !near(got, 1.2*1.15) {
		t.Errorf("scale = %v, want %v", got, 1.2*1.15)
	}

	m.Add("pre_workout", 8)
	if got := m.Scale(); got != 1.5 {
		t.Errorf("scale = %v, want capped 1.5", got)
	}
	if !m.Has(FeatureInvincible) {
		t.Error("pre-workout grants invincibility")
	}
}

func TestPowerUpExpiry(t *testing.T) {
	m := NewPowerUpManager(config.DefaultConfig().PowerUps)
	m.Add("creatine", 1)
	m.Add("protein_shake", 10)

	const dt = 1.0 / 60
	for i := 0; i < 61; i++ {
		m.Update(dt)
	}
	if m.Modifier(StatDamage) != 1 {
		t.Errorf("creatine should have expired, damage = %v", m.Modifier(StatDamage))
	}
	if m.Modifier(StatSpeed) != 1.5 {
		t.Errorf("protein should still be active, speed = %v", m.Modifier(StatSpeed))
	}
	if len(m.Active()) != 1 {
		t.Errorf("active = %d, want 1", len(m.Active()))
	}
	if m.Has(FeatureInvincible) {
		t.Error("no invincibility without pre-workout")
	}
}

func TestPowerUpDisplayFallbacks(t *testing.T) {
	m := NewPowerUpManager(nil)
	pu := m.Add("mystery", 3)
	if pu.DisplayName() != "mystery" || pu.Icon() != "?" || pu.Color() != "#FFFFFF" {
		t.Errorf("fallbacks = %q %q %q", pu.DisplayName(), pu.Icon(), pu.Color())
	}
	if m.Modifier(StatDamage) != 1 || m.Scale() != 1 {
		t.Error("unknown power-ups have no effect")
	}
	if !near(pu.Fraction(), 1) {
		t.Errorf("fraction = %v, want 1", pu.Fraction())
	}
}

func TestPowerUpClear(t *testing.T) {
	m := NewPowerUpManager(config.DefaultConfig().PowerUps)
	m.Add("creatine", 12)
	m.Clear()
	if len(m.Active()) != 0 || m.Modifier(StatDamage) != 1 {
		t.Error("Clear should drop every power-up")
	}
}
