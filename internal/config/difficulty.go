package config

import (
	"fmt"
	"math"
	"strings"
)

// DifficultyPreset names a difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// AllPresets lists presets in menu order.
var AllPresets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}

// ParsePreset converts a user string into a preset. Empty input means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(strings.ToLower(strings.TrimSpace(s))) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyHard:
		return DifficultyHard, nil
	}
	return DifficultyNormal, fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
}

// ApplyPreset modifies the config based on a difficulty preset.
// Lives, enemy contact damage and boss HP are adjusted; normal only applies
// the scales already present in cfg.Difficulty.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	cfg.Difficulty.Preset = preset

	switch preset {
	case DifficultyEasy:
		cfg.Player.Lives = 5
		cfg.Difficulty.EnemyDamageScale = 0.5
		cfg.Difficulty.BossHPScale = 0.75
	case DifficultyHard:
		cfg.Player.Lives = 2
		cfg.Difficulty.EnemyDamageScale = 1.5
		cfg.Difficulty.BossHPScale = 1.5
	}

	dmg := positiveOr(cfg.Difficulty.EnemyDamageScale, 1)
	for name, e := range cfg.Enemies {
		e.Damage = scaleInt(e.Damage, dmg)
		e.ProjectileDamage = scaleInt(e.ProjectileDamage, dmg)
		cfg.Enemies[name] = e
	}
	cfg.Boss.Damage = scaleInt(cfg.Boss.Damage, dmg)
	cfg.Boss.ShockwaveDamage = scaleInt(cfg.Boss.ShockwaveDamage, dmg)
	cfg.Boss.HP = scaleInt(cfg.Boss.HP, positiveOr(cfg.Difficulty.BossHPScale, 1))
}

func positiveOr(v, fallback float64) float64 {
	if v <= 0 {
		return fallback
	}
	return v
}

// scaleInt scales v, keeping non-zero values at least 1.
func scaleInt(v int, scale float64) int {
	if v == 0 {
		return 0
	}
	return max(1, int(math.Round(float64(v)*scale)))
}
