package brawler

import "fmt"

// PowerUpStatus is one active power-up as shown in the HUD.
type PowerUpStatus struct {
	Name      string
	Icon      string
	Color     string
	Remaining float64 // seconds
	Duration  float64 // seconds
}

// BossStatus is the boss bar.
type BossStatus struct {
	HP       float64
	MaxHP    float64
	Phase    int
	Dialogue string
}

// HUD is everything a renderer needs to draw the heads-up display.
type HUD struct {
	Level     string
	Health    float64
	MaxHealth float64
	Lives     int
	Score     int
	PowerUps  []PowerUpStatus
	Boss      *BossStatus
	Screen    Screen
}

// HUD returns the current heads-up display data.
func (g *Game) HUD() HUD {
	h := HUD{Screen: g.screen}
	if g.player == nil {
		return h
	}
	p := g.player
	h.Health = p.Health
	h.MaxHealth = p.MaxHealth
	h.Lives = p.Lives
	h.Score = p.Score

	if g.level != nil {
		h.Level = fmt.Sprintf("%d/%d - %s", g.levelIndex+1, g.LevelCount(), g.level.Name)
	}

	for _, pu := range p.PowerUps.Active() {
		h.PowerUps = append(h.PowerUps, PowerUpStatus{
			Name:      pu.DisplayName(),
			Icon:      pu.Icon(),
			Color:     pu.Color(),
			Remaining: pu.Remaining,
			Duration:  pu.Duration,
		})
	}

	if b := g.boss; b != nil && b.Activated {
		bs := &BossStatus{HP: b.HP, MaxHP: b.MaxHP, Phase: b.Phase}
		if b.DialogueTimer > 0 {
			bs.Dialogue = b.Dialogue
		}
		h.Boss = bs
	}
	return h
}
