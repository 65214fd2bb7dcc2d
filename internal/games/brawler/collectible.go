package brawler

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/tui-brawler/internal/config"
)

// ErrUnknownItem is returned when a spawn names an item missing from the
// item table.
var ErrUnknownItem = errors.New("brawler: unknown item")

// Item types.
const (
	ItemCoin    = "coin"
	ItemHealth  = "health"
	ItemPowerUp = "powerup"
)

// CollectibleSize is the edge length of every pickup.
const CollectibleSize = 24

// ItemTable is the immutable item lookup, keyed by item id.
type ItemTable map[string]config.ItemConfig

// Collectible is a pickup. Once Collected it stops interacting and is
// removed by the world after a short countdown.
type Collectible struct {
	Body
	ID        EntityID
	Item      string
	Config    config.ItemConfig
	Collected bool
	Color     string

	removeIn int
	bob      float64
}

// SpawnCollectible creates a pickup of the given item at (x, y).
func SpawnCollectible(table ItemTable, item string, x, y float64, id EntityID, powerUps map[string]config.PowerUpConfig) (*Collectible, error) {
	cfg, ok := table[item]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownItem, item)
	}
	c := &Collectible{
		Body:   Body{X: x, Y: y, W: CollectibleSize, H: CollectibleSize},
		ID:     id,
		Item:   item,
		Config: cfg,
	}
	switch cfg.Type {
	case ItemCoin:
		c.Color = "#FFD700"
	case ItemHealth:
		c.Color = "#FF4444"
	case ItemPowerUp:
		c.Color = "#00FFFF"
		if info, ok := powerUps[cfg.PowerUp]; ok && info.Color != "" {
			c.Color = info.Color
		}
	default:
		c.Color = "#FFFFFF"
	}
	return c, nil
}

// TryCollect marks the pickup collected if the player's bounds, grown by
// padding on every side, overlap it. padding is in pixels and already scaled.
func (c *Collectible) TryCollect(p *Player, padding float64) bool {
	if c.Collected {
		return false
	}
	pb := p.Bounds().Expand(padding)
	if !pb.Overlaps(c.Bounds()) {
		return false
	}
	c.Collected = true
	return true
}

// ScheduleRemoval starts the removal countdown in ticks.
func (c *Collectible) ScheduleRemoval(ticks int) {
	c.removeIn = max(1, ticks)
}

// Update animates an uncollected pickup and runs the removal countdown of a
// collected one.
func (c *Collectible) Update() {
	if !c.Collected {
		c.bob += 0.1
		return
	}
	if c.removeIn > 0 {
		c.removeIn--
		if c.removeIn == 0 {
			c.Dead = true
		}
	}
}

// BobOffset returns the vertical idle-bob offset in pixels.
func (c *Collectible) BobOffset() float64 {
	return math.Sin(c.bob) * 4
}

// removalTicks converts a delay in milliseconds to whole ticks at the given
// tick rate, rounding up.
func removalTicks(ms, tickRate int) int {
	if ms <= 0 || tickRate <= 0 {
		return 1
	}
	return (ms*tickRate + 999) / 1000
}
