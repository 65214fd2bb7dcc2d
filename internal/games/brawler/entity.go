package brawler

import "github.com/vovakirdan/tui-brawler/internal/core"

// EntityID is a stable handle for an actor within one world.
// Zero is never assigned.
type EntityID uint32

// idAllocator hands out EntityIDs in increasing order.
type idAllocator struct {
	next EntityID
}

func (a *idAllocator) Next() EntityID {
	a.next++
	return a.next
}

// Body is the record every simulated entity shares: position (top-left),
// size, velocity and lifecycle flags.
type Body struct {
	X, Y     float64
	W, H     float64
	VX, VY   float64
	Grounded bool
	Dead     bool
}

// Bounds returns the body's bounding box.
func (b *Body) Bounds() core.Rect {
	return core.Rect{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

// CenterX returns the horizontal center.
func (b *Body) CenterX() float64 { return b.X + b.W/2 }

// CenterY returns the vertical center.
func (b *Body) CenterY() float64 { return b.Y + b.H/2 }

// applyGravity adds g to the vertical velocity and clamps it to ±limit.
func (b *Body) applyGravity(g, limit float64) {
	b.VY = core.ClampF(b.VY+g, -limit, limit)
}

// facingAway returns +1 if the body's center is right of x, -1 otherwise.
func (b *Body) facingAway(x float64) float64 {
	if b.CenterX() > x {
		return 1
	}
	return -1
}
