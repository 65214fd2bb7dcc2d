package brawler

import (
	"math"

	"github.com/vovakirdan/tui-brawler/internal/core"
)

// DefaultVisibleMargin is the culling margin used when none is given.
const DefaultVisibleMargin = 64

// Target is anything the camera can follow.
type Target interface {
	CenterX() float64
	CenterY() float64
}

// Camera is a smoothed follow camera clamped to level bounds.
type Camera struct {
	X, Y      float64
	ViewW     float64
	ViewH     float64
	LevelW    float64
	LevelH    float64
	Smoothing float64
	target    Target
}

// NewCamera creates a camera with the given viewport in world pixels.
func NewCamera(viewW, viewH, smoothing float64) *Camera {
	return &Camera{
		ViewW:     viewW,
		ViewH:     viewH,
		LevelW:    viewW,
		LevelH:    viewH,
		Smoothing: smoothing,
	}
}

// SetLevelBounds sets the clamp rectangle to the level's pixel size.
func (c *Camera) SetLevelBounds(w, h float64) {
	c.LevelW, c.LevelH = w, h
}

// Follow sets the follow target.
func (c *Camera) Follow(t Target) {
	c.target = t
}

// SetViewport resizes the viewport. Front ends call it when the window or
// terminal changes size.
func (c *Camera) SetViewport(w, h float64) {
	c.ViewW, c.ViewH = w, h
	c.clamp()
}

// Update moves a fraction of the way toward centering the target.
func (c *Camera) Update() {
	if c.target == nil {
		return
	}
	tx := c.target.CenterX() - c.ViewW/2
	ty := c.target.CenterY() - c.ViewH/2
	c.X = core.Lerp(c.X, tx, c.Smoothing)
	c.Y = core.Lerp(c.Y, ty, c.Smoothing)
	c.clamp()
}

// SnapTo centers the target immediately.
func (c *Camera) SnapTo(t Target) {
	c.X = t.CenterX() - c.ViewW/2
	c.Y = t.CenterY() - c.ViewH/2
	c.clamp()
}

func (c *Camera) clamp() {
	c.X = core.ClampF(c.X, 0, math.Max(0, c.LevelW-c.ViewW))
	c.Y = core.ClampF(c.Y, 0, math.Max(0, c.LevelH-c.ViewH))
}

// IsVisible reports whether r overlaps the viewport grown by margin.
// A non-positive margin means DefaultVisibleMargin.
func (c *Camera) IsVisible(r core.Rect, margin float64) bool {
	if margin <= 0 {
		margin = DefaultVisibleMargin
	}
	return r.X+r.W > c.X-margin &&
		r.X < c.X+c.ViewW+margin &&
		r.Y+r.H > c.Y-margin &&
		r.Y < c.Y+c.ViewH+margin
}

// Offset returns the rounded world-to-view translation.
func (c *Camera) Offset() (float64, float64) {
	return math.Round(c.X), math.Round(c.Y)
}

// WorldToView converts a world point into viewport pixels.
func (c *Camera) WorldToView(x, y float64) (float64, float64) {
	ox, oy := c.Offset()
	return x - ox, y - oy
}
