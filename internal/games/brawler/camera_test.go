package brawler

import (
	"testing"

	"github.com/vovakirdan/tui-brawler/internal/core"
)

type point struct{ x, y float64 }

func (p point) CenterX() float64 { return p.x }
func (p point) CenterY() float64 { return p.y }

func TestCameraClampsToLevel(t *testing.T) {
	c := NewCamera(800, 576, 0.1)
	c.SetLevelBounds(3200, 640)

	tests := []struct {
		name   string
		target point
		wantX  float64
		wantY  float64
	}{
		{"level start", point{100, 100}, 0, 0},
		{"middle", point{1600, 300}, 1200, 12},
		{"level end", point{3190, 630}, 2400, 64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c.SnapTo(tt.target)
			if c.X != tt.wantX || c.Y != tt.wantY {
				t.Errorf("camera = (%v,%v), want (%v,%v)", c.X, c.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestCameraSmallLevel(t *testing.T) {
	c := NewCamera(800, 576, 0.1)
	c.SetLevelBounds(320, 320)
	c.SnapTo(point{300, 300})
	if c.X != 0 || c.Y != 0 {
		t.Errorf("level smaller than the viewport should pin the camera at 0, got (%v,%v)", c.X, c.Y)
	}
}

func TestCameraSmoothing(t *testing.T) {
	c := NewCamera(800, 576, 0.1)
	c.SetLevelBounds(10000, 576)
	c.Follow(point{1400, 288})

	c.Update()
	if !near(c.X, 100) {
		t.Errorf("first step X = %v, want 100", c.X)
	}
	c.Update()
	if !near(c.X, 190) {
		t.Errorf("second step X = %v, want 190", c.X)
	}
}

func TestCameraVisibility(t *testing.T) {
	c := NewCamera(800, 576, 0.1)
	c.SetLevelBounds(3200, 576)

	tests := []struct {
		name   string
		r      core.Rect
		margin float64
		want   bool
	}{
		{"inside", core.Rect{X: 100, Y: 100, W: 32, H: 32}, 0, true},
		{"within default margin", core.Rect{X: 850, Y: 100, W: 32, H: 32}, 0, true},
		{"touching default margin edge", core.Rect{X: 864, Y: 100, W: 32, H: 32}, 0, false},
		{"beyond default margin", core.Rect{X: 900, Y: 100, W: 32, H: 32}, 0, false},
		{"within activation margin", core.Rect{X: 890, Y: 100, W: 32, H: 32}, 100, true},
		{"left of view", core.Rect{X: -100, Y: 100, W: 32, H: 32}, 0, false},
	}
	for _, tt := range tests {
		if got := c.IsVisible(tt.r, tt.margin); got != tt.want {
			t.Errorf("%s: IsVisible = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCameraOffsetRounds(t *testing.T) {
	c := NewCamera(800, 576, 0.1)
	c.X, c.Y = 10.6, 3.2
	x, y := c.Offset()
	if x != 11 || y != 3 {
		t.Errorf("offset = (%v,%v), want (11,3)", x, y)
	}
	vx, vy := c.WorldToView(111, 53)
	if vx != 100 || vy != 50 {
		t.Errorf("WorldToView = (%v,%v), want (100,50)", vx, vy)
	}
}
