package brawler

import "github.com/vovakirdan/tui-brawler/internal/levels"

// Checkpoint is a respawn point in world pixels.
type Checkpoint struct {
	X, Y      float64
	Activated bool
}

// Level is the runtime form of one level: its tile map and every spawn list
// converted to world pixels.
type Level struct {
	Index       int
	Name        string
	Title       string
	Theme       string
	Tiles       *TileMap
	SpawnX      float64
	SpawnY      float64
	Checkpoints []Checkpoint
	Exit        *Checkpoint
	Data        levels.Data
}

// NewLevel builds a Level from level data.
func NewLevel(index int, d levels.Data) *Level {
	l := &Level{
		Index:  index,
		Name:   d.Name,
		Title:  d.Title(),
		Theme:  d.Theme,
		Tiles:  NewTileMap(d.Tiles),
		SpawnX: float64(d.Spawn.X * TileSize),
		SpawnY: float64(d.Spawn.Y * TileSize),
		Data:   d,
	}
	if l.Theme == "" {
		l.Theme = "kitchen"
	}
	for _, cp := range d.Checkpoints {
		l.Checkpoints = append(l.Checkpoints, Checkpoint{
			X: float64(cp.X * TileSize),
			Y: float64(cp.Y * TileSize),
		})
	}
	if d.Exit != nil {
		l.Exit = &Checkpoint{X: float64(d.Exit.X * TileSize), Y: float64(d.Exit.Y * TileSize)}
	}
	return l
}

// WidthPx returns the level width in pixels.
func (l *Level) WidthPx() float64 { return l.Tiles.WidthPx() }

// HeightPx returns the level height in pixels.
func (l *Level) HeightPx() float64 { return l.Tiles.HeightPx() }

// LastCheckpoint returns the most recently activated checkpoint in level
// order, or false if none is active.
func (l *Level) LastCheckpoint() (Checkpoint, bool) {
	for i := len(l.Checkpoints) - 1; i >= 0; i-- {
		if l.Checkpoints[i].Activated {
			return l.Checkpoints[i], true
		}
	}
	return Checkpoint{}, false
}

// ItemPosition returns the world position of an item spawned at grid
// (col, row), moved up to the first air tile if the cell is solid.
func (l *Level) ItemPosition(col, row int) (float64, float64) {
	for row > 0 {
		t, ok := l.Tiles.TileAt(col, row)
		if !ok || t.ID == TileAir {
			break
		}
		row--
	}
	return float64(col * TileSize), float64(row * TileSize)
}
