package brawler

import (
	"math"

	"github.com/vovakirdan/tui-brawler/internal/core"
)

// TileSize is the edge length of one tile in world pixels.
const TileSize = 32

// TileID identifies a tile type.
type TileID int

// Tile ids as they appear in level data.
const (
	TileAir       TileID = 0
	TileGround    TileID = 1
	TileGroundTop TileID = 2
	TilePlatform  TileID = 3
	TileBrick     TileID = 4
	TileStone     TileID = 5
	TileSpike     TileID = 10
	TileBreakable TileID = 11
)

// Solid reports whether bodies collide with this tile type.
// Spikes and breakables are recognized but static and non-solid.
func (id TileID) Solid() bool {
	switch id {
	case TileGround, TileGroundTop, TilePlatform, TileBrick, TileStone:
		return true
	}
	return false
}

// Tile is one immutable cell of a TileMap.
type Tile struct {
	ID       TileID
	Col, Row int
}

// Solid reports whether the tile blocks movement.
func (t Tile) Solid() bool { return t.ID.Solid() }

// Rect returns the tile's pixel rectangle.
func (t Tile) Rect() core.Rect {
	return core.Rect{
		X: float64(t.Col * TileSize),
		Y: float64(t.Row * TileSize),
		W: TileSize,
		H: TileSize,
	}
}

// TileMap is a static grid of tiles, built once per level load.
type TileMap struct {
	tiles [][]TileID
	rows  int
	cols  int
}

// NewTileMap builds a tile map from raw ids. Ragged rows are padded with air
// to the width of the first row.
func NewTileMap(data [][]int) *TileMap {
	tm := &TileMap{rows: len(data)}
	if tm.rows > 0 {
		tm.cols = len(data[0])
	}
	tm.tiles = make([][]TileID, tm.rows)
	for r := range data {
		tm.tiles[r] = make([]TileID, tm.cols)
		for c := 0; c < tm.cols && c < len(data[r]); c++ {
			tm.tiles[r][c] = TileID(data[r][c])
		}
	}
	return tm
}

// Rows returns the grid height in tiles.
func (tm *TileMap) Rows() int { return tm.rows }

// Cols returns the grid width in tiles.
func (tm *TileMap) Cols() int { return tm.cols }

// WidthPx returns the map width in pixels.
func (tm *TileMap) WidthPx() float64 { return float64(tm.cols * TileSize) }

// HeightPx returns the map height in pixels.
func (tm *TileMap) HeightPx() float64 { return float64(tm.rows * TileSize) }

// TileAt returns the tile at a grid coordinate. Outside the grid it returns
// an air tile and false.
func (tm *TileMap) TileAt(col, row int) (Tile, bool) {
	if col < 0 || col >= tm.cols || row < 0 || row >= tm.rows {
		return Tile{ID: TileAir, Col: col, Row: row}, false
	}
	return Tile{ID: tm.tiles[row][col], Col: col, Row: row}, true
}

// TileAtPixel returns the tile containing a world pixel.
func (tm *TileMap) TileAtPixel(x, y float64) (Tile, bool) {
	return tm.TileAt(pixelToTile(x), pixelToTile(y))
}

// IsSolidAt reports whether the pixel lies inside a solid tile.
func (tm *TileMap) IsSolidAt(x, y float64) bool {
	t, ok := tm.TileAtPixel(x, y)
	return ok && t.Solid()
}

// SolidTilesNear appends to dst every solid tile in the grid range covered by
// r grown by margin tiles, and returns the extended slice. Pass dst[:0] of a
// reused buffer to avoid allocating.
func (tm *TileMap) SolidTilesNear(r core.Rect, margin int, dst []Tile) []Tile {
	startCol := max(0, pixelToTile(r.X)-margin)
	endCol := min(tm.cols-1, pixelToTile(r.X+r.W)+margin)
	startRow := max(0, pixelToTile(r.Y)-margin)
	endRow := min(tm.rows-1, pixelToTile(r.Y+r.H)+margin)

	for row := startRow; row <= endRow; row++ {
		for col := startCol; col <= endCol; col++ {
			if id := tm.tiles[row][col]; id.Solid() {
				dst = append(dst, Tile{ID: id, Col: col, Row: row})
			}
		}
	}
	return dst
}

func pixelToTile(v float64) int {
	return int(math.Floor(v / TileSize))
}
