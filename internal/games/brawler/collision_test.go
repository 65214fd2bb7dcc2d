package brawler

import (
	"testing"

	"github.com/vovakirdan/tui-brawler/internal/core"
)

// groundGrid returns a rows x cols grid whose last two rows are solid ground,
// except for the listed gap columns.
func groundGrid(rows, cols int, gaps ...int) [][]int {
	isGap := make(map[int]bool, len(gaps))
	for _, c := range gaps {
		isGap[c] = true
	}
	grid := make([][]int, rows)
	for r := range grid {
		grid[r] = make([]int, cols)
		if r < rows-2 {
			continue
		}
		for c := range grid[r] {
			if !isGap[c] {
				grid[r][c] = int(TileGround)
			}
		}
	}
	return grid
}

func TestTileAtOutOfRange(t *testing.T) {
	tm := NewTileMap([][]int{{1, 0}, {0, 1}})

	tests := []struct {
		col, row int
		wantOK   bool
		wantID   TileID
	}{
		{0, 0, true, TileGround},
		{1, 0, true, TileAir},
		{1, 1, true, TileGround},
		{-1, 0, false, TileAir},
		{2, 0, false, TileAir},
		{0, 5, false, TileAir},
	}
	for _, tt := range tests {
		tile, ok := tm.TileAt(tt.col, tt.row)
		if ok != tt.wantOK || tile.ID != tt.wantID {
			t.Errorf("TileAt(%d,%d) = %v,%v, want %v,%v", tt.col, tt.row, tile.ID, ok, tt.wantID, tt.wantOK)
		}
	}

	if tm.IsSolidAt(-5, -5) {
		t.Error("pixels outside the grid must not be solid")
	}
	if !tm.IsSolidAt(31.9, 0) {
		t.Error("expected (31.9, 0) to be inside the solid tile")
	}
	if tm.IsSolidAt(32, 0) {
		t.Error("expected (32, 0) to be in the air tile")
	}
}

func TestNewTileMapPadsRaggedRows(t *testing.T) {
	tm := NewTileMap([][]int{{0, 0, 0}, {1}})
	if tm.Cols() != 3 || tm.Rows() != 2 {
		t.Fatalf("size = %dx%d, want 3x2", tm.Cols(), tm.Rows())
	}
	if tile, _ := tm.TileAt(2, 1); tile.ID != TileAir {
		t.Errorf("padded cell = %v, want air", tile.ID)
	}
}

func TestSpikesAndBreakablesAreNotSolid(t *testing.T) {
	for _, id := range []TileID{TileAir, TileSpike, TileBreakable} {
		if id.Solid() {
			t.Errorf("tile %d should not be solid", id)
		}
	}
	for _, id := range []TileID{TileGround, TileGroundTop, TilePlatform, TileBrick, TileStone} {
		if !id.Solid() {
			t.Errorf("tile %d should be solid", id)
		}
	}
}

func TestCollisionLanding(t *testing.T) {
	tm := NewTileMap([][]int{
		{0, 0, 0},
		{0, 0, 0},
		{1, 1, 1},
	})
	b := &Body{X: 40, Y: 44, W: 16, H: 16, VY: 8}

	ResolveTileCollision(b, tm)

	if b.Y != 48 {
		t.Errorf("expected body to rest on the tile at y=48, got %v", b.Y)
	}
	if b.VY != 0 {
		t.Errorf("expected VY zeroed on landing, got %v", b.VY)
	}
	if !b.Grounded {
		t.Error("expected Grounded after landing")
	}
}

func TestCollisionIsIdempotentAtRest(t *testing.T) {
	tm := NewTileMap([][]int{
		{0, 0, 0},
		{0, 0, 0},
		{1, 1, 1},
	})
	b := &Body{X: 40, Y: 48, W: 16, H: 16}
	want := *b

	for i := 0; i < 3; i++ {
		ResolveTileCollision(b, tm)
	}
	if *b != want {
		t.Errorf("resting body moved: got %+v, want %+v", *b, want)
	}
}

func TestCollisionWalls(t *testing.T) {
	tm := NewTileMap([][]int{
		{0, 0, 1},
		{0, 0, 1},
		{1, 1, 1},
	})

	b := &Body{X: 44, Y: 10, W: 16, H: 16, VX: 6}
	ResolveTileCollision(b, tm)
	if b.X != 48 || b.VX != 0 {
		t.Errorf("moving right: X=%v VX=%v, want X=48 VX=0", b.X, b.VX)
	}

	b = &Body{X: 2, Y: 10, W: 16, H: 16, VX: -6}
	ResolveTileCollision(b, tm)
	if b.X != -4 {
		t.Errorf("nothing to the left, X=%v, want -4", b.X)
	}
}

func TestCollisionCeiling(t *testing.T) {
	tm := NewTileMap([][]int{
		{1, 1, 1},
		{0, 0, 0},
		{0, 0, 0},
	})
	b := &Body{X: 40, Y: 36, W: 16, H: 16, VY: -8}
	ResolveTileCollision(b, tm)
	if b.Y != 32 || b.VY != 0 {
		t.Errorf("ceiling hit: Y=%v VY=%v, want Y=32 VY=0", b.Y, b.VY)
	}
	if b.Grounded {
		t.Error("hitting a ceiling must not ground the body")
	}
}

func TestSolidTilesNearReusesBuffer(t *testing.T) {
	tm := NewTileMap(groundGrid(4, 6))
	buf := make([]Tile, 0, 32)
	out := tm.SolidTilesNear(core.Rect{X: 40, Y: 40, W: 16, H: 16}, 1, buf[:0])
	if len(out) == 0 {
		t.Fatal("expected solid tiles near the ground")
	}
	if &out[0] != &buf[:1][0] {
		t.Error("expected results appended into the given buffer")
	}
	for _, tile := range out {
		if !tile.Solid() {
			t.Errorf("non-solid tile %+v returned", tile)
		}
	}
}
