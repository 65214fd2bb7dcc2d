package brawler

// ResolveTileCollision moves b by its velocity and resolves it against the
// solid tiles of tm, one axis at a time: X first, then Y.
//
// Grounded is only ever set to true here. Callers that need edge-triggered
// ground detection reset it before calling.
func ResolveTileCollision(b *Body, tm *TileMap) {
	resolveTileCollision(b, tm, nil)
}

// resolveTileCollision is ResolveTileCollision with a caller-owned scratch
// buffer for the tile query.
func resolveTileCollision(b *Body, tm *TileMap, buf []Tile) []Tile {
	b.X += b.VX

	buf = tm.SolidTilesNear(b.Bounds(), 1, buf[:0])
	for _, t := range buf {
		tr := t.Rect()
		if !b.Bounds().Overlaps(tr) {
			continue
		}
		if b.VX > 0 {
			b.X = tr.X - b.W
		} else if b.VX < 0 {
			b.X = tr.Right()
		}
		b.VX = 0
	}

	b.Y += b.VY

	buf = tm.SolidTilesNear(b.Bounds(), 1, buf[:0])
	for _, t := range buf {
		tr := t.Rect()
		if !b.Bounds().Overlaps(tr) {
			continue
		}
		if b.VY > 0 {
			b.Y = tr.Y - b.H
			b.VY = 0
			b.Grounded = true
		} else if b.VY < 0 {
			b.Y = tr.Bottom()
			b.VY = 0
		}
	}
	return buf
}
