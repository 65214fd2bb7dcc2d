package levels

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-brawler/internal/levels/formats"
)

const tinyLevel = `id: tiny
order: 1
name: Tiny
description: Test room
spawn: {x: 1, y: 1}
rows:
  - "....."
  - "..-.."
  - "====="
enemies:
  - {type: candy, x: 3, y: 1}
items:
  - {item: coin, x: 2, y: 2}
checkpoints:
  - {x: 2, y: 1}
exit: {x: 4, y: 1}
`

func TestEmbeddedCampaign(t *testing.T) {
	set, err := Embedded()
	if err != nil {
		t.Fatalf("Embedded: %v", err)
	}
	if set.Count() != 4 {
		t.Fatalf("expected 4 levels, got %d", set.Count())
	}

	wantIDs := []string{"kitchen", "fastfood", "factory", "gym"}
	for i, id := range wantIDs {
		if set[i].ID != id {
			t.Errorf("level %d: expected %q, got %q", i, id, set[i].ID)
		}
		if set[i].Rows() == 0 || set[i].Cols() == 0 {
			t.Errorf("level %q has an empty grid", id)
		}
	}

	if set[0].Title() != "The Kitchen - Where it all begins" {
		t.Errorf("unexpected title %q", set[0].Title())
	}

	for i, d := range set {
		last := i == len(set)-1
		if (d.Boss != nil) != last {
			t.Errorf("level %q: boss presence = %v", d.ID, d.Boss != nil)
		}
		if !last && d.Exit == nil {
			t.Errorf("level %q has no exit", d.ID)
		}
	}
}

func TestSetLevelOutOfRange(t *testing.T) {
	set := Set{{ID: "a"}}
	if _, err := set.Level(1); !errors.Is(err, ErrNoLevel) {
		t.Errorf("expected ErrNoLevel, got %v", err)
	}
	if _, err := set.Level(-1); !errors.Is(err, ErrNoLevel) {
		t.Errorf("expected ErrNoLevel, got %v", err)
	}
	if set.IndexOf("a") != 0 || set.IndexOf("b") != -1 {
		t.Error("IndexOf mismatch")
	}
}

func TestParseRows(t *testing.T) {
	d, err := Parse([]byte(tinyLevel))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if d.Rows() != 3 || d.Cols() != 5 {
		t.Fatalf("expected 3x5 grid, got %dx%d", d.Rows(), d.Cols())
	}
	if d.Tiles[1][2] != formats.TilePlatform {
		t.Errorf("expected platform at (2,1), got %d", d.Tiles[1][2])
	}
	if d.Tiles[2][0] != formats.TileGroundTop {
		t.Errorf("expected ground top at (0,2), got %d", d.Tiles[2][0])
	}
	if d.Theme != "kitchen" {
		t.Errorf("expected default theme, got %q", d.Theme)
	}
	if d.Exit == nil || *d.Exit != (Point{X: 4, Y: 1}) {
		t.Errorf("unexpected exit %+v", d.Exit)
	}
	if len(d.Enemies) != 1 || d.Enemies[0].Type != "candy" {
		t.Errorf("unexpected enemies %+v", d.Enemies)
	}
}

func TestParseRejectsBadGrids(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"empty", "id: x\nname: X\n", formats.ErrNoTiles},
		{"ragged", "id: x\ntiles:\n  - [0, 0]\n  - [1]\n", formats.ErrRaggedTiles},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.doc)); !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestLoaderLoadAll(t *testing.T) {
	dir := t.TempDir()
	second := "id: b\norder: 2\nname: B\ntiles:\n  - [0, 0]\n  - [1, 1]\n"
	writeFile(t, filepath.Join(dir, "b.yaml"), second)
	writeFile(t, filepath.Join(dir, "a.yml"), tinyLevel)
	writeFile(t, filepath.Join(dir, "broken.yaml"), "tiles: [")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	set, err := NewLoader(dir).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if set.Count() != 2 {
		t.Fatalf("expected 2 levels, got %d", set.Count())
	}
	if set[0].ID != "tiny" || set[1].ID != "b" {
		t.Errorf("unexpected order: %q, %q", set[0].ID, set[1].ID)
	}
	if set[0].FilePath == "" {
		t.Error("FilePath not recorded")
	}

	if _, err := NewLoader(dir).LoadByID("missing"); !errors.Is(err, ErrNoLevel) {
		t.Errorf("expected ErrNoLevel, got %v", err)
	}
}

func TestLoadFileDefaultsID(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "room.yaml")
	writeFile(t, p, "name: Room\ntiles:\n  - [0]\n")

	d, err := NewLoader(dir).LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if d.ID != "room" {
		t.Errorf("expected ID from file name, got %q", d.ID)
	}
}

func TestWatcherReportsLevelChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	writeFile(t, filepath.Join(dir, "ignored.txt"), "x")
	writeFile(t, filepath.Join(dir, "level.yaml"), tinyLevel)

	select {
	case name := <-w.Events:
		if filepath.Base(name) != "level.yaml" {
			t.Errorf("unexpected event for %q", name)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no event for level file")
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	for range w.Events {
	}
}

func writeFile(t *testing.T, p, content string) {
	t.Helper()
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
