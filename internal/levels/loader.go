// Package levels provides the level data the brawler consumes: tile grids,
// spawn points and spawn lists. Levels ship embedded and can also be loaded
// from a directory of YAML files.
// This package does not depend on the game; the game depends on it.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-brawler/internal/levels/formats"
)

//go:embed data/*.yaml
var embedded embed.FS

// ErrNoLevel is returned when a level index or ID does not exist.
var ErrNoLevel = errors.New("levels: no such level")

// Point is a grid coordinate.
type Point struct {
	X, Y int
}

// EnemySpawn places one enemy (or the boss) on the grid.
type EnemySpawn struct {
	Type string
	X, Y int
}

// ItemSpawn places one collectible on the grid.
type ItemSpawn struct {
	Item string
	X, Y int
}

// Data is one level as the game consumes it.
type Data struct {
	ID          string
	Order       int
	Name        string
	Description string
	Theme       string
	Tiles       [][]int
	Spawn       Point
	Enemies     []EnemySpawn
	Items       []ItemSpawn
	Checkpoints []Point
	Exit        *Point
	Boss        *EnemySpawn
	FilePath    string
}

// Title returns "Name - Description", or just the name.
func (d Data) Title() string {
	if d.Description == "" {
		return d.Name
	}
	return d.Name + " - " + d.Description
}

// Rows returns the grid height.
func (d Data) Rows() int { return len(d.Tiles) }

// Cols returns the grid width.
func (d Data) Cols() int {
	if len(d.Tiles) == 0 {
		return 0
	}
	return len(d.Tiles[0])
}

// Provider supplies levels by index.
type Provider interface {
	Count() int
	Level(i int) (Data, error)
}

// Set is an ordered, in-memory Provider.
type Set []Data

// Count returns the number of levels.
func (s Set) Count() int { return len(s) }

// Level returns the level at index i.
func (s Set) Level(i int) (Data, error) {
	if i < 0 || i >= len(s) {
		return Data{}, fmt.Errorf("%w: index %d", ErrNoLevel, i)
	}
	return s[i], nil
}

// IndexOf returns the index of the level with the given ID, or -1.
func (s Set) IndexOf(id string) int {
	for i, d := range s {
		if d.ID == id {
			return i
		}
	}
	return -1
}

// Embedded returns the built-in campaign.
func Embedded() (Set, error) {
	entries, err := fs.ReadDir(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("levels: reading embedded data: %w", err)
	}

	var set Set
	for _, e := range entries {
		if e.IsDir() || !isSupportedExtension(strings.ToLower(path.Ext(e.Name()))) {
			continue
		}
		p := path.Join("data", e.Name())
		raw, err := embedded.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("levels: reading %s: %w", p, err)
		}
		d, err := Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("levels: parsing %s: %w", p, err)
		}
		d.FilePath = p
		set = append(set, d)
	}
	sortSet(set)
	return set, nil
}

// MustEmbedded is Embedded for callers that cannot recover from broken
// built-in data.
func MustEmbedded() Set {
	set, err := Embedded()
	if err != nil {
		panic(err)
	}
	return set
}

// Parse converts one YAML document into Data.
func Parse(raw []byte) (Data, error) {
	yl, err := formats.ParseYAML(raw)
	if err != nil {
		return Data{}, err
	}

	d := Data{
		ID:          yl.ID,
		Order:       yl.Order,
		Name:        yl.Name,
		Description: yl.Description,
		Theme:       yl.Theme,
		Tiles:       yl.Tiles,
		Spawn:       Point{X: yl.Spawn.X, Y: yl.Spawn.Y},
	}
	if d.Theme == "" {
		d.Theme = "kitchen"
	}
	for _, e := range yl.Enemies {
		d.Enemies = append(d.Enemies, EnemySpawn{Type: e.Type, X: e.X, Y: e.Y})
	}
	for _, it := range yl.Items {
		d.Items = append(d.Items, ItemSpawn{Item: it.Item, X: it.X, Y: it.Y})
	}
	for _, cp := range yl.Checkpoints {
		d.Checkpoints = append(d.Checkpoints, Point{X: cp.X, Y: cp.Y})
	}
	if yl.Exit != nil {
		d.Exit = &Point{X: yl.Exit.X, Y: yl.Exit.Y}
	}
	if yl.Boss != nil {
		d.Boss = &EnemySpawn{Type: yl.Boss.Type, X: yl.Boss.X, Y: yl.Boss.Y}
	}
	return d, nil
}

// Loader handles loading levels from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all level files.
// Invalid files are skipped. Levels are ordered by Order, then ID.
func (l *Loader) LoadAll() (Set, error) {
	var set Set

	err := filepath.WalkDir(l.Root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !isSupportedExtension(strings.ToLower(filepath.Ext(p))) {
			return nil
		}

		lvl, err := l.LoadFile(p)
		if err != nil {
			// Skip invalid files
			return nil
		}
		set = append(set, lvl)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking directory %s: %w", l.Root, err)
	}

	sortSet(set)
	return set, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(p string) (Data, error) {
	raw, err := os.ReadFile(p)
	if err != nil {
		return Data{}, fmt.Errorf("levels: reading file %s: %w", p, err)
	}
	d, err := Parse(raw)
	if err != nil {
		return Data{}, fmt.Errorf("levels: parsing file %s: %w", p, err)
	}
	if d.ID == "" {
		d.ID = strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
	}
	d.FilePath = p
	return d, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Data, error) {
	set, err := l.LoadAll()
	if err != nil {
		return Data{}, err
	}
	if i := set.IndexOf(id); i >= 0 {
		return set[i], nil
	}
	return Data{}, fmt.Errorf("%w: %s", ErrNoLevel, id)
}

func sortSet(set Set) {
	sort.SliceStable(set, func(i, j int) bool {
		if set[i].Order != set[j].Order {
			return set[i].Order < set[j].Order
		}
		return set[i].ID < set[j].ID
	})
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
