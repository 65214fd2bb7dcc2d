// Package formats provides level file format parsers.
package formats

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Tile ids as stored in level data.
const (
	TileAir       = 0
	TileGround    = 1
	TileGroundTop = 2
	TilePlatform  = 3
	TileBrick     = 4
	TileStone     = 5
	TileSpike     = 10
	TileBreakable = 11
)

// Legend maps the characters used in "rows" to tile ids.
var Legend = map[rune]int{
	'.': TileAir,
	' ': TileAir,
	'#': TileGround,
	'=': TileGroundTop,
	'-': TilePlatform,
	'B': TileBrick,
	'S': TileStone,
	'^': TileSpike,
	'%': TileBreakable,
}

// YAMLLevel represents the YAML structure for a level file.
// Tiles may be given either as an integer grid ("tiles") or as legend
// strings ("rows"); "tiles" wins when both are present.
type YAMLLevel struct {
	ID          string            `yaml:"id"`
	Order       int               `yaml:"order"`
	Name        string            `yaml:"name"`
	Description string            `yaml:"description,omitempty"`
	Theme       string            `yaml:"theme,omitempty"`
	Spawn       YAMLPoint         `yaml:"spawn"`
	Tiles       [][]int           `yaml:"tiles,omitempty"`
	Rows        []string          `yaml:"rows,omitempty"`
	Enemies     []YAMLEnemy       `yaml:"enemies,omitempty"`
	Items       []YAMLItem        `yaml:"items,omitempty"`
	Checkpoints []YAMLPoint       `yaml:"checkpoints,omitempty"`
	Exit        *YAMLPoint        `yaml:"exit,omitempty"`
	Boss        *YAMLEnemy        `yaml:"boss,omitempty"`
	Metadata    map[string]string `yaml:"metadata,omitempty"`
}

// YAMLPoint is a grid coordinate.
type YAMLPoint struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// YAMLEnemy is an enemy or boss spawn.
type YAMLEnemy struct {
	Type string `yaml:"type"`
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
}

// YAMLItem is a collectible spawn.
type YAMLItem struct {
	Item string `yaml:"item"`
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
}

// Parse errors.
var (
	ErrNoTiles     = errors.New("level has no tiles")
	ErrRaggedTiles = errors.New("level rows differ in length")
)

// ParseYAML parses a YAML level file and normalizes its tile grid.
func ParseYAML(data []byte) (YAMLLevel, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return YAMLLevel{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	if len(yl.Tiles) == 0 && len(yl.Rows) > 0 {
		yl.Tiles = DecodeRows(yl.Rows)
	}
	yl.Rows = nil

	if len(yl.Tiles) == 0 || len(yl.Tiles[0]) == 0 {
		return YAMLLevel{}, ErrNoTiles
	}
	cols := len(yl.Tiles[0])
	for i, row := range yl.Tiles {
		if len(row) != cols {
			return YAMLLevel{}, fmt.Errorf("row %d: %w", i, ErrRaggedTiles)
		}
	}
	return yl, nil
}

// DecodeRows converts legend strings into a tile grid.
// Unknown characters are treated as air.
func DecodeRows(rows []string) [][]int {
	grid := make([][]int, len(rows))
	for r, line := range rows {
		runes := []rune(line)
		grid[r] = make([]int, len(runes))
		for c, ch := range runes {
			grid[r][c] = Legend[ch]
		}
	}
	return grid
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
