package core

import "strconv"

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorPink
	ColorTan
	ColorGold
	ColorPurple
	ColorBrown
	ColorDarkGray
)

// palette holds approximate RGB values used to map hex colors from config
// onto the terminal palette.
var palette = []struct {
	c       Color
	r, g, b int
}{
	{ColorRed, 205, 0, 0},
	{ColorGreen, 0, 205, 0},
	{ColorYellow, 205, 205, 0},
	{ColorBlue, 0, 0, 238},
	{ColorMagenta, 205, 0, 205},
	{ColorCyan, 0, 205, 205},
	{ColorWhite, 229, 229, 229},
	{ColorBrightRed, 255, 68, 68},
	{ColorBrightGreen, 68, 255, 68},
	{ColorBrightYellow, 255, 255, 0},
	{ColorBrightBlue, 92, 92, 255},
	{ColorBrightMagenta, 255, 0, 255},
	{ColorBrightCyan, 0, 255, 255},
	{ColorBrightWhite, 255, 255, 255},
	{ColorOrange, 255, 165, 0},
	{ColorGray, 138, 138, 138},
	{ColorPink, 255, 105, 180},
	{ColorTan, 222, 184, 135},
	{ColorGold, 255, 215, 0},
	{ColorPurple, 123, 79, 191},
	{ColorBrown, 139, 90, 43},
	{ColorDarkGray, 68, 68, 68},
}

// RGB returns the approximate RGB value of c. ColorDefault has none.
func (c Color) RGB() (r, g, b uint8, ok bool) {
	for _, p := range palette {
		if p.c == c {
			return uint8(p.r), uint8(p.g), uint8(p.b), true
		}
	}
	return 0, 0, 0, false
}

// ParseHex parses "#rrggbb" or "#rgb" into its components.
func ParseHex(hex string) (r, g, b uint8, ok bool) {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}

// NearestColor maps a hex color string to the closest palette entry.
// Unparseable input yields ColorDefault.
func NearestColor(hex string) Color {
	r, g, b, ok := ParseHex(hex)
	if !ok {
		return ColorDefault
	}
	best := ColorDefault
	bestDist := -1
	for _, p := range palette {
		dr, dg, db := int(r)-p.r, int(g)-p.g, int(b)-p.b
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			best = p.c
			bestDist = d
		}
	}
	return best
}
