package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(12, 4)

	if s.Width() != 12 || s.Height() != 4 {
		t.Fatalf("expected 12x4, got %dx%d", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			c := s.GetCell(x, y)
			if c.Rune != ' ' || c.Color != ColorDefault {
				t.Fatalf("expected blank cell at (%d, %d), got %+v", x, y, c)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 10)
	s.SetColored(3, 4, '@', ColorBrightMagenta)

	c := s.GetCell(3, 4)
	if c.Rune != '@' || c.Color != ColorBrightMagenta {
		t.Errorf("GetCell(3, 4) = %+v, expected '@' in bright magenta", c)
	}

	// Out of bounds writes are ignored and reads return a blank
	s.SetColored(-1, 0, 'X', ColorRed)
	s.SetColored(10, 10, 'X', ColorRed)
	if got := s.Get(-1, 0); got != ' ' {
		t.Errorf("out of bounds Get should return space, got %q", got)
	}
}

func TestScreenDrawTextClipsAndCenters(t *testing.T) {
	s := NewScreen(8, 3)
	s.DrawTextColored(5, 0, "HEALTH", ColorGreen)

	if got := s.Row(0); got != "     HEA" {
		t.Errorf("clipped row = %q", got)
	}
	if c := s.GetCell(5, 0); c.Color != ColorGreen {
		t.Errorf("expected green text, got %v", c.Color)
	}

	s.DrawTextCentered(2, "Hi")
	if s.Get(3, 2) != 'H' || s.Get(4, 2) != 'i' {
		t.Errorf("DrawTextCentered misplaced text: %q", s.Row(2))
	}

	// Multi-byte runes are centered by rune count, not byte count
	s.Clear()
	s.DrawTextCentered(1, "♥♥")
	if s.Get(3, 1) != '♥' || s.Get(4, 1) != '♥' {
		t.Errorf("DrawTextCentered with runes: %q", s.Row(1))
	}
}

func TestScreenDrawRectAndBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawRect(NewCellRect(2, 2, 3, 3), '#', ColorOrange)

	for y := 2; y < 5; y++ {
		for x := 2; x < 5; x++ {
			if c := s.GetCell(x, y); c.Rune != '#' || c.Color != ColorOrange {
				t.Errorf("DrawRect: expected orange '#' at (%d, %d), got %+v", x, y, c)
			}
		}
	}
	if s.Get(5, 5) != ' ' {
		t.Error("DrawRect should not affect outside area")
	}

	s.Clear()
	s.DrawBox(NewCellRect(1, 1, 5, 4))
	corners := map[[2]int]rune{{1, 1}: '┌', {5, 1}: '┐', {1, 4}: '└', {5, 4}: '┘'}
	for pos, want := range corners {
		if got := s.Get(pos[0], pos[1]); got != want {
			t.Errorf("corner at %v = %q, expected %q", pos, got, want)
		}
	}
	if s.Get(3, 1) != '─' || s.Get(1, 2) != '│' {
		t.Error("DrawBox edges missing")
	}
}

func TestScreenLines(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawHLine(2, 2, 5, '-')
	s.DrawVLine(8, 3, 4, '|')

	if got := s.Row(2); got != "  -----   " {
		t.Errorf("DrawHLine row = %q", got)
	}
	for y := 3; y < 7; y++ {
		if s.Get(8, y) != '|' {
			t.Errorf("DrawVLine: expected '|' at (8, %d)", y)
		}
	}
}

func TestScreenStringAndResize(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA")
	s.DrawText(0, 1, "BBBBB")
	s.DrawText(0, 2, "CCCCC")

	if got := s.String(); got != "AAAAA\nBBBBB\nCCCCC" {
		t.Errorf("String() = %q", got)
	}

	s.Resize(3, 2)
	if got := s.String(); got != "AAA\nBBB" {
		t.Errorf("after shrink String() = %q", got)
	}

	s.Resize(6, 3)
	if !strings.HasPrefix(s.Row(0), "AAA") {
		t.Errorf("content should survive enlarging, row 0 = %q", s.Row(0))
	}
	if s.Row(-1) != "      " {
		t.Errorf("out of bounds row should be blank, got %q", s.Row(-1))
	}
}
