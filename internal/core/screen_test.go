package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	// Check that it's initialized with spaces
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Errorf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(4, 2)
	c := RGBA{R: 1, A: 1}

	s.SetColored(1, 1, '█', c)
	cell := s.GetCell(1, 1)
	if cell.Rune != '█' || cell.Color != c {
		t.Errorf("GetCell(1, 1) = %+v, expected █ with %+v", cell, c)
	}

	s.Clear()
	if got := s.GetCell(1, 1); got.Rune != ' ' || !got.Color.Transparent() {
		t.Errorf("Clear should reset color, got %+v", got)
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)

	s.DrawText(2, 1, "Hello")
	if s.Row(1) != "  Hello             " {
		t.Errorf("Row(1) = %q, expected '  Hello             '", s.Row(1))
	}

	// Text clipping at edge
	s.DrawText(17, 2, "World")
	if s.Row(2) != "                 Wor" {
		t.Errorf("Row(2) = %q, expected clipped text", s.Row(2))
	}
}

func TestScreenDrawTextCenteredMultibyte(t *testing.T) {
	s := NewScreen(9, 1)

	s.DrawTextCentered(0, "▲▲▲")
	if s.Row(0) != "   ▲▲▲   " {
		t.Errorf("Row(0) = %q, expected centered by rune count", s.Row(0))
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(5, 4)
	s.DrawBox(NewRect(0, 0, 5, 4))

	expected := []string{
		"┌───┐",
		"│   │",
		"│   │",
		"└───┘",
	}
	for y, want := range expected {
		if got := s.Row(y); got != want {
			t.Errorf("Row(%d) = %q, expected %q", y, got, want)
		}
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.Set(2, 2, 'X')
	s.Set(8, 8, 'Y')

	s.Resize(5, 5)
	if s.Width() != 5 || s.Height() != 5 {
		t.Fatalf("Resize failed: got %dx%d", s.Width(), s.Height())
	}
	if s.Get(2, 2) != 'X' {
		t.Error("Resize should preserve content in range")
	}

	s.Resize(10, 10)
	if s.Get(8, 8) != ' ' {
		t.Error("Content outside the shrunk area should be lost")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.Set(0, 0, 'A')
	s.Set(2, 1, 'B')

	lines := strings.Split(s.String(), "\n")
	if len(lines) != 2 {
		t.Fatalf("String() should have 2 lines, got %d", len(lines))
	}
	if lines[0] != "A  " || lines[1] != "  B" {
		t.Errorf("String() = %q", s.String())
	}
}
