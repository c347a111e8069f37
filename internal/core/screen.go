package core

import "strings"

// Color is a foreground color for a screen cell. The platform maps each
// value to a terminal color.
type Color uint8

// Palette used by the game renderer.
const (
	ColorDefault Color = iota
	ColorWhite
	ColorGreen
	ColorBrightGreen
	ColorYellow
	ColorBrightYellow
	ColorOrange
)

// Cell is a single character position on the screen.
type Cell struct {
	Rune  rune
	Color Color
}

// blank is the value every cell holds after Clear.
var blank = Cell{Rune: ' ', Color: ColorDefault}

// Screen is a row-major character buffer in terminal cells (y grows down).
// Games draw into it without knowing about the terminal; every write is
// clipped to the buffer.
type Screen struct {
	width  int
	height int
	cells  []Cell
}

// NewScreen creates a cleared screen buffer. Negative sizes are treated as zero.
func NewScreen(width, height int) *Screen {
	s := &Screen{}
	s.Resize(width, height)
	return s
}

// Width returns the screen width in cells.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in cells.
func (s *Screen) Height() int {
	return s.height
}

// Resize changes the screen dimensions and clears it.
// Games redraw the whole frame every tick, so nothing is preserved.
func (s *Screen) Resize(width, height int) {
	s.width = Max(width, 0)
	s.height = Max(height, 0)
	n := s.width * s.height
	if cap(s.cells) >= n {
		s.cells = s.cells[:n]
	} else {
		s.cells = make([]Cell, n)
	}
	s.Clear()
}

// Clear fills the entire screen with uncolored spaces.
func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = blank
	}
}

func (s *Screen) inside(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// Set places a colored rune at (x, y).
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune, c Color) {
	if !s.inside(x, y) {
		return
	}
	s.cells[y*s.width+x] = Cell{Rune: r, Color: c}
}

// Cell returns the cell at (x, y), or a blank cell outside the screen.
func (s *Screen) Cell(x, y int) Cell {
	if !s.inside(x, y) {
		return blank
	}
	return s.cells[y*s.width+x]
}

// Rune returns the rune at (x, y), or a space outside the screen.
func (s *Screen) Rune(x, y int) rune {
	return s.Cell(x, y).Rune
}

// Text writes a string horizontally starting at (x, y), clipped to the screen.
func (s *Screen) Text(x, y int, text string, c Color) {
	i := 0
	for _, r := range text {
		s.Set(x+i, y, r, c)
		i++
	}
}

// TextCentered writes a string centered within the columns of r.
func (s *Screen) TextCentered(r Rect, y int, text string, c Color) {
	s.Text(r.X+(r.W-len([]rune(text)))/2, y, text, c)
}

// FillRect fills a rectangular area with the given rune.
func (s *Screen) FillRect(r Rect, fill rune, c Color) {
	x0, x1 := Max(r.X, 0), Min(r.Right(), s.width)
	y0, y1 := Max(r.Y, 0), Min(r.Bottom(), s.height)
	for y := y0; y < y1; y++ {
		row := s.cells[y*s.width : (y+1)*s.width]
		for x := x0; x < x1; x++ {
			row[x] = Cell{Rune: fill, Color: c}
		}
	}
}

// Frame draws a box outline along the edges of r.
func (s *Screen) Frame(r Rect, c Color) {
	if r.W < 2 || r.H < 2 {
		return
	}
	right, bottom := r.Right()-1, r.Bottom()-1

	s.Set(r.X, r.Y, '┌', c)
	s.Set(right, r.Y, '┐', c)
	s.Set(r.X, bottom, '└', c)
	s.Set(right, bottom, '┘', c)

	for x := r.X + 1; x < right; x++ {
		s.Set(x, r.Y, '─', c)
		s.Set(x, bottom, '─', c)
	}
	for y := r.Y + 1; y < bottom; y++ {
		s.Set(r.X, y, '│', c)
		s.Set(right, y, '│', c)
	}
}

// Row returns the runes of row y as a string.
// Rows outside the screen read as blank.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.cells[y*s.width : (y+1)*s.width] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}

// String returns the screen as plain text, rows joined with newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)
	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(s.Row(y))
	}
	return sb.String()
}
