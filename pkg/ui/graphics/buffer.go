package graphics

import "github.com/odvcencio/cellkit/pkg/ui/backend"

// Cell is a single character cell. Tail marks the right half of a wide rune;
// it is never written to the output device on its own.
type Cell struct {
	Rune  rune
	Style backend.Style
	Tail  bool
}

// BlankCell is a space in the default style.
func BlankCell() Cell {
	return Cell{Rune: ' ', Style: backend.DefaultStyle()}
}

// Buffer is a 2D grid of cells.
type Buffer struct {
	cells  []Cell
	width  int
	height int
}

// NewBuffer creates a blank buffer with the given dimensions.
func NewBuffer(w, h int) *Buffer {
	b := &Buffer{}
	b.Resize(w, h)
	return b
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() (w, h int) {
	return b.width, b.height
}

// Bounds returns the buffer area as a rect at the origin.
func (b *Buffer) Bounds() Rect {
	return Rect{Width: b.width, Height: b.height}
}

// Resize reallocates the buffer and blanks every cell.
func (b *Buffer) Resize(w, h int) {
	w, h = max(0, w), max(0, h)
	b.width, b.height = w, h
	b.cells = make([]Cell, w*h)
	b.Reset(BlankCell())
}

// Reset fills every cell with c.
func (b *Buffer) Reset(c Cell) {
	for i := range b.cells {
		b.cells[i] = c
	}
}

// Get returns the cell at (x, y), or a blank cell if out of bounds.
func (b *Buffer) Get(x, y int) Cell {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return BlankCell()
	}
	return b.cells[y*b.width+x]
}

// SetCell stores c at (x, y). No-op if out of bounds.
func (b *Buffer) SetCell(x, y int, c Cell) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	b.cells[y*b.width+x] = c
}

// Set writes a rune with style at (x, y).
func (b *Buffer) Set(x, y int, r rune, s backend.Style) {
	b.SetCell(x, y, Cell{Rune: r, Style: s})
}

// Fill fills a rectangular region, clipped to the buffer.
func (b *Buffer) Fill(r Rect, ch rune, s backend.Style) {
	r = r.Intersection(b.Bounds())
	cell := Cell{Rune: ch, Style: s}
	for y := r.Y; y < r.Y+r.Height; y++ {
		row := y * b.width
		for x := r.X; x < r.X+r.Width; x++ {
			b.cells[row+x] = cell
		}
	}
}
