package graphics

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/cellkit/pkg/ui/backend"
)

// Surface is a drawing handle over a Buffer. Coordinates passed to its
// methods are local to the surface origin; every write is clipped to the
// surface clip, which is held in absolute buffer coordinates.
type Surface struct {
	buf    *Buffer
	origin Point
	clip   Rect
}

// NewSurface returns a surface covering the whole buffer.
func NewSurface(buf *Buffer) *Surface {
	return &Surface{buf: buf, clip: buf.Bounds()}
}

// Sub returns a surface for a child area given in local coordinates.
// The child's origin is the area's top-left corner and its clip is the
// intersection of this clip with the area, so it can never widen.
func (s *Surface) Sub(area Rect) *Surface {
	abs := area.Translate(s.origin.X, s.origin.Y)
	return &Surface{
		buf:    s.buf,
		origin: abs.Origin(),
		clip:   s.clip.Intersection(abs),
	}
}

// WithClip narrows the clip to r (local coordinates) without moving the origin.
func (s *Surface) WithClip(r Rect) *Surface {
	abs := r.Translate(s.origin.X, s.origin.Y)
	return &Surface{
		buf:    s.buf,
		origin: s.origin,
		clip:   s.clip.Intersection(abs),
	}
}

// Clip returns the writable area in local coordinates.
func (s *Surface) Clip() Rect {
	return s.clip.Translate(-s.origin.X, -s.origin.Y)
}

// AbsoluteClip returns the writable area in buffer coordinates.
func (s *Surface) AbsoluteClip() Rect {
	return s.clip
}

// Origin returns the absolute position of local (0, 0).
func (s *Surface) Origin() Point {
	return s.origin
}

func (s *Surface) writable(ax, ay int) bool {
	return s.clip.Contains(ax, ay)
}

// Set writes a single-width rune at (x, y).
func (s *Surface) Set(x, y int, r rune, style backend.Style) {
	ax, ay := s.origin.X+x, s.origin.Y+y
	if !s.writable(ax, ay) {
		return
	}
	s.buf.SetCell(ax, ay, Cell{Rune: r, Style: style})
}

// DrawString writes str starting at (x, y) and returns the number of cells
// advanced. Wide runes take two cells; one that would straddle the clip edge
// is drawn as a space.
func (s *Surface) DrawString(x, y int, str string, style backend.Style) int {
	col := x
	for _, r := range str {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		ax, ay := s.origin.X+col, s.origin.Y+y
		if w == 2 {
			head, tail := s.writable(ax, ay), s.writable(ax+1, ay)
			switch {
			case head && tail:
				s.buf.SetCell(ax, ay, Cell{Rune: r, Style: style})
				s.buf.SetCell(ax+1, ay, Cell{Rune: ' ', Style: style, Tail: true})
			case head:
				s.buf.SetCell(ax, ay, Cell{Rune: ' ', Style: style})
			case tail:
				s.buf.SetCell(ax+1, ay, Cell{Rune: ' ', Style: style})
			}
		} else if s.writable(ax, ay) {
			s.buf.SetCell(ax, ay, Cell{Rune: r, Style: style})
		}
		col += w
	}
	return col - x
}

// Fill fills a local rect, clipped.
func (s *Surface) Fill(r Rect, ch rune, style backend.Style) {
	abs := r.Translate(s.origin.X, s.origin.Y).Intersection(s.clip)
	s.buf.Fill(abs, ch, style)
}

// Clear fills the whole clip with spaces in style.
func (s *Surface) Clear(style backend.Style) {
	s.buf.Fill(s.clip, ' ', style)
}

// DrawBox draws a single-line border around a local rect.
func (s *Surface) DrawBox(r Rect, style backend.Style) {
	if r.Width < 2 || r.Height < 2 {
		return
	}
	right, bottom := r.X+r.Width-1, r.Y+r.Height-1

	s.Set(r.X, r.Y, '┌', style)
	s.Set(right, r.Y, '┐', style)
	s.Set(r.X, bottom, '└', style)
	s.Set(right, bottom, '┘', style)
	for x := r.X + 1; x < right; x++ {
		s.Set(x, r.Y, '─', style)
		s.Set(x, bottom, '─', style)
	}
	for y := r.Y + 1; y < bottom; y++ {
		s.Set(r.X, y, '│', style)
		s.Set(right, y, '│', style)
	}
}

// StringWidth returns the display width of str in cells.
func StringWidth(str string) int {
	return runewidth.StringWidth(str)
}

// Truncate shortens str to at most w cells.
func Truncate(str string, w int) string {
	if w <= 0 {
		return ""
	}
	return runewidth.Truncate(str, w, "")
}
