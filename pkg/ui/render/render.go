// Package render turns window damage into the minimal set of cell writes on
// the output device. It keeps the frame last written to the device and only
// compares cells inside damaged regions.
package render

import (
	"github.com/odvcencio/cellkit/pkg/logging"
	"github.com/odvcencio/cellkit/pkg/ui/backend"
	"github.com/odvcencio/cellkit/pkg/ui/graphics"
)

// Scene is something the differencer can repaint: in practice a window.
type Scene interface {
	Bounds() graphics.Rect
	TakeDamage() []graphics.Rect
	PaintRegion(s *graphics.Surface, region graphics.Rect)
}

// CursorScene is a scene that wants the terminal cursor shown.
type CursorScene interface {
	Scene
	Cursor() (graphics.Point, bool)
}

// Stats describes one render pass.
type Stats struct {
	Regions       int
	CellsCompared int
	CellsWritten  int
	Flushed       bool
}

// Differencer owns the previous and current frames for one output device.
type Differencer struct {
	out      backend.Backend
	logger   *logging.Logger
	previous *graphics.Buffer
	current  *graphics.Buffer

	// ShowCursor enables caret placement for CursorScene windows.
	ShowCursor bool

	cursor      graphics.Point
	cursorShown bool
}

// New creates a differencer sized to the device.
func New(out backend.Backend, logger *logging.Logger) *Differencer {
	if logger == nil {
		logger = logging.Discard()
	}
	w, h := out.Size()
	d := &Differencer{
		out:        out,
		logger:     logger.WithCategory(logging.CategoryRender),
		previous:   graphics.NewBuffer(w, h),
		current:    graphics.NewBuffer(w, h),
		ShowCursor: true,
	}
	d.previous.Reset(unknownCell())
	return d
}

// unknownCell never equals a painted cell, so the first pass after a reset
// writes everything it compares.
func unknownCell() graphics.Cell {
	return graphics.Cell{Rune: -1}
}

// Size returns the frame dimensions.
func (d *Differencer) Size() (w, h int) {
	return d.current.Size()
}

// Resize reallocates both frames. The next pass writes every damaged cell.
func (d *Differencer) Resize(w, h int) {
	d.previous.Resize(w, h)
	d.previous.Reset(unknownCell())
	d.current.Resize(w, h)
	d.cursorShown = false
	d.logger.Debug("frames resized", "width", w, "height", h)
}

// Previous returns the last frame written to the device. Callers must not
// modify it.
func (d *Differencer) Previous() *graphics.Buffer {
	return d.previous
}

// Render repaints the damaged regions of scenes, listed back to front, plus
// any extra screen regions. Cells that differ from the previous frame are
// written and the device is flushed. A pass with no damage does nothing.
func (d *Differencer) Render(scenes []Scene, extra ...graphics.Rect) Stats {
	screen := d.current.Bounds()
	var regions []graphics.Rect
	for _, sc := range scenes {
		for _, r := range sc.TakeDamage() {
			regions = addRegion(regions, r.Intersection(screen))
		}
	}
	for _, r := range extra {
		regions = addRegion(regions, r.Intersection(screen))
	}

	var stats Stats
	if len(regions) == 0 {
		return stats
	}
	stats.Regions = len(regions)

	surface := graphics.NewSurface(d.current)
	for _, region := range regions {
		d.current.Fill(region, ' ', backend.DefaultStyle())
		clipped := surface.WithClip(region)
		for _, sc := range scenes {
			if sc.Bounds().Intersects(region) {
				sc.PaintRegion(clipped, region)
			}
		}
	}

	for _, region := range regions {
		for y := region.Y; y < region.Y+region.Height; y++ {
			for x := region.X; x < region.X+region.Width; x++ {
				stats.CellsCompared++
				cur := d.current.Get(x, y)
				if cur == d.previous.Get(x, y) {
					continue
				}
				d.previous.SetCell(x, y, cur)
				if cur.Tail {
					continue
				}
				d.out.SetContent(x, y, cur.Rune, nil, cur.Style)
				stats.CellsWritten++
			}
		}
	}

	d.placeCursor(scenes)
	d.out.Show()
	stats.Flushed = true
	return stats
}

func (d *Differencer) placeCursor(scenes []Scene) {
	if !d.ShowCursor || len(scenes) == 0 {
		if d.cursorShown {
			d.out.HideCursor()
			d.cursorShown = false
		}
		return
	}
	if cs, ok := scenes[len(scenes)-1].(CursorScene); ok {
		if p, ok := cs.Cursor(); ok {
			if !d.cursorShown || p != d.cursor {
				d.out.SetCursorPos(p.X, p.Y)
				d.cursor, d.cursorShown = p, true
			}
			return
		}
	}
	if d.cursorShown {
		d.out.HideCursor()
		d.cursorShown = false
	}
}

// addRegion adds r to the set, merging it with any region it overlaps so
// that no cell is compared twice.
func addRegion(regions []graphics.Rect, r graphics.Rect) []graphics.Rect {
	if r.Empty() {
		return regions
	}
	for {
		merged := false
		for i, existing := range regions {
			if existing.Intersects(r) {
				r = r.Union(existing)
				regions = append(regions[:i], regions[i+1:]...)
				merged = true
				break
			}
		}
		if !merged {
			return append(regions, r)
		}
	}
}
