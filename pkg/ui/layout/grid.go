package layout

import (
	"github.com/odvcencio/cellkit/pkg/errors"
	"github.com/odvcencio/cellkit/pkg/ui/component"
	"github.com/odvcencio/cellkit/pkg/ui/graphics"
)

// Fill controls how a child grows inside its cell.
type Fill int

const (
	FillNone Fill = iota
	FillHorizontal
	FillVertical
	FillBoth
)

// Anchor positions a child that does not fill its cell.
type Anchor int

const (
	AnchorCenter Anchor = iota
	AnchorNorth
	AnchorNorthEast
	AnchorEast
	AnchorSouthEast
	AnchorSouth
	AnchorSouthWest
	AnchorWest
	AnchorNorthWest
)

// GridConstraints place a child in a Grid.
type GridConstraints struct {
	Col, Row         int
	ColSpan, RowSpan int
	WeightX, WeightY float64
	Fill             Fill
	Anchor           Anchor
	Insets           graphics.Insets
}

// Cell returns constraints for a single cell at (col, row).
func Cell(col, row int) GridConstraints {
	return GridConstraints{Col: col, Row: row, ColSpan: 1, RowSpan: 1}
}

func (gc GridConstraints) normalize() (GridConstraints, error) {
	if gc.ColSpan == 0 {
		gc.ColSpan = 1
	}
	if gc.RowSpan == 0 {
		gc.RowSpan = 1
	}
	switch {
	case gc.Col < 0 || gc.Row < 0:
		return gc, errors.Newf(errors.ErrCodeInvalidConstraint, "negative grid position (%d,%d)", gc.Col, gc.Row)
	case gc.ColSpan < 0 || gc.RowSpan < 0:
		return gc, errors.Newf(errors.ErrCodeInvalidConstraint, "negative grid span %dx%d", gc.ColSpan, gc.RowSpan)
	case gc.WeightX < 0 || gc.WeightY < 0:
		return gc, errors.New(errors.ErrCodeInvalidConstraint, "negative grid weight")
	case gc.Fill < FillNone || gc.Fill > FillBoth:
		return gc, errors.Newf(errors.ErrCodeInvalidConstraint, "invalid fill %d", int(gc.Fill))
	case gc.Anchor < AnchorCenter || gc.Anchor > AnchorNorthWest:
		return gc, errors.Newf(errors.ErrCodeInvalidConstraint, "invalid anchor %d", int(gc.Anchor))
	case gc.Insets.Top < 0 || gc.Insets.Left < 0 || gc.Insets.Bottom < 0 || gc.Insets.Right < 0:
		return gc, errors.New(errors.ErrCodeInvalidConstraint, "negative grid insets")
	}
	return gc, nil
}

// Grid arranges children in a grid of variable-size rows and columns. Each
// column is as wide as the widest single-column child in it; spanning
// children push any shortfall onto the last column they cover. Extra space
// is shared by weight; an axis with no weight gives all of it to the last
// row or column. When space is short, the last column or row shrinks first.
type Grid struct {
	constraints map[*component.Component]GridConstraints
	next        int
}

// NewGrid creates an empty grid layout.
func NewGrid() *Grid {
	return &Grid{constraints: make(map[*component.Component]GridConstraints)}
}

// AddLayoutComponent records child's constraints. A nil constraint places
// the child in the next column of row zero.
func (l *Grid) AddLayoutComponent(child *component.Component, constraint any) error {
	var gc GridConstraints
	switch c := constraint.(type) {
	case nil:
		gc = Cell(l.next, 0)
	case GridConstraints:
		gc = c
	case *GridConstraints:
		if c == nil {
			return errors.New(errors.ErrCodeInvalidConstraint, "nil grid constraints")
		}
		gc = *c
	default:
		return errors.Newf(errors.ErrCodeInvalidConstraint, "grid constraint must be GridConstraints, got %T", constraint)
	}
	gc, err := gc.normalize()
	if err != nil {
		return err
	}
	if l.constraints == nil {
		l.constraints = make(map[*component.Component]GridConstraints)
	}
	l.constraints[child] = gc
	l.next = max(l.next, gc.Col+gc.ColSpan)
	return nil
}

// RemoveLayoutComponent forgets child.
func (l *Grid) RemoveLayoutComponent(child *component.Component) {
	delete(l.constraints, child)
}

// Constraints returns the normalized constraints recorded for child.
func (l *Grid) Constraints(child *component.Component) (GridConstraints, bool) {
	gc, ok := l.constraints[child]
	return gc, ok
}

type gridItem struct {
	c    *component.Component
	gc   GridConstraints
	pref graphics.Size
}

type gridMetrics struct {
	items   []gridItem
	widths  []int
	heights []int
	weightX []float64
	weightY []float64
}

func (l *Grid) measure(parent *component.Component) gridMetrics {
	var m gridMetrics
	cols, rows := 0, 0
	for _, c := range parent.Children() {
		gc, ok := l.constraints[c]
		if !ok || !c.Visible() {
			continue
		}
		m.items = append(m.items, gridItem{c: c, gc: gc, pref: c.PreferredSize()})
		cols = max(cols, gc.Col+gc.ColSpan)
		rows = max(rows, gc.Row+gc.RowSpan)
	}
	m.widths = make([]int, cols)
	m.heights = make([]int, rows)
	m.weightX = make([]float64, cols)
	m.weightY = make([]float64, rows)

	// Single-cell children first so spanning children only add shortfall.
	for pass := 0; pass < 2; pass++ {
		for _, it := range m.items {
			gc := it.gc
			needW := it.pref.Width + gc.Insets.Left + gc.Insets.Right
			needH := it.pref.Height + gc.Insets.Top + gc.Insets.Bottom
			if (gc.ColSpan == 1) == (pass == 0) {
				spanFit(m.widths, gc.Col, gc.ColSpan, needW)
			}
			if (gc.RowSpan == 1) == (pass == 0) {
				spanFit(m.heights, gc.Row, gc.RowSpan, needH)
			}
		}
	}
	for _, it := range m.items {
		lastCol := it.gc.Col + it.gc.ColSpan - 1
		lastRow := it.gc.Row + it.gc.RowSpan - 1
		m.weightX[lastCol] = max(m.weightX[lastCol], it.gc.WeightX)
		m.weightY[lastRow] = max(m.weightY[lastRow], it.gc.WeightY)
	}
	return m
}

// spanFit grows the last track of [start, start+span) until the span is at
// least need.
func spanFit(tracks []int, start, span, need int) {
	sum := 0
	for i := start; i < start+span; i++ {
		sum += tracks[i]
	}
	if sum < need {
		tracks[start+span-1] += need - sum
	}
}

// distribute adjusts tracks so they sum to avail.
func distribute(tracks []int, weights []float64, avail int) {
	if len(tracks) == 0 {
		return
	}
	total := 0
	for _, t := range tracks {
		total += t
	}
	diff := avail - total

	if diff < 0 {
		for i := len(tracks) - 1; i >= 0 && diff < 0; i-- {
			take := min(tracks[i], -diff)
			tracks[i] -= take
			diff += take
		}
		return
	}
	if diff == 0 {
		return
	}

	var weightSum float64
	lastWeighted := -1
	for i, w := range weights {
		if w > 0 {
			weightSum += w
			lastWeighted = i
		}
	}
	if lastWeighted < 0 {
		tracks[len(tracks)-1] += diff
		return
	}
	given := 0
	for i, w := range weights {
		if w <= 0 || i == lastWeighted {
			continue
		}
		share := int(float64(diff) * w / weightSum)
		tracks[i] += share
		given += share
	}
	tracks[lastWeighted] += diff - given
}

func offsets(origin int, tracks []int) []int {
	out := make([]int, len(tracks)+1)
	out[0] = origin
	for i, t := range tracks {
		out[i+1] = out[i] + t
	}
	return out
}

// PreferredSize is the sum of the measured rows and columns plus insets.
func (l *Grid) PreferredSize(parent *component.Component) graphics.Size {
	m := l.measure(parent)
	var w, h int
	for _, x := range m.widths {
		w += x
	}
	for _, y := range m.heights {
		h += y
	}
	in := parent.Insets()
	return graphics.Size{Width: w + in.Left + in.Right, Height: h + in.Top + in.Bottom}
}

// LayoutContainer sizes the tracks to the container and places each child
// in its cell.
func (l *Grid) LayoutContainer(parent *component.Component) {
	m := l.measure(parent)
	area := parent.ContentBounds()
	distribute(m.widths, m.weightX, area.Width)
	distribute(m.heights, m.weightY, area.Height)
	xs := offsets(area.X, m.widths)
	ys := offsets(area.Y, m.heights)

	for _, it := range m.items {
		gc := it.gc
		cell := graphics.NewRect(
			xs[gc.Col], ys[gc.Row],
			xs[gc.Col+gc.ColSpan]-xs[gc.Col], ys[gc.Row+gc.RowSpan]-ys[gc.Row],
		).Inset(gc.Insets)
		it.c.SetBounds(place(cell, it.pref, gc.Fill, gc.Anchor))
	}
}

func place(cell graphics.Rect, pref graphics.Size, fill Fill, anchor Anchor) graphics.Rect {
	w, h := min(pref.Width, cell.Width), min(pref.Height, cell.Height)
	if fill == FillHorizontal || fill == FillBoth {
		w = cell.Width
	}
	if fill == FillVertical || fill == FillBoth {
		h = cell.Height
	}
	x := cell.X + (cell.Width-w)/2
	y := cell.Y + (cell.Height-h)/2
	switch anchor {
	case AnchorNorthWest, AnchorWest, AnchorSouthWest:
		x = cell.X
	case AnchorNorthEast, AnchorEast, AnchorSouthEast:
		x = cell.X + cell.Width - w
	}
	switch anchor {
	case AnchorNorthWest, AnchorNorth, AnchorNorthEast:
		y = cell.Y
	case AnchorSouthWest, AnchorSouth, AnchorSouthEast:
		y = cell.Y + cell.Height - h
	}
	return graphics.NewRect(x, y, w, h)
}

var _ component.LayoutManager = (*Grid)(nil)
