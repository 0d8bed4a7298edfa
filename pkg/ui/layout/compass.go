// Package layout provides the layout managers: Compass (five regions), Box
// (single axis) and Grid (constraint grid). A container with a nil layout
// keeps its children's manual bounds.
package layout

import (
	"github.com/odvcencio/cellkit/pkg/errors"
	"github.com/odvcencio/cellkit/pkg/ui/component"
	"github.com/odvcencio/cellkit/pkg/ui/graphics"
)

// Region is a Compass placement.
type Region int

const (
	Center Region = iota + 1
	North
	South
	East
	West
)

func (r Region) String() string {
	switch r {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	case Center:
		return "center"
	}
	return "invalid"
}

// Valid reports whether r is one of the five regions.
func (r Region) Valid() bool {
	return r >= Center && r <= West
}

// Compass lays out up to five children: north and south span the full
// width at their preferred height, east and west fill the remaining height
// at their preferred width, and center takes what is left.
type Compass struct {
	HGap, VGap int

	regions map[Region]*component.Component
}

// NewCompass creates a compass layout with the given gaps.
func NewCompass(hgap, vgap int) *Compass {
	return &Compass{HGap: hgap, VGap: vgap, regions: make(map[Region]*component.Component)}
}

// AddLayoutComponent places child in the region named by constraint; nil
// means Center. A later child replaces the region's occupant.
func (l *Compass) AddLayoutComponent(child *component.Component, constraint any) error {
	region := Center
	switch c := constraint.(type) {
	case nil:
	case Region:
		region = c
	default:
		return errors.Newf(errors.ErrCodeInvalidConstraint, "compass constraint must be a Region, got %T", constraint)
	}
	if !region.Valid() {
		return errors.Newf(errors.ErrCodeInvalidConstraint, "invalid compass region %d", int(region))
	}
	if l.regions == nil {
		l.regions = make(map[Region]*component.Component)
	}
	l.regions[region] = child
	return nil
}

// RemoveLayoutComponent forgets child.
func (l *Compass) RemoveLayoutComponent(child *component.Component) {
	for r, c := range l.regions {
		if c == child {
			delete(l.regions, r)
		}
	}
}

// Occupant returns the component placed in r, if any.
func (l *Compass) Occupant(r Region) *component.Component {
	return l.regions[r]
}

func (l *Compass) visible(r Region) *component.Component {
	c := l.regions[r]
	if c == nil || !c.Visible() {
		return nil
	}
	return c
}

// PreferredSize sums the regions' preferred sizes plus gaps and insets.
func (l *Compass) PreferredSize(parent *component.Component) graphics.Size {
	var w, h int
	var middleH int
	if c := l.visible(East); c != nil {
		p := c.PreferredSize()
		w += p.Width + l.HGap
		middleH = max(middleH, p.Height)
	}
	if c := l.visible(West); c != nil {
		p := c.PreferredSize()
		w += p.Width + l.HGap
		middleH = max(middleH, p.Height)
	}
	if c := l.visible(Center); c != nil {
		p := c.PreferredSize()
		w += p.Width
		middleH = max(middleH, p.Height)
	}
	h = middleH
	if c := l.visible(North); c != nil {
		p := c.PreferredSize()
		w = max(w, p.Width)
		h += p.Height + l.VGap
	}
	if c := l.visible(South); c != nil {
		p := c.PreferredSize()
		w = max(w, p.Width)
		h += p.Height + l.VGap
	}
	in := parent.Insets()
	return graphics.Size{Width: w + in.Left + in.Right, Height: h + in.Top + in.Bottom}
}

// LayoutContainer assigns bounds to the region occupants.
func (l *Compass) LayoutContainer(parent *component.Component) {
	area := parent.ContentBounds()
	top, bottom := area.Y, area.Y+area.Height
	left, right := area.X, area.X+area.Width

	if c := l.visible(North); c != nil {
		h := min(c.PreferredSize().Height, bottom-top)
		c.SetBounds(graphics.NewRect(left, top, right-left, h))
		top += h + l.VGap
	}
	if c := l.visible(South); c != nil {
		h := min(c.PreferredSize().Height, max(bottom-top, 0))
		c.SetBounds(graphics.NewRect(left, bottom-h, right-left, h))
		bottom -= h + l.VGap
	}
	if bottom < top {
		bottom = top
	}
	if c := l.visible(East); c != nil {
		w := min(c.PreferredSize().Width, right-left)
		c.SetBounds(graphics.NewRect(right-w, top, w, bottom-top))
		right -= w + l.HGap
	}
	if c := l.visible(West); c != nil {
		w := min(c.PreferredSize().Width, max(right-left, 0))
		c.SetBounds(graphics.NewRect(left, top, w, bottom-top))
		left += w + l.HGap
	}
	if right < left {
		right = left
	}
	if c := l.visible(Center); c != nil {
		c.SetBounds(graphics.NewRect(left, top, right-left, bottom-top))
	}
}

var _ component.LayoutManager = (*Compass)(nil)
