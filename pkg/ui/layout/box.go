package layout

import (
	"github.com/odvcencio/cellkit/pkg/errors"
	"github.com/odvcencio/cellkit/pkg/ui/component"
	"github.com/odvcencio/cellkit/pkg/ui/graphics"
)

// Axis selects the direction a Box stacks children in.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// Valid reports whether a is AxisX or AxisY.
func (a Axis) Valid() bool { return a == AxisX || a == AxisY }

// Box stacks children along one axis at their preferred extent and
// stretches them across the other. Children that do not fit are truncated
// at the container edge; they never overlap.
type Box struct {
	axis Axis
	Gap  int
}

// NewBox creates a box layout along axis. The zero Box lays out along X.
func NewBox(axis Axis) (*Box, error) {
	if !axis.Valid() {
		return nil, errors.Newf(errors.ErrCodeInvalidEnum, "invalid box axis %d", int(axis))
	}
	return &Box{axis: axis}, nil
}

// Axis returns the stacking direction.
func (l *Box) Axis() Axis { return l.axis }

// AddLayoutComponent accepts only a nil constraint.
func (l *Box) AddLayoutComponent(child *component.Component, constraint any) error {
	if constraint != nil {
		return errors.Newf(errors.ErrCodeInvalidConstraint, "box layout takes no constraint, got %T", constraint)
	}
	return nil
}

func (l *Box) RemoveLayoutComponent(child *component.Component) {}

// PreferredSize sums the children along the axis.
func (l *Box) PreferredSize(parent *component.Component) graphics.Size {
	var main, cross, n int
	for _, c := range parent.Children() {
		if !c.Visible() {
			continue
		}
		p := c.PreferredSize()
		if l.axis == AxisX {
			main += p.Width
			cross = max(cross, p.Height)
		} else {
			main += p.Height
			cross = max(cross, p.Width)
		}
		n++
	}
	if n > 1 {
		main += l.Gap * (n - 1)
	}
	in := parent.Insets()
	if l.axis == AxisX {
		return graphics.Size{Width: main + in.Left + in.Right, Height: cross + in.Top + in.Bottom}
	}
	return graphics.Size{Width: cross + in.Left + in.Right, Height: main + in.Top + in.Bottom}
}

// LayoutContainer positions the visible children in order.
func (l *Box) LayoutContainer(parent *component.Component) {
	area := parent.ContentBounds()
	pos, end := area.X, area.X+area.Width
	if l.axis == AxisY {
		pos, end = area.Y, area.Y+area.Height
	}

	for _, c := range parent.Children() {
		if !c.Visible() {
			continue
		}
		p := c.PreferredSize()
		ext := p.Width
		if l.axis == AxisY {
			ext = p.Height
		}
		ext = max(min(ext, end-pos), 0)

		if l.axis == AxisX {
			c.SetBounds(graphics.NewRect(pos, area.Y, ext, area.Height))
		} else {
			c.SetBounds(graphics.NewRect(area.X, pos, area.Width, ext))
		}
		pos = min(pos+ext+l.Gap, end)
	}
}

var _ component.LayoutManager = (*Box)(nil)
