// Package widgets provides the basic component kinds: labels, buttons, text
// fields, check boxes, lists, panels and a table model. Each widget is the
// Behavior of a component.Component; Component returns that component for
// adding to containers.
package widgets

import (
	"github.com/odvcencio/cellkit/pkg/errors"
	"github.com/odvcencio/cellkit/pkg/ui/backend"
	"github.com/odvcencio/cellkit/pkg/ui/component"
	"github.com/odvcencio/cellkit/pkg/ui/event"
	"github.com/odvcencio/cellkit/pkg/ui/graphics"
)

// Align is horizontal text alignment.
type Align int

const (
	AlignLeft Align = iota + 1
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	}
	return "invalid"
}

func (a Align) valid() bool { return a >= AlignLeft && a <= AlignRight }

func invalidAlign(a Align) error {
	return errors.Newf(errors.ErrCodeInvalidEnum, "invalid alignment %d", int(a)).
		WithContext("value", int(a))
}

// alignedX returns the column at which text of width w starts in a field of
// width avail.
func alignedX(a Align, w, avail int) int {
	switch a {
	case AlignCenter:
		return max(0, (avail-w)/2)
	case AlignRight:
		return max(0, avail-w)
	}
	return 0
}

// stateStyle picks the style for a component from its enabled and focus state.
func stateStyle(c *component.Component, normal, focused, disabled backend.Style) backend.Style {
	switch {
	case !c.EnabledInTree():
		return disabled
	case c.HasFocus():
		return c.Style(focused)
	}
	return c.Style(normal)
}

// onAction subscribes fn to action events on c.
func onAction(c *component.Component, fn func(*event.ActionEvent)) event.Listener {
	l := event.Typed(fn)
	_ = c.AddListener(event.CategoryAction, l)
	return l
}

func isActivate(ev *event.KeyEvent) bool {
	return ev.Code == event.KeyEnter || ev.Code == event.KeySpace
}

func isPrimaryClick(ev *event.MouseEvent) bool {
	return ev.Action == event.MouseClicked && ev.Button == 1
}

func fillRow(s *graphics.Surface, y, width int, style backend.Style) {
	s.Fill(graphics.NewRect(0, y, width, 1), ' ', style)
}
