package widgets

import (
	"github.com/odvcencio/cellkit/pkg/errors"
	"github.com/odvcencio/cellkit/pkg/ui/component"
	"github.com/odvcencio/cellkit/pkg/ui/event"
	"github.com/odvcencio/cellkit/pkg/ui/graphics"
)

// List shows items one per row with at most one selected. Selection changes
// post a ListSelectionEvent spanning the old and new index; Enter posts an
// ActionEvent with the selected item.
type List struct {
	c        *component.Component
	items    []string
	selected int
	top      int
	rows     int
}

// NewList creates a focusable list with no selection.
func NewList(tk *component.Toolkit, items ...string) *List {
	l := &List{items: append([]string(nil), items...), selected: -1, rows: 5}
	tk.New(l)
	l.c.SetFocusable(true)
	return l
}

func (l *List) Kind() component.Kind            { return component.KindList }
func (l *List) Bind(c *component.Component)     { l.c = c }
func (l *List) Component() *component.Component { return l.c }

// Items returns a copy of the items.
func (l *List) Items() []string { return append([]string(nil), l.items...) }

// SetItems replaces the items and clears the selection.
func (l *List) SetItems(items ...string) {
	l.items = append([]string(nil), items...)
	l.top = 0
	if l.selected >= 0 {
		old := l.selected
		l.selected = -1
		l.c.Post(event.NewListSelectionEvent(l.c, old, old, false))
	}
	l.c.Invalidate()
	l.c.Repaint()
}

// SetVisibleRows sets the preferred height.
func (l *List) SetVisibleRows(n int) {
	l.rows = max(n, 1)
	l.c.Invalidate()
}

// Selected returns the selected index, or -1.
func (l *List) Selected() int { return l.selected }

// SelectedItem returns the selected item.
func (l *List) SelectedItem() (string, bool) {
	if l.selected < 0 {
		return "", false
	}
	return l.items[l.selected], true
}

// SetSelected selects index i; -1 clears the selection.
func (l *List) SetSelected(i int) error {
	if i < -1 || i >= len(l.items) {
		return errors.Newf(errors.ErrCodeInvalidInput, "list index %d out of range [-1, %d)", i, len(l.items))
	}
	if i == l.selected {
		return nil
	}
	old := l.selected
	l.selected = i
	l.scrollTo(i)
	l.c.Repaint()

	first, last := min(old, i), max(old, i)
	if first < 0 {
		first = last
	}
	l.c.Post(event.NewListSelectionEvent(l.c, first, last, false))
	return nil
}

// OnSelection subscribes fn to the list's selection events.
func (l *List) OnSelection(fn func(*event.ListSelectionEvent)) event.Listener {
	lis := event.Typed(fn)
	_ = l.c.AddListener(event.CategoryListSelection, lis)
	return lis
}

// OnAction subscribes fn to the list's action events.
func (l *List) OnAction(fn func(*event.ActionEvent)) event.Listener {
	return onAction(l.c, fn)
}

func (l *List) scrollTo(i int) {
	if i < 0 {
		return
	}
	h := max(l.c.Size().Height, 1)
	switch {
	case i < l.top:
		l.top = i
	case i >= l.top+h:
		l.top = i - h + 1
	}
}

func (l *List) HandleKey(c *component.Component, ev *event.KeyEvent) {
	if len(l.items) == 0 {
		return
	}
	page := max(c.Size().Height, 1)
	next := l.selected
	switch ev.Code {
	case event.KeyUp:
		next = max(l.selected-1, 0)
	case event.KeyDown:
		next = min(l.selected+1, len(l.items)-1)
	case event.KeyPgUp:
		next = max(l.selected-page, 0)
	case event.KeyPgDn:
		next = min(max(l.selected, 0)+page, len(l.items)-1)
	case event.KeyHome:
		next = 0
	case event.KeyEnd:
		next = len(l.items) - 1
	case event.KeyEnter:
		if item, ok := l.SelectedItem(); ok {
			ev.Consume()
			c.Post(event.NewActionEvent(c, item))
		}
		return
	default:
		return
	}
	ev.Consume()
	_ = l.SetSelected(next)
}

func (l *List) HandleMouse(c *component.Component, ev *event.MouseEvent) {
	if !isPrimaryClick(ev) {
		return
	}
	row := l.top + c.ScreenToLocal(ev.X, ev.Y).Y
	if row >= 0 && row < len(l.items) {
		_ = l.SetSelected(row)
	}
}

func (l *List) PreferredSize(*component.Component) graphics.Size {
	w := 1
	for _, item := range l.items {
		w = max(w, graphics.StringWidth(item))
	}
	return graphics.Size{Width: w, Height: l.rows}
}

func (l *List) Paint(c *component.Component, s *graphics.Surface, clip graphics.Rect) {
	th := c.Toolkit().Theme()
	style := stateStyle(c, th.List, th.List, th.Disabled)
	size := c.Size()
	s.Clear(style)
	for y := 0; y < size.Height && l.top+y < len(l.items); y++ {
		i := l.top + y
		rowStyle := style
		if i == l.selected {
			rowStyle = th.ListSelected
			fillRow(s, y, size.Width, rowStyle)
		}
		s.DrawString(0, y, graphics.Truncate(l.items[i], size.Width), rowStyle)
	}
}
