package widgets

import (
	"github.com/odvcencio/cellkit/pkg/ui/component"
	"github.com/odvcencio/cellkit/pkg/ui/event"
	"github.com/odvcencio/cellkit/pkg/ui/graphics"
)

// CheckBox toggles on Space or a left click and posts an ItemEvent with its
// label as the item.
type CheckBox struct {
	c       *component.Component
	label   string
	checked bool
}

// NewCheckBox creates a focusable check box.
func NewCheckBox(tk *component.Toolkit, label string, checked bool) *CheckBox {
	cb := &CheckBox{label: label, checked: checked}
	tk.New(cb)
	cb.c.SetFocusable(true)
	return cb
}

func (cb *CheckBox) Kind() component.Kind            { return component.KindCheckBox }
func (cb *CheckBox) Bind(c *component.Component)     { cb.c = c }
func (cb *CheckBox) Component() *component.Component { return cb.c }

func (cb *CheckBox) Label() string { return cb.label }
func (cb *CheckBox) Checked() bool { return cb.checked }

// SetChecked changes the state, posting an ItemEvent if it differs.
func (cb *CheckBox) SetChecked(checked bool) {
	if checked == cb.checked {
		return
	}
	cb.checked = checked
	cb.c.Repaint()
	state := event.ItemDeselected
	if checked {
		state = event.ItemSelected
	}
	cb.c.Post(event.NewItemEvent(cb.c, cb.label, state))
}

// OnItem subscribes fn to the check box's item events.
func (cb *CheckBox) OnItem(fn func(*event.ItemEvent)) event.Listener {
	l := event.Typed(fn)
	_ = cb.c.AddListener(event.CategoryItem, l)
	return l
}

func (cb *CheckBox) HandleKey(c *component.Component, ev *event.KeyEvent) {
	if ev.Code == event.KeySpace && ev.Mods == 0 {
		ev.Consume()
		cb.SetChecked(!cb.checked)
	}
}

func (cb *CheckBox) HandleMouse(c *component.Component, ev *event.MouseEvent) {
	if isPrimaryClick(ev) {
		cb.SetChecked(!cb.checked)
	}
}

func (cb *CheckBox) PreferredSize(*component.Component) graphics.Size {
	return graphics.Size{Width: graphics.StringWidth(cb.label) + 4, Height: 1}
}

func (cb *CheckBox) Paint(c *component.Component, s *graphics.Surface, clip graphics.Rect) {
	th := c.Toolkit().Theme()
	style := stateStyle(c, th.CheckBox, th.ButtonFocused, th.Disabled)
	s.Clear(style)
	mark := "[ ] "
	if cb.checked {
		mark = "[x] "
	}
	s.DrawString(0, 0, mark+cb.label, style)
}
