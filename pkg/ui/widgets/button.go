package widgets

import (
	"github.com/odvcencio/cellkit/pkg/ui/component"
	"github.com/odvcencio/cellkit/pkg/ui/event"
	"github.com/odvcencio/cellkit/pkg/ui/graphics"
)

// Button posts an ActionEvent when activated with Enter, Space or a left
// click.
type Button struct {
	c       *component.Component
	label   string
	command string
}

// NewButton creates a focusable button. The action command defaults to the
// label.
func NewButton(tk *component.Toolkit, label string) *Button {
	b := &Button{label: label, command: label}
	tk.New(b)
	b.c.SetFocusable(true)
	return b
}

func (b *Button) Kind() component.Kind            { return component.KindButton }
func (b *Button) Bind(c *component.Component)     { b.c = c }
func (b *Button) Component() *component.Component { return b.c }

// Label returns the button text.
func (b *Button) Label() string { return b.label }

// SetLabel changes the button text.
func (b *Button) SetLabel(label string) {
	b.label = label
	b.c.Invalidate()
	b.c.Repaint()
}

// ActionCommand returns the command carried by action events.
func (b *Button) ActionCommand() string { return b.command }

// SetActionCommand sets the command carried by action events.
func (b *Button) SetActionCommand(cmd string) { b.command = cmd }

// OnAction subscribes fn to the button's action events.
func (b *Button) OnAction(fn func(*event.ActionEvent)) event.Listener {
	return onAction(b.c, fn)
}

// Press activates the button as if the user had.
func (b *Button) Press() {
	b.c.Post(event.NewActionEvent(b.c, b.command))
}

func (b *Button) HandleKey(c *component.Component, ev *event.KeyEvent) {
	if ev.Mods == 0 && isActivate(ev) {
		ev.Consume()
		b.Press()
	}
}

func (b *Button) HandleMouse(c *component.Component, ev *event.MouseEvent) {
	if isPrimaryClick(ev) {
		b.Press()
	}
}

func (b *Button) PreferredSize(*component.Component) graphics.Size {
	return graphics.Size{Width: graphics.StringWidth(b.label) + 4, Height: 1}
}

func (b *Button) Paint(c *component.Component, s *graphics.Surface, clip graphics.Rect) {
	th := c.Toolkit().Theme()
	style := stateStyle(c, th.Button, th.ButtonFocused, th.Disabled)
	size := c.Size()
	s.Clear(style)
	text := graphics.Truncate("[ "+b.label+" ]", size.Width)
	s.DrawString(alignedX(AlignCenter, graphics.StringWidth(text), size.Width), 0, text, style)
}
