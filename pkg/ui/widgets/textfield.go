package widgets

import (
	"github.com/odvcencio/cellkit/pkg/ui/component"
	"github.com/odvcencio/cellkit/pkg/ui/event"
	"github.com/odvcencio/cellkit/pkg/ui/graphics"
)

// TextField is a single-line editor. Edits post a ChangeEvent; Enter posts
// an ActionEvent carrying the text.
type TextField struct {
	c       *component.Component
	text    []rune
	caret   int
	columns int
}

var _ component.TextEditable = (*TextField)(nil)

const keyCtrlE = event.KeyCtrlA + 4

// NewTextField creates an empty field whose preferred width is columns.
func NewTextField(tk *component.Toolkit, columns int) *TextField {
	f := &TextField{columns: max(columns, 1)}
	tk.New(f)
	f.c.SetFocusable(true)
	return f
}

func (f *TextField) Kind() component.Kind            { return component.KindTextField }
func (f *TextField) Bind(c *component.Component)     { f.c = c }
func (f *TextField) Component() *component.Component { return f.c }

func (f *TextField) Text() string { return string(f.text) }

// Caret returns the caret position in runes.
func (f *TextField) Caret() int { return f.caret }

// SetText replaces the content and moves the caret to the end.
func (f *TextField) SetText(text string) {
	if text == string(f.text) {
		return
	}
	f.text = []rune(text)
	f.caret = len(f.text)
	f.changed()
}

// OnChange subscribes fn to the field's change events.
func (f *TextField) OnChange(fn func(*event.ChangeEvent)) event.Listener {
	l := event.Typed(fn)
	_ = f.c.AddListener(event.CategoryChange, l)
	return l
}

// OnAction subscribes fn to the field's action events.
func (f *TextField) OnAction(fn func(*event.ActionEvent)) event.Listener {
	return onAction(f.c, fn)
}

func (f *TextField) changed() {
	f.c.Repaint()
	f.c.Post(event.NewChangeEvent(f.c))
}

func (f *TextField) moveCaret(pos int) {
	pos = min(max(pos, 0), len(f.text))
	if pos != f.caret {
		f.caret = pos
		f.c.Repaint()
	}
}

func (f *TextField) HandleKey(c *component.Component, ev *event.KeyEvent) {
	switch ev.Code {
	case event.KeyLeft:
		f.moveCaret(f.caret - 1)
	case event.KeyRight:
		f.moveCaret(f.caret + 1)
	case event.KeyHome, event.KeyCtrlA:
		f.moveCaret(0)
	case event.KeyEnd, keyCtrlE:
		f.moveCaret(len(f.text))
	case event.KeyBackspace, event.KeyDEL:
		if f.caret == 0 {
			return
		}
		f.text = append(f.text[:f.caret-1], f.text[f.caret:]...)
		f.caret--
		f.changed()
	case event.KeyDelete:
		if f.caret >= len(f.text) {
			return
		}
		f.text = append(f.text[:f.caret], f.text[f.caret+1:]...)
		f.changed()
	case event.KeyEnter:
		c.Post(event.NewActionEvent(c, string(f.text)))
	default:
		if ev.Char == 0 || ev.Mods.Has(event.ModCtrl) || ev.Mods.Has(event.ModAlt) {
			return
		}
		f.text = append(f.text[:f.caret], append([]rune{ev.Char}, f.text[f.caret:]...)...)
		f.caret++
		f.changed()
	}
	ev.Consume()
}

func (f *TextField) HandleMouse(c *component.Component, ev *event.MouseEvent) {
	if !isPrimaryClick(ev) {
		return
	}
	local := c.ScreenToLocal(ev.X, ev.Y)
	col := 0
	for i, r := range f.text {
		if col >= local.X {
			f.moveCaret(i)
			return
		}
		col += graphics.StringWidth(string(r))
	}
	f.moveCaret(len(f.text))
}

func (f *TextField) PreferredSize(*component.Component) graphics.Size {
	return graphics.Size{Width: f.columns, Height: 1}
}

func (f *TextField) Paint(c *component.Component, s *graphics.Surface, clip graphics.Rect) {
	th := c.Toolkit().Theme()
	style := stateStyle(c, th.Field, th.FieldFocused, th.Disabled)
	s.Clear(style)
	s.DrawString(0, 0, string(f.text), style)
}
