package widgets

import (
	"github.com/odvcencio/cellkit/pkg/ui/component"
	"github.com/odvcencio/cellkit/pkg/ui/graphics"
)

// Label displays one line of read-only text.
type Label struct {
	c     *component.Component
	text  string
	align Align
}

// NewLabel creates a left-aligned label.
func NewLabel(tk *component.Toolkit, text string) *Label {
	l := &Label{text: text, align: AlignLeft}
	tk.New(l)
	return l
}

func (l *Label) Kind() component.Kind            { return component.KindLabel }
func (l *Label) Bind(c *component.Component)     { l.c = c }
func (l *Label) Component() *component.Component { return l.c }

// Text returns the label text.
func (l *Label) Text() string { return l.text }

// SetText replaces the text. The parent is re-laid out since the preferred
// width may change.
func (l *Label) SetText(text string) {
	if text == l.text {
		return
	}
	l.text = text
	l.c.Invalidate()
	l.c.Repaint()
}

// Align returns the alignment.
func (l *Label) Align() Align { return l.align }

// SetAlign changes the alignment. Unknown values are rejected.
func (l *Label) SetAlign(a Align) error {
	if !a.valid() {
		return invalidAlign(a)
	}
	l.align = a
	l.c.Repaint()
	return nil
}

func (l *Label) PreferredSize(*component.Component) graphics.Size {
	return graphics.Size{Width: graphics.StringWidth(l.text), Height: 1}
}

func (l *Label) Paint(c *component.Component, s *graphics.Surface, clip graphics.Rect) {
	style := c.Style(c.Toolkit().Theme().Label)
	if !c.EnabledInTree() {
		style = c.Toolkit().Theme().Disabled
	}
	size := c.Size()
	s.Clear(style)
	text := graphics.Truncate(l.text, size.Width)
	s.DrawString(alignedX(l.align, graphics.StringWidth(text), size.Width), 0, text, style)
}
