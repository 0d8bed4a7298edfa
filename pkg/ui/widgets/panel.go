package widgets

import (
	"github.com/odvcencio/cellkit/pkg/ui/component"
	"github.com/odvcencio/cellkit/pkg/ui/graphics"
)

// Panel is a container with an optional titled border. The border takes one
// cell on each side.
type Panel struct {
	c      *component.Component
	title  string
	border bool
}

// NewPanel creates a borderless panel managed by lm, which may be nil.
func NewPanel(tk *component.Toolkit, lm component.LayoutManager) *Panel {
	p := &Panel{}
	tk.New(p)
	if lm != nil {
		// A new panel has no children to re-register.
		_ = p.c.SetLayout(lm)
	}
	return p
}

func (p *Panel) Kind() component.Kind            { return component.KindPanel }
func (p *Panel) Bind(c *component.Component)     { p.c = c }
func (p *Panel) Component() *component.Component { return p.c }

// Add adds child to the panel.
func (p *Panel) Add(child *component.Component, constraint any) error {
	return p.c.Add(child, constraint)
}

// Title returns the border title.
func (p *Panel) Title() string { return p.title }

// SetTitle sets the border title. It is shown only with a border.
func (p *Panel) SetTitle(title string) {
	p.title = title
	p.c.Repaint()
}

// Border reports whether the border is drawn.
func (p *Panel) Border() bool { return p.border }

// SetBorder turns the border on or off.
func (p *Panel) SetBorder(on bool) {
	if on == p.border {
		return
	}
	p.border = on
	if on {
		p.c.SetInsets(graphics.Insets{Top: 1, Left: 1, Bottom: 1, Right: 1})
	} else {
		p.c.SetInsets(graphics.Insets{})
	}
	p.c.Repaint()
}

func (p *Panel) Paint(c *component.Component, s *graphics.Surface, clip graphics.Rect) {
	th := c.Toolkit().Theme()
	s.Clear(c.Style(th.Panel))
	if !p.border {
		return
	}
	size := c.Size()
	s.DrawBox(graphics.NewRect(0, 0, size.Width, size.Height), th.Border)
	if p.title != "" && size.Width > 4 {
		s.DrawString(2, 0, graphics.Truncate(" "+p.title+" ", size.Width-4), th.Border)
	}
}
