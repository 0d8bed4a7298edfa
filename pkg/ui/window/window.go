// Package window provides the top-level container: a root component with
// its own focus manager and damage list.
package window

import (
	"github.com/odvcencio/cellkit/pkg/ui/component"
	"github.com/odvcencio/cellkit/pkg/ui/focus"
	"github.com/odvcencio/cellkit/pkg/ui/graphics"
)

// maxDamage bounds the damage list; beyond it regions are merged into one.
const maxDamage = 32

// Window is a top-level component tree. Its root's bounds are in screen
// coordinates.
type Window struct {
	root   *component.Component
	focus  *focus.Manager
	title  string
	border bool

	damage  []graphics.Rect
	invalid bool

	// TabTraversal enables the default Tab/BackTab focus movement.
	TabTraversal bool
}

// Options configures a new window.
type Options struct {
	Title  string
	Bounds graphics.Rect
	// Border draws a frame with the title and insets the content by one.
	Border bool
}

// New creates a window whose root is a KindWindow component.
func New(tk *component.Toolkit, opts Options) *Window {
	w := &Window{title: opts.Title, border: opts.Border, TabTraversal: true}
	w.root = tk.New(&rootBehavior{win: w})
	w.root.SetName(opts.Title)
	w.root.SetObserver(w)
	w.focus = focus.NewManager(w.root, tk.Logger())
	if opts.Border {
		w.root.SetInsets(graphics.Insets{Top: 1, Left: 1, Bottom: 1, Right: 1})
	}
	w.root.SetBounds(opts.Bounds)
	w.invalid = true
	return w
}

// Root returns the root component.
func (w *Window) Root() *component.Component { return w.root }

// Focus returns the window's focus manager.
func (w *Window) Focus() *focus.Manager { return w.focus }

// Title returns the window title.
func (w *Window) Title() string { return w.title }

// SetTitle changes the title and repaints the frame.
func (w *Window) SetTitle(title string) {
	w.title = title
	w.root.Repaint()
}

// ID identifies the window by its root.
func (w *Window) ID() string { return w.root.ID() }

// Add adds a child to the root.
func (w *Window) Add(child *component.Component, constraint any) error {
	return w.root.Add(child, constraint)
}

// SetLayout sets the root's layout manager.
func (w *Window) SetLayout(lm component.LayoutManager) error {
	return w.root.SetLayout(lm)
}

// Bounds returns the window's screen bounds.
func (w *Window) Bounds() graphics.Rect { return w.root.Bounds() }

// SetBounds moves or resizes the window.
func (w *Window) SetBounds(r graphics.Rect) { w.root.SetBounds(r) }

// Damage implements component.TreeObserver.
func (w *Window) Damage(r graphics.Rect) {
	r = r.Intersection(w.root.Bounds())
	if r.Empty() {
		return
	}
	for i, d := range w.damage {
		if d.ContainsRect(r) {
			return
		}
		if r.ContainsRect(d) {
			w.damage[i] = r
			return
		}
	}
	if len(w.damage) >= maxDamage {
		merged := r
		for _, d := range w.damage {
			merged = merged.Union(d)
		}
		w.damage = append(w.damage[:0], merged)
		return
	}
	w.damage = append(w.damage, r)
}

// Invalidated implements component.TreeObserver.
func (w *Window) Invalidated(*component.Component) {
	w.invalid = true
}

// Detaching implements component.TreeObserver.
func (w *Window) Detaching(c *component.Component) {
	w.focus.SubtreeRemoved(c)
}

// FocusOwner implements component.TreeObserver.
func (w *Window) FocusOwner() *component.Component {
	return w.focus.Owner()
}

// NeedsValidation reports whether some container was invalidated since the
// last Validate.
func (w *Window) NeedsValidation() bool { return w.invalid }

// Validate runs layout on every invalid container.
func (w *Window) Validate() bool {
	if !w.invalid {
		return false
	}
	w.root.Validate()
	// Layout resizes nested containers, which reports them invalid again.
	w.invalid = false
	return true
}

// DamageAll marks the whole window for repaint.
func (w *Window) DamageAll() {
	w.damage = w.damage[:0]
	w.Damage(w.root.Bounds())
}

// HasDamage reports whether a repaint is pending.
func (w *Window) HasDamage() bool { return len(w.damage) > 0 }

// TakeDamage returns and clears the pending damage, in screen coordinates.
func (w *Window) TakeDamage() []graphics.Rect {
	out := w.damage
	w.damage = nil
	return out
}

// PaintRegion repaints the part of the window inside region. s addresses
// the whole screen.
func (w *Window) PaintRegion(s *graphics.Surface, region graphics.Rect) {
	b := w.root.Bounds()
	w.root.PaintTree(s.Sub(b), region.Translate(-b.X, -b.Y))
}

// ComponentAt hit-tests a screen point.
func (w *Window) ComponentAt(x, y int) *component.Component {
	b := w.root.Bounds()
	return w.root.ComponentAt(graphics.Point{X: x - b.X, Y: y - b.Y})
}

// Cursor returns the screen position of the focus owner's caret, if it has
// one.
func (w *Window) Cursor() (graphics.Point, bool) {
	owner := w.focus.Owner()
	if owner == nil {
		return graphics.Point{}, false
	}
	te, ok := owner.Behavior().(component.TextEditable)
	if !ok {
		return graphics.Point{}, false
	}
	sb := owner.ScreenBounds()
	x := sb.X + min(graphics.StringWidth(runePrefix(te.Text(), te.Caret())), max(sb.Width-1, 0))
	return graphics.Point{X: x, Y: sb.Y}, true
}

func runePrefix(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

type rootBehavior struct {
	win *Window
}

func (r *rootBehavior) Kind() component.Kind { return component.KindWindow }

func (r *rootBehavior) Paint(c *component.Component, s *graphics.Surface, clip graphics.Rect) {
	th := c.Toolkit().Theme()
	s.Clear(c.Style(th.Window))
	if !r.win.border {
		return
	}
	size := c.Size()
	s.DrawBox(graphics.NewRect(0, 0, size.Width, size.Height), c.Style(th.Border))
	if r.win.title != "" && size.Width > 4 {
		s.DrawString(2, 0, graphics.Truncate(" "+r.win.title+" ", size.Width-4), c.Style(th.Border))
	}
}
