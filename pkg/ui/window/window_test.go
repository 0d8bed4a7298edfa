package window

import (
	"strings"
	"testing"

	"github.com/odvcencio/cellkit/pkg/ui/component"
	"github.com/odvcencio/cellkit/pkg/ui/graphics"
)

func newWindow(t *testing.T, opts Options) (*component.Toolkit, *Window) {
	t.Helper()
	tk := component.NewToolkit(component.Options{})
	w := New(tk, opts)
	w.TakeDamage()
	return tk, w
}

func button(tk *component.Toolkit, r graphics.Rect) *component.Component {
	c := tk.New(component.Plain(component.KindButton))
	c.SetFocusable(true)
	c.SetBounds(r)
	return c
}

func TestWindow_RemoveFocusedTransfers(t *testing.T) {
	tk, w := newWindow(t, Options{Bounds: graphics.NewRect(0, 0, 20, 5)})
	a := button(tk, graphics.NewRect(0, 0, 5, 1))
	b := button(tk, graphics.NewRect(6, 0, 5, 1))
	_ = w.Add(a, nil)
	_ = w.Add(b, nil)

	w.Focus().RequestFocus(a)
	if !a.HasFocus() {
		t.Fatal("a should have focus")
	}
	if err := w.Root().Remove(a); err != nil {
		t.Fatal(err)
	}
	if w.Focus().Owner() != b {
		t.Errorf("owner = %v, want b", w.Focus().Owner())
	}

	b.SetVisible(false)
	if w.Focus().Owner() != nil {
		t.Errorf("hiding the last eligible component should clear focus, got %v", w.Focus().Owner())
	}
}

func TestWindow_DamageClippedAndMerged(t *testing.T) {
	_, w := newWindow(t, Options{Bounds: graphics.NewRect(10, 5, 20, 10)})

	w.Damage(graphics.NewRect(0, 0, 12, 7))
	w.Damage(graphics.NewRect(11, 6, 1, 1))
	w.Damage(graphics.NewRect(100, 100, 1, 1))

	got := w.TakeDamage()
	if len(got) != 1 || got[0] != graphics.NewRect(10, 5, 2, 2) {
		t.Errorf("damage = %v, want one clipped rect", got)
	}
	if w.HasDamage() {
		t.Error("TakeDamage should clear")
	}

	for i := 0; i < maxDamage+5; i++ {
		w.Damage(graphics.NewRect(10+i%20, 5+i/20, 1, 1))
	}
	if n := len(w.TakeDamage()); n > maxDamage {
		t.Errorf("damage list grew to %d", n)
	}
}

func TestWindow_ComponentAtScreenPoint(t *testing.T) {
	tk, w := newWindow(t, Options{Bounds: graphics.NewRect(10, 5, 20, 10)})
	a := button(tk, graphics.NewRect(2, 1, 4, 1))
	_ = w.Add(a, nil)

	if got := w.ComponentAt(13, 6); got != a {
		t.Errorf("ComponentAt(13,6) = %v, want a", got)
	}
	if got := w.ComponentAt(10, 5); got != w.Root() {
		t.Errorf("ComponentAt(10,5) = %v, want root", got)
	}
	if got := w.ComponentAt(0, 0); got != nil {
		t.Errorf("ComponentAt outside = %v, want nil", got)
	}
}

func TestWindow_BorderAndTitle(t *testing.T) {
	tk, w := newWindow(t, Options{Title: "Form", Bounds: graphics.NewRect(0, 0, 12, 4), Border: true})
	child := tk.New(component.Plain(component.KindPanel))
	_ = w.Add(child, nil)

	if w.Root().ContentBounds() != graphics.NewRect(1, 1, 10, 2) {
		t.Errorf("content = %+v", w.Root().ContentBounds())
	}

	buf := graphics.NewBuffer(12, 4)
	w.PaintRegion(graphics.NewSurface(buf), w.Bounds())

	var top strings.Builder
	for x := 0; x < 12; x++ {
		top.WriteRune(buf.Get(x, 0).Rune)
	}
	if !strings.Contains(top.String(), " Form ") {
		t.Errorf("top row = %q, want title", top.String())
	}
	if buf.Get(0, 0).Rune != '┌' || buf.Get(11, 3).Rune != '┘' {
		t.Error("frame not drawn")
	}
}

func TestWindow_ValidateOnlyWhenInvalid(t *testing.T) {
	_, w := newWindow(t, Options{Bounds: graphics.NewRect(0, 0, 10, 10)})
	if !w.Validate() {
		t.Error("new window should need validation")
	}
	if w.Validate() {
		t.Error("second Validate should be a no-op")
	}
	w.Root().Invalidate()
	if !w.NeedsValidation() {
		t.Error("Invalidate should reach the window")
	}
}

type editable struct{ text string }

func (e *editable) Kind() component.Kind { return component.KindTextField }
func (e *editable) Text() string         { return e.text }
func (e *editable) SetText(s string)     { e.text = s }
func (e *editable) Caret() int           { return len([]rune(e.text)) }

func TestWindow_CursorFollowsCaret(t *testing.T) {
	tk, w := newWindow(t, Options{Bounds: graphics.NewRect(5, 2, 30, 5)})
	field := tk.New(&editable{text: "héllo"})
	field.SetFocusable(true)
	field.SetBounds(graphics.NewRect(1, 1, 20, 1))
	_ = w.Add(field, nil)

	if _, ok := w.Cursor(); ok {
		t.Fatal("no cursor without a focused text component")
	}
	w.Focus().RequestFocus(field)
	p, ok := w.Cursor()
	if !ok || p != (graphics.Point{X: 11, Y: 3}) {
		t.Errorf("Cursor() = %v,%v, want (11,3)", p, ok)
	}
}

// fillLayout gives every child the container's content area.
type fillLayout struct{ passes int }

func (l *fillLayout) AddLayoutComponent(*component.Component, any) error { return nil }
func (l *fillLayout) RemoveLayoutComponent(*component.Component)         {}

func (l *fillLayout) PreferredSize(parent *component.Component) graphics.Size {
	return parent.Size()
}

func (l *fillLayout) LayoutContainer(parent *component.Component) {
	l.passes++
	for _, c := range parent.Children() {
		c.SetBounds(parent.ContentBounds())
	}
}

func TestWindow_NestedLayoutSettlesInOnePass(t *testing.T) {
	tk, w := newWindow(t, Options{Bounds: graphics.NewRect(0, 0, 20, 5)})
	outer := &fillLayout{}
	inner := &fillLayout{}
	if err := w.SetLayout(outer); err != nil {
		t.Fatal(err)
	}
	panel := tk.New(component.Plain(component.KindPanel))
	if err := panel.SetLayout(inner); err != nil {
		t.Fatal(err)
	}
	leaf := tk.New(component.Plain(component.KindLabel))
	_ = panel.Add(leaf, nil)
	_ = w.Add(panel, nil)

	if !w.Validate() {
		t.Fatal("first Validate should run layout")
	}
	if leaf.Size() != (graphics.Size{Width: 20, Height: 5}) {
		t.Errorf("leaf size = %+v", leaf.Size())
	}
	if w.NeedsValidation() {
		t.Error("resizing nested containers during layout left the window invalid")
	}
	if w.Validate() {
		t.Error("second Validate should be a no-op")
	}
	if outer.passes != 1 || inner.passes != 1 {
		t.Errorf("layout passes = %d/%d, want 1/1", outer.passes, inner.passes)
	}
}
