// Package component implements the component tree: ownership, geometry,
// visibility, hit-testing, paint traversal and event delivery.
//
// All methods must be called from the dispatch goroutine.
package component

import (
	"github.com/odvcencio/cellkit/pkg/errors"
	"github.com/odvcencio/cellkit/pkg/ui/backend"
	"github.com/odvcencio/cellkit/pkg/ui/event"
	"github.com/odvcencio/cellkit/pkg/ui/graphics"
)

// Component is a node in the UI tree.
type Component struct {
	tk       *Toolkit
	id       string
	name     string
	kind     Kind
	behavior Behavior

	parent     *Component
	children   []*Component
	constraint any
	layout     LayoutManager
	observer   TreeObserver

	bounds    graphics.Rect
	insets    graphics.Insets
	preferred *graphics.Size
	fg, bg    backend.Color
	visible   bool
	enabled   bool
	focusable bool
	valid     bool

	listeners *event.Registry
}

// New creates a component for behavior. A nil behavior yields a plain
// custom component. It panics with an INVALID_ENUM error when the behavior
// reports a kind outside the enumeration.
func (tk *Toolkit) New(b Behavior) *Component {
	if b == nil {
		b = Plain(KindCustom)
	}
	if k := b.Kind(); !k.Valid() {
		panic(errors.Newf(errors.ErrCodeInvalidEnum, "invalid component kind %d", int(k)))
	}
	c := &Component{
		tk:        tk,
		id:        tk.NewID(),
		kind:      b.Kind(),
		behavior:  b,
		fg:        backend.ColorDefault,
		bg:        backend.ColorDefault,
		visible:   true,
		enabled:   true,
		listeners: event.NewRegistry(),
	}
	if binder, ok := b.(Binder); ok {
		binder.Bind(c)
	}
	return c
}

// ID returns the component's unique identifier.
func (c *Component) ID() string { return c.id }

// Kind returns the component kind.
func (c *Component) Kind() Kind { return c.kind }

// Behavior returns the kind-specific behavior.
func (c *Component) Behavior() Behavior { return c.behavior }

// Toolkit returns the toolkit the component was created from.
func (c *Component) Toolkit() *Toolkit { return c.tk }

// Name returns an optional human-readable name.
func (c *Component) Name() string { return c.name }

// SetName sets the name used in logs and tree dumps.
func (c *Component) SetName(name string) { c.name = name }

func (c *Component) String() string {
	if c.name != "" {
		return c.kind.String() + "(" + c.name + ")"
	}
	return c.kind.String() + "(" + c.id + ")"
}

// IsContainer reports whether the component accepts children.
func (c *Component) IsContainer() bool {
	switch c.kind {
	case KindWindow, KindPanel:
		return true
	case KindCustom:
		if ct, ok := c.behavior.(Container); ok {
			return ct.AcceptsChildren()
		}
	}
	return false
}

// Parent returns the owning container, or nil.
func (c *Component) Parent() *Component { return c.parent }

// Root returns the top-most ancestor.
func (c *Component) Root() *Component {
	r := c
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// IsAncestorOf reports whether c is a strict ancestor of other.
func (c *Component) IsAncestorOf(other *Component) bool {
	for p := other.parent; p != nil; p = p.parent {
		if p == c {
			return true
		}
	}
	return false
}

// Children returns a copy of the child list in insertion order.
func (c *Component) Children() []*Component {
	out := make([]*Component, len(c.children))
	copy(out, c.children)
	return out
}

// ChildCount returns the number of children.
func (c *Component) ChildCount() int { return len(c.children) }

// Constraint returns the layout constraint the component was added with.
func (c *Component) Constraint() any { return c.constraint }

// SetObserver attaches a tree observer. Only root components carry one.
func (c *Component) SetObserver(o TreeObserver) { c.observer = o }

func (c *Component) treeObserver() TreeObserver {
	return c.Root().observer
}

// Add appends child with an optional layout constraint.
func (c *Component) Add(child *Component, constraint any) error {
	if child == nil {
		return errors.New(errors.ErrCodeInvalidInput, "nil child")
	}
	if !c.IsContainer() {
		return errors.Newf(errors.ErrCodeNotContainer, "%s does not accept children", c.kind).
			WithContext("component", c.id)
	}
	if child == c || child.IsAncestorOf(c) {
		return errors.Newf(errors.ErrCodeCycle, "adding %s to %s would create a cycle", child, c).
			WithContext("component", c.id)
	}
	if child.parent != nil {
		return errors.Newf(errors.ErrCodeAlreadyOwned, "%s is already owned by %s", child, child.parent).
			WithContext("component", child.id)
	}
	if child.kind == KindWindow {
		return errors.Newf(errors.ErrCodeInvalidInput, "window %s cannot be a child", child)
	}
	if c.layout != nil {
		if err := c.layout.AddLayoutComponent(child, constraint); err != nil {
			return err
		}
	}

	c.children = append(c.children, child)
	child.parent = c
	child.constraint = constraint
	child.invalidateSubtree()
	c.Invalidate()
	child.Repaint()
	return nil
}

// Remove detaches child. Focus inside the child's subtree is transferred
// first and the vacated area is damaged.
func (c *Component) Remove(child *Component) error {
	idx := -1
	if child != nil && child.parent == c {
		for i, ch := range c.children {
			if ch == child {
				idx = i
				break
			}
		}
	}
	if idx < 0 {
		return errors.Newf(errors.ErrCodeNotChild, "%v is not a child of %s", child, c).
			WithContext("component", c.id)
	}

	if obs := c.treeObserver(); obs != nil {
		obs.Detaching(child)
	}
	child.Repaint()
	if c.layout != nil {
		c.layout.RemoveLayoutComponent(child)
	}

	c.children = append(c.children[:idx:idx], c.children[idx+1:]...)
	child.parent = nil
	child.constraint = nil
	c.Invalidate()
	return nil
}

// RemoveAll removes every child, last first.
func (c *Component) RemoveAll() {
	for i := len(c.children) - 1; i >= 0; i-- {
		_ = c.Remove(c.children[i])
	}
}

// Layout returns the layout manager, or nil for manual positioning.
func (c *Component) Layout() LayoutManager { return c.layout }

// SetLayout installs lm and registers the existing children with it.
func (c *Component) SetLayout(lm LayoutManager) error {
	if !c.IsContainer() {
		return errors.Newf(errors.ErrCodeNotContainer, "%s cannot have a layout", c.kind)
	}
	if lm != nil {
		for _, child := range c.children {
			if err := lm.AddLayoutComponent(child, child.constraint); err != nil {
				return err
			}
		}
	}
	c.layout = lm
	c.Invalidate()
	return nil
}

// Valid reports whether the component's layout is current.
func (c *Component) Valid() bool { return c.valid }

// Invalidate marks c and its ancestors as needing layout.
func (c *Component) Invalidate() {
	for p := c; p != nil; p = p.parent {
		p.valid = false
	}
	if obs := c.treeObserver(); obs != nil {
		obs.Invalidated(c)
	}
}

func (c *Component) invalidateSubtree() {
	c.valid = false
	for _, child := range c.children {
		child.invalidateSubtree()
	}
}

// Validate lays out c and any invalid descendants, parents before children.
func (c *Component) Validate() {
	if !c.valid {
		if c.layout != nil {
			c.layout.LayoutContainer(c)
		}
		c.valid = true
	}
	for _, child := range c.children {
		child.Validate()
	}
}

// Bounds returns the parent-relative bounds.
func (c *Component) Bounds() graphics.Rect { return c.bounds }

// Size returns the current size.
func (c *Component) Size() graphics.Size { return c.bounds.Size() }

// SetBounds moves and resizes the component. Both the old and new areas are
// damaged; a size change invalidates the component's own layout.
func (c *Component) SetBounds(r graphics.Rect) {
	if r.Width < 0 {
		r.Width = 0
	}
	if r.Height < 0 {
		r.Height = 0
	}
	if r == c.bounds {
		return
	}
	old := c.bounds
	c.Repaint()
	c.bounds = r
	c.Repaint()
	if old.Width != r.Width || old.Height != r.Height {
		c.valid = false
		if c.IsContainer() {
			if obs := c.treeObserver(); obs != nil {
				obs.Invalidated(c)
			}
		}
	}
}

// ScreenBounds returns the bounds translated to screen coordinates.
func (c *Component) ScreenBounds() graphics.Rect {
	r := c.bounds
	for p := c.parent; p != nil; p = p.parent {
		r = r.Translate(p.bounds.X, p.bounds.Y)
	}
	return r
}

// ScreenToLocal converts a screen point to c's coordinate space.
func (c *Component) ScreenToLocal(x, y int) graphics.Point {
	sb := c.ScreenBounds()
	return graphics.Point{X: x - sb.X, Y: y - sb.Y}
}

// Insets returns the border insets children are laid out within.
func (c *Component) Insets() graphics.Insets { return c.insets }

// SetInsets sets the border insets.
func (c *Component) SetInsets(in graphics.Insets) {
	if in == c.insets {
		return
	}
	c.insets = in
	c.Invalidate()
}

// ContentBounds returns the area inside the insets in c's coordinates.
func (c *Component) ContentBounds() graphics.Rect {
	return graphics.Rect{Width: c.bounds.Width, Height: c.bounds.Height}.Inset(c.insets)
}

// PreferredSize returns the override if set, then the behavior's natural
// size, then the layout's preferred size, then the current size.
func (c *Component) PreferredSize() graphics.Size {
	if c.preferred != nil {
		return *c.preferred
	}
	if s, ok := c.behavior.(Sizer); ok {
		return s.PreferredSize(c)
	}
	if c.layout != nil {
		return c.layout.PreferredSize(c)
	}
	return c.bounds.Size()
}

// SetPreferredSize overrides the preferred size. Pass nil to clear.
func (c *Component) SetPreferredSize(s *graphics.Size) {
	if s != nil {
		cp := *s
		s = &cp
	}
	c.preferred = s
	if c.parent != nil {
		c.parent.Invalidate()
	}
}

// Foreground returns the foreground color.
func (c *Component) Foreground() backend.Color { return c.fg }

// Background returns the background color.
func (c *Component) Background() backend.Color { return c.bg }

// SetForeground sets the foreground color and repaints.
func (c *Component) SetForeground(col backend.Color) {
	if col != c.fg {
		c.fg = col
		c.Repaint()
	}
}

// SetBackground sets the background color and repaints.
func (c *Component) SetBackground(col backend.Color) {
	if col != c.bg {
		c.bg = col
		c.Repaint()
	}
}

// Style resolves the component's colors over fallback. Default colors on the
// component defer to fallback.
func (c *Component) Style(fallback backend.Style) backend.Style {
	s := fallback
	if c.fg != backend.ColorDefault {
		s = s.Foreground(c.fg)
	}
	if c.bg != backend.ColorDefault {
		s = s.Background(c.bg)
	}
	return s
}

// Visible reports the component's own visibility flag.
func (c *Component) Visible() bool { return c.visible }

// SetVisible shows or hides the component. Hiding transfers focus out of
// the subtree.
func (c *Component) SetVisible(v bool) {
	if v == c.visible {
		return
	}
	if !v {
		if obs := c.treeObserver(); obs != nil {
			obs.Detaching(c)
		}
		c.Repaint()
		c.visible = false
	} else {
		c.visible = true
		c.Repaint()
	}
	if c.parent != nil {
		c.parent.Invalidate()
	}
}

// Showing reports whether c and all its ancestors are visible.
func (c *Component) Showing() bool {
	for p := c; p != nil; p = p.parent {
		if !p.visible {
			return false
		}
	}
	return true
}

// Enabled reports the component's own enabled flag.
func (c *Component) Enabled() bool { return c.enabled }

// SetEnabled enables or disables input. Disabling transfers focus out of
// the subtree.
func (c *Component) SetEnabled(e bool) {
	if e == c.enabled {
		return
	}
	if !e {
		if obs := c.treeObserver(); obs != nil {
			obs.Detaching(c)
		}
	}
	c.enabled = e
	c.Repaint()
}

// EnabledInTree reports whether c and all its ancestors are enabled.
func (c *Component) EnabledInTree() bool {
	for p := c; p != nil; p = p.parent {
		if !p.enabled {
			return false
		}
	}
	return true
}

// Focusable reports whether c takes part in focus traversal.
func (c *Component) Focusable() bool { return c.focusable }

// SetFocusable includes or excludes c from focus traversal.
func (c *Component) SetFocusable(f bool) {
	if f == c.focusable {
		return
	}
	if !f {
		if obs := c.treeObserver(); obs != nil && obs.FocusOwner() == c {
			obs.Detaching(c)
		}
	}
	c.focusable = f
}

// HasFocus reports whether c is its window's focus owner.
func (c *Component) HasFocus() bool {
	obs := c.treeObserver()
	return obs != nil && obs.FocusOwner() == c
}

// Repaint damages the component's screen area if it is showing.
func (c *Component) Repaint() {
	if !c.Showing() || c.bounds.Empty() {
		return
	}
	if obs := c.treeObserver(); obs != nil {
		obs.Damage(c.ScreenBounds())
	}
}

// Listeners returns the component's listener registry.
func (c *Component) Listeners() *event.Registry { return c.listeners }

// AddListener subscribes l to category cat.
func (c *Component) AddListener(cat event.Category, l event.Listener) error {
	return c.listeners.Subscribe(cat, l)
}

// RemoveListener unsubscribes l from category cat.
func (c *Component) RemoveListener(cat event.Category, l event.Listener) {
	c.listeners.Unsubscribe(cat, l)
}

// Post queues ev on the toolkit's dispatch loop.
func (c *Component) Post(ev event.Event) {
	c.tk.Post(ev)
}

// Deliver runs the kind handler for ev and then fans it out to listeners.
// Disabled components only receive focus events.
func (c *Component) Deliver(ev event.Event) {
	switch e := ev.(type) {
	case *event.KeyEvent:
		if h, ok := c.behavior.(KeyHandler); ok && c.EnabledInTree() {
			h.HandleKey(c, e)
		}
	case *event.MouseEvent:
		if h, ok := c.behavior.(MouseHandler); ok && c.EnabledInTree() {
			h.HandleMouse(c, e)
		}
	case *event.FocusEvent:
		if h, ok := c.behavior.(FocusHandler); ok {
			h.HandleFocus(c, e)
		}
	}
	c.listeners.FireAll(ev.Category(), ev)
}

// DispatchEvent implements event.Target.
func (c *Component) DispatchEvent(ev event.Event) {
	c.Deliver(ev)
}

// ComponentAt returns the deepest component containing p, given in c's
// coordinates. Later children are on top. Returns nil when p is outside c.
func (c *Component) ComponentAt(p graphics.Point) *Component {
	local := graphics.Rect{Width: c.bounds.Width, Height: c.bounds.Height}
	if !local.Contains(p.X, p.Y) {
		return nil
	}
	for i := len(c.children) - 1; i >= 0; i-- {
		child := c.children[i]
		if !child.visible || !child.enabled {
			continue
		}
		if !child.bounds.Contains(p.X, p.Y) {
			continue
		}
		return child.ComponentAt(graphics.Point{X: p.X - child.bounds.X, Y: p.Y - child.bounds.Y})
	}
	return c
}

// PaintTree paints c and its children back to front. s has its origin at
// c's top-left corner; region is in the same coordinates.
func (c *Component) PaintTree(s *graphics.Surface, region graphics.Rect) {
	if !c.visible {
		return
	}
	clip := graphics.Rect{Width: c.bounds.Width, Height: c.bounds.Height}.Intersection(region)
	if clip.Empty() {
		return
	}
	cs := s.WithClip(clip)
	if p, ok := c.behavior.(Painter); ok {
		p.Paint(c, cs, clip)
	} else {
		cs.Clear(c.Style(c.tk.theme.Panel))
	}
	for _, child := range c.children {
		if !child.visible || !child.bounds.Intersects(clip) {
			continue
		}
		child.PaintTree(cs.Sub(child.bounds), clip.Translate(-child.bounds.X, -child.bounds.Y))
	}
}

// Walk visits c and its descendants in pre-order until fn returns false.
func (c *Component) Walk(fn func(*Component) bool) bool {
	if !fn(c) {
		return false
	}
	for _, child := range c.children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}
