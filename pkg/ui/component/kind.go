package component

import (
	"github.com/odvcencio/cellkit/pkg/ui/event"
	"github.com/odvcencio/cellkit/pkg/ui/graphics"
)

// Kind is the closed set of component kinds.
type Kind int

const (
	KindWindow Kind = iota + 1
	KindPanel
	KindLabel
	KindButton
	KindTextField
	KindCheckBox
	KindList
	KindCustom
)

var kindNames = [...]string{
	KindWindow:    "window",
	KindPanel:     "panel",
	KindLabel:     "label",
	KindButton:    "button",
	KindTextField: "text-field",
	KindCheckBox:  "check-box",
	KindList:      "list",
	KindCustom:    "custom",
}

func (k Kind) String() string {
	if k.Valid() {
		return kindNames[k]
	}
	return "invalid"
}

// Valid reports whether k is a declared kind.
func (k Kind) Valid() bool {
	return k >= KindWindow && k <= KindCustom
}

// Behavior supplies the kind-specific part of a component. It may implement
// any of the capability interfaces below.
type Behavior interface {
	Kind() Kind
}

// Binder is called once when the behavior is attached to its component.
type Binder interface {
	Bind(c *Component)
}

// Container is implemented by custom behaviors that accept children.
type Container interface {
	AcceptsChildren() bool
}

// Painter draws the component. s has its origin at the component's top-left
// corner and clip is the writable area in the same coordinates.
type Painter interface {
	Paint(c *Component, s *graphics.Surface, clip graphics.Rect)
}

// Sizer reports the natural size of a component.
type Sizer interface {
	PreferredSize(c *Component) graphics.Size
}

// KeyHandler receives key events before listeners.
type KeyHandler interface {
	HandleKey(c *Component, ev *event.KeyEvent)
}

// MouseHandler receives mouse events before listeners.
type MouseHandler interface {
	HandleMouse(c *Component, ev *event.MouseEvent)
}

// FocusHandler receives focus transitions before listeners.
type FocusHandler interface {
	HandleFocus(c *Component, ev *event.FocusEvent)
}

// TextEditable is implemented by behaviors holding editable text.
type TextEditable interface {
	Text() string
	SetText(text string)
	Caret() int
}

// LayoutManager positions a container's children.
type LayoutManager interface {
	AddLayoutComponent(child *Component, constraint any) error
	RemoveLayoutComponent(child *Component)
	PreferredSize(parent *Component) graphics.Size
	LayoutContainer(parent *Component)
}

// TreeObserver is attached to a root component by its window. Components
// report damage, invalidation and removal through it.
type TreeObserver interface {
	// Damage marks r, in screen coordinates, for repaint.
	Damage(r graphics.Rect)
	// Invalidated reports that c needs layout before the next render.
	Invalidated(c *Component)
	// Detaching is called before c's subtree is removed or hidden.
	Detaching(c *Component)
	// FocusOwner returns the component holding focus in the tree.
	FocusOwner() *Component
}

// base is the behavior of components created without one.
type base struct{ kind Kind }

func (b base) Kind() Kind { return b.kind }

// Plain returns a behavior with no capabilities beyond its kind.
func Plain(kind Kind) Behavior {
	return base{kind: kind}
}
