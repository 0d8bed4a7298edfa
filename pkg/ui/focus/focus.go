// Package focus tracks the keyboard focus owner of one window and moves it
// along the window's traversal order.
package focus

import (
	"github.com/odvcencio/cellkit/pkg/logging"
	"github.com/odvcencio/cellkit/pkg/ui/component"
	"github.com/odvcencio/cellkit/pkg/ui/event"
)

// Manager owns the focus state of a single component tree.
type Manager struct {
	root   *component.Component
	owner  *component.Component
	logger *logging.Logger
}

// NewManager creates a manager for the tree under root.
func NewManager(root *component.Component, logger *logging.Logger) *Manager {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Manager{root: root, logger: logger.WithCategory(logging.CategoryFocus)}
}

// Eligible reports whether c can take focus: traversable, showing and
// enabled along its whole ancestry.
func Eligible(c *component.Component) bool {
	return c != nil && c.Focusable() && c.Showing() && c.EnabledInTree()
}

// Owner returns the focused component, or nil.
func (m *Manager) Owner() *component.Component {
	return m.owner
}

// Order returns the eligible components in pre-order.
func (m *Manager) Order() []*component.Component {
	var out []*component.Component
	m.root.Walk(func(c *component.Component) bool {
		if Eligible(c) {
			out = append(out, c)
		}
		return true
	})
	return out
}

// RequestFocus moves focus to c. Ineligible components are ignored.
func (m *Manager) RequestFocus(c *component.Component) bool {
	if !Eligible(c) || c.Root() != m.root {
		return false
	}
	m.transfer(c)
	return true
}

// Advance moves focus to the next eligible component, wrapping at the end.
func (m *Manager) Advance() bool {
	return m.step(1)
}

// Retreat moves focus to the previous eligible component, wrapping at the
// start.
func (m *Manager) Retreat() bool {
	return m.step(-1)
}

// FocusFirst focuses the first eligible component if nothing has focus.
func (m *Manager) FocusFirst() bool {
	if m.owner != nil {
		return false
	}
	return m.step(1)
}

func (m *Manager) step(dir int) bool {
	order := m.Order()
	if len(order) == 0 {
		return false
	}
	idx := indexOf(order, m.owner)
	var next int
	switch {
	case idx < 0 && dir > 0:
		next = 0
	case idx < 0:
		next = len(order) - 1
	default:
		next = (idx + dir + len(order)) % len(order)
	}
	if order[next] == m.owner {
		return false
	}
	m.transfer(order[next])
	return true
}

// Clear removes focus from the current owner.
func (m *Manager) Clear() {
	m.transfer(nil)
}

// SubtreeRemoved moves focus out of the subtree at sub when the owner lies
// inside it. Focus goes to the next eligible component after the owner that
// is outside the subtree, or is cleared if there is none. Must be called
// while sub is still attached.
func (m *Manager) SubtreeRemoved(sub *component.Component) {
	if m.owner == nil || (m.owner != sub && !sub.IsAncestorOf(m.owner)) {
		return
	}

	var all []*component.Component
	m.root.Walk(func(c *component.Component) bool {
		if c == m.owner || Eligible(c) {
			all = append(all, c)
		}
		return true
	})
	start := indexOf(all, m.owner)
	for i := 1; i < len(all); i++ {
		cand := all[(start+i)%len(all)]
		if cand == sub || sub.IsAncestorOf(cand) {
			continue
		}
		m.transfer(cand)
		return
	}
	m.transfer(nil)
}

// transfer delivers focus-lost to the old owner and then focus-gained to
// the new one, synchronously.
func (m *Manager) transfer(next *component.Component) {
	prev := m.owner
	if prev == next {
		return
	}
	m.owner = next

	if prev != nil {
		prev.Deliver(event.NewFocusEvent(prev, false, source(next)))
		prev.Repaint()
	}
	if next != nil {
		next.Deliver(event.NewFocusEvent(next, true, source(prev)))
		next.Repaint()
	}
	m.logger.Debug("focus transferred", "from", describe(prev), "to", describe(next))
}

func source(c *component.Component) event.Source {
	if c == nil {
		return nil
	}
	return c
}

func describe(c *component.Component) string {
	if c == nil {
		return ""
	}
	return c.String()
}

func indexOf(list []*component.Component, c *component.Component) int {
	if c == nil {
		return -1
	}
	for i, x := range list {
		if x == c {
			return i
		}
	}
	return -1
}
