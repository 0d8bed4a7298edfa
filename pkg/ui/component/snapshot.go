package component

import "github.com/odvcencio/cellkit/pkg/ui/graphics"

// Node is a serializable view of a component subtree.
type Node struct {
	ID        string        `json:"id"`
	Kind      string        `json:"kind"`
	Name      string        `json:"name,omitempty"`
	Bounds    graphics.Rect `json:"bounds"`
	Visible   bool          `json:"visible"`
	Enabled   bool          `json:"enabled"`
	Focusable bool          `json:"focusable"`
	Focused   bool          `json:"focused,omitempty"`
	Text      string        `json:"text,omitempty"`
	Children  []Node        `json:"children,omitempty"`
}

// Snapshot captures c and its descendants.
func (c *Component) Snapshot() Node {
	n := Node{
		ID:        c.id,
		Kind:      c.kind.String(),
		Name:      c.name,
		Bounds:    c.bounds,
		Visible:   c.visible,
		Enabled:   c.enabled,
		Focusable: c.focusable,
		Focused:   c.HasFocus(),
	}
	if te, ok := c.behavior.(TextEditable); ok {
		n.Text = te.Text()
	}
	for _, child := range c.children {
		n.Children = append(n.Children, child.Snapshot())
	}
	return n
}
