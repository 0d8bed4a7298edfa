package focus

import (
	"fmt"
	"testing"

	"github.com/odvcencio/cellkit/pkg/ui/component"
	"github.com/odvcencio/cellkit/pkg/ui/event"
	"github.com/odvcencio/cellkit/pkg/ui/graphics"
)

type harness struct {
	tk   *component.Toolkit
	root *component.Component
	mgr  *Manager
	log  []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{tk: component.NewToolkit(component.Options{})}
	h.root = h.tk.New(component.Plain(component.KindWindow))
	h.root.SetBounds(graphics.NewRect(0, 0, 40, 10))
	h.mgr = NewManager(h.root, nil)
	return h
}

func (h *harness) add(parent *component.Component, name string, focusable bool) *component.Component {
	kind := component.KindButton
	if !focusable {
		kind = component.KindPanel
	}
	c := h.tk.New(component.Plain(kind))
	c.SetName(name)
	c.SetFocusable(focusable)
	c.SetBounds(graphics.NewRect(0, 0, 5, 1))
	_ = c.AddListener(event.CategoryFocus, event.Typed(func(ev *event.FocusEvent) {
		h.log = append(h.log, fmt.Sprintf("%s:%v", name, ev.Gained))
	}))
	if err := parent.Add(c, nil); err != nil {
		panic(err)
	}
	return c
}

func TestAdvance_WrapsInPreOrder(t *testing.T) {
	h := newHarness(t)
	a := h.add(h.root, "a", true)
	panel := h.add(h.root, "panel", false)
	b := h.add(panel, "b", true)
	c := h.add(h.root, "c", true)

	want := []*component.Component{a, b, c, a}
	for i, w := range want {
		h.mgr.Advance()
		if got := h.mgr.Owner(); got != w {
			t.Fatalf("step %d: owner = %v, want %v", i, got, w)
		}
	}

	h.mgr.Retreat()
	if h.mgr.Owner() != c {
		t.Errorf("Retreat from first should wrap to last, got %v", h.mgr.Owner())
	}
}

func TestAdvance_ReturnsToStartAfterFullCycle(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 5; i++ {
		h.add(h.root, fmt.Sprintf("c%d", i), true)
	}
	h.mgr.Advance()
	start := h.mgr.Owner()
	for i := 0; i < len(h.mgr.Order()); i++ {
		h.mgr.Advance()
	}
	if h.mgr.Owner() != start {
		t.Errorf("after N advances owner = %v, want %v", h.mgr.Owner(), start)
	}
}

func TestTransfer_LostBeforeGained(t *testing.T) {
	h := newHarness(t)
	a := h.add(h.root, "a", true)
	b := h.add(h.root, "b", true)

	h.mgr.RequestFocus(a)
	h.log = nil
	h.mgr.RequestFocus(b)

	if len(h.log) != 2 || h.log[0] != "a:false" || h.log[1] != "b:true" {
		t.Errorf("transition = %v, want [a:false b:true]", h.log)
	}
}

func TestRequestFocus_IneligibleIsNoop(t *testing.T) {
	h := newHarness(t)
	a := h.add(h.root, "a", true)
	hidden := h.add(h.root, "hidden", true)
	disabled := h.add(h.root, "disabled", true)
	plain := h.add(h.root, "plain", false)
	hidden.SetVisible(false)
	disabled.SetEnabled(false)

	h.mgr.RequestFocus(a)
	h.log = nil
	for _, c := range []*component.Component{hidden, disabled, plain, nil} {
		if h.mgr.RequestFocus(c) {
			t.Errorf("RequestFocus(%v) should be refused", c)
		}
	}
	if h.mgr.Owner() != a || len(h.log) != 0 {
		t.Errorf("owner = %v, events = %v", h.mgr.Owner(), h.log)
	}
	if order := h.mgr.Order(); len(order) != 1 {
		t.Errorf("Order() = %v, want only a", order)
	}
}

func TestSubtreeRemoved_TransfersOutside(t *testing.T) {
	h := newHarness(t)
	a := h.add(h.root, "a", true)
	panel := h.add(h.root, "panel", false)
	inner := h.add(panel, "inner", true)
	c := h.add(h.root, "c", true)

	h.mgr.RequestFocus(inner)
	h.mgr.SubtreeRemoved(panel)
	if h.mgr.Owner() != c {
		t.Errorf("owner = %v, want c (next outside subtree)", h.mgr.Owner())
	}

	h.mgr.SubtreeRemoved(a)
	if h.mgr.Owner() != c {
		t.Error("removing a subtree without the owner should not move focus")
	}
}

func TestSubtreeRemoved_ClearsWhenNothingLeft(t *testing.T) {
	h := newHarness(t)
	panel := h.add(h.root, "panel", false)
	only := h.add(panel, "only", true)

	h.mgr.RequestFocus(only)
	h.log = nil
	h.mgr.SubtreeRemoved(panel)
	if h.mgr.Owner() != nil {
		t.Errorf("owner = %v, want nil", h.mgr.Owner())
	}
	if len(h.log) != 1 || h.log[0] != "only:false" {
		t.Errorf("events = %v", h.log)
	}
}

func TestFocusEvent_Opposite(t *testing.T) {
	h := newHarness(t)
	a := h.add(h.root, "a", true)
	var opposite event.Source = a
	_ = a.AddListener(event.CategoryFocus, event.Typed(func(ev *event.FocusEvent) {
		opposite = ev.Opposite
	}))

	h.mgr.RequestFocus(a)
	if opposite != nil {
		t.Errorf("first gain should have no opposite, got %v", opposite)
	}
}
