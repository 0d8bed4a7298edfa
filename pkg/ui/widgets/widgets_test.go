package widgets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/cellkit/pkg/errors"
	"github.com/odvcencio/cellkit/pkg/ui/component"
	"github.com/odvcencio/cellkit/pkg/ui/event"
	"github.com/odvcencio/cellkit/pkg/ui/graphics"
	"github.com/odvcencio/cellkit/pkg/ui/layout"
)

// Without a dispatch queue the toolkit delivers posted events immediately,
// which keeps these tests synchronous.
func newToolkit() *component.Toolkit {
	return component.NewToolkit(component.Options{})
}

func key(code event.Key) *event.KeyEvent {
	return event.NewKeyEvent(nil, code, 0)
}

func click(x, y int) *event.MouseEvent {
	return event.NewMouseEvent(nil, event.MouseClicked, 1, x, y)
}

func paint(c *component.Component, w, h int) *graphics.Buffer {
	buf := graphics.NewBuffer(w, h)
	c.SetBounds(graphics.NewRect(0, 0, w, h))
	c.PaintTree(graphics.NewSurface(buf), graphics.NewRect(0, 0, w, h))
	return buf
}

func row(buf *graphics.Buffer, y int) string {
	w, _ := buf.Size()
	out := make([]rune, 0, w)
	for x := 0; x < w; x++ {
		out = append(out, buf.Get(x, y).Rune)
	}
	return string(out)
}

func TestButton_Activation(t *testing.T) {
	b := NewButton(newToolkit(), "OK")
	var commands []string
	b.OnAction(func(e *event.ActionEvent) { commands = append(commands, e.Command) })

	enter := key(event.KeyEnter)
	b.Component().Deliver(enter)
	b.Component().Deliver(key(event.KeySpace))
	b.Component().Deliver(event.NewKeyEvent(nil, event.KeyEnter, event.ModShift))
	b.Component().Deliver(click(1, 0))
	b.Component().Deliver(event.NewMouseEvent(nil, event.MouseClicked, 3, 1, 0))

	assert.Equal(t, []string{"OK", "OK", "OK"}, commands)
	assert.True(t, enter.Consumed())
	assert.True(t, b.Component().Focusable())
}

func TestButton_DisabledIgnoresInput(t *testing.T) {
	b := NewButton(newToolkit(), "OK")
	fired := 0
	b.OnAction(func(*event.ActionEvent) { fired++ })

	b.Component().SetEnabled(false)
	b.Component().Deliver(key(event.KeyEnter))
	assert.Zero(t, fired)
}

func TestButton_PaintCentersLabel(t *testing.T) {
	b := NewButton(newToolkit(), "OK")
	assert.Equal(t, graphics.Size{Width: 6, Height: 1}, b.Component().PreferredSize())

	buf := paint(b.Component(), 10, 1)
	assert.Equal(t, "  [ OK ]  ", row(buf, 0))
}

func TestTextField_Editing(t *testing.T) {
	f := NewTextField(newToolkit(), 10)
	changes := 0
	f.OnChange(func(*event.ChangeEvent) { changes++ })
	var submitted []string
	f.OnAction(func(e *event.ActionEvent) { submitted = append(submitted, e.Command) })
	c := f.Component()

	c.Deliver(event.NewCharEvent(nil, 'h', 0))
	c.Deliver(event.NewCharEvent(nil, 'i', 0))
	require.Equal(t, "hi", f.Text())
	require.Equal(t, 2, f.Caret())

	c.Deliver(key(event.KeyLeft))
	c.Deliver(event.NewCharEvent(nil, 'x', 0))
	assert.Equal(t, "hxi", f.Text())
	assert.Equal(t, 2, f.Caret())

	c.Deliver(key(event.KeyBackspace))
	assert.Equal(t, "hi", f.Text())
	c.Deliver(key(event.KeyDelete))
	assert.Equal(t, "h", f.Text())

	c.Deliver(key(event.KeyEnter))
	assert.Equal(t, []string{"h"}, submitted)
	assert.Equal(t, 5, changes)
}

func TestTextField_LeavesTraversalKeys(t *testing.T) {
	f := NewTextField(newToolkit(), 10)
	tab := key(event.KeyTab)
	f.Component().Deliver(tab)
	assert.False(t, tab.Consumed())

	ctrl := event.NewKeyEvent(nil, event.KeyCtrlA+16, event.ModCtrl)
	f.Component().Deliver(ctrl)
	assert.Empty(t, f.Text())
}

func TestTextField_ClickMovesCaret(t *testing.T) {
	f := NewTextField(newToolkit(), 10)
	f.SetText("hello")
	f.Component().SetBounds(graphics.NewRect(4, 2, 10, 1))

	f.Component().Deliver(click(6, 2))
	assert.Equal(t, 2, f.Caret())
	f.Component().Deliver(click(13, 2))
	assert.Equal(t, 5, f.Caret())
}

func TestCheckBox_Toggle(t *testing.T) {
	cb := NewCheckBox(newToolkit(), "Remember", false)
	var states []event.ItemState
	cb.OnItem(func(e *event.ItemEvent) {
		assert.Equal(t, "Remember", e.Item)
		states = append(states, e.State)
	})

	cb.Component().Deliver(key(event.KeySpace))
	cb.Component().Deliver(click(0, 0))
	cb.SetChecked(false)

	assert.Equal(t, []event.ItemState{event.ItemSelected, event.ItemDeselected}, states)
	assert.False(t, cb.Checked())

	cb.SetChecked(true)
	buf := paint(cb.Component(), 12, 1)
	assert.Equal(t, "[x] Remember", row(buf, 0))
}

func TestList_Selection(t *testing.T) {
	l := NewList(newToolkit(), "red", "green", "blue")
	l.Component().SetBounds(graphics.NewRect(0, 0, 10, 3))
	type span struct{ first, last int }
	var spans []span
	l.OnSelection(func(e *event.ListSelectionEvent) { spans = append(spans, span{e.First, e.Last}) })

	l.Component().Deliver(key(event.KeyDown))
	l.Component().Deliver(key(event.KeyDown))
	l.Component().Deliver(click(2, 0))
	assert.Equal(t, 0, l.Selected())
	assert.Equal(t, []span{{0, 0}, {0, 1}, {0, 1}}, spans)

	item, ok := l.SelectedItem()
	assert.True(t, ok)
	assert.Equal(t, "red", item)

	err := l.SetSelected(3)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidInput))
	require.NoError(t, l.SetSelected(-1))
	assert.Equal(t, span{0, 0}, spans[len(spans)-1])
}

func TestList_EnterPostsSelectedItem(t *testing.T) {
	l := NewList(newToolkit(), "a", "b")
	var got []string
	l.OnAction(func(e *event.ActionEvent) { got = append(got, e.Command) })

	l.Component().Deliver(key(event.KeyEnter))
	require.NoError(t, l.SetSelected(1))
	l.Component().Deliver(key(event.KeyEnter))
	assert.Equal(t, []string{"b"}, got)
}

func TestList_ScrollsToSelection(t *testing.T) {
	l := NewList(newToolkit(), "a", "b", "c", "d", "e")
	l.Component().SetBounds(graphics.NewRect(0, 0, 4, 2))
	require.NoError(t, l.SetSelected(4))

	buf := graphics.NewBuffer(4, 2)
	l.Component().PaintTree(graphics.NewSurface(buf), graphics.NewRect(0, 0, 4, 2))
	assert.Equal(t, 'd', buf.Get(0, 0).Rune)
	assert.Equal(t, 'e', buf.Get(0, 1).Rune)
}

func TestLabel_Align(t *testing.T) {
	l := NewLabel(newToolkit(), "ab")
	err := l.SetAlign(Align(42))
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidEnum))
	assert.Equal(t, AlignLeft, l.Align())

	require.NoError(t, l.SetAlign(AlignRight))
	buf := paint(l.Component(), 5, 1)
	assert.Equal(t, "   ab", row(buf, 0))
}

func TestLabel_SetTextInvalidatesParent(t *testing.T) {
	tk := newToolkit()
	box, err := layout.NewBox(layout.AxisX)
	require.NoError(t, err)
	p := NewPanel(tk, box)
	l := NewLabel(tk, "a")
	require.NoError(t, p.Add(l.Component(), nil))
	p.Component().SetBounds(graphics.NewRect(0, 0, 10, 1))
	p.Component().Validate()
	require.Equal(t, 1, l.Component().Size().Width)

	l.SetText("abc")
	assert.False(t, p.Component().Valid())
	p.Component().Validate()
	assert.Equal(t, 3, l.Component().Size().Width)
}

func TestPanel_Border(t *testing.T) {
	p := NewPanel(newToolkit(), nil)
	p.SetBorder(true)
	p.SetTitle("Hi")

	buf := paint(p.Component(), 10, 3)
	assert.Equal(t, "┌─ Hi ───┐", row(buf, 0))
	assert.Equal(t, "└────────┘", row(buf, 2))
	assert.Equal(t, graphics.NewRect(1, 1, 8, 1), p.Component().ContentBounds())

	p.SetBorder(false)
	assert.Equal(t, graphics.NewRect(0, 0, 10, 3), p.Component().ContentBounds())
}

func TestTableModel_Notifications(t *testing.T) {
	m := NewTableModel(newToolkit(), "name", "size")
	var got []event.TableModelEvent
	m.OnChange(func(e *event.TableModelEvent) {
		assert.Same(t, m, e.Source())
		got = append(got, *e)
	})

	require.NoError(t, m.AddRow("a", "1"))
	require.NoError(t, m.AddRow("b", "2"))
	require.NoError(t, m.SetValue(1, 1, "3"))
	require.NoError(t, m.RemoveRow(0))

	require.Len(t, got, 4)
	assert.Equal(t, event.TableInsert, got[0].Type)
	assert.Equal(t, 1, got[1].FirstRow)
	assert.Equal(t, event.TableUpdate, got[2].Type)
	assert.Equal(t, 1, got[2].Column)
	assert.Equal(t, event.TableDelete, got[3].Type)
	assert.Equal(t, event.AllColumns, got[3].Column)

	assert.Equal(t, 1, m.RowCount())
	assert.Equal(t, "3", m.Value(0, 1))
}

func TestTableModel_Errors(t *testing.T) {
	m := NewTableModel(newToolkit(), "name", "size")
	assert.True(t, errors.IsCode(m.AddRow("only one"), errors.ErrCodeInvalidInput))
	assert.True(t, errors.IsCode(m.RemoveRow(0), errors.ErrCodeInvalidInput))
	assert.True(t, errors.IsCode(m.SetValue(0, 0, "x"), errors.ErrCodeInvalidInput))
	assert.True(t, errors.IsCode(m.InsertRow(2, "a", "b"), errors.ErrCodeInvalidInput))
}
