package main

import (
	"fmt"
	"strconv"

	"github.com/odvcencio/cellkit/pkg/ui/component"
	"github.com/odvcencio/cellkit/pkg/ui/event"
	"github.com/odvcencio/cellkit/pkg/ui/graphics"
	"github.com/odvcencio/cellkit/pkg/ui/layout"
	"github.com/odvcencio/cellkit/pkg/ui/widgets"
	"github.com/odvcencio/cellkit/pkg/ui/window"
)

// demoForm is the window the CLI shows: a small entry form whose
// submissions are collected in a table model.
type demoForm struct {
	win     *window.Window
	name    *widgets.TextField
	notify  *widgets.CheckBox
	choices *widgets.List
	ok      *widgets.Button
	quit    *widgets.Button
	status  *widgets.Label
	entries *widgets.TableModel
}

var demoChoices = []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot"}

// newDemoForm builds the form. onQuit runs when Quit is pressed or Escape
// or Ctrl+C reaches a focused widget.
func newDemoForm(tk *component.Toolkit, onQuit func()) (*demoForm, error) {
	f := &demoForm{
		win:     window.New(tk, window.Options{Title: "cellkit", Border: true}),
		name:    widgets.NewTextField(tk, 20),
		notify:  widgets.NewCheckBox(tk, "Notify me", false),
		choices: widgets.NewList(tk, demoChoices...),
		ok:      widgets.NewButton(tk, "OK"),
		quit:    widgets.NewButton(tk, "Quit"),
		status:  widgets.NewLabel(tk, "Tab moves focus, Esc quits"),
		entries: widgets.NewTableModel(tk, "name", "choice", "notify"),
	}
	f.choices.SetVisibleRows(4)

	if err := f.win.SetLayout(layout.NewCompass(0, 1)); err != nil {
		return nil, err
	}

	form := widgets.NewPanel(tk, layout.NewGrid())
	form.SetBorder(true)
	form.SetTitle("Entry")
	rows := []struct {
		label string
		field *component.Component
	}{
		{"Name", f.name.Component()},
		{"Choice", f.choices.Component()},
		{"", f.notify.Component()},
	}
	for i, row := range rows {
		lc := layout.Cell(0, i)
		lc.Anchor = layout.AnchorNorthWest
		lc.Insets = graphics.Insets{Right: 1}
		if err := form.Add(widgets.NewLabel(tk, row.label).Component(), lc); err != nil {
			return nil, err
		}
		fc := layout.Cell(1, i)
		fc.WeightX = 1
		fc.Fill = layout.FillHorizontal
		fc.Insets = graphics.Insets{Bottom: 1}
		if err := form.Add(row.field, fc); err != nil {
			return nil, err
		}
	}

	buttonRow, err := layout.NewBox(layout.AxisX)
	if err != nil {
		return nil, err
	}
	buttonRow.Gap = 2
	buttons := widgets.NewPanel(tk, buttonRow)
	for _, b := range []*widgets.Button{f.ok, f.quit} {
		if err := buttons.Add(b.Component(), nil); err != nil {
			return nil, err
		}
	}

	for _, part := range []struct {
		c      *component.Component
		region layout.Region
	}{
		{f.status.Component(), layout.North},
		{form.Component(), layout.Center},
		{buttons.Component(), layout.South},
	} {
		if err := f.win.Add(part.c, part.region); err != nil {
			return nil, err
		}
	}

	f.ok.OnAction(func(*event.ActionEvent) { f.submit() })
	f.name.OnAction(func(*event.ActionEvent) { f.submit() })
	f.quit.OnAction(func(*event.ActionEvent) { onQuit() })
	f.entries.OnChange(func(ev *event.TableModelEvent) {
		f.status.SetText(fmt.Sprintf("%d entries, last: %s", f.entries.RowCount(), f.entries.Value(ev.LastRow, 0)))
	})

	quitKeys := event.Typed(func(ev *event.KeyEvent) {
		if ev.Code == event.KeyEscape || ev.Code == keyCtrlC {
			ev.Consume()
			onQuit()
		}
	})
	for _, c := range []*component.Component{
		f.name.Component(), f.choices.Component(), f.notify.Component(), f.ok.Component(), f.quit.Component(),
	} {
		if err := c.AddListener(event.CategoryKey, quitKeys); err != nil {
			return nil, err
		}
	}
	return f, nil
}

const keyCtrlC = event.KeyCtrlA + 2

// submit records the current form values and clears the name field.
func (f *demoForm) submit() {
	name := f.name.Text()
	if name == "" {
		f.status.SetText("Name is required")
		return
	}
	choice, _ := f.choices.SelectedItem()
	if err := f.entries.AddRow(name, choice, strconv.FormatBool(f.notify.Checked())); err != nil {
		f.status.SetText(err.Error())
		return
	}
	f.name.SetText("")
}
