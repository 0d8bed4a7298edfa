package widgets

import (
	"github.com/odvcencio/cellkit/pkg/errors"
	"github.com/odvcencio/cellkit/pkg/ui/component"
	"github.com/odvcencio/cellkit/pkg/ui/event"
)

// TableModel holds rows of string cells. Every mutation posts a
// TableModelEvent with the model as source; the dispatch loop delivers it
// back to the model, which fans it out to its listeners.
type TableModel struct {
	tk        *component.Toolkit
	id        string
	columns   []string
	rows      [][]string
	listeners *event.Registry
}

var _ event.Target = (*TableModel)(nil)

// NewTableModel creates an empty model with the given column names.
func NewTableModel(tk *component.Toolkit, columns ...string) *TableModel {
	return &TableModel{
		tk:        tk,
		id:        tk.NewID(),
		columns:   append([]string(nil), columns...),
		listeners: event.NewRegistry(),
	}
}

func (m *TableModel) ID() string { return m.id }

// DispatchEvent implements event.Target.
func (m *TableModel) DispatchEvent(ev event.Event) {
	m.listeners.FireAll(ev.Category(), ev)
}

// OnChange subscribes fn to the model's change notifications.
func (m *TableModel) OnChange(fn func(*event.TableModelEvent)) event.Listener {
	l := event.Typed(fn)
	_ = m.listeners.Subscribe(event.CategoryTableModel, l)
	return l
}

// RemoveListener unsubscribes a listener returned by OnChange.
func (m *TableModel) RemoveListener(l event.Listener) {
	m.listeners.Unsubscribe(event.CategoryTableModel, l)
}

func (m *TableModel) ColumnCount() int { return len(m.columns) }
func (m *TableModel) RowCount() int    { return len(m.rows) }

// ColumnName returns the name of column col.
func (m *TableModel) ColumnName(col int) string {
	if col < 0 || col >= len(m.columns) {
		return ""
	}
	return m.columns[col]
}

// Value returns the cell at row, col, or "" when out of range.
func (m *TableModel) Value(row, col int) string {
	if row < 0 || row >= len(m.rows) || col < 0 || col >= len(m.columns) {
		return ""
	}
	return m.rows[row][col]
}

// Row returns a copy of row.
func (m *TableModel) Row(row int) []string {
	if row < 0 || row >= len(m.rows) {
		return nil
	}
	return append([]string(nil), m.rows[row]...)
}

// AddRow appends a row.
func (m *TableModel) AddRow(values ...string) error {
	return m.InsertRow(len(m.rows), values...)
}

// InsertRow inserts a row before index row.
func (m *TableModel) InsertRow(row int, values ...string) error {
	if row < 0 || row > len(m.rows) {
		return rowRange(row, len(m.rows)+1)
	}
	if len(values) != len(m.columns) {
		return errors.Newf(errors.ErrCodeInvalidInput, "row has %d values, want %d", len(values), len(m.columns))
	}
	m.rows = append(m.rows, nil)
	copy(m.rows[row+1:], m.rows[row:])
	m.rows[row] = append([]string(nil), values...)
	m.notify(row, row, event.AllColumns, event.TableInsert)
	return nil
}

// SetValue replaces one cell.
func (m *TableModel) SetValue(row, col int, value string) error {
	if row < 0 || row >= len(m.rows) {
		return rowRange(row, len(m.rows))
	}
	if col < 0 || col >= len(m.columns) {
		return errors.Newf(errors.ErrCodeInvalidInput, "column %d out of range [0, %d)", col, len(m.columns))
	}
	if m.rows[row][col] == value {
		return nil
	}
	m.rows[row][col] = value
	m.notify(row, row, col, event.TableUpdate)
	return nil
}

// RemoveRow deletes one row.
func (m *TableModel) RemoveRow(row int) error {
	if row < 0 || row >= len(m.rows) {
		return rowRange(row, len(m.rows))
	}
	m.rows = append(m.rows[:row], m.rows[row+1:]...)
	m.notify(row, row, event.AllColumns, event.TableDelete)
	return nil
}

// Clear deletes every row.
func (m *TableModel) Clear() {
	if len(m.rows) == 0 {
		return
	}
	last := len(m.rows) - 1
	m.rows = nil
	m.notify(0, last, event.AllColumns, event.TableDelete)
}

func (m *TableModel) notify(first, last, col int, typ event.TableChange) {
	m.tk.Post(event.NewTableModelEvent(m, first, last, col, typ))
}

func rowRange(row, n int) error {
	return errors.Newf(errors.ErrCodeInvalidInput, "row %d out of range [0, %d)", row, n)
}
