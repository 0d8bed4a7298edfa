// Package event defines the event records delivered by the dispatch loop and
// the per-component listener registry that fans them out.
package event

import "time"

// Source is a non-owning reference to whatever emitted an event.
type Source interface {
	ID() string
}

// Target is a Source the dispatch loop can deliver events to.
type Target interface {
	Source
	DispatchEvent(Event)
}

// Event is an immutable record except for its consumed flag.
type Event interface {
	Category() Category
	Source() Source
	When() time.Time
	Consumed() bool
	Consume()
}

// Retargetable events can be copied with a resolved source. The dispatch
// loop uses this for input records posted without one.
type Retargetable interface {
	Event
	Retarget(src Source) Event
}

// Header carries the fields common to every event.
type Header struct {
	source   Source
	when     time.Time
	consumed bool
}

// NewHeader builds a header stamped with when, or the current time if zero.
func NewHeader(src Source, when time.Time) Header {
	if when.IsZero() {
		when = time.Now()
	}
	return Header{source: src, when: when}
}

// Source returns the emitting entity, which may be nil for raw input.
func (h *Header) Source() Source { return h.source }

// When returns the event timestamp.
func (h *Header) When() time.Time { return h.when }

// Consumed reports whether a handler or listener consumed the event.
func (h *Header) Consumed() bool { return h.consumed }

// Consume marks the event so no further listeners see it.
func (h *Header) Consume() { h.consumed = true }

// KeyEvent is a key press. Char is the typed character, zero for special keys.
type KeyEvent struct {
	Header
	Code Key
	Char rune
	Mods Modifier
}

// NewKeyEvent builds a key event from a key code.
func NewKeyEvent(src Source, code Key, mods Modifier) *KeyEvent {
	ev := &KeyEvent{Header: NewHeader(src, time.Time{}), Code: code, Mods: mods}
	if code.Printable() {
		ev.Char = rune(code)
	}
	return ev
}

// NewCharEvent builds a key event for a typed character.
func NewCharEvent(src Source, r rune, mods Modifier) *KeyEvent {
	return &KeyEvent{Header: NewHeader(src, time.Time{}), Code: Key(r), Char: r, Mods: mods}
}

func (e *KeyEvent) Category() Category { return CategoryKey }

func (e *KeyEvent) Retarget(src Source) Event {
	cp := *e
	cp.source = src
	return &cp
}

// MouseAction is the kind of mouse event.
type MouseAction int

const (
	MousePressed MouseAction = iota + 1
	MouseReleased
	MouseClicked
)

func (a MouseAction) String() string {
	switch a {
	case MousePressed:
		return "pressed"
	case MouseReleased:
		return "released"
	case MouseClicked:
		return "clicked"
	}
	return "unknown"
}

// MouseEvent is a mouse action at screen coordinates X, Y.
type MouseEvent struct {
	Header
	Action MouseAction
	Button int
	X, Y   int
}

// NewMouseEvent builds a mouse event.
func NewMouseEvent(src Source, action MouseAction, button, x, y int) *MouseEvent {
	return &MouseEvent{
		Header: NewHeader(src, time.Time{}),
		Action: action,
		Button: button,
		X:      x,
		Y:      y,
	}
}

func (e *MouseEvent) Category() Category { return CategoryMouse }

func (e *MouseEvent) Retarget(src Source) Event {
	cp := *e
	cp.source = src
	return &cp
}

// ActionEvent reports a semantic command such as a button activation.
type ActionEvent struct {
	Header
	Command string
}

func NewActionEvent(src Source, command string) *ActionEvent {
	return &ActionEvent{Header: NewHeader(src, time.Time{}), Command: command}
}

func (e *ActionEvent) Category() Category { return CategoryAction }

// FocusEvent reports a focus transition. Opposite is the other party, if any.
type FocusEvent struct {
	Header
	Gained   bool
	Opposite Source
}

func NewFocusEvent(src Source, gained bool, opposite Source) *FocusEvent {
	return &FocusEvent{Header: NewHeader(src, time.Time{}), Gained: gained, Opposite: opposite}
}

func (e *FocusEvent) Category() Category { return CategoryFocus }

// ItemState is the selection state reported by an ItemEvent.
type ItemState int

const (
	ItemDeselected ItemState = iota
	ItemSelected
)

// ItemEvent reports a toggle of a selectable item.
type ItemEvent struct {
	Header
	Item  any
	State ItemState
}

func NewItemEvent(src Source, item any, state ItemState) *ItemEvent {
	return &ItemEvent{Header: NewHeader(src, time.Time{}), Item: item, State: state}
}

func (e *ItemEvent) Category() Category { return CategoryItem }

// ListSelectionEvent reports that the selection changed within [First, Last].
type ListSelectionEvent struct {
	Header
	First, Last int
	Adjusting   bool
}

func NewListSelectionEvent(src Source, first, last int, adjusting bool) *ListSelectionEvent {
	return &ListSelectionEvent{Header: NewHeader(src, time.Time{}), First: first, Last: last, Adjusting: adjusting}
}

func (e *ListSelectionEvent) Category() Category { return CategoryListSelection }

// TableChange is the kind of table model mutation.
type TableChange int

const (
	TableUpdate TableChange = iota
	TableInsert
	TableDelete
)

func (t TableChange) String() string {
	switch t {
	case TableInsert:
		return "insert"
	case TableDelete:
		return "delete"
	default:
		return "update"
	}
}

// AllColumns as TableModelEvent.Column means every column changed.
const AllColumns = -1

// TableModelEvent reports rows [FirstRow, LastRow] changed.
type TableModelEvent struct {
	Header
	FirstRow, LastRow int
	Column            int
	Type              TableChange
}

func NewTableModelEvent(src Source, first, last, column int, typ TableChange) *TableModelEvent {
	return &TableModelEvent{
		Header:   NewHeader(src, time.Time{}),
		FirstRow: first,
		LastRow:  last,
		Column:   column,
		Type:     typ,
	}
}

func (e *TableModelEvent) Category() Category { return CategoryTableModel }

// ChangeEvent reports that the source's state changed.
type ChangeEvent struct {
	Header
}

func NewChangeEvent(src Source) *ChangeEvent {
	return &ChangeEvent{Header: NewHeader(src, time.Time{})}
}

func (e *ChangeEvent) Category() Category { return CategoryChange }
