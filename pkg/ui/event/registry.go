package event

import (
	"github.com/odvcencio/cellkit/pkg/errors"
)

// Listener receives events of the categories it is subscribed to.
// Implementations must be comparable so they can be unsubscribed.
type Listener interface {
	HandleEvent(Event)
}

// FuncListener adapts a function to a Listener. Each call to Func returns a
// distinct handle.
type FuncListener struct {
	fn func(Event)
}

// Func wraps fn in a listener handle.
func Func(fn func(Event)) *FuncListener {
	return &FuncListener{fn: fn}
}

func (f *FuncListener) HandleEvent(ev Event) {
	if f.fn != nil {
		f.fn(ev)
	}
}

// Typed returns a listener that only forwards events of type E.
func Typed[E Event](fn func(E)) *FuncListener {
	return Func(func(ev Event) {
		if typed, ok := ev.(E); ok {
			fn(typed)
		}
	})
}

// Registry holds listeners per category. It is confined to the dispatch
// goroutine and does no locking.
type Registry struct {
	listeners map[Category][]Listener
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{listeners: make(map[Category][]Listener)}
}

// Subscribe appends l to the category. Duplicates are kept and fire
// independently.
func (r *Registry) Subscribe(c Category, l Listener) error {
	if !c.Valid() {
		return errors.Newf(errors.ErrCodeInvalidEnum, "invalid listener category %d", int(c)).
			WithContext("category", int(c))
	}
	if l == nil {
		return errors.New(errors.ErrCodeInvalidInput, "nil listener")
	}
	if r.listeners == nil {
		r.listeners = make(map[Category][]Listener)
	}
	r.listeners[c] = append(r.listeners[c], l)
	return nil
}

// Unsubscribe removes the most recently added occurrence of l. Unknown
// listeners are ignored.
func (r *Registry) Unsubscribe(c Category, l Listener) {
	list := r.listeners[c]
	for i := len(list) - 1; i >= 0; i-- {
		if list[i] == l {
			next := make([]Listener, 0, len(list)-1)
			next = append(next, list[:i]...)
			next = append(next, list[i+1:]...)
			r.listeners[c] = next
			return
		}
	}
}

// FireAll delivers ev to the category's listeners, most recent first, and
// stops once ev is consumed. Listeners added or removed during the fan-out
// take effect on the next call.
func (r *Registry) FireAll(c Category, ev Event) {
	list := r.listeners[c]
	if len(list) == 0 {
		return
	}
	snapshot := make([]Listener, len(list))
	copy(snapshot, list)
	for i := len(snapshot) - 1; i >= 0; i-- {
		if ev.Consumed() {
			return
		}
		snapshot[i].HandleEvent(ev)
	}
}

// Count returns how many listeners are subscribed to c.
func (r *Registry) Count(c Category) int {
	return len(r.listeners[c])
}
