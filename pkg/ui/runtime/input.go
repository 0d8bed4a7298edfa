package runtime

import (
	"context"

	"github.com/odvcencio/cellkit/pkg/ui/backend"
	"github.com/odvcencio/cellkit/pkg/ui/event"
	"github.com/odvcencio/cellkit/pkg/ui/terminal"
)

// InputReader turns terminal input from a backend into toolkit events.
// Resizes are applied on the dispatch loop through InvokeLater.
type InputReader struct {
	backend  backend.Backend
	onResize func(w, h int)

	pressX, pressY int
	pressed        terminal.MouseButton
}

// NewInputReader creates a reader for be. onResize runs on the dispatch loop.
func NewInputReader(be backend.Backend, onResize func(w, h int)) *InputReader {
	return &InputReader{backend: be, onResize: onResize}
}

func (r *InputReader) Name() string { return "terminal" }

// Run polls the backend until it is finalized or ctx is done.
func (r *InputReader) Run(ctx context.Context, sink Sink) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		ev := r.backend.PollEvent()
		if ev == nil {
			return nil
		}
		switch e := ev.(type) {
		case terminal.KeyEvent:
			if k := convertKey(e); k != nil {
				sink.Post(k)
			}
		case terminal.MouseEvent:
			for _, m := range r.convertMouse(e) {
				sink.Post(m)
			}
		case terminal.ResizeEvent:
			if r.onResize != nil {
				w, h := e.Width, e.Height
				sink.InvokeLater(func() { r.onResize(w, h) })
			}
		}
	}
}

func convertMods(alt, ctrl, shift bool) event.Modifier {
	var m event.Modifier
	if alt {
		m |= event.ModAlt
	}
	if ctrl {
		m |= event.ModCtrl
	}
	if shift {
		m |= event.ModShift
	}
	return m
}

var specialKeys = map[terminal.Key]event.Key{
	terminal.KeyEnter:     event.KeyEnter,
	terminal.KeyTab:       event.KeyTab,
	terminal.KeyBacktab:   event.KeyBackTab,
	terminal.KeyEscape:    event.KeyEscape,
	terminal.KeyBackspace: event.KeyBackspace,
	terminal.KeyUp:        event.KeyUp,
	terminal.KeyDown:      event.KeyDown,
	terminal.KeyLeft:      event.KeyLeft,
	terminal.KeyRight:     event.KeyRight,
	terminal.KeyHome:      event.KeyHome,
	terminal.KeyEnd:       event.KeyEnd,
	terminal.KeyPageUp:    event.KeyPgUp,
	terminal.KeyPageDown:  event.KeyPgDn,
	terminal.KeyDelete:    event.KeyDelete,
	terminal.KeyInsert:    event.KeyInsert,
}

func convertKey(e terminal.KeyEvent) *event.KeyEvent {
	mods := convertMods(e.Alt, e.Ctrl, e.Shift)
	switch {
	case e.Key == terminal.KeyRune:
		return event.NewCharEvent(nil, e.Rune, mods)
	case e.Key == terminal.KeyCtrl && e.Rune >= 'a' && e.Rune <= 'z':
		return event.NewKeyEvent(nil, event.KeyCtrlA+event.Key(e.Rune-'a'), mods|event.ModCtrl)
	case e.Key >= terminal.KeyF1 && e.Key <= terminal.KeyF12:
		return event.NewKeyEvent(nil, event.KeyF(int(e.Key-terminal.KeyF1)+1), mods)
	}
	if code, ok := specialKeys[e.Key]; ok {
		return event.NewKeyEvent(nil, code, mods)
	}
	return nil
}

// convertMouse maps press/release pairs to pressed, released and, when the
// release lands where the press did, clicked. Motion is ignored.
func (r *InputReader) convertMouse(e terminal.MouseEvent) []event.Event {
	switch e.Action {
	case terminal.MousePress:
		if e.Button != terminal.MouseWheelUp && e.Button != terminal.MouseWheelDown {
			r.pressX, r.pressY, r.pressed = e.X, e.Y, e.Button
		}
		return []event.Event{event.NewMouseEvent(nil, event.MousePressed, int(e.Button), e.X, e.Y)}
	case terminal.MouseRelease:
		button := e.Button
		if button == terminal.MouseNone {
			button = r.pressed
		}
		out := []event.Event{event.NewMouseEvent(nil, event.MouseReleased, int(button), e.X, e.Y)}
		if r.pressed != terminal.MouseNone && e.X == r.pressX && e.Y == r.pressY {
			out = append(out, event.NewMouseEvent(nil, event.MouseClicked, int(button), e.X, e.Y))
		}
		r.pressed = terminal.MouseNone
		return out
	}
	return nil
}
