// Package tcell provides a Backend implementation using tcell.
package tcell

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/cellkit/pkg/ui/backend"
	"github.com/odvcencio/cellkit/pkg/ui/terminal"
)

// Backend implements backend.Backend using tcell.
type Backend struct {
	screen tcell.Screen

	// lastButtons distinguishes press, drag and release; tcell reports only
	// the current button mask.
	mu          sync.Mutex
	lastButtons tcell.ButtonMask
}

// New creates a new tcell backend for the controlling terminal.
func New() (*Backend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Backend{screen: screen}, nil
}

// NewWithScreen creates a backend with an existing tcell screen (for testing).
func NewWithScreen(screen tcell.Screen) *Backend {
	return &Backend{screen: screen}
}

// Init initializes the backend.
func (b *Backend) Init() error {
	if err := b.screen.Init(); err != nil {
		return err
	}
	b.screen.EnableMouse()
	return nil
}

// Fini cleans up the backend.
func (b *Backend) Fini() {
	b.screen.Fini()
}

// Size returns the terminal dimensions.
func (b *Backend) Size() (width, height int) {
	return b.screen.Size()
}

// SetContent sets a cell at position (x, y).
func (b *Backend) SetContent(x, y int, mainc rune, comb []rune, style backend.Style) {
	b.screen.SetContent(x, y, mainc, comb, convertStyle(style))
}

// Show synchronizes the buffer to the terminal.
func (b *Backend) Show() {
	b.screen.Show()
}

// Clear clears the screen.
func (b *Backend) Clear() {
	b.screen.Clear()
}

// HideCursor hides the cursor.
func (b *Backend) HideCursor() {
	b.screen.HideCursor()
}

// SetCursorPos sets the cursor position.
func (b *Backend) SetCursorPos(x, y int) {
	b.screen.ShowCursor(x, y)
}

// PollEvent blocks until a supported event is available.
func (b *Backend) PollEvent() terminal.Event {
	for {
		ev := b.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if out := b.convertEvent(ev); out != nil {
			return out
		}
	}
}

// PostEvent injects an event into the queue.
func (b *Backend) PostEvent(ev terminal.Event) error {
	tev := reverseConvertEvent(ev)
	if tev != nil {
		return b.screen.PostEvent(tev)
	}
	return nil
}

// Sync forces a full redraw.
func (b *Backend) Sync() {
	b.screen.Sync()
}

// convertStyle converts backend.Style to tcell.Style.
func convertStyle(s backend.Style) tcell.Style {
	fg, bg, attrs := s.Decompose()
	style := tcell.StyleDefault.
		Foreground(convertColor(fg)).
		Background(convertColor(bg))

	if attrs&backend.AttrBold != 0 {
		style = style.Bold(true)
	}
	if attrs&backend.AttrItalic != 0 {
		style = style.Italic(true)
	}
	if attrs&backend.AttrUnderline != 0 {
		style = style.Underline(true)
	}
	if attrs&backend.AttrDim != 0 {
		style = style.Dim(true)
	}
	if attrs&backend.AttrBlink != 0 {
		style = style.Blink(true)
	}
	if attrs&backend.AttrReverse != 0 {
		style = style.Reverse(true)
	}
	if attrs&backend.AttrStrikeThrough != 0 {
		style = style.StrikeThrough(true)
	}

	return style
}

// convertColor converts backend.Color to tcell.Color.
func convertColor(c backend.Color) tcell.Color {
	if c == backend.ColorDefault {
		return tcell.ColorDefault
	}
	if c.IsRGB() {
		r, g, b := c.RGB()
		return tcell.NewRGBColor(int32(r), int32(g), int32(b))
	}
	return tcell.PaletteColor(int(c))
}

// convertEvent converts a tcell event to terminal.Event.
func (b *Backend) convertEvent(ev tcell.Event) terminal.Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		key, r := convertKey(e.Key(), e.Rune())
		if key == terminal.KeyNone {
			return nil
		}
		mods := e.Modifiers()
		return terminal.KeyEvent{
			Key:   key,
			Rune:  r,
			Alt:   mods&tcell.ModAlt != 0,
			Ctrl:  mods&tcell.ModCtrl != 0 || key == terminal.KeyCtrl,
			Shift: mods&tcell.ModShift != 0,
			When:  e.When(),
		}
	case *tcell.EventResize:
		w, h := e.Size()
		return terminal.ResizeEvent{Width: w, Height: h}
	case *tcell.EventMouse:
		x, y := e.Position()
		mods := e.Modifiers()
		buttons := e.Buttons()

		b.mu.Lock()
		action := convertMouseAction(b.lastButtons, buttons)
		button := convertMouseButton(buttons)
		if action == terminal.MouseRelease {
			button = convertMouseButton(b.lastButtons)
		}
		b.lastButtons = buttons &^ (tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight)
		b.mu.Unlock()

		return terminal.MouseEvent{
			X:      x,
			Y:      y,
			Button: button,
			Action: action,
			Alt:    mods&tcell.ModAlt != 0,
			Ctrl:   mods&tcell.ModCtrl != 0,
			Shift:  mods&tcell.ModShift != 0,
			When:   e.When(),
		}
	default:
		return nil
	}
}

// convertKey converts tcell.Key to terminal.Key. Control letters are folded
// into KeyCtrl with the lower-case letter as rune.
func convertKey(k tcell.Key, r rune) (terminal.Key, rune) {
	switch k {
	case tcell.KeyRune:
		return terminal.KeyRune, r
	case tcell.KeyUp:
		return terminal.KeyUp, 0
	case tcell.KeyDown:
		return terminal.KeyDown, 0
	case tcell.KeyRight:
		return terminal.KeyRight, 0
	case tcell.KeyLeft:
		return terminal.KeyLeft, 0
	case tcell.KeyPgUp:
		return terminal.KeyPageUp, 0
	case tcell.KeyPgDn:
		return terminal.KeyPageDown, 0
	case tcell.KeyHome:
		return terminal.KeyHome, 0
	case tcell.KeyEnd:
		return terminal.KeyEnd, 0
	case tcell.KeyInsert:
		return terminal.KeyInsert, 0
	case tcell.KeyDelete:
		return terminal.KeyDelete, 0
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return terminal.KeyBackspace, 0
	case tcell.KeyTab:
		return terminal.KeyTab, 0
	case tcell.KeyBacktab:
		return terminal.KeyBacktab, 0
	case tcell.KeyEnter:
		return terminal.KeyEnter, 0
	case tcell.KeyEscape:
		return terminal.KeyEscape, 0
	}
	if k >= tcell.KeyF1 && k <= tcell.KeyF12 {
		return terminal.KeyF1 + terminal.Key(k-tcell.KeyF1), 0
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return terminal.KeyCtrl, 'a' + rune(k-tcell.KeyCtrlA)
	}
	return terminal.KeyNone, 0
}

// convertMouseButton converts tcell button mask to terminal.MouseButton.
func convertMouseButton(buttons tcell.ButtonMask) terminal.MouseButton {
	switch {
	case buttons&tcell.WheelUp != 0:
		return terminal.MouseWheelUp
	case buttons&tcell.WheelDown != 0:
		return terminal.MouseWheelDown
	case buttons&tcell.Button1 != 0:
		return terminal.MouseLeft
	case buttons&tcell.Button2 != 0:
		return terminal.MouseMiddle
	case buttons&tcell.Button3 != 0:
		return terminal.MouseRight
	default:
		return terminal.MouseNone
	}
}

// convertMouseAction derives the action from the previous and current masks.
func convertMouseAction(last, now tcell.ButtonMask) terminal.MouseAction {
	if now&(tcell.WheelUp|tcell.WheelDown) != 0 {
		return terminal.MousePress
	}
	switch {
	case now == tcell.ButtonNone && last != tcell.ButtonNone:
		return terminal.MouseRelease
	case now != tcell.ButtonNone && now != last:
		return terminal.MousePress
	default:
		return terminal.MouseMove
	}
}

// reverseConvertEvent converts terminal.Event to tcell.Event for PostEvent.
func reverseConvertEvent(ev terminal.Event) tcell.Event {
	switch e := ev.(type) {
	case terminal.ResizeEvent:
		return tcell.NewEventResize(e.Width, e.Height)
	case terminal.KeyEvent:
		var mods tcell.ModMask
		if e.Alt {
			mods |= tcell.ModAlt
		}
		if e.Shift {
			mods |= tcell.ModShift
		}
		switch e.Key {
		case terminal.KeyRune:
			return tcell.NewEventKey(tcell.KeyRune, e.Rune, mods)
		case terminal.KeyCtrl:
			return tcell.NewEventKey(tcell.KeyCtrlA+tcell.Key(e.Rune-'a'), 0, mods|tcell.ModCtrl)
		case terminal.KeyEnter:
			return tcell.NewEventKey(tcell.KeyEnter, 0, mods)
		case terminal.KeyTab:
			return tcell.NewEventKey(tcell.KeyTab, 0, mods)
		case terminal.KeyBacktab:
			return tcell.NewEventKey(tcell.KeyBacktab, 0, mods)
		case terminal.KeyEscape:
			return tcell.NewEventKey(tcell.KeyEscape, 0, mods)
		case terminal.KeyBackspace:
			return tcell.NewEventKey(tcell.KeyBackspace2, 0, mods)
		case terminal.KeyUp:
			return tcell.NewEventKey(tcell.KeyUp, 0, mods)
		case terminal.KeyDown:
			return tcell.NewEventKey(tcell.KeyDown, 0, mods)
		case terminal.KeyLeft:
			return tcell.NewEventKey(tcell.KeyLeft, 0, mods)
		case terminal.KeyRight:
			return tcell.NewEventKey(tcell.KeyRight, 0, mods)
		}
		return nil
	default:
		return nil
	}
}

// Ensure Backend implements backend.Backend
var _ backend.Backend = (*Backend)(nil)
