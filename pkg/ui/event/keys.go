package event

import "strconv"

// Key is a key code. Printable and control characters use their character
// value; special keys use the curses numbering starting at KeyMin.
type Key int

// Control characters.
const (
	KeyNone      Key = 0
	KeyTab       Key = 0x09
	KeyEnter     Key = 0x0D
	KeyEscape    Key = 0x1B
	KeySpace     Key = 0x20
	KeyDEL       Key = 0x7F
	KeyCtrlA     Key = 0x01
	KeyCtrlZ     Key = 0x1A
	KeyLinefeed  Key = 0x0A
	KeyBackspace Key = 0o407
)

// Special keys (curses numbering).
const (
	KeyMin     Key = 0o401
	KeyBreak   Key = 0o401
	KeyDown    Key = 0o402
	KeyUp      Key = 0o403
	KeyLeft    Key = 0o404
	KeyRight   Key = 0o405
	KeyHome    Key = 0o406
	KeyF0      Key = 0o410
	KeyDelete  Key = 0o512
	KeyInsert  Key = 0o513
	KeyPgDn    Key = 0o522
	KeyPgUp    Key = 0o523
	KeyBackTab Key = 0o541
	KeyEnd     Key = 0o550
	KeyResize  Key = 0o632
	KeyMax     Key = 0o777
)

// KeyF returns the code for function key n.
func KeyF(n int) Key {
	return KeyF0 + Key(n)
}

// Special reports whether k is in the special-key range.
func (k Key) Special() bool {
	return k >= KeyMin && k <= KeyMax
}

// Printable reports whether k is a printable character code.
func (k Key) Printable() bool {
	return k >= KeySpace && k != KeyDEL && !k.Special()
}

var keyNames = map[Key]string{
	KeyTab:       "Tab",
	KeyEnter:     "Enter",
	KeyLinefeed:  "Linefeed",
	KeyEscape:    "Escape",
	KeySpace:     "Space",
	KeyDEL:       "Backspace",
	KeyBackspace: "Backspace",
	KeyBreak:     "Break",
	KeyDown:      "Down",
	KeyUp:        "Up",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyDelete:    "Delete",
	KeyInsert:    "Insert",
	KeyPgDn:      "PgDn",
	KeyPgUp:      "PgUp",
	KeyBackTab:   "BackTab",
	KeyEnd:       "End",
	KeyResize:    "Resize",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	switch {
	case k > KeyF0 && k <= KeyF0+63:
		return "F" + strconv.Itoa(int(k-KeyF0))
	case k >= KeyCtrlA && k <= KeyCtrlZ:
		return "Ctrl+" + string(rune('A'+k-KeyCtrlA))
	case k.Printable():
		return string(rune(k))
	}
	return "Key(" + strconv.Itoa(int(k)) + ")"
}

// Modifier is a bitmask of held modifier keys.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
)

// Has reports whether every bit of m2 is set.
func (m Modifier) Has(m2 Modifier) bool {
	return m&m2 == m2
}
