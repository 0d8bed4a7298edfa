package terminal

import "testing"

func TestKeyConstantsUnique(t *testing.T) {
	keys := []Key{
		KeyNone, KeyRune, KeyCtrl, KeyEnter, KeyBackspace, KeyTab, KeyBacktab, KeyEscape,
		KeyUp, KeyDown, KeyLeft, KeyRight, KeyHome, KeyEnd,
		KeyPageUp, KeyPageDown, KeyDelete, KeyInsert,
		KeyF1, KeyF2, KeyF3, KeyF4, KeyF5, KeyF6,
		KeyF7, KeyF8, KeyF9, KeyF10, KeyF11, KeyF12,
	}

	seen := make(map[Key]bool)
	for _, k := range keys {
		if seen[k] {
			t.Errorf("duplicate key constant: %d", k)
		}
		seen[k] = true
	}
	if KeyF12-KeyF1 != 11 {
		t.Errorf("function keys should be contiguous, got span %d", KeyF12-KeyF1)
	}
}

func TestEventInterface(t *testing.T) {
	var _ Event = KeyEvent{}
	var _ Event = ResizeEvent{}
	var _ Event = MouseEvent{}
}
