// Package sim provides a simulation backend for testing.
// It is a real tcell SimulationScreen underneath, with counters for the
// cell writes and flushes the render differencer issues, so tests can assert
// that an idle frame produces no output.
package sim

import (
	"fmt"
	"strings"
	"sync"

	tcellv2 "github.com/gdamore/tcell/v2"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/odvcencio/cellkit/pkg/ui/backend"
	"github.com/odvcencio/cellkit/pkg/ui/backend/tcell"
	"github.com/odvcencio/cellkit/pkg/ui/terminal"
)

// Write records one SetContent call.
type Write struct {
	X, Y  int
	Rune  rune
	Style backend.Style
}

// Backend is a testable backend using tcell's simulation screen.
type Backend struct {
	*tcell.Backend
	screen tcellv2.SimulationScreen

	mu      sync.Mutex
	writes  []Write
	flushes int
	cursorX int
	cursorY int
}

// New creates a new simulation backend with the given dimensions.
func New(width, height int) *Backend {
	screen := tcellv2.NewSimulationScreen("")
	screen.SetSize(width, height)

	return &Backend{
		Backend: tcell.NewWithScreen(screen),
		screen:  screen,
		cursorX: -1,
		cursorY: -1,
	}
}

// SetContent writes a cell and records it.
func (s *Backend) SetContent(x, y int, mainc rune, comb []rune, style backend.Style) {
	s.mu.Lock()
	s.writes = append(s.writes, Write{X: x, Y: y, Rune: mainc, Style: style})
	s.mu.Unlock()
	s.Backend.SetContent(x, y, mainc, comb, style)
}

// Show flushes and counts the flush.
func (s *Backend) Show() {
	s.mu.Lock()
	s.flushes++
	s.mu.Unlock()
	s.Backend.Show()
}

// SetCursorPos records and applies the cursor position.
func (s *Backend) SetCursorPos(x, y int) {
	s.mu.Lock()
	s.cursorX, s.cursorY = x, y
	s.mu.Unlock()
	s.Backend.SetCursorPos(x, y)
}

// HideCursor records a hidden cursor.
func (s *Backend) HideCursor() {
	s.mu.Lock()
	s.cursorX, s.cursorY = -1, -1
	s.mu.Unlock()
	s.Backend.HideCursor()
}

// Cursor returns the last cursor position, or (-1, -1) if hidden.
func (s *Backend) Cursor() (x, y int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursorX, s.cursorY
}

// Writes returns a copy of the recorded cell writes.
func (s *Backend) Writes() []Write {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Write, len(s.writes))
	copy(out, s.writes)
	return out
}

// WriteCount returns how many cells have been written since the last reset.
func (s *Backend) WriteCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.writes)
}

// Flushes returns how many times Show was called since the last reset.
func (s *Backend) Flushes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushes
}

// ResetCounters clears recorded writes and flushes.
func (s *Backend) ResetCounters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes = nil
	s.flushes = 0
}

// Resize changes the simulation screen size.
func (s *Backend) Resize(width, height int) {
	s.screen.SetSize(width, height)
}

// InjectKey injects a key event into the simulation.
func (s *Backend) InjectKey(key terminal.Key, r rune) error {
	return s.PostEvent(terminal.KeyEvent{Key: key, Rune: r})
}

// InjectKeyString injects a string as a sequence of rune key events.
func (s *Backend) InjectKeyString(str string) error {
	for _, r := range str {
		if err := s.InjectKey(terminal.KeyRune, r); err != nil {
			return err
		}
	}
	return nil
}

// InjectMouse injects a mouse event at (x, y).
func (s *Backend) InjectMouse(x, y int, buttons tcellv2.ButtonMask) {
	s.screen.InjectMouse(x, y, buttons, tcellv2.ModNone)
}

// InjectResize injects a resize event.
func (s *Backend) InjectResize(width, height int) error {
	s.screen.SetSize(width, height)
	return s.PostEvent(terminal.ResizeEvent{Width: width, Height: height})
}

// Capture captures the current screen content as a string.
func (s *Backend) Capture() string {
	w, h := s.screen.Size()
	return s.CaptureRegion(0, 0, w, h)
}

// CaptureRegion captures a rectangular region of the screen.
func (s *Backend) CaptureRegion(x, y, w, h int) string {
	var lines []string
	for row := y; row < y+h; row++ {
		var line strings.Builder
		for col := x; col < x+w; col++ {
			mainc, _, _, _ := s.screen.GetContent(col, row)
			if mainc == 0 {
				mainc = ' '
			}
			line.WriteRune(mainc)
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// CaptureCell returns the rune and style of a single cell.
func (s *Backend) CaptureCell(x, y int) (rune, backend.Style) {
	m, _, tcStyle, _ := s.screen.GetContent(x, y)
	return m, convertTcellStyle(tcStyle)
}

// ContainsText returns true if the text appears anywhere on screen.
func (s *Backend) ContainsText(text string) bool {
	return strings.Contains(s.Capture(), text)
}

// DiffCapture compares the screen against a golden frame. It returns an
// empty string when they match and a unified diff otherwise. Trailing spaces
// on each line are ignored.
func (s *Backend) DiffCapture(want string) string {
	got := trimLines(s.Capture())
	want = trimLines(want)
	if got == want {
		return ""
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want + "\n"),
		B:        difflib.SplitLines(got + "\n"),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return fmt.Sprintf("frame mismatch (diff failed: %v)", err)
	}
	return diff
}

func trimLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// convertTcellStyle converts tcellv2.Style to backend.Style.
func convertTcellStyle(ts tcellv2.Style) backend.Style {
	fg, bg, attrs := ts.Decompose()
	style := backend.Pair(convertTcellColor(fg), convertTcellColor(bg))

	if attrs&tcellv2.AttrBold != 0 {
		style = style.Bold(true)
	}
	if attrs&tcellv2.AttrUnderline != 0 {
		style = style.Underline(true)
	}
	if attrs&tcellv2.AttrDim != 0 {
		style = style.Dim(true)
	}
	if attrs&tcellv2.AttrReverse != 0 {
		style = style.Reverse(true)
	}
	return style
}

// convertTcellColor converts tcellv2.Color to backend.Color.
func convertTcellColor(tc tcellv2.Color) backend.Color {
	if tc == tcellv2.ColorDefault {
		return backend.ColorDefault
	}
	if tc&tcellv2.ColorIsRGB != 0 {
		r, g, b := tc.RGB()
		return backend.ColorRGB(uint8(r), uint8(g), uint8(b))
	}
	return backend.Color(tc & 0xFF)
}

// Ensure Backend implements backend.Backend
var _ backend.Backend = (*Backend)(nil)
