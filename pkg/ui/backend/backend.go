// Package backend defines the output device the toolkit renders to.
// Implementations accept individual cell writes plus cursor and flush calls,
// and also act as the raw input source for the terminal reader. The tcell
// implementation drives real terminals; the sim implementation backs tests.
package backend

import "github.com/odvcencio/cellkit/pkg/ui/terminal"

// Backend is the terminal abstraction layer.
type Backend interface {
	// Init enters raw mode and the alternate screen.
	Init() error

	// Fini restores terminal state. A blocked PollEvent returns nil afterwards.
	Fini()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// SetContent writes one cell at column x, row y.
	SetContent(x, y int, mainc rune, comb []rune, style Style)

	// Show flushes pending cell writes to the terminal.
	Show()

	// Clear blanks the whole screen.
	Clear()

	// HideCursor hides the terminal cursor.
	HideCursor()

	// SetCursorPos shows the cursor at the given position.
	SetCursorPos(x, y int)

	// PollEvent blocks until an input event is available.
	// Returns nil if the backend is shutting down.
	PollEvent() terminal.Event

	// PostEvent injects an event into the backend's own input stream.
	PostEvent(ev terminal.Event) error

	// Sync forces a full repaint on the next Show.
	Sync()
}
