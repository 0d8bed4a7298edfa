package component

import (
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/odvcencio/cellkit/pkg/logging"
	"github.com/odvcencio/cellkit/pkg/ui/event"
	"github.com/odvcencio/cellkit/pkg/ui/theme"
)

// Poster accepts work for the dispatch loop.
type Poster interface {
	Post(ev event.Event)
	InvokeLater(fn func())
}

// Options configures a Toolkit.
type Options struct {
	Logger *logging.Logger
	Theme  *theme.Theme
	Poster Poster
}

// Toolkit is the shared context every component is created from. It replaces
// process-wide state: one per UI.
type Toolkit struct {
	logger *logging.Logger
	theme  *theme.Theme

	mu     sync.RWMutex
	poster Poster
}

// NewToolkit creates a toolkit.
func NewToolkit(opts Options) *Toolkit {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Theme == nil {
		opts.Theme = theme.Default()
	}
	return &Toolkit{logger: opts.Logger, theme: opts.Theme, poster: opts.Poster}
}

// Logger returns the toolkit logger.
func (tk *Toolkit) Logger() *logging.Logger { return tk.logger }

// Theme returns the default styles.
func (tk *Toolkit) Theme() *theme.Theme { return tk.theme }

// SetPoster attaches the dispatch queue. The runtime calls this when an app
// is created for the toolkit.
func (tk *Toolkit) SetPoster(p Poster) {
	tk.mu.Lock()
	tk.poster = p
	tk.mu.Unlock()
}

// Post queues ev for dispatch. Without a poster the event is delivered
// immediately to its source, if that is a Target.
func (tk *Toolkit) Post(ev event.Event) {
	tk.mu.RLock()
	p := tk.poster
	tk.mu.RUnlock()
	if p != nil {
		p.Post(ev)
		return
	}
	if target, ok := ev.Source().(event.Target); ok {
		target.DispatchEvent(ev)
	}
}

// InvokeLater queues fn to run on the dispatch loop, or runs it now when no
// poster is attached.
func (tk *Toolkit) InvokeLater(fn func()) {
	tk.mu.RLock()
	p := tk.poster
	tk.mu.RUnlock()
	if p != nil {
		p.InvokeLater(fn)
		return
	}
	fn()
}

// NewID returns a fresh component identifier.
func (tk *Toolkit) NewID() string {
	return ulid.Make().String()
}
