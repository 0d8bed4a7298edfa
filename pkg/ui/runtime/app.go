// Package runtime runs the dispatch loop: one goroutine pops events and
// tasks from the queue, routes them through the shown windows, then lays out
// and renders whatever changed.
package runtime

import (
	"context"
	"runtime/debug"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/odvcencio/cellkit/pkg/errors"
	"github.com/odvcencio/cellkit/pkg/logging"
	"github.com/odvcencio/cellkit/pkg/observability"
	"github.com/odvcencio/cellkit/pkg/ui/backend"
	"github.com/odvcencio/cellkit/pkg/ui/component"
	"github.com/odvcencio/cellkit/pkg/ui/event"
	"github.com/odvcencio/cellkit/pkg/ui/graphics"
	"github.com/odvcencio/cellkit/pkg/ui/render"
	"github.com/odvcencio/cellkit/pkg/ui/window"
)

// Config configures an App.
type Config struct {
	Backend   backend.Backend
	Toolkit   *component.Toolkit
	Logger    *logging.Logger
	Metrics   *observability.Metrics
	Tracer    trace.Tracer
	Producers []Producer

	// HideCursor disables caret placement for focused text components.
	HideCursor bool
	// DisableInput skips the built-in terminal input reader.
	DisableInput bool
}

// App owns the dispatch loop, the window stack and the render differencer.
// Window and component methods must only be called before Run or from the
// dispatch goroutine (for example via InvokeLater).
type App struct {
	backend   backend.Backend
	tk        *component.Toolkit
	logger    *logging.Logger
	metrics   *observability.Metrics
	tracer    trace.Tracer
	queue     *Queue
	producers []Producer

	diff         *render.Differencer
	windows      []*window.Window
	fullscreen   map[*window.Window]bool
	screenDamage []graphics.Rect
	lastRender   render.Stats

	showCursor bool
	readInput  bool
	running    atomic.Bool
}

// NewApp creates an app and attaches its queue to the toolkit.
func NewApp(cfg Config) (*App, error) {
	if cfg.Backend == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "backend is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}
	if cfg.Toolkit == nil {
		cfg.Toolkit = component.NewToolkit(component.Options{Logger: cfg.Logger})
	}
	if cfg.Metrics == nil {
		cfg.Metrics = observability.NewMetrics()
	}
	if cfg.Tracer == nil {
		cfg.Tracer = observability.Tracer()
	}

	a := &App{
		backend:    cfg.Backend,
		tk:         cfg.Toolkit,
		logger:     cfg.Logger.WithCategory(logging.CategoryDispatch),
		metrics:    cfg.Metrics,
		tracer:     cfg.Tracer,
		queue:      NewQueue(),
		producers:  cfg.Producers,
		fullscreen: make(map[*window.Window]bool),
		showCursor: !cfg.HideCursor,
		readInput:  !cfg.DisableInput,
	}
	a.queue.onDepth = func(n int) { a.metrics.QueueDepth.Set(float64(n)) }
	a.tk.SetPoster(a.queue)
	return a, nil
}

// Toolkit returns the toolkit whose events this app dispatches.
func (a *App) Toolkit() *component.Toolkit { return a.tk }

// Queue returns the dispatch queue.
func (a *App) Queue() *Queue { return a.queue }

// Metrics returns the app's collectors.
func (a *App) Metrics() *observability.Metrics { return a.metrics }

// Post queues an event. Safe from any goroutine.
func (a *App) Post(ev event.Event) { a.queue.Post(ev) }

// InvokeLater queues fn to run on the dispatch loop. Safe from any goroutine.
func (a *App) InvokeLater(fn func()) { a.queue.InvokeLater(fn) }

// Stop asks the loop to exit. The item being dispatched finishes; anything
// still queued is discarded.
func (a *App) Stop() { a.queue.Stop() }

// AddProducer registers a producer. Must be called before Run.
func (a *App) AddProducer(p Producer) {
	a.producers = append(a.producers, p)
}

// LastRender returns the statistics of the most recent render pass.
func (a *App) LastRender() render.Stats { return a.lastRender }

// Show puts w on top of the window stack. A window with empty bounds fills
// the screen and follows resizes.
func (a *App) Show(w *window.Window) {
	a.removeWindow(w)
	a.windows = append(a.windows, w)
	if w.Bounds().Empty() {
		a.fullscreen[w] = true
	}
	if a.fullscreen[w] && a.diff != nil {
		sw, sh := a.diff.Size()
		w.SetBounds(graphics.NewRect(0, 0, sw, sh))
	}
	w.Root().Invalidate()
	w.DamageAll()
	w.Focus().FocusFirst()
	a.logger.Debug("window shown", "window", w.Title(), "stack", len(a.windows))
}

// Hide removes w from the stack and damages the area it covered.
func (a *App) Hide(w *window.Window) {
	if !a.removeWindow(w) {
		return
	}
	a.screenDamage = append(a.screenDamage, w.Bounds())
	a.logger.Debug("window hidden", "window", w.Title(), "stack", len(a.windows))
}

func (a *App) removeWindow(w *window.Window) bool {
	for i, x := range a.windows {
		if x == w {
			a.windows = append(a.windows[:i:i], a.windows[i+1:]...)
			return true
		}
	}
	return false
}

// Windows returns the shown windows, bottom first.
func (a *App) Windows() []*window.Window {
	out := make([]*window.Window, len(a.windows))
	copy(out, a.windows)
	return out
}

// ActiveWindow returns the top-most shown window, or nil.
func (a *App) ActiveWindow() *window.Window {
	if len(a.windows) == 0 {
		return nil
	}
	return a.windows[len(a.windows)-1]
}

// Run initializes the backend, starts the producers and dispatches until
// Stop is processed (returning nil) or ctx is done (returning its error).
func (a *App) Run(ctx context.Context) error {
	if !a.running.CompareAndSwap(false, true) {
		return errors.New(errors.ErrCodeInternal, "app is already running")
	}
	defer a.running.Store(false)

	if err := a.backend.Init(); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "init backend")
	}
	finalized := false
	fini := func() {
		if !finalized {
			finalized = true
			a.backend.Fini()
		}
	}
	defer fini()

	a.diff = render.New(a.backend, a.logger)
	a.diff.ShowCursor = a.showCursor
	sw, sh := a.diff.Size()
	for _, w := range a.windows {
		if a.fullscreen[w] {
			w.SetBounds(graphics.NewRect(0, 0, sw, sh))
		}
		w.DamageAll()
	}
	a.screenDamage = append(a.screenDamage, graphics.NewRect(0, 0, sw, sh))

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	producers := a.producers
	if a.readInput {
		producers = append([]Producer{NewInputReader(a.backend, a.resize)}, producers...)
	}
	var g errgroup.Group
	for _, p := range producers {
		g.Go(func() error {
			a.runProducer(runCtx, p)
			return nil
		})
	}

	a.logger.Info("dispatch loop started", "width", sw, "height", sh, "producers", len(producers))
	a.settle()

	var runErr error
	for {
		it, err := a.queue.pop(runCtx)
		if err != nil {
			runErr = ctx.Err()
			break
		}
		if it.stop {
			break
		}
		a.dispatch(it)
		a.settle()
	}

	cancel()
	fini()
	_ = g.Wait()
	a.logger.Info("dispatch loop stopped")
	return runErr
}

func (a *App) runProducer(ctx context.Context, p Producer) {
	log := a.logger.WithProducer(p.Name())
	defer func() {
		if r := recover(); r != nil {
			a.metrics.ProducerFailures.WithLabelValues(p.Name()).Inc()
			log.Error("producer panicked", "panic", r, "stack", string(debug.Stack()))
		}
	}()

	err := p.Run(ctx, a.queue)
	if err != nil && ctx.Err() == nil {
		a.metrics.ProducerFailures.WithLabelValues(p.Name()).Inc()
		log.Error("producer failed", "error", err)
		return
	}
	log.Debug("producer finished")
}

// dispatch runs one item to completion. Panics stop at this boundary.
func (a *App) dispatch(it item) {
	_, span := a.tracer.Start(context.Background(), "dispatch",
		trace.WithAttributes(observability.AttrItemKind.String(it.kind())))
	defer span.End()
	defer func() {
		if r := recover(); r != nil {
			a.metrics.DispatchPanics.Inc()
			err := errors.Newf(errors.ErrCodeDispatchPanic, "panic during dispatch: %v", r)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Message)
			a.logger.Error("recovered dispatch panic", "error", err, "item", it.kind(), "stack", string(debug.Stack()))
		}
		a.metrics.DispatchLatency.WithLabelValues(it.kind()).Observe(time.Since(it.enqueued).Seconds())
	}()

	if it.task != nil {
		a.metrics.TasksRun.Inc()
		it.task()
		return
	}

	ev := it.ev
	a.metrics.EventsDispatched.WithLabelValues(ev.Category().String()).Inc()
	span.SetAttributes(observability.AttrEventCategory.String(ev.Category().String()))

	target, win := a.resolve(ev)
	if target == nil {
		if k, ok := ev.(*event.KeyEvent); ok {
			a.keyDefaults(k, win)
			return
		}
		a.metrics.EventsDropped.Inc()
		a.logger.Debug("event dropped: no target", "category", ev.Category().String())
		return
	}
	if ev.Source() == nil {
		if r, ok := ev.(event.Retargetable); ok {
			ev = r.Retarget(target)
		}
	}
	span.SetAttributes(observability.AttrTarget.String(target.ID()))

	c, isComponent := target.(*component.Component)
	if isComponent {
		span.SetAttributes(observability.AttrTargetKind.String(c.Kind().String()))
		if m, ok := ev.(*event.MouseEvent); ok && win != nil && c.Focusable() &&
			(m.Action == event.MousePressed || m.Action == event.MouseClicked) {
			win.Focus().RequestFocus(c)
		}
	}

	target.DispatchEvent(ev)

	if k, ok := ev.(*event.KeyEvent); ok {
		a.keyDefaults(k, win)
	}
}

// resolve picks the delivery target: the explicit source, else the active
// window's focus owner for keys, else a hit-test for mouse events.
func (a *App) resolve(ev event.Event) (event.Target, *window.Window) {
	if src := ev.Source(); src != nil {
		t, ok := src.(event.Target)
		if !ok {
			return nil, nil
		}
		if c, ok := t.(*component.Component); ok {
			return c, a.windowOf(c)
		}
		return t, nil
	}

	switch e := ev.(type) {
	case *event.KeyEvent:
		w := a.ActiveWindow()
		if w == nil {
			return nil, nil
		}
		if owner := w.Focus().Owner(); owner != nil {
			return owner, w
		}
		return nil, w
	case *event.MouseEvent:
		for i := len(a.windows) - 1; i >= 0; i-- {
			w := a.windows[i]
			if !w.Bounds().Contains(e.X, e.Y) {
				continue
			}
			if c := w.ComponentAt(e.X, e.Y); c != nil {
				return c, w
			}
			return nil, w
		}
	}
	return nil, nil
}

func (a *App) windowOf(c *component.Component) *window.Window {
	root := c.Root()
	for _, w := range a.windows {
		if w.Root() == root {
			return w
		}
	}
	return nil
}

// keyDefaults applies window-level key handling to keys nobody consumed.
func (a *App) keyDefaults(k *event.KeyEvent, w *window.Window) {
	if w == nil || k.Consumed() || !w.TabTraversal {
		return
	}
	switch {
	case k.Code == event.KeyTab && k.Mods.Has(event.ModShift), k.Code == event.KeyBackTab:
		w.Focus().Retreat()
		k.Consume()
	case k.Code == event.KeyTab:
		w.Focus().Advance()
		k.Consume()
	}
}

// settle validates invalid windows and renders any damage in one pass.
func (a *App) settle() {
	defer func() {
		if r := recover(); r != nil {
			a.metrics.DispatchPanics.Inc()
			a.logger.Error("recovered panic during layout or paint", "panic", r, "stack", string(debug.Stack()))
		}
	}()

	for _, w := range a.windows {
		if w.Validate() {
			a.metrics.LayoutPasses.Inc()
		}
	}
	if !a.hasDamage() {
		return
	}

	_, span := a.tracer.Start(context.Background(), "render")
	defer span.End()

	scenes := make([]render.Scene, len(a.windows))
	for i, w := range a.windows {
		scenes[i] = w
	}
	stats := a.diff.Render(scenes, a.screenDamage...)
	a.screenDamage = nil
	a.lastRender = stats
	if stats.Flushed {
		a.metrics.RenderPasses.Inc()
		a.metrics.CellsWritten.Add(float64(stats.CellsWritten))
	}
	span.SetAttributes(
		observability.AttrRegions.Int(stats.Regions),
		observability.AttrCellsWritten.Int(stats.CellsWritten),
	)
}

func (a *App) hasDamage() bool {
	if len(a.screenDamage) > 0 {
		return true
	}
	for _, w := range a.windows {
		if w.HasDamage() {
			return true
		}
	}
	return false
}

// resize runs on the dispatch loop after the terminal changes size.
func (a *App) resize(w, h int) {
	a.diff.Resize(w, h)
	for _, win := range a.windows {
		if a.fullscreen[win] {
			win.SetBounds(graphics.NewRect(0, 0, w, h))
		}
		win.DamageAll()
	}
	a.screenDamage = append(a.screenDamage, graphics.NewRect(0, 0, w, h))
	a.logger.Debug("terminal resized", "width", w, "height", h)
}
