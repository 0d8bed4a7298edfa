// Package inspect serves a read-only debug view of a running app over HTTP:
// health, prometheus metrics and a JSON snapshot of the component trees.
package inspect

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/odvcencio/cellkit/pkg/errors"
	"github.com/odvcencio/cellkit/pkg/logging"
	"github.com/odvcencio/cellkit/pkg/ui/component"
	"github.com/odvcencio/cellkit/pkg/ui/graphics"
	"github.com/odvcencio/cellkit/pkg/ui/window"
)

// UI is the part of the app the inspector reads. Windows is only called
// from a function passed to InvokeLater.
type UI interface {
	InvokeLater(fn func())
	Windows() []*window.Window
}

// Options configures the inspector.
type Options struct {
	// Addr is the listen address, e.g. "127.0.0.1:6060".
	Addr string
	// SnapshotTimeout bounds how long /tree waits for the dispatch loop.
	SnapshotTimeout time.Duration
	Registry        *prometheus.Registry
	Logger          *logging.Logger
}

// WindowSnapshot describes one shown window, bottom of the stack first.
type WindowSnapshot struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Bounds     graphics.Rect  `json:"bounds"`
	Active     bool           `json:"active"`
	FocusOwner string         `json:"focus_owner,omitempty"`
	Root       component.Node `json:"root"`
}

// Server is the inspector HTTP server.
type Server struct {
	ui     UI
	opts   Options
	logger *logging.Logger
	router chi.Router
}

// New creates an inspector for ui.
func New(ui UI, opts Options) *Server {
	if opts.SnapshotTimeout <= 0 {
		opts.SnapshotTimeout = 2 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	s := &Server{
		ui:     ui,
		opts:   opts,
		logger: opts.Logger.WithCategory(logging.CategoryInspect),
	}

	router := chi.NewRouter()
	router.Use(s.recoverMiddleware)
	router.Get("/healthz", s.handleHealthz)
	router.Get("/tree", s.handleTree)
	if opts.Registry != nil {
		router.Handle("/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))
	}
	s.router = router
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
		MaxHeaderBytes:    1 << 20,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info("inspector listening", "addr", s.opts.Addr)
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err == http.ErrServerClosed {
			return nil
		}
		return errors.Wrap(err, errors.ErrCodeInternal, "inspector server").WithContext("addr", s.opts.Addr)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("inspector handler panicked", "path", r.URL.Path, "panic", rec)
				respondError(w, http.StatusInternalServerError, "internal error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok", "time": time.Now().UTC().Format(time.RFC3339)})
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	result := make(chan []WindowSnapshot, 1)
	s.ui.InvokeLater(func() {
		result <- snapshot(s.ui.Windows())
	})

	timer := time.NewTimer(s.opts.SnapshotTimeout)
	defer timer.Stop()
	select {
	case snap := <-result:
		respondJSON(w, http.StatusOK, map[string]any{"windows": snap})
	case <-timer.C:
		s.logger.Warn("tree snapshot timed out", "timeout", s.opts.SnapshotTimeout)
		respondError(w, http.StatusServiceUnavailable, "dispatch loop did not respond")
	case <-r.Context().Done():
	}
}

func snapshot(windows []*window.Window) []WindowSnapshot {
	out := make([]WindowSnapshot, 0, len(windows))
	for i, w := range windows {
		snap := WindowSnapshot{
			ID:     w.ID(),
			Title:  w.Title(),
			Bounds: w.Bounds(),
			Active: i == len(windows)-1,
			Root:   w.Root().Snapshot(),
		}
		if owner := w.Focus().Owner(); owner != nil {
			snap.FocusOwner = owner.ID()
		}
		out = append(out, snap)
	}
	return out
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]any{
		"error":  message,
		"status": status,
	})
}
