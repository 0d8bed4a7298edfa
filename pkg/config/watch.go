package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/odvcencio/cellkit/pkg/errors"
)

// ReloadFunc receives the reloaded configuration, or the error that
// prevented loading it.
type ReloadFunc func(cfg *Config, err error)

// Watcher reloads a config file when it changes on disk. The parent
// directory is watched so editors that replace the file are handled.
type Watcher struct {
	path     string
	onReload ReloadFunc
	debounce time.Duration
	fs       *fsnotify.Watcher
}

// NewWatcher starts watching path. Changes are delivered once Run is called.
func NewWatcher(path string, onReload ReloadFunc) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigLoad, "resolving config path").WithContext("path", path)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigLoad, "creating file watcher")
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, errors.Wrap(err, errors.ErrCodeConfigLoad, "watching config directory").WithContext("path", abs)
	}
	return &Watcher{path: abs, onReload: onReload, debounce: 100 * time.Millisecond, fs: fsw}, nil
}

// Run delivers reloads until ctx is done, then closes the watcher. Bursts
// of writes within the debounce window produce one reload.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.onReload(nil, errors.Wrap(err, errors.ErrCodeConfigLoad, "file watcher"))
		case <-fire:
			fire = nil
			w.onReload(LoadFromPath(w.path))
		}
	}
}

// Watch is NewWatcher followed by Run.
func Watch(ctx context.Context, path string, onReload ReloadFunc) error {
	w, err := NewWatcher(path, onReload)
	if err != nil {
		return err
	}
	return w.Run(ctx)
}
