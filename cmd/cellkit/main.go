package main

import (
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	goruntime "runtime"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/odvcencio/cellkit/pkg/config"
	"github.com/odvcencio/cellkit/pkg/errors"
	"github.com/odvcencio/cellkit/pkg/logging"
	"github.com/odvcencio/cellkit/pkg/observability"
	"github.com/odvcencio/cellkit/pkg/ui/backend/tcell"
	"github.com/odvcencio/cellkit/pkg/ui/component"
	"github.com/odvcencio/cellkit/pkg/ui/inspect"
	"github.com/odvcencio/cellkit/pkg/ui/playback"
	"github.com/odvcencio/cellkit/pkg/ui/runtime"
	"github.com/odvcencio/cellkit/pkg/ui/theme"
)

// Version information - set via ldflags during build
var (
	version   = "0.1.0-dev"
	commit    = "unknown"
	buildDate = "unknown"
)

type startupOptions struct {
	configPath  string
	script      string
	inspectAddr string
	showVersion bool
}

func parseStartupOptions(args []string, stderr io.Writer) (*startupOptions, error) {
	opts := &startupOptions{}
	fs := flag.NewFlagSet("cellkit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "path to a config file (default: ~/.cellkit/config.yaml then ./.cellkit/config.yaml)")
	fs.StringVar(&opts.script, "script", "", "playback script to replay into the UI")
	fs.StringVar(&opts.inspectAddr, "inspect", "", "serve the inspector on this address (e.g. 127.0.0.1:6060)")
	fs.BoolVar(&opts.showVersion, "version", false, "show version information")

	if err := fs.Parse(args); err != nil {
		return nil, withExitCode(err, exitUsage)
	}
	if fs.NArg() > 0 {
		return nil, withExitCode(errors.Newf(errors.ErrCodeInvalidInput, "unexpected argument %q", fs.Arg(0)), exitUsage)
	}
	return opts, nil
}

func main() {
	opts, err := parseStartupOptions(os.Args[1:], os.Stderr)
	if err != nil {
		if stderrors.Is(err, flag.ErrHelp) {
			os.Exit(exitOK)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCodeForError(err))
	}
	if opts.showVersion {
		printVersion()
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, opts)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCodeForError(err))
	}
}

func printVersion() {
	fmt.Printf("cellkit %s\n", version)
	if commit != "unknown" {
		fmt.Printf("  Commit:     %s\n", commit)
	}
	if buildDate != "unknown" {
		fmt.Printf("  Built:      %s\n", buildDate)
	}
	fmt.Printf("  Go version: %s\n", goruntime.Version())
}

func isInteractiveTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) &&
		term.IsTerminal(int(os.Stdout.Fd()))
}

// loadConfig reads the explicit path when given, else the file hierarchy,
// then applies flag overrides.
func loadConfig(opts *startupOptions) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFromPath(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, withExitCode(err, exitConfig)
	}
	if opts.script != "" {
		cfg.Playback.Script = opts.script
	}
	if opts.inspectAddr != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Addr = opts.inspectAddr
	}
	return cfg, nil
}

// watchedConfigPath returns the file the config watcher follows: the
// explicit path, else the project file, else the user file, or "" when none
// exists.
func watchedConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	candidates := []string{config.ProjectConfigPath()}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		candidates = append(candidates, filepath.Join(home, ".cellkit", "config.yaml"))
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// openLogger logs to the configured file. The terminal belongs to the UI,
// so without a file nothing is logged.
func openLogger(cfg *config.Config) (*logging.Logger, func(), error) {
	path := config.ExpandHome(cfg.Logging.File)
	if path == "" {
		return logging.Discard(), func() {}, nil
	}
	f, err := logging.OpenFile(path)
	if err != nil {
		return nil, nil, withExitCode(errors.Wrap(err, errors.ErrCodeConfigInvalid, "open log file").WithContext("path", path), exitConfig)
	}
	logger := logging.New("cellkit", logging.Options{
		Level:  cfg.LogLevel(),
		Format: cfg.LogFormat(),
		Output: logging.SyncWriter(f),
	})
	return logger, func() { _ = f.Close() }, nil
}

// startTracing exports spans to the configured file until the returned
// shutdown func runs.
func startTracing(cfg *config.Config) (func(), error) {
	path := config.ExpandHome(cfg.Tracing.File)
	f, err := logging.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "open trace file").WithContext("path", path)
	}
	tp, err := observability.NewTracerProvider("cellkit", f)
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "start tracing")
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tp.Shutdown(ctx)
		_ = f.Close()
	}, nil
}

// configReloader applies a reloaded config to the running process. Only
// the log level takes effect without a restart.
func configReloader(logger *logging.Logger, metrics *observability.Metrics) config.ReloadFunc {
	log := logger.WithCategory(logging.CategoryConfig)
	return func(cfg *config.Config, err error) {
		if err != nil {
			metrics.ConfigReloads.WithLabelValues("error").Inc()
			log.Warn("config reload failed", "error", err)
			return
		}
		metrics.ConfigReloads.WithLabelValues("ok").Inc()
		logger.SetLevel(cfg.LogLevel())
		log.Info("config reloaded", "level", cfg.Logging.Level)
	}
}

// auxiliary wraps a side service for the run group. Its failure is logged
// and never cancels the UI.
func auxiliary(ctx context.Context, logger *logging.Logger, name string, serve func(context.Context) error) func() error {
	return func() error {
		if err := serve(ctx); err != nil {
			logger.Warn("auxiliary service stopped", "service", name, "error", err)
		}
		return nil
	}
}

func run(ctx context.Context, opts *startupOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if !isInteractiveTerminal() {
		return withExitCode(errors.New(errors.ErrCodeInvalidInput, "cellkit needs an interactive terminal"), exitUsage)
	}

	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	if cfg.Tracing.Enabled {
		shutdown, err := startTracing(cfg)
		if err != nil {
			return err
		}
		defer shutdown()
	}

	be, err := tcell.New()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "open terminal")
	}

	metrics := observability.NewMetrics()
	tk := component.NewToolkit(component.Options{
		Logger: logger,
		Theme:  theme.Default().Degrade(cfg.ThemeProfile()),
	})
	app, err := runtime.NewApp(runtime.Config{
		Backend:    be,
		Toolkit:    tk,
		Logger:     logger,
		Metrics:    metrics,
		HideCursor: !cfg.Render.Cursor,
	})
	if err != nil {
		return err
	}

	form, err := newDemoForm(tk, app.Stop)
	if err != nil {
		return err
	}
	app.Show(form.win)

	if script := config.ExpandHome(cfg.Playback.Script); script != "" {
		player, err := playback.Open(script, playback.Options{
			Speed:   cfg.Playback.Speed,
			Logger:  logger,
			Metrics: metrics,
		})
		if err != nil {
			return err
		}
		app.AddProducer(player)
	}

	g, gctx := errgroup.WithContext(ctx)
	runCtx, cancel := context.WithCancel(gctx)
	defer cancel()

	g.Go(func() error {
		defer cancel()
		return app.Run(runCtx)
	})

	if cfg.Metrics.Enabled {
		srv := inspect.New(app, inspect.Options{
			Addr:     cfg.Metrics.Addr,
			Registry: metrics.Registry(),
			Logger:   logger,
		})
		g.Go(auxiliary(runCtx, logger, "inspector", srv.ListenAndServe))
	}

	if path := watchedConfigPath(opts.configPath); path != "" {
		w, err := config.NewWatcher(path, configReloader(logger, metrics))
		if err != nil {
			logger.Warn("config watcher disabled", "path", path, "error", err)
		} else {
			g.Go(auxiliary(runCtx, logger, "config watcher", w.Run))
		}
	}

	err = g.Wait()
	if stderrors.Is(err, context.Canceled) && ctx.Err() != nil {
		// Interrupted by a signal.
		return nil
	}
	return err
}
