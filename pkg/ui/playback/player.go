package playback

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os"
	"time"

	"github.com/odvcencio/cellkit/pkg/errors"
	"github.com/odvcencio/cellkit/pkg/logging"
	"github.com/odvcencio/cellkit/pkg/observability"
	"github.com/odvcencio/cellkit/pkg/ui/runtime"
)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Options configures a Player.
type Options struct {
	// Name identifies the producer in logs and metrics. Defaults to "playback".
	Name string
	// Speed divides every delay; 2 plays twice as fast. Zero means 1.
	Speed   float64
	Sleep   SleepFunc
	Logger  *logging.Logger
	Metrics *observability.Metrics
}

// Player is a runtime.Producer that replays a script. Lines are read lazily,
// so each delay starts when its line is read.
type Player struct {
	name    string
	src     io.Reader
	speed   float64
	sleep   SleepFunc
	logger  *logging.Logger
	metrics *observability.Metrics
}

var _ runtime.Producer = (*Player)(nil)

// New creates a player reading from src.
func New(src io.Reader, opts Options) *Player {
	if opts.Name == "" {
		opts.Name = "playback"
	}
	if opts.Speed <= 0 {
		opts.Speed = 1
	}
	if opts.Sleep == nil {
		opts.Sleep = Sleep
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	return &Player{
		name:    opts.Name,
		src:     src,
		speed:   opts.Speed,
		sleep:   opts.Sleep,
		logger:  opts.Logger.WithCategory(logging.CategoryPlayback).WithProducer(opts.Name),
		metrics: opts.Metrics,
	}
}

// Open loads a script file.
func Open(path string, opts Options) (*Player, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeProducerIO, "read playback script").
			WithContext("path", path)
	}
	return New(bytes.NewReader(data), opts), nil
}

func (p *Player) Name() string { return p.name }

// Run replays the script into sink. It returns nil at end of script or when
// ctx is cancelled, and an error for a malformed line or a read failure.
func (p *Player) Run(ctx context.Context, sink runtime.Sink) error {
	scanner := bufio.NewScanner(p.src)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		step, ok, err := ParseLine(scanner.Text(), lineNo)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if err := p.sleep(ctx, p.scale(step.Delay)); err != nil {
			p.logger.Debug("playback cancelled", "line", lineNo)
			return nil
		}
		sink.Post(step.Event())
		if p.metrics != nil {
			p.metrics.PlaybackSteps.Inc()
		}
		p.logger.Debug("playback step", "line", lineNo, "kind", step.Kind.String())
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeProducerIO, "read playback script")
	}
	p.logger.Info("playback finished", "lines", lineNo)
	return nil
}

func (p *Player) scale(d time.Duration) time.Duration {
	return time.Duration(float64(d) / p.speed)
}

// Sleep is the default SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
