package runtime

import (
	"context"

	"github.com/odvcencio/cellkit/pkg/ui/component"
)

// Sink is where producers deliver records. The dispatch queue is the only
// implementation outside tests.
type Sink = component.Poster

// Producer generates events on its own goroutine until ctx is done or its
// source is exhausted. A returned error stops only that producer.
type Producer interface {
	Name() string
	Run(ctx context.Context, sink Sink) error
}

// ProducerFunc adapts a function to a Producer.
type ProducerFunc struct {
	ProducerName string
	Fn           func(ctx context.Context, sink Sink) error
}

func (p ProducerFunc) Name() string { return p.ProducerName }

func (p ProducerFunc) Run(ctx context.Context, sink Sink) error {
	return p.Fn(ctx, sink)
}
