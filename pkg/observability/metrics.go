// Package observability holds the toolkit's prometheus metrics and
// OpenTelemetry tracing setup.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cellkit"

// Metrics groups the dispatch loop's collectors. Each App gets its own set,
// registered on the registry it was created with.
type Metrics struct {
	registry *prometheus.Registry

	EventsDispatched *prometheus.CounterVec
	TasksRun         prometheus.Counter
	DispatchPanics   prometheus.Counter
	DispatchLatency  *prometheus.HistogramVec
	QueueDepth       prometheus.Gauge
	EventsDropped    prometheus.Counter
	LayoutPasses     prometheus.Counter
	RenderPasses     prometheus.Counter
	CellsWritten     prometheus.Counter
	ProducerFailures *prometheus.CounterVec
	PlaybackSteps    prometheus.Counter
	ConfigReloads    *prometheus.CounterVec
}

// NewMetrics creates collectors on a fresh registry.
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.NewRegistry())
}

// NewMetricsWith creates collectors on reg.
func NewMetricsWith(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,

		EventsDispatched: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "dispatch",
				Name:      "events_total",
				Help:      "Total number of events dispatched, by category",
			},
			[]string{"category"},
		),
		TasksRun: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dispatch",
			Name:      "tasks_total",
			Help:      "Total number of deferred tasks run on the dispatch loop",
		}),
		DispatchPanics: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dispatch",
			Name:      "panics_total",
			Help:      "Panics recovered at the dispatch boundary",
		}),
		DispatchLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "dispatch",
				Name:      "latency_seconds",
				Help:      "Time from enqueue to completion of a dispatch item",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14), // 100µs to ~1.6s
			},
			[]string{"kind"},
		),
		QueueDepth: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "queue",
			Name:      "depth",
			Help:      "Items waiting in the dispatch queue",
		}),
		EventsDropped: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dispatch",
			Name:      "dropped_total",
			Help:      "Events with no resolvable target",
		}),
		LayoutPasses: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "layout",
			Name:      "passes_total",
			Help:      "Window validations that ran layout",
		}),
		RenderPasses: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "passes_total",
			Help:      "Render passes that flushed the output device",
		}),
		CellsWritten: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "cells_written_total",
			Help:      "Cells written to the output device",
		}),
		ProducerFailures: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "producer",
				Name:      "failures_total",
				Help:      "Event producers that stopped with an error",
			},
			[]string{"producer"},
		),
		PlaybackSteps: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "playback",
			Name:      "steps_total",
			Help:      "Synthetic events injected by playback scripts",
		}),
		ConfigReloads: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "config",
				Name:      "reloads_total",
				Help:      "Configuration reloads, by result",
			},
			[]string{"result"},
		),
	}
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
