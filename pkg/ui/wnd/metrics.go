package wnd

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the Prometheus collectors a Context reports to.
type Metrics struct {
	dispatched   *prometheus.CounterVec
	dispatchTime prometheus.Histogram
	dropped      prometheus.Counter
	frames       prometheus.Counter
	cellsFlushed prometheus.Counter
	windows      prometheus.Gauge
	depth        prometheus.Gauge
}

// NewMetrics registers the collectors with reg. A nil reg gets a
// private registry, so several contexts can coexist in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)
	return &Metrics{
		dispatched: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wndkit",
			Name:      "messages_dispatched_total",
			Help:      "Messages dispatched, by kind.",
		}, []string{"kind"}),
		dispatchTime: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wndkit",
			Name:      "dispatch_duration_seconds",
			Help:      "Time spent dispatching one message.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1},
		}),
		dropped: f.NewCounter(prometheus.CounterOpts{
			Namespace: "wndkit",
			Name:      "messages_dropped_total",
			Help:      "Messages dropped because their target was gone.",
		}),
		frames: f.NewCounter(prometheus.CounterOpts{
			Namespace: "wndkit",
			Name:      "frames_total",
			Help:      "Frames painted.",
		}),
		cellsFlushed: f.NewCounter(prometheus.CounterOpts{
			Namespace: "wndkit",
			Name:      "cells_flushed_total",
			Help:      "Cells sent to the backend.",
		}),
		windows: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "wndkit",
			Name:      "windows",
			Help:      "Live windows, root included.",
		}),
		depth: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "wndkit",
			Name:      "queue_depth",
			Help:      "Messages waiting for dispatch.",
		}),
	}
}

func (m *Metrics) observeDispatch(kind Kind, d time.Duration) {
	m.dispatched.WithLabelValues(kind.String()).Inc()
	m.dispatchTime.Observe(d.Seconds())
}

func (m *Metrics) windowsOpen(n int) { m.windows.Set(float64(n)) }
func (m *Metrics) queueDepth(n int)  { m.depth.Set(float64(n)) }
