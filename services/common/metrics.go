package common

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SweepMetrics collects Prometheus metrics for the grading sweep.
type SweepMetrics struct {
	registry *prometheus.Registry

	SweepsTotal   prometheus.Counter
	SweepsSkipped prometheus.Counter
	PicksGraded   *prometheus.CounterVec
	PicksSkipped  prometheus.Counter
	PicksFailed   prometheus.Counter
	WagersSettled *prometheus.CounterVec
	SweepDuration prometheus.Histogram
}

func NewSweepMetrics() *SweepMetrics {
	registry := prometheus.NewRegistry()

	m := &SweepMetrics{
		registry: registry,
		SweepsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gary_sweeps_total",
			Help: "Total number of grading sweeps run",
		}),
		SweepsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gary_sweeps_skipped_total",
			Help: "Sweeps skipped because a previous sweep was still running",
		}),
		PicksGraded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gary_picks_graded_total",
				Help: "Picks graded to a terminal result",
			},
			[]string{"result"},
		),
		PicksSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gary_picks_skipped_total",
			Help: "Picks skipped because no final score was available yet",
		}),
		PicksFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gary_picks_failed_total",
			Help: "Picks that errored during a sweep",
		}),
		WagersSettled: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gary_wagers_settled_total",
				Help: "Wagers settled against the bankroll",
			},
			[]string{"status"},
		),
		SweepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gary_sweep_duration_seconds",
			Help:    "Duration of grading sweeps",
			Buckets: prometheus.DefBuckets,
		}),
	}

	registry.MustRegister(
		m.SweepsTotal,
		m.SweepsSkipped,
		m.PicksGraded,
		m.PicksSkipped,
		m.PicksFailed,
		m.WagersSettled,
		m.SweepDuration,
	)

	return m
}

// Handler returns an HTTP handler serving this collector's registry.
func (m *SweepMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
