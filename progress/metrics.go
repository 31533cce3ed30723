package progress

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeSuccess   = "success"
	OutcomeFailure   = "failure"
	OutcomeCancelled = "cancelled"
)

// MetricsObserver records how long tracked operations took and how they ended.
type MetricsObserver struct {
	duration *prometheus.HistogramVec
	total    *prometheus.CounterVec
}

// NewMetricsObserver registers the progress metrics with reg.
// A nil reg registers with the default registry.
func NewMetricsObserver(reg prometheus.Registerer) *MetricsObserver {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &MetricsObserver{
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "smith_progress_duration_seconds",
				Help:    "Duration of tracked operations in seconds",
				Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
			},
			[]string{"outcome"},
		),
		total: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "smith_progress_operations_total",
				Help: "Total number of tracked operations by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// OnProgress implements Observer. Only terminal events are recorded.
func (m *MetricsObserver) OnProgress(e Event) {
	var outcome string
	switch e.Kind {
	case EventFinished:
		outcome = OutcomeFailure
		if e.Success {
			outcome = OutcomeSuccess
		}
	case EventCancelled:
		outcome = OutcomeCancelled
	default:
		return
	}
	m.duration.WithLabelValues(outcome).Observe(e.Status.Elapsed.Seconds())
	m.total.WithLabelValues(outcome).Inc()
}
