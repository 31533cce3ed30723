package smitherr

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts displayed or handled errors for monitoring.
type Metrics struct {
	errors *prometheus.CounterVec
}

// NewMetrics registers the error counter with reg.
// A nil reg registers with the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return &Metrics{
		errors: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "smith_errors_total",
				Help: "Total number of domain errors by category, severity and code",
			},
			[]string{"category", "severity", "code"},
		),
	}
}

// Record counts err. Nil errors are ignored.
func (m *Metrics) Record(err error) {
	e := FromError(err)
	if e == nil {
		return
	}
	m.errors.With(prometheus.Labels{
		"category": e.Category.String(),
		"severity": string(SeverityForCode(e.Code)),
		"code":     e.Code,
	}).Inc()
}
