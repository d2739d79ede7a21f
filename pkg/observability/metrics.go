package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/formcheck/pkg/validation"
)

// Metrics holds the validation collectors.
type Metrics struct {
	Validations   *prometheus.CounterVec
	InvalidFields *prometheus.CounterVec
	Duration      *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "formcheck_validations_total",
				Help: "Total number of validated documents",
			},
			[]string{"schema", "result"},
		),
		InvalidFields: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "formcheck_invalid_fields_total",
				Help: "Total number of invalid fields reported",
			},
			[]string{"schema", "field"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "formcheck_validation_duration_seconds",
				Help:    "Duration of clean and validate",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
			},
			[]string{"schema"},
		),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.Validations, m.InvalidFields, m.Duration} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// Hooks returns validation hooks that record into m.
func (m *Metrics) Hooks() validation.Hooks {
	return validation.Hooks{
		OnValidated: m.Observe,
	}
}

// Observe records one validation event.
func (m *Metrics) Observe(e *validation.Event) {
	result := "invalid"
	if e.IsValid {
		result = "valid"
	}
	m.Validations.WithLabelValues(e.Schema, result).Inc()
	for _, field := range e.InvalidFields {
		m.InvalidFields.WithLabelValues(e.Schema, field).Inc()
	}
	m.Duration.WithLabelValues(e.Schema).Observe(e.Duration.Seconds())
}
