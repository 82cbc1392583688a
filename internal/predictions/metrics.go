package predictions

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prediction outcomes recorded by Metrics.
const (
	OutcomeSuccess      = "success"
	OutcomeUnknownModel = "unknown_model"
	OutcomeRejected     = "rejected"
	OutcomeError        = "error"
)

// unknownModelLabel stands in for unrecognised model names so request
// paths cannot grow label cardinality.
const unknownModelLabel = "unknown"

// Metrics counts predictions by model and outcome and times successful ones.
type Metrics struct {
	Predictions *prometheus.CounterVec
	Duration    *prometheus.HistogramVec
}

// NewMetrics creates the prediction metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Predictions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "palmer",
				Name:      "predictions_total",
				Help:      "Total number of prediction requests by model and outcome",
			},
			[]string{"model", "outcome"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "palmer",
				Name:      "prediction_duration_seconds",
				Help:      "Time to validate, vectorize and classify one record",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
			},
			[]string{"model"},
		),
	}

	for _, c := range []prometheus.Collector{m.Predictions, m.Duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observe(model, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	if outcome == OutcomeUnknownModel {
		model = unknownModelLabel
	}

	m.Predictions.WithLabelValues(model, outcome).Inc()
	if outcome == OutcomeSuccess {
		m.Duration.WithLabelValues(model).Observe(elapsed.Seconds())
	}
}
