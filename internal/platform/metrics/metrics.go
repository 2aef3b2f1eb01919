// Package metrics exposes Prometheus counters for form operations.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mushroom_form/internal/feature/classifier/usecase"
)

// Metrics implements usecase.Recorder on a dedicated registry.
type Metrics struct {
	registry    *prometheus.Registry
	submissions *prometheus.CounterVec
	predictions *prometheus.CounterVec
	analyses    *prometheus.CounterVec
}

var _ usecase.Recorder = (*Metrics)(nil)

// New registers the form counters on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mushroom_form",
			Name:      "submissions_total",
			Help:      "Form submissions by outcome.",
		}, []string{"outcome"}),
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mushroom_form",
			Name:      "predictions_total",
			Help:      "Successful predictions by verdict.",
		}, []string{"verdict"}),
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mushroom_form",
			Name:      "image_analyses_total",
			Help:      "Image analyses by outcome.",
		}, []string{"outcome"}),
	}
	m.registry.MustRegister(m.submissions, m.predictions, m.analyses)
	return m
}

func (m *Metrics) SubmissionOutcome(outcome string) {
	m.submissions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Prediction(verdict string) {
	m.predictions.WithLabelValues(verdict).Inc()
}

func (m *Metrics) ImageAnalysisOutcome(outcome string) {
	m.analyses.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
