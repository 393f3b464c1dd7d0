package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/jza/pkg/domain"
)

// Metrics holds the Prometheus collectors of one engine.
type Metrics struct {
	registry *prometheus.Registry

	SequencesTrained    *prometheus.CounterVec
	Validations         *prometheus.CounterVec
	Generations         *prometheus.CounterVec
	GeneratedLength     prometheus.Histogram
	Retries             *prometheus.CounterVec
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	ModelStates         prometheus.Gauge
	ModelTransitions    prometheus.Gauge
}

// NewMetrics registers all collectors on a fresh registry.
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(prometheus.NewRegistry())
}

// NewMetricsWithRegistry registers all collectors on reg.
func NewMetricsWithRegistry(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		SequencesTrained: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jza_sequences_trained_total",
				Help: "Symbol sequences submitted for training",
			},
			[]string{"status"},
		),
		Validations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jza_validations_total",
				Help: "Symbol sequences validated",
			},
			[]string{"status"},
		),
		Generations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jza_generations_total",
				Help: "Sequence generation operations",
			},
			[]string{"operation", "status"},
		),
		GeneratedLength: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "jza_generated_sequence_length",
				Help:    "Length of successfully generated sequences",
				Buckets: []float64{1, 2, 4, 8, 16, 32, 64},
			},
		),
		Retries: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jza_generation_retries_total",
				Help: "Restarts of bounded generation attempts",
			},
			[]string{"operation"},
		),
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jza_http_requests_total",
				Help: "HTTP requests served",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "jza_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		ModelStates: f.NewGauge(prometheus.GaugeOpts{
			Name: "jza_model_states",
			Help: "States in the loaded automaton",
		}),
		ModelTransitions: f.NewGauge(prometheus.GaugeOpts{
			Name: "jza_model_transitions",
			Help: "Transitions in the loaded automaton",
		}),
	}
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func status(ok bool) string {
	if ok {
		return "accepted"
	}
	return "rejected"
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTrain: func(e *domain.TrainEvent) {
			m.SequencesTrained.WithLabelValues(status(e.Accepted)).Inc()
		},
		OnValidate: func(e *domain.ValidateEvent) {
			m.Validations.WithLabelValues(status(e.Accepted)).Inc()
		},
		OnGenerate: func(e *domain.GenerateEvent) {
			if e.Err != nil {
				m.Generations.WithLabelValues(e.Operation, "error").Inc()
				return
			}
			m.Generations.WithLabelValues(e.Operation, "ok").Inc()
			m.GeneratedLength.Observe(float64(e.Length))
		},
		OnRetry: func(e *domain.RetryEvent) {
			m.Retries.WithLabelValues(e.Operation).Inc()
		},
	}
}

// RecordHTTPRequest records an HTTP request with its duration.
func (m *Metrics) RecordHTTPRequest(method, route, status string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// SetModelSize records the size of the loaded automaton.
func (m *Metrics) SetModelSize(states, transitions int) {
	m.ModelStates.Set(float64(states))
	m.ModelTransitions.Set(float64(transitions))
}
