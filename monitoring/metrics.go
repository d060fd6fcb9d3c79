package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"nodeguard/ml"
)

// Metrics collects prediction counters on a private prometheus registry.
type Metrics struct {
	registry    *prometheus.Registry
	predictions *prometheus.CounterVec
	errors      *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	models      prometheus.Gauge
	reloads     prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nodeguard",
			Name:      "predictions_total",
			Help:      "Verdicts produced, by model and verdict.",
		}, []string{"model", "verdict"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nodeguard",
			Name:      "prediction_errors_total",
			Help:      "Requests that produced no verdict, by model and error kind.",
		}, []string{"model", "kind"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "nodeguard",
			Name:      "inference_seconds",
			Help:      "Time spent producing a verdict.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"model"}),
		models: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "nodeguard",
			Name:      "registry_models",
			Help:      "Models loaded at startup.",
		}),
		reloads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nodeguard",
			Name:      "model_file_changes_total",
			Help:      "Model file changes seen after startup (restart required).",
		}),
	}
	m.registry.MustRegister(
		m.predictions,
		m.errors,
		m.latency,
		m.models,
		m.reloads,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) ObservePrediction(model string, verdict ml.Verdict, elapsed time.Duration) {
	m.predictions.WithLabelValues(model, string(verdict)).Inc()
	m.latency.WithLabelValues(model).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveError(model string, err error) {
	m.errors.WithLabelValues(model, ml.ErrorKind(err)).Inc()
}

func (m *Metrics) SetModels(n int) {
	m.models.Set(float64(n))
}

func (m *Metrics) ModelFileChanged() {
	m.reloads.Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
