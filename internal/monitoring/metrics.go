package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the service.
type Metrics struct {
	registry *prometheus.Registry

	runsTotal        prometheus.Counter
	runFailures      prometheus.Counter
	eventsNormalized prometheus.Counter
	actorsClassified prometheus.Gauge
	stageDuration    *prometheus.HistogramVec
	httpRequests     *prometheus.CounterVec
}

// NewMetrics creates and registers all collectors on a private registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		runsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "teamlens",
			Name:      "pipeline_runs_total",
			Help:      "Number of pipeline runs started.",
		}),
		runFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "teamlens",
			Name:      "pipeline_run_failures_total",
			Help:      "Number of pipeline runs that aborted.",
		}),
		eventsNormalized: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "teamlens",
			Name:      "events_normalized_total",
			Help:      "Number of events produced by the normalizer.",
		}),
		actorsClassified: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "teamlens",
			Name:      "actors_classified",
			Help:      "Actors classified in the most recent run.",
		}),
		stageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "teamlens",
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"stage"}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "teamlens",
			Name:      "http_requests_total",
			Help:      "HTTP requests by path and status.",
		}, []string{"path", "status"}),
	}
}

// Registry exposes the private registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RunStarted records a pipeline run start.
func (m *Metrics) RunStarted() {
	m.runsTotal.Inc()
}

// RunFailed records an aborted pipeline run.
func (m *Metrics) RunFailed() {
	m.runFailures.Inc()
}

// EventsNormalized records the normalizer's output size.
func (m *Metrics) EventsNormalized(n int) {
	m.eventsNormalized.Add(float64(n))
}

// ActorsClassified records how many actors got roles this run.
func (m *Metrics) ActorsClassified(n int) {
	m.actorsClassified.Set(float64(n))
}

// ObserveStage records a stage duration.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// ObserveRequest records an HTTP request.
func (m *Metrics) ObserveRequest(path, status string) {
	m.httpRequests.WithLabelValues(path, status).Inc()
}
