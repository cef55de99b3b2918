package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abhisek/shindan/internal/selector"
)

const namespace = "shindan"

// Metrics holds the application's prometheus collectors on a private
// registry, so tests can create as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	Selections      *prometheus.CounterVec
	Overrides       prometheus.Counter
	Results         *prometheus.CounterVec
	RequestCounter  *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers every collector. Go runtime and
// process collectors are included when withRuntime is set.
func NewMetrics(withRuntime bool) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Selections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "selections_total",
				Help:      "Questions selected, by decision source.",
			},
			[]string{"source"},
		),
		Overrides: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "balance_overrides_total",
			Help:      "Selections where axis balance replaced the matched question.",
		}),
		Results: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "results_total",
				Help:      "Saved diagnosis results, by character code.",
			},
			[]string{"code"},
		),
		RequestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests.",
			},
			[]string{"method", "endpoint", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests.",
				Buckets:   []float64{0.005, 0.025, 0.1, 0.5, 1, 5},
			},
			[]string{"method", "endpoint"},
		),
	}

	m.registry.MustRegister(m.Selections, m.Overrides, m.Results, m.RequestCounter, m.RequestDuration)
	if withRuntime {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveDecision counts a selection decision.
func (m *Metrics) ObserveDecision(d selector.Decision) {
	m.Selections.WithLabelValues(string(d.Source)).Inc()
	if d.Overridden() {
		m.Overrides.Inc()
	}
}

// ObserveResult counts a saved result.
func (m *Metrics) ObserveResult(code string) {
	m.Results.WithLabelValues(code).Inc()
}

// Middleware records request count and latency per route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		m.RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.RequestDuration.WithLabelValues(c.Request.Method, endpoint).
			Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
