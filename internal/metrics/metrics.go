package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus metrics for the service
type Metrics struct {
	registry *prometheus.Registry

	RequestCounter   *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
	Hi5Grants        *prometheus.CounterVec
}

// New creates a metrics instance on its own registry
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RequestCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		RequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "Number of requests currently being processed",
			},
		),
		Hi5Grants: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "hi5_grants_total",
				Help:      "Hi5 grant attempts by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// Middleware records count, latency and in-flight requests per route
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		m.RequestsInFlight.Inc()
		defer m.RequestsInFlight.Dec()

		start := time.Now()
		c.Next()

		// 未匹配的路由统一归到一个 label，避免 label 爆炸
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method

		m.RequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		m.RequestCounter.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// RecordGrant counts one Hi5 grant attempt
func (m *Metrics) RecordGrant(outcome string) {
	m.Hi5Grants.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
