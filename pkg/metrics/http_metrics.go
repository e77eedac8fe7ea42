package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPMetrics records request counts and latencies on its own registry
type HTTPMetrics struct {
	ServiceName string

	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	statusCategory  *prometheus.CounterVec
	documentsIssued *prometheus.CounterVec
}

// NewHTTPMetrics creates a collector for serviceName and registers it
func NewHTTPMetrics(serviceName string) *HTTPMetrics {
	m := &HTTPMetrics{
		ServiceName: serviceName,
		registry:    prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"service", "method", "path", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "method", "path", "status"},
		),
		statusCategory: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_status_category_total",
				Help: "Total number of responses by status category (2xx, 4xx, 5xx)",
			},
			[]string{"service", "category"},
		),
		documentsIssued: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "documents_issued_total",
				Help: "Documents created, by type",
			},
			[]string{"service", "type"},
		),
	}

	m.registry.MustRegister(
		m.requests,
		m.duration,
		m.statusCategory,
		m.documentsIssued,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func category(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 400 && status < 500:
		return "4xx"
	case status >= 500:
		return "5xx"
	}
	return ""
}

// Middleware records every request. Unmatched routes are grouped under one
// label so random paths can't blow up cardinality.
func (m *HTTPMetrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := c.Writer.Status()
		statusStr := strconv.Itoa(status)
		method := c.Request.Method

		m.requests.WithLabelValues(m.ServiceName, method, path, statusStr).Inc()
		m.duration.WithLabelValues(m.ServiceName, method, path, statusStr).Observe(time.Since(start).Seconds())
		if cat := category(status); cat != "" {
			m.statusCategory.WithLabelValues(m.ServiceName, cat).Inc()
		}
	}
}

// DocumentIssued counts a newly numbered quotation, invoice or proposal
func (m *HTTPMetrics) DocumentIssued(docType string) {
	if m == nil {
		return
	}
	m.documentsIssued.WithLabelValues(m.ServiceName, docType).Inc()
}

// Handler exposes the registry in the Prometheus text format
func (m *HTTPMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
