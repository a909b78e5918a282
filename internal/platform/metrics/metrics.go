package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	registry  *prometheus.Registry
	requests  *prometheus.CounterVec
	durations *prometheus.HistogramVec
}

func New() *Collector {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "staffhub_http_requests_total",
		Help: "HTTP requests handled, by method and status.",
	}, []string{"method", "status"})

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "staffhub_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	registry.MustRegister(requests, durations)

	return &Collector{
		registry:  registry,
		requests:  requests,
		durations: durations,
	}
}

func (c *Collector) Record(method string, status int, duration time.Duration) {
	c.requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	c.durations.WithLabelValues(method).Observe(duration.Seconds())
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
