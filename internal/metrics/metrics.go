package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics stores the Prometheus collectors used across the service.
type Metrics struct {
	HTTPRequests  *prometheus.CounterVec
	HTTPDuration  *prometheus.HistogramVec
	StoreErrors   *prometheus.CounterVec
	DemoGenerated prometheus.Counter
	DemoCleanups  prometheus.Counter
	DemoFailures  *prometheus.CounterVec
}

var (
	regOnce  sync.Once
	instance *Metrics
)

// Registry builds and registers the metrics singleton with the given
// namespace.
func Registry(namespace string) *Metrics {
	regOnce.Do(func() {
		instance = &Metrics{
			HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests by method, route and status.",
			}, []string{"method", "route", "status"}),
			HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Latency distribution of HTTP requests.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"method", "route"}),
			StoreErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_errors_total",
				Help:      "Total record-store failures by entity.",
			}, []string{"entity"}),
			DemoGenerated: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "demo_datasets_generated_total",
				Help:      "Total demo dataset generations.",
			}),
			DemoCleanups: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "demo_datasets_cleaned_total",
				Help:      "Total demo dataset cleanups.",
			}),
			DemoFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "demo_failures_total",
				Help:      "Demo lifecycle failures by phase.",
			}, []string{"phase"}),
		}

		prometheus.MustRegister(
			instance.HTTPRequests,
			instance.HTTPDuration,
			instance.StoreErrors,
			instance.DemoGenerated,
			instance.DemoCleanups,
			instance.DemoFailures,
		)
	})
	return instance
}
