package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Aleph-Alpha/algolia-weaviate/v1/observability"
)

// unknownIndex labels requests without an index name, keeping the label set bounded.
const unknownIndex = "default"

// ObserveSearch records one search request.
// Example: metrics.ObserveSearch("products", "success", time.Since(start))
func (m *Metrics) ObserveSearch(index, status string, duration time.Duration) {
	if index == "" {
		index = unknownIndex
	}
	m.searchRequestsTotal.WithLabelValues(index, status).Inc()
	m.searchDuration.WithLabelValues(index, status).Observe(duration.Seconds())
}

// ObserveFilter counts a filter expression by translation outcome.
// Example: metrics.ObserveFilter("rejected")
func (m *Metrics) ObserveFilter(status string) {
	m.filtersTotal.WithLabelValues(status).Inc()
}

// ObserveOperation records a call reported by the weaviate or qdrant store
// or the redis cache. SubResource becomes the mode label.
func (m *Metrics) ObserveOperation(ctx observability.OperationContext) {
	status := "success"
	if ctx.Error != nil {
		status = "error"
	}

	m.storeOperationsTotal.WithLabelValues(ctx.Component, ctx.Operation, status).Inc()
	m.storeOperationDuration.WithLabelValues(ctx.Component, ctx.Operation, ctx.SubResource).Observe(ctx.Duration.Seconds())
	if ctx.Error == nil {
		m.storeResultSize.WithLabelValues(ctx.Component, ctx.Operation).Observe(float64(ctx.Size))
	}
}

// createCounterVec defines a new CounterVec with standard options.
// Used internally by NewMetrics to maintain consistency.
func createCounterVec(namespace, name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		},
		labels,
	)
}

// createHistogramVec defines a new HistogramVec with configurable buckets.
// Used internally by NewMetrics for latency tracking.
func createHistogramVec(namespace, name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
			Buckets:   buckets,
		},
		labels,
	)
}
