package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Latency buckets shared by the HTTP, search and store histograms, in seconds.
var latencyBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// Metrics encapsulates the Prometheus registry and HTTP server responsible
// for exposing application metrics, plus the collectors of the search path.
type Metrics struct {
	// Server exposes Registry on Config.Path.
	Server *http.Server

	// Registry is private to this service so names never collide with
	// the global default registry.
	Registry *prometheus.Registry

	// HTTP surface
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Adapter
	searchRequestsTotal *prometheus.CounterVec
	searchDuration      *prometheus.HistogramVec
	filtersTotal        *prometheus.CounterVec

	// Stores
	storeOperationsTotal   *prometheus.CounterVec
	storeOperationDuration *prometheus.HistogramVec
	storeResultSize        *prometheus.HistogramVec
}

// NewMetrics builds an isolated registry with the search collectors, and
// the default collectors when enabled. Every metric carries the constant
// label service="<ServiceName>". Server is not started; FXModule does that.
//
//	m := metrics.NewMetrics(metrics.Config{ServiceName: "algolia-weaviate"})
//	go m.Server.ListenAndServe()
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()
	wrappedRegistry := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	ns := cfg.Namespace
	m := &Metrics{
		Registry: registry,

		httpRequestsTotal:   createCounterVec(ns, "http_requests_total", "Total number of HTTP requests", []string{"method", "path", "status"}),
		httpRequestDuration: createHistogramVec(ns, "http_request_duration_seconds", "HTTP request duration in seconds", []string{"method", "path", "status"}, latencyBuckets),

		searchRequestsTotal: createCounterVec(ns, "search_requests_total", "Search requests served, by index and outcome", []string{"index", "status"}),
		searchDuration:      createHistogramVec(ns, "search_duration_seconds", "Duration of a single search request in seconds", []string{"index", "status"}, latencyBuckets),
		filtersTotal:        createCounterVec(ns, "search_filters_total", "Filter expressions by translation outcome", []string{"status"}),

		storeOperationsTotal:   createCounterVec(ns, "store_operations_total", "Vector store calls, by backend, operation and outcome", []string{"component", "operation", "status"}),
		storeOperationDuration: createHistogramVec(ns, "store_operation_duration_seconds", "Vector store call duration in seconds", []string{"component", "operation", "mode"}, latencyBuckets),
		storeResultSize:        createHistogramVec(ns, "store_result_size", "Rows returned by get or objects counted by count", []string{"component", "operation"}, prometheus.ExponentialBuckets(1, 4, 8)),
	}

	wrappedRegistry.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.searchRequestsTotal,
		m.searchDuration,
		m.filtersTotal,
		m.storeOperationsTotal,
		m.storeOperationDuration,
		m.storeResultSize,
	)

	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	mux := http.NewServeMux()
	mux.Handle(cfg.path(), promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		Registry:          wrappedRegistry,
		EnableOpenMetrics: true,
	}))

	m.Server = &http.Server{
		Addr:              cfg.address(),
		Handler:           mux,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
	}
	return m
}
