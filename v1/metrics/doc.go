// Package metrics provides Prometheus-based monitoring for the search service.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - MetricsCollector interface: Defines the contract for metrics operations
//   - Metrics struct: Concrete implementation of the MetricsCollector interface
//   - NewMetrics constructor: Returns *Metrics (concrete type)
//   - FX module: Provides both *Metrics and MetricsCollector interface for dependency injection
//
// *Metrics plugs into three places:
//   - algolia.Recorder: per-request search outcome and filter translation outcome
//   - observability.Observer: every Get and Count issued to Weaviate or Qdrant
//   - Middleware: HTTP request count and latency per chi route
//
// # Exposed Metrics
//
//	http_requests_total{method,path,status}
//	http_request_duration_seconds{method,path,status}
//	search_requests_total{index,status}
//	search_duration_seconds{index,status}
//	search_filters_total{status}
//	store_operations_total{component,operation,status}
//	store_operation_duration_seconds{component,operation,mode}
//	store_result_size{component,operation}
//
// Every metric carries the constant label service="<ServiceName>" and the
// optional Namespace prefix.
//
// # Direct Usage (Without FX)
//
//	m := metrics.NewMetrics(metrics.Config{
//		Address:                 ":9090",
//		EnableDefaultCollectors: true,
//		ServiceName:             "algolia-weaviate",
//	})
//	go m.Server.ListenAndServe()
//
//	adapter.WithMetrics(m)
//	weaviateClient.WithObserver(m)
//
// # FX Module Integration
//
//	app := fx.New(
//		metrics.FXModule, // Provides *Metrics and MetricsCollector
//		fx.Provide(func() metrics.Config {
//			return metrics.Config{Address: ":9090", ServiceName: "algolia-weaviate"}
//		}),
//	)
//
// # Configuration
//
//	METRICS_ADDRESS=:9090                      # Listen address of the scrape server
//	METRICS_PATH=/metrics                      # Scrape endpoint
//	METRICS_ENABLE_DEFAULT_COLLECTORS=true     # Enable runtime and process metrics
//	METRICS_NAMESPACE=algolia_weaviate         # Optional prefix for all metric names
//	METRICS_SERVICE_NAME=algolia-weaviate      # Adds service label to all metrics
//
// # Thread Safety
//
// All methods on the Metrics struct and Prometheus collectors are safe for
// concurrent use by multiple goroutines.
package metrics
