package metrics

import "time"

const (
	DefaultMetricsAddress = ":9090"
	DefaultMetricsPath    = "/metrics"

	defaultReadHeaderTimeout = 5 * time.Second
)

// Config controls the metrics registry and the server that exposes it.
type Config struct {
	// Address the scrape server listens on, ":9090" when empty.
	Address string `yaml:"address" envconfig:"METRICS_ADDRESS"`

	// Path of the scrape endpoint, "/metrics" when empty.
	Path string `yaml:"path" envconfig:"METRICS_PATH"`

	// EnableDefaultCollectors adds the Go runtime, process and build info
	// collectors.
	EnableDefaultCollectors bool `yaml:"enable_default_collectors" envconfig:"METRICS_ENABLE_DEFAULT_COLLECTORS"`

	// Namespace prefixes every metric name, e.g. algolia_weaviate_search_requests_total.
	Namespace string `yaml:"namespace" envconfig:"METRICS_NAMESPACE"`

	// ServiceName becomes the constant label service="<ServiceName>".
	ServiceName string `yaml:"service_name" envconfig:"METRICS_SERVICE_NAME"`
}

func (c Config) address() string {
	if c.Address == "" {
		return DefaultMetricsAddress
	}
	return c.Address
}

func (c Config) path() string {
	if c.Path == "" {
		return DefaultMetricsPath
	}
	return c.Path
}
