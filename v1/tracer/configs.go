package tracer

// Config holds the tracing settings.
type Config struct {
	// ServiceName is reported as service.name and names the tracer.
	ServiceName string `yaml:"service_name" envconfig:"TRACER_SERVICE_NAME"`

	// AppEnv is reported as deployment.environment.
	AppEnv string `yaml:"app_env" envconfig:"APP_ENV"`

	// EnableExport ships spans to an OTLP/HTTP collector. When false, spans
	// are created and propagated but never leave the process.
	EnableExport bool `yaml:"enable_export" envconfig:"TRACER_ENABLE_EXPORT"`

	// Endpoint is the collector host:port. Empty means the exporter's own
	// default, which honors OTEL_EXPORTER_OTLP_ENDPOINT.
	Endpoint string `yaml:"endpoint" envconfig:"TRACER_ENDPOINT"`

	// Insecure disables TLS towards the collector.
	Insecure bool `yaml:"insecure" envconfig:"TRACER_INSECURE"`

	// Headers are sent with every export request, typically collector auth.
	Headers map[string]string `yaml:"headers" envconfig:"TRACER_HEADERS"`

	// SampleRatio is the fraction of root traces sampled, in (0, 1].
	// Zero or less samples everything.
	SampleRatio float64 `yaml:"sample_ratio" envconfig:"TRACER_SAMPLE_RATIO"`
}
