package logger

import "fmt"

// Level names accepted in Config.Level.
const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Encodings accepted in Config.Encoding.
const (
	EncodingJSON    = "json"
	EncodingConsole = "console"
)

// Config defines the logger settings.
type Config struct {
	// Level is one of debug, info, warning, error. Anything else means info.
	Level string `yaml:"level" envconfig:"ZAP_LOGGER_LEVEL"`

	// Encoding is json (default) or console.
	Encoding string `yaml:"encoding" envconfig:"ZAP_LOGGER_ENCODING"`

	// ServiceName is attached to every entry as "service".
	ServiceName string `yaml:"service_name" envconfig:"LOGGER_SERVICE_NAME"`

	// EnableTracing adds trace_id and span_id to *WithContext entries.
	EnableTracing bool `yaml:"enable_tracing" envconfig:"LOGGER_ENABLE_TRACING"`
}

func (c Config) encoding() (string, error) {
	switch c.Encoding {
	case "", EncodingJSON:
		return EncodingJSON, nil
	case EncodingConsole:
		return EncodingConsole, nil
	}
	return "", fmt.Errorf("logger: unknown encoding %q", c.Encoding)
}

// Validate rejects an unknown encoding.
func (c Config) Validate() error {
	_, err := c.encoding()
	return err
}
