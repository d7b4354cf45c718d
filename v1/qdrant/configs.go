package qdrant

import (
	"fmt"
	"time"
)

// Config holds connection and behavior settings for the Qdrant client.
//
// Example (builder style):
//
//	cfg := qdrant.FromEndpoint("localhost").
//	    WithAPIKey(os.Getenv("QDRANT_API_KEY")).
//	    WithTimeout(10 * time.Second)
type Config struct {
	// Hostname of the Qdrant server, e.g. "localhost".
	Endpoint string `yaml:"endpoint" envconfig:"QDRANT_ENDPOINT"`

	// gRPC port of the Qdrant server. Defaults to 6334.
	Port int `yaml:"port" envconfig:"QDRANT_PORT"`

	// Optional authentication token for secured deployments.
	APIKey string `yaml:"api_key" envconfig:"QDRANT_API_KEY"`

	// UseTLS switches the gRPC connection to TLS.
	UseTLS bool `yaml:"use_tls" envconfig:"QDRANT_USE_TLS"`

	// Maximum duration of a single query or count.
	Timeout time.Duration `yaml:"timeout" envconfig:"QDRANT_TIMEOUT"`

	// Budget for the startup health check.
	ConnectTimeout time.Duration `yaml:"connect_timeout" envconfig:"QDRANT_CONNECT_TIMEOUT"`

	// Whether to perform version compatibility checks between client and server.
	CheckCompatibility bool `yaml:"check_compatibility" envconfig:"QDRANT_CHECK_COMPATIBILITY"`

	// ExactCount makes Count scan instead of estimating.
	ExactCount bool `yaml:"exact_count" envconfig:"QDRANT_EXACT_COUNT"`

	// VectorName selects a named vector for nearText queries. Empty uses
	// the collection's default vector.
	VectorName string `yaml:"vector_name" envconfig:"QDRANT_VECTOR_NAME"`
}

// DefaultConfig provides sensible defaults for most use cases.
func DefaultConfig() *Config {
	return &Config{
		Endpoint:           "localhost",
		Port:               6334,
		Timeout:            5 * time.Second,
		ConnectTimeout:     5 * time.Second,
		CheckCompatibility: true,
		ExactCount:         true,
	}
}

// FromEndpoint returns a default config pre-filled with a specific host.
func FromEndpoint(host string) *Config {
	cfg := DefaultConfig()
	cfg.Endpoint = host
	return cfg
}

// Builder-style helpers
func (c *Config) WithPort(port int) *Config {
	c.Port = port
	return c
}

func (c *Config) WithAPIKey(key string) *Config {
	c.APIKey = key
	return c
}

func (c *Config) WithTimeout(d time.Duration) *Config {
	c.Timeout = d
	return c
}

func (c *Config) WithConnectTimeout(d time.Duration) *Config {
	c.ConnectTimeout = d
	return c
}

func (c *Config) WithTLS(enabled bool) *Config {
	c.UseTLS = enabled
	return c
}

func (c *Config) WithCompatibilityCheck(enabled bool) *Config {
	c.CheckCompatibility = enabled
	return c
}

// Validate checks the fields NewQdrantClient depends on.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("[Qdrant] endpoint is required")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("[Qdrant] invalid port %d", c.Port)
	}
	return nil
}
