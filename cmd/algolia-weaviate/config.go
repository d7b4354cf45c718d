package main

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Aleph-Alpha/algolia-weaviate/v1/algolia"
	"github.com/Aleph-Alpha/algolia-weaviate/v1/embedding"
	"github.com/Aleph-Alpha/algolia-weaviate/v1/kafka"
	"github.com/Aleph-Alpha/algolia-weaviate/v1/logger"
	"github.com/Aleph-Alpha/algolia-weaviate/v1/metrics"
	"github.com/Aleph-Alpha/algolia-weaviate/v1/qdrant"
	"github.com/Aleph-Alpha/algolia-weaviate/v1/redis"
	"github.com/Aleph-Alpha/algolia-weaviate/v1/tracer"
	"github.com/Aleph-Alpha/algolia-weaviate/v1/weaviate"
)

// Supported search backends.
const (
	BackendWeaviate = "weaviate"
	BackendQdrant   = "qdrant"
)

const serviceName = "algolia-weaviate"

// Config is the root configuration of the server.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Backend   string          `yaml:"backend"`
	Weaviate  weaviate.Config `yaml:"weaviate"`
	Qdrant    qdrant.Config   `yaml:"qdrant"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Algolia   algolia.Config  `yaml:"algolia"`
	Cache     CacheConfig     `yaml:"cache"`
	Events    EventsConfig    `yaml:"events"`
	Logger    logger.Config   `yaml:"logger"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Tracer    tracer.Config   `yaml:"tracer"`
}

// ServerConfig configures the Algolia-compatible HTTP listener.
type ServerConfig struct {
	Listen          string        `yaml:"listen"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// MetricsConfig adds an on/off switch to the Prometheus server settings.
type MetricsConfig struct {
	Enabled        bool `yaml:"enabled"`
	metrics.Config `yaml:",inline"`
}

// CacheConfig adds an on/off switch to the Redis response cache settings.
type CacheConfig struct {
	Enabled      bool `yaml:"enabled"`
	redis.Config `yaml:",inline"`
}

// EmbeddingConfig lets the Qdrant backend embed nearText concepts. Weaviate
// vectorizes them itself and ignores this section.
type EmbeddingConfig struct {
	Enabled          bool `yaml:"enabled"`
	embedding.Config `yaml:",inline"`
}

// EventsConfig adds an on/off switch to the Kafka search event settings.
type EventsConfig struct {
	Enabled      bool `yaml:"enabled"`
	kafka.Config `yaml:",inline"`
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Load reads a YAML config file, expands ${VAR} and ${VAR:-default}
// references, applies defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse is Load without the file read.
func Parse(data []byte) (*Config, error) {
	cfg := defaultConfig()
	if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// expandEnvVars replaces ${VAR} with its value and ${VAR:-default} with the
// value or the default when VAR is unset or empty.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		expr := envVarPattern.FindStringSubmatch(match)[1]
		name, def, hasDefault := strings.Cut(expr, ":-")
		if v := os.Getenv(name); v != "" || !hasDefault {
			return v
		}
		return def
	})
}

// defaultConfig seeds the sections whose zero values are not usable, so a
// partial YAML file only overrides what it names.
func defaultConfig() *Config {
	return &Config{
		Backend:  BackendWeaviate,
		Weaviate: *weaviate.DefaultConfig(),
		Qdrant:   *qdrant.DefaultConfig(),
		Logger:   logger.Config{Level: logger.Info, ServiceName: serviceName},
		Metrics: MetricsConfig{
			Config: metrics.Config{Address: metrics.DefaultMetricsAddress, ServiceName: serviceName},
		},
		Tracer: tracer.Config{ServiceName: serviceName, SampleRatio: 1},
		Cache:  CacheConfig{Config: redis.DefaultConfig()},
		Events: EventsConfig{Config: kafka.DefaultConfig()},
	}
}

// ApplyDefaults fills settings left empty by the file.
func (c *Config) ApplyDefaults() {
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15 * time.Second
	}
	if len(c.Algolia.Fields) == 0 {
		c.Algolia.Fields = append([]string(nil), algolia.DefaultFields...)
	}
	if c.Metrics.Address == "" {
		c.Metrics.Address = metrics.DefaultMetricsAddress
	}
}

// Validate checks the selected backend and every section that is in use.
func (c *Config) Validate() error {
	if c.Server.Listen == "" {
		return errors.New("server.listen is required")
	}

	switch c.Backend {
	case BackendWeaviate:
		if err := c.Weaviate.Validate(); err != nil {
			return fmt.Errorf("weaviate: %w", err)
		}
	case BackendQdrant:
		if err := c.Qdrant.Validate(); err != nil {
			return fmt.Errorf("qdrant: %w", err)
		}
	default:
		return fmt.Errorf("unknown backend %q, want %q or %q", c.Backend, BackendWeaviate, BackendQdrant)
	}

	if err := c.Algolia.Validate(); err != nil {
		return fmt.Errorf("algolia: %w", err)
	}
	if c.Backend == BackendQdrant && c.Embedding.Enabled {
		if err := c.Embedding.Validate(); err != nil {
			return fmt.Errorf("embedding: %w", err)
		}
	}
	if c.Cache.Enabled {
		if err := c.Cache.Validate(); err != nil {
			return fmt.Errorf("cache: %w", err)
		}
	}
	if c.Events.Enabled {
		if err := c.Events.Validate(); err != nil {
			return fmt.Errorf("events: %w", err)
		}
	}
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if c.Tracer.SampleRatio < 0 || c.Tracer.SampleRatio > 1 {
		return fmt.Errorf("tracer.sample_ratio must be within [0, 1], got %v", c.Tracer.SampleRatio)
	}
	return nil
}
