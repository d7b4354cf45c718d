package kafka

import (
	"errors"
	"fmt"
	"time"
)

// Default values for configuration
const (
	DefaultTopic        = "algolia-search-events"
	DefaultRequiredAcks = 1
	DefaultBatchSize    = 100
	DefaultBatchTimeout = time.Second
	DefaultMaxAttempts  = 3
	DefaultWriteTimeout = 10 * time.Second
)

// Config defines the settings of the search event publisher.
type Config struct {
	// Brokers is the list of bootstrap brokers, e.g. ["kafka:9092"]
	Brokers []string `yaml:"brokers" envconfig:"KAFKA_BROKERS"`

	// Topic receives one message per served search, keyed by index name
	// Default: "algolia-search-events"
	Topic string `yaml:"topic" envconfig:"KAFKA_TOPIC"`

	// RequiredAcks is -1 (all in-sync replicas) or 1 (leader only).
	// Zero takes the default.
	// Default: 1
	RequiredAcks int `yaml:"required_acks" envconfig:"KAFKA_REQUIRED_ACKS"`

	// Async makes Publish return before the broker acknowledges, so
	// analytics never slow down a search. Delivery failures are then
	// reported to the logger and observer only.
	Async bool `yaml:"async" envconfig:"KAFKA_ASYNC"`

	// BatchSize is the number of messages buffered before a flush
	// Default: 100
	BatchSize int `yaml:"batch_size" envconfig:"KAFKA_BATCH_SIZE"`

	// BatchTimeout is the longest a partial batch waits before a flush
	// Default: 1 second
	BatchTimeout time.Duration `yaml:"batch_timeout" envconfig:"KAFKA_BATCH_TIMEOUT"`

	// MaxAttempts is the number of delivery attempts per batch
	// Default: 3
	MaxAttempts int `yaml:"max_attempts" envconfig:"KAFKA_MAX_ATTEMPTS"`

	// WriteTimeout bounds a single write to a broker
	// Default: 10 seconds
	WriteTimeout time.Duration `yaml:"write_timeout" envconfig:"KAFKA_WRITE_TIMEOUT"`

	// CompressionCodec is one of "", "gzip", "snappy", "lz4", "zstd"
	CompressionCodec string `yaml:"compression_codec" envconfig:"KAFKA_COMPRESSION_CODEC"`

	// AllowAutoTopicCreation lets the first write create Topic
	AllowAutoTopicCreation bool `yaml:"allow_auto_topic_creation" envconfig:"KAFKA_ALLOW_AUTO_TOPIC_CREATION"`

	// TLS contains TLS/SSL configuration
	TLS TLSConfig `yaml:"tls"`

	// SASL contains SASL authentication configuration
	SASL SASLConfig `yaml:"sasl"`
}

// TLSConfig contains TLS/SSL configuration parameters.
type TLSConfig struct {
	Enabled bool `yaml:"enabled" envconfig:"KAFKA_TLS_ENABLED"`

	// CACertPath is the file path to the CA certificate for verifying the broker
	CACertPath string `yaml:"ca_cert_path" envconfig:"KAFKA_TLS_CA_CERT_PATH"`

	// ClientCertPath is the file path to the client certificate
	ClientCertPath string `yaml:"client_cert_path" envconfig:"KAFKA_TLS_CLIENT_CERT_PATH"`

	// ClientKeyPath is the file path to the client certificate's private key
	ClientKeyPath string `yaml:"client_key_path" envconfig:"KAFKA_TLS_CLIENT_KEY_PATH"`

	// InsecureSkipVerify controls whether to skip verification of the broker's certificate
	// WARNING: Setting this to true is insecure and should only be used in testing
	InsecureSkipVerify bool `yaml:"insecure_skip_verify" envconfig:"KAFKA_TLS_INSECURE_SKIP_VERIFY"`
}

// SASLConfig contains SASL authentication parameters.
type SASLConfig struct {
	Enabled bool `yaml:"enabled" envconfig:"KAFKA_SASL_ENABLED"`

	// Mechanism is "PLAIN", "SCRAM-SHA-256" or "SCRAM-SHA-512"
	Mechanism string `yaml:"mechanism" envconfig:"KAFKA_SASL_MECHANISM"`

	Username string `yaml:"username" envconfig:"KAFKA_SASL_USERNAME"`
	Password string `yaml:"password" envconfig:"KAFKA_SASL_PASSWORD"`
}

// DefaultConfig returns an asynchronous publisher for brokers.
func DefaultConfig(brokers ...string) Config {
	cfg := Config{Brokers: brokers, Async: true}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Topic == "" {
		c.Topic = DefaultTopic
	}
	if c.RequiredAcks == 0 {
		c.RequiredAcks = DefaultRequiredAcks
	}
	if c.BatchSize == 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.BatchTimeout == 0 {
		c.BatchTimeout = DefaultBatchTimeout
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = DefaultWriteTimeout
	}
}

// Validate checks the settings NewClient depends on.
func (c Config) Validate() error {
	if len(c.Brokers) == 0 {
		return errors.New("[Kafka] at least one broker is required")
	}
	if c.Topic == "" {
		return errors.New("[Kafka] topic is required")
	}
	if c.RequiredAcks != -1 && c.RequiredAcks != 1 {
		return fmt.Errorf("[Kafka] required acks must be -1 or 1, got %d", c.RequiredAcks)
	}
	switch c.CompressionCodec {
	case "", "gzip", "snappy", "lz4", "zstd":
	default:
		return fmt.Errorf("[Kafka] unsupported compression codec %q", c.CompressionCodec)
	}
	return nil
}
