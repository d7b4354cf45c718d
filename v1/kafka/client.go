package kafka

import (
	"crypto/tls"
	"fmt"
	"sync"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"

	"github.com/Aleph-Alpha/algolia-weaviate/v1/observability"
	"github.com/Aleph-Alpha/algolia-weaviate/v1/tlsutil"
)

// Logger defines the logging operations used by the Kafka publisher.
// *logger.LoggerClient satisfies it.
type Logger interface {
	Error(msg string, err error, fields ...map[string]interface{})
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
}

// KafkaClient publishes search events to a single Kafka topic.
// It satisfies algolia.EventPublisher.
type KafkaClient struct {
	writer *kafka.Writer
	cfg    Config

	// mu guards logger and observer, which the writer's callbacks read
	// from its own goroutines.
	mu       sync.RWMutex
	logger   Logger
	observer observability.Observer

	closeOnce sync.Once
}

// NewClient creates a producer for cfg.Topic. Zero-valued settings take
// their defaults. Brokers are contacted on the first write.
//
// Example:
//
//	client, err := kafka.NewClient(kafka.DefaultConfig("localhost:9092"))
//	if err != nil {
//		return err
//	}
//	defer client.Close()
func NewClient(cfg Config) (*KafkaClient, error) {
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		tlsConfig *tls.Config
		err       error
	)
	if cfg.TLS.Enabled {
		tlsConfig, err = tlsutil.ClientConfig(tlsutil.Options{
			CACertPath:         cfg.TLS.CACertPath,
			ClientCertPath:     cfg.TLS.ClientCertPath,
			ClientKeyPath:      cfg.TLS.ClientKeyPath,
			InsecureSkipVerify: cfg.TLS.InsecureSkipVerify,
		})
		if err != nil {
			return nil, fmt.Errorf("kafka tls: %w", err)
		}
	}

	var mechanism sasl.Mechanism
	if cfg.SASL.Enabled {
		mechanism, err = saslMechanism(cfg.SASL)
		if err != nil {
			return nil, fmt.Errorf("kafka sasl: %w", err)
		}
	}

	k := &KafkaClient{
		cfg:    cfg,
		logger: nopLogger{},
	}
	k.writer = &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequiredAcks(cfg.RequiredAcks),
		Async:                  cfg.Async,
		BatchSize:              cfg.BatchSize,
		BatchTimeout:           cfg.BatchTimeout,
		MaxAttempts:            cfg.MaxAttempts,
		WriteTimeout:           cfg.WriteTimeout,
		Compression:            compressionCodec(cfg.CompressionCodec),
		AllowAutoTopicCreation: cfg.AllowAutoTopicCreation,
		Transport: &kafka.Transport{
			TLS:  tlsConfig,
			SASL: mechanism,
		},
		ErrorLogger: kafka.LoggerFunc(k.logInternalError),
	}
	if cfg.Async {
		k.writer.Completion = k.onCompletion
	}

	return k, nil
}

// compressionCodec maps a validated codec name to the writer setting.
// The empty name disables compression.
func compressionCodec(name string) kafka.Compression {
	switch name {
	case "gzip":
		return kafka.Gzip
	case "snappy":
		return kafka.Snappy
	case "lz4":
		return kafka.Lz4
	case "zstd":
		return kafka.Zstd
	default:
		return 0
	}
}

// saslMechanism maps a validated mechanism name to kafka-go.
func saslMechanism(cfg SASLConfig) (sasl.Mechanism, error) {
	switch cfg.Mechanism {
	case "PLAIN":
		return plain.Mechanism{
			Username: cfg.Username,
			Password: cfg.Password,
		}, nil
	case "SCRAM-SHA-256":
		return scram.Mechanism(scram.SHA256, cfg.Username, cfg.Password)
	case "SCRAM-SHA-512":
		return scram.Mechanism(scram.SHA512, cfg.Username, cfg.Password)
	default:
		return nil, fmt.Errorf("unsupported SASL mechanism: %s", cfg.Mechanism)
	}
}

// Writer returns the underlying kafka-go writer for advanced operations.
func (k *KafkaClient) Writer() *kafka.Writer {
	return k.writer
}

// Close flushes buffered messages and closes the writer.
// Calling Close more than once is safe.
func (k *KafkaClient) Close() error {
	var err error
	k.closeOnce.Do(func() {
		log := k.getLogger()
		log.Info("Closing Kafka publisher", nil, map[string]interface{}{
			"topic": k.cfg.Topic,
		})
		if err = k.writer.Close(); err != nil {
			log.Warn("Failed to close Kafka publisher", err, nil)
		}
	})
	return err
}

// WithObserver reports one event per published message, or per delivered
// batch in async mode.
func (k *KafkaClient) WithObserver(observer observability.Observer) *KafkaClient {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.observer = observer
	return k
}

// WithLogger replaces the no-op logger. A nil logger is ignored.
func (k *KafkaClient) WithLogger(logger Logger) *KafkaClient {
	if logger == nil {
		return k
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	k.logger = logger
	return k
}

func (k *KafkaClient) getLogger() Logger {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.logger
}

func (k *KafkaClient) getObserver() observability.Observer {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.observer
}

// logInternalError forwards kafka-go's own error reports.
func (k *KafkaClient) logInternalError(msg string, args ...interface{}) {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	k.getLogger().Error("Kafka internal error", nil, map[string]interface{}{
		"error": msg,
		"topic": k.cfg.Topic,
	})
}

type nopLogger struct{}

func (nopLogger) Error(string, error, ...map[string]interface{}) {}
func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Warn(string, error, ...map[string]interface{})  {}
