package kafka

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/algolia-weaviate/v1/algolia"
	"github.com/Aleph-Alpha/algolia-weaviate/v1/observability"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("localhost:9092")

	assert.Equal(t, []string{"localhost:9092"}, cfg.Brokers)
	assert.Equal(t, DefaultTopic, cfg.Topic)
	assert.Equal(t, DefaultRequiredAcks, cfg.RequiredAcks)
	assert.Equal(t, DefaultBatchTimeout, cfg.BatchTimeout)
	assert.True(t, cfg.Async)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no brokers", func(c *Config) { c.Brokers = nil }},
		{"empty topic", func(c *Config) { c.Topic = "" }},
		{"bad acks", func(c *Config) { c.RequiredAcks = 2 }},
		{"unknown codec", func(c *Config) { c.CompressionCodec = "brotli" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig("localhost:9092")
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestNewClient_ConfiguresWriter(t *testing.T) {
	client, err := NewClient(Config{
		Brokers:          []string{"a:9092", "b:9092"},
		Topic:            "events",
		RequiredAcks:     -1,
		CompressionCodec: "zstd",
	})
	require.NoError(t, err)
	defer client.Close()

	w := client.Writer()
	assert.Equal(t, "events", w.Topic)
	assert.Equal(t, kafka.RequireAll, w.RequiredAcks)
	assert.Equal(t, kafka.Zstd, w.Compression)
	assert.Equal(t, DefaultBatchSize, w.BatchSize)
	assert.Equal(t, DefaultMaxAttempts, w.MaxAttempts)
	assert.False(t, w.Async)
	assert.Nil(t, w.Completion)
	assert.IsType(t, &kafka.Hash{}, w.Balancer)
}

func TestNewClient_Rejects(t *testing.T) {
	t.Run("invalid config", func(t *testing.T) {
		_, err := NewClient(Config{})
		assert.Error(t, err)
	})

	t.Run("bad TLS files", func(t *testing.T) {
		cfg := DefaultConfig("localhost:9092")
		cfg.TLS = TLSConfig{Enabled: true, CACertPath: "/nonexistent/ca.pem"}
		_, err := NewClient(cfg)
		assert.Error(t, err)
	})

	t.Run("unknown SASL mechanism", func(t *testing.T) {
		cfg := DefaultConfig("localhost:9092")
		cfg.SASL = SASLConfig{Enabled: true, Mechanism: "GSSAPI"}
		_, err := NewClient(cfg)
		assert.Error(t, err)
	})
}

func TestCreateSASLMechanism(t *testing.T) {
	for _, name := range []string{"PLAIN", "SCRAM-SHA-256", "SCRAM-SHA-512"} {
		t.Run(name, func(t *testing.T) {
			m, err := saslMechanism(SASLConfig{Mechanism: name, Username: "u", Password: "p"})
			require.NoError(t, err)
			assert.Equal(t, name, m.Name())
		})
	}
}

func TestCompressionCodec(t *testing.T) {
	assert.Equal(t, kafka.Gzip, compressionCodec("gzip"))
	assert.Equal(t, kafka.Snappy, compressionCodec("snappy"))
	assert.Equal(t, kafka.Lz4, compressionCodec("lz4"))
	assert.Equal(t, kafka.Zstd, compressionCodec("zstd"))
	assert.Equal(t, kafka.Compression(0), compressionCodec(""))
}

func TestEncodeSearchEvent(t *testing.T) {
	event := algolia.SearchEvent{
		Timestamp:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		IndexName:    "products",
		ClassName:    "Product",
		Query:        "shoes",
		FilterStatus: "applied",
		NbHits:       12,
		ObjectIDs:    []string{"a1", "b2"},
	}

	value, err := encodeSearchEvent(event)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(value, &decoded))
	assert.Equal(t, "products", decoded["indexName"])
	assert.Equal(t, "shoes", decoded["query"])
	assert.Equal(t, "2024-05-01T12:00:00Z", decoded["timestamp"])
	assert.Equal(t, []interface{}{"a1", "b2"}, decoded["objectIDs"])
	assert.NotContains(t, decoded, "requestId")
}

type recordingLogger struct {
	mu    sync.Mutex
	warns []string
}

func (l *recordingLogger) Error(string, error, ...map[string]interface{}) {}
func (l *recordingLogger) Info(string, error, ...map[string]interface{})  {}
func (l *recordingLogger) Warn(msg string, _ error, _ ...map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}

func TestOnCompletion(t *testing.T) {
	var events []observability.OperationContext
	log := &recordingLogger{}

	client, err := NewClient(DefaultConfig("localhost:9092"))
	require.NoError(t, err)
	defer client.Close()
	require.NotNil(t, client.Writer().Completion)

	client.WithLogger(log).WithObserver(observability.ObserverFunc(func(op observability.OperationContext) {
		events = append(events, op)
	}))

	batch := []kafka.Message{{Value: []byte("abc")}, {Value: []byte("de")}}
	client.onCompletion(batch, nil)
	client.onCompletion(batch, errors.New("leader not available"))

	require.Len(t, events, 2)
	assert.Equal(t, "kafka", events[0].Component)
	assert.Equal(t, "produce", events[0].Operation)
	assert.Equal(t, DefaultTopic, events[0].Resource)
	assert.Equal(t, "async", events[0].SubResource)
	assert.Equal(t, int64(5), events[0].Size)
	assert.Equal(t, 2, events[0].Metadata["message_count"])
	assert.NoError(t, events[0].Error)
	assert.Error(t, events[1].Error)

	assert.Equal(t, []string{"Failed to deliver search events"}, log.warns)
}

func TestWithLogger_IgnoresNil(t *testing.T) {
	client, err := NewClient(DefaultConfig("localhost:9092"))
	require.NoError(t, err)
	defer client.Close()

	client.WithLogger(nil)
	assert.IsType(t, nopLogger{}, client.getLogger())
}

func TestClose_Idempotent(t *testing.T) {
	client, err := NewClient(DefaultConfig("localhost:9092"))
	require.NoError(t, err)

	assert.NoError(t, client.Close())
	assert.NoError(t, client.Close())
}
