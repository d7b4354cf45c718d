package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/algolia-weaviate/v1/algolia"
	"github.com/Aleph-Alpha/algolia-weaviate/v1/embedding"
	"github.com/Aleph-Alpha/algolia-weaviate/v1/kafka"
	"github.com/Aleph-Alpha/algolia-weaviate/v1/logger"
)

const minimalYAML = `
algolia:
  class_name: Product
`

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, BackendWeaviate, cfg.Backend)
	assert.Equal(t, "http://localhost:8080", cfg.Weaviate.URL)
	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, algolia.DefaultFields, cfg.Algolia.Fields)
	assert.Equal(t, logger.Info, cfg.Logger.Level)
	assert.Equal(t, serviceName, cfg.Logger.ServiceName)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, ":9090", cfg.Metrics.Address)
	assert.False(t, cfg.Cache.Enabled)
	assert.False(t, cfg.Events.Enabled)
}

func TestParse_FullFile(t *testing.T) {
	cfg, err := Parse([]byte(`
server:
  listen: ":9000"
  read_timeout: 2s
backend: qdrant
qdrant:
  endpoint: qdrant.internal
  port: 6334
  exact_count: false
  vector_name: text
embedding:
  enabled: true
  base_url: http://inference:8000/v1
  model: bge-small
algolia:
  class_name: Product
  index_classes:
    products_price_desc: Product
  fields: [title, price]
  max_concurrent_requests: 4
logger:
  level: debug
metrics:
  enabled: true
  address: ":9100"
  namespace: search
tracer:
  enable_export: true
  endpoint: otel:4318
  sample_ratio: 0.25
cache:
  enabled: true
  host: redis.internal
  ttl: 30s
events:
  enabled: true
  brokers: [kafka-1:9092, kafka-2:9092]
  compression_codec: lz4
`))
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Listen)
	assert.Equal(t, 2*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, BackendQdrant, cfg.Backend)
	assert.Equal(t, "qdrant.internal", cfg.Qdrant.Endpoint)
	assert.False(t, cfg.Qdrant.ExactCount)
	assert.Equal(t, "text", cfg.Qdrant.VectorName)
	assert.True(t, cfg.Embedding.Enabled)
	assert.Equal(t, "bge-small", cfg.Embedding.Model)
	assert.Equal(t, "Product", cfg.Algolia.IndexClasses["products_price_desc"])
	assert.Equal(t, []string{"title", "price"}, cfg.Algolia.Fields)
	assert.Equal(t, 4, cfg.Algolia.MaxConcurrentRequests)
	assert.Equal(t, logger.Debug, cfg.Logger.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, ":9100", cfg.Metrics.Address)
	assert.Equal(t, "search", cfg.Metrics.Namespace)
	assert.Equal(t, 0.25, cfg.Tracer.SampleRatio)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "redis.internal", cfg.Cache.Host)
	assert.Equal(t, 6379, cfg.Cache.Port)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.True(t, cfg.Events.Enabled)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Events.Brokers)
	assert.Equal(t, kafka.DefaultTopic, cfg.Events.Topic)
	assert.True(t, cfg.Events.Async)
	assert.Equal(t, "lz4", cfg.Events.CompressionCodec)
}

func TestParse_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_WEAVIATE_URL", "http://weaviate:8080")
	t.Setenv("TEST_EMPTY", "")

	cfg, err := Parse([]byte(`
weaviate:
  url: ${TEST_WEAVIATE_URL}
  api_key: ${TEST_EMPTY:-fallback}
algolia:
  class_name: ${TEST_UNSET_CLASS:-Product}
`))
	require.NoError(t, err)

	assert.Equal(t, "http://weaviate:8080", cfg.Weaviate.URL)
	assert.Equal(t, "fallback", cfg.Weaviate.APIKey)
	assert.Equal(t, "Product", cfg.Algolia.ClassName)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing class", `backend: weaviate`},
		{"unknown backend", "backend: pinecone\n" + minimalYAML},
		{"bad weaviate url", "weaviate:\n  url: ftp://x\n" + minimalYAML},
		{"bad qdrant port", "backend: qdrant\nqdrant:\n  port: 70000\n" + minimalYAML},
		{"bad cache port", "cache:\n  enabled: true\n  port: 0\n" + minimalYAML},
		{"events without brokers", "events:\n  enabled: true\n" + minimalYAML},
		{"bad events codec", "events:\n  enabled: true\n  brokers: [k:9092]\n  compression_codec: brotli\n" + minimalYAML},
		{"qdrant embedding without model", "backend: qdrant\nembedding:\n  enabled: true\n  base_url: http://x/v1\n" + minimalYAML},
		{"sample ratio", "tracer:\n  sample_ratio: 2\n" + minimalYAML},
		{"bad log encoding", "logger:\n  encoding: xml\n" + minimalYAML},
		{"not yaml", "algolia: [unterminated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalYAML), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Product", cfg.Algolia.ClassName)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestAppOptions_Graph(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		metrics bool
		cache   bool
		events  bool
	}{
		{"weaviate", BackendWeaviate, false, false, false},
		{"weaviate with metrics", BackendWeaviate, true, false, false},
		{"qdrant", BackendQdrant, false, false, false},
		{"qdrant with metrics and cache", BackendQdrant, true, true, false},
		{"weaviate with cache", BackendWeaviate, false, true, false},
		{"weaviate with events", BackendWeaviate, false, false, true},
		{"everything", BackendQdrant, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(minimalYAML))
			require.NoError(t, err)
			cfg.Backend = tt.backend
			cfg.Metrics.Enabled = tt.metrics
			cfg.Cache.Enabled = tt.cache
			cfg.Events.Enabled = tt.events
			cfg.Events.Brokers = []string{"localhost:9092"}
			cfg.Embedding = EmbeddingConfig{
				Enabled: tt.backend == BackendQdrant,
				Config:  embedding.Config{BaseURL: "http://localhost:8000/v1", Model: "m"},
			}

			err = fx.ValidateApp(
				appOptions(cfg),
				fx.Supply(cfg.Server),
				fx.Provide(newHTTPServer),
				fx.Invoke(registerServerLifecycle),
			)
			assert.NoError(t, err)
		})
	}
}

func TestValidate_EmbeddingIgnoredForWeaviate(t *testing.T) {
	cfg, err := Parse([]byte("embedding:\n  enabled: true\n" + minimalYAML))
	require.NoError(t, err)
	assert.Equal(t, BackendWeaviate, cfg.Backend)
}

func TestLoad_ExampleFile(t *testing.T) {
	cfg, err := Load("config.example.yaml")
	require.NoError(t, err)

	assert.Equal(t, BackendWeaviate, cfg.Backend)
	assert.Equal(t, "Product", cfg.Algolia.IndexClasses["products"])
	assert.True(t, cfg.Metrics.Enabled)
	assert.False(t, cfg.Events.Enabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Events.Brokers)
}
