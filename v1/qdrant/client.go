package qdrant

import (
	"context"
	"fmt"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/Aleph-Alpha/algolia-weaviate/v1/observability"
)

//
// ──────────────────────────────────────────────────────────────
//   QDRANT CLIENT WRAPPER
// ──────────────────────────────────────────────────────────────
//
// This file wraps the official Qdrant Go client so a Qdrant collection can
// serve as a vectordb.Store behind the Algolia adapter.
//
// Responsibilities:
//   • Establish and validate connectivity with Qdrant.
//   • Translate GetQuery/AggregateQuery into Query and Count calls.
//   • Report every call to an optional observability.Observer.
//

const defaultGRPCPort = 6334

// Logger defines the logging operations used by the Qdrant client.
// *logger.LoggerClient satisfies it.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// QdrantClient wraps the official Qdrant Go client and implements
// vectordb.Store. Class names map one to one onto collection names.
type QdrantClient struct {
	api      *qdrant.Client
	cfg      *Config
	logger   Logger
	observer observability.Observer
	embedder Embedder
	started  bool
}

// NewQdrantClient ──────────────────────────────────────────────────────────────
// NewQdrantClient
// ──────────────────────────────────────────────────────────────
//
// NewQdrantClient constructs a new instance of QdrantClient and validates
// connectivity via a health check.
//
// The Qdrant Go SDK creates lightweight gRPC connections, so this method
// performs an immediate health check to fail fast if the service is unreachable.
//
// Example:
//
//	client, err := qdrant.NewQdrantClient(qdrant.FromEndpoint("localhost"))
func NewQdrantClient(cfg *Config) (*QdrantClient, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	port := cfg.Port
	if port == 0 {
		port = defaultGRPCPort
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:                   cfg.Endpoint,
		Port:                   port,
		APIKey:                 cfg.APIKey,
		UseTLS:                 cfg.UseTLS,
		SkipCompatibilityCheck: !cfg.CheckCompatibility,
	})
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] failed to initialize client: %w", err)
	}

	qc := &QdrantClient{
		api:     client,
		cfg:     cfg,
		logger:  nopLogger{},
		started: true,
	}

	if err := qc.healthCheck(context.Background()); err != nil {
		_ = client.Close()
		return nil, err
	}

	return qc, nil
}

// ──────────────────────────────────────────────────────────────
// healthCheck
// ──────────────────────────────────────────────────────────────
//
// healthCheck verifies the availability of the Qdrant service within
// ConnectTimeout.
func (c *QdrantClient) healthCheck(ctx context.Context) error {
	if !c.started || c.api == nil {
		return fmt.Errorf("[Qdrant] client not initialized")
	}

	timeout := c.cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := c.api.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("[Qdrant] health check failed: %w", err)
	}

	c.logger.Debug("Qdrant health check passed", nil, map[string]interface{}{
		"title":    resp.GetTitle(),
		"version":  resp.GetVersion(),
		"endpoint": c.cfg.Endpoint,
	})
	return nil
}

// Ping reports whether the server answers health checks.
func (c *QdrantClient) Ping(ctx context.Context) error {
	return c.healthCheck(ctx)
}

// Client returns the underlying Qdrant SDK client.
// This is useful for direct access to low-level operations.
func (c *QdrantClient) Client() *qdrant.Client {
	return c.api
}

// WithLogger sets the logger. A nil logger is ignored.
func (c *QdrantClient) WithLogger(l Logger) *QdrantClient {
	if l != nil {
		c.logger = l
	}
	return c
}

// WithObserver attaches an observer notified after every Get and Count.
func (c *QdrantClient) WithObserver(observer observability.Observer) *QdrantClient {
	c.observer = observer
	return c
}

// Close ──────────────────────────────────────────────────────────────
// Close
// ──────────────────────────────────────────────────────────────
//
// Close shuts down the gRPC connection. Calling it twice is safe.
func (c *QdrantClient) Close() error {
	if c == nil || !c.started {
		return nil
	}
	c.started = false

	if err := c.api.Close(); err != nil {
		return fmt.Errorf("[Qdrant] failed to close client: %w", err)
	}
	c.logger.Info("Closed Qdrant client", nil, map[string]interface{}{"endpoint": c.cfg.Endpoint})
	return nil
}

func (c *QdrantClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.cfg.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.cfg.Timeout)
}

type nopLogger struct{}

func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Debug(string, error, ...map[string]interface{}) {}
func (nopLogger) Warn(string, error, ...map[string]interface{})  {}
func (nopLogger) Error(string, error, ...map[string]interface{}) {}
