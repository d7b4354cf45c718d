package weaviate

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/auth"

	"github.com/Aleph-Alpha/algolia-weaviate/v1/observability"
)

// Logger defines the logging operations used by the Weaviate client.
// *logger.LoggerClient satisfies it.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// WeaviateClient wraps the official Weaviate Go client and implements
// vectordb.Store on top of its GraphQL Get and Aggregate queries.
//
// The underlying client is stateless per request, so a WeaviateClient is
// safe for concurrent use.
type WeaviateClient struct {
	api      *weaviate.Client
	http     *http.Client
	cfg      *Config
	logger   Logger
	observer observability.Observer
}

// NewWeaviateClient ──────────────────────────────────────────────────────────────
// NewWeaviateClient
// ──────────────────────────────────────────────────────────────
//
// NewWeaviateClient builds a client from cfg and, unless SkipHealthCheck is
// set, fails fast when the server is not live.
//
// Example:
//
//	client, err := weaviate.NewWeaviateClient(weaviate.FromURL("http://localhost:8080"))
func NewWeaviateClient(cfg *Config) (*WeaviateClient, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	scheme, host, err := cfg.endpoint()
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	wcfg := weaviate.Config{
		Host:             host,
		Scheme:           scheme,
		Headers:          cfg.Headers,
		ConnectionClient: httpClient,
	}
	if cfg.APIKey != "" {
		wcfg.AuthConfig = auth.ApiKey{Value: cfg.APIKey}
	}

	api, err := weaviate.NewClient(wcfg)
	if err != nil {
		return nil, fmt.Errorf("[Weaviate] failed to initialize client: %w", err)
	}

	c := &WeaviateClient{
		api:    api,
		http:   httpClient,
		cfg:    cfg,
		logger: nopLogger{},
	}

	if !cfg.SkipHealthCheck {
		if err := c.healthCheck(context.Background()); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// ──────────────────────────────────────────────────────────────
// healthCheck
// ──────────────────────────────────────────────────────────────
//
// healthCheck calls the liveness endpoint within StartupTimeout.
func (c *WeaviateClient) healthCheck(ctx context.Context) error {
	timeout := c.cfg.StartupTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	live, err := c.api.Misc().LiveChecker().Do(ctx)
	if err != nil {
		return fmt.Errorf("[Weaviate] health check failed: %w", err)
	}
	if !live {
		return fmt.Errorf("[Weaviate] server at %s is not live", c.cfg.URL)
	}
	return nil
}

// Ping reports whether the server is live.
func (c *WeaviateClient) Ping(ctx context.Context) error {
	return c.healthCheck(ctx)
}

// Client returns the underlying Weaviate SDK client.
func (c *WeaviateClient) Client() *weaviate.Client {
	return c.api
}

// WithLogger sets the logger. A nil logger is ignored.
func (c *WeaviateClient) WithLogger(l Logger) *WeaviateClient {
	if l != nil {
		c.logger = l
	}
	return c
}

// WithObserver attaches an observer notified after every Get and Count.
func (c *WeaviateClient) WithObserver(observer observability.Observer) *WeaviateClient {
	c.observer = observer
	return c
}

// Close ──────────────────────────────────────────────────────────────
// Close
// ──────────────────────────────────────────────────────────────
//
// Close releases idle HTTP connections. The SDK keeps no other state.
func (c *WeaviateClient) Close() error {
	if c == nil || c.http == nil {
		return nil
	}
	c.http.CloseIdleConnections()
	c.logger.Info("Closed Weaviate client", nil, map[string]interface{}{"url": c.cfg.URL})
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Debug(string, error, ...map[string]interface{}) {}
func (nopLogger) Warn(string, error, ...map[string]interface{})  {}
func (nopLogger) Error(string, error, ...map[string]interface{}) {}
