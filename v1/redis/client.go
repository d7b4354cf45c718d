package redis

import (
	"context"
	"crypto/tls"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/Aleph-Alpha/algolia-weaviate/v1/observability"
	"github.com/Aleph-Alpha/algolia-weaviate/v1/tlsutil"
)

// Logger defines the logging operations used by the Redis cache.
// *logger.LoggerClient satisfies it.
type Logger interface {
	Error(msg string, err error, fields ...map[string]interface{})
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
}

// RedisClient caches encoded search results in Redis.
// It wraps the go-redis client and satisfies algolia.Cache.
type RedisClient struct {
	mu     sync.RWMutex // guards client against Close
	client redis.UniversalClient
	cfg    Config

	logger    Logger
	observer  observability.Observer
	closeOnce sync.Once
}

// NewClient connects lazily to a standalone Redis; use Ping to check the
// connection. Zero-valued settings take their defaults.
//
//	cache, err := redis.NewClient(redis.Config{
//		Host: "localhost",
//		Port: 6379,
//		TTL:  time.Minute,
//	})
//	if err != nil {
//		return err
//	}
//	defer cache.Close()
func NewClient(cfg Config) (*RedisClient, error) {
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var tlsConfig *tls.Config
	if cfg.TLS.Enabled {
		serverName := cfg.TLS.ServerName
		if serverName == "" {
			serverName = cfg.Host
		}
		var err error
		tlsConfig, err = tlsutil.ClientConfig(tlsutil.Options{
			CACertPath:         cfg.TLS.CACertPath,
			ClientCertPath:     cfg.TLS.ClientCertPath,
			ClientKeyPath:      cfg.TLS.ClientKeyPath,
			ServerName:         serverName,
			InsecureSkipVerify: cfg.TLS.InsecureSkipVerify,
		})
		if err != nil {
			return nil, fmt.Errorf("redis tls: %w", err)
		}
	}

	opts := &redis.Options{
		Addr:            cfg.addr(),
		Username:        cfg.Username,
		Password:        cfg.Password,
		DB:              cfg.DB,
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdleConns,
		ConnMaxIdleTime: cfg.IdleTimeout,
		MaxRetries:      cfg.MaxRetries,
		MinRetryBackoff: cfg.MinRetryBackoff,
		MaxRetryBackoff: cfg.MaxRetryBackoff,
		DialTimeout:     cfg.DialTimeout,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		TLSConfig:       tlsConfig,
	}

	return &RedisClient{
		client: redis.NewClient(opts),
		cfg:    cfg,
		logger: nopLogger{},
	}, nil
}

// Ping round-trips a PING.
func (r *RedisClient) Ping(ctx context.Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.client.Ping(ctx).Err()
}

// Client exposes the go-redis client.
func (r *RedisClient) Client() redis.UniversalClient {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.client
}

// Close releases the connection pool. Later calls return nil.
func (r *RedisClient) Close() error {
	var err error
	r.closeOnce.Do(func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		r.logger.Info("Closing Redis client", nil, nil)
		if err = r.client.Close(); err != nil {
			r.logger.Warn("Failed to close Redis client", err, nil)
		}
	})
	return err
}

// WithObserver reports every cache get, set and delete.
func (r *RedisClient) WithObserver(observer observability.Observer) *RedisClient {
	r.observer = observer
	return r
}

// WithLogger replaces the no-op logger. A nil logger is ignored.
func (r *RedisClient) WithLogger(logger Logger) *RedisClient {
	if logger != nil {
		r.logger = logger
	}
	return r
}

type nopLogger struct{}

func (nopLogger) Error(string, error, ...map[string]interface{}) {}
func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Warn(string, error, ...map[string]interface{})  {}
