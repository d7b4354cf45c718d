package redis

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/algolia-weaviate/v1/observability"
)

// FXModule provides *RedisClient from a redis.Config. Bind it to
// algolia.Cache with fx.As to enable response caching. The cache is pinged
// on start so a wrong address fails startup.
var FXModule = fx.Module("redis",
	fx.Provide(
		NewClientWithDI,
	),
	fx.Invoke(RegisterRedisLifecycle),
)

// RedisParams are the inputs of NewClientWithDI.
type RedisParams struct {
	fx.In

	Config   Config
	Logger   Logger                 `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewClientWithDI attaches the optional logger and observer to NewClient.
func NewClientWithDI(params RedisParams) (*RedisClient, error) {
	client, err := NewClient(params.Config)
	if err != nil {
		return nil, err
	}
	client.WithLogger(params.Logger)
	if params.Observer != nil {
		client.WithObserver(params.Observer)
	}
	return client, nil
}

// RegisterRedisLifecycle pings on start and closes the pool on stop.
func RegisterRedisLifecycle(lc fx.Lifecycle, client *RedisClient) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			fields := map[string]interface{}{"address": client.cfg.addr()}
			if err := client.Ping(ctx); err != nil {
				client.logger.Error("Redis cache unreachable", err, fields)
				return fmt.Errorf("redis ping %s: %w", client.cfg.addr(), err)
			}
			fields["ttl"] = client.cfg.TTL.String()
			fields["key_prefix"] = client.cfg.KeyPrefix
			client.logger.Info("Redis cache ready", nil, fields)
			return nil
		},
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
}
