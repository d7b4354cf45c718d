package qdrant

import (
	"context"
	"sync"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/algolia-weaviate/v1/observability"
	"github.com/Aleph-Alpha/algolia-weaviate/v1/vectordb"
)

// FXModule defines the Fx module for the Qdrant client.
//
// It provides *QdrantClient, exposes it as a vectordb.Store and closes the
// gRPC connection on shutdown. Include it instead of weaviate.FXModule to
// serve searches from Qdrant; both provide vectordb.Store.
//
// Usage:
//
//	app := fx.New(
//	    qdrant.FXModule,
//	    fx.Provide(func() *qdrant.Config { return qdrant.FromEndpoint("localhost") }),
//	)
var FXModule = fx.Module("qdrant",
	fx.Provide(
		NewQdrantClientWithParams,
		func(c *QdrantClient) vectordb.Store { return c },
	),
	fx.Invoke(RegisterQdrantLifecycle),
)

// QdrantParams defines dependencies needed to construct the Qdrant client.
type QdrantParams struct {
	fx.In

	Config   *Config
	Logger   Logger                 `optional:"true"`
	Observer observability.Observer `optional:"true"`
	Embedder Embedder               `optional:"true"`
}

// NewQdrantClientWithParams builds a client from Fx-injected dependencies.
func NewQdrantClientWithParams(p QdrantParams) (*QdrantClient, error) {
	client, err := NewQdrantClient(p.Config)
	if err != nil {
		return nil, err
	}
	client.WithLogger(p.Logger)
	if p.Observer != nil {
		client.WithObserver(p.Observer)
	}
	if p.Embedder != nil {
		client.WithEmbedder(p.Embedder)
	}
	return client, nil
}

// RegisterQdrantLifecycle logs startup and closes the client on shutdown.
func RegisterQdrantLifecycle(lc fx.Lifecycle, client *QdrantClient) {
	var once sync.Once

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			client.logger.Info("Qdrant client initialized", nil, map[string]interface{}{
				"endpoint": client.cfg.Endpoint,
				"port":     client.cfg.Port,
				"nearText": client.embedder != nil,
			})
			return nil
		},
		OnStop: func(ctx context.Context) error {
			var err error
			once.Do(func() {
				err = client.Close()
			})
			return err
		},
	})
}
