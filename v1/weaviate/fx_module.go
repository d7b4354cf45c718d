package weaviate

import (
	"context"
	"sync"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/algolia-weaviate/v1/observability"
	"github.com/Aleph-Alpha/algolia-weaviate/v1/vectordb"
)

// FXModule defines the Fx module for the Weaviate client.
//
// The module:
//  1. Provides NewWeaviateClientWithParams, which builds the client and runs
//     the startup health check.
//  2. Exposes the client as a vectordb.Store for the search adapter.
//  3. Invokes RegisterWeaviateLifecycle to close the client on shutdown.
//
// Usage:
//
//	app := fx.New(
//	    weaviate.FXModule,
//	    fx.Provide(func() *weaviate.Config { return weaviate.FromURL("http://localhost:8080") }),
//	)
//
// Dependencies required by this module:
// - A *weaviate.Config instance must be available in the dependency injection container.
// - A weaviate.Logger and an observability.Observer are optional.
var FXModule = fx.Module("weaviate",
	fx.Provide(
		NewWeaviateClientWithParams,
		func(c *WeaviateClient) vectordb.Store { return c },
	),
	fx.Invoke(RegisterWeaviateLifecycle),
)

// WeaviateParams defines dependencies needed to construct the Weaviate client.
type WeaviateParams struct {
	fx.In

	Config   *Config
	Logger   Logger                 `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewWeaviateClientWithParams builds a client from Fx-injected dependencies.
func NewWeaviateClientWithParams(p WeaviateParams) (*WeaviateClient, error) {
	client, err := NewWeaviateClient(p.Config)
	if err != nil {
		return nil, err
	}
	client.WithLogger(p.Logger)
	if p.Observer != nil {
		client.WithObserver(p.Observer)
	}
	return client, nil
}

// RegisterWeaviateLifecycle logs startup and closes the client on shutdown.
func RegisterWeaviateLifecycle(lc fx.Lifecycle, client *WeaviateClient) {
	var once sync.Once

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			client.logger.Info("Weaviate client initialized", nil, map[string]interface{}{
				"url": client.cfg.URL,
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
