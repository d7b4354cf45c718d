package embedding

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/algolia-weaviate/v1/observability"
)

// FXModule wires the embedding client into Fx.
//
// It provides *Client from a supplied Config. Bind it to qdrant.Embedder
// with fx.As to let the Qdrant backend serve nearText queries.
var FXModule = fx.Module(
	"embedding",
	fx.Provide(NewClientWithDI),
)

// EmbeddingParams groups the dependencies of the embedding client.
type EmbeddingParams struct {
	fx.In

	Config   Config
	Observer observability.Observer `optional:"true"`
}

// NewClientWithDI creates a Client and attaches the optional observer.
func NewClientWithDI(p EmbeddingParams) (*Client, error) {
	client, err := NewClient(p.Config)
	if err != nil {
		return nil, err
	}
	if p.Observer != nil {
		client.WithObserver(p.Observer)
	}
	return client, nil
}
