package vectordb

import (
	"context"
	"errors"
)

// ErrUnsupportedQuery is returned by a Store that cannot execute one of the
// directives of a query (e.g. BM25 on a store without a lexical index).
var ErrUnsupportedQuery = errors.New("vectordb: unsupported query directive")

// Store is the query capability consumed by the search adapter.
// It abstracts the underlying database so the same translated query can be
// executed against Weaviate, Qdrant, or a test double.
//
// Implementations must be safe for concurrent use: the adapter issues Get and
// Count for the same request at the same time, and many requests in parallel.
//
// Example:
//
//	client, err := weaviate.NewWeaviateClient(weaviate.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	var store vectordb.Store = client
//	rows, err := store.Get(ctx, vectordb.GetQuery{ClassName: "Product", Limit: 20})
//
//go:generate mockgen -source=interface.go -destination=mock_store.go -package=vectordb
type Store interface {
	// Get executes a structured query and returns the matching rows
	// in store order.
	Get(ctx context.Context, query GetQuery) ([]Row, error)

	// Count returns the number of objects matching the aggregate query.
	Count(ctx context.Context, query AggregateQuery) (int, error)
}
