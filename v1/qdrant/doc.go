// Package qdrant implements vectordb.Store on top of the official Qdrant Go
// client, so the Algolia adapter can serve a Qdrant collection.
//
// Class names map one to one onto collection names and payload keys play
// the role of properties.
//
// # Basic Usage
//
//	client, err := qdrant.NewQdrantClient(qdrant.FromEndpoint("localhost"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	adapter, err := algolia.NewAdapter(client, algolia.DefaultConfig("products"))
//
// # Query Mapping
//
//   - nearObject: a query by point id; "_additional.distance" is 1 - score
//   - nearText: a query by the mean embedding of the concepts, when an
//     Embedder is attached (see WithEmbedder and package embedding)
//   - sortBy: a single key becomes order_by (needs a range payload index)
//   - otherwise: a filtered scroll in point id order
//
// BM25 and hybrid have no Qdrant counterpart and fail with
// vectordb.ErrUnsupportedQuery, as does nearText without an Embedder.
//
// # Filter Mapping
//
//	And      -> must
//	Or       -> should
//	NotEqual -> must_not(match)
//	> >= < <= -> range
//	Equal    -> match keyword (strings, booleans) or closed range (numbers)
//	Like     -> match text with the "*" wildcards removed
//	IsNull   -> is_null
//
// # Fx Integration
//
//	app := fx.New(
//	    qdrant.FXModule,
//	    fx.Provide(func() *qdrant.Config { return qdrant.FromEndpoint("localhost") }),
//	)
//
// # Thread Safety
//
// QdrantClient is safe for concurrent use; the gRPC connection is shared.
package qdrant
