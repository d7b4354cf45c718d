// Package weaviate implements vectordb.Store on the official Weaviate Go
// client.
//
// Queries are issued through GraphQL: a [vectordb.GetQuery] becomes a Get
// query with bm25, hybrid, nearText, nearObject, where, sort, limit and
// offset arguments; a [vectordb.AggregateQuery] becomes an Aggregate query
// selecting meta { count }.
//
// # Connecting
//
//	client, err := weaviate.NewWeaviateClient(
//	    weaviate.FromURL("https://my-cluster.weaviate.network").
//	        WithAPIKey(os.Getenv("WEAVIATE_API_KEY")).
//	        WithHeader("X-OpenAI-Api-Key", os.Getenv("OPENAI_API_KEY")),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
// The scheme and host are taken from the URL. NewWeaviateClient checks
// liveness within StartupTimeout unless SkipHealthCheck is set.
//
// # Filters
//
// Predicate leaves map one to one onto where operands. String values use
// valueText, IsNull uses valueBoolean. Numbers, NaN included, are sent
// unchanged; Weaviate rejects invalid ones and the error surfaces from Get
// or Count.
//
// # Errors
//
// Transport failures and GraphQL errors are both returned, wrapped with the
// class name. GraphQL errors unwrap to *GraphQLError:
//
//	var gqlErr *weaviate.GraphQLError
//	if errors.As(err, &gqlErr) {
//	    // query was rejected by the server
//	}
//
// # Observability
//
// Attach an observability.Observer with WithObserver to receive the
// duration, row count and error of every Get and Count.
package weaviate
