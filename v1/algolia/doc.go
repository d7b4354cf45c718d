// Package algolia lets applications written against Algolia's search API
// query a vector database instead.
//
// A batch of Algolia-shaped requests is translated into store queries,
// executed concurrently, and reshaped into Algolia result pages:
//
//	adapter, err := algolia.NewAdapter(store, algolia.DefaultConfig("Product"))
//	if err != nil {
//	    return err
//	}
//	resp, err := adapter.Search(ctx, []algolia.SearchRequest{
//	    {Params: algolia.SearchParams{Query: "phone", HitsPerPage: 2}},
//	    {Params: algolia.SearchParams{Filters: "price:>600 AND price:<800"}},
//	})
//
// # Filters
//
// [ParseFilters] handles Algolia's flat filter strings: clauses of the form
// field:value joined by " AND " and " OR ", where OR binds weaker. There
// are no parentheses. Values starting with >=, <=, > or < compare numbers,
// "null" matches missing values, values containing "*" are Like patterns,
// anything else is an exact string match.
//
// A malformed filter never fails a search. The request runs unfiltered and
// the rejection is logged and counted.
//
// # Search Modes
//
// A non-empty query runs BM25, or hybrid search (alpha 0.5) when Hybrid is
// set. nearText and nearObject directives pass through to the store.
// Without any of them the store returns objects in its own order.
//
// # Scores
//
// Each hit carries "_score" = 1 - distance. Hits without a distance, such
// as plain keyword matches, carry a null score.
//
// # HTTP
//
// [NewHandler] serves the Algolia REST endpoints used by InstantSearch:
//
//	http.ListenAndServe(":8080", algolia.NewHandler(adapter, log))
//
// # Errors
//
// Any store failure fails the whole batch. Callers that need per-request
// isolation should send requests in separate batches.
package algolia
