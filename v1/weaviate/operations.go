package weaviate

import (
	"context"
	"fmt"
	"time"

	"github.com/weaviate/weaviate-go-client/v5/weaviate/graphql"

	"github.com/Aleph-Alpha/algolia-weaviate/v1/vectordb"
)

// Get ──────────────────────────────────────────────────────────────
// Get
// ──────────────────────────────────────────────────────────────
//
// Get runs a GraphQL Get query and returns data.Get.<class> as rows.
//
// The call is bounded by Config.Timeout. GraphQL errors reported inside a
// successful response are returned as *GraphQLError.
func (c *WeaviateClient) Get(ctx context.Context, q vectordb.GetQuery) ([]vectordb.Row, error) {
	start := time.Now()
	mode := searchMode(q)

	builder, err := c.buildGet(q)
	if err != nil {
		c.observeOperation("get", q.ClassName, mode, time.Since(start), err, 0, nil)
		return nil, fmt.Errorf("[Weaviate] invalid get query for %s: %w", q.ClassName, err)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := builder.Do(ctx)
	if err == nil {
		err = responseError(resp)
	}
	if err != nil {
		c.observeOperation("get", q.ClassName, mode, time.Since(start), err, 0, nil)
		return nil, fmt.Errorf("[Weaviate] get %s failed: %w", q.ClassName, err)
	}

	rows, err := parseGetResponse(resp, q.ClassName)
	if err != nil {
		c.observeOperation("get", q.ClassName, mode, time.Since(start), err, 0, nil)
		return nil, fmt.Errorf("[Weaviate] malformed get response for %s: %w", q.ClassName, err)
	}

	c.observeOperation("get", q.ClassName, mode, time.Since(start), nil, int64(len(rows)), map[string]interface{}{
		"limit":  q.Limit,
		"offset": q.Offset,
	})
	return rows, nil
}

// Count ──────────────────────────────────────────────────────────────
// Count
// ──────────────────────────────────────────────────────────────
//
// Count runs a GraphQL Aggregate query selecting meta { count }.
func (c *WeaviateClient) Count(ctx context.Context, q vectordb.AggregateQuery) (int, error) {
	start := time.Now()

	where, err := convertPredicate(q.Where)
	if err != nil {
		c.observeOperation("count", q.ClassName, "", time.Since(start), err, 0, nil)
		return 0, fmt.Errorf("[Weaviate] invalid count filter for %s: %w", q.ClassName, err)
	}

	builder := c.api.GraphQL().Aggregate().
		WithClassName(q.ClassName).
		WithFields(countSelection())
	if where != nil {
		builder = builder.WithWhere(where)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := builder.Do(ctx)
	if err == nil {
		err = responseError(resp)
	}
	if err != nil {
		c.observeOperation("count", q.ClassName, "", time.Since(start), err, 0, nil)
		return 0, fmt.Errorf("[Weaviate] count %s failed: %w", q.ClassName, err)
	}

	total, err := parseCountResponse(resp, q.ClassName)
	if err != nil {
		c.observeOperation("count", q.ClassName, "", time.Since(start), err, 0, nil)
		return 0, fmt.Errorf("[Weaviate] malformed aggregate response for %s: %w", q.ClassName, err)
	}

	c.observeOperation("count", q.ClassName, "", time.Since(start), nil, int64(total), nil)
	return total, nil
}

// ──────────────────────────────────────────────────────────────
// buildGet
// ──────────────────────────────────────────────────────────────
//
// buildGet translates a GetQuery into the SDK's Get builder. Directives are
// attached independently; Weaviate itself rejects illegal combinations.
func (c *WeaviateClient) buildGet(q vectordb.GetQuery) (*graphql.GetBuilder, error) {
	gql := c.api.GraphQL()

	builder := gql.Get().
		WithClassName(q.ClassName).
		WithFields(selection(q.Fields))

	if q.Hybrid != nil {
		builder = builder.WithHybrid(gql.HybridArgumentBuilder().
			WithQuery(q.Hybrid.Query).
			WithAlpha(q.Hybrid.Alpha))
	}
	if q.BM25 != nil {
		bm25 := gql.Bm25ArgBuilder().WithQuery(q.BM25.Query)
		if len(q.BM25.Properties) > 0 {
			bm25 = bm25.WithProperties(q.BM25.Properties...)
		}
		builder = builder.WithBM25(bm25)
	}
	if q.NearText != nil {
		nearText := gql.NearTextArgBuilder().WithConcepts(q.NearText.Concepts)
		if q.NearText.Distance != nil {
			nearText = nearText.WithDistance(*q.NearText.Distance)
		}
		if q.NearText.MoveTo != nil {
			nearText = nearText.WithMoveTo(convertMove(q.NearText.MoveTo))
		}
		if q.NearText.MoveAwayFrom != nil {
			nearText = nearText.WithMoveAwayFrom(convertMove(q.NearText.MoveAwayFrom))
		}
		builder = builder.WithNearText(nearText)
	}
	if q.NearObject != nil {
		nearObject := gql.NearObjectArgBuilder().WithID(q.NearObject.ID)
		if q.NearObject.Distance != nil {
			nearObject = nearObject.WithDistance(*q.NearObject.Distance)
		}
		builder = builder.WithNearObject(nearObject)
	}

	where, err := convertPredicate(q.Where)
	if err != nil {
		return nil, err
	}
	if where != nil {
		builder = builder.WithWhere(where)
	}

	if len(q.Sort) > 0 {
		builder = builder.WithSort(convertSort(q.Sort)...)
	}
	if q.Limit > 0 {
		builder = builder.WithLimit(q.Limit)
	}
	if q.Offset > 0 {
		builder = builder.WithOffset(q.Offset)
	}
	return builder, nil
}

func (c *WeaviateClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.cfg.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.cfg.Timeout)
}

// searchMode labels a query for observers.
func searchMode(q vectordb.GetQuery) string {
	switch {
	case q.Hybrid != nil:
		return "hybrid"
	case q.BM25 != nil:
		return "bm25"
	case q.NearText != nil:
		return "near_text"
	case q.NearObject != nil:
		return "near_object"
	}
	return "list"
}
