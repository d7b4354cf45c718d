package qdrant

import (
	"context"
	"fmt"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/Aleph-Alpha/algolia-weaviate/v1/vectordb"
)

// Get ──────────────────────────────────────────────────────────────
// Get
// ──────────────────────────────────────────────────────────────
//
// Get runs a Query against the collection named by q.ClassName.
//
// nearObject becomes a query by point id and nearText a query by the
// embedded concepts; both fill "_additional.distance". A single sort key
// becomes order_by; anything else is a filtered scroll in id order. BM25
// and hybrid fail with vectordb.ErrUnsupportedQuery, as does nearText when
// no Embedder is attached.
func (c *QdrantClient) Get(ctx context.Context, q vectordb.GetQuery) ([]vectordb.Row, error) {
	start := time.Now()
	mode := searchMode(q)

	var vector []float32
	if q.NearText != nil && c.embedder != nil {
		var err error
		vector, err = c.nearTextVector(ctx, q.NearText)
		if err != nil {
			c.observeOperation("get", q.ClassName, mode, time.Since(start), err, 0, nil)
			return nil, fmt.Errorf("[Qdrant] failed to embed nearText for %s: %w", q.ClassName, err)
		}
	}

	req, err := buildQuery(q, vector)
	if err != nil {
		c.observeOperation("get", q.ClassName, mode, time.Since(start), err, 0, nil)
		return nil, fmt.Errorf("[Qdrant] invalid get query for %s: %w", q.ClassName, err)
	}
	if vector != nil && c.cfg.VectorName != "" {
		using := c.cfg.VectorName
		req.Using = &using
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	points, err := c.api.Query(ctx, req)
	if err != nil {
		c.observeOperation("get", q.ClassName, mode, time.Since(start), err, 0, nil)
		return nil, fmt.Errorf("[Qdrant] get %s failed: %w", q.ClassName, err)
	}

	rows, err := toRows(points, q.NearObject != nil || vector != nil)
	if err != nil {
		c.observeOperation("get", q.ClassName, mode, time.Since(start), err, 0, nil)
		return nil, fmt.Errorf("[Qdrant] malformed get response for %s: %w", q.ClassName, err)
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
// Count returns the number of points matching q.Where. It is exact unless
// Config.ExactCount is off.
func (c *QdrantClient) Count(ctx context.Context, q vectordb.AggregateQuery) (int, error) {
	start := time.Now()

	filter, err := convertPredicate(q.Where)
	if err != nil {
		c.observeOperation("count", q.ClassName, "", time.Since(start), err, 0, nil)
		return 0, fmt.Errorf("[Qdrant] invalid count filter for %s: %w", q.ClassName, err)
	}

	exact := c.cfg.ExactCount
	req := &qdrant.CountPoints{
		CollectionName: q.ClassName,
		Filter:         filter,
		Exact:          &exact,
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	total, err := c.api.Count(ctx, req)
	if err != nil {
		c.observeOperation("count", q.ClassName, "", time.Since(start), err, 0, nil)
		return 0, fmt.Errorf("[Qdrant] count %s failed: %w", q.ClassName, err)
	}

	c.observeOperation("count", q.ClassName, "", time.Since(start), nil, int64(total), nil)
	return int(total), nil
}

// ──────────────────────────────────────────────────────────────
// buildQuery
// ──────────────────────────────────────────────────────────────
//
// buildQuery translates a GetQuery into QueryPoints. vector is the embedded
// nearText query, or nil.
func buildQuery(q vectordb.GetQuery, vector []float32) (*qdrant.QueryPoints, error) {
	if q.ClassName == "" {
		return nil, fmt.Errorf("collection name cannot be empty")
	}
	if err := checkSupported(q, vector != nil); err != nil {
		return nil, err
	}

	filter, err := convertPredicate(q.Where)
	if err != nil {
		return nil, err
	}

	req := &qdrant.QueryPoints{
		CollectionName: q.ClassName,
		Query:          convertQuery(q, vector),
		Filter:         filter,
		WithPayload:    payloadSelector(q.Fields),
	}
	if d := maxDistance(q); d != nil {
		threshold := 1 - *d
		req.ScoreThreshold = &threshold
	}
	if q.Limit > 0 {
		limit := uint64(q.Limit)
		req.Limit = &limit
	}
	if q.Offset > 0 {
		offset := uint64(q.Offset)
		req.Offset = &offset
	}
	return req, nil
}

// searchMode labels a query for observers.
func searchMode(q vectordb.GetQuery) string {
	switch {
	case q.NearObject != nil:
		return "near_object"
	case q.NearText != nil:
		return "near_text"
	case len(q.Sort) > 0:
		return "order_by"
	}
	return "scroll"
}

// maxDistance is the distance cutoff of a vector search, if any.
func maxDistance(q vectordb.GetQuery) *float32 {
	switch {
	case q.NearObject != nil:
		return q.NearObject.Distance
	case q.NearText != nil:
		return q.NearText.Distance
	}
	return nil
}
