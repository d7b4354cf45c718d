package algolia

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"

	"github.com/Aleph-Alpha/algolia-weaviate/v1/vectordb"
)

// Logger defines the logging operations used by the adapter.
// *logger.LoggerClient satisfies it.
type Logger interface {
	Debug(msg string, err error, fields ...map[string]interface{})
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// SpanStarter creates tracing spans. *tracer.Tracer satisfies it.
type SpanStarter interface {
	StartSpan(ctx context.Context, name string) (context.Context, trace.Span)
	RecordErrorOnSpan(span trace.Span, err error)
	SetAttributes(span trace.Span, attrs map[string]interface{})
}

// Recorder receives per-request search measurements. *metrics.Metrics satisfies it.
type Recorder interface {
	ObserveSearch(index, status string, duration time.Duration)
	ObserveFilter(status string)
}

// Adapter serves Algolia multi-query batches from a vectordb.Store.
// It is safe for concurrent use.
type Adapter struct {
	store   vectordb.Store
	cfg     Config
	logger  Logger
	tracer  SpanStarter
	metrics Recorder
	cache   Cache
	events  EventPublisher
}

// NewAdapter creates an Adapter searching store. Logging, tracing, metrics,
// caching and event publishing stay off until set with the With* methods.
func NewAdapter(store vectordb.Store, cfg Config) (*Adapter, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid adapter config: %w", err)
	}

	return &Adapter{
		store:   store,
		cfg:     cfg,
		logger:  nopLogger{},
		tracer:  nopTracer{},
		metrics: nopRecorder{},
	}, nil
}

// WithLogger sets the logger. A nil logger is ignored.
func (a *Adapter) WithLogger(l Logger) *Adapter {
	if l != nil {
		a.logger = l
	}
	return a
}

// WithTracer sets the span starter. A nil tracer is ignored.
func (a *Adapter) WithTracer(t SpanStarter) *Adapter {
	if t != nil {
		a.tracer = t
	}
	return a
}

// WithMetrics sets the metrics recorder. A nil recorder is ignored.
func (a *Adapter) WithMetrics(r Recorder) *Adapter {
	if r != nil {
		a.metrics = r
	}
	return a
}

// WithCache enables result caching. A nil cache disables it.
func (a *Adapter) WithCache(c Cache) *Adapter {
	a.cache = c
	return a
}

// WithEvents enables search event publishing. A nil publisher disables it.
func (a *Adapter) WithEvents(p EventPublisher) *Adapter {
	a.events = p
	return a
}

// Search runs every request of a batch concurrently and returns one result
// per request, in request order.
//
// The first store failure cancels the remaining requests and fails the whole
// batch; no partial results are returned. Malformed filters never fail a
// request: it runs unfiltered and the rejection is logged.
//
// Example:
//
//	resp, err := adapter.Search(ctx, []algolia.SearchRequest{
//	    {Params: algolia.SearchParams{Query: "phone", Filters: "price:>800"}},
//	})
func (a *Adapter) Search(ctx context.Context, requests []SearchRequest) (*BatchResponse, error) {
	results := make([]SearchResponse, len(requests))

	g, gctx := errgroup.WithContext(ctx)
	if a.cfg.MaxConcurrentRequests > 0 {
		g.SetLimit(a.cfg.MaxConcurrentRequests)
	}

	for i, req := range requests {
		g.Go(func() error {
			res, err := a.searchOne(gctx, req)
			if err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &BatchResponse{Results: results}, nil
}

func (a *Adapter) searchOne(ctx context.Context, req SearchRequest) (SearchResponse, error) {
	start := time.Now()
	className := a.cfg.classFor(req.IndexName)

	ctx, span := a.tracer.StartSpan(ctx, "algolia.search")
	defer span.End()

	q := BuildQueries(req.Params, QueryOptions{ClassName: className, Fields: a.cfg.Fields})

	a.tracer.SetAttributes(span, map[string]interface{}{
		"algolia.index":  req.IndexName,
		"algolia.class":  className,
		"algolia.query":  req.Params.Query,
		"algolia.filter": q.Filter.Status.String(),
		"algolia.limit":  q.Get.Limit,
		"algolia.offset": q.Get.Offset,
	})

	a.metrics.ObserveFilter(q.Filter.Status.String())
	switch {
	case q.Filter.Status == FilterRejected:
		a.logger.Warn("Ignoring malformed filter", q.Filter.Err, map[string]interface{}{
			"index":   req.IndexName,
			"filters": req.Params.Filters,
		})
	case hasNaN(q.Filter.Filter):
		a.logger.Debug("Filter has a non-numeric range value", nil, map[string]interface{}{
			"index":   req.IndexName,
			"filters": req.Params.Filters,
		})
	}

	// A NaN predicate has no key and skips the cache; the store rejects it.
	key, _ := cacheKey(q)

	res, hit := a.lookup(ctx, key)
	a.tracer.SetAttributes(span, map[string]interface{}{"algolia.cache_hit": hit})
	if !hit {
		var err error
		res, err = a.fetch(ctx, q)
		if err != nil {
			a.tracer.RecordErrorOnSpan(span, err)
			a.metrics.ObserveSearch(req.IndexName, "error", time.Since(start))
			a.logger.Error("Search failed", err, map[string]interface{}{
				"index": req.IndexName,
				"class": className,
				"query": req.Params.Query,
			})
			return SearchResponse{}, err
		}
		a.remember(ctx, key, res)
	}

	resp := Normalize(res.Rows, res.Total, req.Params, time.Since(start))
	a.metrics.ObserveSearch(req.IndexName, "success", time.Since(start))
	a.logger.Debug("Search completed", nil, map[string]interface{}{
		"index":   req.IndexName,
		"class":   className,
		"nb_hits": resp.NbHits,
		"total":   res.Total,
		"cached":  hit,
	})
	a.publish(ctx, newSearchEvent(ctx, req, className, q.Filter.Status, resp, hit))
	return resp, nil
}

// fetch runs the page and count queries of q concurrently.
func (a *Adapter) fetch(ctx context.Context, q Queries) (cachedResult, error) {
	var res cachedResult

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		res.Rows, err = a.store.Get(gctx, q.Get)
		return err
	})
	g.Go(func() error {
		var err error
		res.Total, err = a.store.Count(gctx, q.Count)
		return err
	})

	if err := g.Wait(); err != nil {
		return cachedResult{}, err
	}
	return res, nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, error, ...map[string]interface{}) {}
func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Warn(string, error, ...map[string]interface{})  {}
func (nopLogger) Error(string, error, ...map[string]interface{}) {}

type nopTracer struct{}

func (nopTracer) StartSpan(ctx context.Context, _ string) (context.Context, trace.Span) {
	return ctx, noop.Span{}
}
func (nopTracer) RecordErrorOnSpan(trace.Span, error)              {}
func (nopTracer) SetAttributes(trace.Span, map[string]interface{}) {}

type nopRecorder struct{}

func (nopRecorder) ObserveSearch(string, string, time.Duration) {}
func (nopRecorder) ObserveFilter(string)                        {}
