package weaviate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/algolia-weaviate/v1/observability"
	"github.com/Aleph-Alpha/algolia-weaviate/v1/vectordb"
)

// fakeWeaviate answers the liveness and GraphQL endpoints with canned bodies
// and records every GraphQL query it receives.
type fakeWeaviate struct {
	mu        sync.Mutex
	queries   []string
	getBody   string
	countBody string
	live      bool
}

func (f *fakeWeaviate) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/v1/.well-known/live":
		if !f.live {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	case "/v1/graphql":
		var body struct {
			Query string `json:"query"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		f.mu.Lock()
		f.queries = append(f.queries, body.Query)
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if strings.Contains(body.Query, "Aggregate") {
			_, _ = w.Write([]byte(f.countBody))
			return
		}
		_, _ = w.Write([]byte(f.getBody))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeWeaviate) lastQuery() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.queries) == 0 {
		return ""
	}
	return f.queries[len(f.queries)-1]
}

type recordingObserver struct {
	mu  sync.Mutex
	ops []observability.OperationContext
}

func (o *recordingObserver) ObserveOperation(ctx observability.OperationContext) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ops = append(o.ops, ctx)
}

func newFakeClient(t *testing.T, fake *fakeWeaviate) *WeaviateClient {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := NewWeaviateClient(FromURL(srv.URL).WithTimeout(2 * time.Second))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestNewWeaviateClient_HealthCheck(t *testing.T) {
	srv := httptest.NewServer(&fakeWeaviate{live: false})
	defer srv.Close()

	_, err := NewWeaviateClient(FromURL(srv.URL).WithStartupTimeout(time.Second))
	assert.Error(t, err)

	cfg := FromURL(srv.URL)
	cfg.SkipHealthCheck = true
	client, err := NewWeaviateClient(cfg)
	require.NoError(t, err)
	assert.Error(t, client.Ping(context.Background()))
}

func TestNewWeaviateClient_InvalidURL(t *testing.T) {
	_, err := NewWeaviateClient(FromURL("ftp://nowhere"))
	assert.Error(t, err)
}

func TestWeaviateClient_Get(t *testing.T) {
	fake := &fakeWeaviate{
		live: true,
		getBody: `{"data": {"Get": {"Product": [
			{"title": "Samsung Galaxy S21", "price": 899, "_additional": {"id": "2", "distance": 0.1}}
		]}}}`,
	}
	client := newFakeClient(t, fake)
	obs := &recordingObserver{}
	client.WithObserver(obs)

	distance := float32(0.5)
	rows, err := client.Get(context.Background(), vectordb.GetQuery{
		ClassName: "Product",
		Fields:    []string{"title", "price", "_additional { id distance }"},
		BM25:      &vectordb.BM25{Query: "phone"},
		NearText:  &vectordb.NearText{Concepts: []string{"smartphone"}, Distance: &distance},
		Where:     vectordb.NewNumberCondition("price", vectordb.GreaterThan, 800),
		Sort:      []vectordb.Sort{{Path: []string{"price"}, Order: vectordb.Desc}},
		Limit:     2,
		Offset:    4,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Samsung Galaxy S21", rows[0]["title"])

	query := fake.lastQuery()
	for _, want := range []string{"Get", "Product", "bm25", "phone", "nearText", "smartphone", "where", "GreaterThan", "sort", "limit: 2", "offset: 4", "_additional { id distance }"} {
		assert.Contains(t, query, want)
	}

	require.Len(t, obs.ops, 1)
	assert.Equal(t, "weaviate", obs.ops[0].Component)
	assert.Equal(t, "get", obs.ops[0].Operation)
	assert.Equal(t, "bm25", obs.ops[0].SubResource)
	assert.Equal(t, int64(1), obs.ops[0].Size)
	assert.NoError(t, obs.ops[0].Error)
}

func TestWeaviateClient_Hybrid(t *testing.T) {
	fake := &fakeWeaviate{live: true, getBody: `{"data": {"Get": {"Product": []}}}`}
	client := newFakeClient(t, fake)

	rows, err := client.Get(context.Background(), vectordb.GetQuery{
		ClassName:  "Product",
		Fields:     []string{"title"},
		Hybrid:     &vectordb.Hybrid{Query: "phone", Alpha: 0.5},
		NearObject: &vectordb.NearObject{ID: "c1b0a5a6-0000-4000-8000-000000000001"},
		Limit:      20,
	})
	require.NoError(t, err)
	assert.Empty(t, rows)

	query := fake.lastQuery()
	assert.Contains(t, query, "hybrid")
	assert.Contains(t, query, "alpha")
	assert.Contains(t, query, "nearObject")
	assert.NotContains(t, query, "offset")
}

func TestWeaviateClient_Count(t *testing.T) {
	fake := &fakeWeaviate{
		live:      true,
		countBody: `{"data": {"Aggregate": {"Product": [{"meta": {"count": 3}}]}}}`,
	}
	client := newFakeClient(t, fake)

	total, err := client.Count(context.Background(), vectordb.AggregateQuery{
		ClassName: "Product",
		Where:     vectordb.NewIsNull("status"),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	query := fake.lastQuery()
	assert.Contains(t, query, "Aggregate")
	assert.Contains(t, query, "meta")
	assert.Contains(t, query, "count")
	assert.Contains(t, query, "IsNull")
}

func TestWeaviateClient_GraphQLError(t *testing.T) {
	fake := &fakeWeaviate{
		live:      true,
		getBody:   `{"errors": [{"message": "Cannot query field \"Nope\" on type \"GetObjectsObj\"."}]}`,
		countBody: `{"errors": [{"message": "invalid where filter"}]}`,
	}
	client := newFakeClient(t, fake)

	_, err := client.Get(context.Background(), vectordb.GetQuery{ClassName: "Nope", Fields: []string{"title"}})
	var gqlErr *GraphQLError
	require.True(t, errors.As(err, &gqlErr))
	assert.Contains(t, err.Error(), "Nope")

	_, err = client.Count(context.Background(), vectordb.AggregateQuery{ClassName: "Product"})
	require.True(t, errors.As(err, &gqlErr))
}

func TestWeaviateClient_InvalidFilter(t *testing.T) {
	client := newFakeClient(t, &fakeWeaviate{live: true})

	_, err := client.Get(context.Background(), vectordb.GetQuery{
		ClassName: "Product",
		Where:     &vectordb.Predicate{Operator: vectordb.Or},
	})
	assert.ErrorIs(t, err, vectordb.ErrInvalidPredicate)

	_, err = client.Count(context.Background(), vectordb.AggregateQuery{
		ClassName: "Product",
		Where:     &vectordb.Predicate{Operator: vectordb.Or},
	})
	assert.ErrorIs(t, err, vectordb.ErrInvalidPredicate)
}

func TestObserveOperation_NilObserverNoPanic(t *testing.T) {
	var c *WeaviateClient
	c.observeOperation("get", "Product", "", time.Millisecond, nil, 0, nil)

	c = &WeaviateClient{}
	c.observeOperation("get", "Product", "", time.Millisecond, nil, 0, nil)
}
