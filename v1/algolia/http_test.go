package algolia

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Aleph-Alpha/algolia-weaviate/v1/vectordb"
)

func newTestServer(t *testing.T, store vectordb.Store) *httptest.Server {
	t.Helper()
	cfg := DefaultConfig("Product")
	cfg.IndexClasses = map[string]string{"articles": "Article"}

	srv := httptest.NewServer(NewHandler(newTestAdapter(t, store, cfg), nil))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestHandler_MultiQuery(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := vectordb.NewMockStore(ctrl)

	store.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q vectordb.GetQuery) ([]vectordb.Row, error) {
			return []vectordb.Row{{"title": q.ClassName}}, nil
		}).
		Times(2)
	store.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil).Times(2)

	srv := newTestServer(t, store)
	resp, body := post(t, srv.URL+"/1/indexes/*/queries", `{
		"requests": [
			{"indexName": "articles", "params": "query=go&hitsPerPage=5"},
			{"indexName": "products", "params": {"query": "phone"}}
		]
	}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	results := body["results"].([]any)
	require.Len(t, results, 2)

	first := results[0].(map[string]any)
	assert.Equal(t, "go", first["query"])
	assert.Equal(t, 5.0, first["hitsPerPage"])
	assert.Equal(t, "Article", first["hits"].([]any)[0].(map[string]any)["title"])

	second := results[1].(map[string]any)
	assert.Equal(t, "phone", second["query"])
	assert.Equal(t, "Product", second["hits"].([]any)[0].(map[string]any)["title"])
}

func TestHandler_SingleQuery(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"wrapped string", `{"params": "query=blog"}`},
		{"wrapped object", `{"params": {"query": "blog"}}`},
		{"bare params", `{"query": "blog"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := vectordb.NewMockStore(ctrl)

			store.EXPECT().
				Get(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, q vectordb.GetQuery) ([]vectordb.Row, error) {
					assert.Equal(t, "Article", q.ClassName)
					if assert.NotNil(t, q.BM25) {
						assert.Equal(t, "blog", q.BM25.Query)
					}
					return nil, nil
				})
			store.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)

			srv := newTestServer(t, store)
			resp, body := post(t, srv.URL+"/1/indexes/articles/query", tt.body)

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, "blog", body["query"])
			assert.Equal(t, []any{}, body["hits"])
			assert.Equal(t, 0.0, body["nbPages"])
		})
	}
}

func TestHandler_BadRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	srv := newTestServer(t, vectordb.NewMockStore(ctrl))

	for _, body := range []string{``, `{`, `{"requests": [{"params": "page=x"}]}`} {
		resp, out := post(t, srv.URL+"/1/indexes/*/queries", body)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
		assert.Equal(t, 400.0, out["status"])
		assert.NotEmpty(t, out["message"])
	}
}

func TestHandler_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := vectordb.NewMockStore(ctrl)
	store.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, errors.New("weaviate down")).AnyTimes()
	store.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil).AnyTimes()

	srv := newTestServer(t, store)
	resp, out := post(t, srv.URL+"/1/indexes/*/queries", `{"requests": [{"params": {"query": "x"}}]}`)

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, 502.0, out["status"])
	assert.Contains(t, out["message"], "weaviate down")
}

func TestHandler_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	srv := newTestServer(t, vectordb.NewMockStore(ctrl))

	resp, out := post(t, srv.URL+"/1/unknown", `{}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, 404.0, out["status"])
}
