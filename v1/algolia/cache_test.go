package algolia

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Aleph-Alpha/algolia-weaviate/v1/vectordb"
)

type mapCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	getErr  error
	setErr  error
	sets    int
}

func newMapCache() *mapCache {
	return &mapCache{entries: map[string][]byte{}}
}

func (c *mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	v, ok := c.entries[key]
	return v, ok, nil
}

func (c *mapCache) Set(_ context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[key] = value
	return nil
}

func expectSearchOnce(store *vectordb.MockStore) {
	store.EXPECT().Get(gomock.Any(), gomock.Any()).Return([]vectordb.Row{
		{"title": "iPhone 12", "price": 799.0, "_additional": map[string]any{"id": "1", "distance": 0.25}},
	}, nil).Times(1)
	store.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil).Times(1)
}

func TestAdapter_CacheHitSkipsStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := vectordb.NewMockStore(ctrl)
	expectSearchOnce(store)

	cache := newMapCache()
	a := newTestAdapter(t, store, DefaultConfig("Product")).WithCache(cache)

	req := []SearchRequest{{Params: SearchParams{Query: "iphone", Filters: "price:<800"}}}

	first, err := a.Search(context.Background(), req)
	require.NoError(t, err)
	second, err := a.Search(context.Background(), req)
	require.NoError(t, err)

	assert.Len(t, cache.entries, 1)
	assert.Equal(t, first.Results[0].Hits, second.Results[0].Hits)
	assert.InDelta(t, 0.75, second.Results[0].Hits[0][ScoreKey], 1e-9)
	assert.Equal(t, 1, second.Results[0].NbPages)
	assert.Equal(t, "iphone", second.Results[0].Query)
}

func TestAdapter_CacheSharedAcrossIndexAliases(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := vectordb.NewMockStore(ctrl)
	expectSearchOnce(store)

	cfg := DefaultConfig("Product")
	cfg.IndexClasses = map[string]string{"products": "Product", "products_v2": "Product"}
	a := newTestAdapter(t, store, cfg).WithCache(newMapCache())

	_, err := a.Search(context.Background(), []SearchRequest{{IndexName: "products", Params: SearchParams{Query: "x"}}})
	require.NoError(t, err)
	_, err = a.Search(context.Background(), []SearchRequest{{IndexName: "products_v2", Params: SearchParams{Query: "x"}}})
	require.NoError(t, err)
}

func TestAdapter_CacheKeyDependsOnPage(t *testing.T) {
	base := BuildQueries(SearchParams{Query: "x"}, QueryOptions{ClassName: "Product"})
	next := BuildQueries(SearchParams{Query: "x", Page: 1}, QueryOptions{ClassName: "Product"})
	other := BuildQueries(SearchParams{Query: "x"}, QueryOptions{ClassName: "Article"})

	k1, err := cacheKey(base)
	require.NoError(t, err)
	k2, err := cacheKey(next)
	require.NoError(t, err)
	k3, err := cacheKey(other)
	require.NoError(t, err)

	assert.NotEqual(t, k1, k2)
	assert.NotEqual(t, k1, k3)

	again, err := cacheKey(BuildQueries(SearchParams{Query: "x"}, QueryOptions{ClassName: "Product"}))
	require.NoError(t, err)
	assert.Equal(t, k1, again)
}

func TestCacheKey_NaNHasNoKey(t *testing.T) {
	q := BuildQueries(SearchParams{Filters: "price:>abc"}, QueryOptions{ClassName: "Product"})
	_, err := cacheKey(q)
	assert.Error(t, err)
}

func TestAdapter_CacheFailuresFallBackToStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := vectordb.NewMockStore(ctrl)
	store.EXPECT().Get(gomock.Any(), gomock.Any()).Return([]vectordb.Row{}, nil).Times(2)
	store.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil).Times(2)

	cache := newMapCache()
	cache.getErr = errors.New("connection refused")
	cache.setErr = errors.New("connection refused")
	log := &recordingLogger{}

	a := newTestAdapter(t, store, DefaultConfig("Product")).WithCache(cache).WithLogger(log)
	req := []SearchRequest{{Params: SearchParams{Query: "x"}}}

	for i := 0; i < 2; i++ {
		resp, err := a.Search(context.Background(), req)
		require.NoError(t, err)
		assert.Empty(t, resp.Results[0].Hits)
	}
	assert.Equal(t, 2, cache.sets)
	assert.Contains(t, log.warns, "Cache lookup failed")
	assert.Contains(t, log.warns, "Cache store failed")
}

func TestAdapter_CorruptCacheEntryIsIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := vectordb.NewMockStore(ctrl)
	expectSearchOnce(store)

	q := BuildQueries(SearchParams{Query: "x"}, QueryOptions{ClassName: "Product", Fields: DefaultFields})
	key, err := cacheKey(q)
	require.NoError(t, err)

	cache := newMapCache()
	cache.entries[key] = []byte("not json")

	a := newTestAdapter(t, store, DefaultConfig("Product")).WithCache(cache)
	resp, err := a.Search(context.Background(), []SearchRequest{{Params: SearchParams{Query: "x"}}})
	require.NoError(t, err)
	assert.Len(t, resp.Results[0].Hits, 1)
	assert.JSONEq(t, `{"rows":[{"title":"iPhone 12","price":799,"_additional":{"id":"1","distance":0.25}}],"total":1}`, string(cache.entries[key]))
}

func TestAdapter_StoreErrorIsNotCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := vectordb.NewMockStore(ctrl)
	store.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, errors.New("boom")).AnyTimes()
	store.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil).AnyTimes()

	cache := newMapCache()
	a := newTestAdapter(t, store, DefaultConfig("Product")).WithCache(cache)

	_, err := a.Search(context.Background(), []SearchRequest{{Params: SearchParams{Query: "x"}}})
	require.Error(t, err)
	assert.Empty(t, cache.entries)
}
