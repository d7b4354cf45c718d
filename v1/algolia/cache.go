package algolia

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/Aleph-Alpha/algolia-weaviate/v1/vectordb"
)

// Cache stores encoded store results between searches.
// *redis.RedisClient satisfies it.
type Cache interface {
	// Get returns ok == false with a nil error on a miss.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}

// cachedResult is what the store returned for one translated query pair.
// The response itself is rebuilt on every hit so processingTimeMS and the
// echoed query stay per request.
type cachedResult struct {
	Rows  []vectordb.Row `json:"rows"`
	Total int            `json:"total"`
}

// cacheKey identifies the store queries of q. Requests that translate to the
// same queries share an entry, whatever index name or parameter spelling
// they arrived with.
func cacheKey(q Queries) (string, error) {
	data, err := json.Marshal(struct {
		Get   vectordb.GetQuery       `json:"get"`
		Count vectordb.AggregateQuery `json:"count"`
	}{q.Get, q.Count})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return "search:" + hex.EncodeToString(sum[:]), nil
}

// lookup returns the cached store result for key. Cache failures are logged
// and treated as misses.
func (a *Adapter) lookup(ctx context.Context, key string) (cachedResult, bool) {
	if a.cache == nil || key == "" {
		return cachedResult{}, false
	}

	data, ok, err := a.cache.Get(ctx, key)
	if err != nil {
		a.logger.Warn("Cache lookup failed", err, map[string]interface{}{"key": key})
		return cachedResult{}, false
	}
	if !ok {
		return cachedResult{}, false
	}

	var res cachedResult
	if err := json.Unmarshal(data, &res); err != nil {
		a.logger.Warn("Discarding unreadable cache entry", err, map[string]interface{}{"key": key})
		return cachedResult{}, false
	}
	return res, true
}

// remember stores a successful store result. Failures are logged only.
func (a *Adapter) remember(ctx context.Context, key string, res cachedResult) {
	if a.cache == nil || key == "" {
		return
	}

	data, err := json.Marshal(res)
	if err != nil {
		a.logger.Warn("Cannot encode search result for cache", err, map[string]interface{}{"key": key})
		return
	}
	if err := a.cache.Set(ctx, key, data); err != nil {
		a.logger.Warn("Cache store failed", err, map[string]interface{}{"key": key})
	}
}
