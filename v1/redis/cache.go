package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Aleph-Alpha/algolia-weaviate/v1/observability"
)

// scanBatch is the COUNT hint used when walking the key space in Flush.
const scanBatch = 500

// Get returns the value cached under key. A missing or expired key is a
// miss, reported as ok == false with a nil error.
func (r *RedisClient) Get(ctx context.Context, key string) ([]byte, bool, error) {
	start := time.Now()
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		r.observeOperation("get", key, "miss", time.Since(start), nil, 0, nil)
		return nil, false, nil
	}
	if err != nil {
		r.observeOperation("get", key, "", time.Since(start), err, 0, nil)
		return nil, false, err
	}
	r.observeOperation("get", key, "hit", time.Since(start), nil, int64(len(value)), nil)
	return value, true, nil
}

// Set stores value under key for the configured TTL.
func (r *RedisClient) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	r.mu.RLock()
	defer r.mu.RUnlock()

	err := r.client.Set(ctx, r.key(key), value, r.cfg.TTL).Err()
	r.observeOperation("set", key, "", time.Since(start), err, int64(len(value)), map[string]interface{}{
		"ttl": r.cfg.TTL.String(),
	})
	return err
}

// Delete removes the given keys and returns how many existed.
func (r *RedisClient) Delete(ctx context.Context, keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}

	start := time.Now()
	r.mu.RLock()
	defer r.mu.RUnlock()

	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = r.key(k)
	}

	n, err := r.client.Del(ctx, prefixed...).Result()
	r.observeOperation("delete", keys[0], "", time.Since(start), err, n, map[string]interface{}{
		"key_count": len(keys),
	})
	return n, err
}

// Flush removes every key under the configured prefix and returns how many
// were deleted. Use it after reindexing to drop stale results early.
func (r *RedisClient) Flush(ctx context.Context) (int64, error) {
	start := time.Now()
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		deleted int64
		err     error
	)
	iter := r.client.Scan(ctx, 0, r.cfg.KeyPrefix+"*", scanBatch).Iterator()
	batch := make([]string, 0, scanBatch)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == scanBatch {
			n, delErr := r.client.Del(ctx, batch...).Result()
			deleted += n
			if delErr != nil {
				err = delErr
				break
			}
			batch = batch[:0]
		}
	}
	if err == nil {
		err = iter.Err()
	}
	if err == nil && len(batch) > 0 {
		var n int64
		n, err = r.client.Del(ctx, batch...).Result()
		deleted += n
	}

	r.observeOperation("flush", r.cfg.KeyPrefix+"*", "", time.Since(start), err, deleted, nil)
	return deleted, err
}

func (r *RedisClient) key(k string) string {
	return r.cfg.KeyPrefix + k
}

// observeOperation notifies the observer about an operation if one is configured.
// subResource is "hit" or "miss" for successful gets.
func (r *RedisClient) observeOperation(operation, resource, subResource string, duration time.Duration, err error, size int64, metadata map[string]interface{}) {
	if r == nil || r.observer == nil {
		return
	}

	r.observer.ObserveOperation(observability.OperationContext{
		Component:   "redis",
		Operation:   operation,
		Resource:    resource,
		SubResource: subResource,
		Duration:    duration,
		Error:       err,
		Size:        size,
		Metadata:    metadata,
	})
}
