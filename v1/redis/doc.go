/*
Package redis provides a Redis-backed cache for search results.

The adapter serves the same InstantSearch query many times while a user
types or pages back and forth. RedisClient stores the store's answer for
each translated query under a hashed key for a fixed TTL, so repeated
queries skip the vector database.

Core Features:
  - Byte-oriented Get/Set with a configured TTL and key prefix
  - Prefix-scoped Flush for dropping stale results after reindexing
  - Optional TLS, ACL username and database selection
  - Observer hooks reporting every get (hit or miss), set, delete and flush
  - Fx module with a startup ping

Basic Usage:

	cache, err := redis.NewClient(redis.Config{
		Host: "localhost",
		Port: 6379,
		TTL:  time.Minute,
	})
	if err != nil {
		return err
	}
	defer cache.Close()

	adapter.WithCache(cache)

Integration with fx:

	app := fx.New(
		redis.FXModule,
		fx.Provide(func() redis.Config { return redis.DefaultConfig() }),
		fx.Provide(fx.Annotate(
			func(c *redis.RedisClient) *redis.RedisClient { return c },
			fx.As(new(algolia.Cache)),
		)),
	)

A miss is not an error: Get returns ok == false and a nil error. Any other
error means Redis is unreachable; the adapter logs it and searches the
store directly.

Thread Safety:

All methods are safe for concurrent use.
*/
package redis
