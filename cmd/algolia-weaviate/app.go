package main

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/Aleph-Alpha/algolia-weaviate/v1/algolia"
	"github.com/Aleph-Alpha/algolia-weaviate/v1/embedding"
	"github.com/Aleph-Alpha/algolia-weaviate/v1/kafka"
	"github.com/Aleph-Alpha/algolia-weaviate/v1/logger"
	"github.com/Aleph-Alpha/algolia-weaviate/v1/metrics"
	"github.com/Aleph-Alpha/algolia-weaviate/v1/observability"
	"github.com/Aleph-Alpha/algolia-weaviate/v1/qdrant"
	"github.com/Aleph-Alpha/algolia-weaviate/v1/redis"
	"github.com/Aleph-Alpha/algolia-weaviate/v1/tracer"
	"github.com/Aleph-Alpha/algolia-weaviate/v1/weaviate"
)

// appOptions assembles the Fx graph shared by every command: logging,
// tracing, the selected store, the optional metrics, cache and event
// publisher, and the search adapter.
func appOptions(cfg *Config) fx.Option {
	return fx.Options(
		fx.Supply(cfg.Logger, cfg.Tracer, cfg.Algolia),
		fx.WithLogger(func(l *logger.LoggerClient) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Zap}
		}),

		logger.FXModule,
		tracer.FXModule,
		backendModule(cfg),
		metricsModule(cfg.Metrics),
		cacheModule(cfg.Cache),
		eventsModule(cfg.Events),
		algolia.FXModule,

		// Every package declares the narrow logger it needs; one client serves all.
		fx.Provide(
			fx.Annotate(
				func(l *logger.LoggerClient) *logger.LoggerClient { return l },
				fx.As(new(algolia.Logger)),
				fx.As(new(weaviate.Logger)),
				fx.As(new(qdrant.Logger)),
				fx.As(new(redis.Logger)),
				fx.As(new(kafka.Logger)),
				fx.As(new(tracer.Logger)),
				fx.As(new(metrics.Logger)),
			),
			fx.Annotate(
				func(t *tracer.Tracer) *tracer.Tracer { return t },
				fx.As(new(algolia.SpanStarter)),
			),
		),
	)
}

func backendModule(cfg *Config) fx.Option {
	if cfg.Backend == BackendQdrant {
		return fx.Options(fx.Supply(&cfg.Qdrant), qdrant.FXModule, embeddingModule(cfg.Embedding))
	}
	return fx.Options(fx.Supply(&cfg.Weaviate), weaviate.FXModule)
}

// embeddingModule gives the Qdrant client an Embedder for nearText queries.
func embeddingModule(cfg EmbeddingConfig) fx.Option {
	if !cfg.Enabled {
		return fx.Options()
	}
	return fx.Options(
		fx.Supply(cfg.Config),
		embedding.FXModule,
		fx.Provide(
			fx.Annotate(
				func(c *embedding.Client) *embedding.Client { return c },
				fx.As(new(qdrant.Embedder)),
			),
		),
	)
}

// metricsModule exposes *metrics.Metrics as the adapter's Recorder and the
// store's Observer. Disabled metrics leave both unset.
func metricsModule(cfg MetricsConfig) fx.Option {
	if !cfg.Enabled {
		return fx.Options()
	}
	return fx.Options(
		fx.Supply(cfg.Config),
		metrics.FXModule,
		fx.Provide(
			fx.Annotate(
				func(m *metrics.Metrics) *metrics.Metrics { return m },
				fx.As(new(algolia.Recorder)),
				fx.As(new(observability.Observer)),
			),
		),
	)
}

// cacheModule exposes the Redis client as the adapter's Cache when enabled.
func cacheModule(cfg CacheConfig) fx.Option {
	if !cfg.Enabled {
		return fx.Options()
	}
	return fx.Options(
		fx.Supply(cfg.Config),
		redis.FXModule,
		fx.Provide(
			fx.Annotate(
				func(c *redis.RedisClient) *redis.RedisClient { return c },
				fx.As(new(algolia.Cache)),
			),
		),
	)
}

// eventsModule exposes the Kafka client as the adapter's EventPublisher
// when enabled.
func eventsModule(cfg EventsConfig) fx.Option {
	if !cfg.Enabled {
		return fx.Options()
	}
	return fx.Options(
		fx.Supply(cfg.Config),
		kafka.FXModule,
		fx.Provide(
			fx.Annotate(
				func(c *kafka.KafkaClient) *kafka.KafkaClient { return c },
				fx.As(new(algolia.EventPublisher)),
			),
		),
	)
}
