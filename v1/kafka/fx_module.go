package kafka

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/algolia-weaviate/v1/observability"
)

// FXModule is an fx.Module that provides the search event publisher.
//
// The module:
// 1. Provides the Kafka client factory function
// 2. Invokes the lifecycle registration to flush and close on stop
//
// Usage:
//
//	app := fx.New(
//	    kafka.FXModule,
//	    fx.Provide(func() kafka.Config { return kafka.DefaultConfig("kafka:9092") }),
//	)
//
// Bind *KafkaClient to algolia.EventPublisher with fx.As to publish events.
var FXModule = fx.Module("kafka",
	fx.Provide(
		NewClientWithDI,
	),
	fx.Invoke(RegisterKafkaLifecycle),
)

// KafkaParams groups the dependencies needed to create a Kafka client
type KafkaParams struct {
	fx.In

	Config   Config
	Logger   Logger                 `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewClientWithDI creates a new Kafka client using dependency injection.
// The optional logger and observer are attached when present.
func NewClientWithDI(params KafkaParams) (*KafkaClient, error) {
	client, err := NewClient(params.Config)
	if err != nil {
		return nil, err
	}
	client.WithLogger(params.Logger)
	if params.Observer != nil {
		client.WithObserver(params.Observer)
	}
	return client, nil
}

// RegisterKafkaLifecycle registers the Kafka client with the fx lifecycle system.
//
// Brokers are not contacted on start, so an unavailable cluster never
// blocks search traffic. On stop, buffered events are flushed and the
// writer is closed.
func RegisterKafkaLifecycle(lc fx.Lifecycle, client *KafkaClient) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			client.getLogger().Info("Kafka publisher started", nil, map[string]interface{}{
				"brokers": client.cfg.Brokers,
				"topic":   client.cfg.Topic,
				"async":   client.cfg.Async,
			})
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
}
