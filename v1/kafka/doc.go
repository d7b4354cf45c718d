// Package kafka publishes search events to Apache Kafka.
//
// Every search the adapter serves can be mirrored to a topic as a JSON
// algolia.SearchEvent, keyed by index name, for click analytics and query
// log pipelines that used to read Algolia's own logs.
//
// Core Features:
//   - kafka-go writer with hash balancing so each index keeps its order
//   - Async batching by default so publishing never delays a search
//   - gzip, snappy, lz4 and zstd compression
//   - TLS and SASL (PLAIN, SCRAM-SHA-256, SCRAM-SHA-512)
//   - Observer hooks for every produce call or delivered batch
//
// Basic Usage:
//
//	client, err := kafka.NewClient(kafka.Config{
//		Brokers: []string{"localhost:9092"},
//		Topic:   "algolia-search-events",
//		Async:   true,
//	})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	adapter.WithEvents(client)
//
// Integration with fx:
//
//	app := fx.New(
//		kafka.FXModule,
//		fx.Provide(func() kafka.Config { return kafka.DefaultConfig("kafka:9092") }),
//		fx.Provide(fx.Annotate(
//			func(c *kafka.KafkaClient) *kafka.KafkaClient { return c },
//			fx.As(new(algolia.EventPublisher)),
//		)),
//	)
//
// In async mode delivery errors never reach the caller of Publish. They
// are logged as warnings and reported to the observer.
//
// Thread Safety:
//
// All methods are safe for concurrent use.
package kafka
