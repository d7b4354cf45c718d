package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Aleph-Alpha/algolia-weaviate/v1/algolia"
	"github.com/Aleph-Alpha/algolia-weaviate/v1/observability"
)

// contentTypeJSON is set on every message so consumers can pick a decoder.
const contentTypeJSON = "application/json"

// Publish writes one message to the configured topic. Messages with the
// same key land on the same partition. In async mode Publish returns once
// the message is buffered.
func (k *KafkaClient) Publish(ctx context.Context, key, value []byte) error {
	start := time.Now()
	err := k.writer.WriteMessages(ctx, kafka.Message{
		Key:   key,
		Value: value,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte(contentTypeJSON)},
		},
	})
	if err != nil {
		err = fmt.Errorf("failed to publish to %s: %w", k.cfg.Topic, err)
	}
	if !k.cfg.Async || err != nil {
		k.observeOperation("produce", "sync", time.Since(start), err, int64(len(value)), 1)
	}
	return err
}

// PublishSearch encodes event as JSON and publishes it keyed by index name,
// keeping each index's events in order.
func (k *KafkaClient) PublishSearch(ctx context.Context, event algolia.SearchEvent) error {
	value, err := encodeSearchEvent(event)
	if err != nil {
		return err
	}
	return k.Publish(ctx, []byte(event.IndexName), value)
}

func encodeSearchEvent(event algolia.SearchEvent) ([]byte, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to encode search event: %w", err)
	}
	return value, nil
}

// onCompletion reports the outcome of an async batch.
func (k *KafkaClient) onCompletion(messages []kafka.Message, err error) {
	var size int64
	for _, m := range messages {
		size += int64(len(m.Value))
	}
	if err != nil {
		k.getLogger().Warn("Failed to deliver search events", err, map[string]interface{}{
			"topic":    k.cfg.Topic,
			"messages": len(messages),
		})
	}
	k.observeOperation("produce", "async", 0, err, size, len(messages))
}

// observeOperation notifies the observer about an operation if one is configured.
func (k *KafkaClient) observeOperation(operation, mode string, duration time.Duration, err error, size int64, count int) {
	observer := k.getObserver()
	if observer == nil {
		return
	}

	observer.ObserveOperation(observability.OperationContext{
		Component:   "kafka",
		Operation:   operation,
		Resource:    k.cfg.Topic,
		SubResource: mode,
		Duration:    duration,
		Error:       err,
		Size:        size,
		Metadata: map[string]interface{}{
			"message_count": count,
		},
	})
}
