// Package effects publishes domain effect descriptors emitted by event
// mutations. Publishing happens after the owning transaction commits, so
// delivery is at-least-once and consumers must tolerate duplicates.
package effects

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	"lankaconnect/internal/events/models"
)

// KafkaPublisher writes effects to a single Kafka topic, keyed by event ID so
// all effects for one event land on one partition in order.
type KafkaPublisher struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// NewKafkaPublisher connects to the given brokers. Close must be called on
// shutdown to flush buffered records.
func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) (*KafkaPublisher, error) {
	if topic == "" {
		return nil, fmt.Errorf("effects: topic is required")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("effects: connect kafka: %w", err)
	}
	return &KafkaPublisher{client: client, topic: topic, logger: logger}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, batch []models.Effect) error {
	if len(batch) == 0 {
		return nil
	}
	records := make([]*kgo.Record, 0, len(batch))
	for _, effect := range batch {
		payload, err := json.Marshal(effect)
		if err != nil {
			return fmt.Errorf("effects: marshal %s: %w", effect.Kind, err)
		}
		records = append(records, &kgo.Record{
			Key:   []byte(effect.EventID.String()),
			Value: payload,
			Headers: []kgo.RecordHeader{
				{Key: "kind", Value: []byte(effect.Kind)},
			},
		})
	}
	if err := p.client.ProduceSync(ctx, records...).FirstErr(); err != nil {
		return fmt.Errorf("effects: produce: %w", err)
	}
	p.logger.DebugContext(ctx, "published effects", "count", len(records), "topic", p.topic)
	return nil
}

// Close flushes and releases the underlying Kafka client.
func (p *KafkaPublisher) Close() {
	p.client.Close()
}
