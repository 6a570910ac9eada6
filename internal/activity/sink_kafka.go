package activity

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaSink publishes activity events to a Kafka topic, one JSON record per
// event, keyed by API key ID so per-tenant activity stays ordered within a
// partition.
type KafkaSink struct {
	client *kgo.Client
	topic  string
}

// NewKafkaSink connects to the brokers and ensures the topic exists.
func NewKafkaSink(ctx context.Context, brokers []string, topic string) (*KafkaSink, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	// Create the topic if missing. An already-exists response is fine; any
	// other failure surfaces on the first produce instead.
	adm := kadm.NewClient(client)
	_, _ = adm.CreateTopics(ctx, 1, 1, nil, topic)

	return &KafkaSink{client: client, topic: topic}, nil
}

// Append produces one event synchronously. The worker calls this off the
// request path, so a synchronous produce keeps delivery errors observable.
func (s *KafkaSink) Append(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal activity event: %w", err)
	}
	record := &kgo.Record{
		Key:   []byte(event.APIKeyID),
		Value: payload,
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce activity event: %w", err)
	}
	return nil
}

// Close flushes and closes the Kafka client.
func (s *KafkaSink) Close() {
	s.client.Close()
}
