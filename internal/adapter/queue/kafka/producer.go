// Package kafka publishes activity events to a Kafka topic.
package kafka

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/learnovatex/platform/internal/domain"
	"github.com/learnovatex/platform/internal/observability"
)

// Topic carrying scored user activities for downstream analytics.
const ActivityTopic = "platform.activity.v1"

// Producer publishes activity events. Publishing is fire-and-forget: request
// handling never blocks on broker availability, and failures are only logged.
type Producer struct {
	client *kgo.Client
}

// New connects a producer to the given brokers. An empty broker list yields
// a disabled producer whose publishes are no-ops.
func New(brokers []string) (*Producer, error) {
	if len(brokers) == 0 {
		return &Producer{}, nil
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
		kgo.DefaultProduceTopic(ActivityTopic),
	)
	if err != nil {
		return nil, fmt.Errorf("op=kafka.new: %w", err)
	}
	return &Producer{client: client}, nil
}

// PublishActivity emits one activity event, keyed by user id so a user's
// events stay ordered within a partition.
func (p *Producer) PublishActivity(ctx domain.Context, ev domain.ActivityEvent) error {
	if p.client == nil {
		return nil
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("op=kafka.publish_activity: %w", err)
	}
	rec := &kgo.Record{Topic: ActivityTopic, Key: []byte(ev.UserID), Value: payload}
	p.client.Produce(ctx, rec, func(_ *kgo.Record, err error) {
		if err != nil {
			observability.LoggerFromContext(ctx).Warn("activity event publish failed",
				slog.String("kind", ev.Kind),
				slog.Any("error", err))
		}
	})
	return nil
}

// Close flushes pending records and releases the client.
func (p *Producer) Close() {
	if p.client != nil {
		p.client.Close()
	}
}
