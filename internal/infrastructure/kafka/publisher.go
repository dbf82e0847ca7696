package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	domoutbox "github.com/commercelab/orderflow/internal/domain/outbox"
	"github.com/commercelab/orderflow/internal/observability"
	"github.com/segmentio/kafka-go"
)

const (
	batchTimeout = 10 * time.Millisecond
	batchSize    = 100
)

// Publisher writes domain events to a Kafka topic as JSON messages keyed by
// event name. It satisfies the outbox Publisher port so downstream services
// can consume order events off-process.
type Publisher struct {
	writer *kafka.Writer
	log    observability.Logger
}

func NewPublisher(broker, topic string, logger observability.Logger) *Publisher {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(broker),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: batchTimeout,
			BatchSize:    batchSize,
		},
		log: logger.With(observability.F("component", "kafka_publisher")),
	}
}

func (p *Publisher) Publish(ctx context.Context, e domoutbox.Event) error {
	if e == nil {
		return nil
	}

	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("kafka: marshal %s: %w", e.EventName(), err)
	}

	msg := kafka.Message{
		Key:   []byte(e.EventName()),
		Value: payload,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write %s: %w", e.EventName(), err)
	}

	p.log.Debug("event_published",
		observability.F("event", e.EventName()),
		observability.F("topic", p.writer.Topic),
	)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
