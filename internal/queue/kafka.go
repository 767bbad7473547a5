// booking-payment-gateway/internal/queue/kafka.go
package queue

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// Publisher writes reconciled payment results to the audit topic.
// Publishing is best-effort; the callback acknowledgement never waits
// on it.
type Publisher struct {
	Brokers []string
	Topic   string
}

func New(brokers []string, topic string) *Publisher {
	return &Publisher{Brokers: brokers, Topic: topic}
}

func (p *Publisher) Publish(ctx context.Context, key, payload []byte) error {
	w := &kafka.Writer{
		Addr:     kafka.TCP(p.Brokers...),
		Topic:    p.Topic,
		Balancer: &kafka.LeastBytes{},
	}
	defer w.Close()
	return w.WriteMessages(ctx, kafka.Message{Key: key, Value: payload})
}
