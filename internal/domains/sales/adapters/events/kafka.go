package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/openretail/pos-api-server/internal/domains/sales/domain"
	"github.com/openretail/pos-api-server/internal/domains/sales/ports"
)

const (
	// DefaultTopic carries completed-order events for downstream consumers.
	DefaultTopic = "pos.orders.completed"

	publishTimeout = 5 * time.Second
)

// KafkaPublisher emits order lifecycle events onto a Kafka topic.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// NewKafkaPublisher builds a publisher writing to the given topic and brokers.
// An empty topic falls back to DefaultTopic.
func NewKafkaPublisher(logger *slog.Logger, topic string, brokers ...string) *KafkaPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &KafkaPublisher{writer: w, logger: logger}
}

type orderCompletedEvent struct {
	OrderID     string    `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	TotalAmount float64   `json:"totalAmount"`
	ItemCount   int       `json:"itemCount"`
	CompletedAt time.Time `json:"completedAt"`
}

// OrderCompleted publishes the completed order keyed by order ID for partition ordering.
func (p *KafkaPublisher) OrderCompleted(ctx context.Context, order *domain.Cart) error {
	if p == nil || p.writer == nil || order == nil {
		return nil
	}
	payload, err := json.Marshal(orderCompletedEvent{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		TotalAmount: order.TotalAmount,
		ItemCount:   len(order.Items),
		CompletedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(order.ID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("order.completed")},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("failed to publish order completed event",
			slog.String("order.id", order.ID),
			slog.String("order.number", order.OrderNumber),
			slog.String("error", err.Error()))
		return err
	}
	return nil
}

// Close flushes and releases the underlying writer.
func (p *KafkaPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

var _ ports.EventPublisher = (*KafkaPublisher)(nil)
