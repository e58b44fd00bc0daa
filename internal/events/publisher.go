package events

import (
	"context"
	"encoding/json"
	"time"

	"lumen/internal/logger"

	"github.com/segmentio/kafka-go"
)

// Event is the envelope published for every product change. The worker and
// the external search indexer both consume this shape.
type Event struct {
	Type      string                 `json:"type"`
	ProductID string                 `json:"product_id"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

const (
	TypeProductCreated = "product.created"
	TypeProductUpdated = "product.updated"
	TypeProductDeleted = "product.deleted"
)

type Publisher struct {
	writer *kafka.Writer
	logger *logger.Logger
}

func NewPublisher(brokers, topic string, log *logger.Logger) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
		logger: log,
	}
}

func (p *Publisher) Publish(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.ProductID),
		Value: value,
	})
	if err != nil {
		return err
	}
	p.logger.Debug("published %s for product %s", event.Type, event.ProductID)
	return nil
}

// ProductCreated announces a freshly imported product.
func (p *Publisher) ProductCreated(ctx context.Context, productID string) error {
	return p.Publish(ctx, Event{Type: TypeProductCreated, ProductID: productID})
}

// ProductUpdated announces a reconciled or edited product so the search
// indexer can re-sync its document.
func (p *Publisher) ProductUpdated(ctx context.Context, productID string) error {
	return p.Publish(ctx, Event{Type: TypeProductUpdated, ProductID: productID})
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
