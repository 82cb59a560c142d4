package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Gunvolt24/orders-backoffice/internal/ports"
	"github.com/Gunvolt24/orders-backoffice/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

var _ ports.StatusEventPublisher = (*StatusPublisher)(nil)

// writer — контракт над kafka.Writer для подмены в тестах.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// StatusPublisher — публикует события смены статуса заказа; ключ сообщения — ID заказа.
type StatusPublisher struct {
	writer    writer
	topic     string
	closeOnce sync.Once
}

// NewStatusPublisher — конструктор поверх kafka.Writer из конфигурации.
func NewStatusPublisher(cfg *ProducerConfig) *StatusPublisher {
	return &StatusPublisher{writer: cfg.Writer(), topic: cfg.Topic}
}

// PublishStatusChanged — сериализует событие в JSON и отправляет его.
func (p *StatusPublisher) PublishStatusChanged(ctx context.Context, event ports.StatusChangedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal status event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID),
		Value: payload,
		Time:  event.ChangedAt,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte("order.status_changed")},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		metrics.KafkaMessagesPublished.WithLabelValues(p.topic, "error").Inc()
		return fmt.Errorf("publish status event order_id=%s: %w", event.OrderID, err)
	}
	metrics.KafkaMessagesPublished.WithLabelValues(p.topic, "ok").Inc()
	return nil
}

// Close — сбрасывает буфер и закрывает writer.
func (p *StatusPublisher) Close() (retErr error) {
	p.closeOnce.Do(func() {
		retErr = p.writer.Close()
	})
	return retErr
}
