package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/Gunvolt24/orders-backoffice/pkg/metrics"
	"github.com/Gunvolt24/orders-backoffice/pkg/validate"
	"github.com/segmentio/kafka-go"
)

// handleMessage обрабатывает одно сообщение и определяет, нужно ли коммитить оффсет.
func (c *Consumer) handleMessage(ctx context.Context, topic string, msg *kafka.Message) bool {
	handler, ok := c.routes[topic]
	if !ok {
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		c.log.Warnf(ctx, "no handler topic=%s offset=%d (skipped)", topic, msg.Offset)
		return true
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, c.processTimeout)
	err := handler.HandleMessage(ctxTimeout, msg.Value)
	cancel()

	switch {
	case err == nil:
		metrics.KafkaMessagesProcessed.WithLabelValues(topic).Inc()
		return true
	case errors.Is(err, validate.ErrInvalidOrder):
		// Невалидные данные: логируем и коммитим, чтобы не обрабатывать повторно
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		c.log.Warnf(ctx, "invalid message topic=%s offset=%d: %v (skipped)", topic, msg.Offset, err)
		return true
	default:
		// Временная ошибка (БД/сеть/таймаут): НЕ коммитим - будем обрабатывать повторно
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		c.log.Warnf(ctx, "process failed topic=%s offset=%d: %v (will retry without commit)", topic, msg.Offset, err)
		return false
	}
}

// messageTopic — топик сообщения; для читателя одного топика kafka-go может не заполнять msg.Topic.
func messageTopic(msg *kafka.Message, rc kafka.ReaderConfig) string {
	if msg.Topic != "" {
		return msg.Topic
	}
	return rc.Topic
}

// commitSafely пытается закоммитить оффсет и залогировать ошибку.
func (c *Consumer) commitSafely(ctx context.Context, msg *kafka.Message) {
	if commitErr := c.reader.CommitMessages(ctx, *msg); commitErr != nil {
		c.log.Warnf(ctx, "commit failed topic=%s offset=%d: %v", msg.Topic, msg.Offset, commitErr)
	}
}

// sleepWithBackoff ждет backoff или останавливается по контексту.
func (c *Consumer) sleepWithBackoff(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// nextBackoff возвращает следующее время ожидания повтора с учетом retryMax.
func (c *Consumer) nextBackoff(current time.Duration) time.Duration {
	return min(current*2, c.retryMax)
}

// withJitterEqual — половина задержки фиксирована, вторая половина случайна.
func (c *Consumer) withJitterEqual(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	jitter := time.Duration(c.jitterRand.Int63n(int64(d-half) + 1))
	return half + jitter
}
