package kafka

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/Gunvolt24/orders-backoffice/internal/ports"
	"github.com/Gunvolt24/orders-backoffice/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

// Проверка, что Consumer удовлетворяет интерфейсу верхнего уровня (порт приложения).
var _ ports.MessageConsumer = (*Consumer)(nil)

// reader — минимальный контракт над источником (kafka.Reader),
// чтобы легко подменять его моками в тестах.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// Handler — обработчик сообщений одного топика.
// Ошибка, обёрнутая в validate.ErrInvalidOrder, означает «сообщение отбросить».
type Handler interface {
	HandleMessage(ctx context.Context, raw []byte) error
}

// HandlerFunc — адаптер функции к Handler.
type HandlerFunc func(ctx context.Context, raw []byte) error

// HandleMessage вызывает f.
func (f HandlerFunc) HandleMessage(ctx context.Context, raw []byte) error { return f(ctx, raw) }

// Routes — обработчики по имени топика.
type Routes map[string]Handler

// Topics — список топиков маршрутов.
func (r Routes) Topics() []string {
	topics := make([]string, 0, len(r))
	for topic := range r {
		topics = append(topics, topic)
	}
	return topics
}

// Consumer — обёртка над kafka.Reader + маршрутизация сообщений по топикам.
type Consumer struct {
	reader         reader
	routes         Routes
	log            ports.Logger
	processTimeout time.Duration
	retryInitial   time.Duration
	retryMax       time.Duration
	jitterRand     *rand.Rand
	closeOnce      sync.Once
}

// NewConsumer — конструктор. Если cfg.Topics пуст, читаются все топики маршрутов.
func NewConsumer(cfg *ConsumerConfig, routes Routes, log ports.Logger) *Consumer {
	if len(cfg.Topics) == 0 {
		cfg.Topics = routes.Topics()
	}
	reader := kafka.NewReader(cfg.ReaderConfig())

	// Параметры по умолчанию (если не заданы в конфиге)
	pt := cfg.ProcessTimeout
	if pt <= 0 {
		pt = 5 * time.Second
	}

	rInit := cfg.RetryInitial
	if rInit <= 0 {
		rInit = 1 * time.Second
	}

	rMax := cfg.RetryMax
	if rMax <= 0 {
		rMax = 30 * time.Second
	}

	return &Consumer{
		reader:         reader,
		routes:         routes,
		log:            log,
		processTimeout: pt,
		retryInitial:   rInit,
		retryMax:       rMax,
		jitterRand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run — основной цикл:
// 1) читаем сообщение без авто-коммита;
// 2) успешная обработка → CommitMessages;
// 3) невалидные данные или неизвестный топик → лог и CommitMessages (пропускаем навсегда);
// 4) временная ошибка → без коммита (повторная обработка, at-least-once).
func (c *Consumer) Run(ctx context.Context) error {
	rc := c.reader.Config()
	c.log.Infof(ctx, "kafka consumer started topic=%s group_topics=%v group_id=%s brokers=%v",
		rc.Topic, rc.GroupTopics, rc.GroupID, rc.Brokers)

	// Экспоненциальный backoff на ошибках FetchMessage с equal-jitter
	retry := c.retryInitial

	for {
		msg, fetchErr := c.reader.FetchMessage(ctx)
		if fetchErr != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			sleep := c.withJitterEqual(retry)
			c.log.Warnf(ctx, "fetch failed: %v (will retry in %s)", fetchErr, sleep)
			if !c.sleepWithBackoff(ctx, sleep) {
				return ctx.Err()
			}
			retry = c.nextBackoff(retry)
			continue
		}

		retry = c.retryInitial
		topic := messageTopic(&msg, rc)
		metrics.KafkaMessagesConsumed.WithLabelValues(topic).Inc()

		if shouldCommit := c.handleMessage(ctx, topic, &msg); shouldCommit {
			c.commitSafely(ctx, &msg)
		} else {
			// Пауза с джиттером после временной ошибки.
			_ = c.sleepWithBackoff(ctx, c.withJitterEqual(min(c.retryInitial, 500*time.Millisecond)))
		}
	}
}

// Close - закрывает reader. Вызывается при остановке приложения.
func (c *Consumer) Close() (retErr error) {
	c.closeOnce.Do(func() {
		retErr = c.reader.Close()
	})
	return retErr
}
