package kafka

import (
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// ConsumerConfig — параметры группового потребителя входящих событий заказов.
type ConsumerConfig struct {
	Brokers     []string
	Topics      []string
	GroupID     string
	StartOffset string // first|last (по умолчанию last)

	ProcessTimeout time.Duration
	RetryInitial   time.Duration
	RetryMax       time.Duration
}

// ReaderConfig — конфигурация kafka.Reader с ручным коммитом оффсетов.
// Один топик задаётся через Topic, несколько — через GroupTopics.
func (c *ConsumerConfig) ReaderConfig() kafka.ReaderConfig {
	rc := kafka.ReaderConfig{
		Brokers:        c.Brokers,
		GroupID:        c.GroupID,
		CommitInterval: 0,
	}
	if len(c.Topics) == 1 {
		rc.Topic = c.Topics[0]
	} else {
		rc.GroupTopics = c.Topics
	}

	switch strings.ToLower(strings.TrimSpace(c.StartOffset)) {
	case "first":
		rc.StartOffset = kafka.FirstOffset
	default:
		rc.StartOffset = kafka.LastOffset
	}

	return rc
}

// ProducerConfig — параметры публикации событий смены статуса.
type ProducerConfig struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

// Writer — kafka.Writer с ключом-балансировкой по ID заказа (события одного заказа в одной партиции).
func (c *ProducerConfig) Writer() *kafka.Writer {
	wt := c.WriteTimeout
	if wt <= 0 {
		wt = 5 * time.Second
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(c.Brokers...),
		Topic:                  c.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		WriteTimeout:           wt,
		AllowAutoTopicCreation: true,
	}
}
