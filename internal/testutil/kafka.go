//go:build integration

package testutil

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// UniqueName — base с суффиксом времени и случайным хвостом; годится для топиков и групп.
func UniqueName(base string) string {
	return fmt.Sprintf("%s-%s-%s", base, time.Now().UTC().Format("20060102T150405"), UniqSuffix())
}

// EnsureTopics — создаёт топики через контроллер кластера (существующие не ошибка)
// и ждёт их появления в метаданных.
func EnsureTopics(ctx context.Context, broker string, topics ...string) error {
	conn, err := kafka.DialContext(ctx, "tcp", broker)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctrl, err := conn.Controller()
	if err != nil {
		return err
	}
	admin, err := kafka.DialContext(ctx, "tcp", net.JoinHostPort(ctrl.Host, strconv.Itoa(ctrl.Port)))
	if err != nil {
		return err
	}
	defer admin.Close()

	configs := make([]kafka.TopicConfig, 0, len(topics))
	for _, topic := range topics {
		configs = append(configs, kafka.TopicConfig{Topic: topic, NumPartitions: 1, ReplicationFactor: 1})
	}
	if err := admin.CreateTopics(configs...); err != nil &&
		!strings.Contains(strings.ToLower(err.Error()), "already exists") {
		return err
	}

	for _, topic := range topics {
		if err := waitTopicReady(ctx, broker, topic); err != nil {
			return err
		}
	}
	return nil
}

func waitTopicReady(ctx context.Context, broker, topic string) error {
	deadline := time.Now().Add(5 * time.Second)
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		c, err := kafka.DialContext(ctx, "tcp", broker)
		if err == nil {
			parts, perr := c.ReadPartitions(topic)
			_ = c.Close()
			if perr == nil && len(parts) > 0 {
				return nil
			}
			err = perr
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("topic %q not ready: %w", topic, err)
		}
		time.Sleep(200 * time.Millisecond)
	}
}
