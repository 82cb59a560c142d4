// Package metrics — Prometheus-метрики сервиса. Регистрация — MustRegister при старте.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	KafkaMessagesConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_consumed_total",
			Help: "Number of messages fetched from Kafka",
		},
		[]string{"topic"},
	)
	KafkaMessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_processed_total",
			Help: "Number of messages processed successfully",
		},
		[]string{"topic"},
	)
	KafkaMessagesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_failed_total",
			Help: "Number of messages failed to process",
		},
		[]string{"topic"},
	)
	KafkaMessagesPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_published_total",
			Help: "Number of status events published to Kafka",
		},
		[]string{"topic", "result"}, // ok|error
	)
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_cache_operations_total",
			Help: "Last-good report store operations",
		},
		[]string{"op"}, // hit|miss|evicted|expired
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "report_cache_size",
			Help: "Number of reports currently in the store",
		},
	)
)

var (
	StatusTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_status_transitions_total",
			Help: "Order status transition attempts",
		},
		[]string{"result"}, // applied|rejected|conflict|failed
	)
	AnalyticsAggregations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_aggregations_total",
			Help: "Analytics report builds",
		},
		[]string{"result"}, // ok|stale|failed|superseded
	)
	AnalyticsDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analytics_aggregation_duration_seconds",
			Help:    "Time to fetch both windows and aggregate a report",
			Buckets: prometheus.DefBuckets,
		},
	)
)

var registerOnce sync.Once

// MustRegister — регистрирует все метрики в глобальном реестре (повторный вызов безопасен).
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			KafkaMessagesConsumed, KafkaMessagesProcessed, KafkaMessagesFailed, KafkaMessagesPublished,
			CacheOps, CacheSize,
			StatusTransitions, AnalyticsAggregations, AnalyticsDuration,
		)
	})
}
