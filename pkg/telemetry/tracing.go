// Package telemetry — настройка OpenTelemetry-трейсинга (OTLP/HTTP).
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName — имя трейсера прикладных спанов сервиса.
const InstrumentationName = "github.com/Gunvolt24/orders-backoffice"

// Config — параметры трейсинга. Enabled=false — экспорт выключен, спаны no-op.
type Config struct {
	Enabled     bool
	ServiceName string
	Endpoint    string
	SampleRatio float64
}

// SetupTracing настраивает OTLP/HTTP экспорт, семплинг и глобальные пропагаторы.
// Возвращает функцию корректного завершения провайдера.
func SetupTracing(ctx context.Context, cfg Config) (func(context.Context) error, error) {
	// Пропагаторы нужны и без экспорта: trace context клиента пробрасывается дальше.
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{}, propagation.Baggage{},
		),
	)
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = "localhost:4318"
	}
	ratio := min(max(cfg.SampleRatio, 0), 1)

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
			attribute.String("telemetry.sdk", "opentelemetry"),
		)),
	)
	otel.SetTracerProvider(traceProvider)

	return traceProvider.Shutdown, nil
}

// Tracer — трейсер прикладных спанов поверх глобального провайдера.
func Tracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}
