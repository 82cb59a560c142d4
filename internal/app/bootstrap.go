// Package app — сборка зависимостей сервиса и управление его жизненным циклом.
package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Gunvolt24/orders-backoffice/config"
	"github.com/Gunvolt24/orders-backoffice/internal/analytics"
	cachemem "github.com/Gunvolt24/orders-backoffice/internal/cache/memory"
	"github.com/Gunvolt24/orders-backoffice/internal/kafka"
	"github.com/Gunvolt24/orders-backoffice/internal/lifecycle"
	"github.com/Gunvolt24/orders-backoffice/internal/ports"
	"github.com/Gunvolt24/orders-backoffice/internal/repo/postgres"
	rest "github.com/Gunvolt24/orders-backoffice/internal/transport/http"
	"github.com/Gunvolt24/orders-backoffice/internal/usecase"
	"github.com/Gunvolt24/orders-backoffice/pkg/logger"
	"github.com/Gunvolt24/orders-backoffice/pkg/metrics"
	"github.com/Gunvolt24/orders-backoffice/pkg/telemetry"
	"github.com/Gunvolt24/orders-backoffice/pkg/validate"
)

// App — собранное приложение и его внешние интерфейсы (HTTP, метрики, consumer).
type App struct {
	Logger          ports.Logger          // логгер
	HTTPServer      *http.Server          // административный API
	MetricsServer   *http.Server          // отдельный сервер /metrics; nil — не запускается
	KafkaConsumer   ports.MessageConsumer // консьюмер событий витрины; nil — Kafka выключена
	gracefulTimeout time.Duration         // время ожидания завершения HTTP-серверов
}

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// Bootstrap — собирает зависимости и возвращает приложение, функцию очистки и ошибку.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	// Логгер (dev/prod режим и уровень задаются конфигурацией).
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd, cfg.Logger.Level)
	if err != nil {
		return nil, func() {}, err
	}
	closeLogger := func() {
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
	}

	loc, err := cfg.Analytics.Location()
	if err != nil {
		closeLogger()
		return nil, func() {}, err
	}

	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

	// Трейсинг OTEL; при выключенной конфигурации — только пропагаторы.
	shutdownTrace, err := telemetry.SetupTracing(ctx, telemetry.Config{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		Endpoint:    cfg.Tracing.Endpoint,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		logg.Warnf(ctx, "failed to setup tracing: %v", err)
		shutdownTrace = func(context.Context) error { return nil }
	} else if cfg.Tracing.Enabled {
		logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
			cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
	}

	// Пул подключений Postgres и миграции схемы.
	pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
	if err != nil {
		_ = shutdownTrace(context.Background())
		closeLogger()
		return nil, func() {}, err
	}
	if cfg.Postgres.AutoMigrate {
		applied, mErr := postgres.Migrate(ctx, pool)
		if mErr != nil {
			pool.Close()
			_ = shutdownTrace(context.Background())
			closeLogger()
			return nil, func() {}, mErr
		}
		logg.Infof(ctx, "migrations applied count=%d", applied)
	}

	// Сборка зависимостей доменного слоя.
	orderRepo := postgres.NewOrderRepository(pool)
	orderValidator := validate.NewOrderValidator()
	reportStore := cachemem.NewReportStore(cfg.Cache.Capacity, cfg.Cache.TTL)
	aggregator := analytics.Aggregator{TopN: cfg.Analytics.TopN, Location: loc}

	// Публикация смен статуса — только при включённой Kafka.
	var publisher ports.StatusEventPublisher
	if cfg.Kafka.Enabled && cfg.Kafka.StatusTopic != "" {
		publisher = kafka.NewStatusPublisher(&kafka.ProducerConfig{
			Brokers:      cfg.Kafka.Brokers,
			Topic:        cfg.Kafka.StatusTopic,
			WriteTimeout: cfg.Kafka.WriteTimeout,
		})
	}

	orderService := usecase.NewOrderAdminService(
		orderRepo, publisher, orderValidator, lifecycle.NewMachine(), logg, cfg.Analytics.FetchLimit)
	analyticsService := usecase.NewAnalyticsService(
		orderRepo, orderValidator, reportStore, aggregator, logg, cfg.Analytics.FetchLimit)
	ingestService := usecase.NewOrderIngestService(orderRepo, orderValidator, logg)

	// Режим Gin.
	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	// Имя сервиса для otelgin (только при включённом трейсинге).
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	// Роутер и HTTP-сервер.
	httpHandler := rest.NewHandler(orderService, analyticsService, logg, rest.Options{
		RequestTimeout:    cfg.HTTP.HandlerTimeout,
		DefaultPageSize:   cfg.Pagination.DefaultPageSize,
		MaxPageSize:       cfg.Pagination.MaxPageSize,
		MaxVisiblePages:   cfg.Pagination.MaxVisiblePages,
		DefaultPeriodDays: cfg.Analytics.DefaultPeriodDays,
		MaxBulkIDs:        cfg.HTTP.MaxBulkIDs,
	})
	router := rest.NewRouter(httpHandler, otelServiceName)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		MetricsServer:   newMetricsServer(cfg.Metrics.Addr, cfg.HTTP.Addr),
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	// Консьюмер Kafka: размещённые заказы и статусы оплаты.
	var consumer *kafka.Consumer
	if cfg.Kafka.Enabled {
		consumer = kafka.NewConsumer(&kafka.ConsumerConfig{
			Brokers:        cfg.Kafka.Brokers,
			GroupID:        cfg.Kafka.GroupID,
			StartOffset:    cfg.Kafka.StartOffset,
			ProcessTimeout: cfg.Kafka.ProcessTimeout,
			RetryInitial:   cfg.Kafka.RetryInitial,
			RetryMax:       cfg.Kafka.RetryMax,
		}, kafka.Routes{
			cfg.Kafka.PlacedTopic:  kafka.HandlerFunc(ingestService.SaveFromMessage),
			cfg.Kafka.PaymentTopic: kafka.HandlerFunc(ingestService.ApplyPaymentUpdate),
		}, logg)
		app.KafkaConsumer = consumer
	} else {
		logg.Warnf(ctx, "kafka disabled: storefront events are not consumed, status events are not published")
	}

	// Очистка ресурсов (в обратном порядке).
	cleanup := func() {
		if consumer != nil {
			if err := consumer.Close(); err != nil {
				logg.Warnf(ctx, "kafka consumer close error: %v", err)
			}
		}
		if publisher != nil {
			if err := publisher.Close(); err != nil {
				logg.Warnf(ctx, "kafka publisher close error: %v", err)
			}
		}
		if terr := shutdownTrace(context.Background()); terr != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", terr)
		}
		pool.Close()
		closeLogger()
	}

	return app, cleanup, nil
}

// newMetricsServer — отдельный сервер /metrics, если его адрес задан и отличается от основного.
func newMetricsServer(addr, httpAddr string) *http.Server {
	if addr == "" || addr == httpAddr {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
}

// Run — запускает HTTP-серверы и консьюмера; ждёт отмены контекста или ошибки и останавливает их.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 3)

	// Запуск консьюмера.
	if a.KafkaConsumer != nil {
		go func() {
			a.Logger.Infof(ctx, "kafka consumer starting")
			if err := a.KafkaConsumer.Run(ctx); err != nil {
				errCh <- err
			}
		}()
	}

	// Запуск HTTP-серверов.
	for _, srv := range a.servers() {
		go func(srv *http.Server) {
			a.Logger.Infof(ctx, "http server starting addr=%s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}(srv)
	}

	// Ожидание сигнала остановки или фоновой ошибки.
	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case err := <-errCh:
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			a.Logger.Infof(ctx, "background component stopped: %v", err)
		} else {
			a.Logger.Warnf(ctx, "background error: %v", err)
		}
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	// Корректная остановка HTTP-серверов.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	for _, srv := range a.servers() {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.Logger.Warnf(ctx, "http server shutdown failed addr=%s err=%v", srv.Addr, err)
		} else {
			a.Logger.Infof(ctx, "http server stopped gracefully addr=%s", srv.Addr)
		}
	}

	// Остановка Kafka-консьюмера.
	if a.KafkaConsumer != nil {
		if err := a.KafkaConsumer.Close(); err != nil {
			a.Logger.Warnf(ctx, "kafka consumer close error: %v", err)
		}
	}

	a.Logger.Infof(ctx, "service stopped")
	return nil
}

func (a *App) servers() []*http.Server {
	out := make([]*http.Server, 0, 2)
	if a.HTTPServer != nil {
		out = append(out, a.HTTPServer)
	}
	if a.MetricsServer != nil {
		out = append(out, a.MetricsServer)
	}
	return out
}
