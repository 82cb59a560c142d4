package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/Gunvolt24/orders-backoffice/internal/analytics"
	"github.com/Gunvolt24/orders-backoffice/internal/domain"
	"github.com/Gunvolt24/orders-backoffice/internal/ports"
	"github.com/Gunvolt24/orders-backoffice/pkg/metrics"
	"github.com/Gunvolt24/orders-backoffice/pkg/reqtoken"
	"github.com/Gunvolt24/orders-backoffice/pkg/telemetry"
)

// MaxPeriodDays — верхняя граница длины периода отчёта.
const MaxPeriodDays = 366

// Проверка, что AnalyticsService удовлетворяет порту транспорта.
var _ ports.AnalyticsReader = (*AnalyticsService)(nil)

// AnalyticsService — построение отчёта продаж: параллельная выгрузка текущего и предыдущего окна,
// агрегация, сохранение последнего удачного отчёта. При сбое выгрузки отдаёт последний удачный
// отчёт с признаком Stale; частичный отчёт не строится никогда.
type AnalyticsService struct {
	snapshot *snapshotLoader
	store    ports.ReportStore
	tokens   *reqtoken.Sequencer
	agg      analytics.Aggregator
	now      func() time.Time
	log      ports.Logger
}

// NewAnalyticsService — DI-конструктор. agg.Now, если задан, используется как часы сервиса.
func NewAnalyticsService(
	repo ports.OrderRepository,
	validator ports.OrderValidator,
	store ports.ReportStore,
	agg analytics.Aggregator,
	log ports.Logger,
	fetchLimit int,
) *AnalyticsService {
	now := agg.Now
	if now == nil {
		now = time.Now
	}
	return &AnalyticsService{
		snapshot: newSnapshotLoader(repo, validator, log, fetchLimit),
		store:    store,
		tokens:   reqtoken.New(),
		agg:      agg,
		now:      now,
		log:      log,
	}
}

// Report — отчёт за periodDays дней, заканчивающихся сегодня.
// Ошибка возвращается для некорректного периода и для сбоя выгрузки без сохранённого отчёта.
func (s *AnalyticsService) Report(ctx context.Context, periodDays int) (ports.AnalyticsResult, error) {
	if periodDays < 1 || periodDays > MaxPeriodDays {
		return ports.AnalyticsResult{}, domain.NewValidationError("period", strconv.Itoa(periodDays),
			"period must be between 1 and "+strconv.Itoa(MaxPeriodDays)+" days")
	}

	ctx, span := telemetry.Tracer().Start(ctx, "analytics.Report",
		trace.WithAttributes(attribute.Int("period_days", periodDays)))
	defer span.End()

	key := strconv.Itoa(periodDays)
	token := s.tokens.Issue(key)
	start := time.Now()

	// Одни и те же часы для окон выгрузки и для агрегации.
	at := s.now()
	agg := s.agg
	agg.Now = func() time.Time { return at }

	orders, err := s.fetchWindows(ctx, agg, periodDays)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return s.fallback(ctx, periodDays, err)
	}
	span.SetAttributes(attribute.Int("orders", len(orders)))

	report, err := agg.Aggregate(orders, periodDays)
	if err != nil {
		return ports.AnalyticsResult{}, err
	}
	metrics.AnalyticsDuration.Observe(time.Since(start).Seconds())

	committed := s.tokens.Commit(key, token, func() {
		if setErr := s.store.Set(ctx, periodDays, report); setErr != nil {
			s.log.Warnf(ctx, "report store set failed period=%d err=%v", periodDays, setErr)
		}
	})
	if !committed {
		// Более новый запрос уже в работе: его результат станет последним удачным, а этот — нет.
		metrics.AnalyticsAggregations.WithLabelValues("superseded").Inc()
		s.log.Infof(ctx, "analytics report superseded period=%d token=%d", periodDays, token)
	} else {
		metrics.AnalyticsAggregations.WithLabelValues("ok").Inc()
	}

	s.log.Infof(ctx, "analytics report built period=%d orders=%d revenue=%d took=%s",
		periodDays, report.TotalOrders, report.TotalRevenue, time.Since(start))
	return ports.AnalyticsResult{Report: report}, nil
}

// fetchWindows — параллельно выгрузить текущее и предыдущее окно.
func (s *AnalyticsService) fetchWindows(ctx context.Context, agg analytics.Aggregator, periodDays int) ([]domain.Order, error) {
	curFrom, curTo := agg.Window(periodDays)
	prevFrom, prevTo := agg.PreviousWindow(periodDays)

	var current, previous []domain.Order
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = s.snapshot.load(gctx, &curFrom, &curTo)
		return err
	})
	g.Go(func() error {
		var err error
		previous, err = s.snapshot.load(gctx, &prevFrom, &prevTo)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return append(current, previous...), nil
}

// fallback — последний удачный отчёт с признаком Stale либо ошибка выгрузки.
func (s *AnalyticsService) fallback(ctx context.Context, periodDays int, cause error) (ports.AnalyticsResult, error) {
	var fetchErr *domain.FetchError
	if !errors.As(cause, &fetchErr) {
		cause = domain.NewFetchError("load orders", cause)
	}

	last, ok := s.store.Get(ctx, periodDays)
	if !ok {
		metrics.AnalyticsAggregations.WithLabelValues("failed").Inc()
		s.log.Errorf(ctx, "analytics report failed period=%d err=%v", periodDays, cause)
		return ports.AnalyticsResult{}, cause
	}

	metrics.AnalyticsAggregations.WithLabelValues("stale").Inc()
	s.log.Warnf(ctx, "analytics serving last good report period=%d generated_at=%s err=%v",
		periodDays, last.GeneratedAt.Format(time.RFC3339), cause)
	return ports.AnalyticsResult{Report: last, Stale: true, Err: cause}, nil
}
