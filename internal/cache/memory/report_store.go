// Package memory — in-process хранилища: LRU/TTL-кэш и построенное на нём хранилище
// последних удачных аналитических отчётов.
package memory

import (
	"context"
	"slices"
	"time"

	"github.com/Gunvolt24/orders-backoffice/internal/analytics"
	"github.com/Gunvolt24/orders-backoffice/internal/ports"
)

// Проверка, что ReportStore удовлетворяет порту.
var _ ports.ReportStore = (*ReportStore)(nil)

// ReportStore — последние удачные отчёты по длине периода.
type ReportStore struct {
	cache *LRUCacheTTL[int, analytics.Report]
}

// NewReportStore — capacity — сколько разных периодов хранить, ttl — сколько отчёт считается пригодным для показа.
func NewReportStore(capacity int, ttl time.Duration) *ReportStore {
	return &ReportStore{cache: NewLRUCacheTTL[int, analytics.Report](capacity, ttl, cloneReport)}
}

// Get — последний удачный отчёт за periodDays.
func (s *ReportStore) Get(_ context.Context, periodDays int) (analytics.Report, bool) {
	return s.cache.Get(periodDays)
}

// Set — запомнить отчёт как последний удачный.
func (s *ReportStore) Set(_ context.Context, periodDays int, report analytics.Report) error {
	s.cache.Set(periodDays, report)
	return nil
}

// cloneReport — копия отчёта, чтобы внешние изменения не отражались на данных внутри хранилища.
func cloneReport(r analytics.Report) analytics.Report {
	r.Buckets = slices.Clone(r.Buckets)
	r.TopProducts = slices.Clone(r.TopProducts)
	return r
}
