package ports

import (
	"context"

	"github.com/Gunvolt24/orders-backoffice/internal/analytics"
)

// ReportStore — последние успешно посчитанные отчёты по длине периода.
// Реализация потокобезопасна и возвращает копии.
type ReportStore interface {
	Get(ctx context.Context, periodDays int) (analytics.Report, bool)
	Set(ctx context.Context, periodDays int, report analytics.Report) error
}
