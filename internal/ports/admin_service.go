package ports

import (
	"context"

	"github.com/Gunvolt24/orders-backoffice/internal/analytics"
	"github.com/Gunvolt24/orders-backoffice/internal/domain"
	"github.com/Gunvolt24/orders-backoffice/internal/lifecycle"
	"github.com/Gunvolt24/orders-backoffice/internal/query"
)

// OrderAdminService — операции back-office над заказами.
type OrderAdminService interface {
	ListOrders(ctx context.Context, spec query.Spec, page, pageSize int) (query.Page, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, target domain.Status) (domain.Order, error)
	BulkUpdateStatus(ctx context.Context, ids []string, target domain.Status) (lifecycle.BulkResult, error)
	ExportOrders(ctx context.Context, spec query.Spec) ([]domain.Order, error)
}

// AnalyticsResult — отчёт и признак того, что он взят из последнего удачного расчёта.
// При Stale в Err лежит причина, по которой свежий отчёт построить не удалось.
type AnalyticsResult struct {
	Report analytics.Report
	Stale  bool
	Err    error
}

// AnalyticsReader — построение аналитического отчёта за период.
type AnalyticsReader interface {
	Report(ctx context.Context, periodDays int) (AnalyticsResult, error)
}

// OrderIngestor — приём событий витрины (размещение заказа, смена статуса оплаты).
type OrderIngestor interface {
	SaveFromMessage(ctx context.Context, raw []byte) error
	ApplyPaymentUpdate(ctx context.Context, raw []byte) error
}
