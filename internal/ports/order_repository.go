package ports

import (
	"context"
	"errors"
	"time"

	"github.com/Gunvolt24/orders-backoffice/internal/domain"
)

// ErrStatusConflict — статус заказа в хранилище уже не совпадает с ожидаемым (конкурентное изменение).
var ErrStatusConflict = errors.New("order status changed concurrently")

// ListFilter — ограничения выборки заказов. From/To — полуинтервал [From, To) по placed_at.
// Page считается с 1; Limit <= 0 означает лимит хранилища по умолчанию.
type ListFilter struct {
	From  *time.Time
	To    *time.Time
	Page  int
	Limit int
}

// Pagination — метаданные страницы выборки.
type Pagination struct {
	Page  int
	Limit int
	Total int
}

// ListResult — страница заказов и её метаданные.
type ListResult struct {
	Orders     []domain.Order
	Pagination Pagination
}

// StatusChange — команда сохранения перехода статуса. From — ожидаемый текущий статус.
type StatusChange struct {
	OrderID      string
	From         domain.Status
	To           domain.Status
	TrackingCode string
	UpdatedAt    time.Time
}

// OrderRepository — хранилище заказов.
type OrderRepository interface {
	// ListOrders — заказы по фильтру, упорядоченные по placed_at.
	ListOrders(ctx context.Context, filter ListFilter) (ListResult, error)
	// GetByID — заказ по идентификатору; (nil, nil), если его нет.
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	// SetStatus — записать переход; ErrStatusConflict, если статус успел измениться,
	// domain.ErrOrderNotFound, если заказа нет.
	SetStatus(ctx context.Context, change StatusChange) error
	// Save — сохранить новый заказ витрины; повторный Save того же ID ничего не меняет.
	Save(ctx context.Context, order *domain.Order) error
	// SetPaymentStatus — обновить статус оплаты. Если заказа ещё нет, статус откладывается
	// и применяется при его сохранении; тогда applied=false.
	SetPaymentStatus(ctx context.Context, id string, status domain.PaymentStatus, at time.Time) (applied bool, err error)
}
