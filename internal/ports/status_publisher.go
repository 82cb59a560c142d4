package ports

import (
	"context"
	"time"

	"github.com/Gunvolt24/orders-backoffice/internal/domain"
)

// StatusChangedEvent — событие о сохранённом переходе статуса.
type StatusChangedEvent struct {
	OrderID      string        `json:"order_id"`
	From         domain.Status `json:"from"`
	To           domain.Status `json:"to"`
	TrackingCode string        `json:"tracking_code,omitempty"`
	ChangedAt    time.Time     `json:"changed_at"`
}

// StatusEventPublisher — публикация событий смены статуса для внешних потребителей.
type StatusEventPublisher interface {
	PublishStatusChanged(ctx context.Context, event StatusChangedEvent) error
	Close() error
}
