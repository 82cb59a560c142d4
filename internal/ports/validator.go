package ports

import (
	"context"

	"github.com/Gunvolt24/orders-backoffice/internal/domain"
)

// OrderValidator — доменные правила заказа: обязательные поля, позиции, инвариант сумм.
// Применяется на каждой границе: приём из Kafka, выборка снимка из БД, проверка файлов выгрузки.
// Отказ оборачивает validate.ErrInvalidOrder.
type OrderValidator interface {
	Validate(ctx context.Context, order *domain.Order) error
}
