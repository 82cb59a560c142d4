package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Gunvolt24/orders-backoffice/internal/domain"
	"github.com/Gunvolt24/orders-backoffice/internal/ports"
	"github.com/Gunvolt24/orders-backoffice/pkg/validate"
)

// Проверка, что OrderIngestService удовлетворяет порту потребителя.
var _ ports.OrderIngestor = (*OrderIngestService)(nil)

// PaymentUpdate — сообщение о смене статуса оплаты.
type PaymentUpdate struct {
	OrderID       string               `json:"order_id"`
	PaymentStatus domain.PaymentStatus `json:"payment_status"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// OrderIngestService — приём событий витрины: размещённые заказы и статусы оплаты.
// Любая проблема с данными возвращается обёрнутой в validate.ErrInvalidOrder:
// такие сообщения потребитель коммитит и пропускает; остальные ошибки считаются временными.
type OrderIngestService struct {
	repo      ports.OrderRepository
	validator ports.OrderValidator
	log       ports.Logger
	now       func() time.Time
}

// NewOrderIngestService — DI-конструктор.
func NewOrderIngestService(repo ports.OrderRepository, validator ports.OrderValidator, log ports.Logger) *OrderIngestService {
	return &OrderIngestService{repo: repo, validator: validator, log: log, now: time.Now}
}

// SaveFromMessage — сохранить заказ, пришедший из топика размещения (raw JSON).
// Шаги:
//  1. строгий парсинг JSON (DisallowUnknownFields);
//  2. значения по умолчанию: status=pending, payment_status=pending;
//  3. новый заказ обязан быть в статусе pending;
//  4. доменная валидация, включая инвариант сумм;
//  5. вставка в БД; повторная доставка уже сохранённого заказа ничего не меняет.
func (s *OrderIngestService) SaveFromMessage(ctx context.Context, raw []byte) error {
	var order domain.Order
	if err := validate.DecodeStrict(raw, &order); err != nil {
		s.log.Warnf(ctx, "invalid order message err=%v", err)
		return fmt.Errorf("%w: %w", validate.ErrInvalidOrder, err)
	}

	if order.Status == "" {
		order.Status = domain.StatusPending
	}
	if order.PaymentStatus == "" {
		order.PaymentStatus = domain.PaymentPending
	}
	if order.UpdatedAt.IsZero() {
		order.UpdatedAt = order.PlacedAt
	}
	if order.Status != domain.StatusPending {
		s.log.Warnf(ctx, "placed order must be pending order_id=%s status=%s", order.ID, order.Status)
		return fmt.Errorf("%w: placed order %s has status %s", validate.ErrInvalidOrder, order.ID, order.Status)
	}
	if order.TrackingCode != "" {
		return fmt.Errorf("%w: placed order %s already has a tracking code", validate.ErrInvalidOrder, order.ID)
	}

	if err := s.validator.Validate(ctx, &order); err != nil {
		s.log.Warnf(ctx, "validation failed order_id=%s err=%v", order.ID, err)
		return fmt.Errorf("validation failed: %w", err)
	}

	if err := s.repo.Save(ctx, &order); err != nil {
		s.log.Errorf(ctx, "repo.Save failed order_id=%s err=%v", order.ID, err)
		return fmt.Errorf("failed to save order: %w", err)
	}

	s.log.Infof(ctx, "order saved id=%s lines=%d total=%d", order.ID, len(order.Lines), order.Total)
	return nil
}

// ApplyPaymentUpdate — применить сообщение об оплате. Статус заказа при этом не меняется.
// Оплата может прийти раньше заказа (топики не упорядочены между собой): тогда она
// откладывается в хранилище, а не отбрасывается.
func (s *OrderIngestService) ApplyPaymentUpdate(ctx context.Context, raw []byte) error {
	var upd PaymentUpdate
	if err := validate.DecodeStrict(raw, &upd); err != nil {
		s.log.Warnf(ctx, "invalid payment message err=%v", err)
		return fmt.Errorf("%w: %w", validate.ErrInvalidOrder, err)
	}
	if upd.OrderID == "" {
		return fmt.Errorf("%w: payment update without order_id", validate.ErrInvalidOrder)
	}
	if !upd.PaymentStatus.Valid() {
		return fmt.Errorf("%w: payment_status %q неизвестен", validate.ErrInvalidOrder, upd.PaymentStatus)
	}
	if upd.UpdatedAt.IsZero() {
		upd.UpdatedAt = s.now()
	}

	applied, err := s.repo.SetPaymentStatus(ctx, upd.OrderID, upd.PaymentStatus, upd.UpdatedAt)
	if err != nil {
		s.log.Errorf(ctx, "repo.SetPaymentStatus failed order_id=%s err=%v", upd.OrderID, err)
		return fmt.Errorf("failed to update payment: %w", err)
	}
	if !applied {
		// Заказ ещё не пришёл из топика размещения: оплата применится при его сохранении.
		s.log.Infof(ctx, "payment status parked order_id=%s payment_status=%s", upd.OrderID, upd.PaymentStatus)
		return nil
	}

	s.log.Infof(ctx, "payment status updated order_id=%s payment_status=%s", upd.OrderID, upd.PaymentStatus)
	return nil
}
