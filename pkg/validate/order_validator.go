package validate

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/Gunvolt24/orders-backoffice/internal/domain"
	"github.com/Gunvolt24/orders-backoffice/internal/ports"
)

// Проверка, что OrderValidator удовлетворяет интерфейсу OrderValidator.
var _ ports.OrderValidator = (*OrderValidator)(nil)

// ErrInvalidOrder — базовая (sentinel error) ошибка валидации.
var ErrInvalidOrder = errors.New("order validation failed")

// minPlacedAt — заказы раньше этой даты считаются битыми данными.
var minPlacedAt = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// OrderValidator — проверка заказа на границе приёма данных: обязательные поля,
// допустимые статусы, строки заказа и инвариант total = subtotal + shipping_fee − discount.
type OrderValidator struct{}

// NewOrderValidator — конструктор OrderValidator.
// Возвращает ErrInvalidOrder (с обёрнутой причиной) при любой проблеме.
func NewOrderValidator() *OrderValidator { return &OrderValidator{} }

// Validate — проверяет корректность полей заказа.
func (v *OrderValidator) Validate(_ context.Context, order *domain.Order) error {
	if err := v.validateCore(order); err != nil {
		return err
	}
	if err := v.validateCustomer(&order.Customer); err != nil {
		return err
	}
	if err := v.validateLines(order.Lines); err != nil {
		return err
	}
	return v.validateMoney(order)
}

// validateCore — идентификатор, статусы, дата размещения.
func (v *OrderValidator) validateCore(order *domain.Order) error {
	if order == nil {
		return fmt.Errorf("%w: заказ не может быть nil", ErrInvalidOrder)
	}
	if order.ID == "" {
		return fmt.Errorf("%w: id обязателен", ErrInvalidOrder)
	}
	if !order.Status.Valid() {
		return fmt.Errorf("%w: status %q неизвестен", ErrInvalidOrder, order.Status)
	}
	if !order.PaymentStatus.Valid() {
		return fmt.Errorf("%w: payment_status %q неизвестен", ErrInvalidOrder, order.PaymentStatus)
	}
	if order.PaymentMethod == "" {
		return fmt.Errorf("%w: payment_method обязателен", ErrInvalidOrder)
	}
	if order.PlacedAt.IsZero() || order.PlacedAt.Before(minPlacedAt) {
		return fmt.Errorf("%w: placed_at некорректен", ErrInvalidOrder)
	}
	if !order.UpdatedAt.IsZero() && order.UpdatedAt.Before(order.PlacedAt) {
		return fmt.Errorf("%w: updated_at раньше placed_at", ErrInvalidOrder)
	}
	return nil
}

// Валидация покупателя
func (v *OrderValidator) validateCustomer(c *domain.Customer) error {
	if c.Name == "" {
		return fmt.Errorf("%w: customer.name обязателен", ErrInvalidOrder)
	}
	if c.Email == "" && c.Phone == "" {
		return fmt.Errorf("%w: нужен customer.email или customer.phone", ErrInvalidOrder)
	}
	if c.Email != "" {
		if _, err := mail.ParseAddress(c.Email); err != nil {
			return fmt.Errorf("%w: customer.email некорректен", ErrInvalidOrder)
		}
	}
	return nil
}

// Валидация строк заказа
func (v *OrderValidator) validateLines(lines []domain.OrderLine) error {
	if len(lines) == 0 {
		return fmt.Errorf("%w: lines не должен быть пустым", ErrInvalidOrder)
	}

	for i := range lines {
		line := &lines[i]
		if line.ProductID == "" {
			return fmt.Errorf("%w: lines[%d].product_id обязателен", ErrInvalidOrder, i)
		}
		if line.Name == "" {
			return fmt.Errorf("%w: lines[%d].name обязателен", ErrInvalidOrder, i)
		}
		if line.UnitPrice < 0 {
			return fmt.Errorf("%w: lines[%d].unit_price должен быть неотрицательным", ErrInvalidOrder, i)
		}
		if line.Quantity <= 0 {
			return fmt.Errorf("%w: lines[%d].quantity должен быть положительным", ErrInvalidOrder, i)
		}
	}
	return nil
}

// Валидация денежных полей
func (v *OrderValidator) validateMoney(order *domain.Order) error {
	if order.Subtotal < 0 || order.ShippingFee < 0 || order.Discount < 0 {
		return fmt.Errorf("%w: суммы должны быть неотрицательными", ErrInvalidOrder)
	}

	var lines int64
	for _, l := range order.Lines {
		lines += l.LineTotal()
	}
	if order.Subtotal != lines {
		return fmt.Errorf("%w: subtotal=%d не равен сумме строк %d", ErrInvalidOrder, order.Subtotal, lines)
	}
	if order.Discount > order.Subtotal+order.ShippingFee {
		return fmt.Errorf("%w: discount больше суммы заказа", ErrInvalidOrder)
	}
	if !order.CheckTotals() {
		return fmt.Errorf("%w: total=%d, ожидается %d", ErrInvalidOrder, order.Total, order.ExpectedTotal())
	}
	return nil
}
