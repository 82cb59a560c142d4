package domain

import (
	"strings"
	"time"
)

// Status — статус жизненного цикла заказа.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipping  Status = "shipping"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// Statuses — все известные статусы в порядке workflow.
var Statuses = []Status{StatusPending, StatusConfirmed, StatusShipping, StatusDelivered, StatusCancelled}

// Valid — статус входит в известный набор.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusShipping, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// Terminal — из статуса нет переходов (delivered, cancelled).
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// PaymentStatus — состояние оплаты; независимая от Status ось.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// Valid — статус оплаты входит в известный набор.
func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return true
	default:
		return false
	}
}

// PaymentMethod — тег способа оплаты (cod, card, bank_transfer, ...).
type PaymentMethod string

// Customer — контактные данные покупателя; не меняются после оформления.
type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// OrderLine — позиция заказа. Суммы в минимальных денежных единицах.
type OrderLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Category  string `json:"category,omitempty"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	ImageURL  string `json:"image_url,omitempty"`
}

// LineTotal — unitPrice × quantity.
func (l OrderLine) LineTotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// Order — заказ. Total всегда равен Subtotal + ShippingFee − Discount.
type Order struct {
	ID            string        `json:"id"`
	TrackingCode  string        `json:"tracking_code,omitempty"`
	Customer      Customer      `json:"customer"`
	Lines         []OrderLine   `json:"lines"`
	Subtotal      int64         `json:"subtotal"`
	ShippingFee   int64         `json:"shipping_fee"`
	Discount      int64         `json:"discount"`
	Total         int64         `json:"total"`
	Status        Status        `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Notes         string        `json:"notes,omitempty"`
	PlacedAt      time.Time     `json:"placed_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// ExpectedTotal — сумма, которой обязан быть равен Total.
func (o *Order) ExpectedTotal() int64 {
	return o.Subtotal + o.ShippingFee - o.Discount
}

// CheckTotals — проверка инварианта денежной разбивки.
func (o *Order) CheckTotals() bool {
	return o.Total == o.ExpectedTotal()
}

// Clone — глубокая копия заказа (позиции копируются).
func (o *Order) Clone() Order {
	cloned := *o
	if o.Lines != nil {
		cloned.Lines = append([]OrderLine(nil), o.Lines...)
	}
	return cloned
}

// ParseStatus — разбор статуса из внешнего ввода (регистр и пробелы игнорируются).
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", NewValidationError("status", raw, "unknown order status")
	}
	return s, nil
}

// ParsePaymentStatus — разбор статуса оплаты из внешнего ввода.
func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	p := PaymentStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !p.Valid() {
		return "", NewValidationError("payment_status", raw, "unknown payment status")
	}
	return p, nil
}
