//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/Gunvolt24/orders-backoffice/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// UniqSuffix — короткий случайный суффикс для идентификаторов.
func UniqSuffix() string { return randHex(6) }

// MakeOrder — валидный заказ в статусе pending с одной позицией; опции применяются по порядку.
func MakeOrder(opts ...func(*domain.Order)) domain.Order {
	now := time.Now().UTC().Truncate(time.Microsecond)

	o := domain.Order{
		ID: "ord-" + UniqSuffix(),
		Customer: domain.Customer{
			Name:    "John Smith",
			Phone:   "+1-202-555-01",
			Email:   "john@example.com",
			Address: "Main st 1, Metropolis",
		},
		Lines: []domain.OrderLine{
			{ProductID: "sku-1", Name: "Widget", Category: "tools", UnitPrice: 100, Quantity: 1},
		},
		Subtotal:      100,
		ShippingFee:   10,
		Discount:      0,
		Total:         110,
		Status:        domain.StatusPending,
		PaymentStatus: domain.PaymentPending,
		PaymentMethod: "card",
		PlacedAt:      now,
		UpdatedAt:     now,
	}

	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// WithID — задать идентификатор заказа.
func WithID(id string) func(*domain.Order) {
	return func(o *domain.Order) { o.ID = id }
}

// WithStatus — задать статус заказа.
func WithStatus(s domain.Status) func(*domain.Order) {
	return func(o *domain.Order) { o.Status = s }
}

// WithPlacedAt — задать момент оформления (UpdatedAt выравнивается).
func WithPlacedAt(t time.Time) func(*domain.Order) {
	return func(o *domain.Order) {
		o.PlacedAt = t
		o.UpdatedAt = t
	}
}

// WithLines — заменить позиции на n штук и пересчитать суммы.
func WithLines(n int) func(*domain.Order) {
	return func(o *domain.Order) {
		o.Lines = make([]domain.OrderLine, 0, n)
		var subtotal int64
		for i := 0; i < n; i++ {
			line := domain.OrderLine{
				ProductID: fmt.Sprintf("sku-%d", i+1),
				Name:      "Item",
				UnitPrice: int64(10 * (i + 1)),
				Quantity:  i + 1,
			}
			subtotal += line.LineTotal()
			o.Lines = append(o.Lines, line)
		}
		o.Subtotal = subtotal
		o.Total = o.ExpectedTotal()
	}
}
