// Package query — фильтрация, сортировка и постраничная нарезка снимка заказов.
// Все функции чистые: каждый вызов пересчитывает результат из переданных заказов и спецификации.
package query

import (
	"strings"

	"github.com/Gunvolt24/orders-backoffice/internal/domain"
)

// All — значение фильтра «без ограничения».
const All = "all"

// SortField — поле сортировки.
type SortField string

const (
	SortNone     SortField = ""
	SortID       SortField = "id"
	SortCustomer SortField = "customer"
	SortPlacedAt SortField = "placed_at"
	SortTotal    SortField = "total"
	// SortStatus — лексикографически по токену статуса, а не по порядку workflow.
	SortStatus SortField = "status"
)

// SortDirection — направление сортировки.
type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// Spec — спецификация выборки (фильтры + сортировка).
type Spec struct {
	SearchText    string
	Status        string
	PaymentStatus string
	PaymentMethod string
	SortField     SortField
	SortDirection SortDirection
}

// Validate — проверка спецификации до обращения к данным.
func (s Spec) Validate() error {
	switch s.SortField {
	case SortNone, SortID, SortCustomer, SortPlacedAt, SortTotal, SortStatus:
	default:
		return domain.NewValidationError("sort", string(s.SortField), "unknown sort field")
	}
	switch s.SortDirection {
	case "", Asc, Desc:
	default:
		return domain.NewValidationError("dir", string(s.SortDirection), "unknown sort direction")
	}
	if active(s.Status) && !domain.Status(s.Status).Valid() {
		return domain.NewValidationError("status", s.Status, "unknown order status")
	}
	if active(s.PaymentStatus) && !domain.PaymentStatus(s.PaymentStatus).Valid() {
		return domain.NewValidationError("payment_status", s.PaymentStatus, "unknown payment status")
	}
	return nil
}

// Normalize — привести спецификацию к каноничному виду (пробелы, регистр токенов).
func (s Spec) Normalize() Spec {
	s.SearchText = strings.TrimSpace(s.SearchText)
	s.Status = strings.ToLower(strings.TrimSpace(s.Status))
	s.PaymentStatus = strings.ToLower(strings.TrimSpace(s.PaymentStatus))
	s.PaymentMethod = strings.TrimSpace(s.PaymentMethod)
	s.SortField = SortField(strings.ToLower(strings.TrimSpace(string(s.SortField))))
	s.SortDirection = SortDirection(strings.ToLower(strings.TrimSpace(string(s.SortDirection))))
	return s
}

// active — фильтр задан и не равен "all".
func active(v string) bool {
	return v != "" && !strings.EqualFold(v, All)
}
