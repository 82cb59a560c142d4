package query

import (
	"cmp"
	"iter"
	"slices"
	"strings"

	"github.com/Gunvolt24/orders-backoffice/internal/domain"
)

// Apply — отфильтровать и отсортировать заказы по спецификации.
// Фильтры конъюнктивны; сортировка стабильна (при равенстве сохраняется исходный порядок).
// Входной срез не изменяется. Пустой результат — не ошибка.
func Apply(orders []domain.Order, spec Spec) ([]domain.Order, error) {
	spec = spec.Normalize()
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	needle := strings.ToLower(spec.SearchText)
	view := make([]domain.Order, 0, len(orders))
	for i := range orders {
		if matches(&orders[i], spec, needle) {
			view = append(view, orders[i])
		}
	}

	if cmpFn := comparator(spec.SortField); cmpFn != nil {
		desc := spec.SortDirection == Desc
		slices.SortStableFunc(view, func(a, b domain.Order) int {
			if desc {
				return cmpFn(b, a)
			}
			return cmpFn(a, b)
		})
	}
	return view, nil
}

// IDs — идентификаторы заказов представления в его порядке.
func IDs(view []domain.Order) []string {
	ids := make([]string, len(view))
	for i := range view {
		ids[i] = view[i].ID
	}
	return ids
}

// Each — стабильный перечислимый обход представления для внешних экспортёров.
func Each(view []domain.Order) iter.Seq2[int, domain.Order] {
	return func(yield func(int, domain.Order) bool) {
		for i := range view {
			if !yield(i, view[i]) {
				return
			}
		}
	}
}

func matches(o *domain.Order, spec Spec, needle string) bool {
	if active(spec.Status) && string(o.Status) != spec.Status {
		return false
	}
	if active(spec.PaymentStatus) && string(o.PaymentStatus) != spec.PaymentStatus {
		return false
	}
	if active(spec.PaymentMethod) && string(o.PaymentMethod) != spec.PaymentMethod {
		return false
	}
	if needle == "" {
		return true
	}
	for _, field := range []string{o.Customer.Name, o.Customer.Email, o.Customer.Phone, o.ID, o.TrackingCode} {
		if field != "" && strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func comparator(field SortField) func(a, b domain.Order) int {
	switch field {
	case SortID:
		return compareIDs
	case SortCustomer:
		return func(a, b domain.Order) int {
			return strings.Compare(strings.ToLower(a.Customer.Name), strings.ToLower(b.Customer.Name))
		}
	case SortPlacedAt:
		return func(a, b domain.Order) int { return a.PlacedAt.Compare(b.PlacedAt) }
	case SortTotal:
		return func(a, b domain.Order) int { return cmp.Compare(a.Total, b.Total) }
	case SortStatus:
		return func(a, b domain.Order) int { return strings.Compare(string(a.Status), string(b.Status)) }
	default:
		return nil
	}
}

// compareIDs — числовые идентификаторы сравниваются как числа, остальные лексикографически.
func compareIDs(a, b domain.Order) int {
	an, aok := numeric(a.ID)
	bn, bok := numeric(b.ID)
	if aok && bok {
		if c := cmp.Compare(len(an), len(bn)); c != 0 {
			return c
		}
		return strings.Compare(an, bn)
	}
	return strings.Compare(a.ID, b.ID)
}

// numeric — ID из одних цифр; возвращает его без ведущих нулей.
func numeric(id string) (string, bool) {
	if id == "" {
		return "", false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	trimmed := strings.TrimLeft(id, "0")
	if trimmed == "" {
		trimmed = "0"
	}
	return trimmed, true
}
