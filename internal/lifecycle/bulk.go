package lifecycle

import "github.com/Gunvolt24/orders-backoffice/internal/domain"

// Outcome — результат перехода для одного заказа из пачки.
// При успехе Order содержит новое состояние, при ошибке Err != nil, а Order — исходный заказ.
type Outcome struct {
	OrderID string
	Order   domain.Order
	Err     error
}

// OK — переход применён.
func (o Outcome) OK() bool { return o.Err == nil }

// BulkResult — исходы массового перехода в порядке входа; len(Outcomes) == len(orders).
type BulkResult struct {
	Target   domain.Status
	Outcomes []Outcome
}

// Succeeded — количество успешных исходов.
func (r BulkResult) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.OK() {
			n++
		}
	}
	return n
}

// Failed — количество отклонённых исходов.
func (r BulkResult) Failed() int { return len(r.Outcomes) - r.Succeeded() }

// ApplyBulk — применить Apply к каждому заказу независимо; пачка никогда не прерывается на ошибке.
func (m *Machine) ApplyBulk(orders []domain.Order, target domain.Status) BulkResult {
	res := BulkResult{Target: target, Outcomes: make([]Outcome, 0, len(orders))}
	for i := range orders {
		next, err := m.Apply(orders[i], target)
		if err != nil {
			res.Outcomes = append(res.Outcomes, Outcome{OrderID: orders[i].ID, Order: orders[i].Clone(), Err: err})
			continue
		}
		res.Outcomes = append(res.Outcomes, Outcome{OrderID: orders[i].ID, Order: next})
	}
	return res
}
