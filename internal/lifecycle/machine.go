// Package lifecycle — машина статусов заказа: проверка и применение одиночных и массовых переходов.
// Пакет не имеет побочных эффектов: возвращает новое состояние, сохранение делает вызывающий слой.
package lifecycle

import (
	"slices"
	"strings"
	"time"

	"github.com/Gunvolt24/orders-backoffice/internal/domain"
	"github.com/google/uuid"
)

// transitions — допустимые переходы за один шаг.
var transitions = map[domain.Status][]domain.Status{
	domain.StatusPending:   {domain.StatusConfirmed, domain.StatusCancelled},
	domain.StatusConfirmed: {domain.StatusShipping, domain.StatusCancelled},
	domain.StatusShipping:  {domain.StatusDelivered, domain.StatusCancelled},
}

// TrackingCodeGenerator — источник трекинг-кодов. Формат кода — забота внешнего коллаборатора.
type TrackingCodeGenerator interface {
	NewTrackingCode() string
}

// UUIDTrackingCodes — генератор по умолчанию: "TRK-" + 12 hex-символов из UUIDv4.
type UUIDTrackingCodes struct{}

func (UUIDTrackingCodes) NewTrackingCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "TRK-" + strings.ToUpper(raw[:12])
}

// Machine — машина статусов.
type Machine struct {
	now   func() time.Time
	codes TrackingCodeGenerator
}

// Option — функциональная опция Machine.
type Option func(*Machine)

// WithClock — подменить источник времени (для тестов).
func WithClock(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

// WithTrackingCodes — подменить генератор трекинг-кодов.
func WithTrackingCodes(g TrackingCodeGenerator) Option {
	return func(m *Machine) { m.codes = g }
}

// NewMachine — конструктор; по умолчанию time.Now и UUIDTrackingCodes.
func NewMachine(opts ...Option) *Machine {
	m := &Machine{now: time.Now, codes: UUIDTrackingCodes{}}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CanTransition — разрешён ли переход from -> to за один шаг.
func CanTransition(from, to domain.Status) bool {
	return slices.Contains(transitions[from], to)
}

// AllowedTargets — статусы, достижимые из from за один шаг (копия).
func AllowedTargets(from domain.Status) []domain.Status {
	return slices.Clone(transitions[from])
}

// Apply — применить переход к копии заказа.
// Отклоняет переход из терминального статуса и любой переход не на один шаг по таблице.
// При входе в confirmed без трекинг-кода присваивает новый код; существующий код не перегенерируется.
func (m *Machine) Apply(order domain.Order, target domain.Status) (domain.Order, error) {
	from := order.Status

	switch {
	case !target.Valid():
		return domain.Order{}, &domain.TransitionError{OrderID: order.ID, From: from, To: target, Reason: "unknown target status"}
	case from.Terminal():
		return domain.Order{}, &domain.TransitionError{OrderID: order.ID, From: from, To: target, Reason: "order is in terminal status"}
	case !CanTransition(from, target):
		return domain.Order{}, &domain.TransitionError{OrderID: order.ID, From: from, To: target, Reason: "target is not reachable in one step"}
	}

	next := order.Clone()
	next.Status = target
	next.UpdatedAt = m.now()
	if target == domain.StatusConfirmed && next.TrackingCode == "" {
		next.TrackingCode = m.codes.NewTrackingCode()
	}
	return next, nil
}
