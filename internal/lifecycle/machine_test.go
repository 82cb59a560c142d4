package lifecycle_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Gunvolt24/orders-backoffice/internal/domain"
	"github.com/Gunvolt24/orders-backoffice/internal/lifecycle"
)

var fixedNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

// seqCodes — детерминированный генератор кодов, считает вызовы.
type seqCodes struct{ calls int }

func (s *seqCodes) NewTrackingCode() string {
	s.calls++
	return fmt.Sprintf("TRK-%d", s.calls)
}

func newMachine(codes lifecycle.TrackingCodeGenerator) *lifecycle.Machine {
	return lifecycle.NewMachine(
		lifecycle.WithClock(func() time.Time { return fixedNow }),
		lifecycle.WithTrackingCodes(codes),
	)
}

func order(id string, status domain.Status) domain.Order {
	return domain.Order{ID: id, Status: status, UpdatedAt: fixedNow.Add(-time.Hour)}
}

func TestApply_TransitionTable(t *testing.T) {
	t.Parallel()

	all := domain.Statuses
	for _, from := range all {
		for _, to := range all {
			from, to := from, to
			t.Run(fmt.Sprintf("%s_to_%s", from, to), func(t *testing.T) {
				t.Parallel()

				m := newMachine(&seqCodes{})
				_, err := m.Apply(order("1", from), to)

				want := lifecycle.CanTransition(from, to)
				if want && err != nil {
					t.Fatalf("want allowed, got %v", err)
				}
				if !want && !errors.Is(err, domain.ErrInvalidTransition) {
					t.Fatalf("want ErrInvalidTransition, got %v", err)
				}
				if from.Terminal() && want {
					t.Fatalf("terminal status %s must not have outgoing transitions", from)
				}
			})
		}
	}
}

func TestApply_ForwardStepsAndCancel(t *testing.T) {
	t.Parallel()

	allowed := map[domain.Status][]domain.Status{
		domain.StatusPending:   {domain.StatusConfirmed, domain.StatusCancelled},
		domain.StatusConfirmed: {domain.StatusShipping, domain.StatusCancelled},
		domain.StatusShipping:  {domain.StatusDelivered, domain.StatusCancelled},
		domain.StatusDelivered: nil,
		domain.StatusCancelled: nil,
	}
	for from, want := range allowed {
		got := lifecycle.AllowedTargets(from)
		if fmt.Sprint(got) != fmt.Sprint(want) {
			t.Fatalf("AllowedTargets(%s) = %v, want %v", from, got, want)
		}
	}
}

func TestApply_PendingToShipping_Rejected(t *testing.T) {
	t.Parallel()

	m := newMachine(&seqCodes{})
	_, err := m.Apply(order("42", domain.StatusPending), domain.StatusShipping)

	var te *domain.TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("want TransitionError, got %v", err)
	}
	if te.OrderID != "42" || te.From != domain.StatusPending || te.To != domain.StatusShipping {
		t.Fatalf("unexpected error payload: %+v", te)
	}
}

func TestApply_PendingToDelivered_Rejected(t *testing.T) {
	t.Parallel()

	m := newMachine(&seqCodes{})
	if _, err := m.Apply(order("1", domain.StatusPending), domain.StatusDelivered); err == nil {
		t.Fatalf("pending -> delivered must be rejected")
	}
}

func TestApply_UnknownTarget_Rejected(t *testing.T) {
	t.Parallel()

	m := newMachine(&seqCodes{})
	if _, err := m.Apply(order("1", domain.StatusPending), domain.Status("lost")); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition for unknown target, got %v", err)
	}
}

func TestApply_ConfirmAssignsTrackingCodeOnce(t *testing.T) {
	t.Parallel()

	codes := &seqCodes{}
	m := newMachine(codes)

	confirmed, err := m.Apply(order("1", domain.StatusPending), domain.StatusConfirmed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if confirmed.TrackingCode != "TRK-1" {
		t.Fatalf("want tracking code TRK-1, got %q", confirmed.TrackingCode)
	}
	if !confirmed.UpdatedAt.Equal(fixedNow) {
		t.Fatalf("UpdatedAt must be set to now, got %v", confirmed.UpdatedAt)
	}

	shipping, err := m.Apply(confirmed, domain.StatusShipping)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shipping.TrackingCode != "TRK-1" || codes.calls != 1 {
		t.Fatalf("tracking code must not be regenerated: code=%q calls=%d", shipping.TrackingCode, codes.calls)
	}
}

func TestApply_ConfirmKeepsExistingTrackingCode(t *testing.T) {
	t.Parallel()

	codes := &seqCodes{}
	m := newMachine(codes)

	o := order("1", domain.StatusPending)
	o.TrackingCode = "EXISTING"

	got, err := m.Apply(o, domain.StatusConfirmed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TrackingCode != "EXISTING" || codes.calls != 0 {
		t.Fatalf("existing code must be kept: code=%q calls=%d", got.TrackingCode, codes.calls)
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	m := newMachine(&seqCodes{})
	in := order("1", domain.StatusPending)
	in.Lines = []domain.OrderLine{{ProductID: "p1", Quantity: 1}}

	out, err := m.Apply(in, domain.StatusConfirmed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out.Lines[0].Quantity = 99

	if in.Status != domain.StatusPending || in.TrackingCode != "" || in.Lines[0].Quantity != 1 {
		t.Fatalf("input order was mutated: %+v", in)
	}
}

func TestUUIDTrackingCodes_Format(t *testing.T) {
	t.Parallel()

	code := lifecycle.UUIDTrackingCodes{}.NewTrackingCode()
	if len(code) != len("TRK-")+12 || code[:4] != "TRK-" {
		t.Fatalf("unexpected tracking code format: %q", code)
	}
}
