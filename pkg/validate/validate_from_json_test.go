package validate

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestValidateOrderFromJSON_OK(t *testing.T) {
	ctx := context.Background()
	validator := NewOrderValidator()

	order, err := ValidateOrderFromJSON(ctx, validator, []byte(minimalValidOrderJSON("1001", "user@example.com")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ID != "1001" || order.Total != 1100 || len(order.Lines) != 1 {
		t.Fatalf("unexpected order: %+v", order)
	}
}

func TestValidateOrderFromJSON_UnknownField(t *testing.T) {
	ctx := context.Background()
	validator := NewOrderValidator()

	raw := `{"unknown":"x",` + minimalValidOrderJSON("1002", "user@example.com")[1:]
	_, err := ValidateOrderFromJSON(ctx, validator, []byte(raw))
	if !errors.Is(err, ErrInvalidJSON) {
		t.Fatalf("expected invalid json error, got: %v", err)
	}
}

func TestValidateOrderFromJSON_TrailingData(t *testing.T) {
	ctx := context.Background()
	validator := NewOrderValidator()

	raw := minimalValidOrderJSON("1003", "user@example.com") + "{}"
	_, err := ValidateOrderFromJSON(ctx, validator, []byte(raw))
	if err == nil || !strings.Contains(err.Error(), "trailing data") {
		t.Fatalf("expected trailing data error, got: %v", err)
	}
}

func TestValidateOrderFromJSON_DomainError(t *testing.T) {
	ctx := context.Background()
	validator := NewOrderValidator()

	_, err := ValidateOrderFromJSON(ctx, validator, []byte(minimalValidOrderJSON("1004", "not-an-email")))
	if !errors.Is(err, ErrInvalidOrder) {
		t.Fatalf("expected domain validation error, got %v", err)
	}
}

func TestDecodeStrict_Garbage(t *testing.T) {
	var v struct{}
	if err := DecodeStrict([]byte("{"), &v); !errors.Is(err, ErrInvalidJSON) {
		t.Fatalf("expected ErrInvalidJSON, got %v", err)
	}
}

// ---- helpers ----

func minimalValidOrderJSON(id, email string) string {
	return `{
  "id": "` + id + `",
  "customer": {"name":"Anna","phone":"+7 900","email":"` + email + `","address":"Moscow"},
  "lines": [{"product_id":"p-1","name":"Mug","category":"kitchen","unit_price":500,"quantity":2}],
  "subtotal": 1000,
  "shipping_fee": 200,
  "discount": 100,
  "total": 1100,
  "status": "pending",
  "payment_status": "pending",
  "payment_method": "cod",
  "placed_at": "2026-05-01T10:00:00Z",
  "updated_at": "2026-05-01T10:00:00Z"
}`
}
