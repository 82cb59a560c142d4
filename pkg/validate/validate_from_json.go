package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Gunvolt24/orders-backoffice/internal/domain"
	"github.com/Gunvolt24/orders-backoffice/internal/ports"
)

// ErrInvalidJSON — сообщение не разбирается как один JSON-объект заказа.
var ErrInvalidJSON = errors.New("invalid json")

// DecodeStrict — строгий разбор одного JSON-объекта в v: неизвестные поля и данные после объекта запрещены.
func DecodeStrict(raw []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return fmt.Errorf("%w: trailing data", ErrInvalidJSON)
	}
	return nil
}

// ValidateOrderFromJSON — разбор и валидация заказа из JSON.
func ValidateOrderFromJSON(ctx context.Context, validator ports.OrderValidator, raw []byte) (*domain.Order, error) {
	var order domain.Order
	if err := DecodeStrict(raw, &order); err != nil {
		return nil, err
	}
	if err := validator.Validate(ctx, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
