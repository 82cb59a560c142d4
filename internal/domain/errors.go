package domain

import (
	"errors"
	"fmt"
)

// Базовые (sentinel) ошибки таксономии; конкретные типы ниже матчатся на них через errors.Is.
var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrFetch             = errors.New("order fetch failed")
	ErrValidation        = errors.New("validation failed")
	ErrOrderNotFound     = errors.New("order not found")
)

// TransitionError — недопустимый переход статуса. Исправимо выбором другого целевого статуса.
type TransitionError struct {
	OrderID string
	From    Status
	To      Status
	Reason  string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: order=%s %s -> %s: %s", ErrInvalidTransition, e.OrderID, e.From, e.To, e.Reason)
}

func (e *TransitionError) Is(target error) bool { return target == ErrInvalidTransition }

// FetchError — сбой внешнего поставщика заказов (сеть, БД). Исправимо повтором.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrFetch, e.Op, e.Err)
}

func (e *FetchError) Is(target error) bool { return target == ErrFetch }

func (e *FetchError) Unwrap() error { return e.Err }

// NewFetchError — обернуть ошибку коллаборатора; nil остаётся nil.
func NewFetchError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &FetchError{Op: op, Err: err}
}

// ValidationError — некорректная спецификация (QuerySpec, период и т.д.), отклоняется до работы с данными.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s: %s", ErrValidation, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s=%q: %s", ErrValidation, e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NewValidationError — конструктор ValidationError.
func NewValidationError(field, value, reason string) error {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}
