package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gunvolt24/orders-backoffice/internal/ports"
)

// InputFormat — формат выгрузки заказов.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"  // один объект или массив объектов
	FormatJSONL InputFormat = "jsonl" // заказ на строку (так отдаёт /admin/orders/export)
)

// Summary — итог проверки выгрузки. Errors — первые maxReportedErrors отказов;
// Line — номер строки для JSONL или позиция в массиве (с 1) для JSON.
type Summary struct {
	Valid   int
	Invalid int
	Errors  []LineError
}

// LineError — отказ конкретной записи.
type LineError struct {
	Line int
	Err  error
}

const maxReportedErrors = 20

func (s Summary) String() string { return fmt.Sprintf("%d valid / %d invalid", s.Valid, s.Invalid) }

func (s *Summary) reject(line int, err error) {
	s.Invalid++
	if len(s.Errors) < maxReportedErrors {
		s.Errors = append(s.Errors, LineError{Line: line, Err: err})
	}
}

// DetectFormat — формат по расширению файла; неизвестное расширение считается JSON.
func DetectFormat(filePath string) InputFormat {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".jsonl", ".ndjson":
		return FormatJSONL
	default:
		return FormatJSON
	}
}

// ValidateFile — проверяет файл выгрузки и пишет канонический JSON валидных заказов в ow (по строке на заказ).
func ValidateFile(ctx context.Context, validator ports.OrderValidator, filePath string, format InputFormat, ow io.Writer) (Summary, error) {
	if format == FormatAuto || format == "" {
		format = DetectFormat(filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return Summary{}, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	return ValidateReader(ctx, validator, file, format, ow)
}

// ValidateReader — то же, что ValidateFile, для произвольного источника; format должен быть задан явно.
// Для одиночного JSON-объекта ошибка валидации возвращается как ошибка; в остальных случаях
// невалидные записи только попадают в Summary.
func ValidateReader(ctx context.Context, validator ports.OrderValidator, ir io.Reader, format InputFormat, ow io.Writer) (Summary, error) {
	switch format {
	case FormatJSONL:
		return ValidateJSONLStream(ctx, validator, ir, ow)
	case FormatJSON:
		raw, err := io.ReadAll(ir)
		if err != nil {
			return Summary{}, fmt.Errorf("read input: %w", err)
		}
		if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '[' {
			return validateArray(ctx, validator, trimmed, ow)
		}
		order, err := ValidateOrderFromJSON(ctx, validator, raw)
		if err != nil {
			return Summary{Invalid: 1, Errors: []LineError{{Line: 1, Err: err}}}, err
		}
		if err := writeCanonical(ow, order); err != nil {
			return Summary{}, err
		}
		return Summary{Valid: 1}, nil
	default:
		return Summary{}, fmt.Errorf("unsupported format: %s", format)
	}
}

// validateArray — JSON-массив заказов; каждый элемент проверяется независимо.
func validateArray(ctx context.Context, validator ports.OrderValidator, raw []byte, ow io.Writer) (Summary, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return Summary{}, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}

	var sum Summary
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		order, err := ValidateOrderFromJSON(ctx, validator, item)
		if err != nil {
			sum.reject(i+1, err)
			continue
		}
		if err := writeCanonical(ow, order); err != nil {
			return sum, err
		}
		sum.Valid++
	}
	return sum, nil
}

func writeCanonical(ow io.Writer, v any) error {
	canonical, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	canonical = append(canonical, '\n')
	if _, err := ow.Write(canonical); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
