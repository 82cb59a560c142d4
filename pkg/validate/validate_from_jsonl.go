package validate

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/Gunvolt24/orders-backoffice/internal/ports"
)

// maxLineBytes — предел длины одной строки JSONL.
const maxLineBytes = 10 * 1024 * 1024

// ValidateJSONLStream — построчная проверка JSONL; валидные заказы пишутся в ow в каноническом виде.
// Пустые строки пропускаются, но учитываются в нумерации.
func ValidateJSONLStream(ctx context.Context, validator ports.OrderValidator, ir io.Reader, ow io.Writer) (Summary, error) {
	var sum Summary

	scanner := bufio.NewScanner(ir)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		order, err := ValidateOrderFromJSON(ctx, validator, line)
		if err != nil {
			sum.reject(lineNo, err)
			continue
		}
		if err := writeCanonical(ow, order); err != nil {
			return sum, err
		}
		sum.Valid++
	}
	if err := scanner.Err(); err != nil {
		return sum, fmt.Errorf("scan: %w", err)
	}
	return sum, nil
}
