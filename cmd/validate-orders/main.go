package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Gunvolt24/orders-backoffice/pkg/validate"
)

// CLI: проверка выгрузки заказов (JSON-объект, JSON-массив или JSONL) доменными правилами сервиса,
// включая инвариант total = subtotal + shipping_fee - discount.
// Валидные заказы печатаются в stdout в каноническом виде, сводка и ошибки — в stderr.
func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("validate-orders", flag.ContinueOnError)
	fs.SetOutput(stderr)
	inputPath := fs.String("in", "", "path to input (.json or .jsonl). If empty, reads from stdin.")
	formatStr := fs.String("format", "auto", "input format: auto|json|jsonl (stdin: auto means jsonl)")
	quiet := fs.Bool("quiet", false, "do not print valid orders")
	strict := fs.Bool("strict", false, "exit with status 1 if any record is invalid")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	out := stdout
	if *quiet {
		out = io.Discard
	}
	orderValidator := validate.NewOrderValidator()
	format := validate.InputFormat(*formatStr)

	var (
		sum validate.Summary
		err error
	)
	if *inputPath == "" {
		if format == validate.FormatAuto {
			format = validate.FormatJSONL
		}
		sum, err = validate.ValidateReader(ctx, orderValidator, stdin, format, out)
	} else {
		sum, err = validate.ValidateFile(ctx, orderValidator, *inputPath, format, out)
	}
	if err != nil {
		fmt.Fprintf(stderr, "validation: %v (%s)\n", err, sum)
		return 1
	}

	for _, le := range sum.Errors {
		fmt.Fprintf(stderr, "record %d: %v\n", le.Line, le.Err)
	}
	fmt.Fprintf(stderr, "validation done (%s)\n", sum)
	if *strict && sum.Invalid > 0 {
		return 1
	}
	return 0
}
