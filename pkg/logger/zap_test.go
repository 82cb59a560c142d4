package logger_test

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Gunvolt24/orders-backoffice/pkg/ctxmeta"
	"github.com/Gunvolt24/orders-backoffice/pkg/logger"
)

func TestZapLogger_AddsRequestIDFromContext(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := logger.NewFromZap(zap.New(core))

	ctx := ctxmeta.WithRequestID(context.Background(), "req-7")
	l.Infof(ctx, "order saved id=%s", "42")
	l.Warnf(context.Background(), "plain")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("want 2 entries, got %d", len(entries))
	}
	if entries[0].Message != "order saved id=42" {
		t.Fatalf("message %q", entries[0].Message)
	}
	if got := entries[0].ContextMap()["request_id"]; got != "req-7" {
		t.Fatalf("request_id field = %v", got)
	}
	if _, ok := entries[1].ContextMap()["request_id"]; ok {
		t.Fatalf("entry without request id must not carry the field")
	}
	if entries[1].Level != zapcore.WarnLevel {
		t.Fatalf("level %v", entries[1].Level)
	}
}

func TestNewZapLogger_Level(t *testing.T) {
	l, sync, err := logger.NewZapLogger(true, "warn")
	if err != nil {
		t.Fatalf("NewZapLogger: %v", err)
	}
	defer func() { _ = sync() }()
	if l.Base().Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("info must be disabled at warn level")
	}

	if _, _, err := logger.NewZapLogger(false, "loud"); err == nil {
		t.Fatalf("unknown level must fail")
	}
}
