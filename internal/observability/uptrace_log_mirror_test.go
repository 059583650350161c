package observability

import (
	"errors"
	"math"
	"testing"
	"time"

	otellog "go.opentelemetry.io/otel/log"
	"go.uber.org/zap/zapcore"
)

func TestShouldSkipUptraceLog(t *testing.T) {
	t.Parallel()

	if !shouldSkipUptraceLog("http request", []any{"method", "GET", "path", "/healthz"}) {
		t.Fatalf("expected health check log to be skipped")
	}
	if shouldSkipUptraceLog("http request", []any{"path", "/v1/matches/open"}) {
		t.Fatalf("did not expect board request log to be skipped")
	}
	if !shouldSkipUptraceLog("http request", []any{"path", "/openapi.yaml", "status", 200}) {
		t.Fatalf("expected docs request log to be skipped")
	}
	if shouldSkipUptraceLog("riot request failed", []any{"path", "/healthz"}) {
		t.Fatalf("did not expect non-request event to be skipped")
	}
}

func TestBuildOTelLogAttributes(t *testing.T) {
	t.Parallel()

	attrs := buildOTelLogAttributes([]any{"match_id", "m-42", "version", int64(3), "error", errors.New("stale"), "dangling"})
	if len(attrs) != 4 {
		t.Fatalf("expected 4 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "match_id" || attrs[0].Value.AsString() != "m-42" {
		t.Fatalf("unexpected match_id attribute")
	}
	if attrs[1].Key != "version" || attrs[1].Value.AsInt64() != 3 {
		t.Fatalf("unexpected version attribute")
	}
	if attrs[2].Value.AsString() != "stale" {
		t.Fatalf("expected error rendered as string, got %v", attrs[2].Value)
	}
	if attrs[3].Key != "dangling" || attrs[3].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected dangling attribute")
	}
}

func TestToOTelLogValue(t *testing.T) {
	t.Parallel()

	v := toOTelLogValue(map[string]any{"wins": 3, "verified": true}, 0)
	if v.Kind() != otellog.KindMap || len(v.AsMap()) != 2 {
		t.Fatalf("expected two-entry map value, got %s", v.Kind())
	}
	if got := toOTelLogValue(1500*time.Millisecond, 0).AsString(); got != "1.5s" {
		t.Fatalf("unexpected duration rendering %q", got)
	}
	if got := toOTelLogValue(uint64(math.MaxUint64), 0); got.Kind() != otellog.KindString {
		t.Fatalf("expected overflowing uint to be rendered as string, got %s", got.Kind())
	}
	if got := toOTelLogValue([]string{"t1", "t2"}, 0); got.Kind() != otellog.KindSlice || len(got.AsSlice()) != 2 {
		t.Fatalf("expected two-item slice value, got %s", got.Kind())
	}
	var missing *int
	if got := toOTelLogValue(missing, 0); got.Kind() != otellog.KindEmpty {
		t.Fatalf("expected empty value for nil pointer, got %s", got.Kind())
	}
}

func TestToOTelSeverity(t *testing.T) {
	t.Parallel()

	if toOTelSeverity(zapcore.WarnLevel) != otellog.SeverityWarn {
		t.Fatalf("warn should map to SeverityWarn")
	}
	if toOTelSeverity(zapcore.ErrorLevel) != otellog.SeverityError {
		t.Fatalf("error should map to SeverityError")
	}
}
