package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/trace"
)

func TestNew(t *testing.T) {
	t.Run("production", func(t *testing.T) {
		l := New("production")
		if l == nil {
			t.Fatal("expected logger to be non-nil")
		}
	})

	t.Run("development", func(t *testing.T) {
		l := New("development")
		if l == nil {
			t.Fatal("expected logger to be non-nil")
		}
	})
}

type mockSpan struct {
	trace.Span
	sc trace.SpanContext
}

func (s mockSpan) SpanContext() trace.SpanContext {
	return s.sc
}

func TestWithTraceContext(t *testing.T) {
	t.Run("valid span", func(t *testing.T) {
		traceID, _ := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
		spanID, _ := trace.SpanIDFromHex("0102030405060708")
		sc := trace.NewSpanContext(trace.SpanContextConfig{
			TraceID: traceID,
			SpanID:  spanID,
		})
		ctx := trace.ContextWithSpan(context.Background(), mockSpan{sc: sc})

		attr := WithTraceContext(ctx)
		if attr.Key != "trace" {
			t.Errorf("expected key 'trace', got %s", attr.Key)
		}

		group := attr.Value.Group()
		if len(group) != 2 {
			t.Errorf("expected 2 attributes in group, got %d", len(group))
		}

		foundTraceID := false
		foundSpanID := false
		for _, a := range group {
			if a.Key == "trace_id" && a.Value.String() == "0102030405060708090a0b0c0d0e0f10" {
				foundTraceID = true
			}
			if a.Key == "span_id" && a.Value.String() == "0102030405060708" {
				foundSpanID = true
			}
		}

		if !foundTraceID {
			t.Error("trace_id not found or incorrect")
		}
		if !foundSpanID {
			t.Error("span_id not found or incorrect")
		}
	})

	t.Run("invalid span", func(t *testing.T) {
		ctx := context.Background()
		attr := WithTraceContext(ctx)
		if !attr.Equal(slog.Attr{}) {
			t.Errorf("expected empty attribute for invalid span, got %+v", attr)
		}
	})
}

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("production", &buf)
	l.Info("pipeline finished", "food", "Lasagna", "rows", 12)

	out := buf.String()
	if !strings.Contains(out, `"msg":"pipeline finished"`) {
		t.Errorf("expected JSON message in output, got %q", out)
	}
	if !strings.Contains(out, `"food":"Lasagna"`) {
		t.Errorf("expected food attribute in output, got %q", out)
	}
}

func TestSeverityOf(t *testing.T) {
	tests := []struct {
		level slog.Level
		want  log.Severity
	}{
		{slog.LevelDebug, log.SeverityDebug},
		{slog.LevelInfo, log.SeverityInfo},
		{slog.LevelWarn, log.SeverityWarn},
		{slog.LevelError, log.SeverityError},
	}
	for _, tt := range tests {
		if got := severityOf(tt.level); got != tt.want {
			t.Errorf("severityOf(%v) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestConvertAttr(t *testing.T) {
	t.Run("flat", func(t *testing.T) {
		kvs := convertAttr("", slog.String("query_id", "abc"))
		if len(kvs) != 1 || kvs[0].Key != "query_id" || kvs[0].Value.AsString() != "abc" {
			t.Errorf("unexpected conversion %+v", kvs)
		}
	})

	t.Run("group flattens to dotted keys", func(t *testing.T) {
		kvs := convertAttr("", slog.Group("trace",
			slog.String("trace_id", "t1"),
			slog.String("span_id", "s1"),
		))
		if len(kvs) != 2 {
			t.Fatalf("expected 2 attributes, got %d", len(kvs))
		}
		if kvs[0].Key != "trace.trace_id" || kvs[1].Key != "trace.span_id" {
			t.Errorf("unexpected keys %q, %q", kvs[0].Key, kvs[1].Key)
		}
	})

	t.Run("empty attribute is dropped", func(t *testing.T) {
		if kvs := convertAttr("", WithTraceContext(context.Background())); len(kvs) != 0 {
			t.Errorf("expected no attributes, got %+v", kvs)
		}
	})

	t.Run("prefix applies", func(t *testing.T) {
		kvs := convertAttr("pipeline.", slog.Int("rows", 3))
		if len(kvs) != 1 || kvs[0].Key != "pipeline.rows" || kvs[0].Value.AsInt64() != 3 {
			t.Errorf("unexpected conversion %+v", kvs)
		}
	})
}

func TestHandlerKeepsBoundAttributes(t *testing.T) {
	var buf bytes.Buffer
	base := NewWithWriter("production", &buf)

	l := base.With("query_id", "q-1").WithGroup("stage")
	l.Info("stage finished", "name", "recipe")

	h, ok := l.Handler().(*otelHandler)
	if !ok {
		t.Fatalf("expected *otelHandler, got %T", l.Handler())
	}
	if len(h.attrs) != 1 || h.attrs[0].Key != "query_id" {
		t.Errorf("expected bound query_id attribute, got %+v", h.attrs)
	}
	if h.prefix != "stage." {
		t.Errorf("expected group prefix 'stage.', got %q", h.prefix)
	}

	out := buf.String()
	if !strings.Contains(out, `"query_id":"q-1"`) {
		t.Errorf("expected query_id in local output, got %q", out)
	}
	if !strings.Contains(out, `"stage":{"name":"recipe"}`) {
		t.Errorf("expected grouped attribute in local output, got %q", out)
	}
}
