package telemetry

import (
	"context"
	"testing"
)

func TestInitTelemetry(t *testing.T) {
	// Test with empty endpoint (should not fail, just no telemetry)
	shutdown, err := InitTelemetry(context.Background(), "test-service", "v1.0.0", "test", "", nil)
	if err != nil {
		t.Fatalf("InitTelemetry failed: %v", err)
	}
	if shutdown != nil {
		defer shutdown(context.Background())
	}
}

func TestTracer(t *testing.T) {
	tracer := Tracer("test-tracer")
	if tracer == nil {
		t.Fatal("Tracer returned nil")
	}
}

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want endpoint
	}{
		{
			name: "plain https host",
			raw:  "https://otlp.example.com",
			want: endpoint{host: "otlp.example.com", tracePath: "/v1/traces", logPath: "/v1/logs", metricPath: "/v1/metrics"},
		},
		{
			name: "local http collector",
			raw:  "http://localhost:4318",
			want: endpoint{host: "localhost:4318", insecure: true, tracePath: "/v1/traces", logPath: "/v1/logs", metricPath: "/v1/metrics"},
		},
		{
			name: "grafana otlp base path",
			raw:  "https://otlp-gateway.grafana.net/otlp",
			want: endpoint{host: "otlp-gateway.grafana.net", tracePath: "/otlp/v1/traces", logPath: "/otlp/v1/logs", metricPath: "/otlp/v1/metrics"},
		},
		{
			name: "signal path is stripped",
			raw:  "https://collector.example.com/ingest/v1/traces",
			want: endpoint{host: "collector.example.com", tracePath: "/ingest/v1/traces", logPath: "/ingest/v1/logs", metricPath: "/ingest/v1/metrics"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseEndpoint(tt.raw); got != tt.want {
				t.Errorf("parseEndpoint(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}
