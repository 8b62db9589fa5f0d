package llm

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/socialchef/sous/internal/httpclient"
	"github.com/socialchef/sous/internal/metrics"
)

func observe(ctx context.Context, provider string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = ClassifyError(err, provider).Type
	}
	attrs := metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("outcome", outcome),
	)
	metrics.ExternalAPIDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	metrics.ExternalAPICallsTotal.Add(ctx, 1, attrs)
}

func httpClientFor(provider ProviderType, cfg ProviderConfig) *http.Client {
	if cfg.HTTPClient != nil {
		return httpclient.WrapClient(cfg.HTTPClient, string(provider))
	}
	return httpclient.New(string(provider), cfg.Timeout)
}
