package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultTransport is the base transport used by the instrumented client.
var DefaultTransport = http.DefaultTransport

// DefaultTimeout bounds a single model call when no timeout is configured.
const DefaultTimeout = 120 * time.Second

type contextKey string

const providerKey contextKey = "httpclient.provider"

// WithProvider adds a provider name to the context for tracing.
func WithProvider(ctx context.Context, provider string) context.Context {
	return context.WithValue(ctx, providerKey, provider)
}

// Provider returns the provider name stored by WithProvider.
func Provider(ctx context.Context) string {
	provider, _ := ctx.Value(providerKey).(string)
	return provider
}

// providerTransport is a RoundTripper that adds provider attributes to the current span.
type providerTransport struct {
	base     http.RoundTripper
	provider string
}

func (t *providerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	span := trace.SpanFromContext(req.Context())
	provider := Provider(req.Context())
	if provider == "" {
		provider = t.provider
	}
	if provider != "" {
		span.SetAttributes(attribute.String("provider", provider))
	}
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if resp.StatusCode >= 400 {
		span.SetStatus(codes.Error, fmt.Sprintf("HTTP status %d", resp.StatusCode))
	}
	return resp, nil
}

func newOtelTransport(base http.RoundTripper, provider string) http.RoundTripper {
	return otelhttp.NewTransport(&providerTransport{base: base, provider: provider},
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
			name := Provider(r.Context())
			if name == "" {
				name = provider
			}
			if name != "" {
				return fmt.Sprintf("%s: %s %s", name, r.Method, r.URL.Path)
			}
			return fmt.Sprintf("%s %s", r.Method, r.URL.Path)
		}),
	)
}

// New returns an instrumented http.Client for one model provider. SDK clients
// that build their own requests cannot set WithProvider, so the provider name
// is fixed on the transport as well.
func New(provider string, timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Transport: newOtelTransport(DefaultTransport, provider),
		Timeout:   timeout,
	}
}

// WrapClient returns a copy of client whose transport is instrumented for
// provider. The caller's client is left untouched, so one injected client can
// back several providers. A zero timeout becomes DefaultTimeout.
func WrapClient(client *http.Client, provider string) *http.Client {
	wrapped := *client
	base := wrapped.Transport
	if base == nil {
		base = DefaultTransport
	}
	wrapped.Transport = newOtelTransport(base, provider)
	if wrapped.Timeout <= 0 {
		wrapped.Timeout = DefaultTimeout
	}
	return &wrapped
}
