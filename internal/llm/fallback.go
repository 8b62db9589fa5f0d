package llm

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	apperrors "github.com/socialchef/sous/internal/errors"
	"github.com/socialchef/sous/internal/metrics"
)

// FallbackClient tries Primary first and switches to Secondary on retryable errors.
type FallbackClient struct {
	Primary   Client
	Secondary Client
}

// NewFallbackClient creates a new fallback client
func NewFallbackClient(primary, secondary Client) *FallbackClient {
	return &FallbackClient{
		Primary:   primary,
		Secondary: secondary,
	}
}

func (f *FallbackClient) Name() string {
	return f.Primary.Name() + "+" + f.Secondary.Name()
}

// Complete tries the primary client first, falls back to secondary on retryable errors
func (f *FallbackClient) Complete(ctx context.Context, prompt Prompt) (string, error) {
	text, err := f.Primary.Complete(ctx, prompt)
	if err == nil {
		return text, nil
	}

	providerErr := ClassifyError(err, f.Primary.Name())

	// Not retryable (auth, bad request, canceled): another provider will not help
	if !IsRetryableError(err) {
		slog.InfoContext(ctx, "Primary provider failed with non-retryable error, not attempting fallback",
			"provider", providerErr.Provider,
			"error_type", providerErr.Type,
			"error", err.Error())
		return "", err
	}

	slog.InfoContext(ctx, "Primary provider failed with retryable error, attempting fallback",
		"provider", providerErr.Provider,
		"fallback_provider", f.Secondary.Name(),
		"error_type", providerErr.Type,
		"error", err.Error())

	metrics.ProviderFallbackTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("from_provider", f.Primary.Name()),
		attribute.String("to_provider", f.Secondary.Name()),
		attribute.String("reason", providerErr.Type),
	))

	text, fallbackErr := f.Secondary.Complete(ctx, prompt)
	if fallbackErr == nil {
		slog.InfoContext(ctx, "Fallback provider succeeded",
			"fallback_provider", f.Secondary.Name(),
			"primary_error_type", providerErr.Type)
		return text, nil
	}

	fallbackProviderErr := ClassifyError(fallbackErr, f.Secondary.Name())
	slog.ErrorContext(ctx, "Both primary and secondary providers failed",
		"primary_error_type", providerErr.Type,
		"primary_error", err.Error(),
		"fallback_error_type", fallbackProviderErr.Type,
		"fallback_error", fallbackErr.Error())

	return "", apperrors.NewModelUnavailableError(
		"both primary and secondary providers failed",
		"PROVIDER_FALLBACK_FAILED",
		errors.Join(err, fallbackErr),
	)
}
