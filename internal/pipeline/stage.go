package pipeline

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/socialchef/sous/internal/llm"
	"github.com/socialchef/sous/internal/metrics"
	"github.com/socialchef/sous/internal/telemetry"
)

var tracer = telemetry.Tracer("github.com/socialchef/sous/internal/pipeline")

// complete sends one prompt through the client inside a stage span.
// Client failures come back as ModelUnavailable.
func complete(ctx context.Context, stage string, client llm.Client, prompt llm.Prompt) (string, error) {
	ctx, span := tracer.Start(ctx, "pipeline."+stage, trace.WithAttributes(
		attribute.String("stage", stage),
		attribute.String("provider", client.Name()),
	))
	defer span.End()

	start := time.Now()
	text, err := client.Complete(ctx, prompt)

	outcome := "success"
	if err != nil {
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		err = llm.Unavailable(client.Name(), err)
	}
	metrics.StageDuration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(
		attribute.String("stage", stage),
		attribute.String("outcome", outcome),
	))

	if err != nil {
		return "", err
	}
	span.SetAttributes(attribute.Int("response_length", len(text)))
	return text, nil
}
