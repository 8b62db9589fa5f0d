package metrics

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

func TestInstrumentsUsableBeforeInit(t *testing.T) {
	ctx := context.Background()
	attrs := metric.WithAttributes(attribute.String("provider", "test"))

	// Must not panic with the no-op defaults.
	PipelineRunsTotal.Add(ctx, 1, attrs)
	StageDuration.Record(ctx, 0.2, attrs)
	MalformedIngredientsTotal.Add(ctx, 1)
	IngredientRows.Record(ctx, 3)
}

func TestInit(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if PipelineRunsTotal == nil || ExternalAPIDuration == nil || ProviderFallbackTotal == nil {
		t.Fatal("expected instruments to be created")
	}
	PipelineRunDuration.Record(context.Background(), 1.5)
}
