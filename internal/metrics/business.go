package metrics

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Instruments start as no-ops so packages can record before Init runs (tests, CLI without telemetry).
var (
	meter = otel.Meter("socialchef/sous")

	// Pipeline metrics
	PipelineRunsTotal   metric.Int64Counter     = noop.Int64Counter{}
	PipelineRunDuration metric.Float64Histogram = noop.Float64Histogram{}
	StageDuration       metric.Float64Histogram = noop.Float64Histogram{}

	// Formatter metrics
	MalformedIngredientsTotal metric.Int64Counter   = noop.Int64Counter{}
	IngredientRows            metric.Int64Histogram = noop.Int64Histogram{}

	// External API metrics
	ExternalAPICallsTotal metric.Int64Counter     = noop.Int64Counter{}
	ExternalAPIDuration   metric.Float64Histogram = noop.Float64Histogram{}

	// Provider fallback metrics
	ProviderFallbackTotal metric.Int64Counter = noop.Int64Counter{}
)

func Init() error {
	var err error

	// Pipeline metrics
	PipelineRunsTotal, err = meter.Int64Counter(
		"pipeline.runs.total",
		metric.WithDescription("Total number of recipe pipeline runs"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	PipelineRunDuration, err = meter.Float64Histogram(
		"pipeline.run.duration",
		metric.WithDescription("Duration of a full recipe and ingredient pipeline run"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.5, 1, 2, 5, 10, 30, 60, 120),
	)
	if err != nil {
		return err
	}

	StageDuration, err = meter.Float64Histogram(
		"pipeline.stage.duration",
		metric.WithDescription("Duration of a single pipeline stage"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2, 5, 10, 30, 60),
	)
	if err != nil {
		return err
	}

	// Formatter metrics
	MalformedIngredientsTotal, err = meter.Int64Counter(
		"ingredients.malformed.total",
		metric.WithDescription("Ingredient outputs that could not be parsed into a table"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	IngredientRows, err = meter.Int64Histogram(
		"ingredients.rows",
		metric.WithDescription("Number of ingredient rows per formatted table"),
		metric.WithUnit("1"),
		metric.WithExplicitBucketBoundaries(0, 1, 5, 10, 15, 20, 30, 50),
	)
	if err != nil {
		return err
	}

	// External API metrics
	ExternalAPICallsTotal, err = meter.Int64Counter(
		"external.api.calls.total",
		metric.WithDescription("Total number of external API calls"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	ExternalAPIDuration, err = meter.Float64Histogram(
		"external.api.duration",
		metric.WithDescription("Duration of external API calls"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2, 5, 10, 30),
	)
	if err != nil {
		return err
	}

	// Provider fallback metrics
	ProviderFallbackTotal, err = meter.Int64Counter(
		"provider.fallback.total",
		metric.WithDescription("Total number of provider fallback events"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	return nil
}
