// Package ingredients answers "what do I need to cook X": a recipe plus an
// ingredient table, produced by the two-stage pipeline.
package ingredients

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	apperrors "github.com/socialchef/sous/internal/errors"
	"github.com/socialchef/sous/internal/formatter"
	"github.com/socialchef/sous/internal/logger"
	"github.com/socialchef/sous/internal/metrics"
	"github.com/socialchef/sous/internal/pipeline"
	"github.com/socialchef/sous/internal/prompts"
	"github.com/socialchef/sous/internal/validation"
)

// Runner executes the recipe and ingredient stages.
type Runner interface {
	Run(ctx context.Context, req pipeline.PromptRequest) (pipeline.Output, error)
}

// Result is one answered query.
type Result struct {
	QueryID     string
	Food        string
	Recipe      string
	Ingredients formatter.Table
}

// Service is safe for concurrent use; every query builds its own values.
type Service struct {
	runner    Runner
	templates *prompts.Templates
}

func NewService(runner Runner, templates *prompts.Templates) *Service {
	return &Service{runner: runner, templates: templates}
}

// GetIngredients returns the recipe text and the ingredient table for food.
// A malformed ingredient reply yields an empty table, not an error.
func (s *Service) GetIngredients(ctx context.Context, food string) (string, formatter.Table, error) {
	res, err := s.Ask(ctx, food)
	if err != nil {
		return "", formatter.Table{}, err
	}
	return res.Recipe, res.Ingredients, nil
}

// Ask validates food, runs the pipeline and formats the ingredients.
func (s *Service) Ask(ctx context.Context, food string) (*Result, error) {
	food, err := validation.ValidateFood(food)
	if err != nil {
		return nil, err
	}

	queryID := uuid.NewString()
	log := slog.With("query_id", queryID, "food", food, logger.WithTraceContext(ctx))
	start := time.Now()

	out, err := s.runner.Run(ctx, pipeline.PromptRequest{
		Food:                food,
		FormatInstructions:  s.templates.FormatInstructions(),
		ExampleInstructions: s.templates.ExampleInstructions(),
	})
	if err != nil {
		s.record(ctx, start, outcomeOf(err))
		log.ErrorContext(ctx, "Pipeline failed", "error", err, "duration", time.Since(start))
		return nil, err
	}

	table := formatter.Format(ctx, out.Ingredients)

	outcome := "success"
	if table.IsEmpty() {
		outcome = "empty_ingredients"
	}
	s.record(ctx, start, outcome)

	log.InfoContext(ctx, "Pipeline finished",
		"recipe_length", len(out.Recipe),
		"ingredient_rows", table.Len(),
		"duration", time.Since(start))

	return &Result{
		QueryID:     queryID,
		Food:        food,
		Recipe:      out.Recipe,
		Ingredients: table,
	}, nil
}

func (s *Service) record(ctx context.Context, start time.Time, outcome string) {
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	metrics.PipelineRunsTotal.Add(ctx, 1, attrs)
	metrics.PipelineRunDuration.Record(ctx, time.Since(start).Seconds(), attrs)
}

func outcomeOf(err error) string {
	if appErr, ok := apperrors.As(err); ok {
		return string(appErr.Type)
	}
	return "error"
}
