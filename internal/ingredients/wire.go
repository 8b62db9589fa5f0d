package ingredients

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/socialchef/sous/internal/config"
	"github.com/socialchef/sous/internal/llm"
	"github.com/socialchef/sous/internal/pipeline"
	"github.com/socialchef/sous/internal/prompts"
)

// NewFromConfig builds the model client, templates, pipeline and service
// described by cfg. Everything it returns is immutable.
func NewFromConfig(ctx context.Context, cfg *config.Config) (*Service, error) {
	templates, err := prompts.Load(cfg.Pipeline.TemplatesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompt templates: %w", err)
	}

	client, err := llm.NewClient(ctx, cfg.Model, cfg.Credentials)
	if err != nil {
		return nil, err
	}

	opts := []pipeline.Option{pipeline.WithIngredientContext(cfg.Pipeline.IngredientContext)}

	ingredientClient, err := llm.NewIngredientClient(ctx, cfg.Model, cfg.Credentials)
	if err != nil {
		return nil, err
	}
	if ingredientClient != nil {
		opts = append(opts, pipeline.WithIngredientClient(ingredientClient))
	}

	p, err := pipeline.New(client, templates, opts...)
	if err != nil {
		return nil, err
	}

	recipeProvider, ingredientProvider := p.Providers()
	slog.InfoContext(ctx, "Pipeline ready",
		"recipe_provider", recipeProvider,
		"ingredient_provider", ingredientProvider,
		"ingredient_context", p.IngredientContext())

	return NewService(p, templates), nil
}
