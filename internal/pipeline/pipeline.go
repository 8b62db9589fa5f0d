package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/socialchef/sous/internal/config"
	apperrors "github.com/socialchef/sous/internal/errors"
	"github.com/socialchef/sous/internal/llm"
	"github.com/socialchef/sous/internal/prompts"
)

// Pipeline runs the recipe stage and then the ingredient stage. It holds no
// per-query state and is safe for concurrent use.
type Pipeline struct {
	recipe            *RecipeStage
	ingredients       *IngredientStage
	ingredientContext string
	ingredientClient  llm.Client
}

// Option configures a Pipeline at construction.
type Option func(*Pipeline)

// WithIngredientContext selects what the ingredient stage receives as context:
// config.IngredientContextRecipe (the recipe text) or config.IngredientContextFood
// (the food name).
func WithIngredientContext(wiring string) Option {
	return func(p *Pipeline) {
		p.ingredientContext = wiring
	}
}

// WithIngredientClient runs the ingredient stage on a different model client.
func WithIngredientClient(client llm.Client) Option {
	return func(p *Pipeline) {
		p.ingredientClient = client
	}
}

func New(client llm.Client, templates *prompts.Templates, opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		ingredientContext: config.IngredientContextRecipe,
		ingredientClient:  client,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.recipe = NewRecipeStage(client, templates)
	p.ingredients = NewIngredientStage(p.ingredientClient, templates)

	switch p.ingredientContext {
	case config.IngredientContextRecipe, config.IngredientContextFood:
	default:
		return nil, apperrors.NewConfigurationError(
			fmt.Sprintf("unknown ingredient context %q", p.ingredientContext),
			"INVALID_PIPELINE_WIRING",
		)
	}
	return p, nil
}

// IngredientContext returns the configured wiring.
func (p *Pipeline) IngredientContext() string {
	return p.ingredientContext
}

// Providers returns the names of the clients behind the recipe and
// ingredient stages.
func (p *Pipeline) Providers() (recipe, ingredients string) {
	return p.recipe.client.Name(), p.ingredientClient.Name()
}

// Run executes both stages in order and returns their raw outputs.
// Stage errors are returned unchanged; the ingredient stage never runs
// after a recipe stage failure.
func (p *Pipeline) Run(ctx context.Context, req PromptRequest) (Output, error) {
	recipe, err := p.recipe.Run(ctx, req)
	if err != nil {
		return Output{}, err
	}

	stageContext := recipe.Recipe
	if p.ingredientContext == config.IngredientContextFood {
		stageContext = req.Food
	}

	slog.DebugContext(ctx, "Recipe stage finished",
		"food", req.Food,
		"recipe_length", len(recipe.Recipe),
		"ingredient_context", p.ingredientContext)

	ingredients, err := p.ingredients.Run(ctx, IngredientRequest{
		Food:               req.Food,
		Context:            stageContext,
		FormatInstructions: req.FormatInstructions,
	})
	if err != nil {
		return Output{}, err
	}

	return Output{
		Recipe:      recipe.Recipe,
		Ingredients: ingredients.Ingredients,
	}, nil
}
