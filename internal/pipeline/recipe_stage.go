package pipeline

import (
	"context"

	apperrors "github.com/socialchef/sous/internal/errors"
	"github.com/socialchef/sous/internal/llm"
	"github.com/socialchef/sous/internal/prompts"
)

// RecipeStage asks the model for a free-text recipe.
type RecipeStage struct {
	client    llm.Client
	templates *prompts.Templates
}

func NewRecipeStage(client llm.Client, templates *prompts.Templates) *RecipeStage {
	return &RecipeStage{client: client, templates: templates}
}

// Run renders the recipe prompt and returns the model's reply verbatim.
// Any non-empty reply is a valid recipe.
func (s *RecipeStage) Run(ctx context.Context, req PromptRequest) (RecipeResult, error) {
	system, human, err := s.templates.Recipe(prompts.RecipeData{
		Food:                req.Food,
		FormatInstructions:  req.FormatInstructions,
		ExampleInstructions: req.ExampleInstructions,
	})
	if err != nil {
		return RecipeResult{}, apperrors.NewInternalError("failed to render recipe prompt", "TEMPLATE_RENDER_FAILED", err)
	}

	text, err := complete(ctx, "recipe", s.client, llm.Prompt{System: system, Human: human})
	if err != nil {
		return RecipeResult{}, err
	}
	return RecipeResult{Recipe: text}, nil
}
