package pipeline

import (
	"context"

	apperrors "github.com/socialchef/sous/internal/errors"
	"github.com/socialchef/sous/internal/llm"
	"github.com/socialchef/sous/internal/prompts"
)

// IngredientStage asks the model for the ingredient list as JSON.
type IngredientStage struct {
	client    llm.Client
	templates *prompts.Templates
}

func NewIngredientStage(client llm.Client, templates *prompts.Templates) *IngredientStage {
	return &IngredientStage{client: client, templates: templates}
}

// Run returns the model's reply unmodified. The reply is not validated here;
// see the formatter package.
func (s *IngredientStage) Run(ctx context.Context, req IngredientRequest) (IngredientsRaw, error) {
	human, err := s.templates.Ingredients(prompts.IngredientData{
		Food:               req.Food,
		Context:            req.Context,
		FormatInstructions: req.FormatInstructions,
	})
	if err != nil {
		return IngredientsRaw{}, apperrors.NewInternalError("failed to render ingredient prompt", "TEMPLATE_RENDER_FAILED", err)
	}

	text, err := complete(ctx, "ingredients", s.client, llm.Prompt{Human: human, JSON: true})
	if err != nil {
		return IngredientsRaw{}, err
	}
	return IngredientsRaw{Ingredients: text}, nil
}
