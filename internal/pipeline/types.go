// Package pipeline chains the recipe stage and the ingredient extraction stage.
package pipeline

// PromptRequest is the input to the recipe stage.
type PromptRequest struct {
	Food                string
	FormatInstructions  string
	ExampleInstructions string
}

// RecipeResult is the recipe stage output: the model's reply, verbatim.
type RecipeResult struct {
	Recipe string
}

// IngredientRequest is the input to the ingredient stage. Context is the
// recipe text or the food name, depending on the pipeline's wiring.
type IngredientRequest struct {
	Food               string
	Context            string
	FormatInstructions string
}

// IngredientsRaw is the ingredient stage output. It is untrusted model text.
type IngredientsRaw struct {
	Ingredients string
}

// Output bundles both raw stage outputs.
type Output struct {
	Recipe      string
	Ingredients string
}
