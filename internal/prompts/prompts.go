package prompts

import (
	"bytes"
	"fmt"
	"os"
	"text/template"

	"gopkg.in/yaml.v3"
)

const recipeSystemTemplate = `<ROLE>
You are an experienced home cook and recipe writer. You write clear, reliable recipes that a beginner can follow in an ordinary kitchen.
</ROLE>

<STYLE>
- Start with a one-line description of the dish.
- List every ingredient with a quantity and a unit before the method.
- Number the method steps. Keep each step short and actionable.
- Include oven temperatures in Celsius and approximate times.
- Do not add commentary, stories or nutrition facts.
</STYLE>

<EXAMPLE>
{{.ExampleInstructions}}
</EXAMPLE>`

const recipeHumanTemplate = `Write a recipe for: {{.Food}}`

const ingredientTemplate = `<TASK>
Extract the ingredient list for "{{.Food}}" from the context below.
</TASK>

<CONTEXT>
{{.Context}}
</CONTEXT>

<OUTPUT_FORMAT>
{{.FormatInstructions}}
</OUTPUT_FORMAT>`

// FormatInstructions describes the JSON shape the ingredient stage must return.
const FormatInstructions = `Return ONLY a JSON object, with no markdown fences and no text before or after it.
The object has exactly one key: the name of the dish. Its value is an array with one object per ingredient:
{
  "<dish name>": [
    {"ingredient": "<ingredient name>", "amount": "<quantity>", "unit": "<unit of measurement or empty string>"}
  ]
}
Use the same field names for every ingredient. Use strings for all values.`

// ExampleInstructions is the worked example shown to the recipe stage.
const ExampleInstructions = `Recipe for: Pancakes
Fluffy breakfast pancakes ready in 20 minutes.

Ingredients:
- 200 g plain flour
- 2 tsp baking powder
- 1 tbsp sugar
- 1 pinch salt
- 300 ml milk
- 1 egg
- 25 g melted butter

Method:
1. Whisk the flour, baking powder, sugar and salt in a large bowl.
2. Beat the milk and egg together, then whisk into the dry ingredients with the melted butter until smooth.
3. Heat a lightly oiled pan over medium heat. Pour in 3 tbsp of batter per pancake.
4. Cook for 1-2 minutes until bubbles form on the surface, flip and cook 1 minute more until golden.`

// Set is the raw template text. Every field can be overridden from a YAML file.
type Set struct {
	RecipeSystem        string `yaml:"recipe_system"`
	RecipeHuman         string `yaml:"recipe_human"`
	Ingredients         string `yaml:"ingredients"`
	FormatInstructions  string `yaml:"format_instructions"`
	ExampleInstructions string `yaml:"example_instructions"`
}

// DefaultSet returns the compiled-in templates.
func DefaultSet() Set {
	return Set{
		RecipeSystem:        recipeSystemTemplate,
		RecipeHuman:         recipeHumanTemplate,
		Ingredients:         ingredientTemplate,
		FormatInstructions:  FormatInstructions,
		ExampleInstructions: ExampleInstructions,
	}
}

// RecipeData is the input to the recipe templates.
type RecipeData struct {
	Food                string
	FormatInstructions  string
	ExampleInstructions string
}

// IngredientData is the input to the ingredient template. Context is either the
// recipe text or the food name, depending on pipeline wiring.
type IngredientData struct {
	Food               string
	Context            string
	FormatInstructions string
}

// Templates holds parsed prompt templates. It is immutable after construction
// and safe for concurrent use.
type Templates struct {
	recipeSystem        *template.Template
	recipeHuman         *template.Template
	ingredients         *template.Template
	formatInstructions  string
	exampleInstructions string
}

// New parses a template set.
func New(set Set) (*Templates, error) {
	recipeSystem, err := parse("recipe_system", set.RecipeSystem)
	if err != nil {
		return nil, err
	}
	recipeHuman, err := parse("recipe_human", set.RecipeHuman)
	if err != nil {
		return nil, err
	}
	ingredients, err := parse("ingredients", set.Ingredients)
	if err != nil {
		return nil, err
	}
	return &Templates{
		recipeSystem:        recipeSystem,
		recipeHuman:         recipeHuman,
		ingredients:         ingredients,
		formatInstructions:  set.FormatInstructions,
		exampleInstructions: set.ExampleInstructions,
	}, nil
}

// Default returns the compiled-in templates. They are known to parse.
func Default() *Templates {
	t, err := New(DefaultSet())
	if err != nil {
		panic(fmt.Sprintf("prompts: default templates do not parse: %v", err))
	}
	return t
}

// Load reads a YAML override file on top of the defaults. An empty path returns the defaults.
func Load(path string) (*Templates, error) {
	set := DefaultSet()
	if path == "" {
		return New(set)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read templates file: %w", err)
	}

	var override Set
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("failed to parse templates file: %w", err)
	}

	if override.RecipeSystem != "" {
		set.RecipeSystem = override.RecipeSystem
	}
	if override.RecipeHuman != "" {
		set.RecipeHuman = override.RecipeHuman
	}
	if override.Ingredients != "" {
		set.Ingredients = override.Ingredients
	}
	if override.FormatInstructions != "" {
		set.FormatInstructions = override.FormatInstructions
	}
	if override.ExampleInstructions != "" {
		set.ExampleInstructions = override.ExampleInstructions
	}

	return New(set)
}

func (t *Templates) FormatInstructions() string {
	return t.formatInstructions
}

func (t *Templates) ExampleInstructions() string {
	return t.exampleInstructions
}

// Recipe renders the system and human messages of the recipe stage.
func (t *Templates) Recipe(data RecipeData) (system, human string, err error) {
	system, err = execute(t.recipeSystem, data)
	if err != nil {
		return "", "", err
	}
	human, err = execute(t.recipeHuman, data)
	if err != nil {
		return "", "", err
	}
	return system, human, nil
}

// Ingredients renders the single prompt of the ingredient stage.
func (t *Templates) Ingredients(data IngredientData) (string, error) {
	return execute(t.ingredients, data)
}

func parse(name, text string) (*template.Template, error) {
	if text == "" {
		return nil, fmt.Errorf("template %s is empty", name)
	}
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	return tmpl, nil
}

func execute(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
