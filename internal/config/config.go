package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "github.com/socialchef/sous/internal/errors"
)

const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGroq      = "groq"
	ProviderCerebras  = "cerebras"

	// IngredientContextRecipe feeds the recipe text into the ingredient stage.
	IngredientContextRecipe = "recipe"
	// IngredientContextFood feeds the original food name into the ingredient stage.
	IngredientContextFood = "food"
)

type Config struct {
	Env            string
	ServiceName    string
	ServiceVersion string

	Credentials Credentials

	OtelExporterOTLPEndpoint string
	OtelExporterOTLPHeaders  string
	SentryDSN                string

	Port string

	Model    ModelConfig
	Pipeline PipelineConfig
}

// Credentials holds one API key per model provider. Only the keys of the
// configured providers (primary, fallback when enabled, ingredient stage
// when set) are required.
type Credentials struct {
	GoogleAPIKey    string
	OpenAIKey       string
	AnthropicAPIKey string
	GroqKey         string
	CerebrasKey     string
}

type ModelConfig struct {
	Provider         string        `yaml:"provider"`
	Name             string        `yaml:"name"`
	Timeout          time.Duration `yaml:"timeout"`
	MaxTokens        int           `yaml:"max_tokens"`
	FallbackEnabled  bool          `yaml:"fallback_enabled"`
	FallbackProvider string        `yaml:"fallback_provider"`
	FallbackName     string        `yaml:"fallback_name"`

	// IngredientProvider runs the ingredient stage on its own model. Empty
	// means both stages share the primary client.
	IngredientProvider string `yaml:"ingredient_provider"`
	IngredientName     string `yaml:"ingredient_name"`
}

type PipelineConfig struct {
	IngredientContext string `yaml:"ingredient_context"`
	TemplatesFile     string `yaml:"templates_file"`
}

func Load() (*Config, error) {
	return LoadFile("config.yaml")
}

// LoadFile is Load with an explicit YAML path. A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	cfg := &Config{
		Env:            os.Getenv("ENV"),
		ServiceName:    os.Getenv("SERVICE_NAME"),
		ServiceVersion: os.Getenv("SERVICE_VERSION"),
		Credentials: Credentials{
			GoogleAPIKey:    os.Getenv("GOOGLE_API_KEY"),
			OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
			AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
			GroqKey:         os.Getenv("GROQ_API_KEY"),
			CerebrasKey:     os.Getenv("CEREBRAS_API_KEY"),
		},
		OtelExporterOTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OtelExporterOTLPHeaders:  os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"),
		SentryDSN:                os.Getenv("SENTRY_DSN"),
		Port:                     os.Getenv("PORT"),
		Model: ModelConfig{
			Provider: os.Getenv("MODEL_PROVIDER"),
			Name:     os.Getenv("MODEL_NAME"),
		},
	}

	// Load from YAML file if available
	if err := cfg.LoadFromYAML(path); err != nil {
		return nil, fmt.Errorf("failed to load YAML config: %w", err)
	}

	// Set defaults
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "socialchef-sous"
	}
	if cfg.ServiceVersion == "" {
		cfg.ServiceVersion = "1.0.0"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	cfg.SetModelDefaults()
	cfg.SetPipelineDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) LoadFromYAML(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File not found is not an error
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var yamlConfig struct {
		Model    ModelConfig    `yaml:"model"`
		Pipeline PipelineConfig `yaml:"pipeline"`
	}

	if err := yaml.Unmarshal(data, &yamlConfig); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	// Environment wins over the file for provider and model name
	if c.Model.Provider == "" {
		c.Model.Provider = yamlConfig.Model.Provider
	}
	if c.Model.Name == "" {
		c.Model.Name = yamlConfig.Model.Name
	}
	if yamlConfig.Model.Timeout > 0 {
		c.Model.Timeout = yamlConfig.Model.Timeout
	}
	if yamlConfig.Model.MaxTokens > 0 {
		c.Model.MaxTokens = yamlConfig.Model.MaxTokens
	}
	if yamlConfig.Model.FallbackEnabled {
		c.Model.FallbackEnabled = true
	}
	if yamlConfig.Model.FallbackProvider != "" {
		c.Model.FallbackProvider = yamlConfig.Model.FallbackProvider
	}
	if yamlConfig.Model.FallbackName != "" {
		c.Model.FallbackName = yamlConfig.Model.FallbackName
	}
	if yamlConfig.Model.IngredientProvider != "" {
		c.Model.IngredientProvider = yamlConfig.Model.IngredientProvider
	}
	if yamlConfig.Model.IngredientName != "" {
		c.Model.IngredientName = yamlConfig.Model.IngredientName
	}

	if yamlConfig.Pipeline.IngredientContext != "" {
		c.Pipeline.IngredientContext = yamlConfig.Pipeline.IngredientContext
	}
	if yamlConfig.Pipeline.TemplatesFile != "" {
		c.Pipeline.TemplatesFile = yamlConfig.Pipeline.TemplatesFile
	}

	return nil
}

func (c *Config) SetModelDefaults() {
	c.Model.Provider = strings.ToLower(strings.TrimSpace(c.Model.Provider))
	if c.Model.Provider == "" {
		c.Model.Provider = ProviderGemini
	}
	if c.Model.Timeout == 0 {
		c.Model.Timeout = 120 * time.Second
	}
	if c.Model.MaxTokens == 0 {
		c.Model.MaxTokens = 2048
	}
	c.Model.FallbackProvider = strings.ToLower(strings.TrimSpace(c.Model.FallbackProvider))
	if c.Model.FallbackEnabled && c.Model.FallbackProvider == "" {
		c.Model.FallbackProvider = ProviderOpenAI
	}
	c.Model.IngredientProvider = strings.ToLower(strings.TrimSpace(c.Model.IngredientProvider))
}

func (c *Config) SetPipelineDefaults() {
	if c.Pipeline.IngredientContext == "" {
		c.Pipeline.IngredientContext = IngredientContextRecipe
	}
}

// APIKey returns the credential for a provider name.
func (c Credentials) APIKey(provider string) string {
	switch provider {
	case ProviderGemini:
		return c.GoogleAPIKey
	case ProviderOpenAI:
		return c.OpenAIKey
	case ProviderAnthropic:
		return c.AnthropicAPIKey
	case ProviderGroq:
		return c.GroqKey
	case ProviderCerebras:
		return c.CerebrasKey
	default:
		return ""
	}
}

// OTLPHeaders parses OTEL_EXPORTER_OTLP_HEADERS ("k1=v1,k2=v2").
func (c *Config) OTLPHeaders() map[string]string {
	if c.OtelExporterOTLPHeaders == "" {
		return nil
	}
	headers := make(map[string]string)
	for _, pair := range strings.Split(c.OtelExporterOTLPHeaders, ",") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		headers[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return headers
}

var credentialEnv = map[string]string{
	ProviderGemini:    "GOOGLE_API_KEY",
	ProviderOpenAI:    "OPENAI_API_KEY",
	ProviderAnthropic: "ANTHROPIC_API_KEY",
	ProviderGroq:      "GROQ_API_KEY",
	ProviderCerebras:  "CEREBRAS_API_KEY",
}

func (c *Config) validate() error {
	if err := c.requireCredential(c.Model.Provider); err != nil {
		return err
	}
	if c.Model.FallbackEnabled {
		if err := c.requireCredential(c.Model.FallbackProvider); err != nil {
			return err
		}
	}
	if c.Model.IngredientProvider != "" {
		if err := c.requireCredential(c.Model.IngredientProvider); err != nil {
			return err
		}
	}
	switch c.Pipeline.IngredientContext {
	case IngredientContextRecipe, IngredientContextFood:
	default:
		return apperrors.NewConfigurationError(
			fmt.Sprintf("pipeline.ingredient_context must be %q or %q, got %q", IngredientContextRecipe, IngredientContextFood, c.Pipeline.IngredientContext),
			"INVALID_PIPELINE_WIRING",
		)
	}
	return nil
}

func (c *Config) requireCredential(provider string) error {
	env, ok := credentialEnv[provider]
	if !ok {
		return apperrors.NewConfigurationError(fmt.Sprintf("unknown model provider %q", provider), "UNKNOWN_PROVIDER")
	}
	if c.Credentials.APIKey(provider) == "" {
		return apperrors.NewConfigurationError(env+" is required", "MISSING_CREDENTIAL")
	}
	return nil
}
