package llm

import (
	"context"
	"fmt"

	"github.com/socialchef/sous/internal/config"
	apperrors "github.com/socialchef/sous/internal/errors"
)

// NewClient creates the model client described by the configuration.
// When fallback is enabled the primary client is wrapped in a FallbackClient.
func NewClient(ctx context.Context, cfg config.ModelConfig, creds config.Credentials) (Client, error) {
	primary, err := newProviderClient(ctx, cfg.Provider, ProviderConfig{
		APIKey:    creds.APIKey(cfg.Provider),
		Model:     cfg.Name,
		MaxTokens: cfg.MaxTokens,
		Timeout:   cfg.Timeout,
	})
	if err != nil {
		return nil, err
	}

	if !cfg.FallbackEnabled {
		return primary, nil
	}

	secondary, err := newProviderClient(ctx, cfg.FallbackProvider, ProviderConfig{
		APIKey:    creds.APIKey(cfg.FallbackProvider),
		Model:     cfg.FallbackName,
		MaxTokens: cfg.MaxTokens,
		Timeout:   cfg.Timeout,
	})
	if err != nil {
		return nil, err
	}

	return NewFallbackClient(primary, secondary), nil
}

// NewIngredientClient builds the client for the ingredient stage when
// cfg.IngredientProvider is set. It returns a nil Client otherwise, and the
// ingredient stage shares the primary client.
func NewIngredientClient(ctx context.Context, cfg config.ModelConfig, creds config.Credentials) (Client, error) {
	if cfg.IngredientProvider == "" {
		return nil, nil
	}
	return newProviderClient(ctx, cfg.IngredientProvider, ProviderConfig{
		APIKey:    creds.APIKey(cfg.IngredientProvider),
		Model:     cfg.IngredientName,
		MaxTokens: cfg.MaxTokens,
		Timeout:   cfg.Timeout,
	})
}

func newProviderClient(ctx context.Context, provider string, pc ProviderConfig) (Client, error) {
	switch ProviderType(provider) {
	case ProviderGemini, ProviderOpenAI, ProviderAnthropic, ProviderGroq, ProviderCerebras:
	default:
		return nil, apperrors.NewConfigurationError(
			fmt.Sprintf("unknown model provider %q", provider),
			"UNKNOWN_PROVIDER",
		)
	}

	if pc.APIKey == "" {
		return nil, apperrors.NewConfigurationError(
			fmt.Sprintf("no API key configured for provider %q", provider),
			"MISSING_CREDENTIAL",
		)
	}

	switch ProviderType(provider) {
	case ProviderGemini:
		client, err := NewGeminiClient(ctx, pc)
		if err != nil {
			return nil, apperrors.NewConfigurationError(err.Error(), "PROVIDER_INIT_FAILED")
		}
		return client, nil
	case ProviderOpenAI:
		return NewOpenAIClient(pc), nil
	case ProviderAnthropic:
		return NewAnthropicClient(pc), nil
	case ProviderCerebras:
		return NewCerebrasClient(pc), nil
	default:
		return NewGroqClient(pc), nil
	}
}
