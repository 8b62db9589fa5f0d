package llm

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// ProviderType represents the type of AI provider
type ProviderType string

const (
	ProviderGemini    ProviderType = "gemini"
	ProviderOpenAI    ProviderType = "openai"
	ProviderAnthropic ProviderType = "anthropic"
	ProviderGroq      ProviderType = "groq"
	ProviderCerebras  ProviderType = "cerebras"
)

// ErrNoResponse is returned when a provider answers without any text.
var ErrNoResponse = errors.New("no response from model")

// Prompt is a system + human message pair. JSON asks providers that support
// it for a JSON-only reply; callers must still treat the reply as untrusted.
type Prompt struct {
	System string
	Human  string
	JSON   bool
}

// Client is the narrow model contract the pipeline depends on.
type Client interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
	Name() string
}

// ProviderConfig holds common configuration for providers.
type ProviderConfig struct {
	APIKey    string
	Model     string
	BaseURL   string // For tests and self-hosted gateways
	MaxTokens int
	Timeout   time.Duration
	// HTTPClient replaces the default client; it is still instrumented.
	HTTPClient *http.Client
}
