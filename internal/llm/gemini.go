package llm

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model name is configured.
const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiClient implements Client for the Gemini API.
type GeminiClient struct {
	client    *genai.Client
	model     string
	maxTokens int
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, cfg ProviderConfig) (*GeminiClient, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClientFor(ProviderGemini, cfg),
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	return &GeminiClient{client: client, model: model, maxTokens: cfg.MaxTokens}, nil
}

func (c *GeminiClient) Name() string {
	return string(ProviderGemini)
}

// Complete sends the prompt to Gemini and returns the text of the first candidate.
func (c *GeminiClient) Complete(ctx context.Context, prompt Prompt) (text string, err error) {
	start := time.Now()
	defer func() { observe(ctx, c.Name(), start, err) }()

	genCfg := &genai.GenerateContentConfig{}
	if prompt.System != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(prompt.System, genai.RoleModel)
	}
	if prompt.JSON {
		genCfg.ResponseMIMEType = "application/json"
	}
	if c.maxTokens > 0 {
		genCfg.MaxOutputTokens = int32(c.maxTokens)
	}

	res, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt.Human), genCfg)
	if err != nil {
		return "", err
	}

	text = res.Text()
	if text == "" {
		return "", ErrNoResponse
	}
	return text, nil
}
