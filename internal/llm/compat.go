package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/socialchef/sous/internal/httpclient"
)

const (
	// DefaultGroqModel is used when no model name is configured.
	DefaultGroqModel = "llama-3.3-70b-versatile"
	// DefaultCerebrasModel is used when no model name is configured.
	DefaultCerebrasModel = "gpt-oss-120b"

	defaultGroqBaseURL     = "https://api.groq.com/openai/v1"
	defaultCerebrasBaseURL = "https://api.cerebras.ai/v1"
)

// CompatClient implements Client for providers that speak the OpenAI chat
// completions wire format over plain HTTP (Groq, Cerebras).
type CompatClient struct {
	provider    ProviderType
	displayName string
	apiKey      string
	model       string
	baseURL     string
	maxTokens   int
	httpClient  *http.Client
}

// NewGroqClient creates a client for Groq.
func NewGroqClient(cfg ProviderConfig) *CompatClient {
	return newCompatClient(ProviderGroq, "Groq", DefaultGroqModel, defaultGroqBaseURL, cfg)
}

// NewCerebrasClient creates a client for Cerebras.
func NewCerebrasClient(cfg ProviderConfig) *CompatClient {
	return newCompatClient(ProviderCerebras, "Cerebras", DefaultCerebrasModel, defaultCerebrasBaseURL, cfg)
}

func newCompatClient(provider ProviderType, displayName, defaultModel, defaultBaseURL string, cfg ProviderConfig) *CompatClient {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &CompatClient{
		provider:    provider,
		displayName: displayName,
		apiKey:      cfg.APIKey,
		model:       model,
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		maxTokens:   cfg.MaxTokens,
		httpClient:  httpClientFor(provider, cfg),
	}
}

func (c *CompatClient) Name() string {
	return string(c.provider)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string              `json:"model"`
	Messages       []chatMessage       `json:"messages"`
	MaxTokens      int                 `json:"max_tokens,omitempty"`
	ResponseFormat *chatResponseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *CompatClient) Complete(ctx context.Context, prompt Prompt) (text string, err error) {
	start := time.Now()
	defer func() { observe(ctx, c.Name(), start, err) }()

	req := chatRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
	}
	if prompt.System != "" {
		req.Messages = append(req.Messages, chatMessage{Role: "system", Content: prompt.System})
	}
	req.Messages = append(req.Messages, chatMessage{Role: "user", Content: prompt.Human})
	if prompt.JSON {
		req.ResponseFormat = &chatResponseFormat{Type: "json_object"}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s request: %w", c.Name(), err)
	}

	httpReq, err := http.NewRequestWithContext(httpclient.WithProvider(ctx, c.displayName), http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode >= 400 {
		return "", &StatusError{Provider: c.displayName, StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("failed to decode %s response: %w", c.Name(), err)
	}

	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == "" {
		return "", ErrNoResponse
	}
	return chatResp.Choices[0].Message.Content, nil
}
