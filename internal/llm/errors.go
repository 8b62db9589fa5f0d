package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go"
	"google.golang.org/genai"

	apperrors "github.com/socialchef/sous/internal/errors"
)

// Error classifications
const (
	ErrorRateLimit      = "rate_limit"
	ErrorQuotaExhausted = "quota_exhausted"
	ErrorAuth           = "auth"
	ErrorServer         = "server_error"
	ErrorClient         = "client_error"
	ErrorNetwork        = "network"
	ErrorCanceled       = "canceled"
	ErrorUnknown        = "unknown"
)

// ProviderError represents a classified error from an AI provider
type ProviderError struct {
	Type     string
	Message  string
	Provider string
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	return e.Message
}

// StatusError is returned by providers that speak HTTP directly.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Body)
}

// ClassifyError analyzes an error and returns a ProviderError with classification
func ClassifyError(err error, provider string) *ProviderError {
	if err == nil {
		return nil
	}

	kind := classifyStatus(statusCode(err))
	if kind == "" {
		kind = classifyTransport(err)
	}
	if kind == "" {
		kind = classifyMessage(err.Error())
	}

	return &ProviderError{
		Type:     kind,
		Message:  err.Error(),
		Provider: provider,
	}
}

// IsRetryableError returns true if another provider might succeed where this one failed.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	switch ClassifyError(err, "").Type {
	case ErrorRateLimit, ErrorQuotaExhausted, ErrorServer, ErrorNetwork:
		return true
	default:
		return false
	}
}

var unavailableCodes = map[string]string{
	ErrorRateLimit:      "RATE_LIMIT",
	ErrorQuotaExhausted: "QUOTA_EXHAUSTED",
	ErrorAuth:           "AUTHENTICATION_FAILED",
	ErrorServer:         "SERVER_ERROR",
	ErrorClient:         "CLIENT_ERROR",
	ErrorNetwork:        "NETWORK",
	ErrorCanceled:       "CANCELED",
	ErrorUnknown:        "MODEL_CALL_FAILED",
}

// Unavailable converts a model client failure into a ModelUnavailable AppError.
// Errors that already are ModelUnavailable pass through unchanged.
func Unavailable(provider string, err error) error {
	if err == nil {
		return nil
	}
	if apperrors.IsType(err, apperrors.ErrorTypeModelUnavailable) {
		return err
	}
	classified := ClassifyError(err, provider)
	return apperrors.NewModelUnavailableError(
		fmt.Sprintf("%s model call failed (%s)", provider, classified.Type),
		unavailableCodes[classified.Type],
		err,
	)
}

func statusCode(err error) int {
	var oaiErr *openai.Error
	if errors.As(err, &oaiErr) {
		return oaiErr.StatusCode
	}
	var antErr *anthropic.Error
	if errors.As(err, &antErr) {
		return antErr.StatusCode
	}
	var genaiErr genai.APIError
	if errors.As(err, &genaiErr) {
		return genaiErr.Code
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}

func classifyStatus(code int) string {
	switch {
	case code == 0:
		return ""
	case code == 429:
		return ErrorRateLimit
	case code == 402:
		return ErrorQuotaExhausted
	case code == 401 || code == 403:
		return ErrorAuth
	case code >= 500:
		return ErrorServer
	case code >= 400:
		return ErrorClient
	default:
		return ""
	}
}

func classifyTransport(err error) string {
	if errors.Is(err, context.Canceled) {
		return ErrorCanceled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorNetwork
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return ErrorNetwork
	}
	return ""
}

func classifyMessage(msg string) string {
	switch {
	case containsAny(msg, "status 429", "http 429", "error 429", "rate limit", "too many requests"):
		return ErrorRateLimit
	case containsAny(msg, "status 402", "http 402", "quota", "insufficient credit", "credit exhausted", "billing", "resource_exhausted"):
		return ErrorQuotaExhausted
	case containsAny(msg, "status 401", "status 403", "http 401", "http 403", "error 401", "error 403",
		"unauthorized", "forbidden", "api key not valid", "invalid api key", "permission_denied"):
		return ErrorAuth
	case containsAny(msg, "status 5", "http 5", "error 5", "server error", "internal error", "unavailable", "overloaded"):
		return ErrorServer
	case containsAny(msg, "status 4", "http 4", "error 4", "bad request", "invalid_argument"):
		return ErrorClient
	case containsAny(msg, "connection refused", "connection reset", "no such host", "timeout", "eof"):
		return ErrorNetwork
	default:
		return ErrorUnknown
	}
}

// containsAny checks if s contains any of the substrings (case-insensitive)
func containsAny(s string, substrs ...string) bool {
	lower := strings.ToLower(s)
	for _, substr := range substrs {
		if strings.Contains(lower, substr) {
			return true
		}
	}
	return false
}
