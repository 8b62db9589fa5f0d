package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"google.golang.org/genai"

	apperrors "github.com/socialchef/sous/internal/errors"
)

func TestClassifyError_Messages(t *testing.T) {
	tests := []struct {
		msg  string
		want string
	}{
		{"API error: status 429", ErrorRateLimit},
		{"rate limit exceeded", ErrorRateLimit},
		{"Too Many Requests", ErrorRateLimit},
		{"API error: status 402", ErrorQuotaExhausted},
		{"insufficient credits", ErrorQuotaExhausted},
		{"RESOURCE_EXHAUSTED: quota exceeded", ErrorQuotaExhausted},
		{"HTTP 401", ErrorAuth},
		{"API key not valid. Please pass a valid API key.", ErrorAuth},
		{"API error: status 500", ErrorServer},
		{"HTTP 503", ErrorServer},
		{"Internal Server Error", ErrorServer},
		{"API error: status 400", ErrorClient},
		{"bad request", ErrorClient},
		{"dial tcp: connection refused", ErrorNetwork},
		{"something unexpected happened", ErrorUnknown},
	}

	for _, tt := range tests {
		got := ClassifyError(errors.New(tt.msg), "groq")
		if got.Type != tt.want {
			t.Errorf("ClassifyError(%q) = %s, want %s", tt.msg, got.Type, tt.want)
		}
		if got.Provider != "groq" {
			t.Errorf("Expected provider 'groq', got %s", got.Provider)
		}
	}
}

func TestClassifyError_StatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"groq rate limit", &StatusError{Provider: "Groq", StatusCode: 429}, ErrorRateLimit},
		{"groq wrapped auth", fmt.Errorf("call: %w", &StatusError{Provider: "Groq", StatusCode: 401}), ErrorAuth},
		{"gemini client", genai.APIError{Code: 404, Message: "model not found"}, ErrorClient},
		{"gemini quota", genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED"}, ErrorRateLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyError(tt.err, "x").Type; got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClassifyError_Context(t *testing.T) {
	if got := ClassifyError(context.Canceled, "gemini").Type; got != ErrorCanceled {
		t.Errorf("expected canceled, got %s", got)
	}
	if got := ClassifyError(fmt.Errorf("post: %w", context.DeadlineExceeded), "gemini").Type; got != ErrorNetwork {
		t.Errorf("expected network, got %s", got)
	}
}

func TestClassifyError_Nil(t *testing.T) {
	if ClassifyError(nil, "groq") != nil {
		t.Error("Expected nil for nil error")
	}
}

func TestIsRetryableError(t *testing.T) {
	retryable := []error{
		&StatusError{StatusCode: 429},
		&StatusError{StatusCode: 503},
		errors.New("quota exceeded"),
		context.DeadlineExceeded,
	}
	for _, err := range retryable {
		if !IsRetryableError(err) {
			t.Errorf("Expected %v to be retryable", err)
		}
	}

	notRetryable := []error{
		nil,
		&StatusError{StatusCode: 400},
		&StatusError{StatusCode: 401},
		context.Canceled,
		ErrNoResponse,
	}
	for _, err := range notRetryable {
		if IsRetryableError(err) {
			t.Errorf("Expected %v to not be retryable", err)
		}
	}
}

func TestUnavailable(t *testing.T) {
	if Unavailable("gemini", nil) != nil {
		t.Error("Expected nil for nil error")
	}

	cause := &StatusError{Provider: "Groq", StatusCode: 429, Body: "slow down"}
	err := Unavailable("groq", cause)

	appErr, ok := apperrors.As(err)
	if !ok {
		t.Fatalf("Expected AppError, got %T", err)
	}
	if appErr.Type != apperrors.ErrorTypeModelUnavailable {
		t.Errorf("Expected MODEL_UNAVAILABLE, got %s", appErr.Type)
	}
	if appErr.ErrorCode != "RATE_LIMIT" {
		t.Errorf("Expected RATE_LIMIT code, got %s", appErr.ErrorCode)
	}
	if !errors.Is(err, cause) {
		t.Error("Expected cause to be preserved")
	}

	// Already classified errors are not wrapped twice.
	if again := Unavailable("groq", err); again != err {
		t.Error("Expected ModelUnavailable error to pass through unchanged")
	}
}
