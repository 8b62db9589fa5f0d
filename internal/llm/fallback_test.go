package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/socialchef/sous/internal/errors"
)

type mockClient struct {
	mock.Mock
	name string
}

func (m *mockClient) Complete(ctx context.Context, prompt Prompt) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *mockClient) Name() string {
	return m.name
}

var testPrompt = Prompt{Human: "Lasagna"}

func TestFallback_PrimarySucceeds(t *testing.T) {
	primary := &mockClient{name: "gemini"}
	secondary := &mockClient{name: "openai"}
	primary.On("Complete", mock.Anything, testPrompt).Return("Recipe text", nil)

	text, err := NewFallbackClient(primary, secondary).Complete(context.Background(), testPrompt)

	require.NoError(t, err)
	assert.Equal(t, "Recipe text", text)
	secondary.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestFallback_RetryableUsesSecondary(t *testing.T) {
	primary := &mockClient{name: "gemini"}
	secondary := &mockClient{name: "openai"}
	primary.On("Complete", mock.Anything, testPrompt).Return("", &StatusError{Provider: "Gemini", StatusCode: 503})
	secondary.On("Complete", mock.Anything, testPrompt).Return("Recipe text", nil)

	text, err := NewFallbackClient(primary, secondary).Complete(context.Background(), testPrompt)

	require.NoError(t, err)
	assert.Equal(t, "Recipe text", text)
	primary.AssertNumberOfCalls(t, "Complete", 1)
	secondary.AssertNumberOfCalls(t, "Complete", 1)
}

func TestFallback_NonRetryableReturnsOriginal(t *testing.T) {
	primary := &mockClient{name: "gemini"}
	secondary := &mockClient{name: "openai"}
	cause := &StatusError{Provider: "Gemini", StatusCode: 400}
	primary.On("Complete", mock.Anything, testPrompt).Return("", cause)

	_, err := NewFallbackClient(primary, secondary).Complete(context.Background(), testPrompt)

	assert.Same(t, cause, err)
	secondary.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestFallback_BothFail(t *testing.T) {
	primary := &mockClient{name: "gemini"}
	secondary := &mockClient{name: "openai"}
	primaryErr := &StatusError{Provider: "Gemini", StatusCode: 429}
	secondaryErr := errors.New("dial tcp: connection refused")
	primary.On("Complete", mock.Anything, testPrompt).Return("", primaryErr)
	secondary.On("Complete", mock.Anything, testPrompt).Return("", secondaryErr)

	_, err := NewFallbackClient(primary, secondary).Complete(context.Background(), testPrompt)

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeModelUnavailable))
	assert.ErrorIs(t, err, primaryErr)
	assert.ErrorIs(t, err, secondaryErr)
}

func TestFallback_Name(t *testing.T) {
	f := NewFallbackClient(&mockClient{name: "gemini"}, &mockClient{name: "groq"})
	assert.Equal(t, "gemini+groq", f.Name())
}
