package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/question-matcher/internal/types"
)

// MockLLMClient implements Client for testing
type MockLLMClient struct {
	GenerateContentFunc func(ctx context.Context, prompt string, tier ModelTier) (string, error)
	GenerateJSONFunc    func(ctx context.Context, prompt string, tier ModelTier) (string, error)
	GetModelFunc        func(tier ModelTier) string
	CloseFunc           func() error
}

func (m *MockLLMClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	if m.GenerateContentFunc != nil {
		return m.GenerateContentFunc(ctx, prompt, tier)
	}
	return "", nil
}

func (m *MockLLMClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, prompt, tier)
	}
	return `{"title": "UNKNOWN", "confidence": 0}`, nil
}

func (m *MockLLMClient) GetModel(tier ModelTier) string {
	if m.GetModelFunc != nil {
		return m.GetModelFunc(tier)
	}
	return "mock-model"
}

func (m *MockLLMClient) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

func jsonReply(body string) *MockLLMClient {
	return &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ ModelTier) (string, error) {
			return body, nil
		},
	}
}

func TestSuggestTitle_Success(t *testing.T) {
	var gotPrompt string
	var gotTier ModelTier
	client := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, prompt string, tier ModelTier) (string, error) {
			gotPrompt, gotTier = prompt, tier
			return "```json\n{\"title\": \"Word Ladder\", \"confidence\": 0.9}\n```", nil
		},
	}

	title, err := NewClientSuggester(client).SuggestTitle(context.Background(), "shortest word transformation sequence", types.QuestionTypeCoding)
	require.NoError(t, err)
	assert.Equal(t, "Word Ladder", title)
	assert.Equal(t, TierLite, gotTier)
	assert.Contains(t, gotPrompt, "shortest word transformation sequence")
	assert.Contains(t, gotPrompt, "Question type hint: coding")
}

func TestSuggestTitle_NoHint(t *testing.T) {
	var gotPrompt string
	client := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, prompt string, _ ModelTier) (string, error) {
			gotPrompt = prompt
			return `{"title": "Two Sum"}`, nil
		},
	}

	title, err := NewClientSuggester(client).SuggestTitle(context.Background(), "pair summing to target", types.QuestionTypeNone)
	require.NoError(t, err)
	assert.Equal(t, "Two Sum", title)
	assert.Contains(t, gotPrompt, "Question type hint: none")
}

func TestSuggestTitle_Unknown(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "unknown marker", body: `{"title": "UNKNOWN", "confidence": 0.2}`},
		{name: "lowercase unknown", body: `{"title": "unknown"}`},
		{name: "empty title", body: `{"title": "  ", "confidence": 0.9}`},
		{name: "low confidence", body: `{"title": "Two Sum", "confidence": 0.5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClientSuggester(jsonReply(tt.body)).SuggestTitle(context.Background(), "design a rate limiter", types.QuestionTypeSystemDesign)
			assert.ErrorIs(t, err, ErrUnknownTitle)
		})
	}
}

func TestSuggestTitle_CleansTitle(t *testing.T) {
	title, err := NewClientSuggester(jsonReply(`{"title": " \"House Robber.\" ", "confidence": 0.8}`)).
		SuggestTitle(context.Background(), "rob houses without adjacent ones", types.QuestionTypeCoding)
	require.NoError(t, err)
	assert.Equal(t, "House Robber", title)
}

func TestSuggestTitle_InvalidJSON(t *testing.T) {
	_, err := NewClientSuggester(jsonReply("I think it is Two Sum")).
		SuggestTitle(context.Background(), "pair summing to target", types.QuestionTypeCoding)

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestSuggestTitle_ClientError(t *testing.T) {
	cause := errors.New("quota exceeded")
	client := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, _ ModelTier) (string, error) {
			return "", cause
		},
	}

	_, err := NewClientSuggester(client).SuggestTitle(context.Background(), "pair summing to target", types.QuestionTypeCoding)

	var apiErr *APICallError
	require.ErrorAs(t, err, &apiErr)
	assert.ErrorIs(t, err, cause)
}

func TestSuggestTitle_DeadlinePropagates(t *testing.T) {
	client := &MockLLMClient{
		GenerateJSONFunc: func(ctx context.Context, _ string, _ ModelTier) (string, error) {
			<-ctx.Done()
			return "", &APICallError{Message: "failed to generate content", Cause: ctx.Err()}
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClientSuggester(client).SuggestTitle(ctx, "pair summing to target", types.QuestionTypeCoding)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSuggestTitle_Plain(t *testing.T) {
	var gotPrompt string
	client := &MockLLMClient{
		GenerateContentFunc: func(_ context.Context, prompt string, _ ModelTier) (string, error) {
			gotPrompt = prompt
			return "Climbing Stairs\nThis is a classic DP problem.", nil
		},
	}
	s := &ClientSuggester{Client: client, Plain: true}

	title, err := s.SuggestTitle(context.Background(), "count ways to reach the top step", types.QuestionTypeCoding)
	require.NoError(t, err)
	assert.Equal(t, "Climbing Stairs", title)
	assert.Contains(t, gotPrompt, "count ways to reach the top step")

	client.GenerateContentFunc = func(_ context.Context, _ string, _ ModelTier) (string, error) {
		return "UNKNOWN", nil
	}
	_, err = s.SuggestTitle(context.Background(), "tell me about yourself", types.QuestionTypeBehavioral)
	assert.ErrorIs(t, err, ErrUnknownTitle)
}
