package completion

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quiz-forge/internal/config"
	"quiz-forge/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

// MockModel is a testify mock for llms.Model
type MockModel struct {
	mock.Mock
}

func (m *MockModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	args := m.Called(ctx, messages, options)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*llms.ContentResponse), args.Error(1)
}

func (m *MockModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	args := m.Called(ctx, prompt, options)
	return args.String(0), args.Error(1)
}

func testLLMConfig() config.LLMConfig {
	return config.LLMConfig{
		Provider:    config.ProviderOpenAI,
		Timeout:     5 * time.Second,
		Temperature: 0.7,
		MaxTokens:   2000,
		OpenAI:      config.OpenAIConfig{APIKey: "sk-test", Model: "gpt-3.5-turbo"},
		Ollama:      config.OllamaConfig{ServerURL: "http://localhost:11434", Model: "llama3"},
	}
}

func TestLangchainCompletionClient_Complete(t *testing.T) {
	model := new(MockModel)
	model.On("GenerateContent", mock.Anything, mock.MatchedBy(func(msgs []llms.MessageContent) bool {
		if len(msgs) != 1 || msgs[0].Role != schema.ChatMessageTypeHuman {
			return false
		}
		text, ok := msgs[0].Parts[0].(llms.TextContent)
		return ok && text.Text == "make a quiz"
	}), mock.Anything).Return(&llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: "  [{\"question\":\"Q\"}]\n"}},
	}, nil).Once()

	client := NewLangchainCompletionClient(model, "fake", testLLMConfig())

	got, err := client.Complete(context.Background(), "make a quiz")
	require.NoError(t, err)
	assert.Equal(t, `[{"question":"Q"}]`, got)
	model.AssertExpectations(t)
}

func TestLangchainCompletionClient_PassesGenerationOptions(t *testing.T) {
	model := new(MockModel)
	model.On("GenerateContent", mock.Anything, mock.Anything, mock.MatchedBy(func(opts []llms.CallOption) bool {
		var callOpts llms.CallOptions
		for _, opt := range opts {
			opt(&callOpts)
		}
		return callOpts.Temperature == 0.7 && callOpts.MaxTokens == 2000
	})).Return(&llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: "[]"}}}, nil).Once()

	client := NewLangchainCompletionClient(model, "fake", testLLMConfig())

	_, err := client.Complete(context.Background(), "prompt")
	require.NoError(t, err)
	model.AssertExpectations(t)
}

func TestLangchainCompletionClient_UpstreamError(t *testing.T) {
	model := new(MockModel)
	model.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("429 Too Many Requests")).Once()

	client := NewLangchainCompletionClient(model, "fake", testLLMConfig())

	_, err := client.Complete(context.Background(), "prompt")
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeUpstreamUnavailable))
	assert.Contains(t, err.Error(), "429 Too Many Requests")
}

func TestLangchainCompletionClient_Timeout(t *testing.T) {
	model := new(MockModel)
	model.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, context.DeadlineExceeded).Once()

	client := NewLangchainCompletionClient(model, "fake", testLLMConfig())

	_, err := client.Complete(context.Background(), "prompt")
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeUpstreamUnavailable))
	assert.Contains(t, err.Error(), "timed out")
}

func TestNewOpenAICompletionClient_Validation(t *testing.T) {
	cfg := testLLMConfig()
	cfg.OpenAI.APIKey = ""
	_, err := NewOpenAICompletionClient(cfg)
	assert.True(t, domain.IsCode(err, domain.CodeConfigurationMissing))

	cfg = testLLMConfig()
	cfg.OpenAI.Model = ""
	_, err = NewOpenAICompletionClient(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "model name cannot be empty")
}

func TestNewOllamaCompletionClient_Validation(t *testing.T) {
	cfg := testLLMConfig()
	cfg.Ollama.ServerURL = ""
	_, err := NewOllamaCompletionClient(cfg)
	assert.Error(t, err)

	cfg = testLLMConfig()
	client, err := NewOllamaCompletionClient(cfg)
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNew_SelectsProvider(t *testing.T) {
	cfg := testLLMConfig()
	client, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, config.ProviderOpenAI, client.provider)

	cfg.Provider = config.ProviderOllama
	client, err = New(cfg)
	require.NoError(t, err)
	assert.Equal(t, config.ProviderOllama, client.provider)

	cfg.Provider = "anthropic"
	_, err = New(cfg)
	assert.Error(t, err)
}

func TestOpenAICompletionClient_AgainstFakeServer(t *testing.T) {
	var gotAuth string
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1700000000,
			"model":   "gpt-3.5-turbo",
			"choices": []map[string]interface{}{{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]interface{}{
					"role":    "assistant",
					"content": "[]",
				},
			}},
			"usage": map[string]interface{}{"prompt_tokens": 10, "completion_tokens": 1, "total_tokens": 11},
		})
	}))
	defer server.Close()

	cfg := testLLMConfig()
	cfg.OpenAI.BaseURL = server.URL
	client, err := NewOpenAICompletionClient(cfg)
	require.NoError(t, err)

	got, err := client.Complete(context.Background(), "make a quiz")
	require.NoError(t, err)
	assert.Equal(t, "[]", got)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "gpt-3.5-turbo", gotBody["model"])
}
