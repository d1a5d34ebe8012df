package completion

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"quiz-forge/internal/config"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// LangchainCompletionClient implements domain.CompletionClient on top of any langchaingo model.
type LangchainCompletionClient struct {
	model    llms.Model
	provider string
	callOpts []llms.CallOption
}

// NewLangchainCompletionClient wraps an already constructed model.
func NewLangchainCompletionClient(model llms.Model, provider string, llmCfg config.LLMConfig) *LangchainCompletionClient {
	opts := []llms.CallOption{llms.WithTemperature(llmCfg.Temperature)}
	if llmCfg.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(llmCfg.MaxTokens))
	}
	return &LangchainCompletionClient{
		model:    model,
		provider: provider,
		callOpts: opts,
	}
}

// NewOpenAICompletionClient builds an OpenAI chat-completions client.
func NewOpenAICompletionClient(llmCfg config.LLMConfig) (*LangchainCompletionClient, error) {
	if strings.TrimSpace(llmCfg.OpenAI.APIKey) == "" {
		return nil, domain.NewConfigurationMissingError("OPENAI_API_KEY")
	}
	if llmCfg.OpenAI.Model == "" {
		return nil, fmt.Errorf("openai model name cannot be empty")
	}

	opts := []openai.Option{
		openai.WithToken(llmCfg.OpenAI.APIKey),
		openai.WithModel(llmCfg.OpenAI.Model),
		openai.WithHTTPClient(newHTTPClient(llmCfg.Timeout)),
	}
	if llmCfg.OpenAI.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(llmCfg.OpenAI.BaseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create LangchainGo OpenAI client: %w", err)
	}
	logger.Get().Info("Initialized OpenAI completion client", zap.String("model", llmCfg.OpenAI.Model))
	return NewLangchainCompletionClient(llm, config.ProviderOpenAI, llmCfg), nil
}

// NewOllamaCompletionClient builds a client for a local Ollama server.
func NewOllamaCompletionClient(llmCfg config.LLMConfig) (*LangchainCompletionClient, error) {
	if llmCfg.Ollama.ServerURL == "" {
		return nil, fmt.Errorf("ollama server url cannot be empty")
	}
	if llmCfg.Ollama.Model == "" {
		return nil, fmt.Errorf("ollama model name cannot be empty")
	}

	llm, err := ollama.New(
		ollama.WithServerURL(llmCfg.Ollama.ServerURL),
		ollama.WithModel(llmCfg.Ollama.Model),
		ollama.WithHTTPClient(newHTTPClient(llmCfg.Timeout)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create LangchainGo Ollama client: %w", err)
	}
	logger.Get().Info("Initialized Ollama completion client",
		zap.String("server_url", llmCfg.Ollama.ServerURL),
		zap.String("model", llmCfg.Ollama.Model))
	return NewLangchainCompletionClient(llm, config.ProviderOllama, llmCfg), nil
}

// New selects the adapter for llmCfg.Provider.
func New(llmCfg config.LLMConfig) (*LangchainCompletionClient, error) {
	switch llmCfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAICompletionClient(llmCfg)
	case config.ProviderOllama:
		return NewOllamaCompletionClient(llmCfg)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %q", llmCfg.Provider)
	}
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// Complete sends prompt as a single user message and returns the trimmed reply.
func (c *LangchainCompletionClient) Complete(ctx context.Context, prompt string) (string, error) {
	l := logger.Get()
	start := time.Now()

	response, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt, c.callOpts...)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			l.Error("Completion request timed out", zap.String("provider", c.provider), zap.Error(err))
			return "", domain.NewUpstreamUnavailableError(fmt.Errorf("%s request timed out: %w", c.provider, err))
		}
		l.Error("Failed to get response from completion provider", zap.String("provider", c.provider), zap.Error(err))
		return "", domain.NewUpstreamUnavailableError(err)
	}

	l.Debug("Completion received",
		zap.String("provider", c.provider),
		zap.Duration("duration", time.Since(start)),
		zap.Int("length", len(response)))
	return strings.TrimSpace(response), nil
}

var _ domain.CompletionClient = (*LangchainCompletionClient)(nil)
