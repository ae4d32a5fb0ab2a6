package agents

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/dhanushperumalla/ai-post-generator/internal/models"
)

const (
	DefaultLLMBaseURL  = "https://api.studio.nebius.ai/v1"
	DefaultLLMModel    = "meta-llama/Meta-Llama-3.1-70B-Instruct-fast"
	DefaultLLMProvider = "Nebius"

	temperature = 0.6
	maxTokens   = 512
	topP        = 0.9
)

// ContentGeneratorConfig configures the OpenAI-compatible completion client
type ContentGeneratorConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	Provider   string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// ContentGeneratorAgent asks the hosted LLM for three post variants
type ContentGeneratorAgent struct {
	apiKey   string
	model    string
	provider string
	client   *openai.Client
	logger   *zap.Logger
}

func NewContentGeneratorAgent(cfg ContentGeneratorConfig) *ContentGeneratorAgent {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultLLMBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultLLMModel
	}
	if cfg.Provider == "" {
		cfg.Provider = DefaultLLMProvider
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.HTTPClient != nil {
		clientConfig.HTTPClient = cfg.HTTPClient
	}

	return &ContentGeneratorAgent{
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		provider: cfg.Provider,
		client:   openai.NewClientWithConfig(clientConfig),
		logger:   cfg.Logger,
	}
}

// Configured reports whether the provider token is present
func (a *ContentGeneratorAgent) Configured() bool {
	return a.apiKey != ""
}

// Provider returns the display name of the upstream API
func (a *ContentGeneratorAgent) Provider() string {
	return a.provider
}

// GenerateText issues exactly one chat completion and returns the raw message text
func (a *ContentGeneratorAgent) GenerateText(ctx context.Context, req models.GenerationRequest) (string, error) {
	if !a.Configured() {
		return "", &TokenNotConfiguredError{Provider: a.provider}
	}

	prompt := BuildPostPrompt(req)

	a.logger.Info("📝 Requesting post variations",
		zap.String("platform", req.Platform),
		zap.String("topic", req.Topic),
		zap.String("tone", req.Tone),
		zap.String("model", a.model),
	)

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		TopP:        topP,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.System},
			{Role: openai.ChatMessageRoleUser, Content: prompt.User},
		},
	})
	if err != nil {
		a.logger.Error("❌ Completion request failed", zap.Error(err))
		return "", a.providerError(err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &ProviderError{Provider: a.provider, Message: ErrEmptyCompletion.Error(), Err: ErrEmptyCompletion}
	}

	return resp.Choices[0].Message.Content, nil
}

func (a *ContentGeneratorAgent) providerError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &ProviderError{
			Provider:   a.provider,
			StatusCode: apiErr.HTTPStatusCode,
			Message:    apiErr.Message,
			Err:        err,
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &ProviderError{
			Provider:   a.provider,
			StatusCode: reqErr.HTTPStatusCode,
			Err:        err,
		}
	}

	return &ProviderError{Provider: a.provider, Err: err}
}
