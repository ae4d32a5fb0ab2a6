package agents

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dhanushperumalla/ai-post-generator/internal/models"
)

const (
	DefaultImageModelURL = "https://api-inference.huggingface.co/models/ZB-Tech/Text-to-Image"
	DefaultImageProvider = "Hugging Face"

	maxImageBytes = 20 << 20
)

// ImageGeneratorConfig configures the text-to-image client
type ImageGeneratorConfig struct {
	Token      string
	ModelURL   string
	Provider   string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// ImageGeneratorAgent calls a hosted text-to-image inference endpoint
type ImageGeneratorAgent struct {
	token      string
	modelURL   string
	provider   string
	httpClient *http.Client
	logger     *zap.Logger
}

type imageRequest struct {
	Inputs string `json:"inputs"`
}

func NewImageGeneratorAgent(cfg ImageGeneratorConfig) *ImageGeneratorAgent {
	if cfg.ModelURL == "" {
		cfg.ModelURL = DefaultImageModelURL
	}
	if cfg.Provider == "" {
		cfg.Provider = DefaultImageProvider
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 120 * time.Second}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &ImageGeneratorAgent{
		token:      cfg.Token,
		modelURL:   cfg.ModelURL,
		provider:   cfg.Provider,
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger,
	}
}

// Configured reports whether the provider token is present
func (a *ImageGeneratorAgent) Configured() bool {
	return a.token != ""
}

// Provider returns the display name of the upstream API
func (a *ImageGeneratorAgent) Provider() string {
	return a.provider
}

// GenerateImage sends the prompt once and returns the image bytes
func (a *ImageGeneratorAgent) GenerateImage(ctx context.Context, prompt string) (models.Image, error) {
	if !a.Configured() {
		return models.Image{}, &TokenNotConfiguredError{Provider: a.provider}
	}

	jsonData, err := json.Marshal(imageRequest{Inputs: prompt})
	if err != nil {
		return models.Image{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.modelURL, bytes.NewReader(jsonData))
	if err != nil {
		return models.Image{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return models.Image{}, &ProviderError{Provider: a.provider, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return models.Image{}, &ProviderError{Provider: a.provider, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		a.logger.Warn("⚠️ Image API error",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return models.Image{}, &ProviderError{
			Provider:   a.provider,
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
		}
	}

	if len(body) == 0 {
		return models.Image{}, ErrEmptyImage
	}

	mimeType, _, _ := strings.Cut(resp.Header.Get("Content-Type"), ";")
	mimeType = strings.TrimSpace(mimeType)
	if !strings.HasPrefix(mimeType, "image/") {
		mimeType = ""
	}

	return models.Image{Data: body, MimeType: mimeType}, nil
}
