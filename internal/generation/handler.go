package generation

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dhanushperumalla/ai-post-generator/internal/agents"
	"github.com/dhanushperumalla/ai-post-generator/internal/models"
)

// TextGenerator returns the raw completion text for a request
type TextGenerator interface {
	GenerateText(ctx context.Context, req models.GenerationRequest) (string, error)
}

// ImageGenerator returns image bytes for a prompt
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (models.Image, error)
}

// Handler runs one text generation and, when asked, one image generation.
// The two calls are strictly sequential and neither is retried.
type Handler struct {
	text   TextGenerator
	image  ImageGenerator
	logger *zap.Logger
}

func NewHandler(text TextGenerator, image ImageGenerator, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		text:   text,
		image:  image,
		logger: logger,
	}
}

// Validate checks required inputs without touching the network
func Validate(req models.GenerationRequest) error {
	if missing := req.MissingFields(); len(missing) > 0 {
		return &agents.ValidationError{Fields: missing}
	}
	var invalid []string
	if !models.IsKnownPlatform(req.Platform) {
		invalid = append(invalid, "platform")
	}
	if !models.IsKnownTone(req.Tone) {
		invalid = append(invalid, "tone")
	}
	if len(invalid) > 0 {
		return &agents.ValidationError{Fields: invalid}
	}
	return nil
}

// Generate produces the merged result for one request
func (h *Handler) Generate(ctx context.Context, req models.GenerationRequest) (*models.GeneratedContent, error) {
	req.Normalize()
	if err := Validate(req); err != nil {
		return nil, err
	}

	raw, err := h.text.GenerateText(ctx, req)
	if err != nil {
		return nil, err
	}

	content, err := agents.ExtractContent(raw)
	if err != nil {
		h.logger.Error("❌ Failed to extract posts from completion",
			zap.Error(err),
			zap.String("raw", raw),
		)
		return nil, err
	}

	if req.IncludeImage {
		content.Image = h.attachImage(ctx, req.Topic)
	}

	h.logger.Info("✅ Generated posts",
		zap.String("platform", req.Platform),
		zap.Bool("image", content.Image != ""),
	)

	return &content, nil
}

// attachImage returns a data URI, or "" when the image call fails
func (h *Handler) attachImage(ctx context.Context, prompt string) string {
	if h.image == nil {
		return ""
	}
	img, err := h.image.GenerateImage(ctx, prompt)
	if err != nil {
		h.logger.Warn("⚠️ Image generation failed, continuing without image", zap.Error(err))
		return ""
	}
	return img.DataURI()
}

// UserMessage reduces any generation error to the single line shown in the banner
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to generate content: %v", err)
}
