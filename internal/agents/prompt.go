package agents

import (
	"fmt"
	"strings"

	"github.com/dhanushperumalla/ai-post-generator/internal/models"
)

const systemPrompt = "You are an expert social media content creator. Your task is to create compelling content for various social media platforms. Respond with ONLY the JSON object, no additional text or markdown."

const responseFormat = `Respond with ONLY the following JSON format, no additional text:
{
  "content1": "First post content",
  "content2": "Second post content",
  "content3": "Third post content"
}`

// Prompt is the two-message template sent to the completion endpoint
type Prompt struct {
	System string
	User   string
}

// BuildPostPrompt embeds the request inputs into the fixed template
func BuildPostPrompt(req models.GenerationRequest) Prompt {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Create 3 %s posts for %s about %s. ", req.Tone, req.Platform, req.Topic))
	if req.SpecialInstructions != "" {
		sb.WriteString(strings.TrimRight(req.SpecialInstructions, ". "))
		sb.WriteString(". ")
	}
	sb.WriteString(responseFormat)

	return Prompt{
		System: systemPrompt,
		User:   sb.String(),
	}
}
