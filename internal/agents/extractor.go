package agents

import (
	"encoding/json"
	"strings"

	"github.com/dhanushperumalla/ai-post-generator/internal/models"
)

// ExtractContent pulls the three post variants out of a raw completion.
// It tolerates a markdown code fence and leading prose before the JSON.
// The first '{' always wins, so an earlier unrelated object would be picked
// up instead of the payload.
func ExtractContent(raw string) (models.GeneratedContent, error) {
	contentStr := strings.TrimSpace(raw)

	if strings.HasPrefix(contentStr, "```") {
		contentStr = stripCodeFence(contentStr)
	}

	if idx := strings.Index(contentStr, "{"); idx != -1 {
		contentStr = contentStr[idx:]
	}

	var decoded any
	if err := json.Unmarshal([]byte(contentStr), &decoded); err != nil {
		return models.GeneratedContent{}, &MalformedResponseError{Raw: raw, Err: err}
	}
	// valid JSON that is not an object carries no variants
	fields, ok := decoded.(map[string]any)
	if !ok {
		return models.GeneratedContent{}, ErrInvalidShape
	}

	content := models.GeneratedContent{
		Content1: stringField(fields, models.FieldContent1),
		Content2: stringField(fields, models.FieldContent2),
		Content3: stringField(fields, models.FieldContent3),
	}
	if content.Content1 == "" || content.Content2 == "" || content.Content3 == "" {
		return models.GeneratedContent{}, ErrInvalidShape
	}

	return content, nil
}

// stripCodeFence removes an opening ``` or ```json line and a closing ``` line
func stripCodeFence(s string) string {
	if idx := strings.Index(s, "\n"); idx != -1 {
		opening := strings.TrimSpace(s[:idx])
		if opening == "```" || opening == "```json" {
			s = s[idx+1:]
		}
	}
	s = strings.TrimRight(s, " \t\r\n")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func stringField(fields map[string]any, key string) string {
	v, ok := fields[key].(string)
	if !ok {
		return ""
	}
	return v
}
