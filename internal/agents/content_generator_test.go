package agents

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhanushperumalla/ai-post-generator/internal/models"
)

func newCompletionServer(t *testing.T, handler func(w http.ResponseWriter, req openai.ChatCompletionRequest)) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		handler(w, req)
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func writeCompletion(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"id":     "chatcmpl-1",
		"object": "chat.completion",
		"model":  DefaultLLMModel,
		"choices": []map[string]any{
			{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
			},
		},
	})
}

func testRequest() models.GenerationRequest {
	return models.GenerationRequest{
		Platform: "twitter",
		Topic:    "coffee",
		Tone:     "humorous",
	}
}

func TestGenerateText(t *testing.T) {
	server, calls := newCompletionServer(t, func(w http.ResponseWriter, req openai.ChatCompletionRequest) {
		assert.Equal(t, DefaultLLMModel, req.Model)
		assert.InDelta(t, 0.6, req.Temperature, 0.0001)
		assert.InDelta(t, 0.9, req.TopP, 0.0001)
		assert.Equal(t, 512, req.MaxTokens)
		if assert.Len(t, req.Messages, 2) {
			assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
			assert.Equal(t, openai.ChatMessageRoleUser, req.Messages[1].Role)
			assert.Contains(t, req.Messages[1].Content, "Create 3 humorous posts for twitter about coffee.")
		}

		writeCompletion(w, `{"content1":"a","content2":"b","content3":"c"}`)
	})

	agent := NewContentGeneratorAgent(ContentGeneratorConfig{
		APIKey:  "test-key",
		BaseURL: server.URL + "/v1/",
	})

	raw, err := agent.GenerateText(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, `{"content1":"a","content2":"b","content3":"c"}`, raw)
	assert.EqualValues(t, 1, atomic.LoadInt32(calls))
}

func TestGenerateText_APIError(t *testing.T) {
	server, calls := newCompletionServer(t, func(w http.ResponseWriter, _ openai.ChatCompletionRequest) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Invalid API key","type":"invalid_request_error"}}`))
	})

	agent := NewContentGeneratorAgent(ContentGeneratorConfig{
		APIKey:  "test-key",
		BaseURL: server.URL + "/v1",
	})

	_, err := agent.GenerateText(context.Background(), testRequest())
	require.Error(t, err)

	var pErr *ProviderError
	require.True(t, errors.As(err, &pErr))
	assert.Equal(t, DefaultLLMProvider, pErr.Provider)
	assert.Equal(t, http.StatusUnauthorized, pErr.StatusCode)
	assert.Equal(t, "Invalid API key", pErr.Message)
	// no retries
	assert.EqualValues(t, 1, atomic.LoadInt32(calls))
}

func TestGenerateText_EmptyCompletion(t *testing.T) {
	server, _ := newCompletionServer(t, func(w http.ResponseWriter, _ openai.ChatCompletionRequest) {
		writeCompletion(w, "")
	})

	agent := NewContentGeneratorAgent(ContentGeneratorConfig{
		APIKey:  "test-key",
		BaseURL: server.URL + "/v1",
	})

	_, err := agent.GenerateText(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrEmptyCompletion)

	var pErr *ProviderError
	assert.True(t, errors.As(err, &pErr))
}

func TestGenerateText_TokenNotConfigured(t *testing.T) {
	agent := NewContentGeneratorAgent(ContentGeneratorConfig{BaseURL: "http://127.0.0.1:1"})

	assert.False(t, agent.Configured())
	_, err := agent.GenerateText(context.Background(), testRequest())

	var tErr *TokenNotConfiguredError
	require.True(t, errors.As(err, &tErr))
	assert.Equal(t, "Nebius token not configured", err.Error())
}
