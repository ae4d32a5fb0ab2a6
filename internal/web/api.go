package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dhanushperumalla/ai-post-generator/internal/agents"
	"github.com/dhanushperumalla/ai-post-generator/internal/generation"
	"github.com/dhanushperumalla/ai-post-generator/internal/models"
)

type imageRequest struct {
	Prompt string `json:"prompt"`
}

func (s *Server) handleAPIGenerate(c *gin.Context) {
	if s.text != nil && !s.text.Configured() {
		err := &agents.TokenNotConfiguredError{Provider: s.text.Provider()}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var req models.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	if len(req.MissingFields()) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	sess := sessionFrom(c)
	release, err := s.guard.Acquire(sess.ID)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	defer release()

	content, err := s.generator.Generate(c.Request.Context(), req)
	if err != nil {
		var vErr *agents.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
			return
		}
		s.logger.Error("❌ Generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": generation.UserMessage(err)})
		return
	}

	c.JSON(http.StatusOK, content)
}

func (s *Server) handleAPIGenerateImage(c *gin.Context) {
	if s.image == nil || !s.image.Configured() {
		provider := agents.DefaultImageProvider
		if s.image != nil {
			provider = s.image.Provider()
		}
		err := &agents.TokenNotConfiguredError{Provider: provider}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var req imageRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Prompt) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	img, err := s.image.GenerateImage(c.Request.Context(), req.Prompt)
	if err != nil {
		s.logger.Error("❌ Image generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Image generation failed: %v", err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"image": img.DataURI()})
}
