package slack

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/slack-go/slack"
	"go.uber.org/zap"

	"github.com/dhanushperumalla/ai-post-generator/internal/models"
)

var ErrNotConfigured = errors.New("slack sharing is not configured")

type Client struct {
	api       *slack.Client
	channelID string
	logger    *zap.Logger
}

// NewClient builds a client for sharing saved posts to one channel.
// An empty token or channel leaves the client unconfigured.
func NewClient(token, channelID string, logger *zap.Logger, opts ...slack.Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		channelID: strings.TrimSpace(channelID),
		logger:    logger,
	}
	if token = strings.TrimSpace(token); token != "" {
		c.api = slack.New(token, opts...)
	}
	return c
}

func (c *Client) Configured() bool {
	return c != nil && c.api != nil && c.channelID != ""
}

func (c *Client) SendMessage(ctx context.Context, message string) error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	_, _, err := c.api.PostMessageContext(ctx,
		c.channelID,
		slack.MsgOptionText(message, false),
	)
	return err
}

// SharePost posts a saved text post as a message, or uploads a saved image as a file
func (c *Client) SharePost(ctx context.Context, post models.SavedPost) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	if !post.IsImage() {
		if err := c.SendMessage(ctx, post.Content); err != nil {
			return fmt.Errorf("failed to share post: %w", err)
		}
		c.logger.Info("📤 Shared post to Slack", zap.String("channel", c.channelID))
		return nil
	}

	img, err := models.ParseDataURI(post.Content)
	if err != nil {
		return fmt.Errorf("failed to decode saved image: %w", err)
	}

	_, err = c.api.UploadFileV2Context(ctx, slack.UploadFileV2Parameters{
		Channel:  c.channelID,
		Filename: "generated-image" + models.ImageExtension(img.MimeType),
		FileSize: len(img.Data),
		Reader:   bytes.NewReader(img.Data),
		Title:    "Generated image",
	})
	if err != nil {
		return fmt.Errorf("failed to share image: %w", err)
	}

	c.logger.Info("📤 Shared image to Slack", zap.String("channel", c.channelID))
	return nil
}
