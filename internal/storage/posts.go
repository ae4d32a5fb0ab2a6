package storage

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/dhanushperumalla/ai-post-generator/internal/models"
)

// Persisted keys
const (
	KeySavedPosts       = "savedPosts"
	KeyGeneratedContent = "generatedContent"
	KeyPreferences      = "preferences"
)

// PostStore is the typed view over one session's keys.
// Reads fall back to defaults on any failure; writes always replace the
// whole value.
type PostStore struct {
	store  Store
	logger *zap.Logger
}

func NewPostStore(store Store, logger *zap.Logger) *PostStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostStore{store: store, logger: logger}
}

// SavedPosts returns the saved sequence, empty when absent or unreadable
func (s *PostStore) SavedPosts(ctx context.Context) []models.SavedPost {
	posts, err := GetJSON[[]models.SavedPost](ctx, s.store, KeySavedPosts)
	if err != nil {
		s.logReadError(KeySavedPosts, err)
		return []models.SavedPost{}
	}
	if posts == nil {
		return []models.SavedPost{}
	}
	return posts
}

// AppendSavedPost adds post at the end of the sequence
func (s *PostStore) AppendSavedPost(ctx context.Context, post models.SavedPost) ([]models.SavedPost, error) {
	posts := append(s.SavedPosts(ctx), post)
	return posts, SetJSON(ctx, s.store, KeySavedPosts, posts)
}

// UpdateSavedPost replaces the content of the post at index
func (s *PostStore) UpdateSavedPost(ctx context.Context, index int, content string) ([]models.SavedPost, error) {
	posts := s.SavedPosts(ctx)
	if index < 0 || index >= len(posts) {
		return posts, ErrIndexOutOfRange
	}
	posts[index].Content = content
	return posts, SetJSON(ctx, s.store, KeySavedPosts, posts)
}

// DeleteSavedPost removes the post at index, keeping the order of the rest
func (s *PostStore) DeleteSavedPost(ctx context.Context, index int) ([]models.SavedPost, error) {
	posts := s.SavedPosts(ctx)
	if index < 0 || index >= len(posts) {
		return posts, ErrIndexOutOfRange
	}
	remaining := make([]models.SavedPost, 0, len(posts)-1)
	remaining = append(remaining, posts[:index]...)
	remaining = append(remaining, posts[index+1:]...)
	return remaining, SetJSON(ctx, s.store, KeySavedPosts, remaining)
}

// SavedPost returns the post at index
func (s *PostStore) SavedPost(ctx context.Context, index int) (models.SavedPost, error) {
	posts := s.SavedPosts(ctx)
	if index < 0 || index >= len(posts) {
		return models.SavedPost{}, ErrIndexOutOfRange
	}
	return posts[index], nil
}

// LastGenerated returns the mirrored last result, or nil when there is none
func (s *PostStore) LastGenerated(ctx context.Context) *models.GeneratedContent {
	content, err := GetJSON[models.GeneratedContent](ctx, s.store, KeyGeneratedContent)
	if err != nil {
		s.logReadError(KeyGeneratedContent, err)
		return nil
	}
	if content.IsEmpty() {
		return nil
	}
	return &content
}

// SetLastGenerated replaces the mirrored last result
func (s *PostStore) SetLastGenerated(ctx context.Context, content models.GeneratedContent) error {
	return SetJSON(ctx, s.store, KeyGeneratedContent, content)
}

// DeleteGeneratedField blanks one field and rewrites the reduced object
func (s *PostStore) DeleteGeneratedField(ctx context.Context, field string) (*models.GeneratedContent, error) {
	content := s.LastGenerated(ctx)
	if content == nil {
		return nil, nil
	}
	if err := content.ClearField(field); err != nil {
		return content, err
	}
	if err := SetJSON(ctx, s.store, KeyGeneratedContent, *content); err != nil {
		return content, err
	}
	if content.IsEmpty() {
		return nil, nil
	}
	return content, nil
}

// Preferences returns the session chrome state, defaults when absent
func (s *PostStore) Preferences(ctx context.Context) models.Preferences {
	prefs, err := GetJSON[models.Preferences](ctx, s.store, KeyPreferences)
	if err != nil {
		s.logReadError(KeyPreferences, err)
		return models.DefaultPreferences()
	}
	if prefs.Theme == "" {
		prefs.Theme = models.ThemeSystem
	}
	return prefs
}

func (s *PostStore) SetPreferences(ctx context.Context, prefs models.Preferences) error {
	return SetJSON(ctx, s.store, KeyPreferences, prefs)
}

// Clear drops every key of the session
func (s *PostStore) Clear(ctx context.Context) error {
	var errs []error
	for _, key := range []string{KeySavedPosts, KeyGeneratedContent, KeyPreferences} {
		if err := s.store.Remove(ctx, key); err != nil {
			errs = append(errs, &StorageError{Op: "remove", Key: key, Err: err})
		}
	}
	return errors.Join(errs...)
}

func (s *PostStore) logReadError(key string, err error) {
	if errors.Is(err, ErrNotFound) {
		return
	}
	s.logger.Warn("⚠️ Treating unreadable value as empty", zap.String("key", key), zap.Error(err))
}
