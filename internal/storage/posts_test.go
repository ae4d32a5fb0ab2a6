package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhanushperumalla/ai-post-generator/internal/models"
)

func newTestPostStore() (*PostStore, *MemoryStore) {
	inner := NewMemoryStore(0, 0, nil)
	return NewPostStore(Scoped(inner, "session:test"), nil), inner
}

func TestPostStore_SavedPosts(t *testing.T) {
	ctx := context.Background()
	posts, _ := newTestPostStore()

	assert.Empty(t, posts.SavedPosts(ctx))

	_, err := posts.AppendSavedPost(ctx, models.NewTextPost("a"))
	require.NoError(t, err)
	_, err = posts.AppendSavedPost(ctx, models.NewTextPost("b"))
	require.NoError(t, err)
	saved, err := posts.AppendSavedPost(ctx, models.NewImagePost("data:image/jpeg;base64,aW1n"))
	require.NoError(t, err)

	assert.Len(t, saved, 3)
	assert.Equal(t, saved, posts.SavedPosts(ctx))
	assert.True(t, saved[2].IsImage())
}

func TestPostStore_DeleteSavedPost(t *testing.T) {
	ctx := context.Background()
	posts, _ := newTestPostStore()
	for _, c := range []string{"a", "b", "c"} {
		_, err := posts.AppendSavedPost(ctx, models.NewTextPost(c))
		require.NoError(t, err)
	}

	remaining, err := posts.DeleteSavedPost(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []models.SavedPost{models.NewTextPost("a"), models.NewTextPost("c")}, remaining)
	assert.Equal(t, remaining, posts.SavedPosts(ctx))

	_, err = posts.DeleteSavedPost(ctx, 5)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = posts.DeleteSavedPost(ctx, -1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestPostStore_UpdateSavedPost(t *testing.T) {
	ctx := context.Background()
	posts, _ := newTestPostStore()
	for _, c := range []string{"a", "b", "c"} {
		_, err := posts.AppendSavedPost(ctx, models.NewTextPost(c))
		require.NoError(t, err)
	}

	_, err := posts.UpdateSavedPost(ctx, 1, "B")
	require.NoError(t, err)
	assert.Equal(t, []models.SavedPost{
		models.NewTextPost("a"),
		models.NewTextPost("B"),
		models.NewTextPost("c"),
	}, posts.SavedPosts(ctx))

	_, err = posts.UpdateSavedPost(ctx, 3, "x")
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	post, err := posts.SavedPost(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "B", post.Content)
}

func TestPostStore_UnparseableSavedPostsReadAsEmpty(t *testing.T) {
	ctx := context.Background()
	posts, inner := newTestPostStore()
	require.NoError(t, inner.Set(ctx, "session:test:savedPosts", "not json"))

	assert.Empty(t, posts.SavedPosts(ctx))

	saved, err := posts.AppendSavedPost(ctx, models.NewTextPost("fresh"))
	require.NoError(t, err)
	assert.Len(t, saved, 1)
}

func TestPostStore_LastGenerated(t *testing.T) {
	ctx := context.Background()
	posts, inner := newTestPostStore()

	assert.Nil(t, posts.LastGenerated(ctx))

	generated := models.GeneratedContent{Content1: "a", Content2: "b", Content3: "c", Image: "data:image/jpeg;base64,aW1n"}
	require.NoError(t, posts.SetLastGenerated(ctx, generated))
	assert.Equal(t, &generated, posts.LastGenerated(ctx))

	reduced, err := posts.DeleteGeneratedField(ctx, models.FieldContent2)
	require.NoError(t, err)
	assert.Equal(t, "", reduced.Content2)
	assert.Equal(t, "a", reduced.Content1)

	raw, err := inner.Get(ctx, "session:test:generatedContent")
	require.NoError(t, err)
	assert.JSONEq(t, `{"content1":"a","content3":"c","image":"data:image/jpeg;base64,aW1n"}`, raw)

	_, err = posts.DeleteGeneratedField(ctx, "content9")
	assert.Error(t, err)

	for _, f := range []string{models.FieldContent1, models.FieldContent3, models.FieldImage} {
		_, err := posts.DeleteGeneratedField(ctx, f)
		require.NoError(t, err)
	}
	assert.Nil(t, posts.LastGenerated(ctx))
}

func TestPostStore_Preferences(t *testing.T) {
	ctx := context.Background()
	posts, _ := newTestPostStore()

	assert.Equal(t, models.DefaultPreferences(), posts.Preferences(ctx))

	prefs := models.Preferences{Theme: models.ThemeDark, SidebarOpen: false}
	require.NoError(t, posts.SetPreferences(ctx, prefs))
	assert.Equal(t, prefs, posts.Preferences(ctx))
}

func TestPostStore_Clear(t *testing.T) {
	ctx := context.Background()
	posts, inner := newTestPostStore()

	_, err := posts.AppendSavedPost(ctx, models.NewTextPost("a"))
	require.NoError(t, err)
	require.NoError(t, posts.SetLastGenerated(ctx, models.GeneratedContent{Content1: "a", Content2: "b", Content3: "c"}))
	require.NoError(t, posts.SetPreferences(ctx, models.Preferences{Theme: models.ThemeDark}))

	require.NoError(t, posts.Clear(ctx))
	assert.Equal(t, 0, inner.Len())
}

func TestPostStore_WriteFailure(t *testing.T) {
	backendErr := errors.New("unavailable")
	posts := NewPostStore(&failingStore{err: backendErr}, nil)

	_, err := posts.AppendSavedPost(context.Background(), models.NewTextPost("a"))
	var sErr *StorageError
	require.True(t, errors.As(err, &sErr))
	assert.Equal(t, KeySavedPosts, sErr.Key)

	// reads degrade to defaults
	assert.Empty(t, posts.SavedPosts(context.Background()))
	assert.Equal(t, models.DefaultPreferences(), posts.Preferences(context.Background()))
}
