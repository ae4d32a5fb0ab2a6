package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratedContentJSON(t *testing.T) {
	data, err := json.Marshal(GeneratedContent{Content1: "a", Content2: "b", Content3: "c"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"content1":"a","content2":"b","content3":"c"}`, string(data))
}

func TestGeneratedContentFields(t *testing.T) {
	c := GeneratedContent{Content1: "a", Content2: "b", Content3: "c", Image: "data:image/jpeg;base64,AA=="}

	v, err := c.Field(FieldImage)
	require.NoError(t, err)
	assert.Equal(t, c.Image, v)

	_, err = c.Field("content4")
	assert.Error(t, err)

	require.NoError(t, c.ClearField(FieldContent2))
	fields := c.TextFields()
	require.Len(t, fields, 2)
	assert.Equal(t, ContentField{Name: "content1", Label: "Post 1", Value: "a"}, fields[0])
	assert.Equal(t, ContentField{Name: "content3", Label: "Post 3", Value: "c"}, fields[1])
	assert.False(t, c.IsEmpty())

	require.NoError(t, c.ClearField(FieldContent1))
	require.NoError(t, c.ClearField(FieldContent3))
	require.NoError(t, c.ClearField(FieldImage))
	assert.True(t, c.IsEmpty())
	assert.Error(t, c.ClearField("title"))
}

func TestGenerationRequest(t *testing.T) {
	req := GenerationRequest{Platform: " LinkedIn ", Topic: "  ", Tone: "Casual"}
	req.Normalize()

	assert.Equal(t, "linkedin", req.Platform)
	assert.Equal(t, "casual", req.Tone)
	assert.Equal(t, []string{"topic"}, req.MissingFields())
	assert.True(t, IsKnownPlatform(req.Platform))
	assert.True(t, IsKnownTone(req.Tone))
	assert.False(t, IsKnownPlatform("myspace"))
	assert.False(t, IsKnownTone(""))
}

func TestDataURI(t *testing.T) {
	img := Image{Data: []byte{1, 2, 3}, MimeType: "image/webp"}

	parsed, err := ParseDataURI(img.DataURI())
	require.NoError(t, err)
	assert.Equal(t, img, parsed)
	assert.Equal(t, ".webp", ImageExtension(parsed.MimeType))
	assert.Equal(t, ".jpg", ImageExtension("image/jpeg"))

	for _, bad := range []string{"", "image/png;base64,AA==", "data:image/png,AA==", "data:image/png;base64,%%%"} {
		_, err := ParseDataURI(bad)
		assert.ErrorIs(t, err, ErrInvalidDataURI, bad)
	}
}

func TestPreferences(t *testing.T) {
	prefs := DefaultPreferences()
	assert.Equal(t, ThemeSystem, prefs.Theme)
	assert.True(t, prefs.SidebarOpen)

	prefs.ToggleTheme()
	assert.Equal(t, ThemeDark, prefs.Theme)
	prefs.ToggleTheme()
	assert.Equal(t, ThemeLight, prefs.Theme)
	prefs.ToggleTheme()
	assert.Equal(t, ThemeDark, prefs.Theme)
}

func TestSavedPost(t *testing.T) {
	assert.False(t, NewTextPost("x").IsImage())
	assert.True(t, NewImagePost("data:image/jpeg;base64,AA==").IsImage())
}
