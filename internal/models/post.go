package models

// SavedPost types
const (
	PostTypeText  = "text"
	PostTypeImage = "image"
)

// SavedPost is a user-kept copy of one generated text or image item
type SavedPost struct {
	Content string `json:"content"`
	Type    string `json:"type"` // "text" or "image"
}

// NewTextPost creates a saved text post
func NewTextPost(content string) SavedPost {
	return SavedPost{Content: content, Type: PostTypeText}
}

// NewImagePost creates a saved image post from a data URI
func NewImagePost(dataURI string) SavedPost {
	return SavedPost{Content: dataURI, Type: PostTypeImage}
}

// IsImage reports whether the post holds an image data URI
func (p SavedPost) IsImage() bool {
	return p.Type == PostTypeImage
}
