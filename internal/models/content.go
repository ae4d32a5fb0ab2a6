package models

import "fmt"

// Generated content field names, as they appear in JSON and in URLs
const (
	FieldContent1 = "content1"
	FieldContent2 = "content2"
	FieldContent3 = "content3"
	FieldImage    = "image"
)

// GeneratedContent is the result of one successful generation
type GeneratedContent struct {
	Content1 string `json:"content1,omitempty"`
	Content2 string `json:"content2,omitempty"`
	Content3 string `json:"content3,omitempty"`
	Image    string `json:"image,omitempty"` // data URI
}

// Field returns the value stored under a field name
func (c *GeneratedContent) Field(name string) (string, error) {
	switch name {
	case FieldContent1:
		return c.Content1, nil
	case FieldContent2:
		return c.Content2, nil
	case FieldContent3:
		return c.Content3, nil
	case FieldImage:
		return c.Image, nil
	}
	return "", fmt.Errorf("unknown field %q", name)
}

// ClearField blanks a single field, leaving the rest untouched
func (c *GeneratedContent) ClearField(name string) error {
	switch name {
	case FieldContent1:
		c.Content1 = ""
	case FieldContent2:
		c.Content2 = ""
	case FieldContent3:
		c.Content3 = ""
	case FieldImage:
		c.Image = ""
	default:
		return fmt.Errorf("unknown field %q", name)
	}
	return nil
}

// TextFields lists the non-empty text variants in display order
func (c *GeneratedContent) TextFields() []ContentField {
	var fields []ContentField
	for i, v := range []string{c.Content1, c.Content2, c.Content3} {
		if v == "" {
			continue
		}
		fields = append(fields, ContentField{
			Name:  fmt.Sprintf("content%d", i+1),
			Label: fmt.Sprintf("Post %d", i+1),
			Value: v,
		})
	}
	return fields
}

// IsEmpty reports whether every field has been removed
func (c *GeneratedContent) IsEmpty() bool {
	return c.Content1 == "" && c.Content2 == "" && c.Content3 == "" && c.Image == ""
}

// ContentField is one named text variant, used when rendering result cards
type ContentField struct {
	Name  string
	Label string
	Value string
}
