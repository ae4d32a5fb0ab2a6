package models

import (
	"encoding/base64"
	"errors"
	"strings"
)

const defaultImageMimeType = "image/jpeg"

var ErrInvalidDataURI = errors.New("invalid data URI")

// Image is raw image bytes returned by the image provider
type Image struct {
	Data     []byte
	MimeType string
}

// DataURI encodes the image inline as base64 for direct display
func (i Image) DataURI() string {
	mimeType := i.MimeType
	if mimeType == "" {
		mimeType = defaultImageMimeType
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

// ParseDataURI decodes a base64 data URI back into an Image
func ParseDataURI(uri string) (Image, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return Image{}, ErrInvalidDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return Image{}, ErrInvalidDataURI
	}
	mimeType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return Image{}, ErrInvalidDataURI
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Image{}, ErrInvalidDataURI
	}
	if mimeType == "" {
		mimeType = defaultImageMimeType
	}
	return Image{Data: data, MimeType: mimeType}, nil
}

// ImageExtension picks a file extension for a mime type
func ImageExtension(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
