package models

import "strings"

// Supported platforms
const (
	PlatformTwitter   = "twitter"
	PlatformFacebook  = "facebook"
	PlatformInstagram = "instagram"
	PlatformLinkedIn  = "linkedin"
)

// Supported tones
const (
	ToneProfessional  = "professional"
	ToneCasual        = "casual"
	ToneHumorous      = "humorous"
	ToneInspirational = "inspirational"
)

// Option is a value/label pair for a select input
type Option struct {
	Value string
	Label string
}

var Platforms = []Option{
	{PlatformTwitter, "Twitter"},
	{PlatformFacebook, "Facebook"},
	{PlatformInstagram, "Instagram"},
	{PlatformLinkedIn, "LinkedIn"},
}

var Tones = []Option{
	{ToneProfessional, "Professional"},
	{ToneCasual, "Casual"},
	{ToneHumorous, "Humorous"},
	{ToneInspirational, "Inspirational"},
}

// GenerationRequest holds the form inputs for one generation
type GenerationRequest struct {
	Platform            string `json:"platform" form:"platform"`
	Topic               string `json:"topic" form:"topic"`
	Tone                string `json:"tone" form:"tone"`
	SpecialInstructions string `json:"specialInstructions" form:"specialInstructions"`
	IncludeImage        bool   `json:"includeImage" form:"includeImage"`
}

// Normalize trims surrounding whitespace from every text input
func (r *GenerationRequest) Normalize() {
	r.Platform = strings.ToLower(strings.TrimSpace(r.Platform))
	r.Topic = strings.TrimSpace(r.Topic)
	r.Tone = strings.ToLower(strings.TrimSpace(r.Tone))
	r.SpecialInstructions = strings.TrimSpace(r.SpecialInstructions)
}

// MissingFields returns the names of required inputs that are empty
func (r *GenerationRequest) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(r.Platform) == "" {
		missing = append(missing, "platform")
	}
	if strings.TrimSpace(r.Topic) == "" {
		missing = append(missing, "topic")
	}
	if strings.TrimSpace(r.Tone) == "" {
		missing = append(missing, "tone")
	}
	return missing
}

// IsKnownPlatform reports whether p is one of the supported platforms
func IsKnownPlatform(p string) bool {
	return hasOption(Platforms, p)
}

// IsKnownTone reports whether t is one of the supported tones
func IsKnownTone(t string) bool {
	return hasOption(Tones, t)
}

func hasOption(options []Option, value string) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}
