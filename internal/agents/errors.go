package agents

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedResponse means the completion was not JSON after cleanup
	ErrMalformedResponse = errors.New("failed to parse AI response as JSON")
	// ErrInvalidShape means the JSON lacked one of content1..content3
	ErrInvalidShape = errors.New("invalid response format from AI")
	// ErrEmptyCompletion means the provider answered without any message text
	ErrEmptyCompletion = errors.New("no content received from AI")
	// ErrEmptyImage means the image provider answered with zero bytes
	ErrEmptyImage = errors.New("received empty image data")
)

// ValidationError is returned before any network call when required inputs are missing
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "please fill in all required fields"
	}
	return "please fill in all required fields: " + strings.Join(e.Fields, ", ")
}

// ProviderError wraps a transport failure or non-success answer from an upstream API
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s request failed with status %d: %s", e.Provider, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s request failed: %s", e.Provider, msg)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// MalformedResponseError keeps the raw completion for diagnostics
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return ErrMalformedResponse.Error()
}

func (e *MalformedResponseError) Is(target error) bool {
	return target == ErrMalformedResponse
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// TokenNotConfiguredError is returned when a provider secret is absent
type TokenNotConfiguredError struct {
	Provider string
}

func (e *TokenNotConfiguredError) Error() string {
	return e.Provider + " token not configured"
}
