package ai

import (
	"context"
	"errors"
	"fmt"
)

// ErrEmptyPrompt is returned when a generation request carries no prompt
// text. This is a caller validation failure, rejected before any network
// call.
var ErrEmptyPrompt = errors.New("prompt must not be empty")

// Failure reasons reported by provider adapters. The chain treats all of
// them the same way: log, count, advance to the next provider.
const (
	ReasonMissingCredential = "missing_credential"
	ReasonNetwork           = "network"
	ReasonBadStatus         = "bad_status"
	ReasonMalformed         = "malformed_response"
	ReasonCircuitOpen       = "circuit_open"
)

// Turn is a single prior exchange in a conversation.
type Turn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// GenerationRequest carries one prompt plus optional conversation context.
// It is built fresh per user turn and not retained.
type GenerationRequest struct {
	Prompt       string
	SystemPrompt string
	History      []Turn
}

// TextProvider generates natural-language text for a request.
type TextProvider interface {
	Name() string
	Generate(ctx context.Context, req *GenerationRequest) (string, error)
}

// ProviderError describes why a single provider attempt failed.
type ProviderError struct {
	Provider string
	Reason   string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Reason)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func newProviderError(provider, reason string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Reason: reason, Err: err}
}
