package ai

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"kennedy-digital-arts/backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	name  string
	text  string
	err   error
	calls int
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) Generate(ctx context.Context, req *GenerationRequest) (string, error) {
	p.calls++
	if p.err != nil {
		return "", p.err
	}
	return p.text, nil
}

func newTestLogger(buf *bytes.Buffer) *logger.Logger {
	return logger.New(logger.Config{Level: "warn", JSON: true, Output: buf})
}

func TestChainReturnsFirstSuccess(t *testing.T) {
	primary := &stubProvider{name: "gemini", text: "I believe art unites us."}
	secondary := &stubProvider{name: "openai", text: "should never be seen"}

	chain := NewChain(newTestLogger(&bytes.Buffer{}), primary, secondary)

	text, err := chain.Generate(context.Background(), &GenerationRequest{
		Prompt: "Share your vision for the arts",
	})

	require.NoError(t, err)
	assert.Equal(t, "I believe art unites us.", text)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 0, secondary.calls, "later providers must not be invoked after a success")
}

func TestChainAdvancesPastFailures(t *testing.T) {
	var buf bytes.Buffer
	primary := &stubProvider{name: "gemini", err: newProviderError("gemini", ReasonBadStatus, errors.New("status 500"))}
	secondary := &stubProvider{name: "openai", err: newProviderError("openai", ReasonNetwork, errors.New("connection refused"))}
	tertiary := &stubProvider{name: "local", text: "Fallback response"}

	chain := NewChain(newTestLogger(&buf), primary, secondary, tertiary)

	text, err := chain.Generate(context.Background(), &GenerationRequest{Prompt: "hello"})

	require.NoError(t, err)
	assert.Equal(t, "Fallback response", text)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, secondary.calls)
	assert.Equal(t, 1, tertiary.calls)
	assert.Equal(t, 2, strings.Count(buf.String(), "text provider failed"),
		"each failed provider should produce one failure log entry")
}

func TestChainExhaustionYieldsFallbackText(t *testing.T) {
	failure := errors.New("boom")
	providers := []TextProvider{
		&stubProvider{name: "gemini", err: newProviderError("gemini", ReasonMissingCredential, nil)},
		&stubProvider{name: "openai", err: newProviderError("openai", ReasonMalformed, failure)},
		&stubProvider{name: "local", err: newProviderError("local", ReasonNetwork, failure)},
	}

	chain := NewChain(newTestLogger(&bytes.Buffer{}), providers...)

	text, err := chain.Generate(context.Background(), &GenerationRequest{Prompt: "anything"})

	require.NoError(t, err, "provider failures must never escape to the caller")
	assert.Equal(t, FallbackText, text)
	for _, p := range providers {
		assert.Equal(t, 1, p.(*stubProvider).calls, "every provider is attempted exactly once")
	}
}

func TestChainEachProviderAttemptedOnce(t *testing.T) {
	p := &stubProvider{name: "gemini", err: newProviderError("gemini", ReasonBadStatus, errors.New("status 503"))}
	chain := NewChain(newTestLogger(&bytes.Buffer{}), p)

	_, err := chain.Generate(context.Background(), &GenerationRequest{Prompt: "x"})
	require.NoError(t, err)
	assert.Equal(t, 1, p.calls, "no retry within a single provider attempt")
}

func TestChainRejectsEmptyPrompt(t *testing.T) {
	p := &stubProvider{name: "gemini", text: "never"}
	chain := NewChain(newTestLogger(&bytes.Buffer{}), p)

	_, err := chain.Generate(context.Background(), &GenerationRequest{Prompt: "   "})
	assert.ErrorIs(t, err, ErrEmptyPrompt)
	assert.Equal(t, 0, p.calls, "validation failures are rejected before any provider call")
}

func TestChainProviderOrder(t *testing.T) {
	chain := NewChain(newTestLogger(&bytes.Buffer{}),
		&stubProvider{name: "gemini"},
		&stubProvider{name: "openai"},
		&stubProvider{name: "local"},
	)
	assert.Equal(t, []string{"gemini", "openai", "local"}, chain.Providers())
}
