package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiProviderParsesCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Contents)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Art is the great unifier."}]}}]}`))
	}))
	defer server.Close()

	provider := NewGeminiProvider("test-key", WithGeminiBaseURL(server.URL))

	text, err := provider.Generate(context.Background(), &GenerationRequest{
		Prompt:       "Share your vision for the arts",
		SystemPrompt: "You are President John F. Kennedy.",
	})

	require.NoError(t, err)
	assert.Equal(t, "Art is the great unifier.", text)
}

func TestGeminiProviderMissingCredential(t *testing.T) {
	provider := NewGeminiProvider("")

	_, err := provider.Generate(context.Background(), &GenerationRequest{Prompt: "hello"})

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ReasonMissingCredential, perr.Reason)
}

func TestGeminiProviderBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	provider := NewGeminiProvider("test-key", WithGeminiBaseURL(server.URL))

	_, err := provider.Generate(context.Background(), &GenerationRequest{Prompt: "hello"})

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ReasonBadStatus, perr.Reason)
}

func TestGeminiProviderMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	provider := NewGeminiProvider("test-key", WithGeminiBaseURL(server.URL))

	_, err := provider.Generate(context.Background(), &GenerationRequest{Prompt: "hello"})

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ReasonMalformed, perr.Reason)
}

func TestOpenAIProviderBuildsConversation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openAIRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4", req.Model)
		assert.Equal(t, 150, req.MaxTokens)
		require.Len(t, req.Messages, 4) // system, two history turns, prompt
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "assistant", req.Messages[2].Role)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"Indeed."}}]}`))
	}))
	defer server.Close()

	provider := NewOpenAIProvider("test-key", WithOpenAIBaseURL(server.URL))

	text, err := provider.Generate(context.Background(), &GenerationRequest{
		Prompt:       "And the arts?",
		SystemPrompt: "You are Abraham Lincoln.",
		History: []Turn{
			{Role: "user", Content: "Good evening."},
			{Role: "assistant", Content: "Good evening to you."},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "Indeed.", text)
}

func TestLocalModelProviderEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generate", r.URL.Path)

		var req localModelRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "hello there", req.Query)

		w.Write([]byte(`{"response":"General Kenobi."}`))
	}))
	defer server.Close()

	provider := NewLocalModelProvider(server.URL)

	text, err := provider.Generate(context.Background(), &GenerationRequest{Prompt: "hello there"})

	require.NoError(t, err)
	assert.Equal(t, "General Kenobi.", text)
}

func TestLocalModelProviderErrorField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":"","error":"model not loaded"}`))
	}))
	defer server.Close()

	provider := NewLocalModelProvider(server.URL)

	_, err := provider.Generate(context.Background(), &GenerationRequest{Prompt: "hi"})

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ReasonBadStatus, perr.Reason)
}
