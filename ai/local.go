package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// LocalModelProvider calls a self-hosted generation endpoint. It sits last
// in the chain before the static apology, so it favors availability over
// quality.
type LocalModelProvider struct {
	baseURL    string
	httpClient *http.Client
}

// NewLocalModelProvider creates an adapter for a local model server.
func NewLocalModelProvider(baseURL string) *LocalModelProvider {
	return &LocalModelProvider{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *LocalModelProvider) Name() string { return "local" }

type localModelRequest struct {
	SystemPrompt string        `json:"system_prompt"`
	History      []chatMessage `json:"history"`
	Query        string        `json:"query"`
}

type localModelResponse struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

func (p *LocalModelProvider) Generate(ctx context.Context, req *GenerationRequest) (string, error) {
	if p.baseURL == "" {
		return "", newProviderError(p.Name(), ReasonMissingCredential, nil)
	}

	history := []chatMessage{}
	for _, turn := range req.History {
		role := "assistant"
		if turn.Role == "user" {
			role = "user"
		}
		history = append(history, chatMessage{Role: role, Content: turn.Content})
	}

	requestBody := localModelRequest{
		SystemPrompt: req.SystemPrompt,
		History:      history,
		Query:        req.Prompt,
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("error marshaling request: %v", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", p.baseURL+"/generate", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("error creating request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", newProviderError(p.Name(), ReasonNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", newProviderError(p.Name(), ReasonNetwork, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", newProviderError(p.Name(), ReasonBadStatus,
			fmt.Errorf("status %d: %s", resp.StatusCode, string(body)))
	}

	var localResp localModelResponse
	if err := json.Unmarshal(body, &localResp); err != nil {
		return "", newProviderError(p.Name(), ReasonMalformed, err)
	}

	if localResp.Error != "" {
		return "", newProviderError(p.Name(), ReasonBadStatus,
			fmt.Errorf("local model error: %s", localResp.Error))
	}

	if localResp.Response == "" {
		return "", newProviderError(p.Name(), ReasonMalformed,
			fmt.Errorf("empty response"))
	}

	return localResp.Response, nil
}
