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

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1"

// GeminiProvider generates text through the Google Generative Language API.
type GeminiProvider struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// GeminiOption customizes a GeminiProvider.
type GeminiOption func(*GeminiProvider)

// WithGeminiBaseURL overrides the API base URL (used in tests).
func WithGeminiBaseURL(url string) GeminiOption {
	return func(p *GeminiProvider) { p.baseURL = url }
}

// WithGeminiHTTPClient overrides the HTTP client.
func WithGeminiHTTPClient(c *http.Client) GeminiOption {
	return func(p *GeminiProvider) { p.httpClient = c }
}

// NewGeminiProvider creates a Gemini adapter. An empty API key is allowed;
// the provider then fails with a missing-credential error at call time so
// the chain can move on.
func NewGeminiProvider(apiKey string, opts ...GeminiOption) *GeminiProvider {
	p := &GeminiProvider{
		apiKey:     apiKey,
		baseURL:    defaultGeminiBaseURL,
		model:      "gemini-pro",
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *GeminiProvider) Name() string { return "gemini" }

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		Temperature     float64 `json:"temperature"`
		TopP            float64 `json:"topP"`
		TopK            int     `json:"topK"`
		MaxOutputTokens int     `json:"maxOutputTokens"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate calls the generateContent endpoint. The v1 API has no system
// role for this model, so the persona instruction is folded into the first
// user part, the way the original prompt templates do.
func (p *GeminiProvider) Generate(ctx context.Context, req *GenerationRequest) (string, error) {
	if p.apiKey == "" {
		return "", newProviderError(p.Name(), ReasonMissingCredential, nil)
	}

	var contents []geminiContent
	for _, turn := range req.History {
		role := "model"
		if turn.Role == "user" {
			role = "user"
		}
		contents = append(contents, geminiContent{
			Role:  role,
			Parts: []geminiPart{{Text: turn.Content}},
		})
	}

	promptText := req.Prompt
	if req.SystemPrompt != "" {
		promptText = fmt.Sprintf("%s Here is what you should respond to: %s", req.SystemPrompt, req.Prompt)
	}
	contents = append(contents, geminiContent{
		Role:  "user",
		Parts: []geminiPart{{Text: promptText}},
	})

	body := geminiRequest{Contents: contents}
	body.GenerationConfig.Temperature = 0.9
	body.GenerationConfig.TopP = 1
	body.GenerationConfig.TopK = 40
	body.GenerationConfig.MaxOutputTokens = 800

	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("error marshaling request: %v", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", p.baseURL, p.model)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("error creating request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", p.apiKey)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", newProviderError(p.Name(), ReasonNetwork, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", newProviderError(p.Name(), ReasonNetwork, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", newProviderError(p.Name(), ReasonBadStatus,
			fmt.Errorf("status %d: %s", resp.StatusCode, string(respBody)))
	}

	var geminiResp geminiResponse
	if err := json.Unmarshal(respBody, &geminiResp); err != nil {
		return "", newProviderError(p.Name(), ReasonMalformed, err)
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", newProviderError(p.Name(), ReasonMalformed,
			fmt.Errorf("no candidates in response"))
	}

	text := geminiResp.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", newProviderError(p.Name(), ReasonMalformed,
			fmt.Errorf("empty candidate text"))
	}

	return text, nil
}
