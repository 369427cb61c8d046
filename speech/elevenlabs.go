package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultElevenLabsBaseURL = "https://api.elevenlabs.io/v1"

// ElevenLabsSynthesizer calls the ElevenLabs streaming endpoint and
// collects the MP3 bytes. Duration is not reported by this endpoint, so
// Audio.Duration stays zero.
type ElevenLabsSynthesizer struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// ElevenLabsOption customizes an ElevenLabsSynthesizer.
type ElevenLabsOption func(*ElevenLabsSynthesizer)

// WithElevenLabsBaseURL overrides the API base URL (used in tests).
func WithElevenLabsBaseURL(url string) ElevenLabsOption {
	return func(s *ElevenLabsSynthesizer) { s.baseURL = url }
}

// NewElevenLabsSynthesizer creates an ElevenLabs adapter.
func NewElevenLabsSynthesizer(apiKey string, opts ...ElevenLabsOption) *ElevenLabsSynthesizer {
	s := &ElevenLabsSynthesizer{
		apiKey:     apiKey,
		baseURL:    defaultElevenLabsBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ElevenLabsSynthesizer) Name() string { return "elevenlabs" }

type elevenLabsRequest struct {
	Text          string `json:"text"`
	ModelID       string `json:"model_id"`
	VoiceSettings struct {
		Stability       float64 `json:"stability"`
		SimilarityBoost float64 `json:"similarity_boost"`
		Style           float64 `json:"style"`
		UseSpeakerBoost bool    `json:"use_speaker_boost"`
	} `json:"voice_settings"`
}

func (s *ElevenLabsSynthesizer) Synthesize(ctx context.Context, text, voiceID string) (*Audio, error) {
	if s.apiKey == "" {
		return nil, errors.New("elevenlabs: API key not configured")
	}
	if voiceID == "" {
		return nil, errors.New("elevenlabs: voice id is required")
	}

	requestBody := elevenLabsRequest{
		Text:    text,
		ModelID: "eleven_monolingual_v1",
	}
	requestBody.VoiceSettings.Stability = 0.5
	requestBody.VoiceSettings.SimilarityBoost = 0.75
	requestBody.VoiceSettings.Style = 0.5
	requestBody.VoiceSettings.UseSpeakerBoost = true

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("error marshaling TTS request: %v", err)
	}

	url := fmt.Sprintf("%s/text-to-speech/%s/stream", s.baseURL, voiceID)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("error creating TTS request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", s.apiKey)
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making TTS request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("TTS request failed with status %d: %s", resp.StatusCode, string(body))
	}

	audioData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading TTS response: %v", err)
	}
	if len(audioData) == 0 {
		return nil, errors.New("elevenlabs: empty audio stream")
	}

	return &Audio{Data: audioData, ContentType: "audio/mpeg"}, nil
}
