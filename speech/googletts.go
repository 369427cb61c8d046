package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultGoogleTTSBaseURL = "https://texttospeech.googleapis.com/v1"

// GoogleTTSSynthesizer calls the Google Cloud Text-to-Speech API, which
// returns MP3 bytes base64-encoded in a JSON envelope.
type GoogleTTSSynthesizer struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// GoogleTTSOption customizes a GoogleTTSSynthesizer.
type GoogleTTSOption func(*GoogleTTSSynthesizer)

// WithGoogleTTSBaseURL overrides the API base URL (used in tests).
func WithGoogleTTSBaseURL(url string) GoogleTTSOption {
	return func(s *GoogleTTSSynthesizer) { s.baseURL = url }
}

// NewGoogleTTSSynthesizer creates a Google Cloud TTS adapter.
func NewGoogleTTSSynthesizer(apiKey string, opts ...GoogleTTSOption) *GoogleTTSSynthesizer {
	s := &GoogleTTSSynthesizer{
		apiKey:     apiKey,
		baseURL:    defaultGoogleTTSBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *GoogleTTSSynthesizer) Name() string { return "google-tts" }

type googleTTSRequest struct {
	Input struct {
		Text string `json:"text"`
	} `json:"input"`
	Voice struct {
		LanguageCode string `json:"languageCode"`
		Name         string `json:"name,omitempty"`
	} `json:"voice"`
	AudioConfig struct {
		AudioEncoding string  `json:"audioEncoding"`
		Pitch         float64 `json:"pitch"`
		SpeakingRate  float64 `json:"speakingRate"`
	} `json:"audioConfig"`
}

type googleTTSResponse struct {
	AudioContent string `json:"audioContent"`
}

func (s *GoogleTTSSynthesizer) Synthesize(ctx context.Context, text, voiceID string) (*Audio, error) {
	if s.apiKey == "" {
		return nil, errors.New("google-tts: API key not configured")
	}

	var requestBody googleTTSRequest
	requestBody.Input.Text = text
	requestBody.Voice.LanguageCode = "en-US"
	requestBody.Voice.Name = voiceID
	requestBody.AudioConfig.AudioEncoding = "MP3"
	requestBody.AudioConfig.Pitch = 0
	requestBody.AudioConfig.SpeakingRate = 1

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("error marshaling TTS request: %v", err)
	}

	url := fmt.Sprintf("%s/text:synthesize?key=%s", s.baseURL, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("error creating TTS request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making TTS request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading TTS response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("TTS request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var ttsResp googleTTSResponse
	if err := json.Unmarshal(body, &ttsResp); err != nil {
		return nil, fmt.Errorf("error unmarshaling TTS response: %v", err)
	}
	if ttsResp.AudioContent == "" {
		return nil, errors.New("google-tts: no audio content in response")
	}

	audioData, err := base64.StdEncoding.DecodeString(ttsResp.AudioContent)
	if err != nil {
		return nil, fmt.Errorf("error decoding audio content: %v", err)
	}

	return &Audio{Data: audioData, ContentType: "audio/mpeg"}, nil
}
