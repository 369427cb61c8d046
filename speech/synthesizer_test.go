package speech

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElevenLabsSynthesizerStreams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key-123", r.Header.Get("xi-api-key"))
		assert.True(t, strings.HasSuffix(r.URL.Path, "/text-to-speech/voice-42/stream"))

		var req elevenLabsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "eleven_monolingual_v1", req.ModelID)
		assert.InDelta(t, 0.5, req.VoiceSettings.Stability, 0.001)

		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("mp3-bytes"))
	}))
	defer server.Close()

	synth := NewElevenLabsSynthesizer("key-123", WithElevenLabsBaseURL(server.URL))

	audio, err := synth.Synthesize(context.Background(), "Ask not", "voice-42")
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3-bytes"), audio.Data)
	assert.Equal(t, "audio/mpeg", audio.ContentType)
	assert.Zero(t, audio.Duration, "stream endpoint reports no duration")
}

func TestElevenLabsSynthesizerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid voice", http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	synth := NewElevenLabsSynthesizer("key-123", WithElevenLabsBaseURL(server.URL))

	_, err := synth.Synthesize(context.Background(), "text", "bad-voice")
	assert.ErrorContains(t, err, "status 422")
}

func TestElevenLabsSynthesizerRequiresKey(t *testing.T) {
	synth := NewElevenLabsSynthesizer("")
	_, err := synth.Synthesize(context.Background(), "text", "voice")
	assert.ErrorContains(t, err, "API key not configured")
}

func TestGoogleTTSSynthesizerDecodesEnvelope(t *testing.T) {
	mp3 := []byte{0xFF, 0xFB, 0x90, 0x00}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.URL.Query().Get("key"))

		var req googleTTSRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "en-US", req.Voice.LanguageCode)
		assert.Equal(t, "MP3", req.AudioConfig.AudioEncoding)

		json.NewEncoder(w).Encode(googleTTSResponse{
			AudioContent: base64.StdEncoding.EncodeToString(mp3),
		})
	}))
	defer server.Close()

	synth := NewGoogleTTSSynthesizer("secret", WithGoogleTTSBaseURL(server.URL))

	audio, err := synth.Synthesize(context.Background(), "Four score", "en-US-Neural2-J")
	require.NoError(t, err)
	assert.Equal(t, mp3, audio.Data)
	assert.Equal(t, "audio/mpeg", audio.ContentType)
}

func TestLocalSynthesizerDuration(t *testing.T) {
	synth := NewLocalSynthesizer()

	audio, err := synth.Synthesize(context.Background(), "one two three", "")
	require.NoError(t, err)
	assert.Equal(t, 3*localPerWordDuration, audio.Duration)
	assert.Len(t, audio.Data, 3*localSamplesPerWord*2)
}
