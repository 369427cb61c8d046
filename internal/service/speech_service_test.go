package service

import (
	"context"
	"testing"
	"time"

	"kennedy-digital-arts/backend/pkg/cache"
	"kennedy-digital-arts/backend/pkg/logger"
	"kennedy-digital-arts/backend/speech"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSynthesizer struct {
	name  string
	calls int
	audio *speech.Audio
}

func (s *countingSynthesizer) Name() string { return s.name }

func (s *countingSynthesizer) Synthesize(ctx context.Context, text, voiceID string) (*speech.Audio, error) {
	s.calls++
	return s.audio, nil
}

func TestSynthesizeServesRepeatsFromCache(t *testing.T) {
	remote := &countingSynthesizer{
		name:  "remote",
		audio: &speech.Audio{Data: []byte{1, 2, 3}, ContentType: "audio/mpeg", Duration: time.Second},
	}
	svc := NewSpeechService(remote, speech.NewLocalSynthesizer(), cache.NewCache(), logger.New(logger.DefaultConfig()), 130)

	first, err := svc.Synthesize(context.Background(), "Ask not what your country can do", "voice-1")
	require.NoError(t, err)
	second, err := svc.Synthesize(context.Background(), "Ask not what your country can do", "voice-1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, remote.calls, "second request should come from cache")
}

func TestSynthesizeCacheKeyedByVoice(t *testing.T) {
	remote := &countingSynthesizer{
		name:  "remote",
		audio: &speech.Audio{Data: []byte{1}, ContentType: "audio/mpeg", Duration: time.Second},
	}
	svc := NewSpeechService(remote, speech.NewLocalSynthesizer(), cache.NewCache(), logger.New(logger.DefaultConfig()), 130)

	_, err := svc.Synthesize(context.Background(), "same text", "voice-1")
	require.NoError(t, err)
	_, err = svc.Synthesize(context.Background(), "same text", "voice-2")
	require.NoError(t, err)

	assert.Equal(t, 2, remote.calls)
}

func TestWordTimingsEvenSpacing(t *testing.T) {
	svc := NewSpeechService(nil, speech.NewLocalSynthesizer(), nil, logger.New(logger.DefaultConfig()), 130)

	audio := &speech.Audio{Duration: 2 * time.Second}
	timings := svc.WordTimings("The quick brown fox", audio)

	require.Len(t, timings, 4)
	assert.Equal(t, int64(0), timings[0].OffsetMS)
	assert.Equal(t, int64(500), timings[1].OffsetMS)
	assert.Equal(t, int64(1000), timings[2].OffsetMS)
	assert.Equal(t, int64(1500), timings[3].OffsetMS)
	assert.Equal(t, "fox", timings[3].Word)
}

func TestWordTimingsFallsBackToPace(t *testing.T) {
	svc := NewSpeechService(nil, speech.NewLocalSynthesizer(), nil, logger.New(logger.DefaultConfig()), 120)

	timings := svc.WordTimings("one two three", &speech.Audio{})

	require.Len(t, timings, 3)
	// 120 words per minute is one word every 500ms.
	assert.Equal(t, int64(500), timings[1].OffsetMS)
	assert.Equal(t, int64(1000), timings[2].OffsetMS)
}

func TestWordTimingsEmptyText(t *testing.T) {
	svc := NewSpeechService(nil, speech.NewLocalSynthesizer(), nil, logger.New(logger.DefaultConfig()), 130)
	assert.Nil(t, svc.WordTimings("   ", &speech.Audio{Duration: time.Second}))
}
