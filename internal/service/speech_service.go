package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"kennedy-digital-arts/backend/pkg/cache"
	"kennedy-digital-arts/backend/pkg/logger"
	"kennedy-digital-arts/backend/speech"
)

// WordTiming is the scheduled highlight offset for one word of an utterance.
type WordTiming struct {
	Index    int    `json:"index"`
	Word     string `json:"word"`
	OffsetMS int64  `json:"offset_ms"`
}

// SpeechService synthesizes character speech, caching audio so repeated
// utterances (the same line spoken again) do not re-hit the TTS vendor.
type SpeechService struct {
	remote         speech.Synthesizer
	fallback       speech.Synthesizer
	audioCache     *cache.Cache
	log            *logger.Logger
	wordsPerMinute int
}

// NewSpeechService creates a new speech service. The remote synthesizer may
// be nil when no TTS credential is configured; the local fallback then
// serves every request.
func NewSpeechService(remote, fallback speech.Synthesizer, audioCache *cache.Cache, log *logger.Logger, wordsPerMinute int) *SpeechService {
	return &SpeechService{
		remote:         remote,
		fallback:       fallback,
		audioCache:     audioCache,
		log:            log,
		wordsPerMinute: wordsPerMinute,
	}
}

// NewPlayer builds a playback session driver bound to this service's
// synthesizers. Each websocket client gets its own player.
func (s *SpeechService) NewPlayer(opts ...speech.PlayerOption) *speech.Player {
	opts = append(opts, speech.WithWordsPerMinute(s.wordsPerMinute))
	return speech.NewPlayer(s.remote, s.fallback, s.log, opts...)
}

// Synthesize returns audio for the given text and voice, remote first then
// local fallback, served from cache when the same utterance was synthesized
// before.
func (s *SpeechService) Synthesize(ctx context.Context, text, voiceID string) (*speech.Audio, error) {
	key := audioCacheKey(text, voiceID)
	if s.audioCache != nil {
		if cached, ok := s.audioCache.Get(key); ok {
			if audio, ok := cached.(*speech.Audio); ok {
				return audio, nil
			}
		}
	}

	audio, err := s.synthesize(ctx, text, voiceID)
	if err != nil {
		return nil, err
	}

	if s.audioCache != nil {
		s.audioCache.Set(key, audio)
	}
	return audio, nil
}

// WordTimings computes the evenly spaced highlight schedule for an
// utterance. The schedule mirrors what a playback session would fire.
func (s *SpeechService) WordTimings(text string, audio *speech.Audio) []WordTiming {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	interval := audio.Duration / time.Duration(len(words))
	if audio.Duration <= 0 {
		perMinute := s.wordsPerMinute
		if perMinute <= 0 {
			perMinute = 130
		}
		interval = time.Minute / time.Duration(perMinute)
	}

	timings := make([]WordTiming, len(words))
	for i, w := range words {
		timings[i] = WordTiming{
			Index:    i,
			Word:     w,
			OffsetMS: (time.Duration(i) * interval).Milliseconds(),
		}
	}
	return timings
}

func (s *SpeechService) synthesize(ctx context.Context, text, voiceID string) (*speech.Audio, error) {
	if s.remote != nil {
		audio, err := s.remote.Synthesize(ctx, text, voiceID)
		if err == nil {
			return audio, nil
		}
		s.log.Warn("remote synthesis failed, using local fallback",
			"synthesizer", s.remote.Name(),
			"error", err.Error(),
		)
	}
	return s.fallback.Synthesize(ctx, text, voiceID)
}

func audioCacheKey(text, voiceID string) string {
	sum := sha256.Sum256([]byte(voiceID + "\x00" + text))
	return "speech:" + hex.EncodeToString(sum[:])
}
