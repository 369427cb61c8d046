package speech

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"
)

const (
	localSampleRate      = 16000
	localSamplesPerWord  = 4800 // 300ms of audio per word
	localToneFrequency   = 440.0
	localToneAmplitude   = 3000
	localPerWordDuration = 300 * time.Millisecond
)

// LocalSynthesizer is the on-device fallback: it produces a short PCM16LE
// tone per word so playback and word highlighting still work when no
// remote voice provider is reachable. Duration is exact, one slot per word.
type LocalSynthesizer struct{}

// NewLocalSynthesizer creates the built-in fallback synthesizer.
func NewLocalSynthesizer() *LocalSynthesizer { return &LocalSynthesizer{} }

func (s *LocalSynthesizer) Name() string { return "local" }

func (s *LocalSynthesizer) Synthesize(ctx context.Context, text, voiceID string) (*Audio, error) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil, errors.New("local: text is empty")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	buf := make([]byte, 0, len(words)*localSamplesPerWord*2)
	for range words {
		for i := 0; i < localSamplesPerWord; i++ {
			val := int16(localToneAmplitude * math.Sin(2*math.Pi*localToneFrequency*float64(i)/localSampleRate))
			buf = append(buf, byte(val), byte(val>>8))
		}
	}

	return &Audio{
		Data:        buf,
		ContentType: "audio/pcm",
		Duration:    time.Duration(len(words)) * localPerWordDuration,
	}, nil
}
