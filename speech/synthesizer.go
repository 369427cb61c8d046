package speech

import (
	"context"
	"time"
)

// Audio is the result of one synthesis call. Duration is zero when the
// provider does not report it; the player then falls back to a pacing
// estimate.
type Audio struct {
	Data        []byte
	ContentType string
	Duration    time.Duration
}

// Synthesizer converts text into playable audio.
type Synthesizer interface {
	Name() string
	Synthesize(ctx context.Context, text, voiceID string) (*Audio, error)
}

// Resource is a transient handle over playable audio. It must be released
// exactly once on every exit path of a playback session.
type Resource interface {
	Release()
}

// ResourceAllocator acquires a Resource for synthesized audio. The default
// allocator is a no-op; tests substitute a tracking implementation.
type ResourceAllocator interface {
	Acquire(a *Audio) (Resource, error)
}

type noopResource struct{}

func (noopResource) Release() {}

type noopAllocator struct{}

func (noopAllocator) Acquire(a *Audio) (Resource, error) { return noopResource{}, nil }

// NewNoopAllocator returns an allocator whose resources need no cleanup.
func NewNoopAllocator() ResourceAllocator { return noopAllocator{} }
