package speech

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"kennedy-digital-arts/backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSynthesizer struct {
	name  string
	audio *Audio
	err   error
	calls int
}

func (s *stubSynthesizer) Name() string { return s.name }

func (s *stubSynthesizer) Synthesize(ctx context.Context, text, voiceID string) (*Audio, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.audio, nil
}

// trackingAllocator counts acquire/release pairs so tests can verify the
// scoped-resource contract.
type trackingAllocator struct {
	mu       sync.Mutex
	acquired int
	released int
}

type trackedResource struct {
	alloc *trackingAllocator
}

func (r *trackedResource) Release() {
	r.alloc.mu.Lock()
	defer r.alloc.mu.Unlock()
	r.alloc.released++
}

func (a *trackingAllocator) Acquire(audio *Audio) (Resource, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.acquired++
	return &trackedResource{alloc: a}, nil
}

func (a *trackingAllocator) counts() (int, int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.acquired, a.released
}

type boundaryRecorder struct {
	mu      sync.Mutex
	indices []int
}

func (r *boundaryRecorder) record(index int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.indices = append(r.indices, index)
}

func (r *boundaryRecorder) snapshot() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.indices...)
}

// gateSynthesizer blocks each Synthesize call until released, letting tests
// force two calls to be in flight at once.
type gateSynthesizer struct {
	audio   *Audio
	started chan struct{}
	release chan struct{}
}

func (s *gateSynthesizer) Name() string { return "gate" }

func (s *gateSynthesizer) Synthesize(ctx context.Context, text, voiceID string) (*Audio, error) {
	s.started <- struct{}{}
	<-s.release
	return s.audio, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", JSON: true, Output: &bytes.Buffer{}})
}

func TestBoundaryEventsPerWord(t *testing.T) {
	// Four words over a 200ms clip: one event per 50ms slice.
	synth := &stubSynthesizer{name: "remote", audio: &Audio{
		Data:        []byte("mp3"),
		ContentType: "audio/mpeg",
		Duration:    200 * time.Millisecond,
	}}
	player := NewPlayer(synth, nil, testLogger())

	recorder := &boundaryRecorder{}
	completed := make(chan struct{})

	session, err := player.Speak(context.Background(), "The quick brown fox", "voice-1", Events{
		OnWordBoundary: recorder.record,
		OnComplete:     func() { close(completed) },
	})
	require.NoError(t, err)
	assert.Equal(t, 50*time.Millisecond, session.Interval())

	select {
	case <-completed:
	case <-time.After(2 * time.Second):
		t.Fatal("playback did not complete")
	}
	<-session.Done()

	// One event per word with strictly increasing indices, then the
	// teardown reset.
	assert.Equal(t, []int{0, 1, 2, 3, NoHighlight}, recorder.snapshot())
	assert.Equal(t, StateComplete, session.State())
	assert.Equal(t, NoHighlight, session.CurrentWordIndex())
}

func TestFallsBackToLocalSynthesizer(t *testing.T) {
	remote := &stubSynthesizer{name: "remote", err: errors.New("api unreachable")}
	player := NewPlayer(remote, NewLocalSynthesizer(), testLogger())

	session, err := player.Speak(context.Background(), "hello world", "voice-1", Events{})
	require.NoError(t, err)
	defer session.Stop()

	assert.Equal(t, 1, remote.calls)
	assert.Equal(t, "audio/pcm", session.Audio().ContentType)
	assert.NotZero(t, session.Audio().Duration)
}

func TestBothSynthesisPathsFail(t *testing.T) {
	remote := &stubSynthesizer{name: "remote", err: errors.New("api down")}
	fallback := &stubSynthesizer{name: "fallback", err: errors.New("engine missing")}
	alloc := &trackingAllocator{}
	player := NewPlayer(remote, fallback, testLogger(), WithResourceAllocator(alloc))

	_, err := player.Speak(context.Background(), "hello", "voice-1", Events{})
	require.Error(t, err)

	acquired, released := alloc.counts()
	assert.Zero(t, acquired, "no resource is acquired when synthesis fails")
	assert.Zero(t, released)
}

func TestStopReleasesResourceOnce(t *testing.T) {
	synth := &stubSynthesizer{name: "remote", audio: &Audio{
		Data:        []byte("mp3"),
		ContentType: "audio/mpeg",
		Duration:    10 * time.Second, // long enough that no boundary fires
	}}
	alloc := &trackingAllocator{}
	player := NewPlayer(synth, nil, testLogger(), WithResourceAllocator(alloc))

	session, err := player.Speak(context.Background(), "a b c d e", "voice-1", Events{})
	require.NoError(t, err)

	session.Stop()
	session.Stop() // idempotent
	player.Stop()  // also a no-op with nothing active

	acquired, released := alloc.counts()
	assert.Equal(t, 1, acquired)
	assert.Equal(t, 1, released, "resource released exactly once, no double-release")
	assert.Equal(t, StateCancelled, session.State())
	assert.Equal(t, NoHighlight, session.CurrentWordIndex())
}

func TestCompletionReleasesResourceOnce(t *testing.T) {
	synth := &stubSynthesizer{name: "remote", audio: &Audio{
		Data:        []byte("mp3"),
		ContentType: "audio/mpeg",
		Duration:    30 * time.Millisecond,
	}}
	alloc := &trackingAllocator{}
	player := NewPlayer(synth, nil, testLogger(), WithResourceAllocator(alloc))

	session, err := player.Speak(context.Background(), "one two three", "voice-1", Events{})
	require.NoError(t, err)

	select {
	case <-session.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("playback did not complete")
	}
	session.Stop() // stop after completion is a no-op

	acquired, released := alloc.counts()
	assert.Equal(t, 1, acquired)
	assert.Equal(t, 1, released)
}

func TestStopWithNoActivePlayback(t *testing.T) {
	player := NewPlayer(nil, NewLocalSynthesizer(), testLogger())
	assert.NotPanics(t, func() {
		player.Stop()
		player.Stop()
	})
}

func TestSpeakRejectsEmptyText(t *testing.T) {
	player := NewPlayer(nil, NewLocalSynthesizer(), testLogger())
	_, err := player.Speak(context.Background(), "   ", "voice-1", Events{})
	assert.Error(t, err)
}

func TestPacingFallbackWhenDurationUnknown(t *testing.T) {
	synth := &stubSynthesizer{name: "remote", audio: &Audio{
		Data:        []byte("mp3"),
		ContentType: "audio/mpeg",
	}}
	player := NewPlayer(synth, nil, testLogger(), WithWordsPerMinute(120))

	session, err := player.Speak(context.Background(), "a b", "voice-1", Events{})
	require.NoError(t, err)
	defer session.Stop()

	assert.Equal(t, 500*time.Millisecond, session.Interval())
}

func TestConcurrentSpeakKeepsOneActiveSession(t *testing.T) {
	synth := &gateSynthesizer{
		audio: &Audio{
			Data:        []byte("mp3"),
			ContentType: "audio/mpeg",
			Duration:    10 * time.Second,
		},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	alloc := &trackingAllocator{}
	player := NewPlayer(synth, nil, testLogger(), WithResourceAllocator(alloc))

	type outcome struct {
		session *Session
		err     error
	}
	results := make(chan outcome, 2)
	speak := func(text string) {
		session, err := player.Speak(context.Background(), text, "voice-1", Events{})
		results <- outcome{session, err}
	}
	go speak("a b c")
	go speak("d e f")

	// Both calls are mid-synthesis before either can finish.
	<-synth.started
	<-synth.started
	close(synth.release)

	playing, cancelled := 0, 0
	for i := 0; i < 2; i++ {
		r := <-results
		switch {
		case r.err == nil:
			playing++
			assert.Equal(t, StatePlaying, r.session.State())
			defer r.session.Stop()
		case errors.Is(r.err, ErrCancelled):
			cancelled++
		default:
			t.Fatalf("unexpected speak error: %v", r.err)
		}
	}
	assert.Equal(t, 1, playing, "one player never runs two sessions at once")
	assert.Equal(t, 1, cancelled)

	acquired, released := alloc.counts()
	assert.Equal(t, 2, acquired)
	assert.Equal(t, 1, released, "the losing session's resource is released immediately")
}

func TestStopDuringSynthesisCancelsSession(t *testing.T) {
	synth := &gateSynthesizer{
		audio:   &Audio{Data: []byte("mp3"), ContentType: "audio/mpeg", Duration: time.Second},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	alloc := &trackingAllocator{}
	player := NewPlayer(synth, nil, testLogger(), WithResourceAllocator(alloc))

	results := make(chan error, 1)
	go func() {
		_, err := player.Speak(context.Background(), "hello world", "voice-1", Events{})
		results <- err
	}()

	<-synth.started
	player.Stop() // reaches the session while it is still loading
	close(synth.release)

	assert.ErrorIs(t, <-results, ErrCancelled)

	acquired, released := alloc.counts()
	assert.Equal(t, 1, acquired)
	assert.Equal(t, 1, released)
}

func TestNewSpeakCancelsPreviousSession(t *testing.T) {
	synth := &stubSynthesizer{name: "remote", audio: &Audio{
		Data:        []byte("mp3"),
		ContentType: "audio/mpeg",
		Duration:    10 * time.Second,
	}}
	alloc := &trackingAllocator{}
	player := NewPlayer(synth, nil, testLogger(), WithResourceAllocator(alloc))

	first, err := player.Speak(context.Background(), "a b c", "voice-1", Events{})
	require.NoError(t, err)

	second, err := player.Speak(context.Background(), "d e f", "voice-1", Events{})
	require.NoError(t, err)
	defer second.Stop()

	assert.Equal(t, StateCancelled, first.State())
	assert.Equal(t, StatePlaying, second.State())
}
