package speech

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"kennedy-digital-arts/backend/pkg/logger"
)

// State is the lifecycle phase of a playback session.
type State string

const (
	StateIdle      State = "idle"
	StateLoading   State = "loading"
	StatePlaying   State = "playing"
	StateComplete  State = "complete"
	StateCancelled State = "cancelled"
	StateFailed    State = "failed"
)

// NoHighlight is the word index reported when no word is being spoken.
const NoHighlight = -1

// ErrCancelled is returned by Speak when the session was stopped or
// replaced before playback could start.
var ErrCancelled = errors.New("speech: session cancelled before playback")

// defaultWordsPerMinute paces boundary events when the synthesizer does
// not report audio duration.
const defaultWordsPerMinute = 130

// Events carries the playback callbacks. Either field may be nil.
type Events struct {
	// OnWordBoundary receives the index of the word currently being
	// spoken, and NoHighlight when the session is torn down.
	OnWordBoundary func(index int)
	// OnComplete fires once on natural end of playback.
	OnComplete func()
}

// Player synthesizes text and drives word-boundary highlighting for it.
// Remote synthesis is tried first, then the local fallback; exactly one of
// the two produces the audio for a given call. At most one session is
// active per player.
type Player struct {
	remote         Synthesizer
	fallback       Synthesizer
	alloc          ResourceAllocator
	log            *logger.Logger
	wordsPerMinute int

	mu      sync.Mutex
	current *Session
}

// PlayerOption customizes a Player.
type PlayerOption func(*Player)

// WithResourceAllocator substitutes the audio resource allocator.
func WithResourceAllocator(alloc ResourceAllocator) PlayerOption {
	return func(p *Player) { p.alloc = alloc }
}

// WithWordsPerMinute overrides the pacing used when audio duration is
// unknown.
func WithWordsPerMinute(wpm int) PlayerOption {
	return func(p *Player) {
		if wpm > 0 {
			p.wordsPerMinute = wpm
		}
	}
}

// NewPlayer creates a player. remote may be nil, in which case every call
// goes straight to the fallback synthesizer.
func NewPlayer(remote, fallback Synthesizer, log *logger.Logger, opts ...PlayerOption) *Player {
	p := &Player{
		remote:         remote,
		fallback:       fallback,
		alloc:          NewNoopAllocator(),
		log:            log,
		wordsPerMinute: defaultWordsPerMinute,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Speak synthesizes text and starts a playback session that fires one
// boundary event per word. A previously active session is cancelled first.
// The returned session exposes the synthesized audio and Stop(). Returns
// ErrCancelled when the session is stopped or superseded before playback
// starts.
func (p *Player) Speak(ctx context.Context, text, voiceID string, events Events) (*Session, error) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil, fmt.Errorf("speech: text must not be empty")
	}

	session := &Session{
		words:        words,
		currentIndex: NoHighlight,
		state:        StateLoading,
		events:       events,
		stopCh:       make(chan struct{}),
		done:         make(chan struct{}),
	}

	// Register the loading session before synthesizing so a concurrent
	// Speak or Stop can reach it. The swap is atomic and every
	// swapped-out predecessor is cancelled by its successor, so at most
	// one session survives per player.
	p.mu.Lock()
	prev := p.current
	p.current = session
	p.mu.Unlock()
	if prev != nil {
		prev.Stop()
	}

	audio, err := p.synthesize(ctx, text, voiceID)
	if err != nil {
		p.clearCurrent(session)
		session.abort(StateFailed)
		return nil, err
	}

	resource, err := p.alloc.Acquire(audio)
	if err != nil {
		p.clearCurrent(session)
		session.abort(StateFailed)
		return nil, fmt.Errorf("speech: acquiring audio resource: %w", err)
	}

	interval := p.boundaryInterval(audio, len(words))

	session.mu.Lock()
	if session.state != StateLoading {
		// Stopped or replaced while synthesizing.
		session.mu.Unlock()
		resource.Release()
		return nil, ErrCancelled
	}
	session.audio = audio
	session.resource = resource
	session.interval = interval
	session.state = StatePlaying
	session.mu.Unlock()

	go session.run()
	return session, nil
}

func (p *Player) clearCurrent(session *Session) {
	p.mu.Lock()
	if p.current == session {
		p.current = nil
	}
	p.mu.Unlock()
}

// Stop cancels the active session, if any. Safe to call at any time.
func (p *Player) Stop() {
	p.mu.Lock()
	session := p.current
	p.current = nil
	p.mu.Unlock()

	if session != nil {
		session.Stop()
	}
}

func (p *Player) synthesize(ctx context.Context, text, voiceID string) (*Audio, error) {
	if p.remote != nil {
		audio, err := p.remote.Synthesize(ctx, text, voiceID)
		if err == nil {
			return audio, nil
		}
		p.log.Warn("remote synthesis failed, falling back to local",
			"synthesizer", p.remote.Name(),
			"error", err.Error(),
		)
	}
	if p.fallback == nil {
		return nil, fmt.Errorf("speech: no synthesizer available")
	}
	return p.fallback.Synthesize(ctx, text, voiceID)
}

// boundaryInterval divides total audio duration evenly across the words.
// This is an approximation, not phoneme alignment: long and short words get
// the same slice. Without a known duration the interval derives from an
// average speaking pace.
func (p *Player) boundaryInterval(audio *Audio, wordCount int) time.Duration {
	if audio.Duration > 0 {
		return audio.Duration / time.Duration(wordCount)
	}
	return time.Minute / time.Duration(p.wordsPerMinute)
}

// Session tracks one synthesis-and-playback operation. Its word index is
// monotonically non-decreasing while playing and resets to NoHighlight on
// teardown; the audio resource is released exactly once on every exit path.
type Session struct {
	mu           sync.Mutex
	state        State
	words        []string
	currentIndex int
	audio        *Audio
	resource     Resource
	released     bool
	tornDown     bool
	interval     time.Duration
	events       Events
	stopCh       chan struct{}
	stopOnce     sync.Once
	done         chan struct{}
}

// State returns the session's current lifecycle phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Audio returns the synthesized audio for the caller to play.
func (s *Session) Audio() *Audio {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.audio
}

// Words returns the word list driving boundary events.
func (s *Session) Words() []string {
	return s.words
}

// CurrentWordIndex returns the index of the word being spoken, or
// NoHighlight outside active playback.
func (s *Session) CurrentWordIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentIndex
}

// Interval returns the spacing between boundary events.
func (s *Session) Interval() time.Duration {
	return s.interval
}

// Done is closed when the session has finished, was cancelled, or failed.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Stop cancels playback. Calling it with no active playback, or more than
// once, is a no-op.
func (s *Session) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)

		s.mu.Lock()
		active := s.state == StatePlaying || s.state == StateLoading
		if active {
			s.state = StateCancelled
		}
		s.mu.Unlock()

		if active {
			s.teardown()
			close(s.done)
		}
	})
}

// abort moves a still-loading session into a terminal state. If a
// concurrent Stop already cancelled the session it is left alone; exactly
// one of the two closes done.
func (s *Session) abort(state State) {
	s.mu.Lock()
	if s.state != StateLoading {
		s.mu.Unlock()
		return
	}
	s.state = state
	s.mu.Unlock()
	close(s.done)
}

func (s *Session) run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			if s.state != StatePlaying {
				s.mu.Unlock()
				return
			}
			s.currentIndex++
			index := s.currentIndex
			last := index >= len(s.words)-1
			if last {
				s.state = StateComplete
			}
			s.mu.Unlock()

			if s.events.OnWordBoundary != nil {
				s.events.OnWordBoundary(index)
			}

			if last {
				s.teardown()
				if s.events.OnComplete != nil {
					s.events.OnComplete()
				}
				close(s.done)
				return
			}

		case <-s.stopCh:
			return
		}
	}
}

// teardown releases the audio resource and resets the highlight. It runs
// at most once per session regardless of how the session ends.
func (s *Session) teardown() {
	s.mu.Lock()
	if s.tornDown {
		s.mu.Unlock()
		return
	}
	s.tornDown = true
	release := !s.released && s.resource != nil
	s.released = true
	s.currentIndex = NoHighlight
	resource := s.resource
	s.mu.Unlock()

	if release {
		resource.Release()
	}
	if s.events.OnWordBoundary != nil {
		s.events.OnWordBoundary(NoHighlight)
	}
}
