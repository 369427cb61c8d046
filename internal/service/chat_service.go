package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"kennedy-digital-arts/backend/ai"
	"kennedy-digital-arts/backend/internal/models"
	"kennedy-digital-arts/backend/internal/registry"
	"kennedy-digital-arts/backend/pkg/logger"
)

var (
	ErrEmptyMessage = errors.New("message content is empty")

	// ErrStaleResponse means a newer turn started in the same session while
	// this one was generating. The response is discarded, never surfaced.
	ErrStaleResponse = errors.New("response superseded by a newer turn")
)

// ChatService runs one chat turn end to end: persist the user message, build
// a prompt from the character's persona and recent history, generate a
// response through the provider chain, persist the assistant message.
type ChatService struct {
	characters *registry.Registry
	messages   *MessageService
	chain      *ai.Chain
	log        *logger.Logger

	mu    sync.Mutex
	turns map[string]uint64
}

// NewChatService creates a new chat service.
func NewChatService(characters *registry.Registry, messages *MessageService, chain *ai.Chain, log *logger.Logger) *ChatService {
	return &ChatService{
		characters: characters,
		messages:   messages,
		chain:      chain,
		log:        log,
		turns:      make(map[string]uint64),
	}
}

// SendMessage runs a full chat turn and returns the assistant message.
// If another turn starts in the same session before this one finishes, the
// generated response is discarded and ErrStaleResponse is returned.
func (s *ChatService) SendMessage(ctx context.Context, sessionID, characterSlug, content string) (*models.ChatMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}

	character, err := s.characters.Get(characterSlug)
	if err != nil {
		return nil, err
	}

	turn := s.beginTurn(sessionID)

	history, err := s.messages.GetSessionMessages(sessionID)
	if err != nil {
		return nil, err
	}

	userMsg := &models.ChatMessage{
		CharacterID: character.ID,
		SessionID:   sessionID,
		Role:        models.RoleUser,
		Content:     content,
	}
	if err := s.messages.SaveMessage(userMsg); err != nil {
		return nil, err
	}

	reply, err := s.chain.Generate(ctx, &ai.GenerationRequest{
		Prompt:       content,
		SystemPrompt: character.PromptTemplate,
		History:      historyTurns(history),
	})
	if err != nil {
		return nil, err
	}

	if !s.isCurrentTurn(sessionID, turn) {
		s.log.Info("discarding stale response",
			"session_id", sessionID,
			"turn", turn,
		)
		return nil, ErrStaleResponse
	}

	assistantMsg := &models.ChatMessage{
		CharacterID: character.ID,
		SessionID:   sessionID,
		Role:        models.RoleAssistant,
		Content:     reply,
	}
	if err := s.messages.SaveMessage(assistantMsg); err != nil {
		return nil, err
	}

	return assistantMsg, nil
}

// History returns the recent turns of a session in chronological order.
func (s *ChatService) History(sessionID string) ([]models.ChatMessage, error) {
	return s.messages.GetSessionMessages(sessionID)
}

func (s *ChatService) beginTurn(sessionID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns[sessionID]++
	return s.turns[sessionID]
}

func (s *ChatService) isCurrentTurn(sessionID string, turn uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.turns[sessionID] == turn
}

func historyTurns(messages []models.ChatMessage) []ai.Turn {
	turns := make([]ai.Turn, 0, len(messages))
	for _, m := range messages {
		turns = append(turns, ai.Turn{Role: m.Role, Content: m.Content})
	}
	return turns
}
