package service

import (
	"encoding/json"
	"errors"
	"time"

	"kennedy-digital-arts/backend/internal/models"
	"kennedy-digital-arts/backend/pkg/logger"
	"kennedy-digital-arts/backend/shared/redis"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// historyCacheTTL bounds how long a session's recent turns live in Redis.
	historyCacheTTL = 30 * time.Minute

	// historyLimit is the number of recent turns fed back into prompts.
	historyLimit = 20
)

var ErrMessageNotFound = errors.New("message not found")

// MessageService persists chat turns and keeps a per-session history cache
// in Redis so prompt building does not hit Postgres on every turn.
type MessageService struct {
	db    *gorm.DB
	cache *redis.RedisClient
	log   *logger.Logger
}

// NewMessageService creates a new message service. The Redis client may be
// nil, in which case history reads always go to the database.
func NewMessageService(db *gorm.DB, cache *redis.RedisClient, log *logger.Logger) *MessageService {
	return &MessageService{db: db, cache: cache, log: log}
}

// SaveMessage appends one turn to a session and refreshes the cached history.
func (s *MessageService) SaveMessage(msg *models.ChatMessage) error {
	if msg.ExternalID == "" {
		msg.ExternalID = uuid.New().String()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}

	if err := s.db.Create(msg).Error; err != nil {
		return err
	}

	s.refreshCache(msg.SessionID)
	return nil
}

// GetSessionMessages returns the most recent turns of a session in
// chronological order, served from Redis when the cache is warm.
func (s *MessageService) GetSessionMessages(sessionID string) ([]models.ChatMessage, error) {
	if cached, ok := s.readCache(sessionID); ok {
		return cached, nil
	}

	messages, err := s.loadFromDB(sessionID)
	if err != nil {
		return nil, err
	}

	s.writeCache(sessionID, messages)
	return messages, nil
}

// GetMessageByExternalID looks a message up by its client-facing UUID.
func (s *MessageService) GetMessageByExternalID(externalID string) (*models.ChatMessage, error) {
	var msg models.ChatMessage
	result := s.db.Where("external_id = ?", externalID).First(&msg)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, result.Error
	}
	return &msg, nil
}

func (s *MessageService) loadFromDB(sessionID string) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := s.db.
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Limit(historyLimit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	// Query returns newest-first; callers want chronological order.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func historyCacheKey(sessionID string) string {
	return "chat:history:" + sessionID
}

func (s *MessageService) readCache(sessionID string) ([]models.ChatMessage, bool) {
	if s.cache == nil {
		return nil, false
	}

	raw, err := s.cache.Get(historyCacheKey(sessionID))
	if err != nil {
		return nil, false
	}

	var messages []models.ChatMessage
	if err := json.Unmarshal([]byte(raw), &messages); err != nil {
		s.log.Warn("discarding unreadable history cache entry",
			"session_id", sessionID,
			"error", err.Error(),
		)
		return nil, false
	}
	return messages, true
}

func (s *MessageService) writeCache(sessionID string, messages []models.ChatMessage) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(messages)
	if err != nil {
		return
	}
	if err := s.cache.Set(historyCacheKey(sessionID), string(data), historyCacheTTL); err != nil {
		s.log.Warn("failed to cache session history",
			"session_id", sessionID,
			"error", err.Error(),
		)
	}
}

func (s *MessageService) refreshCache(sessionID string) {
	if s.cache == nil {
		return
	}

	messages, err := s.loadFromDB(sessionID)
	if err != nil {
		s.log.Warn("failed to refresh session history cache",
			"session_id", sessionID,
			"error", err.Error(),
		)
		return
	}
	s.writeCache(sessionID, messages)
}
