package service

import (
	"testing"
	"time"

	"kennedy-digital-arts/backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestTurnCounterSupersedesOlderTurns(t *testing.T) {
	s := &ChatService{turns: make(map[string]uint64)}

	first := s.beginTurn("session-a")
	assert.True(t, s.isCurrentTurn("session-a", first))

	second := s.beginTurn("session-a")
	assert.False(t, s.isCurrentTurn("session-a", first), "older turn should be stale")
	assert.True(t, s.isCurrentTurn("session-a", second))
}

func TestTurnCountersAreIndependentPerSession(t *testing.T) {
	s := &ChatService{turns: make(map[string]uint64)}

	a := s.beginTurn("session-a")
	b := s.beginTurn("session-b")

	s.beginTurn("session-b")

	assert.True(t, s.isCurrentTurn("session-a", a))
	assert.False(t, s.isCurrentTurn("session-b", b))
}

func TestHistoryTurnsPreservesOrderAndRoles(t *testing.T) {
	now := time.Now()
	messages := []models.ChatMessage{
		{Role: models.RoleUser, Content: "Tell me about the space program", Timestamp: now},
		{Role: models.RoleAssistant, Content: "We choose to go to the Moon.", Timestamp: now.Add(time.Second)},
	}

	turns := historyTurns(messages)
	assert.Len(t, turns, 2)
	assert.Equal(t, models.RoleUser, turns[0].Role)
	assert.Equal(t, "Tell me about the space program", turns[0].Content)
	assert.Equal(t, models.RoleAssistant, turns[1].Role)
}
