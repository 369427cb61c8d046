package models

import (
	"time"
)

// Message roles. Conversations are append-only sequences of these two.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn in a conversation with a character.
type ChatMessage struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ExternalID  string    `json:"external_id" gorm:"index"`
	CharacterID uint      `json:"character_id" gorm:"index"`
	SessionID   string    `json:"session_id" gorm:"index"`
	Role        string    `json:"role" gorm:"not null"`
	Content     string    `json:"content" gorm:"type:text;not null"`
	Timestamp   time.Time `json:"timestamp"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName overrides the table name
func (ChatMessage) TableName() string {
	return "chat_messages"
}
