package models

import (
	"strings"
	"time"
	"unicode"
)

// Character is a historical-figure persona. Rows are seeded at startup and
// treated as read-only afterwards; the registry serves lookups from memory.
type Character struct {
	ID             uint      `json:"id" gorm:"primarykey"`
	Slug           string    `json:"slug" gorm:"uniqueIndex;not null"`
	Name           string    `json:"name" gorm:"not null"`
	Role           string    `json:"role" gorm:"not null"`
	ImageURL       string    `json:"image_url"`
	Description    string    `json:"description" gorm:"not null"`
	PromptTemplate string    `json:"prompt_template" gorm:"type:text;not null"`
	VoiceID        string    `json:"voice_id" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CharacterSlug derives the lookup key from a display name: lowercased
// with everything but letters stripped ("John F Kennedy" -> "johnfkennedy").
func CharacterSlug(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
