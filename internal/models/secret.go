package models

import (
	"time"
)

// Secret is a stored provider credential. Rows are read once at startup
// when resolving configuration; nothing fetches them per request.
type Secret struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	KeyName   string    `json:"key_name" gorm:"uniqueIndex;not null"`
	KeyValue  string    `json:"-" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Secret) TableName() string {
	return "secrets"
}
