// File: internal/domain/message.go
package domain

import "time"

// Message roles. RoleSystem exists only client-side for upload notices and is
// never persisted.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message represents a single message within a chat. Messages are immutable
// after creation and ordered by insertion time.
type Message struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	ChatID    uint      `json:"chat_id" gorm:"not null;index"`
	Role      string    `json:"role" gorm:"not null"`
	Content   string    `json:"content" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

// IsPersistableRole reports whether a role may be written to storage.
func IsPersistableRole(role string) bool {
	return role == RoleUser || role == RoleAssistant
}
