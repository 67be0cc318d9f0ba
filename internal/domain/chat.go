// File: internal/domain/chat.go
package domain

import "time"

// MaxChatTitleLength is how much of the first message becomes the chat title.
const MaxChatTitleLength = 30

// Chat represents a single conversation thread. Rows are created lazily on
// the first message of a conversation; only updated_at changes afterwards.
type Chat struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TitleFromMessage derives a chat title from the first message of a
// conversation, truncated to MaxChatTitleLength runes.
func TitleFromMessage(message string) string {
	runes := []rune(message)
	if len(runes) <= MaxChatTitleLength {
		return message
	}
	return string(runes[:MaxChatTitleLength])
}
