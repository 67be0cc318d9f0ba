package chat

import (
	"context"

	"github.com/docuchat/docuchat/internal/domain"
)

// ChatRepository handles chat data operations.
type ChatRepository interface {
	Create(ctx context.Context, chat *domain.Chat) (*domain.Chat, error)
	FindByID(ctx context.Context, id uint) (*domain.Chat, error)
	FindByUserIDWithPagination(ctx context.Context, userID uint, limit, offset int) ([]domain.Chat, int64, error)
	ExistsByIDAndUserID(ctx context.Context, chatID, userID uint) (bool, error)
	CountByUserID(ctx context.Context, userID uint) (int64, error)
	TouchUpdatedAt(ctx context.Context, chatID uint) error
}
