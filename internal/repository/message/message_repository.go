// File: internal/repository/message/message_repository.go
package message

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/docuchat/docuchat/internal/domain"
	"gorm.io/gorm"
)

var ErrMessageNotFound = errors.New("message not found")

type gormMessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &gormMessageRepository{db: db}
}

// Create - with input validation and secure logging
func (r *gormMessageRepository) Create(ctx context.Context, message *domain.Message) (*domain.Message, error) {
	if err := r.validateMessageInput(message); err != nil {
		log.Printf("[MessageRepository] Validation failed: %v", err)
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	err := r.db.WithContext(ctx).Create(message).Error
	if err != nil {
		// Secure logging - no conversation content exposed
		log.Printf("[MessageRepository] Database error during message creation for chat ID %d: %v", message.ChatID, err)
		return nil, errors.New("database error creating message")
	}

	log.Printf("[MessageRepository] Message created successfully with ID: %d for chat: %d", message.ID, message.ChatID)
	return message, nil
}

// FindByChatID returns the full history, oldest first.
func (r *gormMessageRepository) FindByChatID(ctx context.Context, chatID uint) ([]domain.Message, error) {
	if chatID == 0 {
		return nil, errors.New("invalid chat ID")
	}

	var messages []domain.Message
	err := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at asc, id asc").
		Find(&messages).Error

	if err != nil {
		log.Printf("[MessageRepository] Database error finding messages for chat ID %d: %v", chatID, err)
		return nil, errors.New("database error fetching messages")
	}

	return messages, nil
}

// FindByChatIDWithPagination - memory safety: prevents OOM with large conversations
func (r *gormMessageRepository) FindByChatIDWithPagination(ctx context.Context, chatID uint, limit, offset int) ([]domain.Message, int64, error) {
	if chatID == 0 {
		return nil, 0, errors.New("invalid chat ID")
	}

	if limit <= 0 || limit > 1000 {
		return nil, 0, errors.New("invalid limit: must be between 1 and 1000")
	}
	if offset < 0 {
		return nil, 0, errors.New("invalid offset: must be >= 0")
	}

	var messages []domain.Message
	var total int64

	if err := r.db.WithContext(ctx).Model(&domain.Message{}).Where("chat_id = ?", chatID).Count(&total).Error; err != nil {
		log.Printf("[MessageRepository] Database error counting messages for chat ID %d: %v", chatID, err)
		return nil, 0, errors.New("database error counting messages")
	}

	err := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at asc, id asc").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error

	if err != nil {
		log.Printf("[MessageRepository] Database error in paginated query for chat ID %d: %v", chatID, err)
		return nil, 0, errors.New("database error retrieving paginated messages")
	}

	return messages, total, nil
}

// CountByChatID - efficient message counting
func (r *gormMessageRepository) CountByChatID(ctx context.Context, chatID uint) (int64, error) {
	if chatID == 0 {
		return 0, errors.New("invalid chat ID")
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Message{}).Where("chat_id = ?", chatID).Count(&count).Error
	if err != nil {
		log.Printf("[MessageRepository] Database error counting messages for chat ID %d: %v", chatID, err)
		return 0, errors.New("database error counting chat messages")
	}

	return count, nil
}

// ===== SECURITY VALIDATION HELPERS =====

func (r *gormMessageRepository) validateMessageInput(message *domain.Message) error {
	if message == nil {
		return errors.New("message cannot be nil")
	}

	if message.ChatID == 0 {
		return errors.New("chat ID is required")
	}

	if !domain.IsPersistableRole(message.Role) {
		return errors.New("invalid message role")
	}

	if err := r.validateMessageContent(message.Content); err != nil {
		return fmt.Errorf("content validation: %w", err)
	}

	return nil
}

func (r *gormMessageRepository) validateMessageContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return errors.New("message content cannot be empty")
	}

	if len(content) > 100000 {
		return errors.New("message content too long (max 100000 characters)")
	}

	return nil
}
