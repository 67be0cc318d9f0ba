// File: internal/repository/chat/chat_repository.go
package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/docuchat/docuchat/internal/domain"
	"gorm.io/gorm"
)

var ErrChatNotFound = errors.New("chat not found")
var ErrUnauthorizedAccess = errors.New("unauthorized access to chat")

type gormChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &gormChatRepository{db: db}
}

// Create - with input validation and secure logging
func (r *gormChatRepository) Create(ctx context.Context, chat *domain.Chat) (*domain.Chat, error) {
	if err := r.validateChatInput(chat); err != nil {
		log.Printf("[ChatRepository] Validation failed: %v", err)
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	err := r.db.WithContext(ctx).Create(chat).Error
	if err != nil {
		// Secure logging - no conversation content exposed
		log.Printf("[ChatRepository] Database error during chat creation for user ID %d: %v", chat.UserID, err)
		return nil, errors.New("database error creating chat")
	}

	log.Printf("[ChatRepository] Chat created successfully with ID: %d for user: %d", chat.ID, chat.UserID)
	return chat, nil
}

func (r *gormChatRepository) FindByID(ctx context.Context, chatID uint) (*domain.Chat, error) {
	if chatID == 0 {
		return nil, errors.New("invalid chat ID")
	}

	var chat domain.Chat
	err := r.db.WithContext(ctx).First(&chat, chatID).Error
	return r.handleFindError(err, &chat, "FindByID")
}

// FindByUserIDWithPagination - memory safety: loads only the requested page.
func (r *gormChatRepository) FindByUserIDWithPagination(ctx context.Context, userID uint, limit, offset int) ([]domain.Chat, int64, error) {
	if userID == 0 {
		return nil, 0, errors.New("invalid user ID")
	}

	if limit <= 0 || limit > 1000 {
		return nil, 0, errors.New("invalid limit: must be between 1 and 1000")
	}
	if offset < 0 {
		return nil, 0, errors.New("invalid offset: must be >= 0")
	}

	var chats []domain.Chat
	var total int64

	if err := r.db.WithContext(ctx).Model(&domain.Chat{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		log.Printf("[ChatRepository] Database error counting chats for user ID %d: %v", userID, err)
		return nil, 0, errors.New("database error counting chats")
	}

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&chats).Error

	if err != nil {
		log.Printf("[ChatRepository] Database error in paginated query for user ID %d: %v", userID, err)
		return nil, 0, errors.New("database error retrieving paginated chats")
	}

	return chats, total, nil
}

// ExistsByIDAndUserID - ownership validation without data exposure
func (r *gormChatRepository) ExistsByIDAndUserID(ctx context.Context, chatID, userID uint) (bool, error) {
	if chatID == 0 || userID == 0 {
		return false, errors.New("invalid chat ID or user ID")
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Chat{}).Where("id = ? AND user_id = ?", chatID, userID).Count(&count).Error
	if err != nil {
		log.Printf("[ChatRepository] Database error checking chat ownership for chat ID %d, user ID %d: %v", chatID, userID, err)
		return false, errors.New("database error checking chat ownership")
	}

	return count > 0, nil
}

// CountByUserID - efficient user chat counting
func (r *gormChatRepository) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	if userID == 0 {
		return 0, errors.New("invalid user ID")
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Chat{}).Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		log.Printf("[ChatRepository] Database error counting chats for user ID %d: %v", userID, err)
		return 0, errors.New("database error counting user chats")
	}

	return count, nil
}

// TouchUpdatedAt bumps the activity timestamp after a turn.
func (r *gormChatRepository) TouchUpdatedAt(ctx context.Context, chatID uint) error {
	if chatID == 0 {
		return errors.New("invalid chat ID")
	}

	result := r.db.WithContext(ctx).
		Model(&domain.Chat{}).
		Where("id = ?", chatID).
		Update("updated_at", gorm.Expr("CURRENT_TIMESTAMP"))

	if result.Error != nil {
		log.Printf("[ChatRepository] Database error updating timestamp for chat ID %d: %v", chatID, result.Error)
		return errors.New("database error updating chat timestamp")
	}

	if result.RowsAffected == 0 {
		return ErrChatNotFound
	}

	return nil
}

// ===== SECURITY VALIDATION HELPERS =====

func (r *gormChatRepository) validateChatInput(chat *domain.Chat) error {
	if chat == nil {
		return errors.New("chat cannot be nil")
	}

	if chat.UserID == 0 {
		return errors.New("user ID is required")
	}

	if err := r.validateChatTitle(chat.Title); err != nil {
		return fmt.Errorf("title validation: %w", err)
	}

	return nil
}

func (r *gormChatRepository) validateChatTitle(title string) error {
	if len(title) > 200 {
		return errors.New("title must be 200 characters or less")
	}

	// Basic XSS protection
	if strings.Contains(title, "<script") || strings.Contains(title, "javascript:") {
		return errors.New("invalid characters detected in title")
	}

	return nil
}

// ===== ERROR HANDLING HELPERS =====

// handleFindError - secure error handling without data leakage
func (r *gormChatRepository) handleFindError(err error, chat *domain.Chat, operation string) (*domain.Chat, error) {
	if err == nil {
		return chat, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrChatNotFound
	}

	log.Printf("[ChatRepository] %s database error: %v", operation, err)

	return nil, errors.New("database query failed")
}
