// File: internal/services/chat_service.go
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/docuchat/docuchat/internal/domain"
	chatrepo "github.com/docuchat/docuchat/internal/repository/chat"
	"github.com/docuchat/docuchat/internal/repository/message"
	"github.com/docuchat/docuchat/internal/services/ai"
	chatservice "github.com/docuchat/docuchat/internal/services/chat"
)

// ChatService runs the chat turn pipeline: resolve the chat row, persist the
// user message, call the completion provider, persist the reply. Persistence
// is best-effort throughout - a storage failure degrades the turn to a
// placeholder chat id instead of aborting it. The completion call is made at
// most once per turn; there are no retries.
type ChatService struct {
	config      *chatservice.Config
	chatRepo    chatrepo.ChatRepository
	messageRepo message.MessageRepository
	aiService   *AIService
	logger      Logger
}

func NewChatService(
	chatRepo chatrepo.ChatRepository,
	messageRepo message.MessageRepository,
	aiService *AIService,
	logger Logger,
) (*ChatService, error) {
	if chatRepo == nil {
		return nil, chatservice.NewValidationError("constructor", "chat repository is required")
	}
	if messageRepo == nil {
		return nil, chatservice.NewValidationError("constructor", "message repository is required")
	}
	if aiService == nil {
		return nil, chatservice.NewValidationError("constructor", "AI service is required")
	}
	if logger == nil {
		logger = &NoOpLogger{}
	}

	config := chatservice.DefaultConfig()
	if err := config.Validate(); err != nil {
		return nil, chatservice.NewValidationError("config", err.Error())
	}

	return &ChatService{
		config:      config,
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
		aiService:   aiService,
		logger:      logger,
	}, nil
}

// SendMessage processes one user turn and always produces exactly one
// assistant reply. Only authorization and validation failures surface as
// errors; every upstream problem is folded into a degraded TurnResult.
func (s *ChatService) SendMessage(ctx context.Context, userID uint, req chatservice.TurnRequest) (*chatservice.TurnResult, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, chatservice.NewValidationError("send_message", "message cannot be empty")
	}

	ref, err := s.resolveChat(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	s.persistMessage(ctx, ref, domain.RoleUser, req.Message)

	result := &chatservice.TurnResult{Chat: ref}

	prompt := chatservice.BuildPrompt(req.Message, req.PDFText)
	reply, err := s.aiService.GetCompletion(ctx, prompt)
	switch {
	case err == nil:
		result.Reply = reply
	case errors.Is(err, ai.ErrMissingAPIKey):
		// Degraded mode: no credential, no outbound call.
		s.logger.Warn("completion skipped, no API key configured", "chat_id", ref.ID)
		result.Reply = chatservice.FallbackMissingKeyReply
		result.ErrDetail = err.Error()
	default:
		// One fallback reply per failed call, never a retry.
		s.logger.Error("completion call failed", "chat_id", ref.ID, "error", err)
		result.Reply = chatservice.FallbackUpstreamReply
		result.ErrDetail = err.Error()
	}

	s.persistMessage(ctx, ref, domain.RoleAssistant, result.Reply)
	s.touchChat(ctx, ref)

	return result, nil
}

// resolveChat finds or lazily creates the chat row for this turn. A failed
// create degrades to a placeholder ref so the turn can still proceed.
func (s *ChatService) resolveChat(ctx context.Context, userID uint, req chatservice.TurnRequest) (chatservice.Ref, error) {
	if req.ChatID == "" {
		newChat := &domain.Chat{UserID: userID, Title: domain.TitleFromMessage(req.Message)}
		created, err := s.chatRepo.Create(ctx, newChat)
		if err != nil {
			ref := chatservice.PlaceholderRef()
			s.logger.Error("chat creation failed, continuing with placeholder id",
				"user_id", userID, "placeholder_id", ref.ID, "error", err)
			return ref, nil
		}
		return chatservice.DurableRef(created.ID), nil
	}

	ref, err := chatservice.ParseRef(req.ChatID)
	if err != nil {
		return chatservice.Ref{}, chatservice.NewValidationError("resolve_chat", err.Error())
	}
	if !ref.Durable {
		// A placeholder chat from an earlier degraded turn; nothing to verify.
		return ref, nil
	}

	owned, err := s.chatRepo.ExistsByIDAndUserID(ctx, ref.RowID(), userID)
	if err != nil || !owned {
		return chatservice.Ref{}, chatservice.NewUnauthorizedError(userID, ref.RowID())
	}
	return ref, nil
}

// persistMessage writes one message row, best-effort. Failures are logged and
// never abort the turn; placeholder chats skip storage entirely.
func (s *ChatService) persistMessage(ctx context.Context, ref chatservice.Ref, role, content string) {
	if !ref.Durable {
		return
	}

	msg := &domain.Message{ChatID: ref.RowID(), Role: role, Content: content}
	if _, err := s.messageRepo.Create(ctx, msg); err != nil {
		s.logger.Error("message persistence failed", "chat_id", ref.ID, "role", role, "error", err)
	}
}

func (s *ChatService) touchChat(ctx context.Context, ref chatservice.Ref) {
	if !ref.Durable {
		return
	}
	if err := s.chatRepo.TouchUpdatedAt(ctx, ref.RowID()); err != nil {
		s.logger.Warn("chat timestamp update failed", "chat_id", ref.ID, "error", err)
	}
}

// GetUserChats lists the user's chats, newest activity first.
func (s *ChatService) GetUserChats(ctx context.Context, userID uint) ([]domain.Chat, error) {
	chats, _, err := s.chatRepo.FindByUserIDWithPagination(ctx, userID, s.config.HistoryPageLimit, 0)
	if err != nil {
		return nil, chatservice.NewStorageError("get_user_chats", "could not retrieve chats", err)
	}
	return chats, nil
}

// GetChatMessages returns a chat's history after an ownership check.
func (s *ChatService) GetChatMessages(ctx context.Context, userID, chatID uint) ([]domain.Message, error) {
	chatRecord, err := s.chatRepo.FindByID(ctx, chatID)
	if err != nil || chatRecord.UserID != userID {
		return nil, chatservice.NewUnauthorizedError(userID, chatID)
	}
	return s.messageRepo.FindByChatID(ctx, chatID)
}
