// File: internal/handlers/chat_handler_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuchat/docuchat/internal/domain"
	"github.com/docuchat/docuchat/internal/middleware"
	"github.com/docuchat/docuchat/internal/services"
	"github.com/docuchat/docuchat/internal/services/ai"
)

// In-memory repository stubs, just enough to drive the handler.

type stubChatRepo struct {
	mu     sync.Mutex
	nextID uint
	chats  map[uint]*domain.Chat
}

func newStubChatRepo() *stubChatRepo {
	return &stubChatRepo{nextID: 1, chats: make(map[uint]*domain.Chat)}
}

func (r *stubChatRepo) Create(ctx context.Context, chat *domain.Chat) (*domain.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	chat.ID = r.nextID
	r.nextID++
	r.chats[chat.ID] = chat
	return chat, nil
}

func (r *stubChatRepo) FindByID(ctx context.Context, id uint) (*domain.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if chat, ok := r.chats[id]; ok {
		return chat, nil
	}
	return nil, errors.New("chat not found")
}

func (r *stubChatRepo) FindByUserIDWithPagination(ctx context.Context, userID uint, limit, offset int) ([]domain.Chat, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Chat
	for _, chat := range r.chats {
		if chat.UserID == userID {
			out = append(out, *chat)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubChatRepo) ExistsByIDAndUserID(ctx context.Context, chatID, userID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	chat, ok := r.chats[chatID]
	return ok && chat.UserID == userID, nil
}

func (r *stubChatRepo) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	_, total, _ := r.FindByUserIDWithPagination(ctx, userID, 0, 0)
	return total, nil
}

func (r *stubChatRepo) TouchUpdatedAt(ctx context.Context, chatID uint) error { return nil }

type stubMessageRepo struct {
	mu     sync.Mutex
	nextID uint
	rows   []domain.Message
}

func (r *stubMessageRepo) Create(ctx context.Context, message *domain.Message) (*domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	message.ID = r.nextID
	message.CreatedAt = time.Now()
	r.rows = append(r.rows, *message)
	return message, nil
}

func (r *stubMessageRepo) FindByChatID(ctx context.Context, chatID uint) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Message
	for _, m := range r.rows {
		if m.ChatID == chatID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubMessageRepo) FindByChatIDWithPagination(ctx context.Context, chatID uint, limit, offset int) ([]domain.Message, int64, error) {
	msgs, err := r.FindByChatID(ctx, chatID)
	return msgs, int64(len(msgs)), err
}

func (r *stubMessageRepo) CountByChatID(ctx context.Context, chatID uint) (int64, error) {
	msgs, _ := r.FindByChatID(ctx, chatID)
	return int64(len(msgs)), nil
}

type stubProvider struct {
	reply string
	err   error
}

func (p *stubProvider) GetCompletion(ctx context.Context, prompt string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}

func (p *stubProvider) GetStatus(ctx context.Context) ai.ProviderStatus {
	return ai.ProviderStatus{IsHealthy: p.err == nil, Configured: true}
}

func newTestChatHandler(t *testing.T, provider ai.CompletionProvider) (*ChatHandler, *stubChatRepo, *stubMessageRepo) {
	t.Helper()
	chatRepo := newStubChatRepo()
	messageRepo := &stubMessageRepo{}

	aiService, err := services.NewAIService(provider, time.Minute, &services.NoOpLogger{})
	require.NoError(t, err)
	chatService, err := services.NewChatService(chatRepo, messageRepo, aiService, &services.NoOpLogger{})
	require.NoError(t, err)
	handler, err := NewChatHandler(chatService, services.NewMarkdownRenderer())
	require.NoError(t, err)
	return handler, chatRepo, messageRepo
}

func authenticatedRequest(method, target string, body []byte, userID uint) *http.Request {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	return req.WithContext(ctx)
}

func TestHandleChatTurn_RequiresSession(t *testing.T) {
	handler, _, _ := newTestChatHandler(t, &stubProvider{reply: "hi"})

	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader([]byte(`{"message":"hi"}`)))
	rec := httptest.NewRecorder()
	handler.HandleChatTurn(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleChatTurn_Success(t *testing.T) {
	handler, _, messageRepo := newTestChatHandler(t, &stubProvider{reply: "It is about Go."})

	body := []byte(`{"message":"What is this about?","pdfText":"Go."}`)
	rec := httptest.NewRecorder()
	handler.HandleChatTurn(rec, authenticatedRequest(http.MethodPost, "/api/chat", body, 1))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Message string `json:"message"`
		ChatID  string `json:"chatId"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "It is about Go.", resp.Message)
	assert.NotEmpty(t, resp.ChatID)
	assert.Empty(t, resp.Error)

	messageRepo.mu.Lock()
	assert.Len(t, messageRepo.rows, 2)
	messageRepo.mu.Unlock()
}

func TestHandleChatTurn_DegradedTurnStillAnswers200(t *testing.T) {
	handler, _, _ := newTestChatHandler(t, &stubProvider{err: errors.New("model unavailable")})

	body := []byte(`{"message":"hello"}`)
	rec := httptest.NewRecorder()
	handler.HandleChatTurn(rec, authenticatedRequest(http.MethodPost, "/api/chat", body, 1))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Message, "a degraded turn still carries a reply")
	assert.Contains(t, resp.Error, "model unavailable")
}

func TestHandleChatTurn_BadRequests(t *testing.T) {
	handler, _, _ := newTestChatHandler(t, &stubProvider{reply: "hi"})

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"message":`},
		{"blank message", `{"message":"   "}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.HandleChatTurn(rec, authenticatedRequest(http.MethodPost, "/api/chat", []byte(tt.body), 1))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandleChatTurn_ForeignChatForbidden(t *testing.T) {
	handler, chatRepo, _ := newTestChatHandler(t, &stubProvider{reply: "hi"})

	_, err := chatRepo.Create(context.Background(), &domain.Chat{UserID: 7, Title: "theirs"})
	require.NoError(t, err)

	body := []byte(`{"message":"peek","chatId":"1"}`)
	rec := httptest.NewRecorder()
	handler.HandleChatTurn(rec, authenticatedRequest(http.MethodPost, "/api/chat", body, 1))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetChatMessages_RendersAssistantMarkdown(t *testing.T) {
	handler, _, _ := newTestChatHandler(t, &stubProvider{reply: "**bold** reply"})

	rec := httptest.NewRecorder()
	handler.HandleChatTurn(rec, authenticatedRequest(http.MethodPost, "/api/chat", []byte(`{"message":"hi"}`), 1))
	require.Equal(t, http.StatusOK, rec.Code)

	router := mux.NewRouter()
	router.HandleFunc("/api/chats/{id}/messages", handler.GetChatMessages).Methods("GET")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authenticatedRequest(http.MethodGet, "/api/chats/1/messages", nil, 1))

	require.Equal(t, http.StatusOK, rec.Code)
	var views []struct {
		Role        string `json:"role"`
		Content     string `json:"content"`
		ContentHTML string `json:"contentHtml"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	require.Len(t, views, 2)
	assert.Empty(t, views[0].ContentHTML, "user messages stay raw")
	assert.Contains(t, views[1].ContentHTML, "<strong>bold</strong>")
}

func TestGetChatMessages_ForeignChatForbidden(t *testing.T) {
	handler, chatRepo, _ := newTestChatHandler(t, &stubProvider{reply: "hi"})

	_, err := chatRepo.Create(context.Background(), &domain.Chat{UserID: 7, Title: "theirs"})
	require.NoError(t, err)

	router := mux.NewRouter()
	router.HandleFunc("/api/chats/{id}/messages", handler.GetChatMessages).Methods("GET")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authenticatedRequest(http.MethodGet, "/api/chats/1/messages", nil, 1))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetUserChats_ListsOwnChatsOnly(t *testing.T) {
	handler, chatRepo, _ := newTestChatHandler(t, &stubProvider{reply: "hi"})

	_, err := chatRepo.Create(context.Background(), &domain.Chat{UserID: 1, Title: "mine"})
	require.NoError(t, err)
	_, err = chatRepo.Create(context.Background(), &domain.Chat{UserID: 2, Title: "theirs"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.GetUserChats(rec, authenticatedRequest(http.MethodGet, "/api/chats", nil, 1))

	require.Equal(t, http.StatusOK, rec.Code)
	var chats []domain.Chat
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &chats))
	require.Len(t, chats, 1)
	assert.Equal(t, "mine", chats[0].Title)
}
