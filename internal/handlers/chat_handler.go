// File: internal/handlers/chat_handler.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/docuchat/docuchat/internal/domain"
	"github.com/docuchat/docuchat/internal/dtos"
	"github.com/docuchat/docuchat/internal/middleware"
	"github.com/docuchat/docuchat/internal/services"
	chatservice "github.com/docuchat/docuchat/internal/services/chat"
)

type ChatHandler struct {
	ChatService *services.ChatService
	Markdown    *services.MarkdownRenderer
}

func NewChatHandler(cs *services.ChatService, md *services.MarkdownRenderer) (*ChatHandler, error) {
	if cs == nil {
		return nil, chatservice.NewValidationError("constructor", "chat service is required")
	}
	if md == nil {
		md = services.NewMarkdownRenderer()
	}
	return &ChatHandler{ChatService: cs, Markdown: md}, nil
}

// HandleChatTurn processes one conversational turn: persist the user message,
// call the model, persist the reply. Degraded turns (missing credential,
// upstream failure, lost persistence) still answer 200 with a fallback reply
// and the diagnostic detail in the error field.
func (h *ChatHandler) HandleChatTurn(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req dtos.ChatTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, "Message is required", http.StatusBadRequest)
		return
	}

	result, err := h.ChatService.SendMessage(r.Context(), userID, chatservice.TurnRequest{
		Message: req.Message,
		ChatID:  req.ChatID,
		PDFText: req.PDFText,
	})
	if err != nil {
		if chatservice.IsUnauthorized(err) {
			writeError(w, "Chat not found or unauthorized", http.StatusForbidden)
			return
		}
		writeError(w, "Could not process chat message", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, dtos.ChatTurnResponse{
		Message: result.Reply,
		ChatID:  result.Chat.ID,
		Error:   result.ErrDetail,
	})
}

// GetUserChats handles the request to retrieve all chat histories for a user.
func (h *ChatHandler) GetUserChats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	chats, err := h.ChatService.GetUserChats(r.Context(), userID)
	if err != nil {
		writeError(w, "Could not retrieve chats", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, chats)
}

// GetChatMessages handles the request to retrieve all messages for a specific
// chat. Assistant messages carry rendered markdown alongside the raw content.
func (h *ChatHandler) GetChatMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	chatID, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		writeError(w, "Invalid chat ID", http.StatusBadRequest)
		return
	}

	messages, err := h.ChatService.GetChatMessages(r.Context(), userID, uint(chatID))
	if err != nil {
		if chatservice.IsUnauthorized(err) {
			writeError(w, "Unauthorized", http.StatusForbidden)
			return
		}
		writeError(w, "Could not retrieve messages", http.StatusInternalServerError)
		return
	}

	views := make([]dtos.MessageView, 0, len(messages))
	for _, m := range messages {
		view := dtos.MessageView{
			ID:        m.ID,
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: m.CreatedAt.Format(time.RFC3339),
		}
		if m.Role == domain.RoleAssistant {
			view.ContentHTML = h.Markdown.Render(m.Content)
		}
		views = append(views, view)
	}
	writeJSON(w, http.StatusOK, views)
}

// writeJSON is a helper for sending JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError is a helper for sending JSON error responses.
func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}
