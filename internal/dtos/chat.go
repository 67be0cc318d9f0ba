// File: internal/dtos/chat.go
package dtos

// ChatTurnRequest is the POST /api/chat body.
type ChatTurnRequest struct {
	Message string `json:"message"`
	ChatID  string `json:"chatId,omitempty"`
	PDFText string `json:"pdfText,omitempty"`
}

// ChatTurnResponse is the POST /api/chat reply. Error carries diagnostic
// detail for degraded turns; the turn itself still succeeds with status 200.
type ChatTurnResponse struct {
	Message string `json:"message"`
	ChatID  string `json:"chatId"`
	Error   string `json:"error,omitempty"`
}

// MessageView is one history entry. ContentHTML is only set for assistant
// messages (rendered markdown).
type MessageView struct {
	ID          uint   `json:"id"`
	Role        string `json:"role"`
	Content     string `json:"content"`
	ContentHTML string `json:"contentHtml,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// PDFInfo describes the parsed document.
type PDFInfo struct {
	Pages    int     `json:"pages"`
	Metadata *string `json:"metadata"`
}

// PDFExtractResponse is the POST /api/extract-pdf reply.
type PDFExtractResponse struct {
	Text string  `json:"text"`
	Info PDFInfo `json:"info"`
}

// ErrorResponse is the generic error body for API endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
