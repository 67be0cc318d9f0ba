// File: internal/services/chat/prompt.go
package chat

import (
	"fmt"
	"strings"
)

// BuildPrompt assembles the completion prompt for one turn. PDF context is
// ephemeral client-side state and is prepended verbatim when present.
func BuildPrompt(message, pdfText string) string {
	if strings.TrimSpace(pdfText) == "" {
		return message
	}
	return fmt.Sprintf("Context from PDF: %s\n\nUser question: %s", pdfText, message)
}
