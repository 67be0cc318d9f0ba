// File: internal/services/chat/types.go
package chat

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// PlaceholderPrefix marks chat ids minted locally when persistence is
// unavailable. Turns on a placeholder chat still work; they just leave no
// durable history.
const PlaceholderPrefix = "temp-chat-"

// Ref identifies the chat a turn belongs to: either a durable database row
// or a degraded placeholder. Modeling this explicitly (instead of swallowing
// the persistence error at the call site) keeps every caller honest about
// which mode it is in.
type Ref struct {
	ID      string
	Durable bool
}

// DurableRef wraps a database row id.
func DurableRef(chatID uint) Ref {
	return Ref{ID: strconv.FormatUint(uint64(chatID), 10), Durable: true}
}

// PlaceholderRef mints a fresh non-durable chat id.
func PlaceholderRef() Ref {
	return Ref{ID: PlaceholderPrefix + uuid.NewString(), Durable: false}
}

// ParseRef interprets a client-supplied chat id.
func ParseRef(id string) (Ref, error) {
	if strings.HasPrefix(id, PlaceholderPrefix) {
		return Ref{ID: id, Durable: false}, nil
	}
	n, err := strconv.ParseUint(id, 10, 32)
	if err != nil || n == 0 {
		return Ref{}, fmt.Errorf("invalid chat id %q", id)
	}
	return Ref{ID: id, Durable: true}, nil
}

// RowID returns the database row id for a durable ref.
func (r Ref) RowID() uint {
	if !r.Durable {
		return 0
	}
	n, _ := strconv.ParseUint(r.ID, 10, 32)
	return uint(n)
}

// TurnRequest is one user turn through the orchestration pipeline.
type TurnRequest struct {
	Message string
	ChatID  string // optional; empty means start a new chat
	PDFText string // optional; ephemeral prompt context
}

// TurnResult is the outcome of one turn. ErrDetail carries diagnostic detail
// for degraded paths; it goes to the client's error field and the log, never
// into persisted history.
type TurnResult struct {
	Reply     string
	Chat      Ref
	ErrDetail string
}
