// File: internal/domain/chat_test.go
package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleFromMessage(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"short message kept whole", "Hello there", "Hello there"},
		{"exactly the limit", strings.Repeat("a", 30), strings.Repeat("a", 30)},
		{"long message truncated", strings.Repeat("a", 31), strings.Repeat("a", 30)},
		{"truncation counts runes not bytes", strings.Repeat("é", 40), strings.Repeat("é", 30)},
		{"empty message", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TitleFromMessage(tt.message))
		})
	}
}

func TestIsPersistableRole(t *testing.T) {
	assert.True(t, IsPersistableRole(RoleUser))
	assert.True(t, IsPersistableRole(RoleAssistant))
	assert.False(t, IsPersistableRole(RoleSystem))
	assert.False(t, IsPersistableRole("operator"))
	assert.False(t, IsPersistableRole(""))
}
