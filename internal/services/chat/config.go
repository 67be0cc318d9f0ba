// File: internal/services/chat/config.go
package chat

import (
	"fmt"
	"time"
)

// Fixed user-facing replies for degraded turns. Raw upstream error detail is
// reported out-of-band and never written into chat history.
const (
	FallbackMissingKeyReply = "I'm sorry, but I can't process your request right now. " +
		"The API key for the language model is missing. Please check your environment configuration."
	FallbackUpstreamReply = "Sorry, I encountered an error while processing your request. " +
		"Please try again later."
)

type Config struct {
	// History Configuration
	HistoryPageLimit int

	// Performance Configuration
	Timeout time.Duration
}

func (c *Config) Validate() error {
	if c.HistoryPageLimit <= 0 {
		return fmt.Errorf("history_page_limit must be positive")
	}
	if c.HistoryPageLimit > 1000 {
		return fmt.Errorf("history_page_limit cannot exceed 1000")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		HistoryPageLimit: 200,
		Timeout:          2 * time.Minute,
	}
}
