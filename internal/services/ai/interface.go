// File: internal/services/ai/interface.go
package ai

import "context"

// ProviderStatus represents AI provider health
type ProviderStatus struct {
	IsHealthy  bool
	Configured bool
	Message    string
}

// CompletionProvider handles chat completions
type CompletionProvider interface {
	GetCompletion(ctx context.Context, prompt string) (string, error)
	GetStatus(ctx context.Context) ProviderStatus
}
