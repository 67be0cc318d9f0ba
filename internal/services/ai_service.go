// File: internal/services/ai_service.go
package services

import (
	"context"
	"time"

	"github.com/docuchat/docuchat/internal/services/ai"
)

// AIService is the high-level facade over the completion provider. It owns
// the per-call timeout; there are no retries by design - a failed call
// produces exactly one fallback reply upstream.
type AIService struct {
	provider ai.CompletionProvider
	timeout  time.Duration
	logger   Logger
}

func NewAIService(provider ai.CompletionProvider, timeout time.Duration, logger Logger) (*AIService, error) {
	if provider == nil {
		return nil, ai.NewConfigError("constructor", "completion provider is required")
	}
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	if logger == nil {
		logger = &NoOpLogger{}
	}
	return &AIService{provider: provider, timeout: timeout, logger: logger}, nil
}

// GetCompletion runs one completion call under the service timeout.
func (s *AIService) GetCompletion(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	reply, err := s.provider.GetCompletion(ctx, prompt)
	if err != nil {
		return "", err
	}

	s.logger.Debug("completion received",
		"prompt_length", len(prompt),
		"reply_length", len(reply),
		"duration_ms", time.Since(start).Milliseconds())
	return reply, nil
}

// GetProviderStatus reports whether the provider is usable.
func (s *AIService) GetProviderStatus(ctx context.Context) ai.ProviderStatus {
	return s.provider.GetStatus(ctx)
}
