// File: internal/services/ai/openai_provider.go
package ai

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider speaks to any OpenAI-compatible completion endpoint; the
// base URL defaults to Gemini's compatibility surface but is configurable.
type OpenAIProvider struct {
	config *Config
	client *openai.Client
}

func NewOpenAIProvider(config *Config) *OpenAIProvider {
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	return &OpenAIProvider{
		config: config,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

// GetCompletion returns a single non-streamed reply for the prompt. With no
// API key configured it fails fast with ErrMissingAPIKey and never dials out.
func (p *OpenAIProvider) GetCompletion(ctx context.Context, prompt string) (string, error) {
	if p.config.APIKey == "" {
		return "", ErrMissingAPIKey
	}

	resp, err := p.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: p.config.Model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: p.config.Temperature,
			TopP:        p.config.TopP,
		},
	)

	if err != nil {
		return "", NewProviderError("completion", "failed to create completion", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &AIError{
			Type:      ErrTypeProvider,
			Operation: "completion",
			Message:   "empty completion response",
		}
	}

	return resp.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) GetStatus(ctx context.Context) ProviderStatus {
	if p.config.APIKey == "" {
		return ProviderStatus{
			IsHealthy:  false,
			Configured: false,
			Message:    "no API key configured, chat runs in fallback mode",
		}
	}
	return ProviderStatus{
		IsHealthy:  true,
		Configured: true,
		Message:    "completion provider ready",
	}
}
