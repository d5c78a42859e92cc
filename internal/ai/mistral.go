package ai

import (
	"context"
	"net/http"
	"time"
)

// mistralProvider implements the Provider interface using the Mistral
// chat completions API, which is wire-compatible with OpenAI's.
type mistralProvider struct {
	config ProviderConfig
	client *http.Client
}

// newMistral creates a new Mistral provider.
func newMistral(cfg ProviderConfig) *mistralProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.mistral.ai/v1"
	}
	return &mistralProvider{
		config: cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *mistralProvider) Name() string { return "mistral" }

// Generate sends a chat completion request to Mistral and returns the
// assistant's response text.
func (p *mistralProvider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	messages := []openAIMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt},
	}

	body := openAIRequest{
		Model:    p.config.Model,
		Messages: messages,
	}

	return doChat(ctx, p.client, p.config, "mistral", body)
}
