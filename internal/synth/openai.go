package synth

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/cioinsight/deckgen/internal/model"
)

// OpenAIProvider synthesizes the report through a chat-completions endpoint
// instead of the job queue. Useful against OpenAI-compatible gateways when
// the queue is unavailable.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates a chat-completions provider.
func NewOpenAIProvider(cfg model.SynthesisConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai provider requires an API key")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	chatModel := cfg.Model
	if chatModel == "" {
		chatModel = openai.GPT4oMini
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		model:  chatModel,
	}, nil
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string { return "openai" }

// Synthesize submits the prompt as a single user message.
func (p *OpenAIProvider) Synthesize(ctx context.Context, prompt string) (*model.Report, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	return ParseReportText(strings.TrimSpace(resp.Choices[0].Message.Content))
}
