package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAI implements provider.Language against any OpenAI-compatible chat
// completions endpoint.
type OpenAI struct {
	Model        string
	SystemPrompt string
	Logger       *slog.Logger

	client *openai.Client
}

// NewOpenAI creates an OpenAI backend. The API key is required.
func NewOpenAI(cfg Config, logger *slog.Logger) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	cc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		cc.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = DefaultOpenAIModel
	}

	return &OpenAI{
		Model:        model,
		SystemPrompt: cfg.SystemPrompt,
		Logger:       logger,
		client:       openai.NewClientWithConfig(cc),
	}, nil
}

func (o *OpenAI) Ask(ctx context.Context, text string) (string, error) {
	var msgs []openai.ChatCompletionMessage
	if o.SystemPrompt != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: o.SystemPrompt})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: text})

	o.Logger.Debug("asking openai", "model", o.Model)

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    o.Model,
		Messages: msgs,
	})
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: %w", ErrEmptyResponse)
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", fmt.Errorf("openai: %w", ErrEmptyResponse)
	}
	return answer, nil
}
