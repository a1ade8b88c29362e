package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"
)

// Gemini implements provider.Language using the Gemini API.
type Gemini struct {
	Model        string
	SystemPrompt string
	Logger       *slog.Logger

	// generate is overridable for testing.
	generate func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// NewGemini creates a Gemini backend. The API key is required.
func NewGemini(ctx context.Context, cfg Config, logger *slog.Logger) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	return &Gemini{
		Model:        model,
		SystemPrompt: cfg.SystemPrompt,
		Logger:       logger,
		generate:     client.Models.GenerateContent,
	}, nil
}

func (g *Gemini) Ask(ctx context.Context, text string) (string, error) {
	var gc *genai.GenerateContentConfig
	if g.SystemPrompt != "" {
		gc = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(g.SystemPrompt, genai.RoleUser),
		}
	}

	g.Logger.Debug("asking gemini", "model", g.Model)

	resp, err := g.generate(ctx, g.Model, genai.Text(text), gc)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}

	answer := responseText(resp)
	if answer == "" {
		return "", fmt.Errorf("gemini: %w", ErrEmptyResponse)
	}
	return answer, nil
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	c := resp.Candidates[0]
	if c.Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range c.Content.Parts {
		if p != nil {
			b.WriteString(p.Text)
		}
	}
	return strings.TrimSpace(b.String())
}
