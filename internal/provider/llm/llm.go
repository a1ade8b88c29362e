// Package llm provides language backends for free-form questions: the Gemini
// API, OpenAI-compatible chat endpoints, and CLI agents run as subprocesses.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shahar-caura/deskhand/internal/provider"
	"github.com/shahar-caura/deskhand/internal/provider/shell"
)

// ErrEmptyResponse is returned when a backend answers with no text.
var ErrEmptyResponse = errors.New("empty response")

const (
	DefaultGeminiModel = "gemini-2.5-pro"
	DefaultOpenAIModel = "gpt-4o-mini"
)

// Config selects and tunes a language backend.
type Config struct {
	// Provider is "gemini", "openai", "cli", or empty to disable the backend.
	Provider     string
	Model        string
	APIKey       string
	BaseURL      string
	Command      []string
	SystemPrompt string
	Timeout      time.Duration

	// RateLimit is requests per second; zero disables limiting.
	RateLimit float64
	Burst     int
	// CacheTTL enables answer caching when positive.
	CacheTTL time.Duration
}

// NewProvider builds the configured language backend with its rate-limit and
// cache decorators. It returns nil, nil when no provider is configured.
func NewProvider(ctx context.Context, cfg Config, runner *shell.Runner, logger *slog.Logger) (provider.Language, error) {
	var (
		lang provider.Language
		err  error
	)

	switch strings.ToLower(cfg.Provider) {
	case "gemini":
		lang, err = NewGemini(ctx, cfg, logger)
	case "openai":
		lang, err = NewOpenAI(cfg, logger)
	case "cli":
		lang, err = NewCLI(cfg, runner, logger)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown language provider: %s (supported: gemini, openai, cli)", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	if cfg.RateLimit > 0 {
		lang = NewLimited(lang, cfg.RateLimit, cfg.Burst)
	}
	if cfg.CacheTTL > 0 {
		lang = NewCached(lang, cfg.CacheTTL)
	}
	return lang, nil
}
