package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shahar-caura/deskhand/internal/provider"
)

// NoResponse is reported whenever the language backend fails or is silent.
const NoResponse = "[No response from LLM]"

// FallbackRouter forwards unmatched utterances to the language backend.
type FallbackRouter struct {
	Language provider.Language
	Timeout  time.Duration
	Logger   *slog.Logger
}

// NewFallbackRouter creates a FallbackRouter. lang may be nil when no language
// backend is configured.
func NewFallbackRouter(lang provider.Language, timeout time.Duration, logger *slog.Logger) *FallbackRouter {
	return &FallbackRouter{Language: lang, Timeout: timeout, Logger: logger}
}

// Route asks the language backend about the original utterance.
func (f *FallbackRouter) Route(ctx context.Context, utterance string) (out Outcome) {
	if f.Language == nil {
		f.Logger.Warn("no language backend configured")
		return failed(NoResponse, fmt.Errorf("%w: not configured", ErrLanguage))
	}

	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			f.Logger.Error("language backend panicked", "panic", r)
			out = failed(NoResponse, fmt.Errorf("%w: panic: %v", ErrLanguage, r))
		}
	}()

	answer, err := f.Language.Ask(ctx, utterance)
	if err != nil {
		f.Logger.Warn("language backend failed", "error", err)
		return failed(NoResponse, fmt.Errorf("%w: %w", ErrLanguage, err))
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		f.Logger.Warn("language backend returned an empty response")
		return failed(NoResponse, fmt.Errorf("%w: empty response", ErrLanguage))
	}
	return succeeded(answer)
}
