package llm

import (
	"context"
	"fmt"

	"github.com/shahar-caura/deskhand/internal/provider"
	"golang.org/x/time/rate"
)

// Limited throttles calls to a language backend.
type Limited struct {
	next    provider.Language
	limiter *rate.Limiter
}

// NewLimited wraps next with a token bucket of perSecond requests and burst.
func NewLimited(next provider.Language, perSecond float64, burst int) *Limited {
	if burst < 1 {
		burst = 1
	}
	return &Limited{next: next, limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

// Ask waits for a token, honoring ctx, then forwards the question.
func (l *Limited) Ask(ctx context.Context, text string) (string, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}
	return l.next.Ask(ctx, text)
}
