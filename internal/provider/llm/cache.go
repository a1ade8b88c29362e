package llm

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/shahar-caura/deskhand/internal/provider"
)

// Cached memoizes successful answers keyed by the exact question text.
// Errors are never cached.
type Cached struct {
	next  provider.Language
	cache *gocache.Cache
}

// NewCached wraps next with an in-memory cache whose entries live for ttl.
func NewCached(next provider.Language, ttl time.Duration) *Cached {
	return &Cached{next: next, cache: gocache.New(ttl, 2*ttl)}
}

func (c *Cached) Ask(ctx context.Context, text string) (string, error) {
	if v, ok := c.cache.Get(text); ok {
		return v.(string), nil
	}
	answer, err := c.next.Ask(ctx, text)
	if err != nil {
		return "", err
	}
	c.cache.SetDefault(text, answer)
	return answer, nil
}

// Len reports the number of cached answers, including expired ones not yet purged.
func (c *Cached) Len() int { return c.cache.ItemCount() }
