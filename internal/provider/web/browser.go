package web

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/shahar-caura/deskhand/internal/command"
	"github.com/shahar-caura/deskhand/internal/provider"
	"github.com/shahar-caura/deskhand/internal/provider/shell"
)

const (
	googleSearchURL  = "https://www.google.com/search?q="
	youtubeSearchURL = "https://www.youtube.com/results?search_query="
)

// Browser implements provider.Action for web searches by handing a URL to the
// platform's default browser opener.
type Browser struct {
	Open   []string
	GOOS   string
	Logger *slog.Logger

	runner *shell.Runner
}

// DefaultOpen returns the URL opener argv for goos, or nil when unknown.
func DefaultOpen(goos string) []string {
	switch goos {
	case "darwin":
		return []string{"open", "{{.URL}}"}
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler", "{{.URL}}"}
	case "linux", "freebsd", "openbsd", "netbsd":
		return []string{"xdg-open", "{{.URL}}"}
	default:
		return nil
	}
}

// New creates a Browser. An empty open argv selects the default for goos.
func New(goos string, open []string, runner *shell.Runner, logger *slog.Logger) *Browser {
	if len(open) == 0 {
		open = DefaultOpen(goos)
	}
	return &Browser{Open: open, GOOS: goos, Logger: logger, runner: runner}
}

// SearchURL builds the search URL for a web command.
func SearchURL(id command.ID, query string) (string, bool) {
	switch id {
	case command.GoogleSearch:
		return googleSearchURL + url.QueryEscape(query), true
	case command.Youtube:
		return youtubeSearchURL + url.QueryEscape(query), true
	default:
		return "", false
	}
}

func (b *Browser) Execute(ctx context.Context, req provider.Request) provider.Result {
	u, ok := SearchURL(req.Command, req.Query)
	if !ok {
		return provider.Failed("The web backend cannot run %s.", req.Command)
	}
	if len(b.Open) == 0 {
		return provider.Unsupported("Opening a browser is not supported on %s.", b.GOOS)
	}

	b.Logger.Info("opening browser", "command", req.Command, "url", u)

	if _, err := b.runner.Run(ctx, b.Open, shell.Data{URL: u, Query: req.Query}); err != nil {
		return provider.Failed("Failed to open browser: %v", err)
	}

	if req.Command == command.Youtube {
		return provider.Succeeded("Searching YouTube for: %s", req.Query)
	}
	return provider.Succeeded("Searching Google for: %s", req.Query)
}
