package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shahar-caura/deskhand/internal/provider/shell"
)

// DefaultCLICommand runs the claude CLI headless. {{.Query}} receives the
// question.
var DefaultCLICommand = []string{"claude", "-p", "{{.Query}}", "--output-format", "json"}

// CLI implements provider.Language by running an agent CLI once per question.
type CLI struct {
	Command      []string
	SystemPrompt string
	Logger       *slog.Logger

	runner *shell.Runner
}

// NewCLI creates a CLI backend. An empty command selects DefaultCLICommand.
func NewCLI(cfg Config, runner *shell.Runner, logger *slog.Logger) (*CLI, error) {
	cmd := cfg.Command
	if len(cmd) == 0 {
		cmd = DefaultCLICommand
	}
	if _, err := shell.Render(cmd, shell.Data{}); err != nil {
		return nil, fmt.Errorf("invalid cli command: %w", err)
	}
	return &CLI{Command: cmd, SystemPrompt: cfg.SystemPrompt, Logger: logger, runner: runner}, nil
}

func (c *CLI) Ask(ctx context.Context, text string) (string, error) {
	prompt := text
	if c.SystemPrompt != "" {
		prompt = c.SystemPrompt + "\n\n" + text
	}

	c.Logger.Debug("asking cli agent", "cmd", c.Command[0])

	out, err := c.runner.Run(ctx, c.Command, shell.Data{Query: prompt})
	if err != nil {
		return "", fmt.Errorf("cli agent: %w", err)
	}

	answer := stripCodeFences(extractResultField(out))
	if answer == "" {
		return "", fmt.Errorf("cli agent: %w", ErrEmptyResponse)
	}
	return answer, nil
}

// extractResultField unwraps the {"result": "..."} envelope that agent CLIs
// print with JSON output. Anything else is returned unchanged.
func extractResultField(raw string) string {
	var envelope struct {
		Result string `json:"result"`
	}
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return raw
	}
	if envelope.Result == "" {
		return raw
	}
	return envelope.Result
}

// stripCodeFences removes a markdown fence wrapping the whole answer.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
	}
	return strings.TrimSpace(s)
}
