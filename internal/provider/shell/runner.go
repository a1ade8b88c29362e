package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"text/template"
)

// ErrNoCommand indicates a backend has no command configured for the current platform.
var ErrNoCommand = errors.New("no command configured")

// Data is the template context available to every argv element.
type Data struct {
	Percent int
	Query   string
	URL     string
	Path    string
}

// Runner renders argv templates and executes them.
type Runner struct {
	Logger *slog.Logger

	// commandContext is overridable for testing.
	commandContext func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// New creates a Runner backed by exec.CommandContext.
func New(logger *slog.Logger) *Runner {
	return &Runner{Logger: logger, commandContext: exec.CommandContext}
}

// WithCommandContext returns a copy of r that builds commands with fn.
func (r *Runner) WithCommandContext(fn func(ctx context.Context, name string, args ...string) *exec.Cmd) *Runner {
	cp := *r
	cp.commandContext = fn
	return &cp
}

// Run renders argv with data, executes it and returns trimmed combined output.
func (r *Runner) Run(ctx context.Context, argv []string, data Data) (string, error) {
	args, err := Render(argv, data)
	if err != nil {
		return "", err
	}

	r.Logger.Debug("running backend command", "cmd", args)

	cmd := r.commandContext(ctx, args[0], args[1:]...)
	out, err := cmd.CombinedOutput()
	text := strings.TrimSpace(string(out))
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return text, fmt.Errorf("%s timed out", args[0])
		}
		if text != "" {
			return text, fmt.Errorf("%s: %w: %s", args[0], err, text)
		}
		return text, fmt.Errorf("%s: %w", args[0], err)
	}
	return text, nil
}

// Render executes each argv element as a template. Elements are never split,
// so arguments may contain spaces.
func Render(argv []string, data Data) ([]string, error) {
	if len(argv) == 0 {
		return nil, ErrNoCommand
	}

	out := make([]string, 0, len(argv))
	for i, a := range argv {
		tmpl, err := template.New("arg").Option("missingkey=error").Parse(a)
		if err != nil {
			return nil, fmt.Errorf("parsing argument %d %q: %w", i, a, err)
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("executing argument %d %q: %w", i, a, err)
		}
		out = append(out, buf.String())
	}

	if strings.TrimSpace(out[0]) == "" {
		return nil, fmt.Errorf("template produced empty command")
	}
	return out, nil
}
