package process

import (
	"context"
	"errors"
	"log/slog"
	"os/exec"

	"github.com/shahar-caura/deskhand/internal/command"
	"github.com/shahar-caura/deskhand/internal/provider"
	"github.com/shahar-caura/deskhand/internal/provider/shell"
)

// Launcher implements provider.Action for starting desktop applications.
type Launcher struct {
	Word   []string
	GOOS   string
	Logger *slog.Logger

	runner *shell.Runner
}

// DefaultWord returns the word-processor launch argv for goos, or nil when
// the platform has no native Word.
func DefaultWord(goos string) []string {
	switch goos {
	case "windows":
		return []string{"cmd", "/c", "start", "winword"}
	case "darwin":
		return []string{"open", "-a", "Microsoft Word"}
	default:
		return nil
	}
}

// New creates a Launcher. An empty word argv selects the default for goos.
func New(goos string, word []string, runner *shell.Runner, logger *slog.Logger) *Launcher {
	if len(word) == 0 {
		word = DefaultWord(goos)
	}
	return &Launcher{Word: word, GOOS: goos, Logger: logger, runner: runner}
}

func (l *Launcher) Execute(ctx context.Context, req provider.Request) provider.Result {
	if req.Command != command.StartWordProject {
		return provider.Failed("The process backend cannot run %s.", req.Command)
	}

	if len(l.Word) == 0 {
		if l.GOOS == "linux" {
			return provider.Unsupported("Opening Word is not natively supported on Linux. Try LibreOffice Writer.")
		}
		return provider.Unsupported("Word automation not supported on %s.", l.GOOS)
	}

	l.Logger.Info("launching word processor", "cmd", l.Word)

	if _, err := l.runner.Run(ctx, l.Word, shell.Data{}); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return provider.Failed("Microsoft Word application not found.")
		}
		return provider.Failed("Failed to open Word: %v", err)
	}
	return provider.Succeeded("Attempting to open Microsoft Word.")
}
