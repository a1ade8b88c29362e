package capture

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shahar-caura/deskhand/internal/command"
	"github.com/shahar-caura/deskhand/internal/provider"
	"github.com/shahar-caura/deskhand/internal/provider/shell"
)

// Screenshot implements provider.Action for screen capture.
type Screenshot struct {
	Command []string
	Dir     string
	GOOS    string
	Logger  *slog.Logger

	runner *shell.Runner
	now    func() time.Time
}

const windowsCapture = `Add-Type -AssemblyName System.Windows.Forms,System.Drawing; ` +
	`$b=[System.Windows.Forms.Screen]::PrimaryScreen.Bounds; ` +
	`$bmp=New-Object System.Drawing.Bitmap $b.Width,$b.Height; ` +
	`[System.Drawing.Graphics]::FromImage($bmp).CopyFromScreen($b.Location,[System.Drawing.Point]::Empty,$b.Size); ` +
	`$bmp.Save('{{.Path}}')`

// DefaultCommand returns the capture argv for goos, or nil when unknown.
func DefaultCommand(goos string) []string {
	switch goos {
	case "darwin":
		return []string{"screencapture", "-x", "{{.Path}}"}
	case "windows":
		return []string{"powershell", "-NoProfile", "-Command", windowsCapture}
	case "linux", "freebsd":
		return []string{"gnome-screenshot", "-f", "{{.Path}}"}
	default:
		return nil
	}
}

// New creates a Screenshot backend writing into dir.
func New(goos string, cmd []string, dir string, runner *shell.Runner, logger *slog.Logger) *Screenshot {
	if len(cmd) == 0 {
		cmd = DefaultCommand(goos)
	}
	if dir == "" {
		dir = "."
	}
	return &Screenshot{
		Command: cmd,
		Dir:     dir,
		GOOS:    goos,
		Logger:  logger,
		runner:  runner,
		now:     time.Now,
	}
}

func (s *Screenshot) Execute(ctx context.Context, req provider.Request) provider.Result {
	if req.Command != command.Screenshot {
		return provider.Failed("The capture backend cannot run %s.", req.Command)
	}
	if len(s.Command) == 0 {
		return provider.Unsupported("Screenshots are not supported on %s.", s.GOOS)
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return provider.Failed("Failed to take screenshot: %v", err)
	}
	path := filepath.Join(s.Dir, fmt.Sprintf("screenshot_%d.png", s.now().Unix()))

	s.Logger.Info("capturing screen", "path", path)

	if _, err := s.runner.Run(ctx, s.Command, shell.Data{Path: path}); err != nil {
		return provider.Failed("Failed to take screenshot: %v", err)
	}
	return provider.Succeeded("Screenshot saved as %s", path)
}
