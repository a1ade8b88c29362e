package display

import (
	"context"
	"log/slog"

	"github.com/shahar-caura/deskhand/internal/command"
	"github.com/shahar-caura/deskhand/internal/intent"
	"github.com/shahar-caura/deskhand/internal/provider"
	"github.com/shahar-caura/deskhand/internal/provider/shell"
)

// Commands holds the argv templates for brightness control. Get must print the
// current level; the first number in its output is taken as a percentage.
type Commands struct {
	Get []string
	Set []string
}

// Defaults returns the brightness commands for goos. Both fields are nil on
// platforms without a known tool.
func Defaults(goos string) Commands {
	switch goos {
	case "linux":
		return Commands{
			Get: []string{"sh", "-c", "brightnessctl -m | cut -d, -f4"},
			Set: []string{"brightnessctl", "set", "{{.Percent}}%"},
		}
	case "darwin":
		return Commands{
			Get: []string{"sh", "-c", "brightness -l | awk '/brightness/ {print int($4*100); exit}'"},
			Set: []string{"sh", "-c", "brightness $(awk 'BEGIN {print {{.Percent}}/100}')"},
		}
	case "windows":
		return Commands{
			Get: []string{"powershell", "-NoProfile", "-Command",
				"(Get-CimInstance -Namespace root/WMI -ClassName WmiMonitorBrightness).CurrentBrightness"},
			Set: []string{"powershell", "-NoProfile", "-Command",
				"(Get-WmiObject -Namespace root/WMI -Class WmiMonitorBrightnessMethods).WmiSetBrightness(1,{{.Percent}})"},
		}
	default:
		return Commands{}
	}
}

// Brightness implements provider.Action for the display category.
type Brightness struct {
	Commands Commands
	GOOS     string
	Logger   *slog.Logger

	runner *shell.Runner
}

// New creates a Brightness backend. Empty fields in cmds fall back to Defaults(goos).
func New(goos string, cmds Commands, runner *shell.Runner, logger *slog.Logger) *Brightness {
	def := Defaults(goos)
	if len(cmds.Get) == 0 {
		cmds.Get = def.Get
	}
	if len(cmds.Set) == 0 {
		cmds.Set = def.Set
	}
	return &Brightness{Commands: cmds, GOOS: goos, Logger: logger, runner: runner}
}

func (b *Brightness) Execute(ctx context.Context, req provider.Request) provider.Result {
	if len(b.Commands.Set) == 0 {
		return provider.Unsupported("Brightness control is not supported on %s.", b.GOOS)
	}

	switch req.Command {
	case command.SetBrightness:
		return b.set(ctx, req.Percent)
	case command.LowerBrightness, command.RaiseBrightness:
		step := req.Step
		if step <= 0 {
			step = command.BrightnessStep
		}
		if req.Command == command.LowerBrightness {
			step = -step
		}
		cur, ok := b.current(ctx)
		if !ok {
			return provider.Failed("Failed to get current brightness.")
		}
		return b.set(ctx, command.ClampPercent(cur+step))
	default:
		return provider.Failed("The display backend cannot run %s.", req.Command)
	}
}

func (b *Brightness) current(ctx context.Context) (int, bool) {
	if len(b.Commands.Get) == 0 {
		return 0, false
	}
	out, err := b.runner.Run(ctx, b.Commands.Get, shell.Data{})
	if err != nil {
		b.Logger.Warn("reading brightness failed", "error", err)
		return 0, false
	}
	n, ok := intent.ExtractNumber(out)
	if !ok {
		b.Logger.Warn("brightness output has no number", "output", out)
	}
	return n, ok
}

func (b *Brightness) set(ctx context.Context, pct int) provider.Result {
	b.Logger.Info("setting brightness", "percent", pct)
	if _, err := b.runner.Run(ctx, b.Commands.Set, shell.Data{Percent: pct}); err != nil {
		return provider.Failed("Failed to set brightness: %v", err)
	}
	return provider.Succeeded("Brightness set to %d%%.", pct)
}
