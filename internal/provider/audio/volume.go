package audio

import (
	"context"
	"log/slog"

	"github.com/shahar-caura/deskhand/internal/command"
	"github.com/shahar-caura/deskhand/internal/intent"
	"github.com/shahar-caura/deskhand/internal/provider"
	"github.com/shahar-caura/deskhand/internal/provider/shell"
)

// Commands holds the argv templates for volume control.
type Commands struct {
	Get    []string
	Set    []string
	Mute   []string
	Unmute []string
}

func (c Commands) empty() bool {
	return len(c.Get) == 0 && len(c.Set) == 0 && len(c.Mute) == 0 && len(c.Unmute) == 0
}

// Defaults returns the volume commands for goos.
func Defaults(goos string) Commands {
	switch goos {
	case "darwin":
		return Commands{
			Get:    []string{"osascript", "-e", "output volume of (get volume settings)"},
			Set:    []string{"osascript", "-e", "set volume output volume {{.Percent}}"},
			Mute:   []string{"osascript", "-e", "set volume with output muted"},
			Unmute: []string{"osascript", "-e", "set volume without output muted"},
		}
	case "linux", "freebsd":
		return Commands{
			Get:    []string{"sh", "-c", "pactl get-sink-volume @DEFAULT_SINK@ | grep -o '[0-9]*%' | head -n 1"},
			Set:    []string{"pactl", "set-sink-volume", "@DEFAULT_SINK@", "{{.Percent}}%"},
			Mute:   []string{"pactl", "set-sink-mute", "@DEFAULT_SINK@", "1"},
			Unmute: []string{"pactl", "set-sink-mute", "@DEFAULT_SINK@", "0"},
		}
	case "windows":
		return Commands{
			Get:    powershell("[int][Math]::Round([Audio]::Volume * 100)"),
			Set:    powershell("[Audio]::Volume = {{.Percent}} / 100"),
			Mute:   powershell("[Audio]::Mute = $true"),
			Unmute: powershell("[Audio]::Mute = $false"),
		}
	default:
		return Commands{}
	}
}

func powershell(stmt string) []string {
	return []string{"powershell", "-NoProfile", "-Command", windowsAudio + stmt}
}

// windowsAudio binds the default render endpoint's IAudioEndpointVolume
// through COM interop. Unused vtable slots are placeholders.
const windowsAudio = `Add-Type -TypeDefinition @'
using System.Runtime.InteropServices;
[Guid("5CDF2C82-841E-4546-9722-0CF74078229A"), InterfaceType(ComInterfaceType.InterfaceIsIUnknown)]
interface IAudioEndpointVolume {
  int f(); int g(); int h(); int i();
  int SetMasterVolumeLevelScalar(float fLevel, System.Guid pguidEventContext);
  int j();
  int GetMasterVolumeLevelScalar(out float pfLevel);
  int k(); int l(); int m(); int n();
  int SetMute([MarshalAs(UnmanagedType.Bool)] bool bMute, System.Guid pguidEventContext);
  int GetMute(out bool pbMute);
}
[Guid("D666063F-1587-4E43-81F1-B948E807363F"), InterfaceType(ComInterfaceType.InterfaceIsIUnknown)]
interface IMMDevice {
  int Activate(ref System.Guid id, int clsCtx, int activationParams, out IAudioEndpointVolume aev);
}
[Guid("A95664D2-9614-4F35-A746-DE8DB63617E6"), InterfaceType(ComInterfaceType.InterfaceIsIUnknown)]
interface IMMDeviceEnumerator {
  int f();
  int GetDefaultAudioEndpoint(int dataFlow, int role, out IMMDevice endpoint);
}
[ComImport, Guid("BCDE0395-E52F-467C-8E3D-C4579291692E")] class MMDeviceEnumeratorComObject { }
public class Audio {
  static IAudioEndpointVolume Endpoint() {
    var enumerator = new MMDeviceEnumeratorComObject() as IMMDeviceEnumerator;
    IMMDevice dev = null;
    Marshal.ThrowExceptionForHR(enumerator.GetDefaultAudioEndpoint(0, 1, out dev));
    IAudioEndpointVolume epv = null;
    var id = typeof(IAudioEndpointVolume).GUID;
    Marshal.ThrowExceptionForHR(dev.Activate(ref id, 23, 0, out epv));
    return epv;
  }
  public static float Volume {
    get { float v = -1; Marshal.ThrowExceptionForHR(Endpoint().GetMasterVolumeLevelScalar(out v)); return v; }
    set { Marshal.ThrowExceptionForHR(Endpoint().SetMasterVolumeLevelScalar(value, System.Guid.Empty)); }
  }
  public static bool Mute {
    get { bool mute; Marshal.ThrowExceptionForHR(Endpoint().GetMute(out mute)); return mute; }
    set { Marshal.ThrowExceptionForHR(Endpoint().SetMute(value, System.Guid.Empty)); }
  }
}
'@
`

// Volume implements provider.Action for the audio category.
type Volume struct {
	Commands Commands
	GOOS     string
	Logger   *slog.Logger

	runner *shell.Runner
}

// New creates a Volume backend. Empty fields in cmds fall back to Defaults(goos).
func New(goos string, cmds Commands, runner *shell.Runner, logger *slog.Logger) *Volume {
	def := Defaults(goos)
	if len(cmds.Get) == 0 {
		cmds.Get = def.Get
	}
	if len(cmds.Set) == 0 {
		cmds.Set = def.Set
	}
	if len(cmds.Mute) == 0 {
		cmds.Mute = def.Mute
	}
	if len(cmds.Unmute) == 0 {
		cmds.Unmute = def.Unmute
	}
	return &Volume{Commands: cmds, GOOS: goos, Logger: logger, runner: runner}
}

func (v *Volume) Execute(ctx context.Context, req provider.Request) provider.Result {
	if v.Commands.empty() {
		return provider.Unsupported("Volume control is not supported on %s.", v.GOOS)
	}

	switch req.Command {
	case command.SetVolume:
		return v.set(ctx, req.Percent)
	case command.LowerVolume, command.RaiseVolume:
		step := req.Step
		if step <= 0 {
			step = command.VolumeStep
		}
		if req.Command == command.LowerVolume {
			step = -step
		}
		cur, ok := v.current(ctx)
		if !ok {
			return provider.Failed("Failed to get current volume.")
		}
		return v.set(ctx, command.ClampPercent(cur+step))
	case command.MuteVolume:
		return v.toggle(ctx, v.Commands.Mute, "mute", "Volume muted.")
	case command.UnmuteVolume:
		return v.toggle(ctx, v.Commands.Unmute, "unmute", "Volume unmuted.")
	default:
		return provider.Failed("The audio backend cannot run %s.", req.Command)
	}
}

func (v *Volume) current(ctx context.Context) (int, bool) {
	if len(v.Commands.Get) == 0 {
		return 0, false
	}
	out, err := v.runner.Run(ctx, v.Commands.Get, shell.Data{})
	if err != nil {
		v.Logger.Warn("reading volume failed", "error", err)
		return 0, false
	}
	return intent.ExtractNumber(out)
}

func (v *Volume) set(ctx context.Context, pct int) provider.Result {
	if len(v.Commands.Set) == 0 {
		return provider.Unsupported("Setting the volume is not supported on %s.", v.GOOS)
	}
	v.Logger.Info("setting volume", "percent", pct)
	if _, err := v.runner.Run(ctx, v.Commands.Set, shell.Data{Percent: pct}); err != nil {
		return provider.Failed("Failed to set volume: %v", err)
	}
	return provider.Succeeded("Volume set to %d%%.", pct)
}

func (v *Volume) toggle(ctx context.Context, argv []string, verb, done string) provider.Result {
	if len(argv) == 0 {
		return provider.Unsupported("Volume %s is not supported on %s.", verb, v.GOOS)
	}
	v.Logger.Info("toggling mute", "action", verb)
	if _, err := v.runner.Run(ctx, argv, shell.Data{}); err != nil {
		return provider.Failed("Failed to %s volume: %v", verb, err)
	}
	return provider.Succeeded("%s", done)
}
