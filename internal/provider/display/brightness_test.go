package display

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shahar-caura/deskhand/internal/command"
	"github.com/shahar-caura/deskhand/internal/provider"
	"github.com/shahar-caura/deskhand/internal/provider/shell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// fakeDisplay stores the level in a file so get and set observe each other.
func fakeDisplay(t *testing.T, initial string) (Commands, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "level")
	require.NoError(t, os.WriteFile(path, []byte(initial), 0o644))
	return Commands{
		Get: []string{"cat", path},
		Set: []string{"sh", "-c", "echo {{.Percent}} > " + path},
	}, path
}

func readLevel(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.TrimSpace(string(data))
}

func TestExecute_Set(t *testing.T) {
	cmds, path := fakeDisplay(t, "70")
	b := New("linux", cmds, shell.New(testLogger()), testLogger())

	res := b.Execute(context.Background(), provider.Request{Command: command.SetBrightness, Percent: 40})

	assert.Equal(t, provider.Result{OK: true, Message: "Brightness set to 40%."}, res)
	assert.Equal(t, "40", readLevel(t, path))
}

func TestExecute_Relative(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		id      command.ID
		step    int
		want    string
	}{
		{"lower", "70", command.LowerBrightness, 10, "60"},
		{"raise", "70", command.RaiseBrightness, 10, "80"},
		{"raise clamps", "95", command.RaiseBrightness, 10, "100"},
		{"lower clamps", "4", command.LowerBrightness, 10, "0"},
		{"default step", "50", command.RaiseBrightness, 0, "60"},
		{"percent output", "35%", command.LowerBrightness, 10, "25"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds, path := fakeDisplay(t, tt.initial)
			b := New("linux", cmds, shell.New(testLogger()), testLogger())

			res := b.Execute(context.Background(), provider.Request{Command: tt.id, Step: tt.step})

			assert.True(t, res.OK, res.Message)
			assert.Equal(t, "Brightness set to "+tt.want+"%.", res.Message)
			assert.Equal(t, tt.want, readLevel(t, path))
		})
	}
}

func TestExecute_GetFails(t *testing.T) {
	cmds, path := fakeDisplay(t, "50")
	cmds.Get = []string{"sh", "-c", "exit 1"}
	b := New("linux", cmds, shell.New(testLogger()), testLogger())

	res := b.Execute(context.Background(), provider.Request{Command: command.RaiseBrightness, Step: 10})

	assert.Equal(t, provider.Result{Message: "Failed to get current brightness."}, res)
	assert.Equal(t, "50", readLevel(t, path))
}

func TestExecute_GetUnparseable(t *testing.T) {
	cmds, _ := fakeDisplay(t, "unknown")
	b := New("linux", cmds, shell.New(testLogger()), testLogger())

	res := b.Execute(context.Background(), provider.Request{Command: command.LowerBrightness, Step: 10})
	assert.Equal(t, "Failed to get current brightness.", res.Message)
}

func TestExecute_SetFails(t *testing.T) {
	cmds := Commands{Get: []string{"echo", "50"}, Set: []string{"sh", "-c", "echo 'no backlight' >&2; exit 1"}}
	b := New("linux", cmds, shell.New(testLogger()), testLogger())

	res := b.Execute(context.Background(), provider.Request{Command: command.SetBrightness, Percent: 10})

	assert.False(t, res.OK)
	assert.Contains(t, res.Message, "Failed to set brightness")
	assert.Contains(t, res.Message, "no backlight")
}

func TestExecute_Unsupported(t *testing.T) {
	b := New("plan9", Commands{}, shell.New(testLogger()), testLogger())

	res := b.Execute(context.Background(), provider.Request{Command: command.SetBrightness, Percent: 10})

	assert.True(t, res.Unsupported)
	assert.Equal(t, "Brightness control is not supported on plan9.", res.Message)
}

func TestNew_FillsMissingFromDefaults(t *testing.T) {
	b := New("linux", Commands{Set: []string{"custom", "{{.Percent}}"}}, shell.New(testLogger()), testLogger())

	assert.Equal(t, []string{"custom", "{{.Percent}}"}, b.Commands.Set)
	assert.Equal(t, Defaults("linux").Get, b.Commands.Get)
}
