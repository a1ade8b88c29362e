package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shahar-caura/deskhand/internal/command"
	"github.com/shahar-caura/deskhand/internal/config"
	"github.com/shahar-caura/deskhand/internal/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testConfig stubs every backend with commands that succeed on any Unix host
// and answers general questions with "Paris.".
const testConfig = `language:
  provider: cli
  command: ["echo", "Paris."]
actions:
  timeout: 5s
  web:
    open: ["true"]
  capture:
    command: ["true"]
  process:
    word: ["true"]
  display:
    get: ["echo", "50"]
    set: ["true"]
  audio:
    get: ["echo", "50"]
    set: ["true"]
    mute: ["true"]
    unmute: ["true"]
history:
  dir: history
`

// setupWorkspace moves into a temp dir holding deskhand.yaml.
func setupWorkspace(t *testing.T, cfg string) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(config.DefaultPath, []byte(cfg), 0o644))

	prev := history.Dir()
	t.Cleanup(func() { history.SetDir(prev) })
	return dir
}

// run executes the root command with args and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	root := newRootCmd(logger, new(slog.LevelVar))

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestRoot_NoArgsPrintsHelp(t *testing.T) {
	out, err := run(t, "")
	require.NoError(t, err)
	assert.Contains(t, out, "deskhand [utterance...]")
}

func TestRoot_BareWordsAreAnUtterance(t *testing.T) {
	setupWorkspace(t, testConfig)

	out, err := run(t, "", "set", "volume", "to", "30")
	require.NoError(t, err)
	assert.Equal(t, "Volume set to 30%.\n", out)
}

func TestAsk_SystemCommand(t *testing.T) {
	setupWorkspace(t, testConfig)

	out, err := run(t, "", "ask", "mute", "the", "volume")
	require.NoError(t, err)
	assert.Equal(t, "Volume muted.\n", out)

	entries, err := history.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, string(command.MuteVolume), entries[0].Command)
	assert.Equal(t, "ok", entries[0].Status)
}

func TestAsk_GeneralQuestion(t *testing.T) {
	setupWorkspace(t, testConfig)

	out, err := run(t, "", "ask", "what", "is", "the", "capital", "of", "France?")
	require.NoError(t, err)
	assert.Equal(t, "Paris.\n", out)
}

func TestAsk_FailedOutcomeExitsNonZero(t *testing.T) {
	setupWorkspace(t, testConfig)

	out, err := run(t, "", "ask", "set", "volume", "to", "150")
	require.ErrorIs(t, err, errOutcomeFailed)
	assert.Equal(t, "Volume must be between 0 and 100.\n", out)
}

func TestAsk_HistoryDisabled(t *testing.T) {
	dir := setupWorkspace(t, testConfig+"  enabled: false\n")

	_, err := run(t, "", "ask", "unmute", "volume")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "history"))
	assert.True(t, os.IsNotExist(err))
}

func TestAsk_BadConfig(t *testing.T) {
	setupWorkspace(t, "language:\n  provider: carrier-pigeon\n")

	_, err := run(t, "", "ask", "mute", "volume")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "language.provider")
}

func TestAsk_RequiresUtterance(t *testing.T) {
	_, err := run(t, "", "ask")
	assert.Error(t, err)
}

func TestREPL(t *testing.T) {
	setupWorkspace(t, testConfig)

	out, err := run(t, "mute the volume\n\n   \nset brightness to 40\nquit\nset volume to 5\n", "repl")
	require.NoError(t, err)

	assert.Contains(t, out, "Volume muted.\n")
	assert.Contains(t, out, "Brightness set to 40%.\n")
	assert.NotContains(t, out, "Volume set to 5%")
}

func TestREPL_EOF(t *testing.T) {
	setupWorkspace(t, testConfig)

	out, err := run(t, "open word", "repl")
	require.NoError(t, err)
	assert.Contains(t, out, "Attempting to open Microsoft Word.")
}

func TestHistory(t *testing.T) {
	setupWorkspace(t, testConfig)

	_, err := run(t, "", "ask", "mute", "volume")
	require.NoError(t, err)
	_, err = run(t, "", "ask", "set", "volume", "to", "500")
	require.Error(t, err)

	out, err := run(t, "", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "MuteVolume")
	assert.Contains(t, out, "SetVolume")

	out, err = run(t, "", "history", "--status", "failed")
	require.NoError(t, err)
	assert.Contains(t, out, "SetVolume")
	assert.NotContains(t, out, "MuteVolume")
}

func TestHistory_Empty(t *testing.T) {
	setupWorkspace(t, testConfig)

	out, err := run(t, "", "history")
	require.NoError(t, err)
	assert.Equal(t, "No history found.\n", out)
}

func TestHistoryCleanup(t *testing.T) {
	setupWorkspace(t, testConfig)
	history.SetDir("history")

	old := &history.Entry{
		ID:        "20200101-000000-deadbeef",
		Utterance: "mute volume",
		Status:    "ok",
		CreatedAt: time.Now().Add(-48 * time.Hour),
	}
	require.NoError(t, old.Save())

	out, err := run(t, "", "history", "cleanup", "--older-than", "24h")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 1 history entries")

	entries, err := history.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCommands(t *testing.T) {
	out, err := run(t, "", "commands")
	require.NoError(t, err)
	for _, id := range command.IDs() {
		assert.Contains(t, out, string(id))
	}
	assert.Contains(t, out, `"set volume to" <0-100>`)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "deskhand dev"))
}

func TestCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish"} {
		out, err := run(t, "", "completion", shell)
		require.NoError(t, err, shell)
		assert.Contains(t, out, "deskhand", shell)
	}
}
