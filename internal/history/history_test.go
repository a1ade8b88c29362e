package history

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDir(t *testing.T) {
	t.Helper()
	orig := historyDir
	historyDir = filepath.Join(t.TempDir(), ".deskhand", "history")
	t.Cleanup(func() { historyDir = orig })
}

func entryAt(id string, created time.Time, status string) *Entry {
	return &Entry{
		ID:        id,
		Utterance: "mute the volume",
		Intent:    "system",
		Command:   "MuteVolume",
		Status:    status,
		Message:   "Volume muted.",
		CreatedAt: created,
	}
}

func TestNewID_Format(t *testing.T) {
	id := NewID(time.Date(2026, 2, 17, 12, 0, 0, 0, time.UTC))
	assert.Regexp(t, regexp.MustCompile(`^20260217-120000-[0-9a-f]{8}$`), id)
	assert.NotEqual(t, id, NewID(time.Date(2026, 2, 17, 12, 0, 0, 0, time.UTC)))
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	setupTestDir(t)

	created := time.Date(2026, 2, 17, 12, 0, 0, 0, time.UTC)
	e := entryAt("20260217-120000-aaaa0001", created, "ok")
	e.DurationMS = 42
	require.NoError(t, e.Save())

	_, err := os.Stat(filepath.Join(historyDir, e.ID+".yaml"))
	require.NoError(t, err)

	loaded, err := Load(e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.Utterance, loaded.Utterance)
	assert.Equal(t, e.Command, loaded.Command)
	assert.Equal(t, e.Message, loaded.Message)
	assert.Equal(t, int64(42), loaded.DurationMS)
	assert.True(t, created.Equal(loaded.CreatedAt))
}

func TestSave_NoTempFileLeft(t *testing.T) {
	setupTestDir(t)

	require.NoError(t, entryAt("x", time.Now(), "ok").Save())

	matches, err := filepath.Glob(filepath.Join(historyDir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestSave_EmptyID(t *testing.T) {
	setupTestDir(t)
	assert.Error(t, (&Entry{}).Save())
}

func TestLoad_Missing(t *testing.T) {
	setupTestDir(t)
	_, err := Load("nope")
	assert.Error(t, err)
}

func TestList_SortedNewestFirstSkipsCorrupt(t *testing.T) {
	setupTestDir(t)

	base := time.Date(2026, 2, 17, 12, 0, 0, 0, time.UTC)
	require.NoError(t, entryAt("a", base, "ok").Save())
	require.NoError(t, entryAt("b", base.Add(2*time.Minute), "failed").Save())
	require.NoError(t, entryAt("c", base.Add(time.Minute), "ok").Save())
	require.NoError(t, os.WriteFile(filepath.Join(historyDir, "bad.yaml"), []byte(":\t: not yaml ["), 0o644))

	entries, err := List()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, []string{"b", "c", "a"}, []string{entries[0].ID, entries[1].ID, entries[2].ID})
}

func TestList_EmptyDir(t *testing.T) {
	setupTestDir(t)
	entries, err := List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSelect(t *testing.T) {
	now := time.Now()
	entries := []*Entry{
		entryAt("1", now, "failed"),
		entryAt("2", now, "ok"),
		entryAt("3", now, "ok"),
		entryAt("4", now, "failed"),
	}

	assert.Len(t, Select(entries, "", 0), 4)
	assert.Len(t, Select(entries, "", 3), 3)

	ok := Select(entries, "ok", 0)
	require.Len(t, ok, 2)
	assert.Equal(t, "2", ok[0].ID)

	failed := Select(entries, "failed", 1)
	require.Len(t, failed, 1)
	assert.Equal(t, "1", failed[0].ID)

	assert.Empty(t, Select(entries, "pending", 0))
}

func TestCleanup_DeletesOnlyExpired(t *testing.T) {
	setupTestDir(t)

	now := time.Now()
	require.NoError(t, entryAt("old-ok", now.Add(-48*time.Hour), "ok").Save())
	require.NoError(t, entryAt("old-failed", now.Add(-72*time.Hour), "failed").Save())
	require.NoError(t, entryAt("fresh", now.Add(-time.Hour), "ok").Save())

	deleted, err := Cleanup(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	entries, err := List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "fresh", entries[0].ID)
}
