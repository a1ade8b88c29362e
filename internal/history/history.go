// Package history journals handled utterances as one YAML file each.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

var historyDir = ".deskhand/history"

// SetDir overrides the default history directory path.
func SetDir(dir string) { historyDir = dir }

// Dir returns the current history directory.
func Dir() string { return historyDir }

// Entry is the journal record for one handled utterance.
type Entry struct {
	ID         string    `yaml:"id" json:"id"`
	Utterance  string    `yaml:"utterance" json:"utterance"`
	Intent     string    `yaml:"intent,omitempty" json:"intent,omitempty"`
	Command    string    `yaml:"command,omitempty" json:"command,omitempty"`
	Status     string    `yaml:"status" json:"status"`
	Message    string    `yaml:"message" json:"message"`
	Error      string    `yaml:"error,omitempty" json:"error,omitempty"`
	CreatedAt  time.Time `yaml:"created_at" json:"created_at"`
	DurationMS int64     `yaml:"duration_ms" json:"duration_ms"`
}

// NewID returns a sortable, collision-free entry ID such as
// "20260217-120000-1f3a9c2e".
func NewID(t time.Time) string {
	return t.UTC().Format("20060102-150405") + "-" + uuid.NewString()[:8]
}

// Load reads an Entry from <dir>/<id>.yaml.
func Load(id string) (*Entry, error) {
	return LoadFile(filepath.Join(historyDir, id+".yaml"))
}

// LoadFile reads an Entry from an arbitrary file path.
func LoadFile(path string) (*Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading history entry %q: %w", path, err)
	}

	var e Entry
	if err := yaml.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("parsing history entry %q: %w", path, err)
	}
	return &e, nil
}

// Save writes the Entry atomically to <dir>/<id>.yaml.
func (e *Entry) Save() error {
	if e.ID == "" {
		return fmt.Errorf("saving history entry: empty id")
	}
	if err := os.MkdirAll(historyDir, 0o755); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}

	data, err := yaml.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshaling history entry: %w", err)
	}

	dest := filepath.Join(historyDir, e.ID+".yaml")
	tmp := dest + ".tmp"

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing temp history file: %w", err)
	}

	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("renaming history file: %w", err)
	}

	return nil
}

// List returns all entries sorted by created_at descending.
func List() ([]*Entry, error) {
	paths, err := filepath.Glob(filepath.Join(historyDir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}

	var entries []*Entry
	for _, path := range paths {
		e, err := LoadFile(path)
		if err != nil {
			continue // skip unreadable or corrupt files
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})

	return entries, nil
}

// Select keeps entries whose status matches (any when empty), up to limit
// (unbounded when limit <= 0). Order is preserved.
func Select(entries []*Entry, status string, limit int) []*Entry {
	var out []*Entry
	for _, e := range entries {
		if status != "" && e.Status != status {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Cleanup deletes entries older than the given retention duration.
// Returns the number of files deleted.
func Cleanup(retention time.Duration) (int, error) {
	paths, err := filepath.Glob(filepath.Join(historyDir, "*.yaml"))
	if err != nil {
		return 0, fmt.Errorf("listing history for cleanup: %w", err)
	}

	cutoff := time.Now().Add(-retention)
	deleted := 0

	for _, path := range paths {
		e, err := LoadFile(path)
		if err != nil {
			continue
		}
		if e.CreatedAt.After(cutoff) {
			continue
		}
		if err := os.Remove(path); err == nil {
			deleted++
		}
	}

	return deleted, nil
}
