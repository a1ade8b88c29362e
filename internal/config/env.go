package config

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ProjectEnvPath is the per-directory env file, typically holding API keys.
const ProjectEnvPath = ".deskhand.env"

// LoadEnvFiles loads deskhand env files into the process environment.
// Load order (later wins): global (~/.config/deskhand/env), then project (.deskhand.env).
// Actual environment variables always win; keys already set before loading are never overwritten.
func LoadEnvFiles() {
	// Snapshot keys present in the actual environment before we touch anything.
	origKeys := make(map[string]bool)
	for _, entry := range os.Environ() {
		if k, _, ok := strings.Cut(entry, "="); ok {
			origKeys[k] = true
		}
	}

	// Merge both files: global first, project overwrites.
	merged := make(map[string]string)
	mergeEnvFile(merged, GlobalEnvPath())
	mergeEnvFile(merged, ProjectEnvPath)

	// Set only keys that weren't in the original environment.
	for k, v := range merged {
		if !origKeys[k] {
			_ = os.Setenv(k, v)
		}
	}
}

// mergeEnvFile reads a KEY=VALUE file and merges into dst (later call overwrites earlier).
// Silently skips missing or unreadable files.
func mergeEnvFile(dst map[string]string, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	envs, err := ParseEnvFile(data)
	if err != nil {
		return
	}
	for k, v := range envs {
		dst[k] = v
	}
}

// ParseEnvFile parses KEY=VALUE lines from data.
// Blank lines and lines starting with # are skipped.
func ParseEnvFile(data []byte) (map[string]string, error) {
	result := make(map[string]string)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("line %d: missing '=' in %q", lineNum, line)
		}
		result[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return result, scanner.Err()
}

// GlobalEnvPath returns the path to the global deskhand env file.
func GlobalEnvPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "deskhand", "env")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "deskhand", "env")
}

// WriteEnvFile writes vars as sorted KEY=VALUE lines with owner-only permissions.
func WriteEnvFile(path string, vars map[string]string) error {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var b strings.Builder
	b.WriteString("# deskhand secrets, loaded automatically; real environment variables win\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%s\n", k, vars[k])
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("writing env file: %w", err)
	}
	return nil
}
