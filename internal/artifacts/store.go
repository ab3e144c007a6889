// Package artifacts persists and discovers pipeline stage outputs. Each
// artifact is an append-only JSON file named {job}_{label}_{timestamp}.json;
// later stages never rewrite an earlier stage's file, and the freshest
// artifact for a job and label is found by lexicographic filename sort
// (the timestamp layout sorts correctly as text).
package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Stage labels used in artifact filenames
const (
	LabelFiltered  = "step1_filtered"
	LabelOptimized = "step2_optimized"
)

// timestampLayout produces names whose lexicographic order matches their
// chronological order.
const timestampLayout = "20060102_150405"

// Store reads and writes stage artifacts under a single directory
type Store struct {
	dir string
	now func() time.Time
}

// NewStore creates a Store rooted at dir. The directory is created lazily
// on first save.
func NewStore(dir string) *Store {
	return &Store{dir: dir, now: time.Now}
}

// WithClock overrides the timestamp source. Tests use a fixed clock.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Dir returns the directory the store operates on
func (s *Store) Dir() string { return s.dir }

// Save writes payload as an indented JSON artifact and returns its path
func (s *Store) Save(job, label string, payload any) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create artifact directory %s: %w", s.dir, err)
	}

	name := fmt.Sprintf("%s_%s_%s.json", job, label, s.now().Format(timestampLayout))
	path := filepath.Join(s.dir, name)

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode artifact %s: %w", name, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write artifact %s: %w", path, err)
	}
	return path, nil
}

// Latest returns the path of the most recent artifact for the job and
// label, or ok=false when none exists.
func (s *Store) Latest(job, label string) (string, bool, error) {
	pattern := filepath.Join(s.dir, fmt.Sprintf("%s_%s_*.json", job, label))
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", false, fmt.Errorf("failed to glob artifacts: %w", err)
	}
	if len(matches) == 0 {
		return "", false, nil
	}
	sort.Strings(matches)
	return matches[len(matches)-1], true, nil
}

// Load reads the artifact at path into out
func (s *Store) Load(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read artifact %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode artifact %s: %w", path, err)
	}
	return nil
}

// LoadLatest reads the most recent artifact for the job and label into out.
// The boolean reports whether an artifact existed.
func (s *Store) LoadLatest(job, label string, out any) (string, bool, error) {
	path, ok, err := s.Latest(job, label)
	if err != nil || !ok {
		return "", ok, err
	}
	if err := s.Load(path, out); err != nil {
		return "", false, err
	}
	return path, true, nil
}
