// Package store persists session snapshots as a JSON file.
package store

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
)

// Snapshot is the persisted form of a session.
type Snapshot struct {
	Title          string `json:"title"`
	VertexShader   string `json:"vertexShader"`
	FragmentShader string `json:"fragmentShader"`
}

type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load returns the persisted snapshot. ok is false when no usable snapshot
// exists: a missing file is the normal first-run case, and a corrupt file
// is logged and treated as absent. Parse problems never reach the
// diagnostic display; that channel is reserved for shader errors.
func (s *Store) Load() (Snapshot, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("session file unreadable", "path", s.path, "err", err)
		}
		return Snapshot{}, false
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		slog.Warn("session file corrupt, using defaults", "path", s.path, "err", err)
		return Snapshot{}, false
	}
	return snap, true
}

// Save writes the snapshot, replacing any previous one.
func (s *Store) Save(snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, append(data, '\n'), 0o644)
}
