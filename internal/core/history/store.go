package history

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-battery-monitor/internal/util"
)

// HistoryFileName is the file written inside the data directory
const HistoryFileName = "history.json"

// Store persists a History as a JSON document on disk
type Store struct {
	path string
}

// NewStore creates a store writing to <dataDir>/history.json
func NewStore(dataDir string) *Store {
	return &Store{path: filepath.Join(dataDir, HistoryFileName)}
}

// Path is the location of the history file
func (s *Store) Path() string {
	return s.path
}

// Load reads the history file. A missing, unreadable or malformed file
// yields an empty history; Load never fails the caller.
func (s *Store) Load() *History {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			util.LogInfo("No existing battery history found, starting fresh")
		} else {
			util.LogWarnf("Failed to read battery history %s: %v", s.path, err)
		}
		return New()
	}

	var snap Snapshot
	if err := sonic.Unmarshal(data, &snap); err != nil {
		util.LogWarnf("Failed to parse battery history %s, starting fresh: %v", s.path, err)
		return New()
	}

	h := NewFromSnapshot(snap)
	util.LogInfof("Loaded %d samples and %d charge sessions from history", h.Len(), h.SessionCount())
	return h
}

// Save writes the persisted form of h using an atomic rename
func (s *Store) Save(h *History) error {
	data, err := sonic.ConfigStd.MarshalIndent(h.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal battery history: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write battery history: %w", err)
	}

	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to save battery history: %w", err)
	}

	util.LogDebugf("Saved %d samples to %s", h.Len(), s.path)
	return nil
}

// Reset removes the history file. A missing file is not an error.
func (s *Store) Reset() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove battery history: %w", err)
	}
	return nil
}

// Exists reports whether a history file is present
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}
