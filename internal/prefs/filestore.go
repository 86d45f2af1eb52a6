package prefs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps all users' preferences in a single JSON file. It is the
// local cache half of the reconciled pair and works with no configuration.
type FileStore struct {
	mu   sync.Mutex
	path string
	data map[string]Preferences
}

// NewFileStore opens (or initializes) the store at path.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path: path,
		data: make(map[string]Preferences),
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read preferences file: %w", err)
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("parse preferences file: %w", err)
	}

	return s, nil
}

func (s *FileStore) Load(ctx context.Context, userID string) (Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.data[userID]
	if !ok {
		return Preferences{}, ErrNotFound
	}
	return p, nil
}

func (s *FileStore) Save(ctx context.Context, userID string, p Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[userID] = p
	return s.flush()
}

// flush writes the whole map back to disk. Callers hold the mutex.
func (s *FileStore) flush() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, raw, 0o644)
}
