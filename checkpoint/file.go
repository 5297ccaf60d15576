package checkpoint

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"

	"github.com/tailpoint/tailpoint/position"
	"github.com/tailpoint/tailpoint/utils"
)

// Config represents the configuration for a file backed checkpoint store
type Config struct {
	Path string `json:"path" validate:"required"`
}

func (c *Config) Validate() error {
	return utils.Validate(c)
}

// FileStore keeps the checkpoint in a single JSON document on local disk.
// Saves go through a temp file in the same directory followed by a rename,
// so a crash mid-save leaves the previous checkpoint intact.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(config *Config) (*FileStore, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate checkpoint config: %w", err)
	}

	return &FileStore{path: config.Path}, nil
}

func (s *FileStore) Load(_ context.Context) (position.Mapping, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoCheckpoint
		}
		return nil, fmt.Errorf("failed to read checkpoint file: %w", err)
	}
	// a zero length file holds nothing, same as a missing one
	if len(data) == 0 {
		return nil, ErrNoCheckpoint
	}

	m := position.Mapping{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal checkpoint file %s: %w", s.path, err)
	}
	return m, nil
}

func (s *FileStore) Save(_ context.Context, m position.Mapping) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal checkpoint: %w", err)
	}

	if err := writeFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write checkpoint file: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}

func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir, name := filepath.Split(filename)
	f, err := os.CreateTemp(dir, name)
	if err != nil {
		return err
	}

	n, err := f.Write(data)
	f.Close()
	if err == nil && n < len(data) {
		err = io.ErrShortWrite
	} else if err == nil {
		err = os.Chmod(f.Name(), perm)
	}
	if err != nil {
		os.Remove(f.Name())
		return err
	}
	return os.Rename(f.Name(), filename)
}
