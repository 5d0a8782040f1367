// Package flags provides storage backends for the SUPER-CHIP persistent flags.
package flags

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/retroenv/retrochip8/internal/interpreter"
)

// ErrInvalidFile is returned when a flags file does not contain all flags.
var ErrInvalidFile = errors.New("invalid flags file")

// Flags is the content of a flags store.
type Flags = [interpreter.PersistentFlagCount]byte

// FileStore keeps the persistent flags in a file. A missing file reads as
// zeroed flags.
type FileStore struct {
	path string
}

// NewFileStore returns a store that uses the file at the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the path of the flags file.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the flags from the file.
func (s *FileStore) Load() (Flags, error) {
	var flags Flags

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return flags, nil
		}
		return flags, fmt.Errorf("reading flags file %s: %w", s.path, err)
	}
	if len(data) < len(flags) {
		return flags, fmt.Errorf("%w: %s has %d bytes, expected %d", ErrInvalidFile, s.path, len(data), len(flags))
	}

	copy(flags[:], data)
	return flags, nil
}

// Save writes the flags to a temporary file that then replaces the flags file,
// so that readers never see a partially written file.
func (s *FileStore) Save(flags Flags) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating flags directory %s: %w", dir, err)
	}

	file, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary flags file: %w", err)
	}
	tmpName := file.Name()

	if _, err := file.Write(flags[:]); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing flags file %s: %w", tmpName, err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("closing flags file %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replacing flags file %s: %w", s.path, err)
	}
	return nil
}

// MemoryStore keeps the persistent flags in memory for the lifetime of the process.
type MemoryStore struct {
	mu    sync.Mutex
	flags Flags
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the stored flags.
func (s *MemoryStore) Load() (Flags, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flags, nil
}

// Save stores the flags.
func (s *MemoryStore) Save(flags Flags) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags = flags
	return nil
}
