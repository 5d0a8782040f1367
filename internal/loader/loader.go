// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/memory"
)

// ErrEmptyROM is returned for a ROM file without content.
var ErrEmptyROM = errors.New("empty ROM file")

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads a raw CHIP-8 ROM file. ROM files have no header, their content
// gets loaded as program at address 0x200.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	// read one byte more than fits to detect oversized files
	data, err := io.ReadAll(io.LimitReader(file, memory.ProgramCapacity+1))
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	switch {
	case len(data) == 0:
		return nil, fmt.Errorf("%w: %s", ErrEmptyROM, path)
	case len(data) > memory.ProgramCapacity:
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", memory.ErrProgramTooLarge, path, memory.ProgramCapacity)
	}
	return data, nil
}
