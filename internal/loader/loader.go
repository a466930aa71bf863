// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/memory"
)

// ErrEmptyROM is returned for ROM files without content.
var ErrEmptyROM = errors.New("rom is empty")

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the ROM file at the given path. The file is rejected if it
// is empty or does not fit into the program area.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	rom, err := l.LoadFrom(file)
	if err != nil {
		return nil, fmt.Errorf("loading file %s: %w", path, err)
	}
	return rom, nil
}

// LoadFrom reads a ROM from the reader. At most one byte more than the
// program area capacity is read to detect oversized ROMs.
func (l *Loader) LoadFrom(reader io.Reader) ([]byte, error) {
	rom, err := io.ReadAll(io.LimitReader(reader, memory.ProgramCapacity+1))
	if err != nil {
		return nil, fmt.Errorf("reading rom: %w", err)
	}

	switch {
	case len(rom) == 0:
		return nil, ErrEmptyROM
	case len(rom) > memory.ProgramCapacity:
		return nil, &machine.ROMTooLargeError{
			Size:     len(rom),
			Capacity: memory.ProgramCapacity,
		}
	}
	return rom, nil
}
