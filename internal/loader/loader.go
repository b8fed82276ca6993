// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/chip8"
)

// ErrNoProgram is returned when no program could be loaded.
var ErrNoProgram = errors.New("no program available")

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads a ROM file and returns its content. The content is validated
// to fit into the program space of the machine.
func (l *Loader) Load(fileName string) ([]byte, error) {
	if fileName == "" {
		return nil, fmt.Errorf("%w: no input file given", ErrNoProgram)
	}

	file, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Join(ErrNoProgram, fmt.Errorf("opening file %s: %w", fileName, err))
	}
	defer func() { _ = file.Close() }()

	return l.LoadFromReader(file)
}

// LoadFromReader reads a ROM from the reader. At most one byte more than
// the program space is read to detect oversized ROMs.
func (l *Loader) LoadFromReader(reader io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(reader, chip8.MaxProgramSize+1))
	if err != nil {
		return nil, errors.Join(ErrNoProgram, fmt.Errorf("reading ROM: %w", err))
	}
	return l.LoadFromBytes(data)
}

// LoadFromBytes validates the ROM data.
func (l *Loader) LoadFromBytes(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: ROM is empty", ErrNoProgram)
	}
	if len(data) > chip8.MaxProgramSize {
		return nil, fmt.Errorf("%w: ROM exceeds %d bytes", chip8.ErrProgramTooLarge, chip8.MaxProgramSize)
	}
	return data, nil
}
