package machine

import (
	"errors"
	"fmt"
)

// ErrROMTooLarge is matched by every ROMTooLargeError.
var ErrROMTooLarge = errors.New("rom too large")

// ROMTooLargeError is returned when a ROM does not fit into the program area.
type ROMTooLargeError struct {
	Size     int
	Capacity int
}

func (e *ROMTooLargeError) Error() string {
	return fmt.Sprintf("rom size %d exceeds program capacity of %d bytes", e.Size, e.Capacity)
}

// Is reports whether the target is ErrROMTooLarge.
func (e *ROMTooLargeError) Is(target error) bool {
	return target == ErrROMTooLarge
}

// FetchError is returned when the opcode at the program counter can not be
// read. Skipping the instruction can not recover from it.
type FetchError struct {
	PC  uint16
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching opcode at $%03X: %v", e.PC, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
