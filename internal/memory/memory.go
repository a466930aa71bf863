// Package memory implements the CHIP-8 main memory.
//
// CHIP-8 memory map (4KB total):
//
//	0x000-0x1FF: Interpreter area, contains the built-in font at FontStart
//	0x200-0xFFF: User program space
package memory

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

const (
	// Size is the number of addressable bytes.
	Size = 0x1000

	// MaxAddress is the highest valid address in CHIP-8 memory space.
	MaxAddress = Size - 1

	// ProgramStart is the memory address where CHIP-8 programs are loaded and begin execution.
	ProgramStart = 0x200

	// ProgramCapacity is the maximum size of a program that fits into memory.
	ProgramCapacity = Size - ProgramStart
)

// ErrOutOfBounds is matched by every OutOfBoundsError.
var ErrOutOfBounds = chip8.ErrMemoryOutOfBounds

// OutOfBoundsError is returned for any access outside of the addressable range.
type OutOfBoundsError struct {
	Address int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("memory access out of bounds at address $%04X", e.Address)
}

// Is reports whether the target is ErrOutOfBounds.
func (e *OutOfBoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}

// Memory is the flat byte addressable CHIP-8 memory.
type Memory struct {
	data [Size]byte
}

// New returns a new memory instance with the font loaded.
func New() *Memory {
	m := &Memory{}
	m.Reset()
	return m
}

// Reset zeroes the whole memory and reloads the font.
func (m *Memory) Reset() {
	m.data = [Size]byte{}
	copy(m.data[FontStart:], font[:])
}

// Read returns the byte at the given address.
func (m *Memory) Read(address int) (byte, error) {
	if err := checkRange(address, 1); err != nil {
		return 0, err
	}
	return m.data[address], nil
}

// ReadWord returns the big-endian 16-bit word starting at the given address.
func (m *Memory) ReadWord(address int) (uint16, error) {
	if err := checkRange(address, 2); err != nil {
		return 0, err
	}
	return uint16(m.data[address])<<8 | uint16(m.data[address+1]), nil
}

// Write sets the byte at the given address.
func (m *Memory) Write(address int, value byte) error {
	if err := checkRange(address, 1); err != nil {
		return err
	}
	m.data[address] = value
	return nil
}

// Slice returns a copy of length bytes starting at address.
// The whole range is validated before anything is copied.
func (m *Memory) Slice(address, length int) ([]byte, error) {
	if err := checkRange(address, length); err != nil {
		return nil, err
	}
	buf := make([]byte, length)
	copy(buf, m.data[address:address+length])
	return buf, nil
}

// WriteSlice copies the data into memory starting at address.
// Nothing is written if any byte of the range is out of bounds.
func (m *Memory) WriteSlice(address int, data []byte) error {
	if err := checkRange(address, len(data)); err != nil {
		return err
	}
	copy(m.data[address:], data)
	return nil
}

// ClearProgram zeroes the program space.
func (m *Memory) ClearProgram() {
	clear(m.data[ProgramStart:])
}

// checkRange returns an OutOfBoundsError for the first address of the
// range [address, address+length) that is not addressable.
func checkRange(address, length int) error {
	if address < 0 {
		return &OutOfBoundsError{Address: address}
	}
	if length > 0 && address+length-1 > MaxAddress {
		first := address
		if first <= MaxAddress {
			first = MaxAddress + 1
		}
		return &OutOfBoundsError{Address: first}
	}
	return nil
}
