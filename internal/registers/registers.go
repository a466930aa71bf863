// Package registers implements the CHIP-8 register file.
package registers

import (
	"fmt"
	"strings"

	"github.com/retroenv/retrochip8/internal/timer"
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

const (
	// Count is the number of general purpose registers V0-VF.
	Count = 16

	// Flag is the index of the VF register that doubles as carry, borrow and
	// collision flag.
	Flag = 0xF

	// StackSize is the maximum number of nested subroutine calls.
	StackSize = 16

	// AddressMask masks the 12 significant bits of I and PC.
	AddressMask = 0x0FFF
)

var (
	// ErrStackOverflow is returned when a call exceeds the stack capacity.
	ErrStackOverflow = chip8.ErrStackOverflow
	// ErrStackUnderflow is returned when a return is executed on an empty stack.
	ErrStackUnderflow = chip8.ErrStackUnderflow
)

// File contains all CHIP-8 registers. It is a plain value, copying it
// creates an independent snapshot.
type File struct {
	V     [Count]byte       // general purpose registers
	I     uint16            // index register
	PC    uint16            // program counter
	SP    uint8             // stack pointer, number of used stack entries
	Stack [StackSize]uint16 // return addresses

	timer.Timers
}

// Reset clears all registers and sets the program counter to pc.
func (f *File) Reset(pc uint16) {
	*f = File{PC: pc}
}

// SetI sets the index register, keeping the 12 significant bits.
func (f *File) SetI(value uint16) {
	f.I = value & AddressMask
}

// Push pushes a return address on the stack.
func (f *File) Push(address uint16) error {
	if int(f.SP) >= StackSize {
		return fmt.Errorf("pushing address $%03X: %w", address, ErrStackOverflow)
	}
	f.Stack[f.SP] = address
	f.SP++
	return nil
}

// Pop removes and returns the last pushed return address.
func (f *File) Pop() (uint16, error) {
	if f.SP == 0 {
		return 0, ErrStackUnderflow
	}
	f.SP--
	return f.Stack[f.SP], nil
}

// String returns a compact single line representation for debug output.
func (f File) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "PC=%03X I=%03X SP=%X DT=%02X ST=%02X", f.PC, f.I, f.SP, f.Delay, f.Sound)
	for i, v := range f.V {
		fmt.Fprintf(&sb, " V%X=%02X", i, v)
	}
	return sb.String()
}
