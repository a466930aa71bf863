// Package machine implements a CHIP-8 virtual machine that owns the memory,
// registers, display and keypad state and runs the fetch, decode and execute
// cycle on it.
//
// The machine is driven by a host that calls Step at the desired instruction
// rate and Tick at 60 Hz. It is not safe for concurrent use.
package machine

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/retroenv/retrochip8/internal/decoder"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/executor"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/quirks"
	"github.com/retroenv/retrochip8/internal/registers"
	"github.com/retroenv/retrogolib/log"
)

// Machine is a CHIP-8 virtual machine.
type Machine struct {
	logger *log.Logger
	quirks quirks.Quirks
	random *rand.Rand

	regs    registers.File
	memory  *memory.Memory
	display *display.Display
	keys    *keypad.Keypad
	state   executor.State

	rom []byte // last loaded program, used by Restart
}

// New returns a new machine in its initial state with an empty program area.
func New(opts ...Option) *Machine {
	m := &Machine{
		quirks:  quirks.Default(),
		memory:  memory.New(),
		display: display.New(),
		keys:    keypad.New(),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.regs.Reset(memory.ProgramStart)
	m.state = executor.State{
		Registers: &m.regs,
		Memory:    m.memory,
		Display:   m.display,
		Random:    m.random,
	}
	return m
}

// Load writes the ROM to the program area and points the program counter
// at it. The stack and timers are reset, the general purpose registers,
// the index register and the display are left untouched.
func (m *Machine) Load(rom []byte) error {
	if len(rom) > memory.ProgramCapacity {
		return &ROMTooLargeError{
			Size:     len(rom),
			Capacity: memory.ProgramCapacity,
		}
	}

	m.memory.ClearProgram()
	if err := m.memory.WriteSlice(memory.ProgramStart, rom); err != nil {
		return fmt.Errorf("writing rom: %w", err)
	}

	m.regs.PC = memory.ProgramStart
	m.regs.SP = 0
	m.regs.Timers.Reset()
	m.keys.CancelWait()
	m.rom = slices.Clone(rom)
	return nil
}

// Reset returns the machine to its initial state. The font is reloaded and
// the program area is cleared.
func (m *Machine) Reset() {
	m.memory.Reset()
	m.regs.Reset(memory.ProgramStart)
	m.display.Clear()
	m.keys.CancelWait()
}

// Restart resets the machine and loads the last loaded ROM again.
func (m *Machine) Restart() error {
	m.Reset()
	if m.rom == nil {
		return nil
	}
	return m.Load(m.rom)
}

// Step runs a single fetch, decode and execute cycle. On error the
// machine state is unchanged and the error is matchable with errors.Is.
func (m *Machine) Step() (executor.Result, error) {
	pc := m.regs.PC
	word, err := m.memory.ReadWord(int(pc))
	if err != nil {
		return executor.Result{PC: pc}, &FetchError{PC: pc, Err: err}
	}

	op, err := decoder.Decode(word)
	if err != nil {
		return executor.Result{PC: pc}, fmt.Errorf("decoding opcode at $%03X: %w", pc, err)
	}

	result, err := executor.Execute(op, &m.state, m.quirks, m.keys)
	if err != nil {
		return result, fmt.Errorf("at $%03X: %w", pc, err)
	}

	if m.logger != nil {
		m.logger.Debug("Executed instruction",
			log.Hex("pc", pc),
			log.Hex("opcode", word),
			log.String("instruction", op.String()),
		)
	}
	return result, nil
}

// Skip advances the program counter past the current instruction without
// executing it. A pending key wait is canceled.
func (m *Machine) Skip() {
	m.regs.PC += decoder.OpcodeSize
	m.keys.CancelWait()
}

// Tick decrements the delay and sound timers, it has to be called at 60 Hz.
func (m *Machine) Tick() {
	m.regs.Tick()
}

// Display returns the display buffer. It must only be read by the caller.
func (m *Machine) Display() *display.Display {
	return m.display
}

// Frame returns a copy of the display rows.
func (m *Machine) Frame() display.Frame {
	return m.display.Rows()
}

// SoundActive returns whether the buzzer should sound.
func (m *Machine) SoundActive() bool {
	return m.regs.SoundActive()
}

// Registers returns a snapshot of the register file.
func (m *Machine) Registers() registers.File {
	return m.regs
}

// Waiting returns whether the machine is blocked waiting for a key press.
func (m *Machine) Waiting() bool {
	return m.keys.Waiting()
}

// Quirks returns the active quirks.
func (m *Machine) Quirks() quirks.Quirks {
	return m.quirks
}

// SetQuirks changes the active quirks, it takes effect with the next step.
func (m *Machine) SetQuirks(q quirks.Quirks) {
	m.quirks = q
}

// SetKey sets the state of a single key, only the lower nibble of the key
// is used.
func (m *Machine) SetKey(key uint8, pressed bool) {
	m.keys.Set(key, pressed)
}

// SetKeys sets the state of all keys.
func (m *Machine) SetKeys(state [keypad.Count]bool) {
	m.keys.Update(state)
}
