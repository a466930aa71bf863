// Package executor applies decoded CHIP-8 operations to the machine state.
package executor

import (
	"fmt"
	"math/rand/v2"

	"github.com/retroenv/retrochip8/internal/decoder"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/quirks"
	"github.com/retroenv/retrochip8/internal/registers"
)

// State groups the architectural state that instructions operate on.
type State struct {
	Registers *registers.File
	Memory    *memory.Memory
	Display   *display.Display

	// Random is the source for the random instruction. A nil source uses
	// the global generator.
	Random *rand.Rand
}

// Result describes the execution of a single instruction.
type Result struct {
	Op             decoder.Op
	PC             uint16 // program counter before the execution
	DisplayChanged bool
	Waiting        bool // the machine is blocked waiting for a key press
}

// execution carries the context of a single instruction execution.
type execution struct {
	op     decoder.Op
	regs   *registers.File
	st     *State
	quirks quirks.Quirks
	keys   *keypad.Keypad
	result *Result
	next   uint16 // program counter after the execution
}

type handler func(e *execution) error

var handlers map[decoder.Kind]handler

func init() {
	handlers = map[decoder.Kind]handler{
		decoder.Sys:         func(*execution) error { return nil },
		decoder.ClearScreen: clearScreen,
		decoder.Return:      ret,
		decoder.Jump:        jump,
		decoder.Call:        call,
		decoder.JumpOffset:  jumpOffset,

		decoder.SkipEqualByte:        skipEqualByte,
		decoder.SkipNotEqualByte:     skipNotEqualByte,
		decoder.SkipEqualRegister:    skipEqualRegister,
		decoder.SkipNotEqualRegister: skipNotEqualRegister,
		decoder.SkipKeyPressed:       skipKeyPressed,
		decoder.SkipKeyNotPressed:    skipKeyNotPressed,

		decoder.LoadByte:        loadByte,
		decoder.AddByte:         addByte,
		decoder.LoadRegister:    loadRegister,
		decoder.Or:              logicOp(func(x, y byte) byte { return x | y }),
		decoder.And:             logicOp(func(x, y byte) byte { return x & y }),
		decoder.Xor:             logicOp(func(x, y byte) byte { return x ^ y }),
		decoder.AddRegister:     addRegister,
		decoder.Subtract:        subtract,
		decoder.SubtractReverse: subtractReverse,
		decoder.ShiftRight:      shiftRight,
		decoder.ShiftLeft:       shiftLeft,
		decoder.Random:          random,

		decoder.LoadIndex:      loadIndex,
		decoder.AddIndex:       addIndex,
		decoder.LoadFont:       loadFont,
		decoder.StoreBCD:       storeBCD,
		decoder.StoreRegisters: storeRegisters,
		decoder.LoadRegisters:  loadRegisters,

		decoder.Draw: draw,

		decoder.WaitKey:   waitKey,
		decoder.LoadDelay: loadDelay,
		decoder.SetDelay:  setDelay,
		decoder.SetSound:  setSound,
	}
}

// Execute executes a single decoded operation. The program counter is
// advanced by one instruction, by two for a taken skip and not at all
// while waiting for a key. If an error is returned the state is unchanged.
func Execute(op decoder.Op, st *State, q quirks.Quirks, keys *keypad.Keypad) (Result, error) {
	result := Result{
		Op: op,
		PC: st.Registers.PC,
	}

	fn, ok := handlers[op.Kind]
	if !ok {
		return result, &decoder.UnimplementedOpcodeError{Word: op.Word}
	}

	e := &execution{
		op:     op,
		regs:   st.Registers,
		st:     st,
		quirks: q,
		keys:   keys,
		result: &result,
		next:   st.Registers.PC + decoder.OpcodeSize,
	}
	if err := fn(e); err != nil {
		return result, fmt.Errorf("executing '%s': %w", decoder.Format(op), err)
	}

	e.regs.PC = e.next
	return result, nil
}

// vx returns a pointer to the X register of the operation.
func (e *execution) vx() *byte {
	return &e.regs.V[e.op.X]
}

func (e *execution) vy() byte {
	return e.regs.V[e.op.Y]
}

// setFlag sets VF. It has to be called after writing the result so that
// VF as destination register ends up holding the flag.
func (e *execution) setFlag(set bool) {
	if set {
		e.regs.V[registers.Flag] = 1
	} else {
		e.regs.V[registers.Flag] = 0
	}
}

func (e *execution) skipIf(condition bool) {
	if condition {
		e.next += decoder.OpcodeSize
	}
}
