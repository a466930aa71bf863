// Package decoder decodes 16-bit CHIP-8 opcode words into operations.
package decoder

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// OpcodeSize is the size of CHIP-8 instructions in bytes.
const OpcodeSize = 2

// ErrUnimplementedOpcode is matched by every UnimplementedOpcodeError.
var ErrUnimplementedOpcode = errors.New("unimplemented opcode")

// UnimplementedOpcodeError is returned for opcode words without defined semantics.
type UnimplementedOpcodeError struct {
	Word uint16
}

func (e *UnimplementedOpcodeError) Error() string {
	return fmt.Sprintf("unimplemented opcode $%04X", e.Word)
}

// Is reports whether the target is ErrUnimplementedOpcode.
func (e *UnimplementedOpcodeError) Is(target error) bool {
	return target == ErrUnimplementedOpcode
}

// Op is a decoded operation. Fields that are not used by the kind are
// still extracted from the word but carry no meaning.
type Op struct {
	Kind Kind
	Word uint16 // raw opcode word

	X   uint8  // second nibble, register index
	Y   uint8  // third nibble, register index
	N   uint8  // lowest nibble
	NN  uint8  // lowest byte
	NNN uint16 // lowest 12 bits, address
}

// Decode decodes an opcode word. It is a pure function of the word.
func Decode(word uint16) (Op, error) {
	op := Op{
		Word: word,
		X:    uint8(word>>8) & 0x0F,
		Y:    uint8(word>>4) & 0x0F,
		N:    uint8(word) & 0x0F,
		NN:   uint8(word),
		NNN:  word & 0x0FFF,
	}

	kind, ok := classify(word)
	if !ok {
		return Op{}, &UnimplementedOpcodeError{Word: word}
	}
	op.Kind = kind
	return op, nil
}

// classify looks up the word in the shared opcode table, using the top
// nibble as primary discriminant. Words of class 0 that are not in the
// table are native calls.
func classify(word uint16) (Kind, bool) {
	for _, opcode := range chip8.Opcodes[word>>12] {
		if opcode.Info.Mask&word != opcode.Info.Value {
			continue
		}
		kind, ok := opcodeKinds[opcode.Info]
		return kind, ok
	}

	if word>>12 == 0 {
		return Sys, true
	}
	return Invalid, false
}
