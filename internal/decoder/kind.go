package decoder

import "github.com/retroenv/retrogolib/arch/cpu/chip8"

// Kind identifies the operation of a decoded opcode.
type Kind uint8

// Operation kinds, the comment lists the opcode pattern.
const (
	Invalid              Kind = iota
	Sys                       // 0NNN
	ClearScreen               // 00E0
	Return                    // 00EE
	Jump                      // 1NNN
	Call                      // 2NNN
	SkipEqualByte             // 3XNN
	SkipNotEqualByte          // 4XNN
	SkipEqualRegister         // 5XY0
	LoadByte                  // 6XNN
	AddByte                   // 7XNN
	LoadRegister              // 8XY0
	Or                        // 8XY1
	And                       // 8XY2
	Xor                       // 8XY3
	AddRegister               // 8XY4
	Subtract                  // 8XY5
	ShiftRight                // 8XY6
	SubtractReverse           // 8XY7
	ShiftLeft                 // 8XYE
	SkipNotEqualRegister      // 9XY0
	LoadIndex                 // ANNN
	JumpOffset                // BNNN
	Random                    // CXNN
	Draw                      // DXYN
	SkipKeyPressed            // EX9E
	SkipKeyNotPressed         // EXA1
	LoadDelay                 // FX07
	WaitKey                   // FX0A
	SetDelay                  // FX15
	SetSound                  // FX18
	AddIndex                  // FX1E
	LoadFont                  // FX29
	StoreBCD                  // FX33
	StoreRegisters            // FX55
	LoadRegisters             // FX65

	kindCount
)

var kindNames = [kindCount]string{
	Invalid:              "Invalid",
	Sys:                  "Sys",
	ClearScreen:          "ClearScreen",
	Return:               "Return",
	Jump:                 "Jump",
	Call:                 "Call",
	SkipEqualByte:        "SkipEqualByte",
	SkipNotEqualByte:     "SkipNotEqualByte",
	SkipEqualRegister:    "SkipEqualRegister",
	LoadByte:             "LoadByte",
	AddByte:              "AddByte",
	LoadRegister:         "LoadRegister",
	Or:                   "Or",
	And:                  "And",
	Xor:                  "Xor",
	AddRegister:          "AddRegister",
	Subtract:             "Subtract",
	ShiftRight:           "ShiftRight",
	SubtractReverse:      "SubtractReverse",
	ShiftLeft:            "ShiftLeft",
	SkipNotEqualRegister: "SkipNotEqualRegister",
	LoadIndex:            "LoadIndex",
	JumpOffset:           "JumpOffset",
	Random:               "Random",
	Draw:                 "Draw",
	SkipKeyPressed:       "SkipKeyPressed",
	SkipKeyNotPressed:    "SkipKeyNotPressed",
	LoadDelay:            "LoadDelay",
	WaitKey:              "WaitKey",
	SetDelay:             "SetDelay",
	SetSound:             "SetSound",
	AddIndex:             "AddIndex",
	LoadFont:             "LoadFont",
	StoreBCD:             "StoreBCD",
	StoreRegisters:       "StoreRegisters",
	LoadRegisters:        "LoadRegisters",
}

// opcodeKinds maps the entries of the shared CHIP-8 opcode table to kinds.
// Sys is not part of the table as it calls native machine code.
var opcodeKinds = map[chip8.OpcodeInfo]Kind{
	chip8.Opcode00E0: ClearScreen,
	chip8.Opcode00EE: Return,
	chip8.Opcode1000: Jump,
	chip8.Opcode2000: Call,
	chip8.Opcode3000: SkipEqualByte,
	chip8.Opcode4000: SkipNotEqualByte,
	chip8.Opcode5000: SkipEqualRegister,
	chip8.Opcode6000: LoadByte,
	chip8.Opcode7000: AddByte,
	chip8.Opcode8000: LoadRegister,
	chip8.Opcode8001: Or,
	chip8.Opcode8002: And,
	chip8.Opcode8003: Xor,
	chip8.Opcode8004: AddRegister,
	chip8.Opcode8005: Subtract,
	chip8.Opcode8006: ShiftRight,
	chip8.Opcode8007: SubtractReverse,
	chip8.Opcode800E: ShiftLeft,
	chip8.Opcode9000: SkipNotEqualRegister,
	chip8.OpcodeA000: LoadIndex,
	chip8.OpcodeB000: JumpOffset,
	chip8.OpcodeC000: Random,
	chip8.OpcodeD000: Draw,
	chip8.OpcodeE09E: SkipKeyPressed,
	chip8.OpcodeE0A1: SkipKeyNotPressed,
	chip8.OpcodeF007: LoadDelay,
	chip8.OpcodeF00A: WaitKey,
	chip8.OpcodeF015: SetDelay,
	chip8.OpcodeF018: SetSound,
	chip8.OpcodeF01E: AddIndex,
	chip8.OpcodeF029: LoadFont,
	chip8.OpcodeF033: StoreBCD,
	chip8.OpcodeF055: StoreRegisters,
	chip8.OpcodeF065: LoadRegisters,
}

// instructions maps every kind to the shared CHIP-8 instruction definition,
// it is filled from the opcode table.
var instructions [kindCount]*chip8.Instruction

func init() {
	for _, opcodes := range chip8.Opcodes {
		for _, opcode := range opcodes {
			if kind, ok := opcodeKinds[opcode.Info]; ok {
				instructions[kind] = opcode.Instruction
			}
		}
	}
}

// sysName is the mnemonic of the native call instruction.
const sysName = "sys"

func (k Kind) String() string {
	if k >= kindCount {
		return "Invalid"
	}
	return kindNames[k]
}

// Instruction returns the shared CHIP-8 instruction definition of the kind.
// It returns nil for Sys and Invalid.
func (k Kind) Instruction() *chip8.Instruction {
	if k >= kindCount {
		return nil
	}
	return instructions[k]
}

// Mnemonic returns the assembler mnemonic of the kind.
func (k Kind) Mnemonic() string {
	if k == Sys {
		return sysName
	}
	ins := k.Instruction()
	if ins == nil {
		return ""
	}
	return ins.Name
}

// IsSkip returns whether the kind conditionally skips the next instruction.
func (k Kind) IsSkip() bool {
	ins := k.Instruction()
	if ins == nil {
		return false
	}
	return chip8.SkipInstructions.Contains(ins.Name)
}
