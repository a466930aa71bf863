package decoder

import "fmt"

// Format returns the assembly representation of the operation,
// for example "drw V1, V2, $5".
func Format(op Op) string {
	name := op.Kind.Mnemonic()
	if name == "" {
		return fmt.Sprintf(".word $%04X", op.Word)
	}
	params := formatParams(op)
	if params == "" {
		return name
	}
	return name + " " + params
}

// String returns the assembly representation of the operation.
func (op Op) String() string {
	return Format(op)
}

// formatParams formats the parameters of an operation.
//
//nolint:cyclop // flat opcode table
func formatParams(op Op) string {
	switch op.Kind {
	case ClearScreen, Return:
		return "" // No parameters

	case Sys, Jump, Call:
		return fmt.Sprintf("$%03X", op.NNN)
	case JumpOffset:
		return fmt.Sprintf("V0, $%03X", op.NNN)

	case SkipEqualByte, SkipNotEqualByte, LoadByte, AddByte, Random:
		return fmt.Sprintf("V%X, $%02X", op.X, op.NN)

	case SkipEqualRegister, SkipNotEqualRegister, LoadRegister, Or, And, Xor,
		AddRegister, Subtract, SubtractReverse, ShiftRight, ShiftLeft:
		return fmt.Sprintf("V%X, V%X", op.X, op.Y)

	case LoadIndex:
		return fmt.Sprintf("I, $%03X", op.NNN)

	case Draw:
		return fmt.Sprintf("V%X, V%X, $%X", op.X, op.Y, op.N)

	case SkipKeyPressed, SkipKeyNotPressed:
		return fmt.Sprintf("V%X", op.X)

	case LoadDelay:
		return fmt.Sprintf("V%X, DT", op.X)
	case WaitKey:
		return fmt.Sprintf("V%X, K", op.X)
	case SetDelay:
		return fmt.Sprintf("DT, V%X", op.X)
	case SetSound:
		return fmt.Sprintf("ST, V%X", op.X)
	case AddIndex:
		return fmt.Sprintf("I, V%X", op.X)
	case LoadFont:
		return fmt.Sprintf("F, V%X", op.X)
	case StoreBCD:
		return fmt.Sprintf("B, V%X", op.X)
	case StoreRegisters:
		return fmt.Sprintf("[I], V%X", op.X)
	case LoadRegisters:
		return fmt.Sprintf("V%X, [I]", op.X)
	}
	return ""
}
