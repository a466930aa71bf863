package program

// OffsetType defines the type of a program offset.
type OffsetType uint8

// offset types.
const (
	UnknownOffset OffsetType = 0
	CodeOffset    OffsetType = 1 << iota
	DataOffset
	CodeContinuation  // second byte of an instruction
	CallDestination   // destination of a call, indicating a subroutine
	JumpDestination   // destination of a jump or skip
	DataReference     // referenced by loading the index register
)

// IsType returns whether the offset is of given type.
func (o *Offset) IsType(typ OffsetType) bool {
	return o.Type&typ != 0
}

// SetType sets the offset of the given type.
func (o *Offset) SetType(typ OffsetType) {
	o.Type |= typ
}

// ClearType clears the offset of the given type.
func (o *Offset) ClearType(typ OffsetType) {
	mask := ^(typ)
	o.Type &= mask
}
