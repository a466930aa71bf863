package program

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

var allOffsetTypes = []OffsetType{
	CodeOffset,
	DataOffset,
	CodeContinuation,
	CallDestination,
	JumpDestination,
	DataReference,
}

func TestOffsetType_DistinctBits(t *testing.T) {
	var seen OffsetType
	for _, typ := range allOffsetTypes {
		assert.NotEqual(t, UnknownOffset, typ)
		assert.Equal(t, OffsetType(0), seen&typ)
		seen |= typ
	}
}

func TestOffset_Types(t *testing.T) {
	tests := []struct {
		name string
		typ  OffsetType
	}{
		{"code", CodeOffset},
		{"data", DataOffset},
		{"instruction operand byte", CodeContinuation},
		{"subroutine", CallDestination},
		{"jump target", JumpDestination},
		{"sprite data", DataReference},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset := &Offset{Address: 0x200}
			assert.False(t, offset.IsType(tt.typ))

			offset.SetType(tt.typ)
			assert.True(t, offset.IsType(tt.typ))
			for _, other := range allOffsetTypes {
				if other != tt.typ {
					assert.False(t, offset.IsType(other))
				}
			}

			offset.ClearType(tt.typ)
			assert.False(t, offset.IsType(tt.typ))
			assert.Equal(t, UnknownOffset, offset.Type)
		})
	}
}

// Reclassifying code as data keeps the destination flags.
func TestOffset_CombinedTypes(t *testing.T) {
	offset := &Offset{Address: 0x2A0}
	offset.SetType(CodeOffset | CallDestination)
	offset.SetType(JumpDestination)

	assert.True(t, offset.IsType(CodeOffset))
	assert.True(t, offset.IsType(CallDestination))
	assert.True(t, offset.IsType(JumpDestination))
	assert.True(t, offset.IsType(CallDestination|DataReference))

	offset.ClearType(CodeOffset)
	offset.SetType(DataOffset)
	assert.False(t, offset.IsType(CodeOffset))
	assert.True(t, offset.IsType(DataOffset))
	assert.True(t, offset.IsType(CallDestination))
	assert.Equal(t, DataOffset|CallDestination|JumpDestination, offset.Type)
}

func TestOffset_HexCodeComment(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected string
	}{
		{"cls", []byte{0x00, 0xE0}, "00 E0"},
		{"sprite byte", []byte{0xF0}, "F0"},
		{"empty", []byte{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset := &Offset{Data: tt.data}
			comment, err := offset.HexCodeComment()
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, comment)
		})
	}
}
