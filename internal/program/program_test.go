package program

import (
	"hash/crc32"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestNew(t *testing.T) {
	rom := []byte{0x00, 0xE0, 0x12, 0x00}
	app := New(rom, 0x200)

	assert.Equal(t, 4, len(app.Offsets))
	assert.Equal(t, uint16(0x200), app.CodeBaseAddress)
	assert.Equal(t, crc32.ChecksumIEEE(rom), app.Checksum)

	for i, offset := range app.Offsets {
		assert.Equal(t, uint16(0x200+i), offset.Address)
		assert.True(t, offset.IsType(DataOffset))
		assert.Equal(t, rom[i], offset.Data[0])
	}
}

func TestProgram_OffsetInfo(t *testing.T) {
	app := New([]byte{0x12, 0x00}, 0x200)

	assert.Nil(t, app.OffsetInfo(0x1FF))
	assert.Nil(t, app.OffsetInfo(0x202))

	offset := app.OffsetInfo(0x201)
	assert.NotNil(t, offset)
	assert.Equal(t, uint16(0x201), offset.Address)

	offset.Label = "test"
	assert.Equal(t, "test", app.Offsets[1].Label)
}
