// Package program represents a disassembled CHIP-8 program.
package program

import (
	"fmt"
	"hash/crc32"
	"strings"
)

// Offset defines the content of an offset in a program that can represent data or code.
type Offset struct {
	Address uint16
	Data    []byte // data byte or all opcode bytes that are part of the instruction

	Type OffsetType

	Label   string // name of label or subroutine if identified as a jump destination
	Code    string // asm output of this instruction
	Comment string
}

// HexCodeComment returns the opcode bytes as hex string.
func (o *Offset) HexCodeComment() (string, error) {
	buf := &strings.Builder{}
	for i, b := range o.Data {
		if i > 0 {
			buf.WriteByte(' ')
		}
		if _, err := fmt.Fprintf(buf, "%02X", b); err != nil {
			return "", fmt.Errorf("writing hex comment: %w", err)
		}
	}
	return buf.String(), nil
}

// Program defines a CHIP-8 program that contains code or data.
type Program struct {
	Offsets []Offset // one entry per ROM byte

	CodeBaseAddress uint16
	Checksum        uint32 // CRC32 checksum of the ROM
}

// New creates a new program for the ROM that is mapped to the base address.
// Every offset starts out as data.
func New(rom []byte, baseAddress uint16) *Program {
	app := &Program{
		Offsets:         make([]Offset, len(rom)),
		CodeBaseAddress: baseAddress,
		Checksum:        crc32.ChecksumIEEE(rom),
	}
	for i, b := range rom {
		app.Offsets[i] = Offset{
			Address: baseAddress + uint16(i),
			Data:    []byte{b},
			Type:    DataOffset,
		}
	}
	return app
}

// OffsetInfo returns the offset for the given address or nil if the
// address is not part of the program.
func (p *Program) OffsetInfo(address uint16) *Offset {
	if address < p.CodeBaseAddress {
		return nil
	}
	index := int(address - p.CodeBaseAddress)
	if index >= len(p.Offsets) {
		return nil
	}
	return &p.Offsets[index]
}
