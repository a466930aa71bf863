// Package disasm implements a CHIP-8 disassembler that follows the execution
// flow of a program to separate code from data.
package disasm

import (
	"context"
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/decoder"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/program"
	"github.com/retroenv/retrochip8/internal/writer"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// startLabel is the label of the program entry point.
const startLabel = "Start"

// Disasm implements a disassembler.
type Disasm struct {
	logger  *log.Logger
	options writer.Options

	app *program.Program
	ops map[uint16]decoder.Op // decoded instructions by address

	branchDestinations set.Set[uint16]    // set of all addresses that are branched to
	branchFrom         map[uint16][]uint16 // instruction addresses by branch destination
	dataReferences     map[uint16][]uint16 // instruction addresses by referenced data address

	offsetsToParse      []uint16
	offsetsToParseAdded set.Set[uint16]
}

// New creates a new disassembler for the ROM that gets mapped to the
// program start address.
func New(logger *log.Logger, rom []byte, options writer.Options) *Disasm {
	return &Disasm{
		logger:              logger,
		options:             options,
		app:                 program.New(rom, memory.ProgramStart),
		ops:                 map[uint16]decoder.Op{},
		branchDestinations:  set.New[uint16](),
		branchFrom:          map[uint16][]uint16{},
		dataReferences:      map[uint16][]uint16{},
		offsetsToParseAdded: set.New[uint16](),
	}
}

// Process disassembles the ROM and writes the listing to the writer.
func (dis *Disasm) Process(ctx context.Context, mainWriter io.Writer) (*program.Program, error) {
	if offsetInfo := dis.app.OffsetInfo(memory.ProgramStart); offsetInfo != nil {
		offsetInfo.Label = startLabel
	}
	dis.addAddressToParse(memory.ProgramStart, memory.ProgramStart, program.UnknownOffset)

	if err := dis.followExecutionFlow(ctx); err != nil {
		return nil, err
	}
	dis.processJumpDestinations()
	dis.processDataReferences()

	fileWriter := writer.New(dis.app, mainWriter, dis.options)
	if err := fileWriter.Write(); err != nil {
		return nil, fmt.Errorf("writing app to file: %w", err)
	}
	return dis.app, nil
}

// followExecutionFlow parses opcodes and follows the execution flow to parse all code.
func (dis *Disasm) followExecutionFlow(ctx context.Context) error {
	for addr, ok := dis.addressToDisassemble(); ok; addr, ok = dis.addressToDisassemble() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("following execution flow: %w", err)
		}

		op, valid := dis.initializeOffsetInfo(addr)
		if !valid {
			continue
		}

		dis.ops[addr] = op
		dis.handleControlFlow(addr, op)
	}
	return nil
}

// initializeOffsetInfo marks the instruction at the address as code and returns
// whether the offset contains a valid instruction that should be inspected.
func (dis *Disasm) initializeOffsetInfo(address uint16) (decoder.Op, bool) {
	offsetInfo := dis.app.OffsetInfo(address)
	following := dis.app.OffsetInfo(address + 1)
	if offsetInfo == nil || following == nil {
		return decoder.Op{}, false // instruction exceeds the ROM
	}

	if offsetInfo.IsType(program.CodeContinuation) || following.IsType(program.CodeOffset) {
		dis.logger.Debug("Branch into instruction detected",
			log.Hex("address", address))
		offsetInfo.Comment = "branch into instruction detected"
		return decoder.Op{}, false
	}

	word := uint16(offsetInfo.Data[0])<<8 | uint16(following.Data[0])
	op, err := decoder.Decode(word)
	if err != nil {
		// consider an unknown instruction as start of data
		dis.logger.Debug("Unimplemented opcode treated as data",
			log.Hex("address", address),
			log.Hex("opcode", word))
		return decoder.Op{}, false
	}

	offsetInfo.ClearType(program.DataOffset)
	offsetInfo.SetType(program.CodeOffset)
	offsetInfo.Data = []byte{offsetInfo.Data[0], following.Data[0]}
	offsetInfo.Code = op.String()

	following.ClearType(program.DataOffset)
	following.SetType(program.CodeContinuation)
	return op, true
}

// handleControlFlow queues the addresses that the instruction can continue
// execution at.
func (dis *Disasm) handleControlFlow(address uint16, op decoder.Op) {
	next := address + decoder.OpcodeSize

	switch {
	case op.Kind == decoder.Jump, op.Kind == decoder.JumpOffset:
		// the offset of an indexed jump is unknown, the base address
		// is usually the start of a jump table.
		dis.addAddressToParse(op.NNN, address, program.JumpDestination)

	case op.Kind == decoder.Call:
		dis.addAddressToParse(op.NNN, address, program.CallDestination)
		dis.addAddressToParse(next, address, program.UnknownOffset)

	case op.Kind.IsSkip():
		dis.addAddressToParse(next, address, program.UnknownOffset)
		dis.addAddressToParse(next+decoder.OpcodeSize, address, program.UnknownOffset)

	case op.Kind == decoder.LoadIndex:
		dis.dataReferences[op.NNN] = append(dis.dataReferences[op.NNN], address)
		dis.addAddressToParse(next, address, program.UnknownOffset)

	case op.Kind != decoder.Return:
		dis.addAddressToParse(next, address, program.UnknownOffset)
	}
}

// addressToDisassemble returns the next address to disassemble and whether
// there was an address left to parse.
func (dis *Disasm) addressToDisassemble() (uint16, bool) {
	if len(dis.offsetsToParse) == 0 {
		return 0, false
	}
	addr := dis.offsetsToParse[0]
	dis.offsetsToParse = dis.offsetsToParse[1:]
	return addr, true
}

// addAddressToParse adds an address to the list to be processed if the address has not been processed yet.
// A destination type marks the address as target of a branch from the given address.
func (dis *Disasm) addAddressToParse(address, from uint16, destination program.OffsetType) {
	offsetInfo := dis.app.OffsetInfo(address)
	if offsetInfo == nil {
		dis.logger.Debug("Ignoring address outside of program",
			log.Hex("address", address),
			log.Hex("from", from))
		return
	}

	if destination != program.UnknownOffset {
		offsetInfo.SetType(destination)
		dis.branchDestinations.Add(address)
		dis.branchFrom[address] = append(dis.branchFrom[address], from)
	}

	if dis.offsetsToParseAdded.Contains(address) {
		return
	}
	dis.offsetsToParseAdded.Add(address)
	dis.offsetsToParse = append(dis.offsetsToParse, address)
}
