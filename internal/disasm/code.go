package disasm

import (
	"fmt"
	"slices"

	"github.com/retroenv/retrochip8/internal/decoder"
	"github.com/retroenv/retrochip8/internal/program"
)

const (
	dataNaming  = "_data_%04x"
	funcNaming  = "_func_%04x"
	labelNaming = "_label_%04x"
)

// processJumpDestinations processes all jump destinations and updates the callers with
// the generated jump destination label name.
func (dis *Disasm) processJumpDestinations() {
	branchDestinations := make([]uint16, 0, len(dis.branchDestinations))
	for dest := range dis.branchDestinations {
		branchDestinations = append(branchDestinations, dest)
	}
	slices.Sort(branchDestinations)

	for _, address := range branchDestinations {
		offsetInfo := dis.app.OffsetInfo(address)
		// the destination is inside of an instruction or was not parsed as code
		if !offsetInfo.IsType(program.CodeOffset) {
			continue
		}

		name := offsetInfo.Label
		if name == "" {
			if offsetInfo.IsType(program.CallDestination) {
				name = fmt.Sprintf(funcNaming, address)
			} else {
				name = fmt.Sprintf(labelNaming, address)
			}
			offsetInfo.Label = name
		}

		dis.updateReferences(dis.branchFrom[address], name)
	}
}

// processDataReferences labels all offsets that are loaded into the index
// register and updates the referencing instructions.
func (dis *Disasm) processDataReferences() {
	addresses := make([]uint16, 0, len(dis.dataReferences))
	for address := range dis.dataReferences {
		addresses = append(addresses, address)
	}
	slices.Sort(addresses)

	for _, address := range addresses {
		offsetInfo := dis.app.OffsetInfo(address)
		if offsetInfo == nil || offsetInfo.IsType(program.CodeContinuation) {
			continue
		}

		offsetInfo.SetType(program.DataReference)
		if offsetInfo.Label == "" {
			offsetInfo.Label = fmt.Sprintf(dataNaming, address)
		}

		dis.updateReferences(dis.dataReferences[address], offsetInfo.Label)
	}
}

// updateReferences replaces the address parameter of the referencing
// instructions with the label name.
func (dis *Disasm) updateReferences(references []uint16, name string) {
	for _, from := range references {
		op, ok := dis.ops[from]
		if !ok {
			continue
		}
		offsetInfo := dis.app.OffsetInfo(from)
		offsetInfo.Code = formatReference(op, name)
	}
}

// formatReference formats an instruction that references an address by
// using the label name instead.
func formatReference(op decoder.Op, name string) string {
	mnemonic := op.Kind.Mnemonic()
	switch op.Kind {
	case decoder.JumpOffset:
		return fmt.Sprintf("%s V0, %s", mnemonic, name)
	case decoder.LoadIndex:
		return fmt.Sprintf("%s I, %s", mnemonic, name)
	default:
		return fmt.Sprintf("%s %s", mnemonic, name)
	}
}
