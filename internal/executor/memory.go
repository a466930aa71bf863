package executor

import (
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/registers"
)

func loadIndex(e *execution) error {
	e.regs.SetI(e.op.NNN)
	return nil
}

// addIndex adds VX to I. VF only reports the overflow out of the 12-bit
// address space if the quirk is enabled, otherwise it is left untouched.
func addIndex(e *execution) error {
	sum := e.regs.I + uint16(*e.vx())
	e.regs.SetI(sum)
	if e.quirks.AddToIndexSetsVFOnOverflow {
		e.setFlag(sum > registers.AddressMask)
	}
	return nil
}

func loadFont(e *execution) error {
	e.regs.SetI(memory.GlyphAddress(*e.vx() & 0x0F))
	return nil
}

// storeBCD stores the hundreds, tens and ones digit of VX at I, I+1 and I+2.
func storeBCD(e *execution) error {
	value := *e.vx()
	digits := []byte{value / 100, value / 10 % 10, value % 10}
	return e.st.Memory.WriteSlice(int(e.regs.I), digits)
}

func storeRegisters(e *execution) error {
	count := int(e.op.X) + 1
	if err := e.st.Memory.WriteSlice(int(e.regs.I), e.regs.V[:count]); err != nil {
		return err
	}
	e.advanceIndex(count)
	return nil
}

func loadRegisters(e *execution) error {
	count := int(e.op.X) + 1
	data, err := e.st.Memory.Slice(int(e.regs.I), count)
	if err != nil {
		return err
	}
	copy(e.regs.V[:], data)
	e.advanceIndex(count)
	return nil
}

// advanceIndex moves I past the transferred registers if the quirk is enabled.
func (e *execution) advanceIndex(count int) {
	if e.quirks.LoadStoreIncrementsI {
		e.regs.SetI(e.regs.I + uint16(count))
	}
}

// draw XORs an N byte sprite from memory at I onto the display. The sprite
// is read before the display is modified.
func draw(e *execution) error {
	sprite, err := e.st.Memory.Slice(int(e.regs.I), int(e.op.N))
	if err != nil {
		return err
	}

	x := int(*e.vx())
	y := int(e.vy())
	collision := e.st.Display.DrawSprite(x, y, sprite, e.quirks.ClipSpritesAtEdges)
	e.setFlag(collision)
	e.result.DisplayChanged = len(sprite) > 0
	return nil
}
