package executor

import "math/rand/v2"

func loadByte(e *execution) error {
	*e.vx() = e.op.NN
	return nil
}

// addByte adds NN to VX without changing the carry flag.
func addByte(e *execution) error {
	*e.vx() += e.op.NN
	return nil
}

func loadRegister(e *execution) error {
	*e.vx() = e.vy()
	return nil
}

// logicOp returns a handler for a bitwise operation. The COSMAC VIP
// interpreter clobbered VF as a side effect, the vfreset quirk reproduces it.
func logicOp(fn func(x, y byte) byte) handler {
	return func(e *execution) error {
		vx := e.vx()
		*vx = fn(*vx, e.vy())
		if e.quirks.ResetVFOnLogicOps {
			e.setFlag(false)
		}
		return nil
	}
}

func addRegister(e *execution) error {
	vx := e.vx()
	sum := uint16(*vx) + uint16(e.vy())
	*vx = byte(sum)
	e.setFlag(sum > 0xFF)
	return nil
}

// subtract sets VX to VX - VY, VF is set when no borrow occurred.
func subtract(e *execution) error {
	vx := e.vx()
	x, y := *vx, e.vy()
	*vx = x - y
	e.setFlag(x >= y)
	return nil
}

// subtractReverse sets VX to VY - VX, VF is set when no borrow occurred.
func subtractReverse(e *execution) error {
	vx := e.vx()
	x, y := *vx, e.vy()
	*vx = y - x
	e.setFlag(y >= x)
	return nil
}

func (e *execution) shiftSource() byte {
	if e.quirks.ShiftUsesVY {
		return e.vy()
	}
	return *e.vx()
}

func shiftRight(e *execution) error {
	value := e.shiftSource()
	*e.vx() = value >> 1
	e.setFlag(value&0x01 != 0)
	return nil
}

func shiftLeft(e *execution) error {
	value := e.shiftSource()
	*e.vx() = value << 1
	e.setFlag(value&0x80 != 0)
	return nil
}

func random(e *execution) error {
	var value byte
	if e.st.Random != nil {
		value = byte(e.st.Random.UintN(256))
	} else {
		value = byte(rand.UintN(256))
	}
	*e.vx() = value & e.op.NN
	return nil
}
