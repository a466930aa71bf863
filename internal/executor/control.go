package executor

func clearScreen(e *execution) error {
	e.st.Display.Clear()
	e.result.DisplayChanged = true
	return nil
}

func jump(e *execution) error {
	e.next = e.op.NNN
	return nil
}

func call(e *execution) error {
	if err := e.regs.Push(e.next); err != nil {
		return err
	}
	e.next = e.op.NNN
	return nil
}

func ret(e *execution) error {
	address, err := e.regs.Pop()
	if err != nil {
		return err
	}
	e.next = address
	return nil
}

// jumpOffset jumps to NNN + V0, or to XNN + VX if the quirk is enabled.
// The target is not masked, a target outside of memory fails on the
// next fetch.
func jumpOffset(e *execution) error {
	offset := e.regs.V[0]
	if e.quirks.JumpWithOffsetUsesVX {
		offset = *e.vx()
	}
	e.next = e.op.NNN + uint16(offset)
	return nil
}

func skipEqualByte(e *execution) error {
	e.skipIf(*e.vx() == e.op.NN)
	return nil
}

func skipNotEqualByte(e *execution) error {
	e.skipIf(*e.vx() != e.op.NN)
	return nil
}

func skipEqualRegister(e *execution) error {
	e.skipIf(*e.vx() == e.vy())
	return nil
}

func skipNotEqualRegister(e *execution) error {
	e.skipIf(*e.vx() != e.vy())
	return nil
}

func skipKeyPressed(e *execution) error {
	e.skipIf(e.keys.Pressed(*e.vx()))
	return nil
}

func skipKeyNotPressed(e *execution) error {
	e.skipIf(!e.keys.Pressed(*e.vx()))
	return nil
}

// waitKey blocks execution until a key is pressed, or released if the quirk
// is enabled. The instruction is executed repeatedly while waiting, the
// first execution starts the wait.
func waitKey(e *execution) error {
	if !e.keys.Waiting() {
		e.keys.BeginWait()
		e.next = e.result.PC
		e.result.Waiting = true
		return nil
	}

	key, ok := e.keys.PollWait(e.quirks.WaitKeyOnRelease)
	if !ok {
		e.next = e.result.PC
		e.result.Waiting = true
		return nil
	}

	*e.vx() = key
	return nil
}

func loadDelay(e *execution) error {
	*e.vx() = e.regs.Delay
	return nil
}

func setDelay(e *execution) error {
	e.regs.Delay = *e.vx()
	return nil
}

func setSound(e *execution) error {
	e.regs.Sound = *e.vx()
	return nil
}
