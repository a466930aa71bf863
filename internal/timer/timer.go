// Package timer implements the CHIP-8 delay and sound timers and the
// scheduling of instruction steps and timer ticks against wall-clock time.
package timer

// Rate is the fixed frequency in Hz at which the timers count down.
const Rate = 60

// Timers contains the two 8-bit countdown timers.
type Timers struct {
	Delay uint8
	Sound uint8
}

// Tick decrements both timers by one if they are not zero.
func (t *Timers) Tick() {
	if t.Delay > 0 {
		t.Delay--
	}
	if t.Sound > 0 {
		t.Sound--
	}
}

// SoundActive returns whether the buzzer should be sounding.
func (t Timers) SoundActive() bool {
	return t.Sound > 0
}

// Reset sets both timers to zero.
func (t *Timers) Reset() {
	t.Delay = 0
	t.Sound = 0
}
