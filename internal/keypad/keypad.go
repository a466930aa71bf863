// Package keypad implements the CHIP-8 16 key hexadecimal keypad.
//
// Keypad layout:
//
//	1 2 3 C
//	4 5 6 D
//	7 8 9 E
//	A 0 B F
package keypad

import "math/bits"

// Count is the number of keys.
const Count = 16

// Keypad contains the pressed state of all keys. Besides the current state it
// latches press and release transitions, which the wait-for-key instruction
// consumes. The keypad never debounces.
type Keypad struct {
	pressed  [Count]bool
	presses  uint16 // keys that transitioned to pressed
	releases uint16 // keys that transitioned to released
	waiting  bool
}

// New returns a keypad with all keys released.
func New() *Keypad {
	return &Keypad{}
}

// Set updates the state of a single key. Only the low nibble of key is used.
func (k *Keypad) Set(key uint8, pressed bool) {
	key &= 0x0F
	if k.pressed[key] == pressed {
		return
	}

	k.pressed[key] = pressed
	if pressed {
		k.presses |= 1 << key
	} else {
		k.releases |= 1 << key
	}
}

// Update replaces the state of all keys.
func (k *Keypad) Update(state [Count]bool) {
	for key, pressed := range state {
		k.Set(uint8(key), pressed)
	}
}

// Pressed returns whether the key is currently held down.
func (k *Keypad) Pressed(key uint8) bool {
	return k.pressed[key&0x0F]
}

// State returns the current state of all keys.
func (k *Keypad) State() [Count]bool {
	return k.pressed
}

// Waiting returns whether a wait for a key transition is in progress.
func (k *Keypad) Waiting() bool {
	return k.waiting
}

// BeginWait starts waiting for a key transition. Transitions that happened
// before are discarded.
func (k *Keypad) BeginWait() {
	k.waiting = true
	k.presses = 0
	k.releases = 0
}

// PollWait returns the lowest key that transitioned since BeginWait was
// called. With onRelease set a key has to be pressed and released again.
// A successful poll ends the wait.
func (k *Keypad) PollWait(onRelease bool) (uint8, bool) {
	if !k.waiting {
		return 0, false
	}

	edges := k.presses
	if onRelease {
		// a release only counts for a key that was also pressed during the wait
		edges = k.presses & k.releases
	}
	if edges == 0 {
		return 0, false
	}

	key := uint8(bits.TrailingZeros16(edges))
	k.waiting = false
	k.presses = 0
	k.releases = 0
	return key, true
}

// CancelWait ends a wait without consuming a key.
func (k *Keypad) CancelWait() {
	k.waiting = false
}
