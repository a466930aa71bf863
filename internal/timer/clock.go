package timer

import (
	"fmt"
	"time"
)

// DefaultInstructionsPerSecond is the instruction rate used when none is configured.
const DefaultInstructionsPerSecond = 700

// Clock converts elapsed wall-clock time into the number of instruction steps
// and timer ticks that are due. Remainders are carried over between calls so
// that both rates stay exact over time, independent of the call frequency.
type Clock struct {
	instructionsPerSecond int

	// remainders are stored multiplied by their frequency
	stepRemainder time.Duration
	tickRemainder time.Duration
}

// NewClock returns a clock for the given instruction rate.
func NewClock(instructionsPerSecond int) (*Clock, error) {
	if instructionsPerSecond <= 0 {
		return nil, fmt.Errorf("invalid instruction rate %d", instructionsPerSecond)
	}
	return &Clock{
		instructionsPerSecond: instructionsPerSecond,
	}, nil
}

// InstructionsPerSecond returns the configured instruction rate.
func (c *Clock) InstructionsPerSecond() int {
	return c.instructionsPerSecond
}

// InstructionsPerFrame returns the number of instructions to execute per
// timer tick, rounded to the nearest integer and at least 1.
func (c *Clock) InstructionsPerFrame() int {
	n := (c.instructionsPerSecond + Rate/2) / Rate
	return max(n, 1)
}

// Advance accounts for the elapsed time and returns how many instruction steps
// and timer ticks the host has to execute.
func (c *Clock) Advance(elapsed time.Duration) (steps, ticks int) {
	if elapsed <= 0 {
		return 0, 0
	}

	steps = accumulate(&c.stepRemainder, elapsed, c.instructionsPerSecond)
	ticks = accumulate(&c.tickRemainder, elapsed, Rate)
	return steps, ticks
}

// Reset drops any accumulated remainders.
func (c *Clock) Reset() {
	c.stepRemainder = 0
	c.tickRemainder = 0
}

// accumulate adds the elapsed time scaled by frequency to the remainder and
// returns the number of whole periods that completed. The remainder is kept
// in scaled units so that no precision is lost between calls.
func accumulate(remainder *time.Duration, elapsed time.Duration, frequency int) int {
	*remainder += elapsed * time.Duration(frequency)
	count := *remainder / time.Second
	*remainder %= time.Second
	return int(count)
}
