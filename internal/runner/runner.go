// Package runner drives a machine without a window, either for a fixed
// number of frames or in real time.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/timer"
	"github.com/retroenv/retrogolib/log"
)

// Runner runs a machine at the rate of a clock.
type Runner struct {
	logger  *log.Logger
	machine *machine.Machine
	clock   *timer.Clock
	policy  Policy

	instructions int
	frames       int
	errors       int
}

// New returns a new runner for the machine.
func New(logger *log.Logger, m *machine.Machine, clock *timer.Clock, policy Policy) *Runner {
	return &Runner{
		logger:  logger,
		machine: m,
		clock:   clock,
		policy:  policy,
	}
}

// RunFrames runs the given number of frames. Every frame executes the
// instructions of one timer period followed by one timer tick, which makes
// the result independent of the wall clock.
func (r *Runner) RunFrames(ctx context.Context, frames int) error {
	perFrame := r.clock.InstructionsPerFrame()

	for range frames {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("running frames: %w", err)
		}

		for range perFrame {
			if err := r.step(); err != nil {
				return err
			}
		}
		r.tick()
	}
	return nil
}

// Run runs the machine in real time until the context is canceled or the
// machine fails with the halt policy.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / timer.Rate)
	defer ticker.Stop()

	r.clock.Reset()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("running: %w", ctx.Err())

		case now := <-ticker.C:
			if err := r.Advance(now.Sub(last)); err != nil {
				return err
			}
			last = now
		}
	}
}

// Advance runs the instructions and timer ticks that are due for the
// elapsed time.
func (r *Runner) Advance(elapsed time.Duration) error {
	steps, ticks := r.clock.Advance(elapsed)
	for range steps {
		if err := r.step(); err != nil {
			return err
		}
	}
	for range ticks {
		r.tick()
	}
	return nil
}

// Instructions returns the number of executed instructions.
func (r *Runner) Instructions() int {
	return r.instructions
}

// Frames returns the number of executed timer ticks.
func (r *Runner) Frames() int {
	return r.frames
}

// Errors returns the number of machine errors that were handled by the policy.
func (r *Runner) Errors() int {
	return r.errors
}

func (r *Runner) tick() {
	r.machine.Tick()
	r.frames++
}

// step executes one instruction and applies the error policy.
func (r *Runner) step() error {
	_, err := r.machine.Step()
	if err == nil {
		r.instructions++
		return nil
	}

	switch r.policy {
	case Reset:
		r.errors++
		r.logger.Warn("Restarting program after error", log.Err(err))
		if err := r.machine.Restart(); err != nil {
			return fmt.Errorf("restarting program: %w", err)
		}
		return nil

	case Ignore:
		var fetchErr *machine.FetchError
		if errors.As(err, &fetchErr) {
			return err
		}
		r.errors++
		r.logger.Warn("Skipping faulting instruction", log.Err(err))
		r.machine.Skip()
		return nil

	default:
		return err
	}
}
