// Package config handles application configuration and setup
package config

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/timer"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CreateRunner creates a machine with the ROM loaded and a runner driving it
// at the configured instruction rate.
func CreateRunner(logger *log.Logger, opts options.Machine, rom []byte) (*machine.Machine, *runner.Runner, error) {
	clock, err := timer.NewClock(opts.InstructionsPerSecond)
	if err != nil {
		return nil, nil, fmt.Errorf("creating clock: %w", err)
	}

	machineOptions := []machine.Option{
		machine.WithLogger(logger),
		machine.WithQuirks(opts.Quirks),
	}
	if opts.Seed != 0 {
		machineOptions = append(machineOptions, machine.WithRandomSeed(opts.Seed))
	}

	m := machine.New(machineOptions...)
	if err := m.Load(rom); err != nil {
		return nil, nil, fmt.Errorf("loading ROM: %w", err)
	}

	logger.Debug("Machine created",
		log.Stringer("quirks", m.Quirks()),
		log.Stringer("error_policy", opts.Policy),
		log.Int("instructions_per_second", clock.InstructionsPerSecond()),
		log.Int("rom_size", len(rom)))

	return m, runner.New(logger, m, clock, opts.Policy), nil
}
