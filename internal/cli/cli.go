// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/quirks"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/timer"
)

// ParseFlags parses command line flags and returns program and machine options
func ParseFlags() (options.Program, options.Machine, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		msg := ""
		if err != nil && !errors.Is(err, flag.ErrHelp) {
			msg = err.Error()
		}
		return opts, options.Machine{}, &UsageError{flags: flags, msg: msg}
	}

	if err := validateArgs(args); err != nil {
		return opts, options.Machine{}, err
	}
	opts.File = args[0]

	if err := validateOptions(opts); err != nil {
		return opts, options.Machine{}, err
	}

	machineOptions, err := createMachineOptions(opts)
	if err != nil {
		return opts, options.Machine{}, err
	}

	return opts, machineOptions, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage information to stdout.
func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] <ROM file>\n\n")
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	if e.flags != nil {
		e.flags.SetOutput(os.Stdout)
		e.flags.PrintDefaults()
	}
	fmt.Printf("\nquirks presets: %s\n", strings.Join(quirks.PresetNames(), ", "))
	fmt.Printf("quirk toggles:\n%s\n", quirks.Usage())
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	if len(args) > 1 {
		return &UsageError{msg: fmt.Sprintf("only one ROM file is supported, got %d", len(args))}
	}
	return nil
}

// validateOptions checks option values and their combinations
func validateOptions(opts options.Program) error {
	switch {
	case opts.Headless && opts.Disasm:
		return errors.New("options -headless and -disasm can not be combined")
	case opts.IPS <= 0:
		return fmt.Errorf("invalid instructions per second %d", opts.IPS)
	case opts.Scale <= 0:
		return fmt.Errorf("invalid scaling factor %d", opts.Scale)
	case opts.Headless && opts.Frames <= 0:
		return fmt.Errorf("invalid frame count %d", opts.Frames)
	case opts.PNG != "" && !opts.Headless:
		return errors.New("option -png requires -headless")
	case opts.Output != "" && !opts.Disasm:
		return errors.New("option -o requires -disasm")
	}
	return nil
}

// createMachineOptions creates machine options based on program options
func createMachineOptions(opts options.Program) (options.Machine, error) {
	q, err := quirks.Parse(opts.Quirks)
	if err != nil {
		return options.Machine{}, fmt.Errorf("parsing quirks: %w", err)
	}

	policy, err := runner.ParsePolicy(opts.OnError)
	if err != nil {
		return options.Machine{}, fmt.Errorf("parsing error policy: %w", err)
	}

	return options.Machine{
		Quirks:                q,
		Policy:                policy,
		InstructionsPerSecond: opts.IPS,
		Seed:                  opts.Seed,
	}, nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Output, "o", "", "name of the output .asm file of the disassembly, printed on console if no name given")
	flags.StringVar(&opts.PNG, "png", "", "write the final frame of a headless run as PNG image to the given file")
	flags.StringVar(&opts.Quirks, "quirks", "", "quirks preset followed by toggles, for example schip,-clip,+vfreset")
	flags.IntVar(&opts.IPS, "ips", timer.DefaultInstructionsPerSecond, "instructions executed per second")
	flags.IntVar(&opts.Scale, "scale", 10, "window scaling factor")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 seeds randomly")
	flags.StringVar(&opts.OnError, "on-error", runner.Halt.String(), "reaction to execution errors (halt/reset/ignore)")
	flags.BoolVar(&opts.Headless, "headless", false, "run without a window and print the final frame as text")
	flags.IntVar(&opts.Frames, "frames", 600, "number of frames to run in headless mode")
	flags.BoolVar(&opts.Disasm, "disasm", false, "disassemble the ROM instead of running it")
	flags.BoolVar(&opts.Mute, "mute", false, "disable the buzzer")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.NoHexComments, "nohexcomments", false, "do not output opcode bytes as hex values in comments")
	flags.BoolVar(&opts.NoOffsets, "nooffsets", false, "do not output addresses in comments")
}
