package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/quirks"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/timer"
	"github.com/retroenv/retrogolib/assert"
)

func setArgs(t *testing.T, args ...string) {
	t.Helper()
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = append([]string{"prog"}, args...)
}

func TestParseFlags_Defaults(t *testing.T) {
	setArgs(t, "game.ch8")

	opts, machineOpts, err := ParseFlags()
	assert.NoError(t, err)
	assert.Equal(t, "game.ch8", opts.File)
	assert.Equal(t, 10, opts.Scale)
	assert.Equal(t, 600, opts.Frames)
	assert.False(t, opts.Headless)
	assert.False(t, opts.Disasm)

	assert.Equal(t, quirks.Default(), machineOpts.Quirks)
	assert.Equal(t, runner.Halt, machineOpts.Policy)
	assert.Equal(t, timer.DefaultInstructionsPerSecond, machineOpts.InstructionsPerSecond)
	assert.Equal(t, uint64(0), machineOpts.Seed)

	w := opts.Writer()
	assert.True(t, w.HexComments)
	assert.True(t, w.OffsetComments)
}

func TestParseFlags_MachineOptions(t *testing.T) {
	setArgs(t, "-quirks", "schip,+vfreset", "-ips", "1000", "-seed", "42", "-on-error", "ignore", "game.ch8")

	_, machineOpts, err := ParseFlags()
	assert.NoError(t, err)

	expected, err := quirks.Parse("schip,+vfreset")
	assert.NoError(t, err)
	assert.Equal(t, expected, machineOpts.Quirks)
	assert.True(t, machineOpts.Quirks.ResetVFOnLogicOps)
	assert.Equal(t, runner.Ignore, machineOpts.Policy)
	assert.Equal(t, 1000, machineOpts.InstructionsPerSecond)
	assert.Equal(t, uint64(42), machineOpts.Seed)
}

func TestParseFlags_WriterOptions(t *testing.T) {
	tests := []struct {
		name           string
		args           []string
		hexComments    bool
		offsetComments bool
	}{
		{
			name:           "default flags",
			args:           []string{"-disasm", "test.ch8"},
			hexComments:    true,
			offsetComments: true,
		},
		{
			name:           "nohexcomments flag",
			args:           []string{"-disasm", "-nohexcomments", "test.ch8"},
			offsetComments: true,
		},
		{
			name:        "nooffsets flag",
			args:        []string{"-disasm", "-nooffsets", "test.ch8"},
			hexComments: true,
		},
		{
			name: "all output flags",
			args: []string{"-disasm", "-nohexcomments", "-nooffsets", "test.ch8"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args...)

			opts, _, err := ParseFlags()
			assert.NoError(t, err)
			assert.True(t, opts.Disasm)
			w := opts.Writer()
			assert.Equal(t, tt.hexComments, w.HexComments)
			assert.Equal(t, tt.offsetComments, w.OffsetComments)
		})
	}
}

func TestParseFlags_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no ROM", args: nil},
		{name: "help", args: []string{"-h"}},
		{name: "unknown flag", args: []string{"-unknown", "game.ch8"}},
		{name: "flag after file", args: []string{"game.ch8", "-headless"}},
		{name: "two files", args: []string{"a.ch8", "b.ch8"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args...)

			_, _, err := ParseFlags()
			var usageErr *UsageError
			assert.True(t, errors.As(err, &usageErr))
		})
	}
}

func TestParseFlags_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{name: "headless and disasm", args: []string{"-headless", "-disasm", "x.ch8"}, msg: "can not be combined"},
		{name: "zero ips", args: []string{"-ips", "0", "x.ch8"}, msg: "instructions per second"},
		{name: "negative scale", args: []string{"-scale", "-1", "x.ch8"}, msg: "scaling factor"},
		{name: "zero frames", args: []string{"-headless", "-frames", "0", "x.ch8"}, msg: "frame count"},
		{name: "png without headless", args: []string{"-png", "out.png", "x.ch8"}, msg: "requires -headless"},
		{name: "output without disasm", args: []string{"-o", "out.asm", "x.ch8"}, msg: "requires -disasm"},
		{name: "unknown quirk", args: []string{"-quirks", "+nothing", "x.ch8"}, msg: "unsupported quirk 'nothing'"},
		{name: "unknown preset", args: []string{"-quirks", "xochip", "x.ch8"}, msg: "unsupported quirks preset"},
		{name: "unknown policy", args: []string{"-on-error", "retry", "x.ch8"}, msg: "unsupported error policy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args...)

			_, _, err := ParseFlags()
			assert.ErrorContains(t, err, tt.msg)
			var usageErr *UsageError
			assert.False(t, errors.As(err, &usageErr))
		})
	}
}

func TestValidateOptions(t *testing.T) {
	opts := options.Program{
		Flags: options.Flags{IPS: 700, Scale: 1, Headless: true, Frames: 1},
	}
	assert.NoError(t, validateOptions(opts))

	opts.Parameters.PNG = "frame.png"
	assert.NoError(t, validateOptions(opts))
}
