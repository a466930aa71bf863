// Package options contains the program options.
package options

import (
	"github.com/retroenv/retrochip8/internal/quirks"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/writer"
)

// Positional contains positional arguments.
type Positional struct {
	File string `arg:"positional" usage:"ROM file to run"`
}

// Parameters contains file path options.
type Parameters struct {
	Output string `flag:"o" usage:"output file of the disassembly (default: stdout)"`
	PNG    string `flag:"png" usage:"write the final frame of a headless run as PNG image"`
}

// Flags contains behavior options.
type Flags struct {
	Quirks  string `flag:"quirks" usage:"quirks preset and toggles, for example schip,-clip"`
	IPS     int    `flag:"ips" usage:"instructions per second" default:"700"`
	Scale   int    `flag:"scale" usage:"window scaling factor" default:"10"`
	Seed    uint64 `flag:"seed" usage:"seed of the random number generator (0: random)"`
	OnError string `flag:"on-error" usage:"error policy: halt, reset, ignore" default:"halt"`

	Headless bool `flag:"headless" usage:"run without a window and print the final frame"`
	Frames   int  `flag:"frames" usage:"number of frames to run in headless mode" default:"600"`
	Disasm   bool `flag:"disasm" usage:"disassemble the ROM instead of running it"`
	Mute     bool `flag:"mute" usage:"disable the buzzer"`

	Debug bool `flag:"debug" usage:"enable debug logging"`
	Quiet bool `flag:"q" usage:"quiet mode"`
}

// OutputFlags contains disassembly formatting options.
type OutputFlags struct {
	NoHexComments bool `flag:"nohexcomments" usage:"omit hex opcode bytes in comments"`
	NoOffsets     bool `flag:"nooffsets" usage:"omit addresses in comments"`
}

// Program options of the emulator.
type Program struct {
	Positional
	Parameters
	Flags
	OutputFlags
}

// Writer returns the disassembly writer options.
func (p Program) Writer() writer.Options {
	return writer.Options{
		HexComments:    !p.NoHexComments,
		OffsetComments: !p.NoOffsets,
	}
}

// Machine defines options to control the emulated machine.
type Machine struct {
	Quirks                quirks.Quirks
	Policy                runner.Policy // reaction to execution errors
	InstructionsPerSecond int
	Seed                  uint64 // 0 seeds the random number generator randomly
}
