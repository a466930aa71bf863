// Package app provides the main application helper for the emulator.
package app

import (
	"hash/crc32"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/quirks"
	"github.com/retroenv/retrogolib/log"
)

// Mode names of the emulator.
const (
	ModeWindow   = "window"
	ModeHeadless = "headless"
	ModeDisasm   = "disasm"
)

// Mode returns the name of the mode selected by the options.
func Mode(opts options.Program) string {
	switch {
	case opts.Disasm:
		return ModeDisasm
	case opts.Headless:
		return ModeHeadless
	default:
		return ModeWindow
	}
}

// PrintInfo prints the information about the input file and the machine setup.
func PrintInfo(logger *log.Logger, opts options.Program, rom []byte, q quirks.Quirks) {
	if opts.Quiet {
		return
	}

	mode := Mode(opts)
	if mode == ModeDisasm {
		logger.Info("Disassembling CHIP-8 ROM",
			log.String("file", opts.File),
			log.Int("size", len(rom)),
			log.Hex("crc32", crc32.ChecksumIEEE(rom)),
		)
		return
	}

	logger.Info("Processing CHIP-8 ROM",
		log.String("file", opts.File),
		log.Int("size", len(rom)),
		log.Hex("crc32", crc32.ChecksumIEEE(rom)),
		log.String("mode", mode),
		log.Stringer("quirks", q),
	)
	if len(rom)%2 != 0 {
		logger.Warn("ROM size is odd, the last byte is not part of an instruction")
	}
}
