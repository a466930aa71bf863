// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrochip8/internal/app"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/ui"
	"github.com/retroenv/retrochip8/internal/ui/window"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile loads the ROM file and runs the mode selected by the options.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program, machineOptions options.Machine) error {
	rom, err := loader.New().Load(opts.File)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	if opts.Disasm {
		app.PrintInfo(logger, opts, rom, machineOptions.Quirks)
		return Disassemble(ctx, logger, opts, rom)
	}

	machineOptions.Quirks = detector.New(logger).Detect(opts.File, opts.Quirks, machineOptions.Quirks)
	app.PrintInfo(logger, opts, rom, machineOptions.Quirks)

	m, r, err := config.CreateRunner(logger, machineOptions, rom)
	if err != nil {
		return fmt.Errorf("setting up machine: %w", err)
	}

	if opts.Headless {
		return RunHeadless(ctx, logger, opts, m, r, os.Stdout)
	}

	cfg := ui.Config{
		Title: "retrochip8 - " + filepath.Base(opts.File),
		Scale: opts.Scale,
		Muted: opts.Mute,
	}
	host := window.NewApp(ctx, logger, cfg, m, r)
	return host.Run()
}

// Disassemble writes the disassembly listing of the ROM to the configured output.
func Disassemble(ctx context.Context, logger *log.Logger, opts options.Program, rom []byte) error {
	writer, closeWriter, err := createWriter(opts.Output)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}
	defer closeWriter()

	dis := disasm.New(logger, rom, opts.Writer())
	prg, err := dis.Process(ctx, writer)
	if err != nil {
		return fmt.Errorf("disassembling: %w", err)
	}

	logger.Debug("Disassembled ROM",
		log.Int("offsets", len(prg.Offsets)),
		log.Hex("checksum", prg.Checksum))
	return nil
}

// RunHeadless runs the configured number of frames, prints the final frame
// as text and optionally writes it as PNG image. The final frame is printed
// even when the run fails.
func RunHeadless(ctx context.Context, logger *log.Logger, opts options.Program,
	m *machine.Machine, r *runner.Runner, out io.Writer) error {

	runErr := r.RunFrames(ctx, opts.Frames)

	logger.Info("Headless run finished",
		log.Int("frames", r.Frames()),
		log.Int("instructions", r.Instructions()),
		log.Int("errors", r.Errors()))

	frame := m.Frame()
	if err := ui.WriteText(out, frame); err != nil {
		return err
	}

	if opts.PNG != "" {
		if err := writePNG(opts.PNG, frame, opts.Scale); err != nil {
			return err
		}
		logger.Info("Frame saved", log.String("file", opts.PNG))
	}

	if runErr != nil {
		return fmt.Errorf("running: %w", runErr)
	}
	return nil
}

func writePNG(path string, frame display.Frame, scale int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating image file %s: %w", path, err)
	}

	if err := ui.WritePNG(file, frame, ui.Config{Scale: scale}); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing image file %s: %w", path, err)
	}
	return nil
}

func createWriter(output string) (io.Writer, func(), error) {
	if output == "" {
		return os.Stdout, func() {}, nil
	}

	file, err := os.Create(output)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file %s: %w", output, err)
	}
	return file, func() { _ = file.Close() }, nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("retrochip8", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}
