// Package detector handles quirks preset detection.
package detector

import (
	"path/filepath"
	"strings"

	"github.com/retroenv/retrochip8/internal/quirks"
	"github.com/retroenv/retrogolib/log"
)

// Detector handles quirks preset detection from file extensions and options.
type Detector struct {
	logger *log.Logger
}

// New creates a new quirks detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the quirks to use for a ROM. Quirks that were set
// explicitly are returned unchanged, otherwise the preset is detected from
// the filename extension.
func (d *Detector) Detect(filename, explicit string, q quirks.Quirks) quirks.Quirks {
	if explicit != "" {
		return q
	}

	preset := d.detectFromFile(filename)
	detected, err := quirks.Preset(preset)
	if err != nil {
		return q
	}
	d.logger.Debug("Auto-detected quirks preset",
		log.String("preset", preset),
		log.String("file", filename))
	return detected
}

// detectFromFile determines the quirks preset based on file extension.
func (d *Detector) detectFromFile(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".sc8", ".schip":
		return quirks.SChip
	case ".c48", ".ch48":
		return quirks.Chip48
	default:
		// .ch8, .c8 and unknown extensions use the COSMAC VIP behavior
		return quirks.Chip8
	}
}
