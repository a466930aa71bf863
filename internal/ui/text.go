// Package ui implements the presentation helpers shared by the hosts: a
// terminal text renderer, image conversion and the buzzer tone stream.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/display"
)

// blocks maps the upper and lower pixel of a text cell to its character.
var blocks = [2][2]string{
	{" ", "▄"},
	{"▀", "█"},
}

// WriteText renders the frame as text, every line of output combines two
// pixel rows using block characters.
func WriteText(w io.Writer, frame display.Frame) error {
	var sb strings.Builder
	for y := 0; y < display.Height; y += 2 {
		for x := range display.Width {
			upper := boolToIndex(frame.Pixel(x, y))
			lower := boolToIndex(frame.Pixel(x, y+1))
			sb.WriteString(blocks[upper][lower])
		}
		sb.WriteByte('\n')
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

func boolToIndex(b bool) int {
	if b {
		return 1
	}
	return 0
}
