package ui

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/retroenv/retrochip8/internal/display"
)

// Image converts the frame to an RGBA image of the native resolution.
func Image(frame display.Frame, foreground, background color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, display.Width, display.Height))
	for y := range display.Height {
		for x := range display.Width {
			c := background
			if frame.Pixel(x, y) {
				c = foreground
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// WritePNG encodes the frame as PNG image scaled by the given factor.
func WritePNG(w io.Writer, frame display.Frame, cfg Config) error {
	cfg.Defaults()
	src := Image(frame, cfg.Foreground, cfg.Background)

	img := image.NewRGBA(image.Rect(0, 0, display.Width*cfg.Scale, display.Height*cfg.Scale))
	for y := range img.Rect.Dy() {
		for x := range img.Rect.Dx() {
			img.SetRGBA(x, y, src.RGBAAt(x/cfg.Scale, y/cfg.Scale))
		}
	}

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}
