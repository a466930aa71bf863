package ui

import "image/color"

// Config contains window and audio related settings.
type Config struct {
	Title string // window title
	Scale int    // integer upscaling factor

	Foreground color.RGBA // color of lit pixels
	Background color.RGBA // color of unlit pixels

	ToneFrequency int  // buzzer frequency in Hz
	Muted         bool // disable the buzzer
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.Title == "" {
		c.Title = "retrochip8"
	}
	if c.Scale <= 0 {
		c.Scale = 10
	}
	if c.Foreground == (color.RGBA{}) {
		c.Foreground = color.RGBA{R: 0xE0, G: 0xF8, B: 0xD0, A: 0xFF}
	}
	if c.Background == (color.RGBA{}) {
		c.Background = color.RGBA{R: 0x08, G: 0x18, B: 0x20, A: 0xFF}
	}
	if c.ToneFrequency <= 0 {
		c.ToneFrequency = 440
	}
}
