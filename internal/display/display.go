// Package display implements the CHIP-8 monochrome framebuffer.
package display

const (
	// Width is the number of pixel columns.
	Width = 64
	// Height is the number of pixel rows.
	Height = 32
)

// Frame is a copy of the framebuffer, one word per row.
// Bit 63 of a row is the leftmost pixel.
type Frame [Height]uint64

// Pixel returns whether the pixel at the given coordinates is lit.
// Coordinates outside of the frame return false.
func (f Frame) Pixel(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	return f[y]&columnMask(x) != 0
}

// Display is the framebuffer. It is only modified by Clear and DrawSprite.
type Display struct {
	rows Frame
}

// New returns a cleared display.
func New() *Display {
	return &Display{}
}

// Clear turns off all pixels.
func (d *Display) Clear() {
	d.rows = Frame{}
}

// Pixel returns whether the pixel at the given coordinates is lit.
func (d *Display) Pixel(x, y int) bool {
	return d.rows.Pixel(x, y)
}

// Rows returns a copy of the current frame.
func (d *Display) Rows() Frame {
	return d.rows
}

// Grid returns the current frame as a two dimensional grid indexed by [y][x].
func (d *Display) Grid() [Height][Width]bool {
	var grid [Height][Width]bool
	for y := range Height {
		for x := range Width {
			grid[y][x] = d.rows.Pixel(x, y)
		}
	}
	return grid
}

// DrawSprite XORs the sprite rows onto the framebuffer with the top left
// corner at (x, y). The start coordinates always wrap around the frame, each
// sprite row is 8 pixels wide with the most significant bit on the left.
// Pixels that extend past the right or bottom edge are dropped if clip is set,
// otherwise they wrap around to the opposite edge.
// It returns whether any lit pixel was turned off.
func (d *Display) DrawSprite(x, y int, sprite []byte, clip bool) bool {
	x %= Width
	y %= Height
	collision := false

	for i, b := range sprite {
		row := y + i
		if row >= Height {
			if clip {
				break
			}
			row %= Height
		}

		line := spriteLine(b, x, clip)
		if d.rows[row]&line != 0 {
			collision = true
		}
		d.rows[row] ^= line
	}

	return collision
}

// spriteLine positions the 8 sprite bits at column x of a 64 bit row.
func spriteLine(b byte, x int, clip bool) uint64 {
	shift := Width - 8 - x
	if shift >= 0 {
		return uint64(b) << shift
	}

	// sprite crosses the right edge
	line := uint64(b) >> -shift
	if !clip {
		line |= uint64(b) << (Width + shift)
	}
	return line
}

func columnMask(x int) uint64 {
	return 1 << (Width - 1 - x)
}
