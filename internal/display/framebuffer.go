package display

import (
	"math/bits"
)

const (
	// Width is the horizontal resolution in pixels.
	Width = 64
	// Height is the vertical resolution in pixels.
	Height = 32
)

// Frame is a packed monochrome image, one uint64 per line with the leftmost
// pixel in the most significant bit.
type Frame [Height]uint64

// Pixel returns whether the pixel at x, y is set. Coordinates wrap around.
func (f *Frame) Pixel(x, y int) bool {
	x = mod(x, Width)
	y = mod(y, Height)
	return f[y]&(1<<(Width-1-x)) != 0
}

// Bytes returns the frame as 8 bytes per line, big endian.
func (f *Frame) Bytes() []byte {
	b := make([]byte, 0, Height*Width/8)
	for _, line := range f {
		for shift := Width - 8; shift >= 0; shift -= 8 {
			b = append(b, byte(line>>shift))
		}
	}
	return b
}

// Lit returns the number of set pixels.
func (f *Frame) Lit() int {
	var n int
	for _, line := range f {
		n += bits.OnesCount64(line)
	}
	return n
}

// Framebuffer is a 64x32 pixel XOR drawing surface.
// The sprite origin is taken modulo the resolution and sprite pixels that
// extend past the right or bottom edge wrap around to the opposite edge.
type Framebuffer struct {
	frame Frame
}

// Clear turns off all pixels.
func (fb *Framebuffer) Clear() {
	fb.frame = Frame{}
}

// Draw XORs the sprite rows at the origin x, y and reports a collision.
func (fb *Framebuffer) Draw(x, y uint8, rows []byte) bool {
	ox := int(x) % Width
	oy := int(y) % Height

	var collision bool
	for i, row := range rows {
		line := (oy + i) % Height
		sprite := bits.RotateLeft64(uint64(row)<<(Width-8), -ox)
		if fb.frame[line]&sprite != 0 {
			collision = true
		}
		fb.frame[line] ^= sprite
	}
	return collision
}

// Pixel returns whether the pixel at x, y is set.
func (fb *Framebuffer) Pixel(x, y int) bool {
	return fb.frame.Pixel(x, y)
}

// Frame returns a copy of the current image.
func (fb *Framebuffer) Frame() Frame {
	return fb.frame
}

func mod(v, m int) int {
	v %= m
	if v < 0 {
		v += m
	}
	return v
}
