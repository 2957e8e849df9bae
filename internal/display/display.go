// Package display contains the display capability used by the CPU, the
// monochrome framebuffer it draws into and the registry of output backends.
package display

import (
	"context"

	"github.com/retroenv/retrochip8/internal/input"
)

// Display receives the drawing commands of the CPU.
type Display interface {
	// BlankScreen clears all pixels.
	BlankScreen()
	// Draw XORs the sprite rows onto the display with the origin x, y. Each row
	// is 8 pixels wide, most significant bit first. It returns true if any set
	// bit of the sprite turned off a pixel that was set before.
	Draw(x, y uint8, rows []byte) bool
	// Render flushes all drawing commands since the previous call to the output.
	Render()
}

// Presenter shows rendered frames.
type Presenter interface {
	Present(frame Frame)
}

// Backend is an output device that presents frames and provides key state.
type Backend interface {
	Presenter
	input.Input

	// Run blocks until the context is cancelled or the output is closed by
	// the user. A closed output returns nil.
	Run(ctx context.Context) error
}
