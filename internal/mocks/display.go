// Package mocks contains deterministic test doubles of the display, input and
// audio capabilities.
package mocks

import (
	"github.com/retroenv/retrochip8/internal/display"
)

// DrawCall is a recorded Draw invocation.
type DrawCall struct {
	X, Y uint8
	Rows []byte
}

// Display is a display.Display that records all commands and draws into a
// framebuffer so that collisions are reported like on a real display.
type Display struct {
	FB      display.Framebuffer
	Draws   []DrawCall
	Blanks  int
	Renders int
}

// BlankScreen clears the framebuffer.
func (d *Display) BlankScreen() {
	d.Blanks++
	d.FB.Clear()
}

// Draw records the call and draws the rows.
func (d *Display) Draw(x, y uint8, rows []byte) bool {
	d.Draws = append(d.Draws, DrawCall{X: x, Y: y, Rows: append([]byte(nil), rows...)})
	return d.FB.Draw(x, y, rows)
}

// Render counts the call.
func (d *Display) Render() {
	d.Renders++
}
