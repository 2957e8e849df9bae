package terminal

import (
	"bufio"
	"io"

	"github.com/retroenv/retrochip8/internal/display"
)

const (
	cursorHome  = "\x1b[H"
	clearScreen = "\x1b[2J"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
	resetStyle  = "\x1b[0m"
)

// Render writes the frame starting at the top left corner of the terminal.
// Every character cell shows two vertically stacked pixels.
func Render(w io.Writer, frame display.Frame) error {
	bw := bufio.NewWriterSize(w, 4096)
	_, _ = bw.WriteString(cursorHome)

	for y := 0; y < display.Height; y += 2 {
		for x := range display.Width {
			_, _ = bw.WriteString(cell(frame.Pixel(x, y), frame.Pixel(x, y+1)))
		}
		_, _ = bw.WriteString("\r\n")
	}
	return bw.Flush()
}

func cell(upper, lower bool) string {
	switch {
	case upper && lower:
		return "█"
	case upper:
		return "▀"
	case lower:
		return "▄"
	default:
		return " "
	}
}
