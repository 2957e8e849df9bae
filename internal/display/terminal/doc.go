// Package terminal provides a display backend that renders frames with
// half block characters into an ANSI terminal and reads the keypad from
// stdin. The backend is only available on unix systems.
package terminal
