// Package headless provides a display backend without any output.
package headless

import (
	"context"
	"sync"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/input"
)

// Name of the backend.
const Name = "headless"

func init() {
	display.Register(Name, 40, func(display.Settings) (display.Backend, error) {
		return New(), nil
	})
}

// Backend keeps the last presented frame and reports no pressed keys unless
// keys are pressed through its keypad.
type Backend struct {
	input.Keypad

	mu     sync.Mutex
	frame  display.Frame
	frames uint64
}

// New returns a headless backend.
func New() *Backend {
	return &Backend{}
}

// Present stores the frame.
func (b *Backend) Present(frame display.Frame) {
	b.mu.Lock()
	b.frame = frame
	b.frames++
	b.mu.Unlock()
}

// Frame returns the last presented frame and the number of presented frames.
func (b *Backend) Frame() (display.Frame, uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frame, b.frames
}

// Run blocks until the context is cancelled.
func (b *Backend) Run(ctx context.Context) error {
	<-ctx.Done()
	return nil
}
