//go:build unix

package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Name of the backend.
const Name = "terminal"

const refreshInterval = time.Second / 60

func init() {
	display.Register(Name, 20, func(settings display.Settings) (display.Backend, error) {
		fd := int(os.Stdin.Fd())
		if !term.IsTerminal(fd) {
			return nil, errors.New("stdin is not a terminal")
		}
		return New(fd, os.Stdout, settings.Logger), nil
	})
}

// Backend renders frames into the terminal.
type Backend struct {
	keyboard

	fd     int
	out    io.Writer
	logger *log.Logger

	mu    sync.Mutex
	frame display.Frame
	dirty bool
}

// New returns a terminal backend that reads keys from the file descriptor
// and writes frames to out.
func New(fd int, out io.Writer, logger *log.Logger) *Backend {
	return &Backend{
		fd:     fd,
		out:    out,
		logger: logger,
		dirty:  true,
	}
}

// Present stores the frame to be drawn with the next refresh.
func (b *Backend) Present(frame display.Frame) {
	b.mu.Lock()
	b.frame = frame
	b.dirty = true
	b.mu.Unlock()
}

// Run switches the terminal to raw mode and refreshes it until the context
// is cancelled or the user presses Escape or Ctrl+C.
func (b *Backend) Run(ctx context.Context) error {
	if b.logger != nil {
		b.logger.Debug("Starting terminal display, press Escape to quit")
	}

	oldState, err := term.MakeRaw(b.fd)
	if err != nil {
		return fmt.Errorf("setting terminal raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(b.fd, oldState)
	}()

	if err := unix.SetNonblock(b.fd, true); err != nil {
		return fmt.Errorf("setting non blocking input: %w", err)
	}
	defer func() {
		_ = unix.SetNonblock(b.fd, false)
	}()

	_, _ = io.WriteString(b.out, hideCursor+clearScreen)
	defer func() {
		_, _ = io.WriteString(b.out, resetStyle+showCursor+"\r\n")
	}()

	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	buf := make([]byte, 64)
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			quit, err := b.poll(buf, now)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
			if err := b.refresh(); err != nil {
				return err
			}
		}
	}
}

// poll reads all pending characters from the terminal.
func (b *Backend) poll(buf []byte, now time.Time) (bool, error) {
	for {
		n, err := unix.Read(b.fd, buf)
		if n > 0 && b.feed(buf[:n], now) {
			return true, nil
		}
		if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR) || (err == nil && n < len(buf)) {
			break
		}
		if err != nil {
			return false, fmt.Errorf("reading terminal input: %w", err)
		}
	}

	b.expire(now)
	return false, nil
}

func (b *Backend) refresh() error {
	b.mu.Lock()
	frame := b.frame
	dirty := b.dirty
	b.dirty = false
	b.mu.Unlock()

	if !dirty {
		return nil
	}
	if err := Render(b.out, frame); err != nil {
		return fmt.Errorf("rendering frame: %w", err)
	}
	return nil
}
