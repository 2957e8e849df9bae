// Package ebiten provides a windowed display backend.
package ebiten

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/input"
	"github.com/retroenv/retrochip8/internal/screenshot"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/image/font/basicfont"
)

// Name of the backend.
const Name = "ebiten"

const statusDuration = 2 * time.Second

func init() {
	display.Register(Name, 10, func(settings display.Settings) (display.Backend, error) {
		return New(settings), nil
	})
}

// keyMap maps the keypad keys to keyboard keys, matching input.Layout.
var keyMap = [input.NumKeys]ebiten.Key{
	0x0: ebiten.KeyX,
	0x1: ebiten.KeyDigit1, 0x2: ebiten.KeyDigit2, 0x3: ebiten.KeyDigit3,
	0x4: ebiten.KeyQ, 0x5: ebiten.KeyW, 0x6: ebiten.KeyE,
	0x7: ebiten.KeyA, 0x8: ebiten.KeyS, 0x9: ebiten.KeyD,
	0xA: ebiten.KeyZ, 0xB: ebiten.KeyC,
	0xC: ebiten.Key4, 0xD: ebiten.KeyR, 0xE: ebiten.KeyF, 0xF: ebiten.KeyV,
}

// Backend shows frames in a window and reads the keypad from the keyboard.
type Backend struct {
	input.Keypad

	title  string
	scale  int
	logger *log.Logger

	mu          sync.Mutex
	frame       display.Frame
	status      string
	statusUntil time.Time

	stopped atomic.Bool
	saving  atomic.Bool

	image  *ebiten.Image
	pixels []byte
}

// New returns a window backend.
func New(settings display.Settings) *Backend {
	scale := settings.Scale
	if scale < 1 {
		scale = 1
	}
	return &Backend{
		title:  settings.Title,
		scale:  scale,
		logger: settings.Logger,
		pixels: make([]byte, display.Width*display.Height*4),
	}
}

// Present stores the frame to be shown with the next window refresh.
func (b *Backend) Present(frame display.Frame) {
	b.mu.Lock()
	b.frame = frame
	b.mu.Unlock()
}

// Run opens the window and blocks until it is closed or the context is
// cancelled. It has to be called from the main goroutine.
func (b *Backend) Run(ctx context.Context) error {
	ebiten.SetWindowTitle(b.title)
	ebiten.SetWindowSize(display.Width*b.scale, display.Height*b.scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	stop := context.AfterFunc(ctx, func() {
		b.stopped.Store(true)
	})
	defer stop()

	if err := ebiten.RunGame(b); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	return nil
}

// Update polls the keyboard.
func (b *Backend) Update() error {
	if ebiten.IsWindowBeingClosed() || b.stopped.Load() {
		return ebiten.Termination
	}

	var keys [input.NumKeys]bool
	for key, k := range keyMap {
		keys[key] = ebiten.IsKeyPressed(k)
	}
	b.Set(keys)

	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		b.copyScreenshot()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF10) {
		b.saveScreenshot()
	}
	return nil
}

// Draw renders the last presented frame.
func (b *Backend) Draw(screen *ebiten.Image) {
	if b.image == nil {
		b.image = ebiten.NewImage(display.Width, display.Height)
	}

	b.mu.Lock()
	frame := b.frame
	status := b.status
	if time.Now().After(b.statusUntil) {
		status = ""
	}
	b.mu.Unlock()

	fillPixels(b.pixels, frame)
	b.image.WritePixels(b.pixels)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(b.scale), float64(b.scale))
	screen.DrawImage(b.image, op)

	if status != "" {
		b.drawStatus(screen, status)
	}
}

// Layout keeps the logical screen at the scaled display resolution.
func (b *Backend) Layout(_, _ int) (int, int) {
	return display.Width * b.scale, display.Height * b.scale
}

func (b *Backend) drawStatus(screen *ebiten.Image, status string) {
	face := basicfont.Face7x13
	barHeight := face.Metrics().Height.Ceil() + 6
	y := display.Height*b.scale - barHeight

	ebitenutil.DrawRect(screen, 0, float64(y), float64(display.Width*b.scale), float64(barHeight),
		color.RGBA{A: 180})
	text.Draw(screen, status, face, 4, y+face.Metrics().Ascent.Ceil()+3, color.White)
}

func (b *Backend) setStatus(status string) {
	b.mu.Lock()
	b.status = status
	b.statusUntil = time.Now().Add(statusDuration)
	b.mu.Unlock()
}

func (b *Backend) currentFrame() display.Frame {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frame
}

func (b *Backend) copyScreenshot() {
	if err := screenshot.CopyToClipboard(b.currentFrame(), b.scale); err != nil {
		b.logError("Copying screenshot failed", err)
		b.setStatus("Screenshot copy failed")
		return
	}
	b.setStatus("Screenshot copied")
}

// saveScreenshot shows the save dialog in the background, the dialog blocks
// until the user picked a file.
func (b *Backend) saveScreenshot() {
	if !b.saving.CompareAndSwap(false, true) {
		return
	}
	frame := b.currentFrame()

	go func() {
		defer b.saving.Store(false)

		filename, err := screenshot.SaveWithDialog(frame, b.scale)
		switch {
		case errors.Is(err, screenshot.ErrCancelled):
		case err != nil:
			b.logError("Saving screenshot failed", err)
			b.setStatus("Screenshot save failed")
		default:
			b.setStatus("Screenshot saved")
			if b.logger != nil {
				b.logger.Info("Screenshot saved", log.String("file", filename))
			}
		}
	}()
}

func (b *Backend) logError(msg string, err error) {
	if b.logger != nil {
		b.logger.Error(msg, log.Err(err))
	}
}

// fillPixels writes the frame as RGBA pixels.
func fillPixels(pixels []byte, frame display.Frame) {
	for y := range display.Height {
		for x := range display.Width {
			c := screenshot.Background
			if frame.Pixel(x, y) {
				c = screenshot.Foreground
			}
			offset := (y*display.Width + x) * 4
			pixels[offset] = c.R
			pixels[offset+1] = c.G
			pixels[offset+2] = c.B
			pixels[offset+3] = c.A
		}
	}
}
