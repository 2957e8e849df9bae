// Package screenshot converts display frames to images and exports them to
// the clipboard or to a PNG file.
package screenshot

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"
	"sync"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/sqweek/dialog"
	"golang.design/x/clipboard"
	"golang.org/x/image/draw"
)

// Colors of set and cleared pixels.
var (
	Foreground = color.RGBA{R: 0xE0, G: 0xF8, B: 0xD0, A: 0xFF}
	Background = color.RGBA{R: 0x08, G: 0x18, B: 0x20, A: 0xFF}
)

// ErrCancelled is returned when the user cancels the save dialog.
var ErrCancelled = errors.New("screenshot cancelled")

var (
	clipboardOnce sync.Once
	errClipboard  error
)

// Image converts the frame to an image, every pixel is scaled to a
// scale x scale block.
func Image(frame display.Frame, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}

	src := image.NewRGBA(image.Rect(0, 0, display.Width, display.Height))
	for y := range display.Height {
		for x := range display.Width {
			c := Background
			if frame.Pixel(x, y) {
				c = Foreground
			}
			src.SetRGBA(x, y, c)
		}
	}
	if scale == 1 {
		return src
	}

	dst := image.NewRGBA(image.Rect(0, 0, display.Width*scale, display.Height*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// EncodePNG encodes the image as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}
	return buf.Bytes(), nil
}

// CopyToClipboard copies the frame as PNG image to the system clipboard.
func CopyToClipboard(frame display.Frame, scale int) error {
	clipboardOnce.Do(func() {
		errClipboard = clipboard.Init()
	})
	if errClipboard != nil {
		return fmt.Errorf("initializing clipboard: %w", errClipboard)
	}

	b, err := EncodePNG(Image(frame, scale))
	if err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtImage, b)
	return nil
}

// SaveWithDialog asks the user for a file name and saves the frame as PNG.
// It returns the name of the written file.
func SaveWithDialog(frame display.Frame, scale int) (string, error) {
	filename, err := dialog.File().Filter("PNG Image", "png").Title("Save Screenshot").Save()
	if err != nil {
		if errors.Is(err, dialog.ErrCancelled) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("showing save dialog: %w", err)
	}
	if !strings.HasSuffix(strings.ToLower(filename), ".png") {
		filename += ".png"
	}

	if err := Save(filename, frame, scale); err != nil {
		return "", err
	}
	return filename, nil
}

// Save writes the frame as PNG file.
func Save(filename string, frame display.Frame, scale int) error {
	b, err := EncodePNG(Image(frame, scale))
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, b, 0o644); err != nil {
		return fmt.Errorf("writing file %s: %w", filename, err)
	}
	return nil
}
