// Package tone plays the square wave beep through the system audio device.
package tone

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/retroenv/retrochip8/internal/audio"
)

var _ audio.Audio = (*Tone)(nil)

// Tone plays a square wave through the system audio device.
// It starts paused.
type Tone struct {
	mu      sync.Mutex
	ctx     *oto.Context
	player  *oto.Player
	playing bool
}

// NewTone opens the audio device. Only one audio context can exist per process.
func NewTone() (*Tone, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   50 * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}
	<-ready

	player := ctx.NewPlayer(newSquareWave(ToneFrequency, SampleRate, ToneAmplitude))
	return &Tone{
		ctx:    ctx,
		player: player,
	}, nil
}

// Play starts the tone.
func (t *Tone) Play() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.playing {
		return
	}
	t.player.Play()
	t.playing = true
}

// Pause stops the tone.
func (t *Tone) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.playing {
		return
	}
	t.player.Pause()
	t.playing = false
}

// Close releases the audio player.
func (t *Tone) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.playing = false
	if err := t.player.Close(); err != nil {
		return fmt.Errorf("closing audio player: %w", err)
	}
	return nil
}
