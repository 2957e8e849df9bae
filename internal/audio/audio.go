// Package audio contains the tone output gated by the sound timer.
package audio

import (
	"sync"
)

// Audio starts and stops the tone. Both calls are no-ops if the output
// already is in the requested state.
type Audio interface {
	Play()
	Pause()
}

// Silent is an Audio implementation without output.
type Silent struct {
	mu      sync.Mutex
	playing bool
}

// Play marks the tone as playing.
func (s *Silent) Play() {
	s.mu.Lock()
	s.playing = true
	s.mu.Unlock()
}

// Pause marks the tone as paused.
func (s *Silent) Pause() {
	s.mu.Lock()
	s.playing = false
	s.mu.Unlock()
}

// IsPlaying returns whether the tone would be audible.
func (s *Silent) IsPlaying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}
