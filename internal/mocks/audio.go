package mocks

// Audio is an audio.Audio that counts state changes.
type Audio struct {
	Playing bool
	Starts  int
	Stops   int
}

// Play starts the tone if it is paused.
func (a *Audio) Play() {
	if a.Playing {
		return
	}
	a.Playing = true
	a.Starts++
}

// Pause stops the tone if it is playing.
func (a *Audio) Pause() {
	if !a.Playing {
		return
	}
	a.Playing = false
	a.Stops++
}
