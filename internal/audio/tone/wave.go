package tone

import (
	"encoding/binary"
	"math"
)

const (
	// ToneFrequency is the frequency of the beep in Hz (D5).
	ToneFrequency = 587.33
	// ToneAmplitude is the peak amplitude of the square wave.
	ToneAmplitude = 0.5
	// SampleRate of the audio output in Hz.
	SampleRate = 44100

	bytesPerSample = 4
)

// squareWave generates mono float32 little endian samples.
type squareWave struct {
	step      float64
	phase     float64
	amplitude float32
}

func newSquareWave(frequency float64, sampleRate int, amplitude float32) *squareWave {
	return &squareWave{
		step:      frequency / float64(sampleRate),
		amplitude: amplitude,
	}
}

// Read fills p with whole samples, it never returns an error.
func (w *squareWave) Read(p []byte) (int, error) {
	n := len(p) / bytesPerSample * bytesPerSample
	for i := 0; i < n; i += bytesPerSample {
		v := w.amplitude
		if w.phase >= 0.5 {
			v = -v
		}
		binary.LittleEndian.PutUint32(p[i:], math.Float32bits(v))

		w.phase += w.step
		if w.phase >= 1 {
			w.phase -= 1
		}
	}
	return n, nil
}
