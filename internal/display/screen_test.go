package display

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

type recordingPresenter struct {
	frames []Frame
}

func (p *recordingPresenter) Present(frame Frame) {
	p.frames = append(p.frames, frame)
}

func TestScreen_Render(t *testing.T) {
	presenter := &recordingPresenter{}
	screen := NewScreen(presenter)

	assert.False(t, screen.Draw(0, 0, []byte{0x80}))
	assert.Empty(t, presenter.frames)

	screen.Render()
	assert.Len(t, presenter.frames, 1)
	assert.True(t, presenter.frames[0].Pixel(0, 0))

	screen.BlankScreen()
	frame := screen.Frame()
	assert.Equal(t, 0, frame.Lit())
	assert.True(t, presenter.frames[0].Pixel(0, 0))

	screen.Render()
	assert.Len(t, presenter.frames, 2)
	assert.Equal(t, uint64(2), screen.Frames())
}

func TestScreen_NilPresenter(t *testing.T) {
	screen := NewScreen(nil)
	screen.Draw(1, 1, []byte{0xFF})
	screen.Render()
	assert.Equal(t, uint64(1), screen.Frames())
}
