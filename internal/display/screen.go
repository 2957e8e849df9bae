package display

// Screen implements Display on top of a Framebuffer and hands every rendered
// frame to a presenter. It is owned by the emulation goroutine, presenters
// receive copies of the frame.
type Screen struct {
	fb        Framebuffer
	presenter Presenter
	frames    uint64
}

// NewScreen returns a screen that presents to the given presenter, which can be nil.
func NewScreen(presenter Presenter) *Screen {
	return &Screen{presenter: presenter}
}

// BlankScreen clears all pixels.
func (s *Screen) BlankScreen() {
	s.fb.Clear()
}

// Draw XORs the sprite rows onto the framebuffer.
func (s *Screen) Draw(x, y uint8, rows []byte) bool {
	return s.fb.Draw(x, y, rows)
}

// Render presents the current framebuffer content.
func (s *Screen) Render() {
	s.frames++
	if s.presenter != nil {
		s.presenter.Present(s.fb.Frame())
	}
}

// Frame returns a copy of the current image.
func (s *Screen) Frame() Frame {
	return s.fb.Frame()
}

// Frames returns the number of rendered frames.
func (s *Screen) Frames() uint64 {
	return s.frames
}
