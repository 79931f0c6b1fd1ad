// ABOUTME: Image scene: a decoded picture stretched to fill the screen
// ABOUTME: The original is kept so every resize resamples from full resolution

package scenes

import "github.com/mauromedda/termgfx/pkg/gfx"

// Image shows one framebuffer scaled to the screen.
type Image struct {
	quitter
	original *gfx.Framebuffer
	scaled   *gfx.Framebuffer
}

// NewImage wraps an already decoded picture.
func NewImage(fb *gfx.Framebuffer) *Image {
	return &Image{original: fb}
}

func (s *Image) Attach(ctx gfx.Context) {
	s.attach(ctx)
	s.rescale(ctx.Renderer.ScreenSize())
}

func (s *Image) Detach() {}

func (s *Image) Event(ev gfx.Event) {
	s.handleQuit(ev)
}

func (s *Image) rescale(w, h int) {
	s.scaled = gfx.NewResized(s.original, w, h)
}

// Update resamples from the original whenever the screen size changed
// since the last frame.
func (s *Image) Update(r *gfx.Renderer) {
	w, h := r.ScreenSize()
	if sw, sh := s.scaled.Size(); sw != w || sh != h {
		s.rescale(w, h)
	}
	r.DrawFramebuffer(0, 0, s.scaled)
}
