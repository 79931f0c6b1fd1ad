// ABOUTME: Sandbox scene: colored screen border plus a triangle of cyan lines
// ABOUTME: Exercises Pixel and Line; everything is recomputed from the screen size each frame

package scenes

import "github.com/mauromedda/termgfx/pkg/gfx"

// Sandbox draws a static test pattern.
type Sandbox struct {
	quitter
}

// NewSandbox returns the pattern scene.
func NewSandbox() *Sandbox {
	return &Sandbox{}
}

func (s *Sandbox) Attach(ctx gfx.Context) { s.attach(ctx) }

func (s *Sandbox) Detach() {}

func (s *Sandbox) Event(ev gfx.Event) { s.handleQuit(ev) }

// Update draws top/bottom/left/right borders in red, green, blue and
// yellow, then a cyan triangle with white vertices.
func (s *Sandbox) Update(r *gfx.Renderer) {
	w, h := r.ScreenSize()

	for x := range w {
		r.Pixel(x, 0, gfx.Red)
		r.Pixel(x, h-1, gfx.Green)
	}
	for y := range h {
		r.Pixel(0, y, gfx.Blue)
		r.Pixel(w-1, y, gfx.Yellow)
	}

	x0, y0 := w/3, h/4
	x1, y1 := w/3*2, h/2
	x2, y2 := w/7*2, h/3*2

	edge := func(ax, ay, bx, by int) {
		r.Line(ax, ay, bx, by, gfx.Cyan)
		r.Pixel(ax, ay, gfx.White)
		r.Pixel(bx, by, gfx.White)
	}
	edge(x0, y0, x1, y1)
	edge(x1, y1, x2, y2)
	edge(x0, y0, x2, y2)
}
