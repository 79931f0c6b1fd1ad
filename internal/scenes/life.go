// ABOUTME: Conway's Game of Life inside a grey border, one generation per frame
// ABOUTME: Cells beyond the grid edge count as dead; a resize keeps the overlapping cells

package scenes

import "github.com/mauromedda/termgfx/pkg/gfx"

var (
	lifeBorder = gfx.Grey(127)
	lifeAlive  = gfx.RGB(0, 255, 0)
	lifeDead   = gfx.RGB(0, 127, 0)
)

// Grid is a fixed-size Life board.
type Grid struct {
	width, height int
	cells         []bool
	scratch       []bool
}

// NewGrid returns an all-dead board. Negative sizes become zero.
func NewGrid(width, height int) *Grid {
	width, height = max(width, 0), max(height, 0)
	return &Grid{
		width:   width,
		height:  height,
		cells:   make([]bool, width*height),
		scratch: make([]bool, width*height),
	}
}

// Size returns the board dimensions.
func (g *Grid) Size() (int, int) { return g.width, g.height }

// Alive reports whether (x, y) is alive. Off-board cells are dead.
func (g *Grid) Alive(x, y int) bool {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return false
	}
	return g.cells[y*g.width+x]
}

// Set changes one cell; off-board writes are ignored.
func (g *Grid) Set(x, y int, alive bool) {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return
	}
	g.cells[y*g.width+x] = alive
}

// Population counts live cells.
func (g *Grid) Population() int {
	n := 0
	for _, c := range g.cells {
		if c {
			n++
		}
	}
	return n
}

func (g *Grid) neighbours(x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if (dx != 0 || dy != 0) && g.Alive(x+dx, y+dy) {
				n++
			}
		}
	}
	return n
}

// Step advances one generation (B3/S23).
func (g *Grid) Step() {
	for y := range g.height {
		for x := range g.width {
			n := g.neighbours(x, y)
			if g.cells[y*g.width+x] {
				g.scratch[y*g.width+x] = n == 2 || n == 3
			} else {
				g.scratch[y*g.width+x] = n == 3
			}
		}
	}
	g.cells, g.scratch = g.scratch, g.cells
}

// Resized returns a copy of the board with new dimensions, keeping the
// cells both boards share.
func (g *Grid) Resized(width, height int) *Grid {
	out := NewGrid(width, height)
	for y := range min(g.height, out.height) {
		copy(out.cells[y*out.width:y*out.width+min(g.width, out.width)], g.cells[y*g.width:])
	}
	return out
}

// SeedGlider places a glider with its bounding box at (x, y).
func (g *Grid) SeedGlider(x, y int) {
	g.Set(x+1, y, true)
	g.Set(x+2, y+1, true)
	g.Set(x, y+2, true)
	g.Set(x+1, y+2, true)
	g.Set(x+2, y+2, true)
}

// Life runs the simulation. Space pauses, 'r' restarts with a glider.
type Life struct {
	quitter
	grid      *Grid
	paused    bool
	resetNext bool
}

// NewLife returns an unattached Life scene.
func NewLife() *Life {
	return &Life{grid: NewGrid(0, 0)}
}

// Grid exposes the current board.
func (l *Life) Grid() *Grid { return l.grid }

func (l *Life) Attach(ctx gfx.Context) {
	l.attach(ctx)
	l.reset(ctx.Renderer.ScreenSize())
}

func (l *Life) Detach() {}

// reset seeds a fresh board inside the border of a w x h screen.
func (l *Life) reset(w, h int) {
	l.grid = NewGrid(w-2, h-2)
	l.grid.SeedGlider(3, 3)
}

func (l *Life) Event(ev gfx.Event) {
	if l.handleQuit(ev) {
		return
	}
	ci, ok := ev.(gfx.CharacterInput)
	if !ok {
		return
	}
	switch ci.Rune {
	case ' ':
		l.paused = !l.paused
	case 'r':
		l.resetNext = true
	}
}

// Update fits the board to the screen, advances one generation unless
// paused and draws it inside a border.
func (l *Life) Update(r *gfx.Renderer) {
	w, h := r.ScreenSize()
	if l.resetNext {
		l.reset(w, h)
		l.resetNext = false
	} else if gw, gh := l.grid.Size(); gw != max(w-2, 0) || gh != max(h-2, 0) {
		l.grid = l.grid.Resized(w-2, h-2)
	}

	for x := range w {
		r.Pixel(x, 0, lifeBorder)
		r.Pixel(x, h-1, lifeBorder)
	}
	for y := range h {
		r.Pixel(0, y, lifeBorder)
		r.Pixel(w-1, y, lifeBorder)
	}

	if !l.paused {
		l.grid.Step()
	}

	gw, gh := l.grid.Size()
	for y := range gh {
		for x := range gw {
			c := lifeDead
			if l.grid.Alive(x, y) {
				c = lifeAlive
			}
			r.Pixel(x+1, y+1, c)
		}
	}
}
