// ABOUTME: App drives the fixed-rate loop: poll events, resize, forward, update, render, sleep
// ABOUTME: The run flag is atomic so Stop may be called from a signal goroutine

package gfx

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mauromedda/termgfx/internal/log"
	"github.com/mauromedda/termgfx/internal/perf"
	"github.com/mauromedda/termgfx/pkg/terminal"
)

// Config is the startup configuration of an App.
type Config struct {
	// FPS is the target frame rate; it must be positive.
	FPS int
	// Background is the clear color.
	Background Color
	// Glyph is printed for each pixel. Empty means DefaultGlyph.
	Glyph string
}

// Context is handed to Scene.Attach.
type Context struct {
	Renderer *Renderer
	// Stop ends the loop after the current frame.
	Stop func()
}

// Scene is the user program driven by an App. All methods are called on
// the goroutine running App.Run.
type Scene interface {
	// Attach is called once before the first frame.
	Attach(ctx Context)
	// Detach is called once after the loop ends normally.
	Detach()
	// Update draws the next frame.
	Update(r *Renderer)
	// Event receives each polled event, after any resize was applied.
	Event(ev Event)
}

// Stats counts rendered frames and frames that exceeded their budget.
type Stats struct {
	Ticks    uint64
	Overruns uint64
}

// Option customizes an App.
type Option func(*App)

// WithTerminal makes the App draw to t instead of the process terminal.
func WithTerminal(t terminal.Terminal) Option {
	return func(a *App) {
		a.term = t
	}
}

type appState int32

const (
	stateConstructed appState = iota
	stateRunning
	stateStopped
)

// App owns the renderer, the event handler and the scene for one run.
type App struct {
	frameDuration time.Duration
	term          terminal.Terminal
	renderer      *Renderer
	events        *EventHandler
	scene         Scene

	state    atomic.Int32
	ticks    atomic.Uint64
	overruns atomic.Uint64

	now       func() time.Time
	sleep     func(time.Duration)
	closeOnce sync.Once
	closeErr  error
}

// NewApp validates cfg, hides the cursor and switches the terminal input
// mode. Callers must Close the App.
func NewApp(scene Scene, cfg Config, opts ...Option) (*App, error) {
	if scene == nil {
		return nil, fmt.Errorf("nil scene: %w", ErrInvalidConfig)
	}
	if cfg.FPS <= 0 {
		return nil, fmt.Errorf("fps must be positive, got %d: %w", cfg.FPS, ErrInvalidConfig)
	}

	a := &App{
		frameDuration: time.Second / time.Duration(cfg.FPS),
		scene:         scene,
		now:           time.Now,
		sleep:         time.Sleep,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.term == nil {
		a.term = terminal.NewProcessTerminal()
	}

	r, err := NewRenderer(a.term, RendererOptions{Background: cfg.Background, Glyph: cfg.Glyph})
	if err != nil {
		return nil, fmt.Errorf("creating renderer: %w", err)
	}
	ev, err := NewEventHandler(a.term)
	if err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("creating event handler: %w", err)
	}
	a.renderer = r
	a.events = ev

	log.Debug("app: constructed, frame budget %v", a.frameDuration)
	return a, nil
}

// Run attaches the scene and loops until Stop or a fatal error. On a
// normal stop the scene is detached and the cursor moved below the last
// frame. A fatal error ends the loop immediately without Detach.
// Run returns nil at once if Stop was called before it.
func (a *App) Run() error {
	if !a.state.CompareAndSwap(int32(stateConstructed), int32(stateRunning)) {
		return nil
	}

	log.Debug("app: attaching scene")
	a.scene.Attach(Context{Renderer: a.renderer, Stop: a.Stop})

	for a.Running() {
		if err := a.tick(); err != nil {
			a.state.Store(int32(stateStopped))
			log.Error("app: fatal error after %d frames: %v", a.ticks.Load(), err)
			return err
		}
	}

	log.Info("app: stopped after %d frames (%d overruns)", a.ticks.Load(), a.overruns.Load())
	a.scene.Detach()
	return a.renderer.finish()
}

func (a *App) tick() error {
	defer perf.Region("App.tick")()
	start := a.now()

	events, err := a.events.Poll()
	if err != nil {
		return err
	}
	for _, ev := range events {
		if rs, ok := ev.(Resize); ok {
			log.Debug("app: terminal resized to %dx%d", rs.Width, rs.Height)
			a.renderer.Resize(rs.Width, rs.Height)
		}
		a.forward(ev)
	}

	a.update()

	if err := a.renderer.Render(); err != nil {
		return err
	}
	a.ticks.Add(1)

	remaining := a.frameDuration - a.now().Sub(start)
	if remaining <= 0 {
		a.overruns.Add(1)
		return nil
	}
	defer perf.Region("App.sleep")()
	a.sleep(remaining)
	return nil
}

func (a *App) forward(ev Event) {
	defer perf.Region("Scene.Event")()
	a.scene.Event(ev)
}

func (a *App) update() {
	defer perf.Region("Scene.Update")()
	a.scene.Update(a.renderer)
}

// Stop ends the loop after the current frame. Safe from any goroutine.
func (a *App) Stop() {
	a.state.Store(int32(stateStopped))
}

// Running reports whether the loop is active.
func (a *App) Running() bool {
	return appState(a.state.Load()) == stateRunning
}

// Stats returns frame counters.
func (a *App) Stats() Stats {
	return Stats{Ticks: a.ticks.Load(), Overruns: a.overruns.Load()}
}

// Renderer returns the App's renderer.
func (a *App) Renderer() *Renderer {
	return a.renderer
}

// Close shows the cursor and restores the terminal input mode however Run
// ended. Subsequent calls return the first result.
func (a *App) Close() error {
	a.closeOnce.Do(func() {
		a.Stop()
		a.closeErr = errors.Join(a.events.Close(), a.renderer.Close())
	})
	return a.closeErr
}
